package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the direction of money movement.
type TransactionType string

const (
	TypeDebit  TransactionType = "Debit"
	TypeCredit TransactionType = "Credit"
)

// CardType identifies the card instrument named in a message.
type CardType string

const (
	CardCredit  CardType = "Credit Card"
	CardDebit   CardType = "Debit Card"
	CardGeneric CardType = "Card"
)

// Mode is the payment rail or instrument. Card types double as modes.
type Mode string

const (
	ModeCreditCard  Mode = Mode(CardCredit)
	ModeDebitCard   Mode = Mode(CardDebit)
	ModeCard        Mode = Mode(CardGeneric)
	ModeUPI         Mode = "UPI"
	ModeIMPS        Mode = "IMPS"
	ModeNEFT        Mode = "NEFT"
	ModeRTGS        Mode = "RTGS"
	ModeNetBanking  Mode = "NetBanking"
	ModeWallet      Mode = "Wallet"
	ModeCardPayment Mode = "Card Payment"
)

// DisplayDateFormat renders transaction dates as dd-mm-yy.
const DisplayDateFormat = "02-01-06"

// TransactionRecord holds the fields extracted from a transactional message.
// Every field is optional: empty strings, a zero Date and an invalid Amount
// mean the field was not found.
type TransactionRecord struct {
	Amount          decimal.NullDecimal
	Type            TransactionType
	BankName        string
	CardType        CardType
	Merchant        string
	Mode            Mode
	Date            time.Time
	ReferenceNumber string
	Tags            []string
}

// DisplayDate returns the date in DisplayDateFormat, or "" when absent.
func (r TransactionRecord) DisplayDate() string {
	if r.Date.IsZero() {
		return ""
	}
	return r.Date.Format(DisplayDateFormat)
}

// DisplayAmount returns the amount with two decimals, or "" when absent.
func (r TransactionRecord) DisplayAmount() string {
	if !r.Amount.Valid {
		return ""
	}
	return r.Amount.Decimal.StringFixed(2)
}
