package model

// RawMessage is one notification to analyze.
type RawMessage struct {
	Text   string
	Sender string // SMS header, phone number or contact name; "" if unknown
}
