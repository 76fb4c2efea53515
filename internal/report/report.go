// Package report writes and reads the batch result log: one CSV row per analyzed
// message.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/smstxn/internal/model"
)

// Row is one analyzed message. Record is nil when the message was rejected.
type Row struct {
	ID            uuid.UUID
	AnalyzedAt    time.Time
	Source        string
	Sender        string
	Message       string
	Transactional bool
	Rule          string
	Record        *model.TransactionRecord
}

// Header is the CSV header for result logs.
const Header = "id,analyzed_at,source,sender,message,transactional,rule,amount,type,bank,card_type,mode,merchant,date,reference,tags"

const (
	numFields        = 16
	colID            = 0
	colAnalyzedAt    = 1
	colSource        = 2
	colSender        = 3
	colMessage       = 4
	colTransactional = 5
	colRule          = 6
	colAmount        = 7
	colType          = 8
	colBank          = 9
	colCardType      = 10
	colMode          = 11
	colMerchant      = 12
	colDate          = 13
	colReference     = 14
	colTags          = 15
)

// tagSep joins tags within the tags column.
const tagSep = ";"

// NewRow builds a Row with a fresh ID.
func NewRow(now time.Time, source string, msg model.RawMessage, transactional bool, rule string, rec *model.TransactionRecord) Row {
	return Row{
		ID:            uuid.New(),
		AnalyzedAt:    now.UTC(),
		Source:        source,
		Sender:        msg.Sender,
		Message:       msg.Text,
		Transactional: transactional,
		Rule:          rule,
		Record:        rec,
	}
}

// MarshalRow converts a Row to CSV fields.
func MarshalRow(r Row) []string {
	row := make([]string, numFields)
	row[colID] = r.ID.String()
	row[colAnalyzedAt] = r.AnalyzedAt.Format(time.RFC3339)
	row[colSource] = r.Source
	row[colSender] = r.Sender
	row[colMessage] = r.Message
	row[colTransactional] = strconv.FormatBool(r.Transactional)
	row[colRule] = r.Rule
	if rec := r.Record; rec != nil {
		row[colAmount] = rec.DisplayAmount()
		row[colType] = string(rec.Type)
		row[colBank] = rec.BankName
		row[colCardType] = string(rec.CardType)
		row[colMode] = string(rec.Mode)
		row[colMerchant] = rec.Merchant
		row[colDate] = rec.DisplayDate()
		row[colReference] = rec.ReferenceNumber
		row[colTags] = strings.Join(rec.Tags, tagSep)
	}
	return row
}

// UnmarshalRow converts CSV fields to a Row.
func UnmarshalRow(record []string) (Row, error) {
	if len(record) != numFields {
		return Row{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	id, err := uuid.Parse(record[colID])
	if err != nil {
		return Row{}, fmt.Errorf("parsing id %q: %w", record[colID], err)
	}
	ts, err := time.Parse(time.RFC3339, record[colAnalyzedAt])
	if err != nil {
		return Row{}, fmt.Errorf("parsing analyzed_at %q: %w", record[colAnalyzedAt], err)
	}
	transactional, err := strconv.ParseBool(record[colTransactional])
	if err != nil {
		return Row{}, fmt.Errorf("parsing transactional %q: %w", record[colTransactional], err)
	}

	r := Row{
		ID:            id,
		AnalyzedAt:    ts,
		Source:        record[colSource],
		Sender:        record[colSender],
		Message:       record[colMessage],
		Transactional: transactional,
		Rule:          record[colRule],
	}
	if !transactional {
		return r, nil
	}

	rec := &model.TransactionRecord{
		Type:            model.TransactionType(record[colType]),
		BankName:        record[colBank],
		CardType:        model.CardType(record[colCardType]),
		Mode:            model.Mode(record[colMode]),
		Merchant:        record[colMerchant],
		ReferenceNumber: record[colReference],
	}
	if s := record[colAmount]; s != "" {
		amt, err := decimal.NewFromString(s)
		if err != nil {
			return Row{}, fmt.Errorf("parsing amount %q: %w", s, err)
		}
		rec.Amount = decimal.NewNullDecimal(amt)
	}
	if s := record[colDate]; s != "" {
		d, err := time.Parse(model.DisplayDateFormat, s)
		if err != nil {
			return Row{}, fmt.Errorf("parsing date %q: %w", s, err)
		}
		rec.Date = d
	}
	if s := record[colTags]; s != "" {
		rec.Tags = strings.Split(s, tagSep)
	}
	r.Record = rec
	return r, nil
}

// Append writes rows to path, creating the file and header if needed.
func Append(path string, rows []Row) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating report dir: %w", err)
		}
	}

	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening report: %w", err)
	}
	defer f.Close()

	if needsHeader {
		if err := WriteHeader(f); err != nil {
			return err
		}
	}
	return Write(f, rows)
}

// WriteHeader writes the CSV header line to w.
func WriteHeader(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

// Write writes rows to w without a header.
func Write(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	for i, r := range rows {
		if err := cw.Write(MarshalRow(r)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns all rows from path. Returns an empty slice if the file does not exist.
func Read(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening report: %w", err)
	}
	defer f.Close()

	return readRows(f)
}

func readRows(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading report CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var rows []Row
	for i, rec := range records[1:] {
		row, err := UnmarshalRow(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
