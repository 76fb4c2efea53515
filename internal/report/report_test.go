package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/smstxn/internal/model"
)

var testTime = time.Date(2025, 4, 12, 10, 30, 0, 0, time.UTC)

func testRecord() *model.TransactionRecord {
	return &model.TransactionRecord{
		Amount:          decimal.NewNullDecimal(decimal.RequireFromString("500.00")),
		Type:            model.TypeDebit,
		BankName:        "HDFC",
		Mode:            model.ModeUPI,
		Merchant:        "Amazon",
		Date:            time.Date(2025, 4, 12, 0, 0, 0, 0, time.UTC),
		ReferenceNumber: "123456",
		Tags:            []string{"Online Retail", "Shopping"},
	}
}

func testRow() Row {
	msg := model.RawMessage{
		Text:   "Rs.500.00 debited from your HDFC Bank A/c on 12-04-25 at Amazon via UPI. Ref No 123456",
		Sender: "VM-HDFCBK",
	}
	return NewRow(testTime, "messages.csv", msg, true, "known-sender", testRecord())
}

func TestNewRow(t *testing.T) {
	r := testRow()
	assert.NotEqual(t, uuid.Nil, r.ID)
	assert.Equal(t, "VM-HDFCBK", r.Sender)
	assert.Equal(t, "messages.csv", r.Source)
	assert.NotEqual(t, r.ID, testRow().ID)
}

func TestAppend_NewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	err := Append(path, []Row{testRow()})
	require.NoError(t, err)

	rows, err := Read(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Amazon", rows[0].Record.Merchant)
}

func TestAppend_ExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	require.NoError(t, Append(path, []Row{testRow()}))

	rejected := NewRow(testTime, "messages.csv", model.RawMessage{Text: "Your OTP is 4321"}, false, "no-transaction-cue", nil)
	require.NoError(t, Append(path, []Row{rejected}))

	rows, err := Read(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].Transactional)
	assert.False(t, rows[1].Transactional)
	assert.Nil(t, rows[1].Record)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), Header))
}

func TestRead_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	original := testRow()
	require.NoError(t, Append(path, []Row{original}))

	rows, err := Read(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	got := rows[0]
	assert.Equal(t, original.ID, got.ID)
	assert.True(t, original.AnalyzedAt.Equal(got.AnalyzedAt))
	assert.Equal(t, original.Message, got.Message)
	assert.Equal(t, original.Rule, got.Rule)
	require.NotNil(t, got.Record)
	assert.True(t, original.Record.Amount.Decimal.Equal(got.Record.Amount.Decimal))
	assert.Equal(t, original.Record.Type, got.Record.Type)
	assert.Equal(t, original.Record.BankName, got.Record.BankName)
	assert.Equal(t, original.Record.Mode, got.Record.Mode)
	assert.Equal(t, original.Record.Date, got.Record.Date)
	assert.Equal(t, original.Record.ReferenceNumber, got.Record.ReferenceNumber)
	assert.Equal(t, original.Record.Tags, got.Record.Tags)
}

func TestRead_NotFound(t *testing.T) {
	rows, err := Read(filepath.Join(t.TempDir(), "results.csv"))
	require.NoError(t, err)
	assert.Nil(t, rows)
}

func TestRead_HeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.csv")
	require.NoError(t, os.WriteFile(path, []byte(Header+"\n"), 0o644))

	rows, err := Read(path)
	require.NoError(t, err)
	assert.Nil(t, rows)
}

func TestMarshalRow_AbsentFieldsAreEmpty(t *testing.T) {
	r := testRow()
	r.Record = &model.TransactionRecord{Type: model.TypeCredit}
	fields := MarshalRow(r)
	assert.Len(t, fields, numFields)
	assert.Empty(t, fields[colAmount])
	assert.Empty(t, fields[colDate])
	assert.Empty(t, fields[colTags])
	assert.Equal(t, "Credit", fields[colType])

	got, err := UnmarshalRow(fields)
	require.NoError(t, err)
	assert.False(t, got.Record.Amount.Valid)
	assert.True(t, got.Record.Date.IsZero())
	assert.Nil(t, got.Record.Tags)
}

func TestMarshalRow_Columns(t *testing.T) {
	fields := MarshalRow(testRow())
	assert.Equal(t, "2025-04-12T10:30:00Z", fields[colAnalyzedAt])
	assert.Equal(t, "500.00", fields[colAmount])
	assert.Equal(t, "12-04-25", fields[colDate])
	assert.Equal(t, "Online Retail;Shopping", fields[colTags])
	assert.Equal(t, "true", fields[colTransactional])
}

func TestUnmarshalRow_BadFieldCount(t *testing.T) {
	_, err := UnmarshalRow([]string{"one", "two"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "expected 16 fields")
}

func TestUnmarshalRow_BadValues(t *testing.T) {
	tests := []struct {
		name string
		col  int
		val  string
		want string
	}{
		{"id", colID, "not-a-uuid", "parsing id"},
		{"timestamp", colAnalyzedAt, "yesterday", "parsing analyzed_at"},
		{"flag", colTransactional, "maybe", "parsing transactional"},
		{"amount", colAmount, "lots", "parsing amount"},
		{"date", colDate, "2025/04/12", "parsing date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := MarshalRow(testRow())
			fields[tt.col] = tt.val
			_, err := UnmarshalRow(fields)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestAppend_CreatesDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reports", "results.csv")
	require.NoError(t, Append(path, []Row{testRow()}))

	info, err := os.Stat(filepath.Join(dir, "reports"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
