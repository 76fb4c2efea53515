package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/smstxn/internal/model"
)

func TestCSVParser_Parse(t *testing.T) {
	data, err := os.ReadFile("testdata/messages.csv")
	require.NoError(t, err)

	p := &CSVParser{}
	msgs, err := p.Parse(strings.NewReader(string(data)))
	require.NoError(t, err)
	require.Len(t, msgs, 4)

	assert.Equal(t, "VM-HDFCBK", msgs[0].Sender)
	assert.True(t, strings.HasPrefix(msgs[0].Text, "Rs.500.00 debited"))

	assert.Equal(t, "AX-SBICRD", msgs[2].Sender)
	assert.Contains(t, msgs[2].Text, "Rs.1,250.00")

	// Empty sender column means unknown.
	assert.Empty(t, msgs[3].Sender)
}

func TestCSVParser_ColumnOrderAndAliases(t *testing.T) {
	in := "Body,Address\n\"Rs 10 paid, thanks\",JM-PAYTMB\n"
	p := &CSVParser{}
	msgs, err := p.Parse(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []model.RawMessage{{Text: "Rs 10 paid, thanks", Sender: "JM-PAYTMB"}}, msgs)
}

func TestCSVParser_MessageOnly(t *testing.T) {
	in := "\ufeffmessage\nRs 10 debited\n"
	p := &CSVParser{}
	msgs, err := p.Parse(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []model.RawMessage{{Text: "Rs 10 debited"}}, msgs)
}

func TestCSVParser_EmptyFile(t *testing.T) {
	p := &CSVParser{}
	msgs, err := p.Parse(strings.NewReader("sender,message\n"))
	require.NoError(t, err)
	assert.Nil(t, msgs)

	msgs, err = p.Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Nil(t, msgs)
}

func TestCSVParser_NoMessageColumn(t *testing.T) {
	p := &CSVParser{}
	_, err := p.Parse(strings.NewReader("sender,date\nHDFCBK,2025-01-01\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no message column")
}

func TestCSVParser_ShortRow(t *testing.T) {
	p := &CSVParser{}
	_, err := p.Parse(strings.NewReader("sender,message\nHDFCBK,ok\nSBIINB\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 3")
}

func TestCSVParser_Format(t *testing.T) {
	p := &CSVParser{}
	assert.Equal(t, "csv", p.Format())
}

func TestLinesParser_Parse(t *testing.T) {
	data, err := os.ReadFile("testdata/messages.txt")
	require.NoError(t, err)

	p := &LinesParser{}
	msgs, err := p.Parse(strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Equal(t, []model.RawMessage{
		{Text: "Rs.20 sent to Ravi via UPI. UPI Ref 7788"},
		{Text: "Your OTP is 4321"},
	}, msgs)
}

func TestLinesParser_Format(t *testing.T) {
	p := &LinesParser{}
	assert.Equal(t, "lines", p.Format())
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Get("nonexistent"))
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register(&CSVParser{})
	p := r.Get("csv")
	require.NotNil(t, p)
	assert.Equal(t, "csv", p.Format())
}

func TestRegistry_CaseInsensitive(t *testing.T) {
	r := NewRegistry()
	r.Register(&LinesParser{})
	assert.NotNil(t, r.Get("Lines"))
	assert.NotNil(t, r.Get("LINES"))
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(&CSVParser{})
	assert.Panics(t, func() { r.Register(&CSVParser{}) })
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r.Get("csv"))
	assert.NotNil(t, r.Get("lines"))
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, "csv", FormatFor("export.CSV"))
	assert.Equal(t, "lines", FormatFor("inbox.txt"))
	assert.Empty(t, FormatFor("notes.md"))
}

func TestScan_FindsMessageFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bank.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "inbox.txt"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.md"), []byte("data"), 0o644))

	files, err := Scan(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "bank.csv", files[0].Name)
	assert.Equal(t, "csv", files[0].Format)
	assert.Equal(t, "inbox.txt", files[1].Name)
	assert.Equal(t, "lines", files[1].Format)
	assert.Equal(t, int64(4), files[1].Size)
}

func TestScan_IgnoresProcessedDir(t *testing.T) {
	dir := t.TempDir()
	processed := filepath.Join(dir, "processed")
	require.NoError(t, os.MkdirAll(processed, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(processed, "old.csv"), []byte("data"), 0o644))

	files, err := Scan(dir)
	require.NoError(t, err)
	assert.Len(t, files, 1)
	assert.Equal(t, "new.csv", files[0].Name)
}

func TestScan_MissingDir(t *testing.T) {
	files, err := Scan(filepath.Join(t.TempDir(), "inbox"))
	require.NoError(t, err)
	assert.Nil(t, files)
}

func TestParseFile(t *testing.T) {
	msgs, err := ParseFile(&CSVParser{}, "testdata/messages.csv")
	require.NoError(t, err)
	assert.Len(t, msgs, 4)

	_, err = ParseFile(&CSVParser{}, "testdata/missing.csv")
	assert.Error(t, err)
}

func TestMarkProcessed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bank.csv"), []byte("data"), 0o644))

	err := MarkProcessed(dir, "bank.csv")
	require.NoError(t, err)

	// Source gone.
	_, err = os.Stat(filepath.Join(dir, "bank.csv"))
	assert.True(t, os.IsNotExist(err))

	// Destination exists.
	_, err = os.Stat(filepath.Join(dir, "processed", "bank.csv"))
	assert.NoError(t, err)
}

func TestMarkProcessed_Missing(t *testing.T) {
	err := MarkProcessed(t.TempDir(), "gone.csv")
	assert.Error(t, err)
}
