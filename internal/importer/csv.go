package importer

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/cleared-dev/smstxn/internal/model"
)

// CSVParser parses message exports with a header row naming a "message" column and,
// optionally, a "sender" column. Column order is free and extra columns are ignored.
type CSVParser struct{}

// Format returns the parser name.
func (p *CSVParser) Format() string { return "csv" }

// Parse reads a message CSV and returns RawMessages.
func (p *CSVParser) Parse(r io.Reader) ([]model.RawMessage, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading message CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	colMessage, colSender := -1, -1
	for i, name := range records[0] {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))) {
		case "message", "body", "text":
			if colMessage < 0 {
				colMessage = i
			}
		case "sender", "address", "from":
			if colSender < 0 {
				colSender = i
			}
		}
	}
	if colMessage < 0 {
		return nil, fmt.Errorf("header %q has no message column", strings.Join(records[0], ","))
	}

	var msgs []model.RawMessage
	for i, rec := range records[1:] {
		if colMessage >= len(rec) {
			return nil, fmt.Errorf("row %d: expected at least %d fields, got %d", i+2, colMessage+1, len(rec))
		}
		msg := model.RawMessage{Text: rec[colMessage]}
		if colSender >= 0 && colSender < len(rec) {
			msg.Sender = strings.TrimSpace(rec[colSender])
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

// LinesParser parses plain text with one message per line and no sender. Blank lines
// are skipped.
type LinesParser struct{}

// Format returns the parser name.
func (p *LinesParser) Format() string { return "lines" }

// Parse reads one message per line.
func (p *LinesParser) Parse(r io.Reader) ([]model.RawMessage, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var msgs []model.RawMessage
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		msgs = append(msgs, model.RawMessage{Text: line})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading lines: %w", err)
	}
	return msgs, nil
}
