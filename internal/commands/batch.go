package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/smstxn/internal/engine"
	"github.com/cleared-dev/smstxn/internal/importer"
	"github.com/cleared-dev/smstxn/internal/model"
	"github.com/cleared-dev/smstxn/internal/report"
)

type batchOptions struct {
	format string
	out    string
	move   bool
}

func newBatchCommand(opts *globalOptions) *cobra.Command {
	bo := &batchOptions{}

	cmd := &cobra.Command{
		Use:   "batch <file|directory>",
		Short: "Analyze exported message files and append results to a CSV log",
		Long:  "Analyze a message export, or every .csv and .txt file in a directory.\nCSV files need a header with a message column and optionally a sender column.\nText files hold one message per line.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, log, err := opts.newEngine(cmd)
			if err != nil {
				return err
			}
			return runBatch(cmd, eng, log, args[0], bo)
		},
	}

	cmd.Flags().StringVar(&bo.format, "format", "", "input format: csv or lines (default: from file extension)")
	cmd.Flags().StringVar(&bo.out, "out", resultsFile, "result log CSV, appended to")
	cmd.Flags().BoolVar(&bo.move, "move", false, "move analyzed files to <directory>/processed")

	return cmd
}

func runBatch(cmd *cobra.Command, eng *engine.Engine, log zerolog.Logger, path string, bo *batchOptions) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	var files []importer.FileInfo
	if info.IsDir() {
		if files, err = importer.Scan(path); err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No message files in %s\n", path)
			return nil
		}
	} else {
		files = []importer.FileInfo{{
			Name:   filepath.Base(path),
			Path:   path,
			Size:   info.Size(),
			Format: importer.FormatFor(path),
		}}
	}

	registry := importer.DefaultRegistry()
	var total, accepted int
	for _, f := range files {
		format := f.Format
		if bo.format != "" {
			format = bo.format
		}
		parser := registry.Get(format)
		if parser == nil {
			return fmt.Errorf("%s: unknown format %q (use --format csv or --format lines)", f.Name, format)
		}

		msgs, err := importer.ParseFile(parser, f.Path)
		if err != nil {
			return err
		}

		rows := analyze(eng, f.Name, msgs)
		if err := report.Append(bo.out, rows); err != nil {
			return fmt.Errorf("writing results: %w", err)
		}

		n := countTransactional(rows)
		log.Info().Str("file", f.Name).Int("messages", len(rows)).Int("transactional", n).Msg("analyzed file")
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d messages, %d transactional\n", f.Name, len(rows), n)
		total += len(rows)
		accepted += n

		if bo.move && info.IsDir() {
			if err := importer.MarkProcessed(path, f.Name); err != nil {
				return err
			}
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Total: %d messages, %d transactional. Results in %s\n", total, accepted, bo.out)
	return nil
}

// analyze runs every message through the engine.
func analyze(eng *engine.Engine, source string, msgs []model.RawMessage) []report.Row {
	now := time.Now()
	rows := make([]report.Row, 0, len(msgs))
	for _, m := range msgs {
		d, rec := eng.Analyze(m.Text, m.Sender)
		rows = append(rows, report.NewRow(now, source, m, d.Transactional, d.Rule, rec))
	}
	return rows
}

func countTransactional(rows []report.Row) int {
	n := 0
	for _, r := range rows {
		if r.Transactional {
			n++
		}
	}
	return n
}
