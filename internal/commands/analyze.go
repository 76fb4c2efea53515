package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/smstxn/internal/model"
)

func newClassifyCommand(opts *globalOptions) *cobra.Command {
	var sender string
	var explain bool

	cmd := &cobra.Command{
		Use:   "classify <message>",
		Short: "Report whether a message is a financial transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := opts.newEngine(cmd)
			if err != nil {
				return err
			}

			d := eng.Decide(args[0], sender)
			verdict := "not transactional"
			if d.Transactional {
				verdict = "transactional"
			}
			if explain {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (rule: %s)\n", verdict, d.Rule)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), verdict)
			return nil
		},
	}

	cmd.Flags().StringVar(&sender, "sender", "", "SMS header, phone number or contact name")
	cmd.Flags().BoolVar(&explain, "explain", false, "show the rule that decided")

	return cmd
}

func newExtractCommand(opts *globalOptions) *cobra.Command {
	var sender string

	cmd := &cobra.Command{
		Use:   "extract <message>",
		Short: "Extract transaction details from a message as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, _, err := opts.newEngine(cmd)
			if err != nil {
				return err
			}

			rec, _ := eng.ExtractTransaction(args[0], sender)
			return writeJSON(cmd.OutOrStdout(), newRecordView(rec))
		},
	}

	cmd.Flags().StringVar(&sender, "sender", "", "SMS header, phone number or contact name")

	return cmd
}

// recordView is the JSON shape of a TransactionRecord. Absent fields are omitted.
type recordView struct {
	Amount          string   `json:"amount,omitempty"`
	Type            string   `json:"type,omitempty"`
	BankName        string   `json:"bank_name,omitempty"`
	CardType        string   `json:"card_type,omitempty"`
	Merchant        string   `json:"merchant,omitempty"`
	Mode            string   `json:"mode,omitempty"`
	Date            string   `json:"date,omitempty"`
	ReferenceNumber string   `json:"reference_number,omitempty"`
	Tags            []string `json:"tags,omitempty"`
}

// newRecordView returns nil for a nil record, which encodes as null.
func newRecordView(rec *model.TransactionRecord) *recordView {
	if rec == nil {
		return nil
	}
	return &recordView{
		Amount:          rec.DisplayAmount(),
		Type:            string(rec.Type),
		BankName:        rec.BankName,
		CardType:        string(rec.CardType),
		Merchant:        rec.Merchant,
		Mode:            string(rec.Mode),
		Date:            rec.DisplayDate(),
		ReferenceNumber: rec.ReferenceNumber,
		Tags:            rec.Tags,
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}
