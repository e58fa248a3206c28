package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/MP-oliveira/jurisacompanha-backend/internal/application/ingestion"
)

// NewParseCmd creates the "parse" command, a local dry-run of the email
// notification parser.  Nothing is persisted; the structured extraction is
// printed as-is so notification formats can be checked before wiring a
// mail gateway.
func NewParseCmd() *cobra.Command {
	var (
		from    string
		subject string
	)

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a tribunal notification email from a local file (dry run)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			msg := ingestion.EmailMessage{
				From:       from,
				Subject:    subject,
				Body:       string(body),
				ReceivedAt: time.Now(),
			}

			parsed := ingestion.Parse(msg)
			if parsed == nil {
				return fmt.Errorf("message is not a recognized tribunal notification (from=%q subject=%q)", from, subject)
			}

			return PrintResult(cmd, parsed)
		},
	}

	cmd.Flags().StringVar(&from, "from", "naoresponda.pje.push1@trf1.jus.br", "sender address of the notification")
	cmd.Flags().StringVar(&subject, "subject", "", "subject line of the notification (required)")
	cmd.MarkFlagRequired("subject")

	return cmd
}

//Personal.AI order the ending
