package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/MP-oliveira/jurisacompanha-backend/pkg/client"
)

// processoTable adapts a list of processos for table output.
type processoTable struct {
	Processos []client.Processo `json:"processos"`
	Total     int64             `json:"total"`
}

func (t processoTable) TableHeaders() []string {
	return []string{"ID", "NUMERO", "CLASSE", "TRIBUNAL", "STATUS", "PROXIMA AUDIENCIA"}
}

func (t processoTable) TableRows() [][]string {
	rows := make([][]string, 0, len(t.Processos))
	for _, p := range t.Processos {
		rows = append(rows, []string{
			p.ID, p.Numero, p.Classe, p.Tribunal, p.Status, fmtTimePtr(p.ProximaAudiencia),
		})
	}
	return rows
}

// NewProcessosCmd creates the "processos" command group.
func NewProcessosCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "processos",
		Short: "Manage tracked legal cases",
	}

	cmd.AddCommand(
		newProcessosListCmd(),
		newProcessosGetCmd(),
		newProcessosCreateCmd(),
		newProcessosDeleteCmd(),
		newProcessosHistoricoCmd(),
	)

	return cmd
}

func newProcessosListCmd() *cobra.Command {
	var (
		page     int
		pageSize int
		status   string
		search   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tracked processos",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := requireClient(cmd)
			if err != nil {
				return err
			}

			list, err := api.Processos().List(cmd.Context(), client.ListProcessosOptions{
				Page:     page,
				PageSize: pageSize,
				Status:   status,
				Search:   search,
			})
			if err != nil {
				return err
			}

			return PrintResult(cmd, processoTable{Processos: list.Processos, Total: list.Total})
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "page size")
	cmd.Flags().StringVar(&status, "status", "", "filter by status (active, archived, suspended)")
	cmd.Flags().StringVar(&search, "search", "", "search by case number, class, or subject")

	return cmd
}

func newProcessosGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one processo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := requireClient(cmd)
			if err != nil {
				return err
			}

			p, err := api.Processos().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return PrintResult(cmd, p)
		},
	}
}

func newProcessosCreateCmd() *cobra.Command {
	var input client.CreateProcessoInput
	var audiencia string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new processo",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := requireClient(cmd)
			if err != nil {
				return err
			}

			if audiencia != "" {
				ts, err := time.Parse("2006-01-02", audiencia)
				if err != nil {
					return fmt.Errorf("invalid --audiencia date %q: %w", audiencia, err)
				}
				input.ProximaAudiencia = &ts
			}

			p, err := api.Processos().Create(cmd.Context(), &input)
			if err != nil {
				return err
			}

			PrintSuccess(cmd, "processo "+p.Numero+" registered with id "+p.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&input.Numero, "numero", "", "CNJ case number (required)")
	cmd.Flags().StringVar(&input.Classe, "classe", "", "case class")
	cmd.Flags().StringVar(&input.Assunto, "assunto", "", "case subject")
	cmd.Flags().StringVar(&input.Tribunal, "tribunal", "", "court")
	cmd.Flags().StringVar(&input.Comarca, "comarca", "", "judicial district")
	cmd.Flags().StringVar(&input.Observacoes, "observacoes", "", "free-form notes")
	cmd.Flags().StringVar(&audiencia, "audiencia", "", "next hearing date (YYYY-MM-DD)")
	cmd.MarkFlagRequired("numero")

	return cmd
}

func newProcessosDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a processo and its alerts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := requireClient(cmd)
			if err != nil {
				return err
			}

			if err := api.Processos().Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			PrintSuccess(cmd, "processo "+args[0]+" deleted")
			return nil
		},
	}
}

func newProcessosHistoricoCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "historico <id>",
		Short: "Show the ingestion history of a processo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := requireClient(cmd)
			if err != nil {
				return err
			}

			h, err := api.Processos().History(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			return PrintResult(cmd, h)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of history entries")

	return cmd
}

// fmtTimePtr renders an optional timestamp for table cells.
func fmtTimePtr(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}

// fmtBool renders a boolean as a compact table cell.
func fmtBool(b bool) string {
	return strconv.FormatBool(b)
}

//Personal.AI order the ending
