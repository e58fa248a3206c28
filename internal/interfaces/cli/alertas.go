package cli

import (
	"github.com/spf13/cobra"

	"github.com/MP-oliveira/jurisacompanha-backend/pkg/client"
)

// alertaTable adapts a list of alertas for table output.
type alertaTable struct {
	Alertas []client.Alerta `json:"alertas"`
	Total   int64           `json:"total"`
}

func (t alertaTable) TableHeaders() []string {
	return []string{"ID", "TIPO", "PRIORIDADE", "TITULO", "VENCIMENTO", "LIDO"}
}

func (t alertaTable) TableRows() [][]string {
	rows := make([][]string, 0, len(t.Alertas))
	for _, a := range t.Alertas {
		rows = append(rows, []string{
			a.ID, a.Tipo, a.Prioridade, a.Titulo, fmtTimePtr(a.DataVencimento), fmtBool(a.Lido),
		})
	}
	return rows
}

// NewAlertasCmd creates the "alertas" command group.
func NewAlertasCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alertas",
		Short: "Manage deadline and hearing alerts",
	}

	cmd.AddCommand(
		newAlertasListCmd(),
		newAlertasReadCmd(),
		newAlertasDeleteCmd(),
	)

	return cmd
}

func newAlertasListCmd() *cobra.Command {
	var (
		page       int
		pageSize   int
		unreadOnly bool
		processoID string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List alerts",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := requireClient(cmd)
			if err != nil {
				return err
			}

			list, err := api.Alertas().List(cmd.Context(), client.ListAlertasOptions{
				Page:       page,
				PageSize:   pageSize,
				UnreadOnly: unreadOnly,
				ProcessoID: processoID,
			})
			if err != nil {
				return err
			}

			return PrintResult(cmd, alertaTable{Alertas: list.Alertas, Total: list.Total})
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "page size")
	cmd.Flags().BoolVar(&unreadOnly, "unread", false, "only unread alerts")
	cmd.Flags().StringVar(&processoID, "processo", "", "filter by processo id")

	return cmd
}

func newAlertasReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read <id>",
		Short: "Mark an alert as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := requireClient(cmd)
			if err != nil {
				return err
			}

			if err := api.Alertas().MarkRead(cmd.Context(), args[0]); err != nil {
				return err
			}
			PrintSuccess(cmd, "alerta "+args[0]+" marked as read")
			return nil
		},
	}
}

func newAlertasDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove an alert",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := requireClient(cmd)
			if err != nil {
				return err
			}

			if err := api.Alertas().Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			PrintSuccess(cmd, "alerta "+args[0]+" deleted")
			return nil
		},
	}
}

//Personal.AI order the ending
