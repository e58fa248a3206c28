package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewConsultasCmd creates the "consultas" command.
func NewConsultasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "consultas <numero>",
		Short: "Consult a case number in the public CNJ DataJud registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := requireClient(cmd)
			if err != nil {
				return err
			}

			res, err := api.Consultas().Consultar(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			cliCtx, ctxErr := GetCLIContext(cmd)
			if ctxErr == nil && cliCtx.Verbose && res.Cached {
				fmt.Fprintln(cmd.ErrOrStderr(), "(served from cache)")
			}

			return PrintResult(cmd, res)
		},
	}
}

//Personal.AI order the ending
