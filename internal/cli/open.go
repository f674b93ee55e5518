package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weiawesome/typedid/audit"
)

func newOpenCommand(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "open <token>",
		Short: "Verify a sealed envelope token and print the envelope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.tokens()
			if err != nil {
				return err
			}
			rec, err := audit.Unseal(m, args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), rec)
			}
			fmt.Fprintln(cmd.OutOrStdout(), rec.Display())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
