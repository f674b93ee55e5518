package cli

import (
	"github.com/spf13/cobra"

	"github.com/weiawesome/typedid/internal/registry"
)

func newInspectCommand(a *app) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:     "inspect <raw>",
		Short:   "Decode and validate a raw identifier",
		Example: "  idgen inspect --kind snowflake 824227036833910784",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := registry.ParseKind(kind)
			if err != nil {
				return err
			}
			src, err := a.registry.Source(k)
			if err != nil {
				return err
			}
			res, err := src.Inspect(args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "generator kind of the raw value")
	cmd.MarkFlagRequired("kind")
	return cmd
}
