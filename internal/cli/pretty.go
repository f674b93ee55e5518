package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/weiawesome/typedid/generator/pretty"
)

func newPrettyCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pretty",
		Short: "Convert between numeric seeds and pretty ids",
	}

	prettifier := func() (*pretty.Prettifier, error) {
		return pretty.New(
			pretty.WithPartsSize(a.cfg.Pretty.PartsSize),
			pretty.WithDelimiter(a.cfg.Pretty.Delimiter),
		)
	}

	cmd.AddCommand(&cobra.Command{
		Use:     "encode <seed>",
		Short:   "Render a non-negative int64 as a pretty id",
		Example: "  idgen pretty encode 824227036833910784",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid seed %q: %w", args[0], err)
			}
			p, err := prettifier()
			if err != nil {
				return err
			}
			s, err := p.Prettify(seed)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "decode <pretty>",
		Short:   "Recover the seed of a pretty id",
		Example: "  idgen pretty decode ARPJ-27036-GVQS-07849",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := prettifier()
			if err != nil {
				return err
			}
			seed, err := p.ToIDSeed(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), seed)
			return nil
		},
	})

	return cmd
}
