package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weiawesome/typedid/audit"
	pkglog "github.com/weiawesome/typedid/pkg/log"
	"github.com/weiawesome/typedid/pkg/pubsub"
)

func newTailCommand(a *app) *cobra.Command {
	var label string

	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Print envelopes recorded through the Redis audit sink",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ps, err := pubsub.NewRedisPubSub(a.cfg.Audit.Redis)
			if err != nil {
				return err
			}
			defer ps.Close()

			records, err := audit.Tail(cmd.Context(), ps, label)
			if err != nil {
				return err
			}
			a.logger.Info().Str(pkglog.FieldChannel, pubsub.AuditChannel(label)).Msg("tailing audit records")

			out := cmd.OutOrStdout()
			for rec := range records {
				fmt.Fprintln(out, rec.Display())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&label, "label", "*", `entity label to follow, "*" for all`)
	return cmd
}
