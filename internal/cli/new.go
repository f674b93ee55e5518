package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"

	"github.com/spf13/cobra"

	"github.com/weiawesome/typedid/audit"
	"github.com/weiawesome/typedid/id"
	"github.com/weiawesome/typedid/internal/registry"
	pkglog "github.com/weiawesome/typedid/pkg/log"
)

func newNewCommand(a *app) *cobra.Command {
	var (
		kind     string
		label    string
		count    int
		envelope bool
		seal     bool
		asJSON   bool
		metadata map[string]string
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Mint new identifiers",
		Example: `  idgen new --kind ulid --label Order --count 3
  idgen new --kind snowflake --label Session --envelope --meta source=cli
  idgen new --kind uuid --label Invoice --seal`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := registry.ParseKind(kind)
			if err != nil {
				return err
			}
			records, err := a.registry.Mint(k, label, count)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !envelope && !seal {
				for _, rec := range records {
					if asJSON {
						if err := writeJSON(out, map[string]string{"label": rec.Label, "id": rec.ID}); err != nil {
							return err
						}
						continue
					}
					fmt.Fprintln(out, id.Join(rec.Label, rec.ID))
				}
				return nil
			}

			recorder, closeSinks, err := a.recorder(cmd.Context())
			if err != nil {
				return err
			}
			defer closeSinks()

			var signer audit.Signer
			if seal {
				m, err := a.tokens()
				if err != nil {
					return err
				}
				signer = m
			}

			ctx := pkglog.WithKind(pkglog.WithLogger(cmd.Context(), a.logger), string(k))
			for _, rec := range records {
				if len(metadata) > 0 {
					rec.Metadata = maps.Clone(metadata)
				}
				if err := recorder.Write(ctx, rec); err != nil {
					l := pkglog.Ctx(ctx)
					l.Error().Err(err).EmbedObject(rec).Msg("failed to record envelope")
					return err
				}
				switch {
				case signer != nil:
					token, err := audit.Seal(signer, rec)
					if err != nil {
						return err
					}
					fmt.Fprintln(out, token)
				case asJSON:
					if err := writeJSON(out, rec); err != nil {
						return err
					}
				default:
					fmt.Fprintln(out, rec.Display())
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", string(registry.KindUUID), "generator kind: cuid2, uuid, uuidv7, ulid, snowflake, pretty, ksuid, nanoid")
	cmd.Flags().StringVar(&label, "label", "", "entity label printed before the raw value")
	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of identifiers")
	cmd.Flags().BoolVar(&envelope, "envelope", false, "stamp creation time and record through the audit sinks")
	cmd.Flags().BoolVar(&seal, "seal", false, "like --envelope, but print each envelope as a signed token")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON lines")
	cmd.Flags().StringToStringVar(&metadata, "meta", nil, "envelope metadata as key=value")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
