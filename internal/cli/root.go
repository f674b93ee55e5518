// Package cli implements the idgen command line.
package cli

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/weiawesome/typedid/audit"
	"github.com/weiawesome/typedid/internal/config"
	"github.com/weiawesome/typedid/internal/registry"
	"github.com/weiawesome/typedid/pkg/jwt"
	pkglog "github.com/weiawesome/typedid/pkg/log"
)

// app is the state shared by all subcommands, filled in before any of them
// runs.
type app struct {
	configPath string
	cfg        *config.Config
	logger     zerolog.Logger
	registry   *registry.Registry
}

// NewRoot constructs the idgen root command.
func NewRoot() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "idgen",
		Short:         "Mint, inspect and prettify typed identifiers",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default ./config/config.yaml)")

	root.AddCommand(newNewCommand(a))
	root.AddCommand(newInspectCommand(a))
	root.AddCommand(newPrettyCommand(a))
	root.AddCommand(newTailCommand(a))
	root.AddCommand(newOpenCommand(a))
	return root
}

func (a *app) init() error {
	var err error
	if a.configPath != "" {
		a.cfg, err = config.LoadFile(a.configPath)
	} else {
		a.cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	pkglog.Init(a.cfg.Log)
	a.logger = pkglog.New(a.cfg.Log)

	a.registry, err = registry.Build(a.cfg, a.logger)
	return err
}

// recorder connects the configured audit sinks.
func (a *app) recorder(ctx context.Context) (*audit.Recorder, func() error, error) {
	return registry.BuildRecorder(ctx, a.cfg.Audit, a.logger)
}

// tokens loads the envelope token signer.
func (a *app) tokens() (*jwt.Manager, error) {
	if a.cfg.Token.PrivateKeyFile == "" {
		a.logger.Warn().Msg("no token.private_key_file configured, tokens are signed with an ephemeral key")
	}
	return jwt.Load(a.cfg.Token)
}
