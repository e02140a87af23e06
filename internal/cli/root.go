// Package cli wires configuration, logging and the linkpage commands.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type app struct {
	cfg    Config
	envErr error
}

func newApp(getenv func(string) string) *app {
	cfg, err := configFromEnv(getenv)
	return &app{cfg: cfg, envErr: err}
}

// Execute runs the linkpage command line.
func Execute() error {
	return newRootCmd(newApp(os.Getenv)).Execute()
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "linkpage",
		Short: "Personal landing page with a terminal card",
		Long: `linkpage serves a single-page profile built from data.yaml: taglines,
social links, an optional call to action and copyable payment addresses.

"linkpage serve" runs the web page. "linkpage card" shows the same profile in
the terminal, loaded from a running server.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.envErr != nil {
				return a.envErr
			}
			return a.cfg.validate()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfg.LogLevel, "log-level", a.cfg.LogLevel, "log level (debug, info, warn, error)")
	flags.BoolVar(&a.cfg.ShowPayments, "payments", a.cfg.ShowPayments, "show the payment addresses section")
	flags.StringVar(&a.cfg.DBPath, "db", a.cfg.DBPath, "sqlite database for preferences and visitors (empty disables)")

	root.AddCommand(newServeCmd(a), newCardCmd(a))
	return root
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func syncLogger(log *zap.Logger) {
	_ = log.Sync()
}
