package cli

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Zachkp/linkpage/internal/card"
	"github.com/Zachkp/linkpage/internal/clipboard"
	"github.com/Zachkp/linkpage/internal/loader"
	"github.com/Zachkp/linkpage/internal/store"
	"github.com/Zachkp/linkpage/internal/theme"
)

func newCardCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Show the profile as an interactive terminal card",
		Long: `card fetches /data.yaml from a running linkpage server and renders it in
the terminal. Taglines rotate every 3 seconds and payment addresses can be
copied to the clipboard with enter or their number.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(a.cfg.LogLevel, a.cfg.LogFile)
			if err != nil {
				return err
			}
			defer syncLogger(log)

			ctx, stop := signalContext(cmd.Context())
			defer stop()
			return runCard(ctx, a.cfg, log)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&a.cfg.DataURL, "url", "u", a.cfg.DataURL, "site base URL or full URL of the data file")
	flags.StringVar(&a.cfg.LogFile, "log-file", a.cfg.LogFile, "file the card logs to")
	return cmd
}

func runCard(ctx context.Context, cfg Config, log *zap.Logger) error {
	url, err := loader.ResolveURL(cfg.DataURL)
	if err != nil {
		return err
	}

	th, closeTheme := openTheme(ctx, cfg.DBPath, log)
	defer closeTheme()

	return card.Run(ctx, card.Options{
		Loader:       loader.New(url, loader.WithLogger(log)),
		Theme:        th,
		Clipboard:    clipboard.System(),
		Logger:       log,
		ShowPayments: cfg.ShowPayments,
	})
}

// openTheme restores the saved theme. Without a usable database the theme
// still works for this session but is not remembered.
func openTheme(ctx context.Context, dbPath string, log *zap.Logger) (*theme.Context, func()) {
	noop := func() {}
	if dbPath == "" {
		return theme.Init(ctx, nil, theme.Light, log), noop
	}
	st, err := store.Open(ctx, dbPath)
	if err != nil {
		log.Warn("Theme preference unavailable", zap.String("db", dbPath), zap.Error(err))
		return theme.Init(ctx, nil, theme.Light, log), noop
	}
	return theme.Init(ctx, st, theme.Light, log), func() { st.Close() }
}
