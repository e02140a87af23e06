package cli

import (
	"context"
	"fmt"
	"net"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Zachkp/linkpage/internal/server"
	"github.com/Zachkp/linkpage/internal/store"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the landing page and /data.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(a.cfg.LogLevel, "")
			if err != nil {
				return err
			}
			defer syncLogger(log)

			ctx, stop := signalContext(cmd.Context())
			defer stop()
			return runServe(ctx, a.cfg, log)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&a.cfg.Port, "port", "p", a.cfg.Port, "port to listen on")
	flags.StringVar(&a.cfg.SiteDir, "site-dir", a.cfg.SiteDir, "directory with data.yaml, images/ and static/ (default embedded site)")
	flags.StringVar(&a.cfg.GinMode, "gin-mode", a.cfg.GinMode, "gin mode (debug, release, test)")
	return cmd
}

func runServe(ctx context.Context, cfg Config, log *zap.Logger) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	var visits server.VisitStore
	if cfg.DBPath != "" {
		st, err := store.Open(ctx, cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer st.Close()
		visits = st
	} else {
		log.Info("Visitor tracking disabled")
	}

	srv, err := server.New(server.Config{
		Addr:         net.JoinHostPort("", cfg.Port),
		SiteDir:      cfg.SiteDir,
		AdminToken:   cfg.AdminToken,
		ShowPayments: cfg.ShowPayments,
	}, visits, log)
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}
