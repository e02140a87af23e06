// Package server serves the landing page, its data file and static assets.
package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/linkpage/web"
)

type Config struct {
	Addr string

	// SiteDir holds data.yaml, images/ and static/. Empty uses the
	// embedded default site.
	SiteDir string

	// ProfileTTL is how long a parsed data file is reused before it is
	// read again.
	ProfileTTL time.Duration

	// AdminToken enables /admin/api/stats when set.
	AdminToken string

	// HashSalt salts visitor IP hashes. Empty generates a random salt.
	HashSalt string

	ShowPayments bool
}

// Server is the gin application.
type Server struct {
	cfg    Config
	log    *zap.Logger
	engine *gin.Engine
	site   fs.FS
	source *profileSource
	visits VisitStore

	salt     string
	tracking sync.WaitGroup
}

// New builds the server. visits may be nil to disable visitor tracking.
func New(cfg Config, visits VisitStore, log *zap.Logger) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.ProfileTTL <= 0 {
		cfg.ProfileTTL = time.Minute
	}

	site := web.Site()
	if cfg.SiteDir != "" {
		if _, err := os.Stat(cfg.SiteDir); err != nil {
			return nil, fmt.Errorf("site dir: %w", err)
		}
		site = os.DirFS(cfg.SiteDir)
	}

	salt := cfg.HashSalt
	if salt == "" {
		var err error
		if salt, err = generateToken(); err != nil {
			return nil, err
		}
	}

	tmpl, err := template.New("").ParseFS(web.Templates, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		cfg:    cfg,
		log:    log,
		site:   site,
		source: newProfileSource(site, cfg.ProfileTTL, log),
		visits: visits,
		salt:   salt,
	}

	r := gin.New()
	r.Use(requestLogger(log), gin.Recovery())
	r.SetHTMLTemplate(tmpl)
	if visits != nil {
		r.Use(s.visitorTracking())
	}
	s.routes(r)
	s.engine = r

	return s, nil
}

// Handler exposes the engine, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes(r *gin.Engine) {
	r.GET("/", s.handleIndex)
	r.GET("/data.yaml", s.handleData)
	r.POST("/theme", s.handleTheme)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if static, err := fs.Sub(s.site, "static"); err == nil {
		r.StaticFS("/static", http.FS(static))
	}
	if images, err := fs.Sub(s.site, "images"); err == nil {
		r.StaticFS("/images", http.FS(images))
	}

	s.setupAdminRoutes(r)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.visits != nil {
		go s.cleanupLoop(ctx)
	}
	if err := s.watchSite(ctx); err != nil {
		s.log.Warn("Profile reload on change disabled", zap.Error(err))
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("Listening", zap.String("addr", s.cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.tracking.Wait()
	s.log.Info("Server stopped")
	return err
}
