package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap/zapcore"
)

// Config is read from the environment first; flags override it.
type Config struct {
	Port         string
	GinMode      string
	SiteDir      string
	DBPath       string
	AdminToken   string
	DataURL      string
	LogLevel     string
	LogFile      string
	ShowPayments bool
}

func getenvOr(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}

func configFromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Port:       getenvOr(getenv, "PORT", "8080"),
		GinMode:    getenv("GIN_MODE"),
		SiteDir:    getenv("LINKPAGE_SITE_DIR"),
		DBPath:     getenvOr(getenv, "LINKPAGE_DB", "linkpage.db"),
		AdminToken: getenv("ADMIN_TOKEN"),
		DataURL:    getenvOr(getenv, "LINKPAGE_DATA_URL", "http://localhost:8080"),
		LogLevel:   getenvOr(getenv, "LINKPAGE_LOG_LEVEL", "info"),
		LogFile:    getenvOr(getenv, "LINKPAGE_LOG_FILE", filepath.Join(os.TempDir(), "linkpage-card.log")),
	}

	payments, err := strconv.ParseBool(getenvOr(getenv, "LINKPAGE_PAYMENTS", "true"))
	if err != nil {
		return cfg, fmt.Errorf("LINKPAGE_PAYMENTS: %w", err)
	}
	cfg.ShowPayments = payments
	return cfg, nil
}

// validate checks the values that would otherwise panic or fail late.
func (c Config) validate() error {
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	switch c.GinMode {
	case "", gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		return fmt.Errorf("gin mode %q: want debug, release or test", c.GinMode)
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("port %q: %w", c.Port, err)
	}
	return nil
}
