package server

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/linkpage/internal/store"
)

// visitorRetention is how long visits are kept.
const visitorRetention = 12 * 30 * 24 * time.Hour

// VisitStore records and summarizes page views.
type VisitStore interface {
	RecordVisit(ctx context.Context, hashedIP, userAgent, path string, at time.Time) error
	CleanupVisitors(ctx context.Context, cutoff time.Time) (int64, error)
	Stats(ctx context.Context, now time.Time) (*store.Stats, error)
}

var untrackedPrefixes = []string{
	"/static/",
	"/images/",
	"/admin/",
	"/favicon",
	"/healthz",
	"/data.yaml",
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// hashIP is consistent per IP for the lifetime of the salt.
func (s *Server) hashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + s.salt))
	return hex.EncodeToString(sum[:])[:16]
}

// visitorTracking records page views with hashed IPs in the background.
// Static assets, admin pages and DNT requests are skipped.
func (s *Server) visitorTracking() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if c.Request.Method != "GET" || isUntracked(path) || c.GetHeader("DNT") == "1" {
			c.Next()
			return
		}

		hashedIP := s.hashIP(c.ClientIP())
		userAgent := c.GetHeader("User-Agent")
		now := time.Now()

		s.tracking.Add(1)
		go func() {
			defer s.tracking.Done()
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.visits.RecordVisit(ctx, hashedIP, userAgent, path, now); err != nil {
				s.log.Warn("Error recording visitor", zap.Error(err))
			}
		}()
		c.Next()
	}
}

func isUntracked(path string) bool {
	for _, p := range untrackedPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// cleanupLoop drops old visits once at startup and then daily.
func (s *Server) cleanupLoop(ctx context.Context) {
	s.cleanupVisitors(ctx)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.cleanupVisitors(ctx)
		}
	}
}

func (s *Server) cleanupVisitors(ctx context.Context) {
	n, err := s.visits.CleanupVisitors(ctx, time.Now().Add(-visitorRetention))
	if err != nil {
		s.log.Warn("Error cleaning up old visitor data", zap.Error(err))
		return
	}
	if n > 0 {
		s.log.Info("Privacy cleanup removed old visitor records", zap.Int64("rows", n))
	}
}
