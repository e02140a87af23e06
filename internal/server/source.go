package server

import (
	"fmt"
	"io/fs"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/Zachkp/linkpage/internal/profile"
)

const (
	dataFile        = "data.yaml"
	profileCacheKey = "profile"
)

// profileSource reads data.yaml from the site and keeps the parsed record
// for a TTL so edits show up without a restart. Failures are not cached.
type profileSource struct {
	site  fs.FS
	cache *cache.Cache
	log   *zap.Logger
}

func newProfileSource(site fs.FS, ttl time.Duration, log *zap.Logger) *profileSource {
	return &profileSource{
		site:  site,
		cache: cache.New(ttl, 2*ttl),
		log:   log,
	}
}

func (s *profileSource) Load() (*profile.Profile, error) {
	if v, ok := s.cache.Get(profileCacheKey); ok {
		return v.(*profile.Profile), nil
	}

	raw, err := s.Raw()
	if err != nil {
		return nil, err
	}
	p, err := profile.Parse(raw)
	if err != nil {
		return nil, err
	}

	s.cache.SetDefault(profileCacheKey, p)
	s.log.Debug("Parsed profile data", zap.Int("subtitles", len(p.Subtitles)))
	return p, nil
}

// Raw returns the data file bytes as served at /data.yaml.
func (s *profileSource) Raw() ([]byte, error) {
	raw, err := fs.ReadFile(s.site, dataFile)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dataFile, err)
	}
	return raw, nil
}

// Invalidate drops the cached record.
func (s *profileSource) Invalidate() {
	s.cache.Delete(profileCacheKey)
}
