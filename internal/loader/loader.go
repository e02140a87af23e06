// Package loader fetches the profile data file once and publishes the
// outcome as {Data, Loading, Err}.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Zachkp/linkpage/internal/profile"
)

// DefaultPath is where the site serves the data file.
const DefaultPath = "/data.yaml"

const maxBodySize = 1 << 20

// ErrUnexpectedStatus is returned for non-2xx responses.
var ErrUnexpectedStatus = errors.New("loader: unexpected status")

// State is a snapshot of a load attempt. Data is non-nil only on success.
type State struct {
	Data    *profile.Profile
	Loading bool
	Err     error
}

// Ready reports whether the record can be rendered.
func (s State) Ready() bool {
	return !s.Loading && s.Err == nil && s.Data != nil
}

type Option func(*Loader)

func WithClient(c *http.Client) Option {
	return func(l *Loader) { l.client = c }
}

func WithLogger(log *zap.Logger) Option {
	return func(l *Loader) { l.log = log }
}

// Loader performs a single fetch of the data file. It never retries; a
// fresh Loader is needed for another attempt.
type Loader struct {
	url    string
	client *http.Client
	log    *zap.Logger

	once  sync.Once
	done  chan struct{}
	mu    sync.RWMutex
	state State
}

// New returns a loader for url. It reports Loading until Load settles.
func New(url string, opts ...Option) *Loader {
	l := &Loader{
		url:    url,
		client: &http.Client{Timeout: 15 * time.Second},
		log:    zap.NewNop(),
		done:   make(chan struct{}),
		state:  State{Loading: true},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// ResolveURL joins the fixed data path onto a site base URL. A base that
// already names a .yaml file is used as is.
func ResolveURL(base string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("base url %q must be absolute", base)
	}
	if len(u.Path) > 5 && u.Path[len(u.Path)-5:] == ".yaml" {
		return u.String(), nil
	}
	return u.JoinPath(DefaultPath).String(), nil
}

// URL returns the resource this loader fetches.
func (l *Loader) URL() string {
	return l.url
}

// Load runs the fetch on the first call and blocks until it settles. Later
// calls wait for the same attempt and return its state.
func (l *Loader) Load(ctx context.Context) State {
	l.once.Do(func() {
		defer close(l.done)

		p, err := l.fetch(ctx)

		l.mu.Lock()
		l.state = State{Data: p, Err: err}
		l.mu.Unlock()

		if err != nil {
			l.log.Error("Failed to load profile data", zap.String("url", l.url), zap.Error(err))
			return
		}
		l.log.Info("Loaded profile data",
			zap.String("url", l.url),
			zap.Int("subtitles", len(p.Subtitles)),
			zap.Int("social_links", len(p.SocialLinks)))
	})

	<-l.done
	return l.State()
}

// State returns the current snapshot.
func (l *Loader) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state
}

// Done is closed once the attempt has settled.
func (l *Loader) Done() <-chan struct{} {
	return l.done
}

func (l *Loader) fetch(ctx context.Context) (*profile.Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/yaml, text/yaml, text/plain")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", l.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return profile.Parse(body)
}
