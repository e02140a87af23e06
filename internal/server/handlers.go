package server

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Zachkp/linkpage/internal/clipboard"
	"github.com/Zachkp/linkpage/internal/content"
	"github.com/Zachkp/linkpage/internal/profile"
	"github.com/Zachkp/linkpage/internal/rotator"
	"github.com/Zachkp/linkpage/internal/theme"
)

const themeCookieMaxAge = 365 * 24 * 3600

type pageText struct {
	LeadIn          string
	Loading         string
	ConnectHeading  string
	PaymentsHeading string
	PaymentsHint    string
	MadeWith        string
	MadeBy          string
}

type pageView struct {
	Ready        bool
	Profile      *profile.Profile
	Subtitles    []profile.Subtitle
	Footer       profile.Footer
	ShowPayments bool

	Theme    theme.Mode
	ThemeCSS template.CSS
	Text     pageText

	RotateMs int64
	AckMs    int64
}

func newPageView(mode theme.Mode) pageView {
	return pageView{
		Theme:    mode,
		ThemeCSS: themeCSS(theme.PaletteFor(mode)),
		Text: pageText{
			LeadIn:          content.LeadIn,
			Loading:         content.Loading,
			ConnectHeading:  content.ConnectHeading,
			PaymentsHeading: content.PaymentsHeading,
			PaymentsHint:    content.PaymentsHint,
			MadeWith:        content.MadeWith,
			MadeBy:          content.MadeBy,
		},
		RotateMs: rotator.Period.Milliseconds(),
		AckMs:    clipboard.AckDuration.Milliseconds(),
	}
}

func themeCSS(p theme.Palette) template.CSS {
	vars := p.Vars()
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root{")
	for _, k := range keys {
		fmt.Fprintf(&b, "%s:%s;", k, vars[k])
	}
	b.WriteString("}")
	return template.CSS(b.String())
}

func (s *Server) handleIndex(c *gin.Context) {
	tc := theme.Init(c.Request.Context(), cookieStore{c}, theme.Light, s.log)
	view := newPageView(tc.Mode())

	p, err := s.source.Load()
	if err != nil {
		s.log.Error("Error loading profile data", zap.Error(err))
		c.HTML(http.StatusOK, "index.html", view)
		return
	}

	view.Ready = true
	view.Profile = p
	view.Subtitles = rotator.Shuffle(nil, p.Subtitles)
	view.Footer = content.Footer(p)
	view.ShowPayments = s.cfg.ShowPayments && p.HasPayments()

	c.HTML(http.StatusOK, "index.html", view)
}

func (s *Server) handleData(c *gin.Context) {
	raw, err := s.source.Raw()
	if err != nil {
		s.log.Error("Error reading data file", zap.Error(err))
		c.Status(http.StatusNotFound)
		return
	}
	c.Data(http.StatusOK, "application/yaml; charset=utf-8", raw)
}

func (s *Server) handleTheme(c *gin.Context) {
	tc := theme.Init(c.Request.Context(), cookieStore{c}, theme.Light, s.log)
	mode, err := tc.Toggle(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save theme"})
		return
	}

	c.Header("HX-Refresh", "true")
	c.JSON(http.StatusOK, gin.H{"theme": mode})
}

// cookieStore keeps preferences in cookies of the current request.
type cookieStore struct {
	c *gin.Context
}

func (s cookieStore) Get(_ context.Context, key string) (string, bool, error) {
	v, err := s.c.Cookie(key)
	if err != nil {
		return "", false, nil
	}
	return v, true, nil
}

func (s cookieStore) Set(_ context.Context, key, value string) error {
	s.c.SetSameSite(http.SameSiteLaxMode)
	s.c.SetCookie(key, value, themeCookieMaxAge, "/", "", false, true)
	return nil
}
