package profile

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFile_Full(t *testing.T) {
	p, err := ParseFile(filepath.Join("testdata", "full.yaml"))
	require.NoError(t, err)

	want := &Profile{
		Identity: Identity{Name: "Zach Kordas-Potter", Title: "Hey, I'm Zach", Avatar: "/images/avatar.webp"},
		Subtitles: []Subtitle{
			{Text: "a Go developer", Link: "https://github.com/Zachkp"},
			{Text: "a Muay Thai enthusiast"},
			{Text: "a pool shark"},
		},
		CTA: &CTA{Text: "Read my blog", URL: "https://example.com/blog"},
		SocialLinks: []SocialLink{
			{Name: "GitHub", URL: "https://github.com/Zachkp", Icon: "/images/github.svg", Color: "hover:text-slate-900"},
			{Name: "LinkedIn", URL: "https://linkedin.com/in/zachkp", Icon: "/images/linkedin.svg", Color: "hover:text-blue-700"},
		},
		PaymentAddresses: []PaymentAddress{
			{Name: "BTC", Address: "bc1qexampleaddress000000000000000000000", Icon: "/images/btc.svg", Color: "hover:border-orange-500"},
			{Name: "ETH", Address: "0x0000000000000000000000000000000000000000", Icon: "/images/eth.svg", Color: "hover:border-indigo-500"},
		},
	}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("ParseFile() mismatch (-want +got):\n%s", diff)
	}

	assert.True(t, p.HasCTA())
	assert.True(t, p.HasPayments())
	assert.True(t, p.Subtitles[0].HasLink())
	assert.False(t, p.Subtitles[1].HasLink())

	btc, ok := p.PaymentAddress("BTC")
	require.True(t, ok)
	assert.Equal(t, "bc1qexampleaddress000000000000000000000", btc.Address)
	_, ok = p.PaymentAddress("DOGE")
	assert.False(t, ok)
}

func TestParseFile_MinimalAllowsEmptySubtitles(t *testing.T) {
	p, err := ParseFile(filepath.Join("testdata", "minimal.yaml"))
	require.NoError(t, err)

	assert.Empty(t, p.Subtitles)
	assert.False(t, p.HasCTA())
	assert.False(t, p.HasPayments())
	assert.Nil(t, p.Footer)
}

func TestParse_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{
			name:  "no name",
			doc:   "profile:\n  title: t\nsubtitles: [a]\n",
			field: "profile.name",
		},
		{
			name:  "no title",
			doc:   "profile:\n  name: n\nsubtitles: [a]\n",
			field: "profile.title",
		},
		{
			name:  "no subtitles",
			doc:   "profile:\n  name: n\n  title: t\n",
			field: "subtitles",
		},
		{
			name:  "subtitle without text",
			doc:   "profile:\n  name: n\n  title: t\nsubtitles:\n  - link: https://x\n",
			field: "subtitles[0].text",
		},
		{
			name:  "cta without url",
			doc:   "profile:\n  name: n\n  title: t\nsubtitles: [a]\ncta:\n  text: go\n",
			field: "cta.url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Nil(t, p)
			assert.ErrorIs(t, err, ErrMissingField)
			assert.ErrorIs(t, err, ErrInvalidDocument)

			var fes FieldErrors
			require.True(t, errors.As(err, &fes))
			fields := make([]string, 0, len(fes))
			for _, fe := range fes {
				fields = append(fields, fe.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestParse_DuplicateNames(t *testing.T) {
	doc := `
profile: {name: n, title: t}
subtitles: [a]
socialLinks:
  - {name: GitHub, url: "https://a"}
  - {name: GitHub, url: "https://b"}
`
	_, err := Parse([]byte(doc))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDocument)
	assert.NotErrorIs(t, err, ErrMissingField)
}

func TestParse_Malformed(t *testing.T) {
	for _, doc := range []string{
		"profile: [unclosed",
		"just a string",
		"profile:\n\tname: tabs are not allowed",
	} {
		p, err := Parse([]byte(doc))
		assert.Nil(t, p, doc)
		assert.ErrorIs(t, err, ErrInvalidDocument, doc)
	}
}

func TestParse_Empty(t *testing.T) {
	p, err := Parse(nil)
	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestParseFile_NotFound(t *testing.T) {
	_, err := ParseFile(filepath.Join("testdata", "nope.yaml"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidDocument)
}
