package card

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Zachkp/linkpage/internal/theme"
)

type styles struct {
	Title      lipgloss.Style
	Tagline    lipgloss.Style
	Link       lipgloss.Style
	Muted      lipgloss.Style
	CTA        lipgloss.Style
	Chip       lipgloss.Style
	ChipActive lipgloss.Style
	Copied     lipgloss.Style
	Heart      lipgloss.Style
	Spinner    lipgloss.Style
	Frame      lipgloss.Style
}

func newStyles(p theme.Palette) styles {
	fg := lipgloss.Color(p.Foreground)
	muted := lipgloss.Color(p.Muted)
	accent := lipgloss.Color(p.Accent)

	chip := lipgloss.NewStyle().
		Foreground(fg).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(muted).
		Padding(0, 1)

	return styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(fg).MarginBottom(1),
		Tagline: lipgloss.NewStyle().Foreground(fg),
		Link:    lipgloss.NewStyle().Foreground(accent).Underline(true),
		Muted:   lipgloss.NewStyle().Foreground(muted),
		CTA: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color(p.AccentAlt)).
			Padding(0, 3),
		Chip:       chip,
		ChipActive: chip.BorderForeground(accent).Bold(true),
		Copied:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.Success)),
		Heart:      lipgloss.NewStyle().Foreground(lipgloss.Color(p.Heart)),
		Spinner:    lipgloss.NewStyle().Foreground(accent),
		Frame:      lipgloss.NewStyle().Padding(1, 2),
	}
}

// hyperlink wraps text in an OSC 8 terminal hyperlink. Terminals without
// support show the text only.
func hyperlink(url, text string) string {
	return "\x1b]8;;" + url + "\x1b\\" + text + "\x1b]8;;\x1b\\"
}
