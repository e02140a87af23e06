package card

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Zachkp/linkpage/internal/content"
	"github.com/Zachkp/linkpage/internal/profile"
)

const copiedMark = "✓"

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.state.Ready() {
		return m.styles.Frame.Render(m.spin.View() + " " + content.Loading)
	}

	p := m.state.Data
	sections := []string{
		m.header(p),
		m.tagline(),
	}
	if p.HasCTA() {
		sections = append(sections, hyperlink(p.CTA.URL, m.styles.CTA.Render(p.CTA.Text)))
	}
	if len(p.SocialLinks) > 0 {
		sections = append(sections, m.social(p.SocialLinks))
	}
	if m.showPayments() {
		sections = append(sections, m.payments(p.PaymentAddresses))
	}
	sections = append(sections, m.footer(p))
	if m.notice != "" {
		sections = append(sections, m.styles.Muted.Render(m.notice))
	}
	sections = append(sections, m.help.View(m.keys))

	return m.styles.Frame.Render(lipgloss.JoinVertical(lipgloss.Left, withGaps(sections)...))
}

func (m *Model) header(p *profile.Profile) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render(p.Identity.Title),
		m.styles.Muted.Render(p.Identity.Name),
	)
}

// tagline renders the lead-in followed by the subtitle under the cursor.
// An empty list leaves the lead-in alone.
func (m *Model) tagline() string {
	line := m.styles.Tagline.Render(content.LeadIn)
	if m.taglines == nil {
		return line
	}
	s, ok := m.taglines.Current()
	if !ok {
		return line
	}
	if s.HasLink() {
		return line + hyperlink(s.Link, m.styles.Link.Render(s.Text))
	}
	return line + m.styles.Tagline.Bold(true).Render(s.Text)
}

func (m *Model) social(links []profile.SocialLink) string {
	parts := make([]string, 0, len(links))
	for _, l := range links {
		parts = append(parts, hyperlink(l.URL, m.styles.Link.Render(l.Name)))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Muted.Render(content.ConnectHeading),
		strings.Join(parts, m.styles.Muted.Render(" · ")),
	)
}

func (m *Model) payments(addrs []profile.PaymentAddress) string {
	copied := m.copier.Copied()

	chips := make([]string, 0, len(addrs))
	for i, a := range addrs {
		label := fmt.Sprintf("%d %s", i+1, a.Name)
		if a.Name == copied {
			label += " " + m.styles.Copied.Render(copiedMark)
		}
		style := m.styles.Chip
		if i == m.selected {
			style = m.styles.ChipActive
		}
		chips = append(chips, style.Render(label))
	}

	rows := []string{
		m.styles.Muted.Render(content.PaymentsHeading),
		lipgloss.JoinHorizontal(lipgloss.Top, chips...),
	}
	if m.selected < len(addrs) {
		rows = append(rows, m.styles.Muted.Render(addrs[m.selected].Address))
	}
	if copied != "" {
		rows = append(rows, m.styles.Copied.Render(content.CopiedLabel))
	} else {
		rows = append(rows, m.styles.Muted.Render(content.PaymentsKeyHint))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) footer(p *profile.Profile) string {
	f := content.Footer(p)
	by := f.Text
	if f.URL != "" {
		by = hyperlink(f.URL, m.styles.Link.Render(f.Text))
	}
	return m.styles.Muted.Render(content.MadeWith+" ") +
		m.styles.Heart.Render("♥") +
		m.styles.Muted.Render(" "+content.MadeBy+" ") + by
}

func withGaps(sections []string) []string {
	out := make([]string, 0, 2*len(sections))
	for i, s := range sections {
		if i > 0 {
			out = append(out, "")
		}
		out = append(out, s)
	}
	return out
}
