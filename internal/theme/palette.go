package theme

// Palette is the set of color tokens a renderer needs. Values are hex
// colors usable both as CSS custom properties and lipgloss colors.
type Palette struct {
	Background string
	Surface    string
	Foreground string
	Muted      string
	Accent     string
	AccentAlt  string
	Success    string
	Heart      string
}

var palettes = map[Mode]Palette{
	Light: {
		Background: "#f1f5f9",
		Surface:    "#ffffff",
		Foreground: "#0f172a",
		Muted:      "#64748b",
		Accent:     "#2563eb",
		AccentAlt:  "#9333ea",
		Success:    "#16a34a",
		Heart:      "#ef4444",
	},
	Dark: {
		Background: "#0f172a",
		Surface:    "#1e293b",
		Foreground: "#f1f5f9",
		Muted:      "#94a3b8",
		Accent:     "#60a5fa",
		AccentAlt:  "#c084fc",
		Success:    "#4ade80",
		Heart:      "#f87171",
	},
}

// PaletteFor returns the tokens for m; unknown modes get Light.
func PaletteFor(m Mode) Palette {
	if p, ok := palettes[m]; ok {
		return p
	}
	return palettes[Light]
}

// Vars renders the palette as CSS custom properties.
func (p Palette) Vars() map[string]string {
	return map[string]string{
		"--bg":         p.Background,
		"--surface":    p.Surface,
		"--fg":         p.Foreground,
		"--muted":      p.Muted,
		"--accent":     p.Accent,
		"--accent-alt": p.AccentAlt,
		"--success":    p.Success,
		"--heart":      p.Heart,
	}
}
