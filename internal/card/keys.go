package card

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next  key.Binding
	Prev  key.Binding
	Copy  key.Binding
	CopyN key.Binding
	Theme key.Binding
	Quit  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("right", "l", "tab"),
			key.WithHelp("→/tab", "next address"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h", "shift+tab"),
			key.WithHelp("←", "prev address"),
		),
		Copy: key.NewBinding(
			key.WithKeys("enter", "c"),
			key.WithHelp("enter", "copy"),
		),
		CopyN: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "copy #n"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// withPayments enables or disables the address bindings. Disabled
// bindings are left out of the help line.
func (k keyMap) withPayments(enabled bool) keyMap {
	k.Next.SetEnabled(enabled)
	k.Prev.SetEnabled(enabled)
	k.Copy.SetEnabled(enabled)
	k.CopyN.SetEnabled(enabled)
	return k
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Copy, k.CopyN, k.Theme, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Copy, k.CopyN},
		{k.Theme, k.Quit},
	}
}
