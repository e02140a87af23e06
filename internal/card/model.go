// Package card renders the profile as an interactive terminal card.
package card

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Zachkp/linkpage/internal/clipboard"
	"github.com/Zachkp/linkpage/internal/loader"
	"github.com/Zachkp/linkpage/internal/profile"
	"github.com/Zachkp/linkpage/internal/rotator"
	"github.com/Zachkp/linkpage/internal/schedule"
	"github.com/Zachkp/linkpage/internal/theme"
)

type Options struct {
	Context   context.Context
	Loader    *loader.Loader
	Theme     *theme.Context
	Clipboard clipboard.Writer
	Clock     schedule.Clock
	Rand      *rand.Rand
	Logger    *zap.Logger

	ShowPayments bool
}

type (
	loadedMsg struct{ state loader.State }

	// refreshMsg asks for a redraw after a timer changed shared state.
	refreshMsg struct{}

	copiedMsg struct {
		name string
		err  error
	}

	themeMsg struct {
		mode theme.Mode
		err  error
	}
)

// Model is the bubbletea model of the card. Timers fire on their own
// goroutines and reach the update loop through events.
type Model struct {
	ctx    context.Context
	opts   Options
	log    *zap.Logger
	theme  *theme.Context
	keys   keyMap
	help   help.Model
	spin   spinner.Model
	styles styles

	state    loader.State
	taglines *rotator.Rotator[profile.Subtitle]
	copier   *clipboard.Copier

	events   chan tea.Msg
	done     chan struct{}
	stopOnce sync.Once

	selected int
	width    int
	notice   string
	quitting bool
}

func New(opts Options) *Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Clock == nil {
		opts.Clock = schedule.Real()
	}
	th := opts.Theme
	if th == nil {
		th = theme.Init(opts.Context, nil, theme.Light, opts.Logger)
	}

	m := &Model{
		ctx:    opts.Context,
		opts:   opts,
		log:    opts.Logger,
		theme:  th,
		keys:   newKeyMap().withPayments(false),
		help:   help.New(),
		events: make(chan tea.Msg, 1),
		done:   make(chan struct{}),
	}
	m.styles = newStyles(th.Palette())
	m.spin = spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(m.styles.Spinner))
	m.copier = clipboard.NewCopier(opts.Clipboard, clipboard.Options{
		Clock:    opts.Clock,
		Logger:   opts.Logger,
		OnChange: func(string) { m.notify() },
	})
	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.load(), m.waitForEvent())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if m.state.Ready() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case loadedMsg:
		m.onLoaded(msg.state)
		return m, nil

	case refreshMsg:
		return m, m.waitForEvent()

	case copiedMsg:
		m.notice = ""
		if msg.err != nil {
			m.notice = "Could not copy " + msg.name
		}
		return m, nil

	case themeMsg:
		m.styles = newStyles(theme.PaletteFor(msg.mode))
		m.spin.Style = m.styles.Spinner
		m.notice = ""
		if msg.err != nil {
			m.notice = "Theme not saved"
		}
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.shutdown()
		return tea.Quit

	case key.Matches(msg, m.keys.Theme):
		return m.toggleTheme()

	case key.Matches(msg, m.keys.Next):
		m.moveSelection(1)

	case key.Matches(msg, m.keys.Prev):
		m.moveSelection(-1)

	case key.Matches(msg, m.keys.Copy):
		return m.copySelected()

	case key.Matches(msg, m.keys.CopyN):
		if len(msg.Runes) == 0 {
			return nil
		}
		i := int(msg.Runes[0] - '1')
		if i >= 0 && i < len(m.addresses()) {
			m.selected = i
			return m.copySelected()
		}
	}
	return nil
}

func (m *Model) onLoaded(st loader.State) {
	m.state = st
	if !st.Ready() {
		m.log.Debug("Card waiting on profile data", zap.Error(st.Err))
		return
	}

	m.taglines = rotator.New(st.Data.Subtitles, rotator.Config{
		Clock:     m.opts.Clock,
		Rand:      m.opts.Rand,
		OnAdvance: func(int) { m.notify() },
	})
	m.taglines.Start()
	m.keys = newKeyMap().withPayments(m.showPayments())
}

func (m *Model) load() tea.Cmd {
	l := m.opts.Loader
	ctx := m.ctx
	return func() tea.Msg {
		if l == nil {
			return loadedMsg{state: loader.State{Loading: true}}
		}
		return loadedMsg{state: l.Load(ctx)}
	}
}

// notify wakes the update loop. A redraw already queued covers this one.
func (m *Model) notify() {
	select {
	case m.events <- refreshMsg{}:
	default:
	}
}

func (m *Model) waitForEvent() tea.Cmd {
	events, done := m.events, m.done
	return func() tea.Msg {
		select {
		case msg := <-events:
			return msg
		case <-done:
			return nil
		}
	}
}

func (m *Model) showPayments() bool {
	return m.opts.ShowPayments && m.state.Ready() && m.state.Data.HasPayments()
}

func (m *Model) addresses() []profile.PaymentAddress {
	if !m.showPayments() {
		return nil
	}
	return m.state.Data.PaymentAddresses
}

func (m *Model) moveSelection(delta int) {
	n := len(m.addresses())
	if n == 0 {
		return
	}
	m.selected = ((m.selected+delta)%n + n) % n
}

func (m *Model) copySelected() tea.Cmd {
	addrs := m.addresses()
	if m.selected >= len(addrs) {
		return nil
	}
	a := addrs[m.selected]
	copier := m.copier
	return func() tea.Msg {
		return copiedMsg{name: a.Name, err: copier.Copy(a.Address, a.Name)}
	}
}

func (m *Model) toggleTheme() tea.Cmd {
	th, ctx := m.theme, m.ctx
	return func() tea.Msg {
		mode, err := th.Toggle(ctx)
		return themeMsg{mode: mode, err: err}
	}
}

// shutdown cancels every pending timer. It is safe to call more than once.
func (m *Model) shutdown() {
	m.stopOnce.Do(func() {
		if m.taglines != nil {
			m.taglines.Stop()
		}
		m.copier.Close()
		close(m.done)
	})
}
