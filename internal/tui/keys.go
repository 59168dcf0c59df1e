package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	PlayPause key.Binding
	Next      key.Binding
	Prev      key.Binding
	SkipBack  key.Binding
	SkipFwd   key.Binding
	ScrubBack key.Binding
	ScrubFwd  key.Binding
	Commit    key.Binding
	Cancel    key.Binding
	Up        key.Binding
	Down      key.Binding
	Tab       key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func newKeyMap(skipEnabled bool) keyMap {
	k := keyMap{
		PlayPause: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		Next:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next")),
		Prev:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "previous")),
		SkipBack:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "skip back")),
		SkipFwd:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "skip forward")),
		ScrubBack: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "scrub back")),
		ScrubFwd:  key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "scrub forward")),
		Commit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "seek")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel scrub")),
		Up:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "scroll up")),
		Down:      key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "scroll down")),
		Tab:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch panel")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
	k.SkipBack.SetEnabled(skipEnabled)
	k.SkipFwd.SetEnabled(skipEnabled)
	return k
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help, k.PlayPause, k.Next, k.Prev, k.ScrubBack, k.ScrubFwd, k.Tab}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PlayPause, k.Next, k.Prev, k.SkipBack, k.SkipFwd},
		{k.ScrubBack, k.ScrubFwd, k.Commit, k.Cancel},
		{k.Up, k.Down, k.Tab, k.Help, k.Quit},
	}
}
