package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the playback keybindings.
type KeyMap struct {
	Quit    key.Binding
	Help    key.Binding
	Pause   key.Binding
	Step    key.Binding
	Restart key.Binding
	Reset   key.Binding
	Faster  key.Binding
	Slower  key.Binding
}

func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Pause: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space", "pause/resume"),
		),
		Step: key.NewBinding(
			key.WithKeys("right", "n"),
			key.WithHelp("→/n", "next step"),
		),
		Restart: key.NewBinding(
			key.WithKeys("s", "enter"),
			key.WithHelp("s", "play from start"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Faster: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "faster"),
		),
		Slower: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "slower"),
		),
	}
}

func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Step, k.Help, k.Quit}
}

func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.Step, k.Restart, k.Reset},
		{k.Faster, k.Slower},
		{k.Help, k.Quit},
	}
}
