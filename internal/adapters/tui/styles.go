package tui

import "github.com/charmbracelet/lipgloss"

// Theme is the colour palette shared by the TUI and the CLI tables.
type Theme struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Water     lipgloss.Color
}

func DefaultTheme() *Theme {
	return &Theme{
		Primary:   lipgloss.Color("#7C3AED"),
		Secondary: lipgloss.Color("#06B6D4"),
		Muted:     lipgloss.Color("#6C7086"),
		Success:   lipgloss.Color("#A6E3A1"),
		Warning:   lipgloss.Color("#F9E2AF"),
		Water:     lipgloss.Color("#89B4FA"),
	}
}

type Styles struct {
	Title      lipgloss.Style
	Muted      lipgloss.Style
	Missionary lipgloss.Style
	Cannibal   lipgloss.Style
	Water      lipgloss.Style
	Boat       lipgloss.Style
	Success    lipgloss.Style
	Header     lipgloss.Style
	Cell       lipgloss.Style
}

func NewStyles(t *Theme) *Styles {
	return &Styles{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Muted:      lipgloss.NewStyle().Foreground(t.Muted),
		Missionary: lipgloss.NewStyle().Foreground(t.Secondary),
		Cannibal:   lipgloss.NewStyle().Foreground(t.Warning),
		Water:      lipgloss.NewStyle().Foreground(t.Water),
		Boat:       lipgloss.NewStyle().Bold(true),
		Success:    lipgloss.NewStyle().Bold(true).Foreground(t.Success),
		Header:     lipgloss.NewStyle().Bold(true).Foreground(t.Primary).PaddingRight(2),
		Cell:       lipgloss.NewStyle().PaddingRight(2),
	}
}
