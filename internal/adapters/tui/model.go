// Package tui animates a solved crossing in the terminal.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"svw.info/rivercrossing/internal/domain"
	"svw.info/rivercrossing/internal/playback"
)

const riverWidth = 24

type tickMsg time.Time

// Model implements tea.Model over a playback.Player.
type Model struct {
	title    string
	player   *playback.Player
	interval time.Duration
	keys     *KeyMap
	help     help.Model
	styles   *Styles
	frame    playback.Frame
	quitting bool
}

var _ tea.Model = (*Model)(nil)

// NewModel plays path, ticking every interval.
func NewModel(title string, path domain.Path, p *playback.Player, interval time.Duration) *Model {
	p.Load(path)
	_ = p.Start()
	return &Model{
		title:    title,
		player:   p,
		interval: interval,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		styles:   NewStyles(DefaultTheme()),
		frame:    p.Frame(),
	}
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.frame = m.player.Advance(m.interval)
		return m, m.tick()

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Pause):
			if m.frame.Paused {
				m.player.Resume()
			} else {
				m.player.Pause()
			}
		case key.Matches(msg, m.keys.Step):
			m.player.Step()
		case key.Matches(msg, m.keys.Restart):
			_ = m.player.Start()
		case key.Matches(msg, m.keys.Reset):
			m.player.Reset()
		case key.Matches(msg, m.keys.Faster):
			m.player.SetSpeed(m.frame.Speed + 0.5)
		case key.Matches(msg, m.keys.Slower):
			m.player.SetSpeed(m.frame.Speed - 0.5)
		}
		m.frame = m.player.Frame()
	}
	return m, nil
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	f := m.frame
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(m.bank(f.Left))
	b.WriteString(" ")
	b.WriteString(m.river(f))
	b.WriteString(" ")
	b.WriteString(m.bank(f.Right))
	b.WriteString("\n\n")

	status := fmt.Sprintf("step %d/%d  speed %.1fx", f.Index, max(f.Total-1, 0), f.Speed)
	switch {
	case f.Done:
		b.WriteString(m.styles.Success.Render("everyone crossed safely"))
	case f.Paused:
		b.WriteString(m.styles.Muted.Render("paused"))
	case f.Label != "":
		b.WriteString(f.Label)
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(status))
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) people(p domain.Population) string {
	return m.styles.Missionary.Render(strings.Repeat("M", p.Missionaries)) +
		m.styles.Cannibal.Render(strings.Repeat("C", p.Cannibals))
}

func (m *Model) bank(p domain.Population) string {
	return "[" + m.people(p) + "]"
}

// river draws the boat at its position between the banks.
func (m *Model) river(f playback.Frame) string {
	boat := "<" + m.people(f.Boat) + ">"
	width := 2 + f.Boat.Missionaries + f.Boat.Cannibals
	span := riverWidth - width
	if span < 0 {
		span = 0
	}
	at := int(f.Position*float64(span) + 0.5)
	return m.styles.Water.Render(strings.Repeat("~", at)) +
		m.styles.Boat.Render(boat) +
		m.styles.Water.Render(strings.Repeat("~", span-at))
}

// Frame returns the frame last rendered.
func (m *Model) Frame() playback.Frame { return m.frame }

// Run plays the model in the terminal until the user quits.
func Run(m *Model) error {
	_, err := tea.NewProgram(m).Run()
	return err
}
