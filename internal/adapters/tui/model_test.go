package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/rivercrossing/internal/domain"
	"svw.info/rivercrossing/internal/playback"
	"svw.info/rivercrossing/internal/solver"
)

func newModel(t *testing.T) *Model {
	t.Helper()
	rs, err := domain.NewRuleSet(domain.VariantClassic, "classic",
		domain.Population{Missionaries: 3, Cannibals: 3}, 2, domain.StandardMoves(2))
	require.NoError(t, err)
	res, _, err := solver.NewBFSSolver().Solve(context.Background(), rs, rs.Start())
	require.NoError(t, err)
	p := playback.NewPlayer(playback.WithStepDuration(100 * time.Millisecond))
	return NewModel("classic / bfs", res.Path, p, 50*time.Millisecond)
}

func press(m *Model, k string) {
	var msg tea.KeyMsg
	switch k {
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	m.Update(msg)
}

func TestTickAdvances(t *testing.T) {
	m := newModel(t)
	require.NotNil(t, m.Init())

	for range 4 {
		_, cmd := m.Update(tickMsg(time.Now()))
		assert.NotNil(t, cmd)
	}
	assert.Equal(t, 2, m.Frame().Index)
}

func TestKeys(t *testing.T) {
	m := newModel(t)

	press(m, " ")
	assert.True(t, m.Frame().Paused)
	m.Update(tickMsg(time.Now()))
	assert.Equal(t, 0, m.Frame().Index)
	press(m, " ")
	assert.False(t, m.Frame().Paused)

	press(m, "right")
	assert.Equal(t, 1, m.Frame().Index)
	press(m, "n")
	assert.Equal(t, 2, m.Frame().Index)

	press(m, "+")
	assert.Equal(t, 1.5, m.Frame().Speed)
	for range 10 {
		press(m, "+")
	}
	assert.Equal(t, playback.MaxSpeed, m.Frame().Speed)
	for range 10 {
		press(m, "-")
	}
	assert.Equal(t, playback.MinSpeed, m.Frame().Speed)

	press(m, "r")
	assert.Equal(t, 0, m.Frame().Index)
	assert.False(t, m.Frame().Running)
	press(m, "s")
	assert.True(t, m.Frame().Running)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestViewShowsBanksAndProgress(t *testing.T) {
	m := newModel(t)
	v := m.View()
	assert.Contains(t, v, "classic / bfs")
	assert.Contains(t, v, "[MMMCCC]")
	assert.Contains(t, v, "step 0/11")

	for range 100 {
		m.Update(tickMsg(time.Now()))
	}
	v = m.View()
	assert.Contains(t, v, "everyone crossed safely")
	assert.Contains(t, v, "[]")
	assert.Contains(t, v, "step 11/11")
}
