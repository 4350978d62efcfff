package playback

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/rivercrossing/internal/domain"
	"svw.info/rivercrossing/internal/solver"
)

func classicPath(t *testing.T) domain.Path {
	t.Helper()
	rs, err := domain.NewRuleSet(domain.VariantClassic, "classic",
		domain.Population{Missionaries: 3, Cannibals: 3}, 2, domain.StandardMoves(2))
	require.NoError(t, err)
	res, _, err := solver.NewBFSSolver().Solve(context.Background(), rs, rs.Start())
	require.NoError(t, err)
	require.True(t, res.Found)
	return res.Path
}

func TestSetSpeedClamps(t *testing.T) {
	p := NewPlayer()
	assert.Equal(t, 0.5, p.SetSpeed(0.1))
	assert.Equal(t, 4*time.Second, p.StepDuration())
	assert.Equal(t, 3.0, p.SetSpeed(10))
	assert.Equal(t, 2.0, p.SetSpeed(2))
	assert.Equal(t, time.Second, p.StepDuration())
}

func TestStartWithoutPath(t *testing.T) {
	p := NewPlayer()
	assert.ErrorIs(t, p.Start(), ErrNoPath)
	assert.ErrorIs(t, p.JumpTo(0), ErrNoPath)
	f := p.Advance(time.Second)
	assert.Equal(t, 0, f.Total)
	assert.Equal(t, PhaseIdle, f.Phase)
}

func TestAdvanceSplitsBoardingAndCrossing(t *testing.T) {
	p := NewPlayer(WithStepDuration(time.Second))
	p.Load(classicPath(t))
	require.NoError(t, p.Start())

	f := p.Advance(250 * time.Millisecond)
	assert.Equal(t, PhaseBoarding, f.Phase)
	assert.Equal(t, 0.0, f.Position)
	assert.Equal(t, domain.Population{Cannibals: 1}, f.Boat)
	assert.Equal(t, domain.Population{Missionaries: 3, Cannibals: 2}, f.Left)
	assert.Equal(t, "2 cannibals →", f.Label)

	f = p.Advance(500 * time.Millisecond)
	assert.Equal(t, PhaseCrossing, f.Phase)
	assert.InDelta(t, 0.5, f.Position, 1e-9)
	assert.Equal(t, domain.Population{Cannibals: 2}, f.Boat)
	assert.Equal(t, domain.Population{Missionaries: 3, Cannibals: 1}, f.Left)
	assert.Equal(t, domain.Population{}, f.Right)

	f = p.Advance(250 * time.Millisecond)
	assert.Equal(t, 1, f.Index)
	assert.Equal(t, "(3,1,right)", f.State.String())
	assert.Equal(t, 1.0, f.Position)

	// return trip moves the boat right to left
	f = p.Advance(750 * time.Millisecond)
	assert.Equal(t, PhaseCrossing, f.Phase)
	assert.InDelta(t, 0.5, f.Position, 1e-9)
	assert.Equal(t, domain.Population{Cannibals: 1}, f.Right)
	assert.Equal(t, domain.Population{Cannibals: 1}, f.Boat)
}

func TestAdvanceStopsAtEnd(t *testing.T) {
	path := classicPath(t)
	p := NewPlayer(WithStepDuration(time.Second))
	p.Load(path)
	require.NoError(t, p.Start())

	f := p.Advance(time.Hour)
	assert.True(t, f.Done)
	assert.False(t, f.Running)
	assert.Equal(t, len(path)-1, f.Index)
	assert.True(t, f.State.IsGoal())
	assert.Equal(t, PhaseIdle, f.Phase)
}

func TestPauseResumeReset(t *testing.T) {
	p := NewPlayer(WithStepDuration(time.Second))
	p.Load(classicPath(t))
	require.NoError(t, p.Start())

	p.Advance(1500 * time.Millisecond)
	p.Pause()
	f := p.Advance(time.Minute)
	assert.True(t, f.Paused)
	assert.Equal(t, 1, f.Index)

	p.Resume()
	f = p.Advance(500 * time.Millisecond)
	assert.False(t, f.Paused)
	assert.Equal(t, 2, f.Index)

	p.Reset()
	f = p.Frame()
	assert.Equal(t, 0, f.Index)
	assert.False(t, f.Running)
	f = p.Advance(time.Minute)
	assert.Equal(t, 0, f.Index, "a reset player does not animate")
}

func TestStepAndJump(t *testing.T) {
	path := classicPath(t)
	p := NewPlayer()
	p.Load(path)

	assert.True(t, p.Step())
	assert.Equal(t, 1, p.Frame().Index)

	require.NoError(t, p.JumpTo(len(path)-1))
	assert.False(t, p.Step())
	assert.True(t, p.Frame().Done)

	assert.Error(t, p.JumpTo(len(path)))
	assert.Error(t, p.JumpTo(-1))
}

func TestRunPlaysToCompletion(t *testing.T) {
	path := classicPath(t)
	p := NewPlayer(WithStepDuration(5 * time.Millisecond))
	p.Load(path)
	require.NoError(t, p.Start())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var frames []Frame
	err := Run(ctx, p, time.Millisecond, func(f Frame) error {
		frames = append(frames, f)
		return nil
	})
	require.NoError(t, err)
	require.NotEmpty(t, frames)
	last := frames[len(frames)-1]
	assert.True(t, last.Done)
	assert.Equal(t, len(path)-1, last.Index)
	for i := 1; i < len(frames); i++ {
		assert.GreaterOrEqual(t, frames[i].Index, frames[i-1].Index)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	p := NewPlayer()
	p.Load(classicPath(t))
	require.NoError(t, p.Start())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := Run(ctx, p, time.Millisecond, func(Frame) error { return nil })
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
