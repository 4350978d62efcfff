package solver

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/rivercrossing/internal/domain"
	"svw.info/rivercrossing/internal/successor"
)

func ruleSet(t *testing.T, m, c int, moves []domain.Move) *domain.RuleSet {
	t.Helper()
	rs, err := domain.NewRuleSet("test", "test", domain.Population{Missionaries: m, Cannibals: c}, 2, moves)
	require.NoError(t, err)
	return rs
}

// Order used by the 3/1 and generalized variants.
var altMoves = []domain.Move{
	{Missionaries: 1}, {Missionaries: 2}, {Missionaries: 1, Cannibals: 1}, {Cannibals: 1}, {Cannibals: 2},
}

// bruteForceShortest enumerates every simple path from start and returns the
// fewest crossings reaching a goal, or -1.
func bruteForceShortest(rs *domain.RuleSet, start domain.State) int {
	best := -1
	onPath := map[domain.Key]bool{}
	var walk func(s domain.State, depth int)
	walk = func(s domain.State, depth int) {
		if s.IsGoal() {
			if best < 0 || depth < best {
				best = depth
			}
			return
		}
		onPath[s.Key()] = true
		for _, tr := range successor.Generate(rs, s) {
			if !onPath[tr.State.Key()] {
				walk(tr.State, depth+1)
			}
		}
		onPath[s.Key()] = false
	}
	walk(start, 0)
	return best
}

func assertValidPath(t *testing.T, rs *domain.RuleSet, p domain.Path) {
	t.Helper()
	require.NotEmpty(t, p)
	assert.Equal(t, "start", p[0].Label)
	assert.True(t, p[0].Move.IsZero())
	for i, st := range p {
		assert.True(t, rs.IsLegal(st.State), "step %d state %s", i, st.State)
		if i == 0 {
			continue
		}
		tr, err := successor.Apply(rs, p[i-1].State, st.Move)
		require.NoError(t, err, "step %d", i)
		assert.Equal(t, tr.State, st.State, "step %d", i)
	}
	final, ok := p.Final()
	require.True(t, ok)
	assert.True(t, final.IsGoal())
}

func TestBFSClassicElevenCrossings(t *testing.T) {
	rs := ruleSet(t, 3, 3, domain.StandardMoves(2))
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	res, st, err := NewBFSSolver().Solve(ctx, rs, rs.Start())
	require.NoError(t, err)
	require.True(t, res.Found)
	assert.Equal(t, 11, res.Path.Moves())
	assert.Equal(t, "(0,0,right)", res.Path[len(res.Path)-1].State.String())
	assertValidPath(t, rs, res.Path)
	t.Logf("BFS classic: nodes=%d dur=%v", st.Nodes, st.Duration)
}

func TestBFSGeneralizedElevenCrossings(t *testing.T) {
	rs := ruleSet(t, 3, 3, altMoves)
	res, _, err := NewBFSSolver().Solve(context.Background(), rs, rs.Start())
	require.NoError(t, err)
	require.True(t, res.Found)
	assert.Equal(t, 11, res.Path.Moves())
}

func TestBFSMissionariesVariantIsMinimal(t *testing.T) {
	rs := ruleSet(t, 3, 1, altMoves)
	res, _, err := NewBFSSolver().Solve(context.Background(), rs, rs.Start())
	require.NoError(t, err)
	require.True(t, res.Found)
	assertValidPath(t, rs, res.Path)

	want := bruteForceShortest(rs, rs.Start())
	assert.Equal(t, want, res.Path.Moves())
	assert.Equal(t, 5, res.Path.Moves())
}

func TestBFSMatchesBruteForceFromEveryState(t *testing.T) {
	rs := ruleSet(t, 3, 3, domain.StandardMoves(2))
	for m := 0; m <= 3; m++ {
		for c := 0; c <= 3; c++ {
			for _, b := range []domain.Side{domain.Left, domain.Right} {
				s, _ := rs.NewState(m, c, b)
				if !rs.IsLegal(s) {
					continue
				}
				res, _, err := NewBFSSolver().Solve(context.Background(), rs, s)
				require.NoError(t, err)
				want := bruteForceShortest(rs, s)
				if want < 0 {
					assert.False(t, res.Found, "from %s", s)
					continue
				}
				require.True(t, res.Found, "from %s", s)
				assert.Equal(t, want, res.Path.Moves(), "from %s", s)
			}
		}
	}
}

func TestDFSClassicFindsLegalPath(t *testing.T) {
	rs := ruleSet(t, 3, 3, domain.StandardMoves(2))
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	res, st, err := NewDFSSolver().Solve(ctx, rs, rs.Start())
	require.NoError(t, err)
	require.True(t, res.Found)
	assertValidPath(t, rs, res.Path)
	assert.GreaterOrEqual(t, res.Path.Moves(), 11)

	seen := map[domain.Key]bool{}
	for _, step := range res.Path {
		assert.False(t, seen[step.State.Key()], "state %s repeated", step.State)
		seen[step.State.Key()] = true
	}
	t.Logf("DFS classic: crossings=%d nodes=%d dur=%v", res.Path.Moves(), st.Nodes, st.Duration)
}

func TestDFSIsDeterministic(t *testing.T) {
	rs := ruleSet(t, 3, 3, altMoves)
	a, _, err := NewDFSSolver().Solve(context.Background(), rs, rs.Start())
	require.NoError(t, err)
	b, _, err := NewDFSSolver().Solve(context.Background(), rs, rs.Start())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBoundaryPopulationsTerminate(t *testing.T) {
	cases := []struct {
		name  string
		m, c  int
		found bool
	}{
		{"nobody", 0, 0, false}, // the boat cannot cross empty
		{"missionaries only", 3, 0, true},
		{"cannibals only", 0, 3, true},
		{"single missionary", 1, 0, true},
	}
	for _, tc := range cases {
		for _, strategy := range []domain.Strategy{domain.StrategyBFS, domain.StrategyDFS} {
			t.Run(tc.name+"/"+strategy.String(), func(t *testing.T) {
				rs := ruleSet(t, tc.m, tc.c, domain.StandardMoves(2))
				s, err := New(strategy)
				require.NoError(t, err)

				ctx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				res, _, err := s.Solve(ctx, rs, rs.Start())
				require.NoError(t, err)
				assert.Equal(t, tc.found, res.Found)
				if res.Found {
					assertValidPath(t, rs, res.Path)
				}
			})
		}
	}
}

func TestSolveAlreadyAtGoal(t *testing.T) {
	rs := ruleSet(t, 3, 3, domain.StandardMoves(2))
	for _, strategy := range []domain.Strategy{domain.StrategyBFS, domain.StrategyDFS} {
		engine, _ := New(strategy)
		res, _, err := engine.Solve(context.Background(), rs, rs.Goal())
		require.NoError(t, err)
		require.True(t, res.Found)
		assert.Equal(t, 0, res.Path.Moves())
	}
}

func TestUnsolvableRuleSetReportsNotFound(t *testing.T) {
	// single-seat boat: once a cannibal crosses nobody can follow safely
	rs, err := domain.NewRuleSet("solo", "solo", domain.Population{Missionaries: 2, Cannibals: 2}, 1,
		[]domain.Move{{Missionaries: 1}, {Cannibals: 1}})
	require.NoError(t, err)

	for _, strategy := range []domain.Strategy{domain.StrategyBFS, domain.StrategyDFS} {
		engine, _ := New(strategy)
		res, _, err := engine.Solve(context.Background(), rs, rs.Start())
		require.NoError(t, err)
		assert.False(t, res.Found, strategy.String())
		assert.Empty(t, res.Path)
	}
}

func TestSolveRejectsIllegalStart(t *testing.T) {
	rs := ruleSet(t, 3, 3, domain.StandardMoves(2))
	bad := domain.State{LeftMissionaries: 1, LeftCannibals: 3, Boat: domain.Left}
	for _, strategy := range []domain.Strategy{domain.StrategyBFS, domain.StrategyDFS} {
		engine, _ := New(strategy)
		_, _, err := engine.Solve(context.Background(), rs, bad)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	}
}

func TestSolveHonoursCancellation(t *testing.T) {
	rs := ruleSet(t, 3, 3, domain.StandardMoves(2))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, strategy := range []domain.Strategy{domain.StrategyBFS, domain.StrategyDFS} {
		engine, _ := New(strategy)
		_, _, err := engine.Solve(ctx, rs, rs.Start())
		assert.ErrorIs(t, err, context.Canceled)
	}
}

func TestNewUnknownStrategy(t *testing.T) {
	_, err := New(domain.Strategy(7))
	assert.ErrorIs(t, err, domain.ErrUnknownStrategy)
}
