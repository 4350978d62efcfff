package successor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/rivercrossing/internal/domain"
)

func classic(t *testing.T) *domain.RuleSet {
	t.Helper()
	rs, err := domain.NewRuleSet(domain.VariantClassic, "classic",
		domain.Population{Missionaries: 3, Cannibals: 3}, 2, domain.StandardMoves(2))
	require.NoError(t, err)
	return rs
}

func TestGenerateFromClassicStart(t *testing.T) {
	rs := classic(t)
	got := Generate(rs, rs.Start())

	// (1,0) and (2,0) leave cannibals outnumbering the remaining missionaries.
	require.Len(t, got, 3)
	assert.Equal(t, domain.Move{Cannibals: 1}, got[0].Move)
	assert.Equal(t, domain.Move{Cannibals: 2}, got[1].Move)
	assert.Equal(t, domain.Move{Missionaries: 1, Cannibals: 1}, got[2].Move)

	assert.Equal(t, "(3,2,right)", got[0].State.String())
	assert.Equal(t, "(3,1,right)", got[1].State.String())
	assert.Equal(t, "(2,2,right)", got[2].State.String())
	assert.Equal(t, "1 cannibal →", got[0].Label)
}

func TestGenerateReturnTrip(t *testing.T) {
	rs := classic(t)
	s, err := rs.NewState(3, 1, domain.Right)
	require.NoError(t, err)

	got := Generate(rs, s)
	require.Len(t, got, 2)
	assert.Equal(t, "(3,2,left)", got[0].State.String())
	assert.Equal(t, "1 cannibal ←", got[0].Label)
	assert.Equal(t, "(3,3,left)", got[1].State.String())
}

func TestGenerateIsDeterministic(t *testing.T) {
	rs := classic(t)
	for m := 0; m <= 3; m++ {
		for c := 0; c <= 3; c++ {
			for _, b := range []domain.Side{domain.Left, domain.Right} {
				s, err := rs.NewState(m, c, b)
				require.NoError(t, err)
				assert.Equal(t, Generate(rs, s), Generate(rs, s))
			}
		}
	}
}

func TestGenerateNeverEmitsIllegalStates(t *testing.T) {
	rs := classic(t)
	for m := 0; m <= 3; m++ {
		for c := 0; c <= 3; c++ {
			for _, b := range []domain.Side{domain.Left, domain.Right} {
				s, _ := rs.NewState(m, c, b)
				for _, tr := range Generate(rs, s) {
					assert.True(t, rs.IsLegal(tr.State), "%s -> %s", s, tr.State)
					assert.Equal(t, b.Opposite(), tr.State.Boat)
				}
			}
		}
	}
}

func TestGenerateFollowsMoveOrder(t *testing.T) {
	moves := []domain.Move{{Missionaries: 1, Cannibals: 1}, {Cannibals: 2}, {Cannibals: 1}}
	rs, err := domain.NewRuleSet("custom", "custom", domain.Population{Missionaries: 3, Cannibals: 3}, 2, moves)
	require.NoError(t, err)

	got := Generate(rs, rs.Start())
	require.Len(t, got, 3)
	for i, tr := range got {
		assert.Equal(t, moves[i], tr.Move)
	}
}

func TestGenerateDeadEnd(t *testing.T) {
	rs, err := domain.NewRuleSet("empty", "empty", domain.Population{}, 2, domain.StandardMoves(2))
	require.NoError(t, err)
	assert.Empty(t, Generate(rs, rs.Start()))
}

func TestApply(t *testing.T) {
	rs := classic(t)

	tr, err := Apply(rs, rs.Start(), domain.Move{Missionaries: 1, Cannibals: 1})
	require.NoError(t, err)
	assert.Equal(t, "(2,2,right)", tr.State.String())

	cases := []struct {
		name string
		from domain.State
		move domain.Move
	}{
		{"unsafe result", rs.Start(), domain.Move{Missionaries: 1}},
		{"not allowed", rs.Start(), domain.Move{Missionaries: 2, Cannibals: 1}},
		{"not enough people", tr.State, domain.Move{Missionaries: 2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Apply(rs, tc.from, tc.move)
			assert.ErrorIs(t, err, domain.ErrIllegalMove)
		})
	}
}
