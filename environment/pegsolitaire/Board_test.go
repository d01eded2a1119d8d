package pegsolitaire

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestNewBoardValidation(t *testing.T) {
	tests := []struct {
		name  string
		shape Shape
		size  int
		empty []Coord
	}{
		{"unknown shape", Shape(7), 4, nil},
		{"zero size", Diamond, 0, nil},
		{"negative size", Triangle, -3, nil},
		{"x out of range", Diamond, 4, []Coord{{4, 0}}},
		{"negative y", Diamond, 4, []Coord{{0, -1}}},
		{"triangle x < y", Triangle, 5, []Coord{{1, 2}}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewBoard(test.shape, test.size, test.empty)
			require.Error(t, err)
			require.True(t, IsConfigurationError(err),
				"expected a ConfigurationError, got %T", err)
		})
	}
}

func TestParseShape(t *testing.T) {
	for _, s := range []string{"d", "D", "diamond", " Diamond "} {
		shape, err := ParseShape(s)
		require.NoError(t, err)
		require.Equal(t, Diamond, shape)
	}
	for _, s := range []string{"t", "T", "triangle"} {
		shape, err := ParseShape(s)
		require.NoError(t, err)
		require.Equal(t, Triangle, shape)
	}

	_, err := ParseShape("hexagon")
	require.True(t, IsConfigurationError(err))
}

func TestCellCount(t *testing.T) {
	for n := 1; n <= 8; n++ {
		d, err := NewBoard(Diamond, n, nil)
		require.NoError(t, err)
		require.Equal(t, n*n, d.Len(), "diamond of size %d", n)

		tr, err := NewBoard(Triangle, n, nil)
		require.NoError(t, err)
		require.Equal(t, n*(n+1)/2, tr.Len(), "triangle of size %d", n)
	}
}

func TestDefaultEmptyCell(t *testing.T) {
	t.Run("triangle apex", func(t *testing.T) {
		b, err := NewBoard(Triangle, 5, []Coord{})
		require.NoError(t, err)
		require.Equal(t, 14, b.Occupied())
		require.Equal(t, 1, b.Empty())

		s, ok := b.Space(Coord{0, 0})
		require.True(t, ok)
		require.False(t, s.Occupied)
		require.Equal(t, "0"+strings.Repeat("1", 14), b.Serialize())
	})

	t.Run("diamond centre", func(t *testing.T) {
		b, err := NewBoard(Diamond, 5, nil)
		require.NoError(t, err)
		s, _ := b.Space(Coord{2, 2})
		require.False(t, s.Occupied)
		require.Equal(t, 24, b.Occupied())
	})
}

func TestDiamondScenario(t *testing.T) {
	b, err := NewBoard(Diamond, 4, []Coord{{2, 1}})
	require.NoError(t, err)

	state := b.Serialize()
	require.Len(t, state, 16)
	require.Equal(t, 1, strings.Count(state, "0"))
	require.Equal(t, byte('0'), state[2*4+1])
	require.Equal(t, 15, b.Occupied())

	moves := b.AllLegalMoves()
	require.NotEmpty(t, moves)
	for _, m := range moves {
		clone := b.Clone()
		_, err := clone.ApplyMove(m)
		require.NoError(t, err)
		require.Equal(t, 14, clone.Occupied())
	}

	// Clones do not share occupancy with the original
	require.Equal(t, 15, b.Occupied())
}

func TestNeighbours(t *testing.T) {
	t.Run("diamond", func(t *testing.T) {
		b, err := NewBoard(Diamond, 3, nil)
		require.NoError(t, err)
		s, _ := b.Space(Coord{1, 1})
		want := []Coord{{0, 1}, {2, 1}, {1, 0}, {1, 2}, {0, 2}, {2, 0}}
		for d, i := range s.Neighbours() {
			require.NotEqual(t, NoNeighbour, i)
			require.Equal(t, want[d], b.At(i).Coord, "direction %d", d)
		}

		corner, _ := b.Space(Coord{0, 0})
		require.Equal(t, NoNeighbour, corner.Neighbour(0))
		require.Equal(t, NoNeighbour, corner.Neighbour(2))
		require.Equal(t, NoNeighbour, corner.Neighbour(4))
		require.Equal(t, NoNeighbour, corner.Neighbour(5))
	})

	t.Run("triangle", func(t *testing.T) {
		b, err := NewBoard(Triangle, 4, nil)
		require.NoError(t, err)
		s, _ := b.Space(Coord{2, 1})
		want := []Coord{{1, 1}, {3, 1}, {2, 0}, {2, 2}, {1, 0}, {3, 2}}
		for d, i := range s.Neighbours() {
			require.Equal(t, want[d], b.At(i).Coord, "direction %d", d)
		}

		// (1, 1) has no (-1, 0) neighbour because (0, 1) is off a triangle
		edge, _ := b.Space(Coord{1, 1})
		require.Equal(t, NoNeighbour, edge.Neighbour(0))
	})
}

func TestLegalMovesTriangle(t *testing.T) {
	b, err := NewBoard(Triangle, 5, nil)
	require.NoError(t, err)

	want := []Move{
		{Origin: Coord{2, 0}, Direction: 0},
		{Origin: Coord{2, 2}, Direction: 4},
	}
	require.Equal(t, want, b.AllLegalMoves())
	require.Equal(t, want[:1], b.LegalMovesFrom(Coord{2, 0}))
	require.Empty(t, b.LegalMovesFrom(Coord{0, 0}))
	require.Empty(t, b.LegalMovesFrom(Coord{9, 9}))

	state, err := b.ApplyMove(want[0])
	require.NoError(t, err)
	require.Equal(t, "101011111111111", state)

	origin, jumped, landing, ok := b.LastMove()
	require.True(t, ok)
	require.Equal(t, Coord{2, 0}, origin)
	require.Equal(t, Coord{1, 0}, jumped)
	require.Equal(t, Coord{0, 0}, landing)
}

func TestApplyIllegalMove(t *testing.T) {
	b, err := NewBoard(Triangle, 5, nil)
	require.NoError(t, err)
	before := b.Serialize()

	illegal := []Move{
		{Origin: Coord{0, 0}, Direction: 1}, // Empty origin
		{Origin: Coord{4, 4}, Direction: 1}, // Off the board
		{Origin: Coord{3, 0}, Direction: 0}, // Landing occupied
		{Origin: Coord{2, 0}, Direction: 9}, // No such direction
		{Origin: Coord{7, 7}, Direction: 0}, // Origin off the board
	}
	for _, m := range illegal {
		require.False(t, b.IsLegalMove(m), "move %v", m)
		_, err := b.ApplyMove(m)
		require.True(t, IsIllegalMove(err), "move %v", m)
		require.Equal(t, before, b.Serialize())
	}

	_, _, _, ok := b.LastMove()
	require.False(t, ok)
}

// legalByDefinition checks the legality rule directly through the
// neighbour links of the board
func legalByDefinition(b *Board, m Move) bool {
	origin, ok := b.Space(m.Origin)
	if !ok || !origin.Occupied {
		return false
	}
	n := origin.Neighbour(m.Direction)
	if n == NoNeighbour || !b.At(n).Occupied {
		return false
	}
	l := b.At(n).Neighbour(m.Direction)
	return l != NoNeighbour && !b.At(l).Occupied
}

func TestLegalityMatchesDefinitionUnderRandomPlay(t *testing.T) {
	rng := rand.New(rand.NewSource(1234))
	boards := []struct {
		shape Shape
		size  int
	}{
		{Diamond, 4}, {Diamond, 5}, {Triangle, 5}, {Triangle, 6},
	}

	for _, config := range boards {
		for game := 0; game < 20; game++ {
			b, err := NewBoard(config.shape, config.size, nil)
			require.NoError(t, err)

			for {
				for i := 0; i < b.Len(); i++ {
					for d := Direction(0); d < NumDirections; d++ {
						m := Move{Origin: b.At(i).Coord, Direction: d}
						require.Equal(t, legalByDefinition(b, m),
							b.IsLegalMove(m), "move %v on\n%v", m, b)
					}
				}

				moves := b.AllLegalMoves()
				require.Equal(t, len(moves) > 0, b.HasLegalMove())
				if len(moves) == 0 {
					break
				}

				before := b.Occupied()
				_, err := b.ApplyMove(moves[rng.Intn(len(moves))])
				require.NoError(t, err)
				require.Equal(t, before-1, b.Occupied())
			}
		}
	}
}

func TestVector(t *testing.T) {
	b, err := NewBoard(Triangle, 3, nil)
	require.NoError(t, err)
	require.Equal(t, []float64{0, 1, 1, 1, 1, 1}, b.Vector())
}

func TestString(t *testing.T) {
	b, err := NewBoard(Triangle, 3, nil)
	require.NoError(t, err)
	require.Equal(t, ".\no o\no o o\n", b.String())
}
