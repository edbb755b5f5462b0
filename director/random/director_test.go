package random

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/they4kman/termsweep/game"
	"github.com/they4kman/termsweep/util/collections"
)

func TestNextVisitsEveryCellOnce(t *testing.T) {
	board, err := game.NewBoard(4, 4, game.NewRand(5))
	require.NoError(t, err)

	director := &Director{}
	director.Init(board)
	assert.Equal(t, 16, director.Remaining())

	seen := make(collections.Set[game.Coord])
	for i := 0; i < board.NumCells(); i++ {
		coord, err := director.Next()
		require.NoError(t, err)
		assert.False(t, seen.Contains(coord), "%v offered twice", coord)
		assert.NotNil(t, board.CellAt(coord.Row, coord.Col))
		seen.Add(coord)
	}

	_, err = director.Next()
	assert.ErrorIs(t, err, ErrNoMoves)
	assert.Equal(t, 0, director.Remaining())
}

func TestNextSkipsRevealedCells(t *testing.T) {
	board, err := game.NewBoardWithMines(3, []game.Coord{{Row: 0, Col: 0}})
	require.NoError(t, err)

	director := &Director{}
	director.Init(board)

	_, err = board.Reveal(1, 1)
	require.NoError(t, err)

	for {
		coord, err := director.Next()
		if err != nil {
			assert.ErrorIs(t, err, ErrNoMoves)
			break
		}
		assert.NotEqual(t, game.Coord{Row: 1, Col: 1}, coord)
	}
}

func TestDirectorFinishesGame(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		board, err := game.NewBoard(5, 5, game.NewRand(seed))
		require.NoError(t, err)

		director := &Director{}
		director.Init(board)

		for board.State() == game.Ongoing {
			coord, err := director.Next()
			require.NoError(t, err)

			_, err = board.Reveal(coord.Row, coord.Col)
			require.NoError(t, err)
		}

		assert.Equal(t, board.IsWon(), board.State() == game.Won)
	}
}

// reverseRand places every mine at its first draw and shuffles by reversing.
type reverseRand struct{}

func (reverseRand) IntN(n int) int {
	return 0
}

func (reverseRand) Shuffle(n int, swap func(i, j int)) {
	for i := range n / 2 {
		swap(i, n-1-i)
	}
}

func TestInitShufflesWithBoardRand(t *testing.T) {
	board, err := game.NewBoard(2, 1, reverseRand{})
	require.NoError(t, err)

	director := &Director{}
	director.Init(board)

	var order []game.Coord
	for {
		coord, err := director.Next()
		if err != nil {
			break
		}
		order = append(order, coord)
	}
	assert.Equal(t, []game.Coord{{Row: 1, Col: 1}, {Row: 1, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 0}}, order)
}
