package random

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/they4kman/termsweep/game"
	"github.com/they4kman/termsweep/util/collections"
)

var Log = logrus.New()

var ErrNoMoves = errors.New("no hidden cells left")

// Director reveals hidden cells in a random order fixed at Init.
type Director struct {
	board *game.Board

	order  []game.Coord
	hidden collections.Set[game.Coord]
}

func (director *Director) Init(board *game.Board) {
	director.board = board
	director.order = make([]game.Coord, 0, board.NumCells())
	director.hidden = make(collections.Set[game.Coord])

	for cell := range board.Cells() {
		if !cell.IsRevealed() {
			director.order = append(director.order, cell.Coord())
			director.hidden.Add(cell.Coord())
		}
	}

	order := director.order
	board.Rand().Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	Log.WithField("cells", len(director.order)).Debug("director ready")
}

func (director *Director) Next() (game.Coord, error) {
	for len(director.order) > 0 {
		coord := director.order[0]
		director.order = director.order[1:]

		if !director.hidden.Contains(coord) {
			continue
		}
		director.hidden.Remove(coord)

		if cell := director.board.CellAt(coord.Row, coord.Col); cell.IsRevealed() {
			continue
		}
		return coord, nil
	}
	return game.Coord{}, ErrNoMoves
}

// Remaining counts the cells the director has not offered yet.
func (director *Director) Remaining() int {
	return len(director.hidden)
}
