package game

import (
	"fmt"
	"iter"
	"strconv"
)

// Coord addresses a cell by zero-based row and column.
type Coord struct {
	Row, Col int
}

func (coord Coord) String() string {
	return fmt.Sprintf("(%d, %d)", coord.Row, coord.Col)
}

type Cell struct {
	board *Board

	row, col int
	numMines int

	isMine, isRevealed bool

	state CellState
}

func (cell *Cell) String() string {
	return fmt.Sprintf("Cell(%v, %v)", cell.row, cell.col)
}

func (cell *Cell) Coord() Coord {
	return Coord{cell.row, cell.col}
}

func (cell *Cell) IsRevealed() bool {
	return cell.isRevealed
}

func (cell *Cell) State() CellState {
	return cell.state
}

// NumMines is the adjacent mine count fixed when the cell was revealed, or -1
// while the cell is hidden or is a mine.
func (cell *Cell) NumMines() int {
	if !cell.isRevealed || cell.isMine {
		return -1
	}
	return cell.numMines
}

// Neighbors yields the up to eight cells surrounding this one.
func (cell *Cell) Neighbors() iter.Seq[*Cell] {
	return func(yield func(*Cell) bool) {
		stop := false
		cell.board.eachNeighbor(cell.row, cell.col, func(row, col int) {
			if !stop && !yield(cell.board.CellAt(row, col)) {
				stop = true
			}
		})
	}
}

// Symbol is the display form of the cell as the player knows it.
func (cell *Cell) Symbol() string {
	switch {
	case cell.state == Hidden:
		return hiddenSymbol
	case cell.state == MineLosing:
		return mineSymbol
	default:
		return strconv.Itoa(int(cell.state))
	}
}

func (cell *Cell) reveal() bool {
	cell.isRevealed = true

	if cell.isMine {
		cell.state = MineLosing
		return false
	}

	cell.numMines = cell.board.CountAdjacentMines(cell.row, cell.col)
	cell.state = CellState(cell.numMines)
	return true
}
