package game

import (
	"iter"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

type Board struct {
	size     int // in number of cells per side
	numMines int
	cells    []Cell

	state           BoardState
	numRevealed     int
	numSafeRevealed int

	rand Rand
}

func (board *Board) Size() int {
	return board.size
}

func (board *Board) NumMines() int {
	return board.numMines
}

func (board *Board) NumCells() int {
	return board.size * board.size
}

// NumRevealed counts every revealed cell, the losing mine included.
func (board *Board) NumRevealed() int {
	return board.numRevealed
}

func (board *Board) State() BoardState {
	return board.state
}

func (board *Board) Rand() Rand {
	return board.rand
}

func (board *Board) inBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < board.size && col < board.size
}

func (board *Board) CellAt(row, col int) *Cell {
	if board.inBounds(row, col) {
		return &board.cells[row*board.size+col]
	}
	return nil
}

// Cells yields every cell in row-major order.
func (board *Board) Cells() iter.Seq[*Cell] {
	return func(yield func(*Cell) bool) {
		for i := range board.cells {
			if !yield(&board.cells[i]) {
				return
			}
		}
	}
}

// Mines returns the mine coordinates in row-major order.
func (board *Board) Mines() []Coord {
	mines := make([]Coord, 0, board.numMines)
	for cell := range board.Cells() {
		if cell.isMine {
			mines = append(mines, cell.Coord())
		}
	}
	return mines
}

func (board *Board) isMine(row, col int) bool {
	cell := board.CellAt(row, col)
	return cell != nil && cell.isMine
}

func (board *Board) eachNeighbor(row, col int, visit func(row, col int)) {
	for dRow := -1; dRow <= 1; dRow++ {
		for dCol := -1; dCol <= 1; dCol++ {
			if dRow == 0 && dCol == 0 {
				continue
			}
			if board.inBounds(row+dRow, col+dCol) {
				visit(row+dRow, col+dCol)
			}
		}
	}
}

// CountAdjacentMines counts mines among the up to eight cells surrounding
// (row, col). Neighbours off the board are ignored, so any coordinate is
// accepted.
func (board *Board) CountAdjacentMines(row, col int) int {
	count := 0
	board.eachNeighbor(row, col, func(nRow, nCol int) {
		if board.isMine(nRow, nCol) {
			count++
		}
	})
	return count
}

// Reveal uncovers (row, col) and reports whether it was safe. Hitting a mine
// is not an error: it returns false and the board is lost.
func (board *Board) Reveal(row, col int) (bool, error) {
	cell := board.CellAt(row, col)
	if cell == nil {
		return false, errors.Wrapf(ErrOutOfBounds, "reveal (%d, %d) on %dx%d board", row, col, board.size, board.size)
	}
	if cell.isRevealed {
		return false, errors.Wrapf(ErrAlreadyRevealed, "reveal %v", cell.Coord())
	}
	if !board.canPlay() {
		return false, errors.Wrapf(ErrGameOver, "reveal %v on %s board", cell.Coord(), board.state)
	}

	board.numRevealed++
	safe := cell.reveal()

	fields := logrus.Fields{"row": row, "col": col, "safe": safe}
	if safe {
		board.numSafeRevealed++
		fields["adjacent"] = cell.numMines
	}
	Log.WithFields(fields).Debug("revealed cell")

	switch {
	case !safe:
		board.lose()
	case board.IsWon():
		board.win()
	}

	return safe, nil
}

// IsWon reports whether every safe cell has been revealed.
func (board *Board) IsWon() bool {
	return board.numSafeRevealed == board.NumCells()-board.numMines
}

func (board *Board) IsLost() bool {
	return board.state == Lost
}

func (board *Board) canPlay() bool {
	return board.state == Ongoing
}

func (board *Board) win() {
	board.state = Won
	Log.WithField("revealed", board.numRevealed).Info("board won")
}

func (board *Board) lose() {
	board.state = Lost
	Log.WithField("revealed", board.numRevealed).Info("board lost")
}

// Render returns the display symbol of every cell, indexed [row][col].
func (board *Board) Render() [][]string {
	grid := make([][]string, board.size)
	for row := range board.size {
		grid[row] = make([]string, board.size)
		for col := range board.size {
			grid[row][col] = board.CellAt(row, col).Symbol()
		}
	}
	return grid
}

// String renders one line per row with cells separated by single spaces.
func (board *Board) String() string {
	var b strings.Builder
	for _, row := range board.Render() {
		b.WriteString(strings.Join(row, " "))
		b.WriteString("\n")
	}
	return b.String()
}

func validateConfig(size, numMines int) error {
	if size <= 0 || numMines <= 0 || numMines >= size*size {
		return errors.Wrapf(ErrInvalidConfiguration, "size %d, mines %d", size, numMines)
	}
	return nil
}

func createBoard(size, numMines int, rnd Rand) *Board {
	board := Board{
		state:    Ongoing,
		size:     size,
		numMines: numMines,
		cells:    make([]Cell, size*size),
		rand:     rnd,
	}

	for row := range size {
		for col := range size {
			cell := &board.cells[row*size+col]
			cell.board = &board
			cell.row, cell.col = row, col
			cell.state = Hidden
		}
	}

	return &board
}

// NewBoard creates a size×size board and places numMines mines uniformly at
// random. A nil rnd uses a runtime-seeded source.
func NewBoard(size, numMines int, rnd Rand) (*Board, error) {
	if err := validateConfig(size, numMines); err != nil {
		return nil, err
	}
	if rnd == nil {
		rnd = NewRand(0)
	}

	board := createBoard(size, numMines, rnd)
	board.placeMines()

	Log.WithFields(logrus.Fields{
		"size":  size,
		"mines": numMines,
	}).Debug("created board")

	return board, nil
}

// NewBoardWithMines creates a board whose mines sit exactly at the given
// coordinates. Duplicate coordinates count once.
func NewBoardWithMines(size int, mines []Coord) (*Board, error) {
	if size <= 0 {
		return nil, errors.Wrapf(ErrInvalidConfiguration, "size %d", size)
	}

	board := createBoard(size, 0, NewRand(0))
	for _, coord := range mines {
		cell := board.CellAt(coord.Row, coord.Col)
		if cell == nil {
			return nil, errors.Wrapf(ErrOutOfBounds, "mine at %v on %dx%d board", coord, size, size)
		}
		if !cell.isMine {
			cell.isMine = true
			board.numMines++
		}
	}

	if err := validateConfig(size, board.numMines); err != nil {
		return nil, err
	}
	return board, nil
}

// placeMines draws coordinates until numMines distinct ones are mined,
// discarding repeats.
func (board *Board) placeMines() {
	placed := 0
	for placed < board.numMines {
		row := board.rand.IntN(board.size)
		col := board.rand.IntN(board.size)

		cell := board.CellAt(row, col)
		if !cell.isMine {
			cell.isMine = true
			placed++
		}
	}
}
