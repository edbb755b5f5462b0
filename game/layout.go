package game

import (
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	layoutMine = '*'
	layoutSafe = '.'
)

// Layout is a fixed mine field: one string per board row, '*' for a mine and
// '.' for a safe cell.
type Layout struct {
	Seed  int64  `yaml:"seed,omitempty"`
	Board string `yaml:"board"`
}

func (layout *Layout) Serialize() string {
	out, err := yaml.Marshal(layout)
	if err != nil {
		panic(err)
	}

	return string(out)
}

func (layout *Layout) rows() []string {
	return strings.Split(strings.TrimSpace(layout.Board), "\n")
}

// CreateBoard builds an all-hidden board with the layout's mines.
func (layout *Layout) CreateBoard() (*Board, error) {
	rows := layout.rows()
	size := len(rows)

	var mines []Coord
	for row, line := range rows {
		line = strings.TrimSpace(line)
		if len(line) != size {
			return nil, errors.Wrapf(ErrInvalidConfiguration, "layout row %d has %d cells, want %d", row+1, len(line), size)
		}

		for col, c := range line {
			switch c {
			case layoutMine:
				mines = append(mines, Coord{row, col})
			case layoutSafe:
			default:
				return nil, errors.Errorf("layout row %d: unexpected %q", row+1, c)
			}
		}
	}

	board, err := NewBoardWithMines(size, mines)
	if err != nil {
		return nil, err
	}
	if layout.Seed != 0 {
		board.rand = NewRand(layout.Seed)
	}
	return board, nil
}

// LayoutOf captures the mine field of board, ignoring what has been revealed.
func LayoutOf(board *Board) *Layout {
	var b strings.Builder
	for row := range board.size {
		for col := range board.size {
			if board.isMine(row, col) {
				b.WriteByte(layoutMine)
			} else {
				b.WriteByte(layoutSafe)
			}
		}
		if row < board.size-1 {
			b.WriteByte('\n')
		}
	}
	return &Layout{Board: b.String()}
}

func LoadLayout(in string) (*Layout, error) {
	var layout Layout
	if err := yaml.Unmarshal([]byte(in), &layout); err != nil {
		return nil, errors.Wrap(err, "parse layout")
	}
	if strings.TrimSpace(layout.Board) == "" {
		return nil, errors.Wrap(ErrInvalidConfiguration, "layout has no board")
	}
	return &layout, nil
}
