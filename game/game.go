package game

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gammazero/deque"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	promptText     = "Enter row,col (e.g., 1,2): "
	invalidInput   = "Invalid input format. Use row,col"
	lostMessage    = "You hit a mine! Game Over."
	wonMessage     = "Congratulations! You cleared the minefield."
	defaultSize    = 5
	defaultHistory = 10

	// Longest input line accepted as a move, in bytes
	maxLineLength = 4096
)

type GameConfig struct {
	Size     int
	NumMines int

	Seed int64

	// Fixed mine field to play instead of a random one
	Layout *Layout

	// Picks cells instead of reading them from In
	Director Director

	In  io.Reader
	Out io.Writer

	// Number of most recent moves kept for the end-of-game log entry
	HistoryLen int
}

func NewGameConfig() GameConfig {
	return GameConfig{
		Size:       defaultSize,
		NumMines:   defaultSize,
		Director:   nil,
		Layout:     nil,
		In:         os.Stdin,
		Out:        os.Stdout,
		HistoryLen: defaultHistory,
	}
}

func (config GameConfig) createBoard() (*Board, error) {
	if config.Layout != nil {
		return config.Layout.CreateBoard()
	}
	return NewBoard(config.Size, config.NumMines, NewRand(config.Seed))
}

// Result summarises a finished session.
type Result struct {
	State BoardState
	Moves int
	Board *Board
}

type session struct {
	config  GameConfig
	board   *Board
	lines   <-chan string
	history deque.Deque
	moves   int
}

// Run plays one game on the terminal described by config: it prints the
// board, asks for a 1-based row,col, reveals it, and repeats until the board
// is won or lost. Bad input and rejected moves re-prompt.
func Run(ctx context.Context, config GameConfig) (*Result, error) {
	board, err := config.createBoard()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s := &session{config: config, board: board}
	if config.Director != nil {
		config.Director.Init(board)
	} else {
		s.lines = readLines(ctx, config.In)
	}

	for board.canPlay() {
		if err := ctx.Err(); err != nil {
			return s.result(), err
		}

		fmt.Fprint(config.Out, board)
		fmt.Fprint(config.Out, promptText)

		coord, err := s.nextMove(ctx)
		if errors.Is(err, ErrInvalidMove) {
			fmt.Fprintln(config.Out, invalidInput)
			continue
		}
		if err != nil {
			return s.result(), err
		}

		s.play(coord)
	}

	switch board.State() {
	case Lost:
		fmt.Fprintln(config.Out, lostMessage)
	case Won:
		fmt.Fprintln(config.Out, wonMessage)
	}
	fmt.Fprint(config.Out, board)

	s.logEnd()
	return s.result(), nil
}

func (s *session) nextMove(ctx context.Context) (Coord, error) {
	if s.config.Director != nil {
		coord, err := s.config.Director.Next()
		if err != nil {
			return Coord{}, err
		}
		fmt.Fprintf(s.config.Out, "%d,%d\n", coord.Row+1, coord.Col+1)
		return coord, nil
	}

	select {
	case <-ctx.Done():
		return Coord{}, ctx.Err()
	case line, ok := <-s.lines:
		if !ok {
			fmt.Fprintln(s.config.Out)
			return Coord{}, ErrInputClosed
		}
		return ParseMove(line)
	}
}

func (s *session) play(coord Coord) {
	_, err := s.board.Reveal(coord.Row, coord.Col)
	if err != nil {
		fmt.Fprintln(s.config.Out, moveErrorMessage(err))
		return
	}

	s.moves++
	s.history.PushBack(coord)
	for s.config.HistoryLen > 0 && s.history.Len() > s.config.HistoryLen {
		s.history.PopFront()
	}
}

func (s *session) result() *Result {
	return &Result{State: s.board.State(), Moves: s.moves, Board: s.board}
}

func (s *session) logEnd() {
	recent := make([]string, 0, s.history.Len())
	for i := 0; i < s.history.Len(); i++ {
		recent = append(recent, s.history.At(i).(Coord).String())
	}

	Log.WithFields(logrus.Fields{
		"state":  s.board.State(),
		"moves":  s.moves,
		"recent": strings.Join(recent, " "),
	}).Info("game ended")
}

func moveErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrOutOfBounds):
		return "Coordinates out of bounds"
	case errors.Is(err, ErrAlreadyRevealed):
		return "Cell already revealed"
	default:
		return err.Error()
	}
}

// ParseMove converts 1-based "row,col" text into a zero-based coordinate. It
// does not check the coordinate against any board.
func ParseMove(input string) (Coord, error) {
	parts := strings.Split(strings.TrimSpace(input), ",")
	if len(parts) != 2 {
		return Coord{}, ErrInvalidMove
	}

	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Coord{}, ErrInvalidMove
	}
	col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Coord{}, ErrInvalidMove
	}

	return Coord{row - 1, col - 1}, nil
}

// readLines feeds input lines to the session until ctx is done. On a terminal
// the goroutine can stay blocked reading after the game ends.
func readLines(ctx context.Context, in io.Reader) <-chan string {
	out := make(chan string)
	go func() {
		defer close(out)
		reader := bufio.NewReaderSize(in, maxLineLength)
		for {
			line, err := readLine(reader)
			if err != nil {
				if !errors.Is(err, io.EOF) {
					Log.WithError(err).Warn("reading input")
				}
				return
			}
			select {
			case out <- line:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// readLine returns the next line without its line ending. A line that does
// not fit in the reader's buffer is consumed and returned empty, so it is
// rejected as a move instead of ending the input.
func readLine(reader *bufio.Reader) (string, error) {
	line, isPrefix, err := reader.ReadLine()
	if err != nil {
		return "", err
	}
	if !isPrefix {
		return string(line), nil
	}

	for isPrefix {
		if _, isPrefix, err = reader.ReadLine(); err != nil {
			return "", err
		}
	}
	Log.WithField("limit", maxLineLength).Warn("skipped overlong input line")
	return "", nil
}
