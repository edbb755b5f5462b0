package game_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/they4kman/termsweep/director/constraint"
	"github.com/they4kman/termsweep/director/random"
	"github.com/they4kman/termsweep/game"
)

// Mine in the top-left corner of a 3x3 board.
const cornerLayout = "board: |\n  *..\n  ...\n  ...\n"

func newConfig(t *testing.T, input string) (game.GameConfig, *bytes.Buffer) {
	t.Helper()

	layout, err := game.LoadLayout(cornerLayout)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	config := game.NewGameConfig()
	config.Layout = layout
	config.In = strings.NewReader(input)
	config.Out = out
	return config, out
}

func TestRunLose(t *testing.T) {
	config, out := newConfig(t, "1,1\n")

	result, err := game.Run(context.Background(), config)
	require.NoError(t, err)
	assert.Equal(t, game.Lost, result.State)
	assert.Equal(t, 1, result.Moves)
	assert.True(t, strings.HasSuffix(out.String(), "You hit a mine! Game Over.\n* # #\n# # #\n# # #\n"))
}

func TestRunWin(t *testing.T) {
	input := strings.Join([]string{
		"hello",
		"2,2",
		"2,2",
		"4,4",
		" 1 , 2 ",
		"1,3", "2,1", "2,3", "3,1", "3,2", "3,3",
		"1,1",
	}, "\n")
	config, out := newConfig(t, input)

	result, err := game.Run(context.Background(), config)
	require.NoError(t, err)
	assert.Equal(t, game.Won, result.State)
	assert.Equal(t, 8, result.Moves)
	assert.True(t, result.Board.IsWon())

	text := out.String()
	assert.Contains(t, text, "Enter row,col (e.g., 1,2): ")
	assert.Contains(t, text, "Invalid input format. Use row,col\n")
	assert.Contains(t, text, "Cell already revealed\n")
	assert.Contains(t, text, "Coordinates out of bounds\n")
	assert.True(t, strings.HasSuffix(text, "Congratulations! You cleared the minefield.\n# 1 0\n1 1 0\n0 0 0\n"))
}

func TestRunInputClosed(t *testing.T) {
	config, _ := newConfig(t, "2,2\n")

	result, err := game.Run(context.Background(), config)
	assert.ErrorIs(t, err, game.ErrInputClosed)
	assert.Equal(t, game.Ongoing, result.State)
	assert.Equal(t, 1, result.Moves)
}

func TestRunSkipsOverlongLine(t *testing.T) {
	input := strings.Repeat("9", 70*1024) + "\n1,1\n"
	config, out := newConfig(t, input)

	result, err := game.Run(context.Background(), config)
	require.NoError(t, err)
	assert.Equal(t, game.Lost, result.State)
	assert.Equal(t, 1, result.Moves)
	assert.Equal(t, 1, strings.Count(out.String(), "Invalid input format. Use row,col\n"))
}

func TestRunCancelled(t *testing.T) {
	config, _ := newConfig(t, "2,2\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := game.Run(ctx, config)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, result.Moves)
}

func TestRunInvalidConfiguration(t *testing.T) {
	config := game.NewGameConfig()
	config.Size = 2
	config.NumMines = 4

	_, err := game.Run(context.Background(), config)
	assert.ErrorIs(t, err, game.ErrInvalidConfiguration)
}

func TestRunDirector(t *testing.T) {
	directors := map[string]game.Director{
		"random":     &random.Director{},
		"constraint": &constraint.Director{},
	}

	for name, director := range directors {
		out := &bytes.Buffer{}
		config := game.NewGameConfig()
		config.Size = 4
		config.NumMines = 3
		config.Seed = 99
		config.Director = director
		config.In = strings.NewReader("")
		config.Out = out

		result, err := game.Run(context.Background(), config)
		require.NoError(t, err, name)
		assert.NotEqual(t, game.Ongoing, result.State, name)
		assert.GreaterOrEqual(t, result.Moves, 1, name)
		assert.LessOrEqual(t, result.Moves, 13, name)
	}
}

func TestParseMove(t *testing.T) {
	tests := []struct {
		input string
		want  game.Coord
		ok    bool
	}{
		{"1,2", game.Coord{Row: 0, Col: 1}, true},
		{" 3 , 3 \r", game.Coord{Row: 2, Col: 2}, true},
		{"0,0", game.Coord{Row: -1, Col: -1}, true},
		{"1", game.Coord{}, false},
		{"1,2,3", game.Coord{}, false},
		{"a,b", game.Coord{}, false},
		{"", game.Coord{}, false},
	}

	for _, test := range tests {
		coord, err := game.ParseMove(test.input)
		if test.ok {
			assert.NoError(t, err, test.input)
			assert.Equal(t, test.want, coord, test.input)
		} else {
			assert.ErrorIs(t, err, game.ErrInvalidMove, test.input)
		}
	}
}
