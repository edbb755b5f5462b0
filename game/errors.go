package game

import "github.com/pkg/errors"

var (
	ErrInvalidConfiguration = errors.New("invalid grid size or number of mines")
	ErrOutOfBounds          = errors.New("coordinates out of bounds")
	ErrAlreadyRevealed      = errors.New("cell already revealed")
	ErrGameOver             = errors.New("game is over")
	ErrInvalidMove          = errors.New("move must be row,col")
	ErrInputClosed          = errors.New("input closed before the game ended")
)
