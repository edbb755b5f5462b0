package cmd

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/they4kman/termsweep/director/constraint"
	"github.com/they4kman/termsweep/director/random"
	"github.com/they4kman/termsweep/game"
)

var directors = map[string]func() game.Director{
	"random":     func() game.Director { return &random.Director{} },
	"constraint": func() game.Director { return &constraint.Director{} },
}

// directorValue names the computer player; empty means the user plays.
type directorValue string

func (directorVal *directorValue) String() string {
	return string(*directorVal)
}

func (directorVal *directorValue) Set(value string) error {
	if _, err := newDirector(value); err != nil {
		return err
	}
	*directorVal = directorValue(value)
	return nil
}

func (directorVal *directorValue) Type() string {
	return "director"
}

func newDirector(name string) (game.Director, error) {
	if name == "" {
		return nil, nil
	}
	if create, isValid := directors[name]; isValid {
		return create(), nil
	}

	names := make([]string, 0, len(directors))
	for known := range directors {
		names = append(names, known)
	}
	sort.Strings(names)
	return nil, errors.Errorf("invalid director %q (want %s)", name, strings.Join(names, " or "))
}
