package constraint

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/they4kman/termsweep/director/random"
	"github.com/they4kman/termsweep/game"
	"github.com/they4kman/termsweep/util/collections"
)

var Log = logrus.New()

var ErrNoMoves = random.ErrNoMoves

// Director plays from the numbers on revealed cells. Cells it proves to be
// mines are remembered here and never offered; the board is left untouched.
type Director struct {
	board *game.Board

	mines collections.Set[game.Coord]

	fallback *random.Director
}

// Observation says that numMines of cells are mines.
type Observation struct {
	origin   *game.Cell
	numMines int
	cells    collections.Set[game.Coord]
}

func (observation *Observation) String() string {
	coords := make([]string, 0, len(observation.cells))
	for coord := range observation.cells {
		coords = append(coords, coord.String())
	}
	slices.Sort(coords)

	originRepr := "?"
	if observation.origin != nil {
		originRepr = observation.origin.String()
	}

	return fmt.Sprintf("Obs[%s, %d ε %s]", originRepr, observation.numMines, strings.Join(coords, ", "))
}

func (observation *Observation) MineProbability() float64 {
	return float64(observation.numMines) / float64(len(observation.cells))
}

func (director *Director) Init(board *game.Board) {
	director.board = board
	director.mines = make(collections.Set[game.Coord])

	director.fallback = &random.Director{}
	director.fallback.Init(board)
}

// Next prefers a cell proven safe, then the cell least likely to be a mine
// according to the observations, then any hidden cell not proven to be a
// mine.
func (director *Director) Next() (game.Coord, error) {
	safe, observations := director.deduce()

	for cell := range director.board.Cells() {
		if safe.Contains(cell.Coord()) {
			Log.WithField("cell", cell).Debug("revealing proven safe cell")
			return cell.Coord(), nil
		}
	}

	if coord, ok := director.lowestProbability(observations); ok {
		return coord, nil
	}

	for {
		coord, err := director.fallback.Next()
		if err != nil {
			return game.Coord{}, err
		}
		if !director.mines.Contains(coord) {
			Log.WithField("cell", coord).Debug("guessing with nothing to go on")
			return coord, nil
		}
	}
}

// deduce reads the board until no new mine can be proven, and returns the
// cells proven safe together with the observations they came from.
func (director *Director) deduce() (collections.Set[game.Coord], []*Observation) {
	for {
		observations := director.observe()
		observations = append(observations, simplify(observations)...)

		safe := make(collections.Set[game.Coord])
		numFound := 0
		for _, observation := range observations {
			switch observation.numMines {
			case 0:
				for coord := range observation.cells {
					safe.Add(coord)
				}
			case len(observation.cells):
				for coord := range observation.cells {
					if !director.mines.Contains(coord) {
						director.mines.Add(coord)
						numFound++
					}
				}
				Log.WithField("observation", observation).Trace("all cells are mines")
			}
		}

		if numFound == 0 {
			return safe, observations
		}

		Log.WithFields(logrus.Fields{
			"found": numFound,
			"mines": len(director.mines),
		}).Debug("proved mines")
	}
}

// observe builds one observation per revealed number, over its hidden
// neighbours not already known to be mines.
func (director *Director) observe() []*Observation {
	var observations []*Observation

	for cell := range director.board.Cells() {
		numMines := cell.NumMines()
		if numMines < 0 {
			continue
		}

		observation := &Observation{
			origin:   cell,
			numMines: numMines,
			cells:    make(collections.Set[game.Coord]),
		}
		for neighbor := range cell.Neighbors() {
			switch {
			case neighbor.IsRevealed():
			case director.mines.Contains(neighbor.Coord()):
				observation.numMines--
			default:
				observation.cells.Add(neighbor.Coord())
			}
		}

		if len(observation.cells) > 0 {
			observations = append(observations, observation)
		}
	}

	return observations
}

// simplify derives observations from overlapping pairs. When one observation's
// cells all lie in another's, the leftover cells hold the rest of the other's
// mines. When a single-mine observation shares several cells with another, the
// other's cells outside the overlap must all be mines if they are exactly as
// many as the mines the overlap cannot hold.
func simplify(observations []*Observation) []*Observation {
	var derived []*Observation

	for _, observation := range observations {
		for _, other := range observations {
			if other == observation || !near(observation.origin.Coord(), other.origin.Coord()) {
				continue
			}

			shared, isSubset := observation.cells.IntersectionEx(other.cells)
			switch {
			case isSubset && len(observation.cells) < len(other.cells):
				derived = append(derived, &Observation{
					numMines: other.numMines - observation.numMines,
					cells:    other.cells.Difference(observation.cells),
				})

			case !isSubset && observation.numMines == 1 && len(shared) > 1:
				otherOnly := other.cells.Difference(shared)
				occluded := other.numMines - observation.numMines
				if occluded > 0 && occluded == len(otherOnly) {
					derived = append(derived, &Observation{
						numMines: occluded,
						cells:    otherOnly,
					})
				}
			}
		}
	}

	return derived
}

// Two observations can only overlap when their origins are at most two cells
// apart.
func near(a, b game.Coord) bool {
	return max(a.Row-b.Row, b.Row-a.Row) <= 2 && max(a.Col-b.Col, b.Col-a.Col) <= 2
}

func (director *Director) lowestProbability(observations []*Observation) (game.Coord, bool) {
	cellProbabilities := make(map[game.Coord]float64)
	lowestProbability := math.Inf(1)

	for _, observation := range observations {
		probability := observation.MineProbability()
		for coord := range observation.cells {
			if past, ok := cellProbabilities[coord]; !ok || probability < past {
				cellProbabilities[coord] = probability
			}
		}
		lowestProbability = min(lowestProbability, probability)
	}

	if len(cellProbabilities) == 0 {
		return game.Coord{}, false
	}

	var lowestProbabilityCells []game.Coord
	for cell := range director.board.Cells() {
		if probability, ok := cellProbabilities[cell.Coord()]; ok && probability <= lowestProbability {
			lowestProbabilityCells = append(lowestProbabilityCells, cell.Coord())
		}
	}

	director.board.Rand().Shuffle(len(lowestProbabilityCells), func(i, j int) {
		lowestProbabilityCells[i], lowestProbabilityCells[j] = lowestProbabilityCells[j], lowestProbabilityCells[i]
	})

	Log.WithFields(logrus.Fields{
		"probability": lowestProbability,
		"candidates":  len(lowestProbabilityCells),
	}).Debug("guessing lowest mine probability")
	return lowestProbabilityCells[0], true
}
