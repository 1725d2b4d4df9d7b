// Package host implements the game show host's move: opening doors that are
// known to hide goats before the contestant makes a final choice.
package host

import (
	"math/rand/v2"

	"github.com/Iron-Ham/montyhall/internal/door"
	"github.com/Iron-Ham/montyhall/internal/errors"
)

// Eliminate opens k goat doors in doors and returns the remaining doors.
// The slice is modified in place.
//
// The host must leave at least one goat closed, so k has to be strictly
// less than the number of goats. Eliminations are rejected before any
// sampling takes place.
func Eliminate(rng *rand.Rand, doors []door.Door, k int) ([]door.Door, error) {
	if err := checkNegative(k); err != nil {
		return nil, err
	}
	if goats := door.Count(doors, door.Goat); k >= goats {
		return nil, insufficientGoats(k, goats)
	}
	return Open(rng, doors, k)
}

// Open removes k goat doors chosen uniformly at random. A car drawn by the
// sampler is put back and another door is drawn; cars are never removed.
//
// Unlike Eliminate, Open allows every goat to be opened. It is the
// primitive used inside a trial after the contestant's first pick has
// already been taken out of play.
func Open(rng *rand.Rand, doors []door.Door, k int) ([]door.Door, error) {
	if err := checkNegative(k); err != nil {
		return nil, err
	}
	if goats := door.Count(doors, door.Goat); k > goats {
		return nil, insufficientGoats(k, goats)
	}

	for k > 0 {
		i := rng.IntN(len(doors))
		if doors[i].Label != door.Goat {
			continue
		}
		doors = door.Remove(doors, i)
		k--
	}
	return doors, nil
}

func checkNegative(k int) error {
	if k < 0 {
		return errors.NewValidationError("eliminations cannot be negative").
			WithField("eliminations").
			WithValue(k).
			WithCause(errors.ErrNegativeEliminations)
	}
	return nil
}

func insufficientGoats(k, goats int) error {
	return errors.Wrapf(errors.ErrInsufficientGoats, "cannot open %d doors with %d goats", k, goats)
}
