// Package door models the doors of a Monty Hall game: each door hides either
// the car or a goat, and a Pool is the fixed set of doors for one game
// configuration.
//
// Doors are compared by ID, never by label. Two goats are interchangeable as
// prizes but remain distinct doors, which is what lets the host remove one
// specific goat without touching the others.
package door

import (
	"fmt"

	"github.com/Iron-Ham/montyhall/internal/errors"
)

// Label is what hides behind a door.
type Label int

const (
	// Goat is the non-winning prize.
	Goat Label = iota
	// Car is the winning prize.
	Car
)

// String returns the prize name used in reports.
func (l Label) String() string {
	switch l {
	case Car:
		return "car"
	case Goat:
		return "goat"
	default:
		return fmt.Sprintf("label(%d)", int(l))
	}
}

// Door is a single door. ID is unique within the Pool that created it.
type Door struct {
	ID    int
	Label Label
}

// IsCar reports whether the door hides the winning prize.
func (d Door) IsCar() bool {
	return d.Label == Car
}

// Pool is an immutable, ordered set of doors. The zero value is an empty pool.
//
// Pool never hands out its backing slice; strategies call Doors to get a
// private copy they are free to shuffle and shrink.
type Pool struct {
	doors []Door
	cars  int
}

// Generate builds a pool of cars car doors followed by goats goat doors.
// IDs are assigned 0..cars+goats-1 in that order. No shuffling is applied.
func Generate(cars, goats int) (Pool, error) {
	if cars < 0 {
		return Pool{}, errors.NewValidationError("car count cannot be negative").
			WithField("cars").
			WithValue(cars).
			WithCause(errors.ErrNegativeCount)
	}
	if goats < 0 {
		return Pool{}, errors.NewValidationError("goat count cannot be negative").
			WithField("goats").
			WithValue(goats).
			WithCause(errors.ErrNegativeCount)
	}

	doors := make([]Door, 0, cars+goats)
	for i := 0; i < cars; i++ {
		doors = append(doors, Door{ID: len(doors), Label: Car})
	}
	for i := 0; i < goats; i++ {
		doors = append(doors, Door{ID: len(doors), Label: Goat})
	}
	return Pool{doors: doors, cars: cars}, nil
}

// MustGenerate is like Generate but panics on invalid counts.
// Intended for fixed configurations and tests.
func MustGenerate(cars, goats int) Pool {
	p, err := Generate(cars, goats)
	if err != nil {
		panic(err)
	}
	return p
}

// Len returns the number of doors.
func (p Pool) Len() int { return len(p.doors) }

// Cars returns the number of car doors.
func (p Pool) Cars() int { return p.cars }

// Goats returns the number of goat doors.
func (p Pool) Goats() int { return len(p.doors) - p.cars }

// Doors returns a fresh copy of the doors.
func (p Pool) Doors() []Door {
	out := make([]Door, len(p.doors))
	copy(out, p.doors)
	return out
}

// String describes the pool composition, e.g. "3 doors (1 car, 2 goats)".
func (p Pool) String() string {
	return fmt.Sprintf("%d doors (%d %s, %d %s)",
		p.Len(), p.Cars(), plural("car", p.Cars()), p.Goats(), plural("goat", p.Goats()))
}

// Count returns how many doors in doors carry label.
func Count(doors []Door, label Label) int {
	n := 0
	for _, d := range doors {
		if d.Label == label {
			n++
		}
	}
	return n
}

// Remove deletes the door at index i, preserving the order of the rest.
func Remove(doors []Door, i int) []Door {
	return append(doors[:i], doors[i+1:]...)
}

func plural(word string, n int) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
