// Package presets holds the well-known game configurations together with the
// win probabilities a long simulation run is expected to approach.
package presets

import (
	"slices"
	"strings"

	"github.com/Iron-Ham/montyhall/internal/errors"
)

// Preset is a named pool composition with reference probabilities for one
// host elimination.
type Preset struct {
	Name        string
	Description string
	Cars        int
	Goats       int
	// Reference probabilities for staying and for switching after the host
	// opens one door.
	Original float64
	Switched float64
}

// Doors returns the total number of doors.
func (p Preset) Doors() int {
	return p.Cars + p.Goats
}

var all = []Preset{
	{
		Name:        "classic",
		Description: "the original game show: 3 doors, 1 car, 2 goats",
		Cars:        1,
		Goats:       2,
		Original:    1.0 / 3,
		Switched:    2.0 / 3,
	},
	{
		Name:        "five",
		Description: "5 doors, 1 car, 4 goats",
		Cars:        1,
		Goats:       4,
		Original:    1.0 / 5,
		Switched:    4.0 / 15,
	},
	{
		Name:        "thirteen",
		Description: "13 doors, 1 car, 12 goats",
		Cars:        1,
		Goats:       12,
		Original:    1.0 / 13,
		Switched:    12.0 / 143,
	},
}

// All returns every preset ordered by door count.
func All() []Preset {
	return slices.Clone(all)
}

// Names returns the preset names in the order of All.
func Names() []string {
	names := make([]string, len(all))
	for i, p := range all {
		names[i] = p.Name
	}
	return names
}

// Lookup finds a preset by case-insensitive name.
func Lookup(name string) (Preset, error) {
	for _, p := range all {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	return Preset{}, errors.NewValidationError("unknown preset").
		WithField("preset").
		WithValue(name).
		WithCause(errors.Wrapf(errors.ErrUnknownPreset, "valid presets: %s", strings.Join(Names(), ", ")))
}
