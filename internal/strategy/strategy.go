// Package strategy runs Monte Carlo trials of the Monty Hall game for the two
// contestant strategies and aggregates the outcomes.
//
// A Runner owns the random source. Every trial works on a private copy of
// the pool, so the pool passed in is never modified and may be shared
// between strategies.
package strategy

import (
	"math/rand/v2"

	"github.com/Iron-Ham/montyhall/internal/door"
	"github.com/Iron-Ham/montyhall/internal/errors"
	"github.com/Iron-Ham/montyhall/internal/host"
	"github.com/Iron-Ham/montyhall/internal/logging"
)

// Name identifies a contestant strategy in results and reports.
type Name string

const (
	// NameOriginal keeps the first pick.
	NameOriginal Name = "original"
	// NameSwitched abandons the first pick after the host opens doors.
	NameSwitched Name = "switched"
)

// Result aggregates the outcome of one strategy run.
type Result struct {
	// Strategy names the runner that produced the result
	Strategy Name
	// Trials is the number of games played
	Trials int
	// Wins counts the games that ended on a car
	Wins int
	// Probability is Wins / Trials
	Probability float64
	// Eliminations is the number of goat doors the host opened per game
	// (always 0 for the original strategy)
	Eliminations int
}

func newResult(name Name, trials, wins, eliminations int) Result {
	return Result{
		Strategy:     name,
		Trials:       trials,
		Wins:         wins,
		Probability:  float64(wins) / float64(trials),
		Eliminations: eliminations,
	}
}

// Runner executes strategies against a pool.
// It is not safe for concurrent use because it shares one random source.
type Runner struct {
	rng    *rand.Rand
	logger *logging.Logger
}

// NewRunner creates a Runner drawing from rng. A nil logger discards output.
func NewRunner(rng *rand.Rand, logger *logging.Logger) *Runner {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Runner{rng: rng, logger: logger}
}

// Original plays trials games in which the contestant keeps the first pick.
// Each trial reshuffles the doors and picks one uniformly at random.
func (r *Runner) Original(pool door.Pool, trials int) (Result, error) {
	if err := checkRun(pool, trials); err != nil {
		return Result{}, errors.NewSimulationError("original strategy rejected", err).
			WithStrategy(string(NameOriginal)).
			WithTrials(trials)
	}

	log := r.logger.WithStrategy(string(NameOriginal))
	log.Debug("strategy started", "trials", trials, "doors", pool.Len(), "cars", pool.Cars())

	doors := pool.Doors()
	wins := 0
	for i := 0; i < trials; i++ {
		r.shuffle(doors)
		if doors[r.rng.IntN(len(doors))].IsCar() {
			wins++
		}
	}

	res := newResult(NameOriginal, trials, wins, 0)
	log.Debug("strategy finished", "wins", res.Wins, "probability", res.Probability)
	return res, nil
}

// Switch plays trials games in which the contestant picks a door, the host
// opens eliminations goat doors among the rest, and the contestant picks
// again uniformly among the doors still closed, never keeping the first pick.
//
// With zero eliminations both picks are uniform over the same doors, so the
// run is delegated to Original.
func (r *Runner) Switch(pool door.Pool, trials, eliminations int) (Result, error) {
	if err := ValidateSwitch(pool, trials, eliminations); err != nil {
		return Result{}, err
	}

	log := r.logger.WithStrategy(string(NameSwitched))

	if eliminations == 0 {
		log.Info("no doors opened, switching is equivalent to staying")
		res, err := r.Original(pool, trials)
		if err != nil {
			return Result{}, err
		}
		res.Strategy = NameSwitched
		return res, nil
	}

	log.Debug("strategy started",
		"trials", trials, "doors", pool.Len(), "cars", pool.Cars(), "eliminations", eliminations)

	base := pool.Doors()
	buf := make([]door.Door, len(base))
	wins := 0
	for i := 0; i < trials; i++ {
		doors := buf[:len(base)]
		copy(doors, base)
		r.shuffle(doors)

		// The first choice leaves play; it never counts as a win here.
		doors = doors[:len(doors)-1]

		remaining, err := host.Open(r.rng, doors, eliminations)
		if err != nil {
			return Result{}, rejectSwitch(err, trials, eliminations)
		}
		if remaining[r.rng.IntN(len(remaining))].IsCar() {
			wins++
		}
	}

	res := newResult(NameSwitched, trials, wins, eliminations)
	log.Debug("strategy finished", "wins", res.Wins, "probability", res.Probability)
	return res, nil
}

// Sweep runs Switch for every elimination count from 0 up to
// MaxEliminations(pool), in increasing order.
func (r *Runner) Sweep(pool door.Pool, trials int) ([]Result, error) {
	maxK := max(MaxEliminations(pool), 0)

	results := make([]Result, 0, maxK+1)
	for k := 0; k <= maxK; k++ {
		res, err := r.Switch(pool, trials, k)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

// MaxEliminations returns the largest elimination count Switch accepts for
// pool, or -1 when the host cannot open any door. The host must keep one
// goat closed, and one door must remain for the second pick.
func MaxEliminations(pool door.Pool) int {
	return max(min(pool.Goats()-1, pool.Len()-2), -1)
}

// ValidateSwitch reports whether Switch would accept its arguments, without
// running any trial. Negative eliminations are always rejected first.
// Failures are returned as a *errors.SimulationError.
func ValidateSwitch(pool door.Pool, trials, eliminations int) error {
	if eliminations < 0 {
		return rejectSwitch(errors.NewValidationError("eliminations cannot be negative").
			WithField("eliminations").
			WithValue(eliminations).
			WithCause(errors.ErrNegativeEliminations), trials, eliminations)
	}
	if err := checkRun(pool, trials); err != nil {
		return rejectSwitch(err, trials, eliminations)
	}
	if eliminations == 0 {
		return nil
	}
	if err := checkEliminations(pool, eliminations); err != nil {
		return rejectSwitch(err, trials, eliminations)
	}
	return nil
}

func rejectSwitch(err error, trials, eliminations int) error {
	return errors.NewSimulationError("switch strategy rejected", err).
		WithStrategy(string(NameSwitched)).
		WithTrials(trials).
		WithEliminations(eliminations)
}

func (r *Runner) shuffle(doors []door.Door) {
	r.rng.Shuffle(len(doors), func(i, j int) {
		doors[i], doors[j] = doors[j], doors[i]
	})
}

func checkRun(pool door.Pool, trials int) error {
	if trials < 1 {
		return errors.NewValidationError("trials must be at least 1").
			WithField("trials").
			WithValue(trials).
			WithCause(errors.ErrZeroTrials)
	}
	if pool.Len() == 0 {
		return errors.ErrEmptyPool
	}
	return nil
}

func checkEliminations(pool door.Pool, k int) error {
	if k >= pool.Goats() {
		return errors.Wrapf(errors.ErrInsufficientGoats,
			"cannot open %d doors with %d goats", k, pool.Goats())
	}
	if pool.Len()-1-k < 1 {
		return errors.Wrapf(errors.ErrInsufficientDoors,
			"%d doors minus the first pick and %d eliminations", pool.Len(), k)
	}
	return nil
}
