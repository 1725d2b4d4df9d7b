package cmd

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Iron-Ham/montyhall/internal/config"
	"github.com/Iron-Ham/montyhall/internal/door"
	"github.com/Iron-Ham/montyhall/internal/errors"
	"github.com/Iron-Ham/montyhall/internal/logging"
	"github.com/Iron-Ham/montyhall/internal/presets"
	"github.com/Iron-Ham/montyhall/internal/report"
	"github.com/Iron-Ham/montyhall/internal/strategy"
)

// simulation bundles everything a command needs to play and report games.
type simulation struct {
	cfg      *config.Config
	pool     door.Pool
	runner   *strategy.Runner
	reporter *report.Reporter
	logger   *logging.Logger
	errOut   io.Writer
}

// newSimulation loads the configuration and builds the pool, the seeded
// runner and the reporter for cmd.
func newSimulation(cmd *cobra.Command) (*simulation, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	cars, goats := cfg.Simulation.Cars, cfg.Simulation.Goats
	if cfg.Simulation.Preset != "" {
		p, err := presets.Lookup(cfg.Simulation.Preset)
		if err != nil {
			return nil, err
		}
		cars, goats = p.Cars, p.Goats
	}

	pool, err := door.Generate(cars, goats)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}
	logger = logger.WithRun(uuid.NewString()).With("command", cmd.Name())

	if cfg.Simulation.Preset != "" && (cmd.Flags().Changed("cars") || cmd.Flags().Changed("goats")) {
		logger.Warn("preset overrides --cars and --goats",
			"preset", cfg.Simulation.Preset,
			"cars", cars,
			"goats", goats,
		)
	}

	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	logger.Info("simulation configured",
		"doors", pool.Len(),
		"cars", pool.Cars(),
		"goats", pool.Goats(),
		"trials", cfg.Simulation.Trials,
		"eliminations", cfg.Simulation.Eliminations,
		"seed", seed,
	)

	return &simulation{
		cfg:      cfg,
		pool:     pool,
		runner:   strategy.NewRunner(rand.New(rand.NewPCG(seed, seed)), logger),
		reporter: report.New(cmd.OutOrStdout(), cfg.Output.Timing),
		logger:   logger,
		errOut:   cmd.ErrOrStderr(),
	}, nil
}

func newLogger(cfg config.LoggingConfig) (*logging.Logger, error) {
	if !cfg.Enabled {
		return logging.NopLogger(), nil
	}
	logger, err := logging.NewLogger(cfg.Dir, logging.ParseLevel(cfg.Level))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create logger")
	}
	return logger, nil
}

func (s *simulation) trials() int       { return s.cfg.Simulation.Trials }
func (s *simulation) eliminations() int { return s.cfg.Simulation.Eliminations }

func (s *simulation) original() (strategy.Result, error) {
	return s.reporter.Run(string(strategy.NameOriginal), func() (strategy.Result, error) {
		return s.runner.Original(s.pool, s.trials())
	})
}

func (s *simulation) switched() (strategy.Result, error) {
	if s.eliminations() == 0 {
		s.reporter.Note(zeroEliminationsNote)
	}
	return s.reporter.Run(string(strategy.NameSwitched), func() (strategy.Result, error) {
		return s.runner.Switch(s.pool, s.trials(), s.eliminations())
	})
}

func (s *simulation) close() {
	if err := s.logger.Close(); err != nil {
		fmt.Fprintf(s.errOut, "warning: %v\n", err)
	}
}
