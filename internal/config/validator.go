package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Iron-Ham/montyhall/internal/errors"
	"github.com/Iron-Ham/montyhall/internal/presets"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "simulation.trials")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Is reports a configuration that failed validation as invalid input.
func (e ValidationErrors) Is(target error) bool {
	return target == errors.ErrInvalidInput
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	errs = append(errs, c.validateSimulation()...)
	errs = append(errs, c.validateLogging()...)

	return errs
}

// validateSimulation validates the SimulationConfig. Only ranges are checked
// here; whether the host can open that many doors depends on the pool and is
// decided by the strategy runner.
func (c *Config) validateSimulation() []ValidationError {
	var errs []ValidationError
	s := c.Simulation

	if s.Cars < 0 {
		errs = append(errs, ValidationError{
			Field:   "simulation.cars",
			Value:   s.Cars,
			Message: "must be non-negative",
		})
	}

	if s.Goats < 0 {
		errs = append(errs, ValidationError{
			Field:   "simulation.goats",
			Value:   s.Goats,
			Message: "must be non-negative",
		})
	}

	if s.Trials < 1 {
		errs = append(errs, ValidationError{
			Field:   "simulation.trials",
			Value:   s.Trials,
			Message: "must be at least 1",
		})
	}

	if s.Eliminations < 0 {
		errs = append(errs, ValidationError{
			Field:   "simulation.eliminations",
			Value:   s.Eliminations,
			Message: "eliminations cannot be negative",
		})
	}

	if s.Preset != "" && !slices.Contains(presets.Names(), strings.ToLower(s.Preset)) {
		errs = append(errs, ValidationError{
			Field:   "simulation.preset",
			Value:   s.Preset,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(presets.Names(), ", ")),
		})
	}

	return errs
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errs []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	return errs
}
