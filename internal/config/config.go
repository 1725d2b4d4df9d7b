package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config represents the complete montyhall configuration
type Config struct {
	Simulation SimulationConfig `mapstructure:"simulation" yaml:"simulation"`
	Output     OutputConfig     `mapstructure:"output" yaml:"output"`
	Logging    LoggingConfig    `mapstructure:"logging" yaml:"logging"`
}

// SimulationConfig describes the game being simulated
type SimulationConfig struct {
	// Cars is the number of winning doors (default: 1)
	Cars int `mapstructure:"cars" yaml:"cars"`
	// Goats is the number of non-winning doors (default: 2)
	Goats int `mapstructure:"goats" yaml:"goats"`
	// Trials is the number of games played per strategy (default: 1000000)
	Trials int `mapstructure:"trials" yaml:"trials"`
	// Eliminations is the number of goat doors the host opens (default: 1)
	Eliminations int `mapstructure:"eliminations" yaml:"eliminations"`
	// Seed makes runs reproducible; 0 picks a random seed (default: 0)
	Seed uint64 `mapstructure:"seed" yaml:"seed"`
	// Preset overrides Cars and Goats with a named configuration (default: "")
	// Options: "classic", "five", "thirteen"
	Preset string `mapstructure:"preset" yaml:"preset"`
}

// OutputConfig controls the text report
type OutputConfig struct {
	// Timing prints the elapsed time of each strategy (default: true)
	Timing bool `mapstructure:"timing" yaml:"timing"`
}

// LoggingConfig controls diagnostic logging
type LoggingConfig struct {
	// Enabled controls whether diagnostic logging is enabled (default: false)
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level" yaml:"level"`
	// Dir is the directory for montyhall.log; empty writes to stderr (default: "")
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			Cars:         1,
			Goats:        2,
			Trials:       1000000,
			Eliminations: 1,
			Seed:         0, // Random seed per run
			Preset:       "",
		},
		Output: OutputConfig{
			Timing: true,
		},
		Logging: LoggingConfig{
			Enabled: false,
			Level:   "info",
			Dir:     "",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Simulation defaults
	viper.SetDefault("simulation.cars", defaults.Simulation.Cars)
	viper.SetDefault("simulation.goats", defaults.Simulation.Goats)
	viper.SetDefault("simulation.trials", defaults.Simulation.Trials)
	viper.SetDefault("simulation.eliminations", defaults.Simulation.Eliminations)
	viper.SetDefault("simulation.seed", defaults.Simulation.Seed)
	viper.SetDefault("simulation.preset", defaults.Simulation.Preset)

	// Output defaults
	viper.SetDefault("output.timing", defaults.Output.Timing)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.dir", defaults.Logging.Dir)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// YAML renders the configuration in config file format
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "montyhall")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".montyhall"
	}
	return filepath.Join(home, ".config", "montyhall")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
