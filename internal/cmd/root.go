package cmd

import (
	"strings"

	"github.com/Iron-Ham/montyhall/internal/config"
	"github.com/Iron-Ham/montyhall/internal/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "montyhall",
	Short: "Monte Carlo simulator for the Monty Hall problem",
	Long: `montyhall estimates how often a game show contestant wins the car when
keeping the first pick versus switching after the host opens goat doors.

The game generalizes to any number of doors: C cars, G goats, and K doors
opened by the host. Estimates come from repeated random trials; the error
shrinks as 1/sqrt(trials).`,
	SilenceUsage: true,
}

// Process exit codes
const (
	ExitOK           = 0
	ExitFailure      = 1
	ExitInvalidInput = 2 // malformed argument or configuration value
	ExitRejected     = 3 // valid values the game cannot be played with
)

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExitCode maps an error returned by Execute to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.IsInvalidArgument(err):
		return ExitInvalidInput
	case errors.IsUserFacing(err):
		return ExitRejected
	default:
		return ExitFailure
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is $HOME/.config/montyhall/config.yaml)")
	flags.Int("cars", 1, "number of doors hiding a car")
	flags.Int("goats", 2, "number of doors hiding a goat")
	flags.IntP("trials", "n", 1000000, "number of games played per strategy")
	flags.IntP("eliminations", "k", 1, "number of goat doors the host opens")
	flags.Uint64("seed", 0, "random seed for reproducible runs (0 picks one)")
	flags.String("preset", "", "named configuration: classic, five, thirteen (overrides --cars/--goats)")
	flags.Bool("timing", true, "print the elapsed time of each strategy")

	_ = viper.BindPFlag("config", flags.Lookup("config"))
	_ = viper.BindPFlag("simulation.cars", flags.Lookup("cars"))
	_ = viper.BindPFlag("simulation.goats", flags.Lookup("goats"))
	_ = viper.BindPFlag("simulation.trials", flags.Lookup("trials"))
	_ = viper.BindPFlag("simulation.eliminations", flags.Lookup("eliminations"))
	_ = viper.BindPFlag("simulation.seed", flags.Lookup("seed"))
	_ = viper.BindPFlag("simulation.preset", flags.Lookup("preset"))
	_ = viper.BindPFlag("output.timing", flags.Lookup("timing"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/montyhall")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("MONTYHALL")
	// e.g., MONTYHALL_SIMULATION_TRIALS for simulation.trials
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
