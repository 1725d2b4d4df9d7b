package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Iron-Ham/montyhall/internal/report"
	"github.com/Iron-Ham/montyhall/internal/strategy"
)

const zeroEliminationsNote = "No doors opened: switching is the same as keeping the first choice."

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Estimate win probabilities for staying and for switching",
	Long: `Play the configured game with both strategies and print one summary line
for each:

  <trials> trials | original win: <wins> cars, probability: <pct>%
  <trials> trials | switched win: <wins> cars, probability: <pct>%

Examples:
  montyhall run
  montyhall run --goats 12 --trials 100000
  montyhall run --preset five --seed 2015`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

var stayCmd = &cobra.Command{
	Use:   "stay",
	Short: "Estimate the win probability of keeping the first pick",
	Args:  cobra.NoArgs,
	RunE:  runStay,
}

var switchCmd = &cobra.Command{
	Use:   "switch",
	Short: "Estimate the win probability of switching after the host opens doors",
	Long: `Estimate the win probability of switching after the host opens
--eliminations goat doors. The host always leaves at least one goat closed,
so --eliminations must be smaller than the number of goats. With
--eliminations 0 the result equals keeping the first pick.`,
	Args: cobra.NoArgs,
	RunE: runSwitch,
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Estimate switching for every number of doors the host can open",
	Long: `Run the switch strategy once for each elimination count from 0 up to
the largest the pool allows, showing how the advantage of switching grows
as the host opens more doors.`,
	Args: cobra.NoArgs,
	RunE: runSweep,
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(stayCmd)
	rootCmd.AddCommand(switchCmd)
	rootCmd.AddCommand(sweepCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	sim, err := newSimulation(cmd)
	if err != nil {
		return err
	}
	defer sim.close()

	// Reject a bad switch configuration before spending time on the first strategy.
	if err := strategy.ValidateSwitch(sim.pool, sim.trials(), sim.eliminations()); err != nil {
		return err
	}

	original, err := sim.original()
	if err != nil {
		return err
	}
	switched, err := sim.switched()
	if err != nil {
		return err
	}

	sim.reporter.Result(original)
	sim.reporter.Result(switched)
	return nil
}

func runStay(cmd *cobra.Command, args []string) error {
	sim, err := newSimulation(cmd)
	if err != nil {
		return err
	}
	defer sim.close()

	res, err := sim.original()
	if err != nil {
		return err
	}
	sim.reporter.Result(res)
	return nil
}

func runSwitch(cmd *cobra.Command, args []string) error {
	sim, err := newSimulation(cmd)
	if err != nil {
		return err
	}
	defer sim.close()

	res, err := sim.switched()
	if err != nil {
		return err
	}
	sim.reporter.Result(res)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	sim, err := newSimulation(cmd)
	if err != nil {
		return err
	}
	defer sim.close()

	sim.reporter.Header(sim.pool)
	results, elapsed, err := report.Time(func() ([]strategy.Result, error) {
		return sim.runner.Sweep(sim.pool, sim.trials())
	})
	if err != nil {
		return err
	}
	sim.reporter.Elapsed("sweep", elapsed)
	sim.reporter.Sweep(results)
	return nil
}
