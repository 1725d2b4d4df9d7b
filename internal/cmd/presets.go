package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/montyhall/internal/presets"
	"github.com/Iron-Ham/montyhall/internal/report"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the named game configurations",
	Long: `List the named game configurations usable with --preset, together with
the probabilities a long run converges to when the host opens one door.`,
	Args: cobra.NoArgs,
	RunE: runPresets,
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}

func runPresets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, p := range presets.All() {
		fmt.Fprintf(out, "%-9s %2d doors  original %6.2f%%  switched %6.2f%%  %s\n",
			p.Name, p.Doors(), report.Percent(p.Original), report.Percent(p.Switched), p.Description)
	}
	return nil
}
