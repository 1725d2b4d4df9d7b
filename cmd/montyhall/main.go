// Command montyhall estimates Monty Hall win probabilities by simulation.
package main

import (
	"os"

	"github.com/Iron-Ham/montyhall/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(cmd.ExitCode(err))
	}
}
