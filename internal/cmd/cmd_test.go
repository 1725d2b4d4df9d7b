package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/Iron-Ham/montyhall/internal/config"
	"github.com/Iron-Ham/montyhall/internal/errors"
	"github.com/Iron-Ham/montyhall/internal/logging"
	"github.com/spf13/cobra"
)

var summaryLine = regexp.MustCompile(`^(\d+) trials \| (original|switched) win: (\d+) cars, probability: (\d+\.\d{2})%$`)

// executeCommand runs a cobra command with args and returns captured output
func executeCommand(root *cobra.Command, args ...string) (output string, err error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err = root.Execute()
	return buf.String(), err
}

// isolateConfig keeps user config files and environment out of the test.
func isolateConfig(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
}

// simArgs pins every simulation flag, since cobra flag values persist
// between executions of the same command tree.
func simArgs(command string, extra ...string) []string {
	args := []string{
		command,
		"--cars=1",
		"--goats=2",
		"--trials=20000",
		"--eliminations=1",
		"--seed=2015",
		"--preset=",
		"--timing=false",
	}
	return append(args, extra...)
}

type summary struct {
	trials   int
	strategy string
	wins     int
	percent  float64
}

func parseSummaries(t *testing.T, output string) []summary {
	t.Helper()
	var out []summary
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		m := summaryLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		trials, _ := strconv.Atoi(m[1])
		wins, _ := strconv.Atoi(m[3])
		pct, _ := strconv.ParseFloat(m[4], 64)
		out = append(out, summary{trials: trials, strategy: m[2], wins: wins, percent: pct})
	}
	return out
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "montyhall" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "montyhall")
	}

	expectedCmds := []string{"run", "stay", "switch", "sweep", "presets", "config"}
	cmdMap := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		cmdMap[cmd.Name()] = true
	}

	for _, expected := range expectedCmds {
		if !cmdMap[expected] {
			t.Errorf("expected subcommand %q not found", expected)
		}
	}
}

func TestRunCommand(t *testing.T) {
	isolateConfig(t)

	output, err := executeCommand(rootCmd, simArgs("run")...)
	if err != nil {
		t.Fatalf("run failed: %v\n%s", err, output)
	}

	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d:\n%s", len(lines), output)
	}

	got := parseSummaries(t, output)
	if len(got) != 2 {
		t.Fatalf("expected 2 summary lines, got %d:\n%s", len(got), output)
	}
	if got[0].strategy != "original" || got[1].strategy != "switched" {
		t.Errorf("strategies = %q, %q; want original, switched", got[0].strategy, got[1].strategy)
	}
	for _, s := range got {
		if s.trials != 20000 {
			t.Errorf("%s trials = %d, want 20000", s.strategy, s.trials)
		}
	}
	if got[0].percent < 31 || got[0].percent > 35.7 {
		t.Errorf("original probability = %.2f%%, want about 33.33%%", got[0].percent)
	}
	if got[1].percent < 64.3 || got[1].percent > 69 {
		t.Errorf("switched probability = %.2f%%, want about 66.67%%", got[1].percent)
	}
}

func TestRunCommand_SeedIsReproducible(t *testing.T) {
	isolateConfig(t)

	first, err := executeCommand(rootCmd, simArgs("run", "--goats=4")...)
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	second, err := executeCommand(rootCmd, simArgs("run", "--goats=4")...)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	if first != second {
		t.Errorf("same seed produced different output:\n%s\n---\n%s", first, second)
	}
}

func TestRunCommand_Timing(t *testing.T) {
	isolateConfig(t)

	output, err := executeCommand(rootCmd, simArgs("run", "--trials=100", "--timing=true")...)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if !strings.Contains(output, "\toriginal: ") || !strings.Contains(output, "\tswitched: ") {
		t.Errorf("expected timing lines for both strategies:\n%s", output)
	}
	if len(parseSummaries(t, output)) != 2 {
		t.Errorf("expected 2 summary lines:\n%s", output)
	}
}

func TestRunCommand_TooManyEliminations(t *testing.T) {
	isolateConfig(t)

	output, err := executeCommand(rootCmd, simArgs("run", "--eliminations=2")...)
	if err == nil {
		t.Fatal("expected error when eliminations equal the goat count")
	}
	if !errors.Is(err, errors.ErrInsufficientGoats) {
		t.Errorf("error = %v, want ErrInsufficientGoats", err)
	}
	if code := ExitCode(err); code != ExitRejected {
		t.Errorf("ExitCode() = %d, want %d", code, ExitRejected)
	}
	if len(parseSummaries(t, output)) != 0 {
		t.Errorf("no strategy should have run:\n%s", output)
	}
}

func TestRunCommand_InvalidArguments(t *testing.T) {
	tests := []struct {
		name    string
		extra   []string
		wantMsg string
	}{
		{"zero trials", []string{"--trials=0"}, "simulation.trials"},
		{"negative eliminations", []string{"--eliminations=-1"}, "eliminations cannot be negative"},
		{"negative goats", []string{"--goats=-2"}, "simulation.goats"},
		{"unknown preset", []string{"--preset=seven"}, "simulation.preset"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateConfig(t)

			_, err := executeCommand(rootCmd, simArgs("run", tt.extra...)...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want it to mention %q", err.Error(), tt.wantMsg)
			}
			if code := ExitCode(err); code != ExitInvalidInput {
				t.Errorf("ExitCode() = %d, want %d", code, ExitInvalidInput)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, ExitOK},
		{"unclassified", errors.New("disk full"), ExitFailure},
		{"zero trials", errors.Wrap(errors.ErrZeroTrials, "run"), ExitInvalidInput},
		{"bad configuration", errors.Wrap(config.ValidationErrors{{Field: "simulation.trials", Value: 0, Message: "must be at least 1"}}, "invalid configuration"), ExitInvalidInput},
		{"unknown preset", errors.NewValidationError("unknown preset").WithCause(errors.ErrUnknownPreset), ExitInvalidInput},
		{"not enough goats", errors.NewSimulationError("switch strategy rejected", errors.ErrInsufficientGoats), ExitRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStayCommand(t *testing.T) {
	isolateConfig(t)

	output, err := executeCommand(rootCmd, simArgs("stay", "--goats=12")...)
	if err != nil {
		t.Fatalf("stay failed: %v", err)
	}

	got := parseSummaries(t, output)
	if len(got) != 1 || got[0].strategy != "original" {
		t.Fatalf("expected one original summary:\n%s", output)
	}
}

func TestSwitchCommand_ZeroEliminationsMatchesStay(t *testing.T) {
	isolateConfig(t)

	stayOut, err := executeCommand(rootCmd, simArgs("stay")...)
	if err != nil {
		t.Fatalf("stay failed: %v", err)
	}
	switchOut, err := executeCommand(rootCmd, simArgs("switch", "--eliminations=0")...)
	if err != nil {
		t.Fatalf("switch failed: %v", err)
	}

	if !strings.Contains(switchOut, zeroEliminationsNote) {
		t.Errorf("expected zero eliminations note:\n%s", switchOut)
	}

	stay := parseSummaries(t, stayOut)
	switched := parseSummaries(t, switchOut)
	if len(stay) != 1 || len(switched) != 1 {
		t.Fatalf("unexpected output:\n%s\n---\n%s", stayOut, switchOut)
	}
	if stay[0].wins != switched[0].wins {
		t.Errorf("switch with no eliminations won %d, stay won %d; want equal", switched[0].wins, stay[0].wins)
	}
}

func TestSwitchCommand_NegativeEliminations(t *testing.T) {
	isolateConfig(t)

	output, err := executeCommand(rootCmd, simArgs("switch", "--eliminations=-3")...)
	if err == nil {
		t.Fatal("expected error for negative eliminations")
	}
	if !strings.Contains(err.Error(), "eliminations cannot be negative") {
		t.Errorf("error = %q, want negative eliminations message", err.Error())
	}
	if len(parseSummaries(t, output)) != 0 {
		t.Errorf("no trials should have run:\n%s", output)
	}
}

func TestSweepCommand(t *testing.T) {
	isolateConfig(t)

	output, err := executeCommand(rootCmd, simArgs("sweep", "--preset=five", "--trials=5000")...)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}

	if !strings.HasPrefix(output, "5 doors (1 car, 4 goats)\n") {
		t.Errorf("expected pool header, got:\n%s", output)
	}
	for k := 0; k <= 3; k++ {
		if !strings.Contains(output, "["+strconv.Itoa(k)+" opened]") {
			t.Errorf("missing result for %d eliminations:\n%s", k, output)
		}
	}
}

func TestPresetsCommand(t *testing.T) {
	isolateConfig(t)

	output, err := executeCommand(rootCmd, "presets")
	if err != nil {
		t.Fatalf("presets failed: %v", err)
	}

	for _, name := range []string{"classic", "five", "thirteen"} {
		if !strings.Contains(output, name) {
			t.Errorf("presets output missing %q:\n%s", name, output)
		}
	}
	if !strings.Contains(output, "66.67%") {
		t.Errorf("presets output should show the classic switching probability:\n%s", output)
	}
}

func TestConfigCommands(t *testing.T) {
	isolateConfig(t)

	output, err := executeCommand(rootCmd, "config", "path")
	if err != nil {
		t.Fatalf("config path failed: %v", err)
	}
	if !strings.Contains(output, "MONTYHALL_") {
		t.Errorf("config path should mention env prefix:\n%s", output)
	}

	output, err = executeCommand(rootCmd, "config", "init")
	if err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if _, err := os.Stat(config.ConfigFile()); err != nil {
		t.Fatalf("config file not created: %v", err)
	}
	if !strings.Contains(output, config.ConfigFile()) {
		t.Errorf("config init should print the file path:\n%s", output)
	}

	if _, err := executeCommand(rootCmd, "config", "init"); err == nil {
		t.Error("second config init should fail because the file exists")
	}

	output, err = executeCommand(rootCmd, "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	for _, want := range []string{"simulation:", "trials:", "logging:"} {
		if !strings.Contains(output, want) {
			t.Errorf("config show missing %q:\n%s", want, output)
		}
	}
}

func TestLogsCommand(t *testing.T) {
	isolateConfig(t)
	logDir := t.TempDir()
	t.Setenv("MONTYHALL_LOGGING_ENABLED", "true")
	t.Setenv("MONTYHALL_LOGGING_DIR", logDir)
	t.Setenv("MONTYHALL_LOGGING_LEVEL", "debug")

	if _, err := executeCommand(rootCmd, simArgs("switch", "--trials=100", "--eliminations=0")...); err != nil {
		t.Fatalf("switch failed: %v", err)
	}

	logsArgs := func(extra ...string) []string {
		args := []string{"logs", "--file=", "--run=", "--tail=0", "--level=", "--since=", "--grep="}
		return append(args, extra...)
	}

	output, err := executeCommand(rootCmd, logsArgs()...)
	if err != nil {
		t.Fatalf("logs failed: %v", err)
	}
	for _, want := range []string{"[INFO] simulation configured", "seed=2015", "strategy=switched"} {
		if !strings.Contains(output, want) {
			t.Errorf("logs output missing %q:\n%s", want, output)
		}
	}

	output, err = executeCommand(rootCmd, logsArgs("--grep=equivalent to staying")...)
	if err != nil {
		t.Fatalf("logs --grep failed: %v", err)
	}
	if lines := strings.Split(strings.TrimSpace(output), "\n"); len(lines) != 1 {
		t.Errorf("expected exactly one matching entry, got %d:\n%s", len(lines), output)
	}

	output, err = executeCommand(rootCmd, logsArgs("--level=error")...)
	if err != nil {
		t.Fatalf("logs --level failed: %v", err)
	}
	if !strings.Contains(output, "No matching log entries found.") {
		t.Errorf("expected no error entries:\n%s", output)
	}

	output, err = executeCommand(rootCmd, logsArgs("--run=not-a-run")...)
	if err != nil {
		t.Fatalf("logs --run failed: %v", err)
	}
	if !strings.Contains(output, "No matching log entries found.") {
		t.Errorf("unknown run id should match nothing:\n%s", output)
	}
}

func TestLogsCommand_NoDirectory(t *testing.T) {
	isolateConfig(t)
	t.Setenv("MONTYHALL_LOGGING_DIR", "")

	_, err := executeCommand(rootCmd, "logs", "--file=", "--run=", "--level=", "--since=", "--grep=")
	if err == nil || !strings.Contains(err.Error(), "logging.dir is not set") {
		t.Errorf("expected missing log dir error, got %v", err)
	}
}

func TestLogFilter(t *testing.T) {
	entry := &logEntry{
		Time:     time.Now(),
		Level:    "INFO",
		Msg:      "strategy finished",
		RunID:    "run-1",
		Strategy: "switched",
		Extra:    map[string]any{"wins": float64(42)},
	}

	tests := []struct {
		name   string
		filter logFilter
		want   bool
	}{
		{"no criteria", logFilter{minLevel: -1}, true},
		{"level below", logFilter{minLevel: levelPriority("warn")}, false},
		{"level at", logFilter{minLevel: levelPriority("info")}, true},
		{"same run", logFilter{minLevel: -1, runID: "run-1"}, true},
		{"other run", logFilter{minLevel: -1, runID: "run-2"}, false},
		{"too old", logFilter{minLevel: -1, since: time.Now().Add(time.Hour)}, false},
		{"grep extra field", logFilter{minLevel: -1, grep: regexp.MustCompile(`wins=42`)}, true},
		{"grep strategy", logFilter{minLevel: -1, grep: regexp.MustCompile(`^strategy finished switched`)}, true},
		{"grep miss", logFilter{minLevel: -1, grep: regexp.MustCompile(`original`)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.match(entry); got != tt.want {
				t.Errorf("match() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLogsCommand_TailShorthand(t *testing.T) {
	isolateConfig(t)
	logDir := t.TempDir()
	t.Setenv("MONTYHALL_LOGGING_DIR", logDir)
	// Simulation settings are irrelevant to reading logs.
	t.Setenv("MONTYHALL_SIMULATION_TRIALS", "0")

	logger, err := logging.NewLogger(logDir, logging.LevelInfo)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	for _, msg := range []string{"entry one", "entry two", "entry three"} {
		logger.Info(msg)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if logsCmd.Flags().ShorthandLookup("t") == nil {
		t.Fatal("expected -t shorthand for --tail")
	}

	output, err := executeCommand(rootCmd, "logs", "-t", "2", "--file=", "--run=", "--level=", "--since=", "--grep=")
	if err != nil {
		t.Fatalf("logs failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 entries, got %d:\n%s", len(lines), output)
	}
	if !strings.HasSuffix(lines[0], "entry two") || !strings.HasSuffix(lines[1], "entry three") {
		t.Errorf("expected the last two entries, got:\n%s", output)
	}
}

func TestPresetOverrideIsLogged(t *testing.T) {
	isolateConfig(t)
	logDir := t.TempDir()
	t.Setenv("MONTYHALL_LOGGING_ENABLED", "true")
	t.Setenv("MONTYHALL_LOGGING_DIR", logDir)

	if _, err := executeCommand(rootCmd, simArgs("stay", "--preset=five", "--trials=10")...); err != nil {
		t.Fatalf("stay failed: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(logDir, logging.FileName))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	log := string(content)
	if !strings.Contains(log, `"level":"WARN","msg":"preset overrides --cars and --goats"`) {
		t.Errorf("expected preset override warning:\n%s", log)
	}
	if !strings.Contains(log, `"command":"stay"`) {
		t.Errorf("expected command attribute on entries:\n%s", log)
	}
}
