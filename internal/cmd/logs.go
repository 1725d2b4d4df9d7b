package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/montyhall/internal/logging"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "View simulation logs",
	Long: `View and filter the JSON log written by simulation runs.

Logs are only written when logging.enabled is true and logging.dir is set
(for example MONTYHALL_LOGGING_ENABLED=true MONTYHALL_LOGGING_DIR=/tmp/mh).

Examples:
  # Show the last 50 entries
  montyhall logs

  # Show every entry of one run
  montyhall logs --run 1b4e28ba-2fa1-11d2-883f-0016d3cca427 -t 0

  # Only warnings and errors
  montyhall logs --level warn

  # Search messages and fields
  montyhall logs --grep "switched|seed"`,
	Args: cobra.NoArgs,
	RunE: runLogs,
}

var (
	logsFile  string
	logsRun   string
	logsTail  int
	logsLevel string
	logsSince string
	logsGrep  string
)

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().StringVar(&logsFile, "file", "", "Log file to read (default: <logging.dir>/"+logging.FileName+")")
	logsCmd.Flags().StringVar(&logsRun, "run", "", "Only show entries of this run id")
	logsCmd.Flags().IntVarP(&logsTail, "tail", "t", 50, "Number of entries to show (0 for all)")
	logsCmd.Flags().StringVar(&logsLevel, "level", "", "Filter by minimum level (debug/info/warn/error)")
	logsCmd.Flags().StringVar(&logsSince, "since", "", "Show entries since duration ago (e.g., 1h, 30m)")
	logsCmd.Flags().StringVar(&logsGrep, "grep", "", "Filter entries matching pattern (regex)")
}

// logEntry is one parsed JSON log line.
type logEntry struct {
	Time     time.Time      `json:"time"`
	Level    string         `json:"level"`
	Msg      string         `json:"msg"`
	RunID    string         `json:"run_id,omitempty"`
	Strategy string         `json:"strategy,omitempty"`
	Extra    map[string]any `json:"-"`
}

// UnmarshalJSON keeps unknown fields in Extra.
func (e *logEntry) UnmarshalJSON(data []byte) error {
	type alias logEntry
	if err := json.Unmarshal(data, (*alias)(e)); err != nil {
		return err
	}

	var all map[string]any
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	for _, known := range []string{"time", "level", "msg", "run_id", "strategy"} {
		delete(all, known)
	}
	if len(all) > 0 {
		e.Extra = all
	}
	return nil
}

// logFilter selects entries for display. Zero values disable a criterion.
type logFilter struct {
	minLevel int
	runID    string
	since    time.Time
	grep     *regexp.Regexp
}

func (f logFilter) match(entry *logEntry) bool {
	if f.minLevel >= 0 && levelPriority(entry.Level) < f.minLevel {
		return false
	}
	if f.runID != "" && entry.RunID != f.runID {
		return false
	}
	if !f.since.IsZero() && entry.Time.Before(f.since) {
		return false
	}
	if f.grep != nil {
		searchText := entry.Msg + " " + entry.Strategy
		for _, key := range sortedKeys(entry.Extra) {
			searchText += fmt.Sprintf(" %s=%v", key, entry.Extra[key])
		}
		if !f.grep.MatchString(searchText) {
			return false
		}
	}
	return true
}

// levelPriority returns the priority of a log level for filtering
func levelPriority(level string) int {
	switch strings.ToUpper(level) {
	case logging.LevelDebug:
		return 0
	case logging.LevelInfo:
		return 1
	case logging.LevelWarn:
		return 2
	case logging.LevelError:
		return 3
	default:
		return -1
	}
}

// logStyles renders entries; the renderer strips colors for non-terminals.
type logStyles struct {
	muted  lipgloss.Style
	field  lipgloss.Style
	levels map[string]lipgloss.Style
}

func newLogStyles(out io.Writer) logStyles {
	r := lipgloss.NewRenderer(out)
	return logStyles{
		muted: r.NewStyle().Foreground(lipgloss.Color("8")),
		field: r.NewStyle().Foreground(lipgloss.Color("6")),
		levels: map[string]lipgloss.Style{
			logging.LevelDebug: r.NewStyle().Foreground(lipgloss.Color("8")),
			logging.LevelInfo:  r.NewStyle().Foreground(lipgloss.Color("4")),
			logging.LevelWarn:  r.NewStyle().Foreground(lipgloss.Color("3")),
			logging.LevelError: r.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		},
	}
}

// format renders an entry as "[15:04:05.000] [LEVEL] msg key=value ...".
func (s logStyles) format(entry *logEntry) string {
	var sb strings.Builder

	sb.WriteString(s.muted.Render("[" + entry.Time.Format("15:04:05.000") + "]"))
	sb.WriteString(" ")
	level := strings.ToUpper(entry.Level)
	sb.WriteString(s.levels[level].Render("[" + level + "]"))
	sb.WriteString(" ")
	sb.WriteString(entry.Msg)

	if entry.Strategy != "" {
		sb.WriteString(" " + s.field.Render("strategy=") + entry.Strategy)
	}
	for _, key := range sortedKeys(entry.Extra) {
		sb.WriteString(" " + s.field.Render(key+"=") + fmt.Sprintf("%v", entry.Extra[key]))
	}

	return sb.String()
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func runLogs(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	logPath := logsFile
	if logPath == "" {
		// Only the log location matters here; the simulation settings may be invalid.
		dir := viper.GetString("logging.dir")
		if dir == "" {
			return fmt.Errorf("logging.dir is not set; logs go to stderr (use --file to read a log file)")
		}
		logPath = filepath.Join(dir, logging.FileName)
	}

	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		fmt.Fprintf(out, "No logs found at %s\n", logPath)
		return nil
	}

	filter := logFilter{minLevel: -1, runID: logsRun}
	if logsLevel != "" {
		filter.minLevel = levelPriority(logging.ParseLevel(logsLevel))
	}
	if logsSince != "" {
		duration, err := time.ParseDuration(logsSince)
		if err != nil {
			return fmt.Errorf("invalid duration format: %w", err)
		}
		filter.since = time.Now().Add(-duration)
	}
	if logsGrep != "" {
		re, err := regexp.Compile(logsGrep)
		if err != nil {
			return fmt.Errorf("invalid grep pattern: %w", err)
		}
		filter.grep = re
	}

	return displayLogs(out, logPath, logsTail, filter)
}

// displayLogs reads the log file and writes the filtered entries to out
func displayLogs(out io.Writer, logPath string, tail int, filter logFilter) error {
	file, err := os.Open(logPath)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer file.Close()

	styles := newLogStyles(out)
	var entries []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		var entry logEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			// Show lines that are not JSON as-is
			entries = append(entries, line)
			continue
		}
		if !filter.match(&entry) {
			continue
		}
		entries = append(entries, styles.format(&entry))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading log file: %w", err)
	}

	if tail > 0 && len(entries) > tail {
		entries = entries[len(entries)-tail:]
	}

	for _, entry := range entries {
		fmt.Fprintln(out, entry)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No matching log entries found.")
	}
	return nil
}
