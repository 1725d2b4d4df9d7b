// Package logging provides structured logging for montyhall simulation runs.
//
// This package wraps Go's log/slog to provide JSON-formatted logs with
// persistent context attributes. Logs are diagnostic only: the simulation
// summaries themselves are written by the report package to standard output,
// while log entries go to standard error or to a file in a configured
// directory.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger("/path/to/logs", "INFO")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	logger.Info("simulation started", "trials", 1000000)
//
// # Context Propagation
//
// Every CLI invocation gets a run id, and each strategy adds its own name:
//
//	runLogger := logger.WithRun("6f1c...")
//	runLogger.WithStrategy("switched").Debug("trials complete", "wins", 666700)
//
// Output:
//
//	{"time":"...","level":"DEBUG","msg":"trials complete","run_id":"6f1c...","strategy":"switched","wins":666700}
//
// # Testing
//
// Use [NopLogger] to discard all log output.
//
// # Configuration
//
//	logging:
//	  enabled: false
//	  level: info
//	  dir: ""
package logging
