package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/bianoble/template-sync/internal/config"
	"github.com/bianoble/template-sync/pkg/templatesync"
)

// loadConfig reads the config file, falling back to the built-in whitelist
// and checklist when it does not exist.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", configPath, err)
	}
	return cfg, nil
}

// printJSON renders v for machine consumption.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	fmt.Println(string(out))
	return nil
}

// syncView is the machine-readable shape of a sync report: the report plus
// its derived counts and any fatal error, so callers never have to parse
// stderr to tell failure from success.
type syncView struct {
	Counts templatesync.Counts `json:"counts"`
	Error  string              `json:"error,omitempty"`
	*templatesync.SyncReport
}

func newSyncView(report *templatesync.SyncReport, runErr error) syncView {
	v := syncView{Counts: report.Counts(), SyncReport: report}
	if runErr != nil {
		v.Error = runErr.Error()
	}
	return v
}

// info prints a line unless quiet mode is active.
func info(format string, args ...any) {
	if !quiet {
		fmt.Printf(format+"\n", args...)
	}
}

// detail prints a line only in verbose mode.
func detail(format string, args ...any) {
	if verbose {
		fmt.Printf("  "+format+"\n", args...)
	}
}

// errorf prints an error message to stderr.
func errorf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
