package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// CLIErrorAdapter handles error presentation and exit codes for the CLI.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
	out     io.Writer
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{verbose: verbose, logger: logger, out: os.Stderr}
}

// ExitCodeFor determines the exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	classified, ok := AsClassified(err)
	if !ok {
		return 1
	}
	switch classified.Category() {
	case CategoryConfig, CategoryValidation, CategoryNotFound:
		return 2
	case CategoryFileSystem:
		return 3
	case CategoryGit:
		return 4
	default:
		return 1
	}
}

// FormatError formats an error for display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	classified, ok := AsClassified(err)
	if !ok {
		return fmt.Sprintf("Error: %v", err)
	}
	if a.verbose {
		return "Error: " + classified.Error()
	}
	if classified.Category().IsUserFacing() {
		return "Error: " + classified.Detail()
	}
	return fmt.Sprintf("Error: %s (use -v for details)", classified.Message())
}

// Handle logs and prints err and returns the exit code. It never exits.
func (a *CLIErrorAdapter) Handle(err error) int {
	if err == nil {
		return 0
	}
	a.logError(err)
	_, _ = fmt.Fprintln(a.out, a.FormatError(err))
	return a.ExitCodeFor(err)
}

// HandleError processes an error and exits the program with the matching code.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}
	os.Exit(a.Handle(err))
}

func (a *CLIErrorAdapter) logError(err error) {
	classified, ok := AsClassified(err)
	if !ok {
		a.logger.Error("Unclassified error", "error", err)
		return
	}
	if !a.verbose && classified.Severity() != SeverityFatal {
		return
	}
	attrs := []slog.Attr{slog.String("category", string(classified.Category()))}
	for k, v := range classified.Context() {
		attrs = append(attrs, slog.Any(k, v))
	}
	if cause := classified.Cause(); cause != nil {
		attrs = append(attrs, slog.String("cause", cause.Error()))
	}
	a.logger.LogAttrs(context.Background(), slogLevel(classified.Severity()), classified.Message(), attrs...)
}

func slogLevel(severity ErrorSeverity) slog.Level {
	switch severity {
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
