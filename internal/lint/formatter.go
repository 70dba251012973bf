package lint

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Formatter formats check results for output.
type Formatter interface {
	Format(w io.Writer, result *Result) error
}

// NewFormatter returns the formatter for name ("text" or "json").
func NewFormatter(name string) Formatter {
	if strings.EqualFold(name, "json") {
		return &JSONFormatter{}
	}
	return &TextFormatter{}
}

// TextFormatter formats results as human-readable text.
type TextFormatter struct{}

// Format outputs results in human-readable text format.
func (f *TextFormatter) Format(w io.Writer, result *Result) error {
	for _, issue := range result.Issues {
		if err := f.formatIssue(w, issue); err != nil {
			return err
		}
	}
	if len(result.Issues) > 0 {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}

	if result.DocumentsChecked > 0 {
		if _, err := fmt.Fprintf(w, "%d documents checked\n", result.DocumentsChecked); err != nil {
			return err
		}
	}
	errorCount := result.ErrorCount()
	warningCount := result.WarningCount()
	switch {
	case errorCount > 0:
		_, err := fmt.Fprintf(w, "✗ %d error%s, %d warning%s\n",
			errorCount, pluralize(errorCount), warningCount, pluralize(warningCount))
		return err
	case warningCount > 0:
		_, err := fmt.Fprintf(w, "⚠ %d warning%s\n", warningCount, pluralize(warningCount))
		return err
	default:
		_, err := fmt.Fprintln(w, "✓ site configuration is valid")
		return err
	}
}

func (f *TextFormatter) formatIssue(w io.Writer, issue Issue) error {
	icon := "⚠"
	if issue.Severity == SeverityError {
		icon = "✗"
	}
	if _, err := fmt.Fprintf(w, "%s [%s] %s: %s\n", icon, issue.Code, issue.Location, issue.Message); err != nil {
		return err
	}
	if issue.Fix != "" {
		if _, err := fmt.Fprintf(w, "  Fix: %s\n", issue.Fix); err != nil {
			return err
		}
	}
	return nil
}

func pluralize(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// JSONFormatter formats results as JSON.
type JSONFormatter struct{}

// JSONOutput represents the JSON output structure.
type JSONOutput struct {
	DocumentsChecked int         `json:"documents_checked"`
	ErrorCount       int         `json:"error_count"`
	WarningCount     int         `json:"warning_count"`
	Issues           []JSONIssue `json:"issues"`
}

// JSONIssue represents a single issue in JSON format.
type JSONIssue struct {
	Code     string `json:"code"`
	Severity string `json:"severity"`
	Location string `json:"location"`
	Message  string `json:"message"`
	Fix      string `json:"fix,omitempty"`
}

// Format outputs results in JSON format.
func (f *JSONFormatter) Format(w io.Writer, result *Result) error {
	output := JSONOutput{
		DocumentsChecked: result.DocumentsChecked,
		ErrorCount:       result.ErrorCount(),
		WarningCount:     result.WarningCount(),
		Issues:           make([]JSONIssue, 0, len(result.Issues)),
	}
	for _, issue := range result.Issues {
		output.Issues = append(output.Issues, JSONIssue{
			Code:     issue.Code,
			Severity: strings.ToLower(issue.Severity.String()),
			Location: issue.Location,
			Message:  issue.Message,
			Fix:      issue.Fix,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
