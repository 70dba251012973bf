package lint

import (
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/docsitecfg/internal/docs"
	"git.home.luguber.info/inful/docsitecfg/internal/foundation/errors"
	"git.home.luguber.info/inful/docsitecfg/internal/logfields"
	"git.home.luguber.info/inful/docsitecfg/internal/metrics"
	"git.home.luguber.info/inful/docsitecfg/internal/site"
)

// Linter checks site configurations against a set of rules.
type Linter struct {
	rules    []Rule
	recorder metrics.Recorder
}

// NewLinter creates a linter with the default rules.
func NewLinter() *Linter {
	return &Linter{
		rules: []Rule{
			LocaleRule{},
			LinkPrefixRule{},
			LangRule{},
			FaviconRule{},
			DocumentRule{},
		},
		recorder: metrics.NoopRecorder{},
	}
}

// WithRecorder sets the metrics recorder receiving issue counts.
func (l *Linter) WithRecorder(r metrics.Recorder) *Linter {
	if r != nil {
		l.recorder = r
	}
	return l
}

// Check runs every rule against cfg.
func (l *Linter) Check(cfg *site.Config, opts Options) (*Result, error) {
	result := &Result{Issues: []Issue{}}
	for _, rule := range l.rules {
		issues, err := rule.Check(cfg, opts)
		if err != nil {
			return nil, err
		}
		for _, issue := range issues {
			if opts.Quiet && issue.Severity != SeverityError {
				continue
			}
			result.Issues = append(result.Issues, issue)
		}
	}
	if opts.DocsRoot != "" {
		result.DocumentsChecked = len(docs.Pages(docs.References(cfg)))
	}
	for code, n := range result.CountByCode() {
		l.recorder.IncLintIssues(code, n)
	}
	slog.Debug("Checked site configuration",
		logfields.Count(len(result.Issues)),
		slog.Int("errors", result.ErrorCount()),
		slog.Int("warnings", result.WarningCount()))
	return result, nil
}

// Check runs the default rules against cfg.
func Check(cfg *site.Config, opts Options) ([]Issue, error) {
	result, err := NewLinter().Check(cfg, opts)
	if err != nil {
		return nil, err
	}
	return result.Issues, nil
}

// declaredTitle returns the title rel declares; "" when it declares none.
func declaredTitle(root, rel string) (string, error) {
	content, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return "", errors.WrapError(err, errors.CategoryFileSystem, "failed to read document").
			WithContext("path", rel).
			Build()
	}
	return docs.TitleOf(content)
}
