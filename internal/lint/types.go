package lint

// Severity indicates the importance level of a linting issue.
type Severity int

const (
	// SeverityWarning indicates issues that should be fixed but don't block generation.
	SeverityWarning Severity = iota + 1
	// SeverityError indicates a configuration the site builder cannot serve correctly.
	SeverityError
)

// String returns the human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Issue codes.
const (
	CodeLocaleMismatch  = "locale-mismatch"
	CodeLinkPrefix      = "link-prefix"
	CodeInvalidLang     = "invalid-lang"
	CodeMissingDocument = "missing-document"
	CodeHeadFavicon     = "head-favicon"
	CodeEmptyTitle      = "empty-title"
	// CodeInvalidFrontmatter marks documents whose frontmatter cannot be parsed.
	CodeInvalidFrontmatter = "invalid-frontmatter"
)

// Issue represents a single problem found in a site configuration.
type Issue struct {
	Code     string
	Severity Severity
	Location string // dotted path into the configuration, e.g. theme.locales./zh/.navbar[0]
	Message  string
	Fix      string
}

// Result contains all issues found by a check.
type Result struct {
	Issues []Issue
	// DocumentsChecked counts documents looked up on disk.
	DocumentsChecked int
}

// HasErrors returns true if any error-level issues exist.
func (r *Result) HasErrors() bool {
	return r.ErrorCount() > 0
}

// ErrorCount returns the number of error-level issues.
func (r *Result) ErrorCount() int {
	return r.count(SeverityError)
}

// WarningCount returns the number of warning-level issues.
func (r *Result) WarningCount() int {
	return r.count(SeverityWarning)
}

func (r *Result) count(s Severity) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == s {
			n++
		}
	}
	return n
}

// CountByCode tallies issues per code.
func (r *Result) CountByCode() map[string]int {
	out := make(map[string]int)
	for _, issue := range r.Issues {
		out[issue.Code]++
	}
	return out
}

// Options tune a check.
type Options struct {
	// DocsRoot enables document checks when non-empty.
	DocsRoot string
	// Quiet drops warnings from the result.
	Quiet bool
}
