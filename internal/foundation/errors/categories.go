package errors

import "maps"

// ErrorCategory is the broad class of an error, used for exit codes and log routing.
type ErrorCategory string

const (
	// Input errors: the user can fix them by editing configuration or documents.
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"
	CategoryNotFound   ErrorCategory = "not_found"

	// Environment errors.
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryGit        ErrorCategory = "git"
	CategoryWatch      ErrorCategory = "watch"

	// Output errors.
	CategoryRender ErrorCategory = "render"

	CategoryInternal ErrorCategory = "internal"
)

// IsUserFacing reports whether the category describes a problem with user input.
func (c ErrorCategory) IsUserFacing() bool {
	switch c {
	case CategoryConfig, CategoryValidation, CategoryNotFound:
		return true
	default:
		return false
	}
}

// ErrorSeverity indicates the impact level of an error.
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // stops execution
	SeverityError   ErrorSeverity = "error"   // fails the current operation
	SeverityWarning ErrorSeverity = "warning" // continues with degraded output
	SeverityInfo    ErrorSeverity = "info"
)

// ErrorContext provides structured context for errors.
type ErrorContext map[string]any

// Set adds or updates a context value.
func (c ErrorContext) Set(key string, value any) ErrorContext {
	if c == nil {
		c = make(ErrorContext)
	}
	c[key] = value
	return c
}

// Get retrieves a context value.
func (c ErrorContext) Get(key string) (any, bool) {
	if c == nil {
		return nil, false
	}
	value, exists := c[key]
	return value, exists
}

// GetString retrieves a string context value.
func (c ErrorContext) GetString(key string) (string, bool) {
	if value, exists := c.Get(key); exists {
		if str, ok := value.(string); ok {
			return str, true
		}
	}
	return "", false
}

// Merge combines two contexts, with other taking precedence.
func (c ErrorContext) Merge(other ErrorContext) ErrorContext {
	if c == nil {
		return other
	}
	if other == nil {
		return c
	}
	result := make(ErrorContext, len(c)+len(other))
	maps.Copy(result, c)
	maps.Copy(result, other)
	return result
}
