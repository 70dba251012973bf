package errors

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
)

// ClassifiedError is a structured error with category, severity and context.
type ClassifiedError struct {
	category ErrorCategory
	severity ErrorSeverity
	message  string
	cause    error
	context  ErrorContext
}

// Error implements the error interface.
func (e *ClassifiedError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.category, e.severity, e.message, e.cause)
	}
	return fmt.Sprintf("[%s:%s] %s", e.category, e.severity, e.message)
}

func (e *ClassifiedError) Unwrap() error { return e.cause }

func (e *ClassifiedError) Category() ErrorCategory { return e.category }
func (e *ClassifiedError) Severity() ErrorSeverity { return e.severity }
func (e *ClassifiedError) Message() string         { return e.message }
func (e *ClassifiedError) Cause() error            { return e.cause }
func (e *ClassifiedError) Context() ErrorContext   { return e.context }

// WithContext returns a copy of the error with key set in its context.
func (e *ClassifiedError) WithContext(key string, value any) *ClassifiedError {
	cp := *e
	cp.context = ErrorContext{}.Merge(e.context).Set(key, value)
	return &cp
}

// Is matches another ClassifiedError with the same category and message.
func (e *ClassifiedError) Is(target error) bool {
	if other, ok := target.(*ClassifiedError); ok {
		return e.category == other.category && e.message == other.message
	}
	return false
}

func (e *ClassifiedError) IsCategory(category ErrorCategory) bool { return e.category == category }

// IsFatal reports whether execution should stop.
func (e *ClassifiedError) IsFatal() bool { return e.severity == SeverityFatal }

// Detail renders the message followed by sorted context pairs, for user display.
func (e *ClassifiedError) Detail() string {
	if len(e.context) == 0 {
		return e.message
	}
	keys := make([]string, 0, len(e.context))
	for k := range e.context {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, e.context[k]))
	}
	return e.message + " (" + strings.Join(parts, ", ") + ")"
}

// AsClassified finds the first ClassifiedError in err's chain.
func AsClassified(err error) (*ClassifiedError, bool) {
	var classified *ClassifiedError
	if stderrors.As(err, &classified) {
		return classified, true
	}
	return nil, false
}

// HasCategory checks if any error in the chain belongs to category.
func HasCategory(err error, category ErrorCategory) bool {
	if classified, ok := AsClassified(err); ok {
		return classified.IsCategory(category)
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal.
func GetCategory(err error) ErrorCategory {
	if classified, ok := AsClassified(err); ok {
		return classified.Category()
	}
	return CategoryInternal
}

// GetSeverity extracts the severity from an error, or returns SeverityError.
func GetSeverity(err error) ErrorSeverity {
	if classified, ok := AsClassified(err); ok {
		return classified.Severity()
	}
	return SeverityError
}
