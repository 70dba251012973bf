// Package errors provides the classified error type used across docsitecfg.
//
// A ClassifiedError carries a category (config, validation, filesystem, git,
// render, ...), a severity and a small context map. The CLI adapter turns the
// category into an exit code and the severity into a log level.
//
// Example usage:
//
//	err := errors.WrapError(cause, errors.CategoryFileSystem, "write output").
//		WithContext("path", path).
//		Build()
package errors
