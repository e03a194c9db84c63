// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Metric reads never surface errors to callers; codes here are used by the
// operations that do report failure: configuration loading
// (ErrCodeInvalidRequest) and data export (ErrCodeExport).
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeExport,
//	    "failed to write export file",
//	    cause,
//	    map[string]any{
//	        "path": path,
//	        "format": "csv",
//	    },
//	)
package errors
