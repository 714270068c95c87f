// Package errors classifies sitegen failures.
//
// Every ClassifiedError carries an ErrorCategory and an ErrorSeverity. The
// category decides the default severity, the CLI exit code and how much of the
// message a user sees without -v. Errors implement slog.LogValuer, so
// slog.Any("error", err) logs the category, cause and context as a group.
//
//	err := errors.NotFoundError("root folder does not exist").
//		WithContext("path", root).
//		Build()
package errors
