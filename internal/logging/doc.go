// Package logging configures structured logging for glosscast.
//
// It wraps log/slog with a compact console handler for interactive use and a
// JSON handler for machine consumption, plus small attribute helpers so the
// rest of the codebase never imports slog directly. Component loggers carry a
// standardized "component" attribute that the console handler folds into the
// message prefix.
package logging
