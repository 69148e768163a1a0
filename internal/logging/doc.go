// Package logging builds the application's slog loggers and standardizes
// attribute keys used across components. Console and JSON formats are
// supported; output goes to stderr and optionally a file under the configured
// log directory.
package logging
