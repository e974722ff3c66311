// Package slog decorates pagecopy services with structured logging.
package slog
