package domain

import "errors"

// Domain errors represent error conditions in the gwiki domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrTitlesNotFound is returned when the desired-titles file is missing or unreadable.
	ErrTitlesNotFound = errors.New("gwiki: titles file not found")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("gwiki: invalid configuration")

	// ErrSourceUnavailable is returned when the source article directory cannot be listed.
	ErrSourceUnavailable = errors.New("gwiki: source directory unavailable")

	// ErrNoTitle is recorded on articles without a title element.
	ErrNoTitle = errors.New("No title found")
)
