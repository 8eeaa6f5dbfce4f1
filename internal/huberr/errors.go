// Package huberr defines the distinct error classes the prefix store and
// claim model raise, so callers can tell corruption apart from rejected
// input instead of pattern-matching on error strings.
package huberr

import "github.com/pkg/errors"

// Corruption errors are fatal: they indicate the store itself is no longer
// trustworthy (wrong row dispatch, truncated value, non-UTF8 name field).
// A writer that observes one must halt rather than keep applying mutations.
var ErrCorruption = errors.New("hub: corrupt row encoding")

// Validation errors are rejected input: the caller gave the claim model or
// metadata shims a value outside the protocol's accepted range.
var ErrValidation = errors.New("hub: validation failed")

// ErrMissingFile and ErrEmptyFile are raised by claimmeta.Source.Update and
// must never be conflated with each other or with ErrValidation.
var (
	ErrMissingFile = errors.New("hub: published file does not exist")
	ErrEmptyFile   = errors.New("hub: published file is empty")
)

// ErrReorgWindowExceeded is returned by a rollback whose undo entry is no
// longer present, meaning the reorg depth exceeded the configured window.
var ErrReorgWindowExceeded = errors.New("hub: undo entry not found, reorg window exceeded")

// Corrupt builds a corruption error from a formatted message, wrapping
// ErrCorruption so callers can errors.Is(ErrCorruption).
func Corrupt(format string, args ...interface{}) error {
	return errors.Wrapf(ErrCorruption, format, args...)
}

// Invalid wraps a validation failure with context.
func Invalid(format string, args ...interface{}) error {
	return errors.Wrapf(ErrValidation, format, args...)
}
