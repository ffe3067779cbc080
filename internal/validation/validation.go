// Package validation provides input validation and sanitization functions
// for user-supplied paths and output filename prefixes.
package validation

import (
	"errors"
	"regexp"
	"strings"
)

// Limits on user-supplied names and paths.
const (
	// MaxPrefixLength is the maximum allowed output filename prefix length.
	MaxPrefixLength = 255
	// MaxPathLength is the maximum allowed path length.
	MaxPathLength = 4096

	// FallbackPrefix is used when sanitization leaves nothing usable.
	FallbackPrefix = "output"
)

// Common validation errors.
var (
	ErrEmptyPath     = errors.New("path cannot be empty")
	ErrPathTooLong   = errors.New("path too long")
	ErrPrefixTooLong = errors.New("prefix too long")
)

// unsafeRuns matches runs of characters outside the safe token set
// (unicode word characters, dash, dot).
var unsafeRuns = regexp.MustCompile(`[^\p{L}\p{N}_\-.]+`)

// SanitizePrefix reduces a user-supplied output filename prefix to a safe
// token set: runs of characters other than [A-Za-z0-9_], dash, and dot are
// replaced by a single underscore. An empty result falls back to
// FallbackPrefix so output names are never degenerate.
func SanitizePrefix(s string) string {
	s = unsafeRuns.ReplaceAllString(strings.TrimSpace(s), "_")
	if s == "" {
		return FallbackPrefix
	}
	return s
}

// ValidatePrefix checks a prefix after sanitization.
func ValidatePrefix(s string) error {
	if len(s) > MaxPrefixLength {
		return ErrPrefixTooLong
	}
	return nil
}

// ValidatePath performs basic hygiene checks on a user-supplied path.
func ValidatePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	if len(path) > MaxPathLength {
		return ErrPathTooLong
	}
	return nil
}
