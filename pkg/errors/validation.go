package errors

import (
	"strings"
	"unicode"
)

// MaxFunctionLength bounds a single frame's function name.
const MaxFunctionLength = 4096

// ValidateFunctionName validates the function part of a frame.
//
// The rules are:
//   - No empty names (after trimming whitespace)
//   - No control characters
//   - Maximum length of MaxFunctionLength bytes
func ValidateFunctionName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidFrame, "function name cannot be empty")
	}

	if len(name) > MaxFunctionLength {
		return New(ErrCodeInvalidFrame, "function name too long (max %d characters)", MaxFunctionLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidFrame, "function name contains invalid control characters")
		}
	}

	return nil
}

// ValidateDepthLimit validates a merge depth limit. Zero means unlimited.
func ValidateDepthLimit(depth int) error {
	if depth < 0 {
		return New(ErrCodeInvalidOption, "depth limit cannot be negative: %d", depth)
	}
	return nil
}

// ValidateFontSize validates the point size used for table cells.
func ValidateFontSize(size int) error {
	if size < 1 || size > 400 {
		return New(ErrCodeInvalidOption, "font size must be between 1 and 400, got %d", size)
	}
	return nil
}

// ValidateNoun validates the word used in block headers ("3 Threads").
func ValidateNoun(noun string) error {
	if strings.TrimSpace(noun) == "" {
		return New(ErrCodeInvalidOption, "header noun cannot be empty")
	}
	for _, r := range noun {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidOption, "header noun contains invalid control characters")
		}
	}
	return nil
}

// ValidateRedisURL validates a Redis connection URL for the artifact cache.
// It only checks the scheme; the driver parses the rest.
func ValidateRedisURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidConfig, "redis URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "redis://") && !strings.HasPrefix(rawURL, "rediss://") && !strings.HasPrefix(rawURL, "unix://") {
		return New(ErrCodeInvalidConfig, "redis URL must use redis, rediss or unix scheme")
	}

	return nil
}
