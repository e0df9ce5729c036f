// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-rampshare.
//
// go-rampshare is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

// Package validation provides input validation for identifiers that reach
// storage keys, file names and log lines. The CLI and the share store both
// route user-supplied set IDs through ValidateSetID.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// MaxSetIDLength bounds set identifiers. A UUID is 36 characters.
	MaxSetIDLength = 128

	maxBackendNameLength = 64
	maxLogLength         = 1000
)

var (
	// backendPattern matches safe backend names (lowercase alphanumeric + hyphens)
	backendPattern = regexp.MustCompile(`^[a-z0-9\-]+$`)

	// setIDPattern allows UUIDs and simple labels. Dots and separators are
	// excluded so an ID is always a single path element.
	setIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_\-]+$`)
)

// ValidateSetID validates a share set identifier.
func ValidateSetID(id string) error {
	if id == "" {
		return fmt.Errorf("set ID cannot be empty")
	}

	// Check for null bytes (can bypass some path checks)
	if strings.Contains(id, "\x00") {
		return fmt.Errorf("set ID contains null byte")
	}

	// Check length before the pattern match
	if len(id) > MaxSetIDLength {
		return fmt.Errorf("set ID too long (max %d characters)", MaxSetIDLength)
	}

	if hasControl(id) {
		return fmt.Errorf("set ID contains control characters")
	}

	if !setIDPattern.MatchString(id) {
		return fmt.Errorf("set ID contains invalid characters (allowed: a-z, A-Z, 0-9, -, _)")
	}

	return nil
}

// ValidateBackendName validates a storage backend name.
// Backend names must be simple lowercase identifiers.
func ValidateBackendName(backend string) error {
	if backend == "" {
		return fmt.Errorf("backend name cannot be empty")
	}

	if strings.Contains(backend, "\x00") {
		return fmt.Errorf("backend name contains null byte")
	}

	if len(backend) > maxBackendNameLength {
		return fmt.Errorf("backend name too long (max %d characters)", maxBackendNameLength)
	}

	if hasControl(backend) {
		return fmt.Errorf("backend name contains control characters")
	}

	if !backendPattern.MatchString(backend) {
		return fmt.Errorf("backend name contains invalid characters (allowed: a-z, 0-9, -)")
	}

	return nil
}

// SanitizeForLog sanitizes a string for safe logging (prevents log injection).
func SanitizeForLog(s string) string {
	s = strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, s)

	// Limit length to prevent log flooding
	if len(s) > maxLogLength {
		s = s[:maxLogLength] + "...[truncated]"
	}

	return s
}

func hasControl(s string) bool {
	for _, r := range s {
		if r < 32 || r == 127 {
			return true
		}
	}
	return false
}
