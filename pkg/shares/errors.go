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

package shares

import "errors"

var (
	// ErrChecksumMismatch indicates a record whose checksum does not match
	// its contents.
	ErrChecksumMismatch = errors.New("shares: checksum mismatch")

	// ErrInvalidRecord indicates a record with inconsistent fields.
	ErrInvalidRecord = errors.New("shares: invalid record")

	// ErrSetMismatch indicates records that do not belong to the same set
	// or disagree on scheme parameters.
	ErrSetMismatch = errors.New("shares: records from different sets")

	// ErrSetNotFound is returned when no records exist for a set ID.
	ErrSetNotFound = errors.New("shares: set not found")
)
