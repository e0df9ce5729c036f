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

package ramp

import "errors"

var (
	// ErrInvalidParameters is returned when the scheme parameters violate
	// 0 <= m < k < n or exceed the supported sizes.
	ErrInvalidParameters = errors.New("ramp: invalid scheme parameters")

	// ErrNotByteAligned is returned when a bit sequence cannot be grouped
	// into whole bytes.
	ErrNotByteAligned = errors.New("ramp: bit sequence length is not a multiple of 8")

	// ErrInvalidBit is returned when a bit sequence holds a value other than 0 or 1.
	ErrInvalidBit = errors.New("ramp: bit sequence contains a value other than 0 or 1")

	// ErrLengthMismatch is returned when sequences that must be combined
	// position by position have different lengths.
	ErrLengthMismatch = errors.New("ramp: bit sequence lengths differ")

	// ErrNoShares is returned when reconstruction is attempted without shares.
	ErrNoShares = errors.New("ramp: no shares supplied")

	// ErrMissingShare is returned when a member of the designated coalition
	// did not supply a share.
	ErrMissingShare = errors.New("ramp: designated coalition member share missing")

	// ErrDuplicateShare is returned when two shares claim the same participant.
	ErrDuplicateShare = errors.New("ramp: duplicate share for participant")

	// ErrInvalidShareIndex is returned when a share's participant index is
	// outside 0..n-1.
	ErrInvalidShareIndex = errors.New("ramp: share index out of range")
)
