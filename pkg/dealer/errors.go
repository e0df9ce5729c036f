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

package dealer

import "errors"

var (
	// ErrUnrecoverable is returned by Deal when the configured coalition
	// cannot reconstruct the envelope bit for bit. This happens with the
	// last-k policy and mandatory participants once the envelope is longer
	// than C(n, k-1) bits.
	ErrUnrecoverable = errors.New("dealer: coalition cannot reconstruct the secret")

	// ErrNoStore is returned by operations that need a share store when
	// none is configured.
	ErrNoStore = errors.New("dealer: no share store configured")
)
