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

// Package ramp implements a combinatorial ramp secret sharing scheme.
//
// A secret is split among N participants, M of whom are mandatory. Each
// participant receives a share that is the secret's bit sequence masked
// (bitwise AND) with a participant-specific access mask. The designated
// coalition of the last K participants recovers the secret by OR-ing its
// shares together.
//
// # Mask Construction
//
// The access masks are built in three stages:
//
//  1. Enumerate every N-bit pattern with exactly K-1 zero bits, in
//     increasing numeric order. There are C(N, K-1) such patterns.
//  2. Build an N x M mandatory block, the identity on the first M rows and
//     zero below, so that each mandatory participant owns a dedicated bit.
//  3. Transpose the enumeration and append each participant's mandatory
//     row. Participant i's mask is column i of the enumeration followed by
//     row i of the mandatory block, giving every mask the width
//     C(N, K-1) + M.
//
// A mask is tiled to the secret's bit length before it is applied.
//
// # Threshold Behaviour
//
// Every enumerated pattern has K-1 zeros, so any K participants cover all
// of its positions: at least one of them holds a 1. Coalitions smaller than
// K miss at least one pattern and recover a silently corrupted bit
// sequence. The engine does not detect this; wrap the secret in an
// authenticated envelope (see package envelope) to turn corruption into an
// integrity error.
//
// # Usage Example
//
//	params, err := ramp.NewParams(7, 5, 3)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	scheme := ramp.New(params)
//
//	shares, err := scheme.Split([]byte("secret"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	secret, err := scheme.Reconstruct(shares)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Constraints
//
//   - 0 <= M < K < N <= 63
//   - C(N, K-1) must not exceed MaxCombinations
//   - Reconstruction uses the participants N-K .. N-1
package ramp
