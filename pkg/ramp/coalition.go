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

import (
	"fmt"
	"strings"
)

// Coalition selects which k participants reconstruct the secret.
//
// The zero value is CoalitionMandatoryFirst. A Scheme built without
// WithCoalition uses CoalitionLastK.
type Coalition int

const (
	// CoalitionMandatoryFirst uses the mandatory participants 0 .. m-1
	// followed by the last k-m participants. It always covers every mask
	// position and reconstructs exactly.
	CoalitionMandatoryFirst Coalition = iota

	// CoalitionLastK uses participants n-k .. n-1. With m > 0 it never
	// contains participant 0, so the mandatory positions owned by excluded
	// participants are lost for secrets longer than C(n, k-1) bits.
	CoalitionLastK
)

// String returns the configuration name of the policy.
func (c Coalition) String() string {
	switch c {
	case CoalitionMandatoryFirst:
		return "mandatory-first"
	case CoalitionLastK:
		return "last-k"
	default:
		return fmt.Sprintf("coalition(%d)", int(c))
	}
}

// ParseCoalition parses a policy name as produced by String. An empty name
// is last-k, the policy of records written before the field existed.
func ParseCoalition(s string) (Coalition, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "last-k", "lastk":
		return CoalitionLastK, nil
	case "mandatory-first", "mandatory":
		return CoalitionMandatoryFirst, nil
	default:
		return 0, fmt.Errorf("unknown coalition policy %q (must be last-k or mandatory-first)", s)
	}
}

// Members returns the participant indices of the coalition in increasing order.
func (c Coalition) Members(p Params) []int {
	if p.K <= 0 || p.K > p.N {
		return nil
	}
	if c != CoalitionMandatoryFirst {
		return DesignatedCoalition(p)
	}
	members := make([]int, 0, p.K)
	for i := 0; i < p.M; i++ {
		members = append(members, i)
	}
	for i := p.N - (p.K - p.M); i < p.N; i++ {
		members = append(members, i)
	}
	return members
}
