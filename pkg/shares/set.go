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

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/jeremyhahn/go-rampshare/pkg/ramp"
)

// Set is the collection of records dealt from one secret.
type Set struct {
	ID        string
	Params    ramp.Params
	Coalition ramp.Coalition
	Records   []*Record
}

// NewSetID returns a random (version 4) set identifier.
func NewSetID() string {
	return uuid.NewString()
}

// NewSet wraps the shares of one split in checksummed records.
func NewSet(id string, p ramp.Params, coalition ramp.Coalition, shares []ramp.Share) (*Set, error) {
	if id == "" {
		id = NewSetID()
	}

	records := make([]*Record, 0, len(shares))
	for _, share := range shares {
		r, err := FromShare(id, p, coalition, share)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}

	return &Set{
		ID:        id,
		Params:    p,
		Coalition: coalition,
		Records:   records,
	}, nil
}

// SetFromRecords rebuilds a set from records, typically loaded from a
// store or collected from participants. Every record must agree on set ID,
// parameters and policy, and no index may repeat. Records are sorted by
// index.
func SetFromRecords(records []*Record) (*Set, error) {
	if len(records) == 0 {
		return nil, ErrSetNotFound
	}

	first := records[0]
	if err := first.Validate(); err != nil {
		return nil, err
	}
	p, _ := first.Params()
	coalition, _ := first.CoalitionPolicy()

	seen := make(map[int]struct{}, len(records))
	sorted := make([]*Record, 0, len(records))
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		if r.SetID != first.SetID || r.N != first.N || r.K != first.K || r.M != first.M || r.Coalition != first.Coalition {
			return nil, fmt.Errorf("%w: %s does not match %s", ErrSetMismatch, r, first)
		}
		if _, dup := seen[r.Index]; dup {
			return nil, fmt.Errorf("%w: index %d", ramp.ErrDuplicateShare, r.Index)
		}
		seen[r.Index] = struct{}{}
		sorted = append(sorted, r)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Index < sorted[j].Index })

	return &Set{
		ID:        first.SetID,
		Params:    p,
		Coalition: coalition,
		Records:   sorted,
	}, nil
}

// Verify checks every record's checksum.
func (s *Set) Verify() error {
	for _, r := range s.Records {
		if err := r.Verify(); err != nil {
			return err
		}
	}
	return nil
}

// Shares decodes and verifies every record.
func (s *Set) Shares() ([]ramp.Share, error) {
	out := make([]ramp.Share, 0, len(s.Records))
	for _, r := range s.Records {
		if r.SetID != s.ID {
			return nil, fmt.Errorf("%w: record for set %s in set %s", ErrSetMismatch, r.SetID, s.ID)
		}
		share, err := r.Share()
		if err != nil {
			return nil, err
		}
		out = append(out, share)
	}
	return out, nil
}

// Select returns a copy of the set holding only the given participants.
// Unknown indices are ignored.
func (s *Set) Select(indices ...int) *Set {
	want := make(map[int]struct{}, len(indices))
	for _, i := range indices {
		want[i] = struct{}{}
	}

	out := &Set{ID: s.ID, Params: s.Params, Coalition: s.Coalition}
	for _, r := range s.Records {
		if _, ok := want[r.Index]; ok {
			out.Records = append(out.Records, r)
		}
	}
	return out
}

// Indices returns the participant indices present in the set.
func (s *Set) Indices() []int {
	out := make([]int, 0, len(s.Records))
	for _, r := range s.Records {
		out = append(out, r.Index)
	}
	return out
}
