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
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jeremyhahn/go-rampshare/pkg/storage"
	"github.com/jeremyhahn/go-rampshare/pkg/validation"
)

// Store persists share sets in a storage.Backend, one JSON document per
// record under sets/{id}/{index}.json.
type Store struct {
	backend storage.Backend
}

// NewStore creates a store over backend.
func NewStore(backend storage.Backend) *Store {
	return &Store{backend: backend}
}

// Backend returns the underlying storage backend.
func (s *Store) Backend() storage.Backend {
	return s.backend
}

// Save writes every record of set. Existing records with the same keys are
// overwritten.
func (s *Store) Save(set *Set) error {
	if err := validation.ValidateSetID(set.ID); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrInvalidID, err)
	}

	for _, r := range set.Records {
		if r.SetID != set.ID {
			return fmt.Errorf("%w: record for set %s in set %s", ErrSetMismatch, r.SetID, set.ID)
		}
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal share %d: %w", r.Index, err)
		}
		if err := s.backend.Put(storage.SharePath(set.ID, r.Index), data, storage.DefaultOptions()); err != nil {
			return fmt.Errorf("failed to store share %d of set %s: %w", r.Index, set.ID, err)
		}
	}
	return nil
}

// Load reads and validates every record of the set. Checksums are not
// verified here; Set.Verify or Set.Shares does that.
func (s *Store) Load(id string) (*Set, error) {
	if err := validation.ValidateSetID(id); err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrInvalidID, err)
	}

	keys, err := s.backend.List(storage.SetPrefix(id))
	if err != nil {
		return nil, fmt.Errorf("failed to list set %s: %w", id, err)
	}

	records := make([]*Record, 0, len(keys))
	for _, key := range keys {
		if _, _, ok := storage.ParseSharePath(key); !ok {
			continue
		}
		data, err := s.backend.Get(key)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", key, err)
		}
		var r Record
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidRecord, key, err)
		}
		records = append(records, &r)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrSetNotFound, id)
	}
	return SetFromRecords(records)
}

// List returns the IDs of every stored set in sorted order.
func (s *Store) List() ([]string, error) {
	return storage.ListSetIDs(s.backend)
}

// Delete removes every record of the set.
func (s *Store) Delete(id string) error {
	if err := validation.ValidateSetID(id); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrInvalidID, err)
	}

	keys, err := s.backend.List(storage.SetPrefix(id))
	if err != nil {
		return fmt.Errorf("failed to list set %s: %w", id, err)
	}
	if len(keys) == 0 {
		return fmt.Errorf("%w: %s", ErrSetNotFound, id)
	}

	for _, key := range keys {
		if err := s.backend.Delete(key); err != nil && !errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("failed to delete %s: %w", key, err)
		}
	}
	return nil
}
