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

package storage

import (
	"sort"
	"strconv"
	"strings"
)

const (
	setsPrefix  = "sets/"
	shareSuffix = ".json"
)

// SetPrefix returns the key prefix shared by every record of a set.
// The prefix follows the convention: sets/{id}/
func SetPrefix(id string) string {
	return setsPrefix + id + "/"
}

// SharePath returns the storage key for one participant's share record.
// The path follows the convention: sets/{id}/{index}.json
func SharePath(id string, index int) string {
	return SetPrefix(id) + strconv.Itoa(index) + shareSuffix
}

// ParseSharePath extracts the set ID and participant index from a key
// built by SharePath.
func ParseSharePath(key string) (id string, index int, ok bool) {
	rest, found := strings.CutPrefix(key, setsPrefix)
	if !found {
		return "", 0, false
	}
	id, name, found := strings.Cut(rest, "/")
	if !found || id == "" {
		return "", 0, false
	}
	name, found = strings.CutSuffix(name, shareSuffix)
	if !found {
		return "", 0, false
	}
	index, err := strconv.Atoi(name)
	if err != nil || index < 0 {
		return "", 0, false
	}
	return id, index, true
}

// ListSetIDs returns the IDs of every stored set in sorted order.
// Returns an empty slice if no sets exist.
func ListSetIDs(backend Backend) ([]string, error) {
	keys, err := backend.List(setsPrefix)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(keys))
	seen := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		id, _, ok := ParseSharePath(k)
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
