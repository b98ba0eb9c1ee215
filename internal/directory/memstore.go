// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package directory

import (
	"fmt"
	"strings"
)

// MemoryStore is an in-process ParameterStore. The lint command uses it to
// dry-run a unit's publish/resolve path computation without a CDK app, and
// tests use it to observe writes and answer reads.
type MemoryStore struct {
	entries map[string]Parameter
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Parameter)}
}

func (s *MemoryStore) Put(p Parameter) error {
	if p.Kind == KindStringList && p.Value == "" {
		p.Value = strings.Join(p.Values, ",")
	}
	s.entries[p.Path] = p
	return nil
}

func (s *MemoryStore) Get(path string) (string, error) {
	entry, ok := s.entries[path]
	if !ok {
		return "", fmt.Errorf("no parameter at path %q", path)
	}
	return entry.Value, nil
}

// Entry returns the stored parameter at path, if any.
func (s *MemoryStore) Entry(path string) (Parameter, bool) {
	entry, ok := s.entries[path]
	return entry, ok
}

// Paths returns every written path, in no particular order.
func (s *MemoryStore) Paths() []string {
	paths := make([]string, 0, len(s.entries))
	for path := range s.entries {
		paths = append(paths, path)
	}
	return paths
}
