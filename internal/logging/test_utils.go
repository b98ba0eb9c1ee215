// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package logging

import (
	"strings"
	"sync"
)

// TestLogCapture is a log writer tests install as the slog handler target
// to assert on emitted warnings and notices.
type TestLogCapture struct {
	mu      sync.RWMutex
	entries []string
}

func NewTestLogCapture() *TestLogCapture {
	return &TestLogCapture{entries: make([]string, 0)}
}

func (c *TestLogCapture) Write(p []byte) (n int, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, string(p))
	return len(p), nil
}

// ContainsAll reports whether every substring appears in some entry.
func (c *TestLogCapture) ContainsAll(substrs ...string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, substr := range substrs {
		found := false
		for _, entry := range c.entries {
			if strings.Contains(entry, substr) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Entries returns a copy of all captured entries.
func (c *TestLogCapture) Entries() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entries := make([]string, len(c.entries))
	copy(entries, c.entries)
	return entries
}

func (c *TestLogCapture) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make([]string, 0)
}
