// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package model

import (
	"fmt"

	"github.com/goccy/go-json"
)

// AutoSentinel is the configuration value that requests convention-based
// path construction for an attribute instead of an explicit path.
const AutoSentinel = "auto"

type PathKind int

const (
	// PathAuto derives the parameter path from the unit's pattern.
	PathAuto PathKind = iota
	// PathExplicit uses a single configured path, literal or relative.
	PathExplicit
	// PathExplicitList uses an ordered list of configured paths.
	PathExplicitList
)

// PathSpec is the decoded form of one entry in an exports/imports block.
// The raw configuration mixes the "auto" sentinel, explicit path strings
// and lists of paths in the same field; decoding happens exactly once, here,
// so downstream code switches on Kind instead of re-inspecting strings.
type PathSpec struct {
	Kind  PathKind
	Path  string
	Paths []string
}

func AutoSpec() PathSpec {
	return PathSpec{Kind: PathAuto}
}

func ExplicitSpec(path string) PathSpec {
	return PathSpec{Kind: PathExplicit, Path: path}
}

func ExplicitListSpec(paths []string) PathSpec {
	return PathSpec{Kind: PathExplicitList, Paths: paths}
}

func (s *PathSpec) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == AutoSentinel {
			*s = AutoSpec()
		} else {
			*s = ExplicitSpec(single)
		}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = ExplicitListSpec(list)
		return nil
	}

	return fmt.Errorf("path spec must be %q, a path string or a list of path strings, got %s", AutoSentinel, string(data))
}

func (s PathSpec) MarshalJSON() ([]byte, error) {
	switch s.Kind {
	case PathAuto:
		return json.Marshal(AutoSentinel)
	case PathExplicit:
		return json.Marshal(s.Path)
	case PathExplicitList:
		return json.Marshal(s.Paths)
	}
	return nil, fmt.Errorf("unknown path spec kind %d", s.Kind)
}

func (s PathSpec) String() string {
	switch s.Kind {
	case PathAuto:
		return AutoSentinel
	case PathExplicit:
		return s.Path
	case PathExplicitList:
		return fmt.Sprintf("%v", s.Paths)
	}
	return "<invalid>"
}
