// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package directory

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// MinPathSegments is the minimum number of non-empty segments a fully
// resolved parameter path must have.
const MinPathSegments = 4

// knownEnvironments are the deployment-stage names the advisory check
// recognizes in the second path segment.
var knownEnvironments = []string{"dev", "test", "qa", "stage", "staging", "prod", "sandbox"}

var segmentPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// ValidatePath checks a resolved parameter path against the structural
// rules and returns every violation rather than stopping at the first.
// label names the attribute (or other context) the path belongs to so a
// batch of errors stays readable. Advisory findings are logged as
// warnings, never returned.
func ValidatePath(path string, label string) []error {
	var errs []error

	if path == "" {
		errs = append(errs, fmt.Errorf("parameter path for %s must not be empty", label))
		return errs
	}

	if !strings.HasPrefix(path, Separator) {
		errs = append(errs, fmt.Errorf("parameter path %q for %s must start with %q", path, label, Separator))
	}

	segments := nonEmptySegments(path)
	if len(segments) < MinPathSegments {
		errs = append(errs, fmt.Errorf("parameter path %q for %s must have at least %d segments, has %d", path, label, MinPathSegments, len(segments)))
	}

	if len(errs) == 0 {
		advisePathShape(path, segments, label)
	}

	return errs
}

// LintExplicitPath is the pre-flight variant used when linting a unit's
// configuration before synthesis. On top of the structural rules it flags
// explicit paths that carry neither {{ENVIRONMENT}} nor {{WORKLOAD_NAME}},
// since a path with both omitted almost always hard-codes a stage name
// that will not travel between deployment stages.
func LintExplicitPath(path string, label string) []error {
	errs := ValidatePath(path, label)

	if !hasPortableVariable(path) {
		errs = append(errs, fmt.Errorf("explicit path %q for %s contains neither {{ENVIRONMENT}} nor {{WORKLOAD_NAME}}; it will not travel between deployment stages", path, label))
	}

	return errs
}

// hasPortableVariable reports whether path names at least one of the two
// variables that make an explicit path travel between stages. Other
// template variables do not count.
func hasPortableVariable(path string) bool {
	for _, match := range templateVarPattern.FindAllStringSubmatch(path, -1) {
		if match[1] == "ENVIRONMENT" || match[1] == "WORKLOAD_NAME" {
			return true
		}
	}
	return false
}

// FirstError raises validation to strict mode: the first accumulated
// error, or nil when the path passed.
func FirstError(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return errs[0]
}

func nonEmptySegments(path string) []string {
	var segments []string
	for _, seg := range strings.Split(path, Separator) {
		if seg != "" {
			segments = append(segments, seg)
		}
	}
	return segments
}

func advisePathShape(path string, segments []string, label string) {
	if len(segments) < 2 {
		return
	}

	env := segments[1]
	if !isKnownEnvironment(env) && !strings.Contains(env, "{{") {
		slog.Warn("Second path segment is not a recognized environment name", "path", path, "segment", env, "attribute", label)
	}

	typeSegment := segments[len(segments)-3]
	if !segmentPattern.MatchString(typeSegment) && !strings.Contains(typeSegment, "{{") {
		slog.Warn("Resource-type segment has an unconventional shape", "path", path, "segment", typeSegment, "attribute", label)
	}
}

func isKnownEnvironment(name string) bool {
	for _, env := range knownEnvironments {
		if name == env {
			return true
		}
	}
	return false
}
