// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package directory

import (
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"
)

// Separator delimits segments of a parameter path.
const Separator = "/"

// placeholderPattern matches single-brace pattern placeholders such as
// {organization} or {resource_type}.
var placeholderPattern = regexp.MustCompile(`\{([a-z][a-z0-9_]*)\}`)

// templateVarPattern matches double-brace variables such as {{ENVIRONMENT}}
// embedded in otherwise-literal explicit paths.
var templateVarPattern = regexp.MustCompile(`\{\{\s*([A-Z][A-Z0-9_]*)\s*\}\}`)

// RenderPattern substitutes every {placeholder} in pattern with its value.
// Rendering is pure: the same pattern and values always produce the same
// path. A placeholder with no value is a configuration error, not a silent
// passthrough.
func RenderPattern(pattern string, values map[string]string) (string, error) {
	var missing []string

	rendered := placeholderPattern.ReplaceAllStringFunc(pattern, func(match string) string {
		name := match[1 : len(match)-1]
		value, ok := values[name]
		if !ok || value == "" {
			missing = append(missing, name)
			return match
		}
		return value
	})

	if len(missing) > 0 {
		sort.Strings(missing)
		return "", fmt.Errorf("pattern %q is missing values for placeholders: %s", pattern, strings.Join(missing, ", "))
	}

	return rendered, nil
}

// RenderTemplateVariables substitutes {{VARIABLE}} occurrences in an
// explicit path. Variables left unresolved are a warning rather than an
// error: an explicit path may legitimately contain literal braces that
// happen not to name a known variable.
func RenderTemplateVariables(path string, vars map[string]string) string {
	rendered := templateVarPattern.ReplaceAllStringFunc(path, func(match string) string {
		name := templateVarPattern.FindStringSubmatch(match)[1]
		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		return match
	})

	if leftover := templateVarPattern.FindAllString(rendered, -1); len(leftover) > 0 {
		slog.Warn("Explicit path contains unresolved template variables", "path", path, "variables", strings.Join(leftover, ", "))
	}

	return rendered
}

// attrSegment converts an attribute's programmatic name to its path
// segment form: underscore-separated in code, hyphen-separated in paths.
func attrSegment(attribute string) string {
	return strings.ReplaceAll(attribute, "_", "-")
}

// HasUnresolvedVariables reports whether a path still contains double-brace
// template variables.
func HasUnresolvedVariables(path string) bool {
	return templateVarPattern.MatchString(path)
}
