// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package directory

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/segmentio/ksuid"

	"github.com/opsfabric/cirrus/pkg/model"
)

// UnitContext carries everything one deployment unit's synthesis pass
// shares between its resolver and publisher: the identity segments paths
// are built from, the resolved import cache and the exported-path record.
// It is constructed by the caller and scoped to a single synthesis pass;
// nothing in this package holds one globally.
type UnitContext struct {
	RunID        string
	Organization string
	Workload     string
	Environment  string
	Region       string
	Pattern      string

	imports map[string]any
	exports map[string]string
}

func NewUnitContext(cfg model.DirectoryConfig) *UnitContext {
	return &UnitContext{
		RunID:        ksuid.New().String(),
		Organization: cfg.Organization,
		Workload:     cfg.Workload,
		Environment:  cfg.ResolvedEnvironment(),
		Region:       cfg.Region,
		Pattern:      cfg.PatternOrDefault(),
		imports:      make(map[string]any),
		exports:      make(map[string]string),
	}
}

// HasImport reports whether an import has been resolved into the cache.
func (c *UnitContext) HasImport(name string) bool {
	_, ok := c.imports[name]
	return ok
}

// GetImport returns the cached value for name, or fallback when the
// import was never resolved. Values are strings for scalar imports and
// ordered []string for list imports.
func (c *UnitContext) GetImport(name string, fallback any) any {
	if value, ok := c.imports[name]; ok {
		return value
	}
	return fallback
}

// GetImportString is GetImport for the common scalar case.
func (c *UnitContext) GetImportString(name string, fallback string) string {
	if value, ok := c.imports[name].(string); ok {
		return value
	}
	return fallback
}

// GetImportList is GetImport for list-valued imports; order is the
// configuration's list order.
func (c *UnitContext) GetImportList(name string) []string {
	if value, ok := c.imports[name].([]string); ok {
		return value
	}
	return nil
}

func (c *UnitContext) setImport(name string, value any) {
	c.imports[name] = value
}

// ExportPath returns the path an attribute was published under, or "".
func (c *UnitContext) ExportPath(name string) string {
	return c.exports[name]
}

// Exports returns a copy of the exported-value record.
func (c *UnitContext) Exports() map[string]string {
	record := make(map[string]string, len(c.exports))
	for name, path := range c.exports {
		record[name] = path
	}
	return record
}

func (c *UnitContext) recordExport(name, path string) {
	c.exports[name] = path
}

// TemplateVars returns the double-brace variables available to explicit
// paths.
func (c *UnitContext) TemplateVars() map[string]string {
	return map[string]string{
		"ENVIRONMENT":   c.Environment,
		"WORKLOAD_NAME": c.Workload,
		"AWS_REGION":    c.Region,
	}
}

func (c *UnitContext) patternValues(typeTag, resourceName, attribute string) map[string]string {
	return map[string]string{
		"organization":  c.Organization,
		"environment":   c.Environment,
		"workload":      c.Workload,
		"workload_name": c.Workload,
		"region":        c.Region,
		"resource_type": typeTag,
		"resource_name": resourceName,
		"attribute":     attrSegment(attribute),
	}
}

type pathDirection int

const (
	directionExport pathDirection = iota
	directionImport
)

// resolveAttributePath turns one attribute's PathSpec into a concrete
// parameter path. Auto-discovered imports render the pattern with the
// exporting type's tag and the conventional instance name, so a consumer
// reads exactly where the owning unit published. Explicit absolute paths
// are used verbatim after template-variable substitution. Relative paths
// differ per direction: imports get the conventional
// {environment}/{workload} prefix; exports only get pattern placeholders
// substituted and are left relative for the validator to reject.
func (c *UnitContext) resolveAttributePath(spec model.PathSpec, typeTag, resourceName, attribute string, dir pathDirection) (string, error) {
	switch spec.Kind {
	case model.PathAuto:
		if dir == directionImport {
			if source, ok := exporterOf(attribute); ok {
				typeTag, resourceName = source, DefaultInstanceName
			}
		}
		return RenderPattern(c.Pattern, c.patternValues(typeTag, resourceName, attribute))

	case model.PathExplicit:
		return c.resolveExplicitPath(spec.Path, typeTag, resourceName, attribute, dir)

	case model.PathExplicitList:
		return "", fmt.Errorf("attribute %s: list-valued path spec cannot resolve to a single path", attribute)
	}

	return "", fmt.Errorf("attribute %s: unknown path spec kind %d", attribute, spec.Kind)
}

func (c *UnitContext) resolveExplicitPath(path, typeTag, resourceName, attribute string, dir pathDirection) (string, error) {
	rendered := RenderTemplateVariables(path, c.TemplateVars())

	if strings.HasPrefix(rendered, Separator) {
		return rendered, nil
	}

	if dir == directionImport {
		return Separator + c.Environment + Separator + c.Workload + Separator + rendered, nil
	}

	slog.Debug("Substituting pattern placeholders into relative export path", "attribute", attribute, "suffix", rendered)
	return RenderPattern(rendered, c.patternValues(typeTag, resourceName, attribute))
}
