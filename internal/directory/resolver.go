// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package directory

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/opsfabric/cirrus/pkg/model"
)

// Resolver reads back, at synthesis time, the deferred references for
// every attribute a unit imports from other units. Unlike publishing,
// import resolution is all-or-nothing: a unit cannot correctly construct
// its resources around a missing dependency, so the first failure aborts.
type Resolver struct {
	ctx          *UnitContext
	store        ParameterStore
	typeTag      string
	resourceName string
	autoImport   bool
	explicit     map[string]model.PathSpec
}

func NewResolver(ctx *UnitContext, store ParameterStore, typeTag, resourceName string, autoImport bool, explicit map[string]model.PathSpec) *Resolver {
	return &Resolver{
		ctx:          ctx,
		store:        store,
		typeTag:      typeTag,
		resourceName: resourceName,
		autoImport:   autoImport,
		explicit:     explicit,
	}
}

// Resolve computes and validates a path for every import attribute, reads
// each one, and caches the results in the unit context. Scalar imports
// cache a string; list-valued imports cache an ordered []string that
// follows the configuration's list order, because order can carry meaning
// downstream.
func (r *Resolver) Resolve() (map[string]any, error) {
	resolved := make(map[string]any)

	for _, attr := range r.importAttributes() {
		spec := r.explicit[attr.name]
		if !attr.explicit {
			spec = model.AutoSpec()
		}

		value, err := r.resolveAttribute(attr.name, spec)
		if err != nil {
			return resolved, err
		}

		r.ctx.setImport(attr.name, value)
		resolved[attr.name] = value
	}

	return resolved, nil
}

func (r *Resolver) resolveAttribute(attribute string, spec model.PathSpec) (any, error) {
	if spec.Kind == model.PathExplicitList {
		return r.resolveList(attribute, spec.Paths)
	}

	path, err := r.ctx.resolveAttributePath(spec, r.typeTag, r.resourceName, attribute, directionImport)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", attribute, err)
	}

	if err := FirstError(ValidatePath(path, attribute)); err != nil {
		return nil, fmt.Errorf("import %s: %w", attribute, err)
	}

	value, err := r.store.Get(path)
	if err != nil {
		slog.Error("Failed to resolve import", "attribute", attribute, "path", path, "error", err)
		return nil, fmt.Errorf("import %s at %s: %w", attribute, path, err)
	}

	slog.Debug("Resolved import", "attribute", attribute, "path", path)
	return value, nil
}

func (r *Resolver) resolveList(attribute string, paths []string) ([]string, error) {
	values := make([]string, 0, len(paths))

	for _, raw := range paths {
		path := RenderTemplateVariables(raw, r.ctx.TemplateVars())
		if !strings.HasPrefix(path, Separator) {
			path = Separator + r.ctx.Environment + Separator + r.ctx.Workload + Separator + path
		}

		if err := FirstError(ValidatePath(path, attribute)); err != nil {
			return nil, fmt.Errorf("import %s: %w", attribute, err)
		}

		value, err := r.store.Get(path)
		if err != nil {
			slog.Error("Failed to resolve list import", "attribute", attribute, "path", path, "error", err)
			return nil, fmt.Errorf("import %s at %s: %w", attribute, path, err)
		}
		values = append(values, value)
	}

	return values, nil
}

type importAttribute struct {
	name     string
	explicit bool
}

func (r *Resolver) importAttributes() []importAttribute {
	var attributes []importAttribute
	seen := make(map[string]bool)

	for name := range r.explicit {
		attributes = append(attributes, importAttribute{name: name, explicit: true})
		seen[name] = true
	}
	slices.SortFunc(attributes, func(a, b importAttribute) int {
		return strings.Compare(a.name, b.name)
	})

	if r.autoImport {
		for _, name := range AutoImports(r.typeTag) {
			if !seen[name] {
				attributes = append(attributes, importAttribute{name: name})
			}
		}
	}

	return attributes
}
