// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package directory

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/opsfabric/cirrus/pkg/model"
)

// Publisher writes a unit's exported resource identifiers into the shared
// store so later units can resolve them. Publishing is best-effort per
// attribute: one attribute's failure is collected and the rest still
// publish; the summary error carries every failure.
type Publisher struct {
	ctx          *UnitContext
	store        ParameterStore
	typeTag      string
	resourceName string
	autoExport   bool
	explicit     map[string]model.PathSpec
}

func NewPublisher(ctx *UnitContext, store ParameterStore, typeTag, resourceName string, autoExport bool, explicit map[string]model.PathSpec) *Publisher {
	return &Publisher{
		ctx:          ctx,
		store:        store,
		typeTag:      typeTag,
		resourceName: resourceName,
		autoExport:   autoExport,
		explicit:     explicit,
	}
}

// Publish resolves a path for every configured and auto-discovered export
// attribute, validates it, and writes the attribute's value from values.
// Attributes whose value is absent or nil are skipped with a notice: a
// unit exports only what it actually created. The returned map records
// the attribute-to-path mapping actually used.
func (p *Publisher) Publish(values map[string]any) (map[string]string, error) {
	attributes := p.exportAttributes()
	published := make(map[string]string, len(attributes))
	var failures []error

	for _, attr := range attributes {
		spec := p.explicit[attr.name]
		if !attr.explicit {
			spec = model.AutoSpec()
		}

		path, err := p.ctx.resolveAttributePath(spec, p.typeTag, p.resourceName, attr.name, directionExport)
		if err != nil {
			failures = append(failures, fmt.Errorf("export %s: %w", attr.name, err))
			continue
		}

		if errs := ValidatePath(path, attr.name); len(errs) > 0 {
			failures = append(failures, errs...)
			continue
		}

		p.ctx.recordExport(attr.name, path)
		published[attr.name] = path

		value, ok := values[attr.name]
		if !ok || value == nil {
			slog.Info("Skipping export with no resource value", "attribute", attr.name, "path", path)
			continue
		}

		param, err := p.parameterFor(attr.name, path, value)
		if err != nil {
			failures = append(failures, err)
			continue
		}

		if err := p.store.Put(param); err != nil {
			failures = append(failures, fmt.Errorf("export %s at %s: %w", attr.name, path, err))
			continue
		}
		slog.Debug("Published export", "attribute", attr.name, "path", path, "kind", param.Kind)
	}

	if len(failures) > 0 {
		return published, fmt.Errorf("%d of %d export attributes failed for %s/%s: %w",
			len(failures), len(attributes), p.typeTag, p.resourceName, errors.Join(failures...))
	}

	return published, nil
}

type exportAttribute struct {
	name     string
	explicit bool
}

// exportAttributes unions the explicit export block with the type's
// auto-discovered attributes. Explicit entries win: auto-discovery is not
// consulted for an attribute the unit configured itself.
func (p *Publisher) exportAttributes() []exportAttribute {
	var attributes []exportAttribute
	seen := make(map[string]bool)

	for name := range p.explicit {
		attributes = append(attributes, exportAttribute{name: name, explicit: true})
		seen[name] = true
	}
	slices.SortFunc(attributes, func(a, b exportAttribute) int {
		return strings.Compare(a.name, b.name)
	})

	if p.autoExport {
		for _, name := range AutoExports(p.typeTag) {
			if !seen[name] {
				attributes = append(attributes, exportAttribute{name: name})
			}
		}
	}

	return attributes
}

func (p *Publisher) parameterFor(attribute, path string, value any) (Parameter, error) {
	description := fmt.Sprintf("%s for %s %q (%s/%s)", strings.ReplaceAll(attribute, "_", " "), p.typeTag, p.resourceName, p.ctx.Environment, p.ctx.Workload)

	switch v := value.(type) {
	case string:
		return Parameter{Path: path, Value: v, Kind: KindString, Description: description}, nil
	case []string:
		return Parameter{Path: path, Values: v, Value: strings.Join(v, ","), Kind: KindStringList, Description: description}, nil
	case fmt.Stringer:
		return Parameter{Path: path, Value: v.String(), Kind: KindString, Description: description}, nil
	default:
		return Parameter{}, fmt.Errorf("export %s: unsupported value type %T", attribute, value)
	}
}
