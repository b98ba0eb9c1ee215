// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Package directory implements the cross-unit resource addressing layer:
// deployment units publish identifiers of resources they own into a shared
// hierarchical parameter store and resolve identifiers owned by other
// units at synthesis time, under convention-based paths with explicit
// overrides.
package directory

import (
	"fmt"
	"log/slog"

	"github.com/aws/constructs-go/constructs/v10"
	"github.com/tidwall/gjson"

	"github.com/goccy/go-json"

	"github.com/opsfabric/cirrus/pkg/model"
)

// Directory is the surface a resource-synthesis module talks to: resolve
// imports before constructing resources, publish exports after.
type Directory struct {
	ctx          *UnitContext
	cfg          model.DirectoryConfig
	store        ParameterStore
	typeTag      string
	resourceName string
	exports      map[string]model.PathSpec
	imports      map[string]model.PathSpec
}

type Option func(*Directory)

// WithStore substitutes the shared-store backend. The lint command and
// tests use this to run against an in-memory store.
func WithStore(store ParameterStore) Option {
	return func(d *Directory) {
		d.store = store
	}
}

// New builds the directory surface for one unit from its raw (already
// inheritance-resolved) configuration document. scope is the CDK scope
// parameter reads and writes attach to; it may be nil when an explicit
// store is supplied.
func New(scope constructs.Construct, rawConfig []byte, typeTag, resourceName string, opts ...Option) (*Directory, error) {
	cfg, err := decodeConfig(rawConfig)
	if err != nil {
		return nil, err
	}

	exports, err := DecodeExports(rawConfig)
	if err != nil {
		return nil, err
	}
	imports, err := DecodeImports(rawConfig)
	if err != nil {
		return nil, err
	}

	d := &Directory{
		ctx:          NewUnitContext(cfg),
		cfg:          cfg,
		typeTag:      typeTag,
		resourceName: resourceName,
		exports:      exports,
		imports:      imports,
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.store == nil {
		if scope == nil {
			return nil, fmt.Errorf("directory for %s/%s needs a CDK scope or an explicit parameter store", typeTag, resourceName)
		}
		d.store = NewSSMStore(scope)
	}

	if !cfg.Enabled {
		slog.Debug("Parameter directory disabled for unit", "type", typeTag, "name", resourceName)
	}

	return d, nil
}

// Enabled reports whether the unit participates in the parameter directory.
func (d *Directory) Enabled() bool {
	return d.cfg.Enabled
}

// Context exposes the per-unit context for consumers that layer policies,
// such as the fallback chain, on top of the directory.
func (d *Directory) Context() *UnitContext {
	return d.ctx
}

// ProcessImports resolves every configured and auto-discovered import
// into the unit's cache. Must run before the unit constructs resources
// that depend on them.
func (d *Directory) ProcessImports() error {
	if !d.cfg.Enabled {
		return nil
	}

	resolver := NewResolver(d.ctx, d.store, d.typeTag, d.resourceName, d.cfg.AutoImportEnabled(), d.imports)
	if _, err := resolver.Resolve(); err != nil {
		return fmt.Errorf("resolving imports for %s/%s: %w", d.typeTag, d.resourceName, err)
	}
	return nil
}

// Export publishes the unit's resource identifiers and returns the
// attribute-to-path record of what was published.
func (d *Directory) Export(values map[string]any) (map[string]string, error) {
	if !d.cfg.Enabled {
		return map[string]string{}, nil
	}

	publisher := NewPublisher(d.ctx, d.store, d.typeTag, d.resourceName, d.cfg.AutoExportEnabled(), d.exports)
	return publisher.Publish(values)
}

// Lint validates every export and import path this unit would use,
// without touching the store. Explicit paths additionally get the
// stage-portability check.
func (d *Directory) Lint() []error {
	var errs []error

	check := func(explicit map[string]model.PathSpec, auto []string, enabled bool, dir pathDirection) {
		for name, spec := range explicit {
			switch spec.Kind {
			case model.PathExplicitList:
				for _, path := range spec.Paths {
					errs = append(errs, LintExplicitPath(path, name)...)
				}
			case model.PathExplicit:
				errs = append(errs, LintExplicitPath(spec.Path, name)...)
			default:
				if path, err := d.ctx.resolveAttributePath(spec, d.typeTag, d.resourceName, name, dir); err != nil {
					errs = append(errs, err)
				} else {
					errs = append(errs, ValidatePath(path, name)...)
				}
			}
		}
		if !enabled {
			return
		}
		for _, name := range auto {
			if _, ok := explicit[name]; ok {
				continue
			}
			path, err := d.ctx.resolveAttributePath(model.AutoSpec(), d.typeTag, d.resourceName, name, dir)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			errs = append(errs, ValidatePath(path, name)...)
		}
	}

	check(d.exports, AutoExports(d.typeTag), d.cfg.AutoExportEnabled(), directionExport)
	check(d.imports, AutoImports(d.typeTag), d.cfg.AutoImportEnabled(), directionImport)

	return errs
}

// HasImport reports whether ProcessImports resolved the named attribute.
func (d *Directory) HasImport(name string) bool {
	return d.ctx.HasImport(name)
}

// GetImport returns the resolved import, or fallback when absent.
func (d *Directory) GetImport(name string, fallback any) any {
	return d.ctx.GetImport(name, fallback)
}

// GetExportPath returns the path an attribute was published under.
func (d *Directory) GetExportPath(name string) string {
	return d.ctx.ExportPath(name)
}

func decodeConfig(rawConfig []byte) (model.DirectoryConfig, error) {
	raw := gjson.ParseBytes(rawConfig)

	block := raw.Get("ssm")
	if block.Exists() {
		if !block.IsObject() {
			return model.DirectoryConfig{}, fmt.Errorf("configuration key %q must be a mapping", "ssm")
		}
		var cfg model.DirectoryConfig
		if err := json.Unmarshal([]byte(block.Raw), &cfg); err != nil {
			return model.DirectoryConfig{}, fmt.Errorf("configuration key %q: %w", "ssm", err)
		}
		return cfg, nil
	}

	// Older unit generations spread the same settings over flat top-level
	// keys next to their ssm_exports/ssm_imports blocks.
	cfg := model.DirectoryConfig{
		Enabled:      raw.Get("ssm_enabled").Bool(),
		Organization: raw.Get("organization").String(),
		Workload:     raw.Get("workload").String(),
		Environment:  raw.Get("environment").String(),
		Region:       raw.Get("region").String(),
		Pattern:      raw.Get("ssm_pattern").String(),
	}
	return cfg, nil
}
