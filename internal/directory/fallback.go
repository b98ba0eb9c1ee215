// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package directory

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// FallbackChain is the degradation policy consumers layer on top of the
// resolver when an upstream unit may not have published an attribute yet.
// Sources run in a fixed order; the first one yielding a non-empty value
// wins. A failing store read moves the chain along instead of aborting.
type FallbackChain struct {
	ctx   *UnitContext
	store ParameterStore
}

func NewFallbackChain(ctx *UnitContext, store ParameterStore) *FallbackChain {
	return &FallbackChain{ctx: ctx, store: store}
}

// Resolve tries, in order: the value configured directly on the unit, the
// shared store at storePath, and the process environment variable envVar
// (defaulting to the attribute's conventional upper-snake name).
func (f *FallbackChain) Resolve(attribute, direct, storePath, envVar string) (string, error) {
	if direct != "" {
		slog.Debug("Fallback chain satisfied by direct configuration", "attribute", attribute)
		return direct, nil
	}

	if storePath != "" {
		path := RenderTemplateVariables(storePath, f.ctx.TemplateVars())
		if !strings.HasPrefix(path, Separator) {
			path = Separator + f.ctx.Environment + Separator + f.ctx.Workload + Separator + path
		}

		value, err := f.store.Get(path)
		if err != nil {
			slog.Warn("Fallback chain store read failed, trying next source", "attribute", attribute, "path", path, "error", err)
		} else if value != "" {
			slog.Debug("Fallback chain satisfied by shared store", "attribute", attribute, "path", path)
			return value, nil
		}
	}

	if envVar == "" {
		envVar = conventionalEnvVar(attribute)
	}
	if value := os.Getenv(envVar); value != "" {
		slog.Debug("Fallback chain satisfied by environment variable", "attribute", attribute, "variable", envVar)
		return value, nil
	}

	return "", fmt.Errorf("no value for %s: not configured, not in the shared store, and %s is unset", attribute, envVar)
}

func conventionalEnvVar(attribute string) string {
	return strings.ToUpper(strings.ReplaceAll(attribute, "-", "_"))
}
