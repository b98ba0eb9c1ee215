// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package directory

import (
	"fmt"
	"log/slog"

	"github.com/tidwall/gjson"

	"github.com/opsfabric/cirrus/pkg/model"
)

// Three generations of units configure their exports and imports under
// different keys: the current nested "ssm" block, the flat "ssm_exports"/
// "ssm_imports" keys, and the oldest "ssm_parameters" mapping that served
// both directions. Instead of probing shapes at every use site, each
// generation is one named strategy; strategies run in declared order and
// the first non-empty result wins.
type configStrategy struct {
	name   string
	decode func(raw gjson.Result) (map[string]model.PathSpec, error)
}

var exportStrategies = []configStrategy{
	{name: "ssm.exports", decode: blockDecoder("ssm.exports")},
	{name: "ssm_exports", decode: blockDecoder("ssm_exports")},
	{name: "ssm_parameters", decode: blockDecoder("ssm_parameters")},
}

var importStrategies = []configStrategy{
	{name: "ssm.imports", decode: blockDecoder("ssm.imports")},
	{name: "ssm_imports", decode: blockDecoder("ssm_imports")},
	{name: "ssm_parameters", decode: blockDecoder("ssm_parameters")},
}

// DecodeExports returns the unit's explicit export block, decoded through
// the first strategy that yields one.
func DecodeExports(rawConfig []byte) (map[string]model.PathSpec, error) {
	return decodeFirst(rawConfig, exportStrategies, "exports")
}

// DecodeImports returns the unit's explicit import block.
func DecodeImports(rawConfig []byte) (map[string]model.PathSpec, error) {
	return decodeFirst(rawConfig, importStrategies, "imports")
}

func decodeFirst(rawConfig []byte, strategies []configStrategy, direction string) (map[string]model.PathSpec, error) {
	raw := gjson.ParseBytes(rawConfig)

	for _, strategy := range strategies {
		specs, err := strategy.decode(raw)
		if err != nil {
			return nil, err
		}
		if len(specs) == 0 {
			continue
		}
		if strategy.name != strategies[0].name {
			slog.Debug("Unit uses a legacy addressing convention", "direction", direction, "convention", strategy.name)
		}
		return specs, nil
	}

	return map[string]model.PathSpec{}, nil
}

func blockDecoder(key string) func(raw gjson.Result) (map[string]model.PathSpec, error) {
	return func(raw gjson.Result) (map[string]model.PathSpec, error) {
		block := raw.Get(key)
		if !block.Exists() {
			return nil, nil
		}
		if !block.IsObject() {
			return nil, fmt.Errorf("configuration key %q must be a mapping of attribute to path spec", key)
		}

		specs := make(map[string]model.PathSpec)
		var decodeErr error
		block.ForEach(func(attr, value gjson.Result) bool {
			var spec model.PathSpec
			if err := spec.UnmarshalJSON([]byte(value.Raw)); err != nil {
				decodeErr = fmt.Errorf("configuration key %q, attribute %q: %w", key, attr.String(), err)
				return false
			}
			specs[attr.String()] = spec
			return true
		})
		if decodeErr != nil {
			return nil, decodeErr
		}
		return specs, nil
	}
}
