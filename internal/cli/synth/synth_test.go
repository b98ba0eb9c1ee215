// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitsFromConfig(t *testing.T) {
	t.Run("units are flattened in order", func(t *testing.T) {
		config := map[string]any{
			"units": []any{
				map[string]any{"type": "network", "name": "main"},
				map[string]any{"id": "orders-db", "type": "database"},
			},
		}

		units, err := unitsFromConfig(config)
		require.NoError(t, err)
		require.Len(t, units, 2)

		assert.Equal(t, "network", units[0].ID)
		assert.Equal(t, "network", units[0].Type)
		assert.Equal(t, "main", units[0].Name)
		assert.JSONEq(t, `{"type": "network", "name": "main"}`, string(units[0].Config))

		assert.Equal(t, "orders-db", units[1].ID)
		assert.Equal(t, "database", units[1].Type)
	})

	t.Run("no units key", func(t *testing.T) {
		units, err := unitsFromConfig(map[string]any{"other": true})
		require.NoError(t, err)
		assert.Empty(t, units)
	})

	t.Run("units must be a list", func(t *testing.T) {
		_, err := unitsFromConfig(map[string]any{"units": "nope"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"units" must be a list`)
	})

	t.Run("unit without a type", func(t *testing.T) {
		_, err := unitsFromConfig(map[string]any{"units": []any{map[string]any{"name": "x"}}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `missing the "type" key`)
	})
}

func TestApplyOverrides(t *testing.T) {
	config := map[string]any{
		"units": []any{
			map[string]any{"type": "network", "ssm": map[string]any{"environment": "dev", "enabled": true}},
		},
	}

	t.Run("no overrides returns the config unchanged", func(t *testing.T) {
		out, err := applyOverrides(config, nil)
		require.NoError(t, err)
		assert.Equal(t, config, out)
	})

	t.Run("string override", func(t *testing.T) {
		out, err := applyOverrides(config, []string{"units.0.ssm.environment=prod"})
		require.NoError(t, err)

		unit := out["units"].([]any)[0].(map[string]any)
		assert.Equal(t, "prod", unit["ssm"].(map[string]any)["environment"])
	})

	t.Run("json values keep their type", func(t *testing.T) {
		out, err := applyOverrides(config, []string{"units.0.ssm.enabled=false"})
		require.NoError(t, err)

		unit := out["units"].([]any)[0].(map[string]any)
		assert.Equal(t, false, unit["ssm"].(map[string]any)["enabled"])
	})

	t.Run("override without equals sign", func(t *testing.T) {
		_, err := applyOverrides(config, []string{"just-a-path"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must have the form path=value")
	})

	t.Run("input is not mutated", func(t *testing.T) {
		_, err := applyOverrides(config, []string{"units.0.ssm.environment=prod"})
		require.NoError(t, err)

		unit := config["units"].([]any)[0].(map[string]any)
		assert.Equal(t, "dev", unit["ssm"].(map[string]any)["environment"])
	})
}
