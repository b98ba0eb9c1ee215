// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsfabric/cirrus/pkg/model"
)

func testConfig() model.DirectoryConfig {
	return model.DirectoryConfig{
		Enabled:      true,
		Organization: "org",
		Workload:     "app1",
		Environment:  "dev",
		Region:       "eu-west-1",
	}
}

func TestUnitContext_ResolveAttributePath(t *testing.T) {
	ctx := NewUnitContext(testConfig())

	t.Run("auto export renders the pattern", func(t *testing.T) {
		path, err := ctx.resolveAttributePath(model.AutoSpec(), "network", "main", "network_id", directionExport)
		require.NoError(t, err)
		assert.Equal(t, "/org/dev/network/main/network-id", path)
	})

	t.Run("auto import addresses the exporting type", func(t *testing.T) {
		path, err := ctx.resolveAttributePath(model.AutoSpec(), "database", "orders-db", "network_id", directionImport)
		require.NoError(t, err)
		assert.Equal(t, "/org/dev/network/main/network-id", path)
	})

	t.Run("export and import paths are symmetric", func(t *testing.T) {
		exported, err := ctx.resolveAttributePath(model.AutoSpec(), "network", "main", "subnet_ids", directionExport)
		require.NoError(t, err)
		imported, err := ctx.resolveAttributePath(model.AutoSpec(), "compute", "api", "subnet_ids", directionImport)
		require.NoError(t, err)
		assert.Equal(t, exported, imported)
	})

	t.Run("auto import of an unregistered attribute uses the unit's own segments", func(t *testing.T) {
		path, err := ctx.resolveAttributePath(model.AutoSpec(), "database", "orders-db", "cache_endpoint", directionImport)
		require.NoError(t, err)
		assert.Equal(t, "/org/dev/database/orders-db/cache-endpoint", path)
	})

	t.Run("auto import of a registered attribute reads the exporter's path", func(t *testing.T) {
		path, err := ctx.resolveAttributePath(model.AutoSpec(), "database", "orders-db", "boundary_id", directionImport)
		require.NoError(t, err)
		assert.Equal(t, "/org/dev/network/main/boundary-id", path)
	})

	t.Run("explicit absolute path is used verbatim", func(t *testing.T) {
		path, err := ctx.resolveAttributePath(model.ExplicitSpec("/legacy/db/endpoint"), "database", "main", "custom_endpoint", directionExport)
		require.NoError(t, err)
		assert.Equal(t, "/legacy/db/endpoint", path)
	})

	t.Run("explicit path expands template variables", func(t *testing.T) {
		path, err := ctx.resolveAttributePath(model.ExplicitSpec("/{{ENVIRONMENT}}/{{WORKLOAD_NAME}}/db/endpoint"), "database", "main", "endpoint", directionImport)
		require.NoError(t, err)
		assert.Equal(t, "/dev/app1/db/endpoint", path)
	})

	t.Run("relative import gets the environment and workload prefix", func(t *testing.T) {
		cfg := testConfig()
		cfg.Environment = "prod"
		prodCtx := NewUnitContext(cfg)

		path, err := prodCtx.resolveAttributePath(model.ExplicitSpec("vpc/id"), "database", "main", "network_id", directionImport)
		require.NoError(t, err)
		assert.Equal(t, "/prod/app1/vpc/id", path)
	})

	t.Run("relative export stays relative after placeholder substitution", func(t *testing.T) {
		path, err := ctx.resolveAttributePath(model.ExplicitSpec("not-a-path"), "network", "main", "x", directionExport)
		require.NoError(t, err)
		assert.Equal(t, "not-a-path", path)
		assert.Error(t, FirstError(ValidatePath(path, "x")))
	})

	t.Run("list spec cannot resolve to a single path", func(t *testing.T) {
		_, err := ctx.resolveAttributePath(model.ExplicitListSpec([]string{"/a/b/c/d"}), "database", "main", "boundary_ids", directionImport)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot resolve to a single path")
	})
}

func TestUnitContext_CustomPattern(t *testing.T) {
	cfg := testConfig()
	cfg.Pattern = "/{workload}/{environment}/{resource_type}/{resource_name}/{attribute}"
	ctx := NewUnitContext(cfg)

	path, err := ctx.resolveAttributePath(model.AutoSpec(), "storage", "assets", "bucket_name", directionExport)
	require.NoError(t, err)
	assert.Equal(t, "/app1/dev/storage/assets/bucket-name", path)
}

func TestUnitContext_ImportCache(t *testing.T) {
	ctx := NewUnitContext(testConfig())

	assert.False(t, ctx.HasImport("network_id"))
	assert.Equal(t, "fallback", ctx.GetImport("network_id", "fallback"))
	assert.Equal(t, "fallback", ctx.GetImportString("network_id", "fallback"))
	assert.Nil(t, ctx.GetImportList("boundary_ids"))

	ctx.setImport("network_id", "net-123")
	ctx.setImport("boundary_ids", []string{"sg-1", "sg-2"})

	assert.True(t, ctx.HasImport("network_id"))
	assert.Equal(t, "net-123", ctx.GetImport("network_id", "fallback"))
	assert.Equal(t, []string{"sg-1", "sg-2"}, ctx.GetImportList("boundary_ids"))
	assert.Equal(t, "fallback", ctx.GetImportString("boundary_ids", "fallback"))
}

func TestUnitContext_ExportRecord(t *testing.T) {
	ctx := NewUnitContext(testConfig())

	assert.Empty(t, ctx.ExportPath("network_id"))

	ctx.recordExport("network_id", "/org/dev/network/main/network-id")
	assert.Equal(t, "/org/dev/network/main/network-id", ctx.ExportPath("network_id"))

	record := ctx.Exports()
	record["network_id"] = "tampered"
	assert.Equal(t, "/org/dev/network/main/network-id", ctx.ExportPath("network_id"))
}

func TestNewUnitContext_RunIDsAreUnique(t *testing.T) {
	first := NewUnitContext(testConfig())
	second := NewUnitContext(testConfig())

	assert.NotEmpty(t, first.RunID)
	assert.NotEqual(t, first.RunID, second.RunID)
}
