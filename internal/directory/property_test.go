// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

//go:build property

package directory

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/opsfabric/cirrus/pkg/model"
)

var segmentGen = rapid.StringMatching(`[a-z][a-z0-9-]{0,15}`)

func TestRenderPattern_Deterministic(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		values := map[string]string{
			"organization":  segmentGen.Draw(rt, "organization"),
			"environment":   segmentGen.Draw(rt, "environment"),
			"workload":      segmentGen.Draw(rt, "workload"),
			"resource_type": segmentGen.Draw(rt, "resource_type"),
			"resource_name": segmentGen.Draw(rt, "resource_name"),
			"attribute":     segmentGen.Draw(rt, "attribute"),
		}

		first, err := RenderPattern(model.DefaultPattern, values)
		require.NoError(rt, err)
		second, err := RenderPattern(model.DefaultPattern, values)
		require.NoError(rt, err)

		require.Equal(rt, first, second)
		require.False(rt, strings.ContainsAny(first, "{}"))
	})
}

func TestValidatePath_Monotonicity(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		segments := rapid.SliceOfN(segmentGen, 1, 8).Draw(rt, "segments")
		absolute := rapid.Bool().Draw(rt, "absolute")

		path := strings.Join(segments, Separator)
		if absolute {
			path = Separator + path
		}

		errs := ValidatePath(path, "attr")
		if absolute && len(segments) >= MinPathSegments {
			require.Empty(rt, errs)
		} else {
			require.NotEmpty(rt, errs)
		}
	})
}

func TestExportImportPathSymmetry(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		cfg := model.DirectoryConfig{
			Enabled:      true,
			Organization: segmentGen.Draw(rt, "organization"),
			Workload:     segmentGen.Draw(rt, "workload"),
			Environment:  segmentGen.Draw(rt, "environment"),
		}
		ctx := NewUnitContext(cfg)

		attribute := rapid.SampledFrom([]string{
			"network_id", "network_cidr", "subnet_ids", "boundary_id", "endpoint", "lb_listener_arn",
		}).Draw(rt, "attribute")

		source, ok := exporterOf(attribute)
		require.True(rt, ok)

		exported, err := ctx.resolveAttributePath(model.AutoSpec(), source, DefaultInstanceName, attribute, directionExport)
		require.NoError(rt, err)

		importerType := rapid.SampledFrom(KnownResourceTypes()).Draw(rt, "importer")
		importerName := segmentGen.Draw(rt, "importerName")
		imported, err := ctx.resolveAttributePath(model.AutoSpec(), importerType, importerName, attribute, directionImport)
		require.NoError(rt, err)

		require.Equal(rt, exported, imported)
	})
}

func TestListImportPreservesOrder(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		store := NewMemoryStore()
		ctx := NewUnitContext(model.DirectoryConfig{
			Enabled:      true,
			Organization: "org",
			Workload:     "app1",
			Environment:  "dev",
		})

		count := rapid.IntRange(1, 6).Draw(rt, "count")
		paths := make([]string, 0, count)
		want := make([]string, 0, count)
		for i := 0; i < count; i++ {
			name := segmentGen.Draw(rt, "name")
			path := fmt.Sprintf("/org/dev/security-boundary/%s-%d/boundary-id", name, i)
			value := segmentGen.Draw(rt, "value")
			require.NoError(rt, store.Put(Parameter{Path: path, Value: value, Kind: KindString}))
			paths = append(paths, path)
			want = append(want, value)
		}

		resolver := NewResolver(ctx, store, "database", "main", false, map[string]model.PathSpec{
			"boundary_ids": model.ExplicitListSpec(paths),
		})
		resolved, err := resolver.Resolve()
		require.NoError(rt, err)
		require.Equal(rt, want, resolved["boundary_ids"])
	})
}
