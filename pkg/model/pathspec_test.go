// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package model

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathSpec_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want PathSpec
	}{
		{
			name: "auto sentinel",
			raw:  `"auto"`,
			want: AutoSpec(),
		},
		{
			name: "explicit path",
			raw:  `"/legacy/db/endpoint"`,
			want: ExplicitSpec("/legacy/db/endpoint"),
		},
		{
			name: "relative path stays explicit",
			raw:  `"vpc/id"`,
			want: ExplicitSpec("vpc/id"),
		},
		{
			name: "list of paths",
			raw:  `["/a/b/c/d", "/a/b/c/e"]`,
			want: ExplicitListSpec([]string{"/a/b/c/d", "/a/b/c/e"}),
		},
		{
			name: "empty list",
			raw:  `[]`,
			want: ExplicitListSpec([]string{}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var spec PathSpec
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &spec))
			assert.Equal(t, tt.want, spec)
		})
	}
}

func TestPathSpec_UnmarshalJSON_Invalid(t *testing.T) {
	for _, raw := range []string{`42`, `{"path": "/a"}`, `[1, 2]`, `true`} {
		var spec PathSpec
		assert.Error(t, json.Unmarshal([]byte(raw), &spec), "input %s", raw)
	}
}

func TestPathSpec_MarshalRoundTrip(t *testing.T) {
	specs := []PathSpec{
		AutoSpec(),
		ExplicitSpec("/legacy/db/endpoint"),
		ExplicitListSpec([]string{"/x/y/z/a", "/x/y/z/b"}),
	}

	for _, spec := range specs {
		encoded, err := json.Marshal(spec)
		require.NoError(t, err)

		var decoded PathSpec
		require.NoError(t, json.Unmarshal(encoded, &decoded))
		assert.Equal(t, spec, decoded)
	}
}

func TestDirectoryConfig_ResolvedEnvironment(t *testing.T) {
	t.Run("literal value passes through", func(t *testing.T) {
		cfg := DirectoryConfig{Environment: "prod"}
		assert.Equal(t, "prod", cfg.ResolvedEnvironment())
	})

	t.Run("env var reference is followed", func(t *testing.T) {
		t.Setenv("CIRRUS_TEST_STAGE", "staging")
		cfg := DirectoryConfig{Environment: "${CIRRUS_TEST_STAGE}"}
		assert.Equal(t, "staging", cfg.ResolvedEnvironment())
	})

	t.Run("unset env var yields empty string", func(t *testing.T) {
		cfg := DirectoryConfig{Environment: "${CIRRUS_TEST_UNSET_VAR}"}
		assert.Equal(t, "", cfg.ResolvedEnvironment())
	})

	t.Run("partial reference is not expanded", func(t *testing.T) {
		cfg := DirectoryConfig{Environment: "pre-${STAGE}"}
		assert.Equal(t, "pre-${STAGE}", cfg.ResolvedEnvironment())
	})
}

func TestDirectoryConfig_Defaults(t *testing.T) {
	var cfg DirectoryConfig

	assert.Equal(t, DefaultPattern, cfg.PatternOrDefault())
	assert.True(t, cfg.AutoExportEnabled())
	assert.True(t, cfg.AutoImportEnabled())

	off := false
	cfg.AutoExport = &off
	cfg.AutoImport = &off
	cfg.Pattern = "/{organization}/{attribute}"
	assert.False(t, cfg.AutoExportEnabled())
	assert.False(t, cfg.AutoImportEnabled())
	assert.Equal(t, "/{organization}/{attribute}", cfg.PatternOrDefault())
}
