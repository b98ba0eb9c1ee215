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

func TestRenderPattern(t *testing.T) {
	values := map[string]string{
		"organization":  "org",
		"environment":   "dev",
		"resource_type": "network",
		"resource_name": "main",
		"attribute":     "network-id",
	}

	t.Run("default pattern renders fully", func(t *testing.T) {
		path, err := RenderPattern(model.DefaultPattern, values)
		require.NoError(t, err)
		assert.Equal(t, "/org/dev/network/main/network-id", path)
	})

	t.Run("custom pattern uses only its placeholders", func(t *testing.T) {
		path, err := RenderPattern("/{organization}/shared/{attribute}", values)
		require.NoError(t, err)
		assert.Equal(t, "/org/shared/network-id", path)
	})

	t.Run("missing placeholders are reported sorted", func(t *testing.T) {
		_, err := RenderPattern("/{workload}/{environment}/{zone}", map[string]string{"environment": "dev"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "workload, zone")
	})

	t.Run("empty value counts as missing", func(t *testing.T) {
		_, err := RenderPattern("/{organization}/{attribute}", map[string]string{"organization": "", "attribute": "a"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "organization")
	})

	t.Run("literal segments pass through", func(t *testing.T) {
		path, err := RenderPattern("/fixed/prefix", nil)
		require.NoError(t, err)
		assert.Equal(t, "/fixed/prefix", path)
	})
}

func TestRenderTemplateVariables(t *testing.T) {
	vars := map[string]string{
		"ENVIRONMENT":   "prod",
		"WORKLOAD_NAME": "app1",
		"AWS_REGION":    "eu-west-1",
	}

	tests := []struct {
		name string
		path string
		want string
	}{
		{
			name: "environment and workload",
			path: "/{{ENVIRONMENT}}/{{WORKLOAD_NAME}}/vpc/id",
			want: "/prod/app1/vpc/id",
		},
		{
			name: "whitespace inside braces",
			path: "/{{ ENVIRONMENT }}/shared/db/endpoint",
			want: "/prod/shared/db/endpoint",
		},
		{
			name: "unknown variable stays literal",
			path: "/{{ENVIRONMENT}}/{{UNKNOWN_VAR}}/x",
			want: "/prod/{{UNKNOWN_VAR}}/x",
		},
		{
			name: "no variables",
			path: "/legacy/db/endpoint",
			want: "/legacy/db/endpoint",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderTemplateVariables(tt.path, vars))
		})
	}
}

func TestHasUnresolvedVariables(t *testing.T) {
	assert.True(t, HasUnresolvedVariables("/{{ENVIRONMENT}}/x"))
	assert.False(t, HasUnresolvedVariables("/prod/x"))
	assert.False(t, HasUnresolvedVariables("/{organization}/x"))
}

func TestAttrSegment(t *testing.T) {
	assert.Equal(t, "network-id", attrSegment("network_id"))
	assert.Equal(t, "endpoint", attrSegment("endpoint"))
	assert.Equal(t, "lb-listener-arn", attrSegment("lb_listener_arn"))
}
