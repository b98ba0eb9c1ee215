// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package model

// ResourceTypeDescriptor declares the auto-discovery conventions for one
// resource type family: the attributes a unit of that type publishes by
// default and the attributes it resolves from other units by default.
// Descriptors are data, not code; new families extend the registry table.
type ResourceTypeDescriptor struct {
	// Type is the resource-type tag, lowercase with hyphens (e.g. "security-boundary").
	Type string

	// Exports lists attribute names, underscore-separated, in publish order.
	Exports []string

	// Imports lists attribute names conventionally resolved from other units.
	Imports []string
}
