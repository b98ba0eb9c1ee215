// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package directory

import (
	"slices"

	"github.com/opsfabric/cirrus/pkg/model"
)

// resourceTypes is the auto-discovery table. Order inside each list is the
// publish/resolve order. Unknown type tags get no auto-discovery and fall
// back to fully explicit configuration; that is not an error.
//
// Every auto-imported attribute must appear in some type's export list, or
// the conventional import path addresses a parameter nothing publishes.
// The network exports boundary_id for the default boundary it creates;
// a security-boundary unit owns the plural boundary_ids set, consumed via
// explicit list imports.
var resourceTypes = []model.ResourceTypeDescriptor{
	{
		Type:    "network",
		Exports: []string{"network_id", "network_cidr", "subnet_ids", "route_table_ids", "boundary_id"},
	},
	{
		Type:    "security-boundary",
		Exports: []string{"boundary_ids"},
		Imports: []string{"network_id"},
	},
	{
		Type:    "load-balancer",
		Exports: []string{"lb_arn", "lb_dns_name", "lb_listener_arn"},
		Imports: []string{"network_id", "subnet_ids", "boundary_id"},
	},
	{
		Type:    "database",
		Exports: []string{"endpoint", "port", "secret_arn"},
		Imports: []string{"network_id", "subnet_ids", "boundary_id"},
	},
	{
		Type:    "gateway",
		Exports: []string{"gateway_id", "gateway_endpoint"},
		Imports: []string{"network_id", "subnet_ids", "boundary_id"},
	},
	{
		Type:    "identity",
		Exports: []string{"pool_id", "pool_client_id", "pool_domain"},
	},
	{
		Type:    "compute",
		Exports: []string{"service_name", "task_role_arn"},
		Imports: []string{"network_id", "subnet_ids", "boundary_id", "lb_listener_arn"},
	},
	{
		Type:    "storage",
		Exports: []string{"bucket_name", "bucket_arn"},
	},
	{
		Type:    "lookup-table",
		Exports: []string{"table_name", "table_arn", "table_stream_arn"},
	},
}

func descriptorFor(typeTag string) (model.ResourceTypeDescriptor, bool) {
	for _, desc := range resourceTypes {
		if desc.Type == typeTag {
			return desc, true
		}
	}
	return model.ResourceTypeDescriptor{}, false
}

// AutoExports returns the attributes a resource type publishes by convention.
func AutoExports(typeTag string) []string {
	desc, ok := descriptorFor(typeTag)
	if !ok {
		return nil
	}
	return slices.Clone(desc.Exports)
}

// DefaultInstanceName is the conventional resource name assumed when an
// auto-discovered import addresses another unit's export.
const DefaultInstanceName = "main"

// exporterOf returns the resource type that conventionally exports the
// named attribute. Table order breaks ties, though the table keeps
// exported attribute names distinct across types.
func exporterOf(attribute string) (string, bool) {
	for _, desc := range resourceTypes {
		if slices.Contains(desc.Exports, attribute) {
			return desc.Type, true
		}
	}
	return "", false
}

// AutoImports returns the attributes a resource type resolves by convention.
func AutoImports(typeTag string) []string {
	desc, ok := descriptorFor(typeTag)
	if !ok {
		return nil
	}
	return slices.Clone(desc.Imports)
}

// KnownResourceTypes returns the registered type tags in table order.
func KnownResourceTypes() []string {
	tags := make([]string, 0, len(resourceTypes))
	for _, desc := range resourceTypes {
		tags = append(tags, desc.Type)
	}
	return tags
}
