// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Package database synthesizes one database deployment unit. It resolves
// the owning network's identifiers from the parameter directory, maps
// configuration onto the RDS constructs, and publishes its endpoint for
// downstream units.
package database

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsrds"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/tidwall/gjson"

	"github.com/opsfabric/cirrus/internal/directory"
)

type StackProps struct {
	awscdk.StackProps

	// Config is the unit's inheritance-resolved configuration document.
	Config []byte

	// Name is the resource name used in parameter paths, "main" by default.
	Name string
}

// NewStack synthesizes the unit and returns the stack together with the
// record of what it published.
func NewStack(scope constructs.Construct, id string, props *StackProps) (awscdk.Stack, map[string]string, error) {
	stack := awscdk.NewStack(scope, jsii.String(id), &props.StackProps)

	name := props.Name
	if name == "" {
		name = "main"
	}

	dir, err := directory.New(stack, props.Config, "database", name)
	if err != nil {
		return nil, nil, err
	}
	if err := dir.ProcessImports(); err != nil {
		return nil, nil, err
	}

	subnetIDs := subnetIDsFromImport(dir)
	if subnetIDs == nil {
		return nil, nil, fmt.Errorf("database unit %s: subnet_ids import yielded nothing", id)
	}

	subnetGroup := awsrds.NewCfnDBSubnetGroup(stack, jsii.String("SubnetGroup"), &awsrds.CfnDBSubnetGroupProps{
		DbSubnetGroupDescription: jsii.String("Subnets for " + id),
		SubnetIds:                subnetIDs,
	})

	engine := gjson.GetBytes(props.Config, "database.engine").String()
	if engine == "" {
		engine = "postgres"
	}
	instanceClass := gjson.GetBytes(props.Config, "database.instance_class").String()
	if instanceClass == "" {
		instanceClass = "db.t3.medium"
	}

	var securityGroups *[]*string
	if boundaries, ok := dir.GetImport("boundary_ids", nil).([]string); ok {
		securityGroups = jsii.Strings(boundaries...)
	} else if boundary, ok := dir.GetImport("boundary_id", "").(string); ok && boundary != "" {
		securityGroups = jsii.Strings(boundary)
	}

	instance := awsrds.NewCfnDBInstance(stack, jsii.String("Instance"), &awsrds.CfnDBInstanceProps{
		Engine:             jsii.String(engine),
		DbInstanceClass:    jsii.String(instanceClass),
		AllocatedStorage:   jsii.String("20"),
		DbSubnetGroupName:  subnetGroup.Ref(),
		VpcSecurityGroups:  securityGroups,
		MasterUsername:     jsii.String(gjson.GetBytes(props.Config, "database.username").String()),
		MasterUserPassword: jsii.String("{{resolve:secretsmanager:" + id + "-credentials:SecretString:password}}"),
	})

	record, err := dir.Export(map[string]any{
		"endpoint": *instance.AttrEndpointAddress(),
		"port":     *instance.AttrEndpointPort(),
	})
	if err != nil {
		return nil, nil, err
	}

	return stack, record, nil
}

// subnetIDsFromImport accepts either shape the import can take: an
// explicitly configured list of paths resolved into individual values, or
// the network unit's comma-joined list export split at deploy time.
func subnetIDsFromImport(dir *directory.Directory) *[]*string {
	if ids, ok := dir.GetImport("subnet_ids", nil).([]string); ok {
		return jsii.Strings(ids...)
	}

	if joined, ok := dir.GetImport("subnet_ids", "").(string); ok && joined != "" {
		return awscdk.Fn_Split(jsii.String(","), jsii.String(joined), nil)
	}

	return nil
}
