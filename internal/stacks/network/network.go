// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Package network synthesizes one network deployment unit: a VPC with two
// subnets, an internet gateway and a default security boundary. It is a
// thin field-mapping wrapper over the CDK constructs; the interesting work
// happens in the parameter directory it publishes into.
package network

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsec2"
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

	dir, err := directory.New(stack, props.Config, "network", name)
	if err != nil {
		return nil, nil, err
	}
	if err := dir.ProcessImports(); err != nil {
		return nil, nil, err
	}

	cidr := gjson.GetBytes(props.Config, "network.cidr").String()
	if cidr == "" {
		cidr = "10.0.0.0/16"
	}

	vpc := awsec2.NewCfnVPC(stack, jsii.String("Vpc"), &awsec2.CfnVPCProps{
		CidrBlock:          jsii.String(cidr),
		EnableDnsSupport:   jsii.Bool(true),
		EnableDnsHostnames: jsii.Bool(true),
		Tags: &[]*awscdk.CfnTag{
			{Key: jsii.String("Name"), Value: jsii.String(id)},
		},
	})

	igw := awsec2.NewCfnInternetGateway(stack, jsii.String("InternetGateway"), &awsec2.CfnInternetGatewayProps{})
	awsec2.NewCfnVPCGatewayAttachment(stack, jsii.String("GatewayAttachment"), &awsec2.CfnVPCGatewayAttachmentProps{
		VpcId:             vpc.AttrVpcId(),
		InternetGatewayId: igw.AttrInternetGatewayId(),
	})

	subnetCidrs := subnetCidrsFromConfig(props.Config)
	subnetIDs := make([]string, 0, len(subnetCidrs))
	for i, subnetCidr := range subnetCidrs {
		subnet := awsec2.NewCfnSubnet(stack, jsii.String(fmt.Sprintf("Subnet%d", i+1)), &awsec2.CfnSubnetProps{
			VpcId:            vpc.AttrVpcId(),
			CidrBlock:        jsii.String(subnetCidr),
			AvailabilityZone: awscdk.Fn_Select(jsii.Number(float64(i)), awscdk.Fn_GetAzs(nil)),
		})
		subnetIDs = append(subnetIDs, *subnet.AttrSubnetId())
	}

	boundary := awsec2.NewCfnSecurityGroup(stack, jsii.String("Boundary"), &awsec2.CfnSecurityGroupProps{
		GroupDescription: jsii.String("Default security boundary for " + id),
		VpcId:            vpc.AttrVpcId(),
	})

	record, err := dir.Export(map[string]any{
		"network_id":   *vpc.AttrVpcId(),
		"network_cidr": *vpc.AttrCidrBlock(),
		"subnet_ids":   subnetIDs,
		"boundary_id":  *boundary.AttrGroupId(),
	})
	if err != nil {
		return nil, nil, err
	}

	return stack, record, nil
}

func subnetCidrsFromConfig(config []byte) []string {
	configured := gjson.GetBytes(config, "network.subnets")
	if !configured.Exists() {
		return []string{"10.0.0.0/24", "10.0.1.0/24"}
	}

	var cidrs []string
	configured.ForEach(func(_, value gjson.Result) bool {
		cidrs = append(cidrs, value.String())
		return true
	})
	return cidrs
}
