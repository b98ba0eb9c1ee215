// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package directory

import (
	"fmt"
	"strings"

	"github.com/aws/aws-cdk-go/awscdk/v2/awsssm"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

// SSMStore backs the parameter directory with SSM Parameter Store through
// the CDK. Writes become StringParameter/StringListParameter constructs in
// the owning stack; reads become deferred references the platform resolves
// at deploy time. Because reads are deferred, a missing path cannot be
// detected here; it surfaces when the dependent unit deploys.
type SSMStore struct {
	scope constructs.Construct
}

func NewSSMStore(scope constructs.Construct) *SSMStore {
	return &SSMStore{scope: scope}
}

func (s *SSMStore) Put(p Parameter) error {
	switch p.Kind {
	case KindStringList:
		values := p.Values
		if len(values) == 0 && p.Value != "" {
			values = strings.Split(p.Value, ",")
		}
		awsssm.NewStringListParameter(s.scope, jsii.String(constructID(p.Path)), &awsssm.StringListParameterProps{
			ParameterName:   jsii.String(p.Path),
			StringListValue: jsii.Strings(values...),
			Description:     jsii.String(p.Description),
		})
	case KindSecureString:
		// CloudFormation cannot create SecureString parameters; they are
		// written out of band and only resolved here.
		return fmt.Errorf("parameter %q: SecureString entries cannot be written at synthesis time", p.Path)
	default:
		awsssm.NewStringParameter(s.scope, jsii.String(constructID(p.Path)), &awsssm.StringParameterProps{
			ParameterName: jsii.String(p.Path),
			StringValue:   jsii.String(p.Value),
			Description:   jsii.String(p.Description),
		})
	}
	return nil
}

func (s *SSMStore) Get(path string) (string, error) {
	value := awsssm.StringParameter_ValueForStringParameter(s.scope, jsii.String(path), nil)
	return *value, nil
}

// constructID maps a parameter path to a construct ID unique within the
// owning scope. Paths are unique per unit, so the mapping only needs to
// be injective over separator placement.
func constructID(path string) string {
	id := strings.TrimPrefix(path, Separator)
	id = strings.ReplaceAll(id, Separator, "--")
	replacer := strings.NewReplacer("_", "-", ".", "-", "{", "", "}", "", "$", "")
	return "Param--" + replacer.Replace(id)
}
