// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package synth

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"

	"github.com/opsfabric/cirrus/internal/cli/display"
	"github.com/opsfabric/cirrus/internal/cli/renderer"
	"github.com/opsfabric/cirrus/internal/inherit"
	"github.com/opsfabric/cirrus/internal/logging"
	"github.com/opsfabric/cirrus/internal/stacks/database"
	"github.com/opsfabric/cirrus/internal/stacks/network"
	"github.com/opsfabric/cirrus/internal/util"
	"github.com/opsfabric/cirrus/pkg/model"
)

type SynthOptions struct {
	ConfigFile string
	OutDir     string
	Quiet      bool
	Overrides  []string
}

func SynthCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "synth <config-file>",
		Short: "Synthesize the deployment units described by a configuration document",
		Args:  cobra.ExactArgs(1),
		PreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupSynthLogging(&model.LoggingConfig{
				FilePath:        util.ExpandHomePath("~/.cirrus/log/synth.log"),
				FileLogLevel:    slog.LevelDebug,
				ConsoleLogLevel: slog.LevelWarn,
			})
		},
		RunE: func(command *cobra.Command, args []string) error {
			opts := &SynthOptions{ConfigFile: args[0]}
			opts.OutDir, _ = command.Flags().GetString("output")
			opts.Quiet, _ = command.Flags().GetBool("quiet")
			opts.Overrides, _ = command.Flags().GetStringArray("set")

			return runSynth(opts)
		},
	}

	command.Flags().StringP("output", "o", "", "Directory for the synthesized cloud assembly")
	command.Flags().BoolP("quiet", "q", false, "Suppress the per-unit export summary")
	command.Flags().StringArray("set", nil, "Override a configuration value by path, e.g. units.0.ssm.environment=prod")

	return command
}

func runSynth(opts *SynthOptions) error {
	config, err := inherit.LoadFile(opts.ConfigFile)
	if err != nil {
		return err
	}

	if config, err = applyOverrides(config, opts.Overrides); err != nil {
		return err
	}

	defer jsii.Close()

	var appProps *awscdk.AppProps
	if opts.OutDir != "" {
		appProps = &awscdk.AppProps{Outdir: jsii.String(opts.OutDir)}
	}
	app := awscdk.NewApp(appProps)

	units, err := unitsFromConfig(config)
	if err != nil {
		return err
	}
	if len(units) == 0 {
		return fmt.Errorf("configuration %s describes no units", opts.ConfigFile)
	}

	for _, unit := range units {
		record, err := synthesizeUnit(app, unit)
		if err != nil {
			return fmt.Errorf("unit %s: %w", unit.ID, err)
		}

		if !opts.Quiet {
			summary, err := renderer.RenderExportRecord(unit.ID, record)
			if err != nil {
				return err
			}
			fmt.Print(summary)
		}
	}

	app.Synth(nil)
	display.Success(fmt.Sprintf("Synthesized %d units.", len(units)))
	return nil
}

type unit struct {
	ID     string
	Type   string
	Name   string
	Config []byte
}

// unitsFromConfig flattens the "units" list of the resolved document.
// Each unit entry is itself a complete unit configuration; inheritance
// splices have already been resolved by the loader.
func unitsFromConfig(config map[string]any) ([]unit, error) {
	raw, ok := config["units"]
	if !ok {
		return nil, nil
	}

	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("configuration key %q must be a list of unit documents", "units")
	}

	units := make([]unit, 0, len(list))
	for i, entry := range list {
		doc, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("unit %d must be a mapping", i)
		}

		u := unit{
			ID:   stringField(doc, "id"),
			Type: stringField(doc, "type"),
			Name: stringField(doc, "name"),
		}
		if u.Type == "" {
			return nil, fmt.Errorf("unit %d is missing the %q key", i, "type")
		}
		if u.ID == "" {
			u.ID = u.Type
		}

		encoded, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("unit %s: %w", u.ID, err)
		}
		u.Config = encoded

		units = append(units, u)
	}

	return units, nil
}

func synthesizeUnit(app awscdk.App, u unit) (map[string]string, error) {
	switch u.Type {
	case "network":
		_, record, err := network.NewStack(app, u.ID, &network.StackProps{Config: u.Config, Name: u.Name})
		return record, err
	case "database":
		_, record, err := database.NewStack(app, u.ID, &database.StackProps{Config: u.Config, Name: u.Name})
		return record, err
	default:
		return nil, fmt.Errorf("unknown unit type %q", u.Type)
	}
}

func stringField(doc map[string]any, key string) string {
	value, _ := doc[key].(string)
	return value
}

// applyOverrides sets path=value pairs from --set into the resolved
// document. A value that parses as JSON is spliced raw, anything else is
// set as a string.
func applyOverrides(config map[string]any, overrides []string) (map[string]any, error) {
	if len(overrides) == 0 {
		return config, nil
	}

	encoded, err := json.Marshal(config)
	if err != nil {
		return nil, err
	}

	for _, override := range overrides {
		path, value, found := strings.Cut(override, "=")
		if !found || path == "" {
			return nil, fmt.Errorf("override %q must have the form path=value", override)
		}

		if json.Valid([]byte(value)) {
			encoded, err = sjson.SetRawBytes(encoded, path, []byte(value))
		} else {
			encoded, err = sjson.SetBytes(encoded, path, value)
		}
		if err != nil {
			return nil, fmt.Errorf("override %q: %w", override, err)
		}
	}

	var out map[string]any
	if err := json.Unmarshal(encoded, &out); err != nil {
		return nil, err
	}
	return out, nil
}
