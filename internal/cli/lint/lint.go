// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package lint

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/opsfabric/cirrus/internal/cli/display"
	"github.com/opsfabric/cirrus/internal/cli/renderer"
	"github.com/opsfabric/cirrus/internal/directory"
	"github.com/opsfabric/cirrus/internal/inherit"
)

func LintCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "lint <config-file>",
		Short: "Check the directory paths of a configuration document without synthesizing",
		Args:  cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			return runLint(args[0])
		},
	}

	return command
}

func runLint(configFile string) error {
	config, err := inherit.LoadFile(configFile)
	if err != nil {
		return err
	}

	units, _ := config["units"].([]any)
	if len(units) == 0 {
		// A single-unit document has no "units" list; lint it directly.
		units = []any{config}
	}

	total := 0
	for i, entry := range units {
		doc, ok := entry.(map[string]any)
		if !ok {
			return fmt.Errorf("unit %d must be a mapping", i)
		}

		id, _ := doc["id"].(string)
		typeTag, _ := doc["type"].(string)
		name, _ := doc["name"].(string)
		if id == "" {
			id = typeTag
		}
		if typeTag == "" {
			return fmt.Errorf("unit %d is missing the %q key", i, "type")
		}
		if name == "" {
			name = "main"
		}

		raw, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("unit %s: %w", id, err)
		}

		dir, err := directory.New(nil, raw, typeTag, name, directory.WithStore(directory.NewMemoryStore()))
		if err != nil {
			return fmt.Errorf("unit %s: %w", id, err)
		}

		findings := dir.Lint()
		total += len(findings)

		summary, err := renderer.RenderLintFindings(id, findings)
		if err != nil {
			return err
		}
		fmt.Print(summary)
	}

	if total > 0 {
		return fmt.Errorf("%d lint findings", total)
	}
	display.Success("No lint findings.")
	return nil
}
