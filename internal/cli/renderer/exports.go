// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package renderer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/opsfabric/cirrus/internal/cli/display"
)

// RenderExportRecord renders the attribute-to-path record one unit
// published, sorted by attribute so runs diff cleanly.
func RenderExportRecord(unit string, record map[string]string) (string, error) {
	if len(record) == 0 {
		return display.Gold(fmt.Sprintf("No exports published for %s.\n", unit)), nil
	}

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithRowAutoWrap(tw.WrapBreak),
		tablewriter.WithHeaderAutoFormat(tw.Off),
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Settings: tw.Settings{Separators: tw.Separators{BetweenRows: tw.On, ShowHeader: tw.On}},
		})))
	table.Header(display.LightBlue("Attribute"), "Parameter Path")

	attributes := make([]string, 0, len(record))
	for attr := range record {
		attributes = append(attributes, attr)
	}
	sort.Strings(attributes)

	data := make([][]string, len(attributes))
	for i, attr := range attributes {
		data[i] = []string{display.LightBlue(attr), record[attr]}
	}

	if err := table.Bulk(data); err != nil {
		return "", fmt.Errorf("error rendering export record: %v", err)
	}
	if err := table.Render(); err != nil {
		return "", fmt.Errorf("error rendering export record: %v", err)
	}

	summary := fmt.Sprintf("\n%s %d attributes published for %s\n", display.Gold("Summary:"), len(attributes), unit)
	return buf.String() + summary, nil
}

// RenderLintFindings renders pre-flight validation findings, one row per
// finding.
func RenderLintFindings(unit string, findings []error) (string, error) {
	if len(findings) == 0 {
		return display.Green(fmt.Sprintf("Configuration for %s is clean.\n", unit)), nil
	}

	var buf strings.Builder
	table := tablewriter.NewTable(&buf,
		tablewriter.WithHeaderAutoFormat(tw.Off),
		tablewriter.WithRowAutoWrap(tw.WrapBreak),
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Settings: tw.Settings{Separators: tw.Separators{BetweenRows: tw.On, ShowHeader: tw.On}},
		})))
	table.Header(display.LightBlue("#"), "Finding")

	data := make([][]string, len(findings))
	for i, finding := range findings {
		data[i] = []string{display.Red(fmt.Sprintf("%d", i+1)), finding.Error()}
	}

	if err := table.Bulk(data); err != nil {
		return "", fmt.Errorf("error rendering lint findings: %v", err)
	}
	if err := table.Render(); err != nil {
		return "", fmt.Errorf("error rendering lint findings: %v", err)
	}

	summary := fmt.Sprintf("\n%s %d findings for %s\n", display.Gold("Summary:"), len(findings), unit)
	return buf.String() + summary, nil
}
