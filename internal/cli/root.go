// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package cli

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/opsfabric/cirrus"
	"github.com/opsfabric/cirrus/internal/cli/cmd"
	"github.com/opsfabric/cirrus/internal/cli/display"
	"github.com/opsfabric/cirrus/internal/cli/lint"
	"github.com/opsfabric/cirrus/internal/cli/synth"
)

func longDescription() string {
	return display.Tool + ": " + display.Green("cross-stack parameter directory and synthesis driver for CDK deployment units")
}

var rootCmd = &cobra.Command{
	Use:     display.Tool,
	Short:   display.Tool + " CLI",
	Long:    longDescription(),
	Version: cirrus.Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Keep slog off the terminal unless a command reroutes it.
		devNull, _ := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
		slog.SetDefault(slog.New(slog.NewTextHandler(devNull, nil)))
	},
}

var longestFlagName int

func init() {
	cobra.AddTemplateFunc("optionsUsage", func(f *pflag.FlagSet) []string {
		var usage []string

		f.VisitAll(func(flag *pflag.Flag) {
			length := len(flag.Name)
			if flag.Shorthand != "" {
				length += 6
			}
			if length > longestFlagName {
				longestFlagName = length
			}
		})

		longestFlagName += 10

		f.VisitAll(func(flag *pflag.Flag) {
			s := fmt.Sprintf("      --%s ", flag.Name)
			if flag.Shorthand != "" {
				s = fmt.Sprintf("  -%s, --%s ", flag.Shorthand, flag.Name)
			}

			s = fmt.Sprintf("%-*s%s", longestFlagName, s, flag.Usage)
			if flag.DefValue != "" &&
				flag.DefValue != "[]" &&
				flag.Name != "help" &&
				flag.Name != "version" {
				s += display.Grey(fmt.Sprintf(" [default: %q]", flag.DefValue))
			}

			usage = append(usage, s)
		})
		return usage
	})

	hp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		display.PrintBanner()
		hp(cmd, args)
	})

	rootCmd.SetHelpCommand(&cobra.Command{
		Hidden: true,
	})

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.SetUsageTemplate(cmd.RootCmdUsageTemplate)

	rootCmd.AddCommand(synth.SynthCmd())
	rootCmd.AddCommand(lint.LintCmd())
	for _, sub := range rootCmd.Commands() {
		sub.SetUsageTemplate(cmd.SimpleCmdUsageTemplate)
		sub.Annotations = map[string]string{"args": strings.TrimSpace(strings.TrimPrefix(sub.Use, sub.Name()))}
	}

	rootCmd.PersistentFlags().BoolP("help", "h", false, "Show help for "+rootCmd.Use)
	for _, sub := range rootCmd.Commands() {
		sub.PersistentFlags().BoolP("help", "h", false, fmt.Sprintf("Show help for %s command", sub.Name()))
	}

	rootCmd.PersistentFlags().BoolP("version", "v", false, "Show "+rootCmd.Use+" version information")
	rootCmd.SetVersionTemplate(fmt.Sprintf("cirrus version: %s\ngo version: %s\n", cirrus.Version, runtime.Version()))
}

func Start() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(display.Red("Error: " + err.Error()))
		os.Exit(1)
	}
}
