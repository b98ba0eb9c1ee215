// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package model

import (
	"log/slog"
	"os"
	"regexp"
	"strings"
)

// DefaultPattern is the path pattern used when a unit does not configure one.
const DefaultPattern = "/{organization}/{environment}/{resource_type}/{resource_name}/{attribute}"

// DirectoryConfig is the decoded "ssm" block of a unit's configuration.
// It drives both sides of the cross-unit parameter directory: which
// attributes a unit publishes, which it resolves, and how their paths
// are constructed.
type DirectoryConfig struct {
	Enabled      bool                `json:"enabled"`
	Organization string              `json:"organization"`
	Workload     string              `json:"workload"`
	Environment  string              `json:"environment"`
	Region       string              `json:"region,omitempty"`
	Pattern      string              `json:"pattern,omitempty"`
	AutoExport   *bool               `json:"auto_export,omitempty"`
	AutoImport   *bool               `json:"auto_import,omitempty"`
	Exports      map[string]PathSpec `json:"exports,omitempty"`
	Imports      map[string]PathSpec `json:"imports,omitempty"`
}

// envRefPattern matches the ${ENV_VAR} indirection allowed for the
// environment field so one configuration document travels between stages.
var envRefPattern = regexp.MustCompile(`^\$\{([A-Za-z_][A-Za-z0-9_]*)\}$`)

// ResolvedEnvironment returns the environment name, following a ${ENV_VAR}
// reference through the process environment when one is configured.
func (c *DirectoryConfig) ResolvedEnvironment() string {
	m := envRefPattern.FindStringSubmatch(c.Environment)
	if m == nil {
		return c.Environment
	}

	value := os.Getenv(m[1])
	if value == "" {
		slog.Warn("Environment variable referenced by ssm.environment is not set", "variable", m[1])
	}
	return value
}

// PatternOrDefault returns the configured path pattern, falling back to
// the conventional organization/environment/type/name/attribute layout.
func (c *DirectoryConfig) PatternOrDefault() string {
	if strings.TrimSpace(c.Pattern) != "" {
		return c.Pattern
	}
	return DefaultPattern
}

// AutoExportEnabled defaults to true: a unit opts out of convention-based
// exports, never in.
func (c *DirectoryConfig) AutoExportEnabled() bool {
	return c.AutoExport == nil || *c.AutoExport
}

func (c *DirectoryConfig) AutoImportEnabled() bool {
	return c.AutoImport == nil || *c.AutoImport
}

type LoggingConfig struct {
	FilePath        string
	FileLogLevel    slog.Level
	ConsoleLogLevel slog.Level
}

type SynthConfig struct {
	ConfigFile string
	OutDir     string
	Logging    LoggingConfig
}
