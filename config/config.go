// SPDX-FileCopyrightText: Copyright 2026 oauth-guardian authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/asg5704/oauth-guardian-sub001/cel"
	validate "github.com/asg5704/oauth-guardian-sub001/validation/http"
)

// DefaultTimeoutMillis is applied when the configuration omits a timeout.
const DefaultTimeoutMillis = 10000

// DefaultUserAgent identifies audit requests when none is configured.
const DefaultUserAgent = "oauth-guardian/1.0"

// Config is the resolved configuration object consumed by the runner and
// checks. Instances are produced by Load/Parse after schema validation; the
// engine treats them as read-only.
type Config struct {
	// Target is the audit target URL.
	Target string `yaml:"target" json:"target"`

	// OAuth, NIST, and OWASP map check ids in the respective category to a
	// toggle: false disables the check, "error"/"warning" force the result
	// status for negative findings.
	OAuth CategoryToggles `yaml:"oauth,omitempty" json:"oauth,omitempty"`
	NIST  CategoryToggles `yaml:"nist,omitempty" json:"nist,omitempty"`
	OWASP CategoryToggles `yaml:"owasp,omitempty" json:"owasp,omitempty"`

	// Checks filters which registered checks run.
	Checks ChecksConfig `yaml:"checks,omitempty" json:"checks,omitempty"`

	// Reporting controls the report payload handed to renderers.
	Reporting ReportingConfig `yaml:"reporting,omitempty" json:"reporting,omitempty"`

	// RedirectURIs lists client redirect URIs to validate against RFC 8252.
	RedirectURIs []string `yaml:"redirectUris,omitempty" json:"redirectUris,omitempty"`

	// Custom declares CEL-based custom checks.
	Custom []CustomCheck `yaml:"custom,omitempty" json:"custom,omitempty"`

	// Timeout is the per-request timeout in milliseconds.
	Timeout int `yaml:"timeout,omitempty" json:"timeout,omitempty"`

	// UserAgent overrides the User-Agent header on audit requests.
	UserAgent string `yaml:"userAgent,omitempty" json:"userAgent,omitempty"`

	// Headers are extra headers sent with every audit request.
	Headers map[string]string `yaml:"headers,omitempty" json:"headers,omitempty"`

	// Verbose enables debug logging.
	Verbose bool `yaml:"verbose,omitempty" json:"verbose,omitempty"`

	// PluginsDir is where the CLI collaborator loads user-supplied checks from.
	PluginsDir string `yaml:"pluginsDir,omitempty" json:"pluginsDir,omitempty"`
}

// ChecksConfig filters the registered check set.
type ChecksConfig struct {
	// Include, when non-empty, allows only the listed check ids.
	Include []string `yaml:"include,omitempty" json:"include,omitempty"`
	// Exclude removes the listed check ids after Include is applied.
	Exclude []string `yaml:"exclude,omitempty" json:"exclude,omitempty"`
	// Categories, when non-empty, allows only the listed categories.
	Categories []string `yaml:"categories,omitempty" json:"categories,omitempty"`
}

// ReportingConfig controls the report payload.
type ReportingConfig struct {
	// Format is one of json, html, markdown, csv, sarif, terminal.
	Format string `yaml:"format,omitempty" json:"format,omitempty"`
	// Output is the report destination path; empty means stdout.
	Output string `yaml:"output,omitempty" json:"output,omitempty"`
	// FailOn is the severity threshold at which FAIL results fail the run.
	FailOn string `yaml:"failOn,omitempty" json:"failOn,omitempty"`
	// FailOnError opts ERROR results into the failure computation.
	FailOnError bool `yaml:"failOnError,omitempty" json:"failOnError,omitempty"`
	// IncludeRemediation keeps remediation text in rendered reports.
	IncludeRemediation bool `yaml:"includeRemediation,omitempty" json:"includeRemediation,omitempty"`
	// IncludeMetadata keeps evidence bags in rendered reports.
	IncludeMetadata bool `yaml:"includeMetadata,omitempty" json:"includeMetadata,omitempty"`
	// IncludeTimestamp keeps per-result timestamps in rendered reports.
	IncludeTimestamp bool `yaml:"includeTimestamp,omitempty" json:"includeTimestamp,omitempty"`
}

// CustomCheck declares one CEL-based check built from configuration. The
// expression is evaluated against the discovered metadata document; true
// passes, false fails at the declared severity.
type CustomCheck struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name,omitempty" json:"name,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Severity    string `yaml:"severity,omitempty" json:"severity,omitempty"`
	Expression  string `yaml:"expression" json:"expression"`
	Remediation string `yaml:"remediation,omitempty" json:"remediation,omitempty"`
}

// DefaultPath returns the conventional config file location under the
// user's XDG config directory.
func DefaultPath() (string, error) {
	return xdg.ConfigFile("oauth-guardian/config.yaml")
}

// Load reads, schema-validates, and parses a configuration file. YAML and
// JSON are both accepted (JSON is a YAML subset).
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse schema-validates and decodes raw configuration bytes. Validation is
// fail-fast: every violation is collected into one ValidationError with
// path-qualified messages, and no partially-valid Config is returned.
func Parse(data []byte) (*Config, error) {
	if err := validateSchema(data); err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.validateSemantics(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults fills zero values that have documented defaults.
func (c *Config) applyDefaults() {
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeoutMillis
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.Reporting.Format == "" {
		c.Reporting.Format = "terminal"
	}
	if c.Reporting.FailOn == "" {
		c.Reporting.FailOn = "high"
	}
}

// validateSemantics applies the constraints the JSON schema cannot express:
// target URL shape, header token validity, and custom expression
// compilability.
func (c *Config) validateSemantics() error {
	var msgs []string

	if err := validate.ValidateTargetURL(c.Target); err != nil {
		msgs = append(msgs, fmt.Sprintf("target: %s", err))
	}

	for name, value := range c.Headers {
		if err := validate.ValidateHeaderName(name); err != nil {
			msgs = append(msgs, fmt.Sprintf("headers.%s: %s", name, err))
		}
		if err := validate.ValidateHeaderValue(value); err != nil {
			msgs = append(msgs, fmt.Sprintf("headers.%s: %s", name, err))
		}
	}

	engine := cel.NewMetadataEngine()
	seen := make(map[string]bool)
	for i, cc := range c.Custom {
		if seen[cc.ID] {
			msgs = append(msgs, fmt.Sprintf("custom.%d.id: duplicate check id %q", i, cc.ID))
		}
		seen[cc.ID] = true
		if err := engine.Check(cc.Expression); err != nil {
			msgs = append(msgs, fmt.Sprintf("custom.%d.expression: %s", i, err))
		}
	}

	if len(msgs) > 0 {
		return &ValidationError{Messages: msgs}
	}
	return nil
}

// IsDebug reports whether verbose logging is enabled. The logger package
// consumes it as a DebugProvider.
func (c *Config) IsDebug() bool {
	return c.Verbose
}

// TimeoutDuration converts the millisecond timeout into a time.Duration.
func (c *Config) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Millisecond
}
