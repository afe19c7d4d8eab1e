// SPDX-FileCopyrightText: Copyright 2026 oauth-guardian authors
// SPDX-License-Identifier: Apache-2.0

package checks

import (
	"context"
	"fmt"

	"github.com/asg5704/oauth-guardian-sub001/cel"
	"github.com/asg5704/oauth-guardian-sub001/check"
	"github.com/asg5704/oauth-guardian-sub001/config"
)

// CustomCheck is a CEL-expression check built from one `custom` config
// entry. The expression is evaluated against the discovered metadata
// document bound to the `metadata` variable; true passes, false fails at
// the configured severity.
type CustomCheck struct {
	check.Base
	expression  *cel.CompiledExpression
	remediation string
}

// NewCustomCheck compiles one configured custom check. Expressions were
// syntax-checked during config validation; compile failure here still
// returns an error rather than a panic, since plugins may construct checks
// from unvalidated input.
func NewCustomCheck(engine *cel.Engine, cc config.CustomCheck) (*CustomCheck, error) {
	severity := check.SeverityMedium
	if cc.Severity != "" {
		parsed, err := check.ParseSeverity(cc.Severity)
		if err != nil {
			return nil, fmt.Errorf("custom check %q: %w", cc.ID, err)
		}
		severity = parsed
	}

	compiled, err := engine.Compile(cc.Expression)
	if err != nil {
		return nil, fmt.Errorf("custom check %q: %w", cc.ID, err)
	}

	name := cc.Name
	if name == "" {
		name = cc.ID
	}
	description := cc.Description
	if description == "" {
		description = fmt.Sprintf("Custom expression check: %s", cc.Expression)
	}

	return &CustomCheck{
		Base: check.NewBase(
			cc.ID, name, check.CategoryCustom, severity, description,
		),
		expression:  compiled,
		remediation: cc.Remediation,
	}, nil
}

// FromConfig builds every configured custom check with one shared engine.
func FromConfig(cfg *config.Config) ([]check.Check, error) {
	if cfg == nil || len(cfg.Custom) == 0 {
		return nil, nil
	}

	engine := cel.NewMetadataEngine()
	out := make([]check.Check, 0, len(cfg.Custom))
	for _, cc := range cfg.Custom {
		c, err := NewCustomCheck(engine, cc)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Execute implements check.Check.
func (c *CustomCheck) Execute(ctx context.Context, cc *check.Context) *check.Result {
	if r := c.GuardContext(cc); r != nil {
		return r
	}

	res, err := cc.Discovery.Discover(ctx, cc.TargetURL)
	if err != nil {
		return c.Error(err)
	}
	if !res.Success {
		return c.DiscoveryFailedWarning(res)
	}

	doc, err := res.Metadata.AsMap()
	if err != nil {
		return c.Error(fmt.Errorf("rendering metadata document: %w", err))
	}

	ok, err := c.expression.EvaluateBool(map[string]any{cel.MetadataVar: doc})
	if err != nil {
		return c.Error(fmt.Errorf("evaluating expression: %w", err))
	}

	evidence := check.Metadata{"expression": c.expression.Source()}
	if ok {
		return c.Pass("expression evaluated to true", evidence)
	}

	remediation := c.remediation
	if remediation == "" {
		remediation = "Review the configured expression against the provider's metadata document."
	}
	return c.Fail("expression evaluated to false", remediation, evidence)
}
