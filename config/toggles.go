// SPDX-FileCopyrightText: Copyright 2026 oauth-guardian authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Override is the per-check resolution of a category toggle.
type Override int

const (
	// OverrideDefault leaves the check's behavior unchanged.
	OverrideDefault Override = iota
	// OverrideDisabled removes the check from the run entirely.
	OverrideDisabled
	// OverrideForcedError promotes the check's WARNING results to FAIL.
	OverrideForcedError
	// OverrideForcedWarning demotes the check's FAIL results to WARNING.
	OverrideForcedWarning
)

// Toggle is one per-check configuration entry: a boolean to enable or
// disable, or the string "error"/"warning" to force the result status for
// negative findings.
type Toggle struct {
	override Override
}

// Override returns the resolved override variant.
func (t Toggle) Override() Override { return t.override }

// UnmarshalYAML decodes `true`, `false`, `"error"`, or `"warning"`.
func (t *Toggle) UnmarshalYAML(value *yaml.Node) error {
	var b bool
	if err := value.Decode(&b); err == nil {
		return t.set(b)
	}
	var s string
	if err := value.Decode(&s); err == nil {
		return t.set(s)
	}
	return fmt.Errorf("check toggle must be a boolean or \"error\"/\"warning\"")
}

// UnmarshalJSON decodes the same shapes as UnmarshalYAML.
func (t *Toggle) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		return t.set(b)
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return t.set(s)
	}
	return fmt.Errorf("check toggle must be a boolean or \"error\"/\"warning\"")
}

// MarshalJSON renders the toggle back into its configuration shape.
func (t Toggle) MarshalJSON() ([]byte, error) {
	switch t.override {
	case OverrideDisabled:
		return json.Marshal(false)
	case OverrideForcedError:
		return json.Marshal("error")
	case OverrideForcedWarning:
		return json.Marshal("warning")
	default:
		return json.Marshal(true)
	}
}

func (t *Toggle) set(v any) error {
	switch val := v.(type) {
	case bool:
		if val {
			t.override = OverrideDefault
		} else {
			t.override = OverrideDisabled
		}
	case string:
		switch val {
		case "error":
			t.override = OverrideForcedError
		case "warning":
			t.override = OverrideForcedWarning
		default:
			return fmt.Errorf("unknown check toggle %q (want \"error\" or \"warning\")", val)
		}
	}
	return nil
}

// CategoryToggles maps check ids within one category to their toggles.
type CategoryToggles map[string]Toggle

// Overrides resolves every category toggle into one effective override
// table keyed by check id. The runner consults it once per run, before any
// check executes.
func (c *Config) Overrides() map[string]Override {
	overrides := make(map[string]Override)
	for _, toggles := range []CategoryToggles{c.OAuth, c.NIST, c.OWASP} {
		for id, toggle := range toggles {
			overrides[id] = toggle.Override()
		}
	}
	return overrides
}
