package types

// Target is a file or directory path submitted for linting.
type Target string

// RuleSetting is an ESLint rule value: a severity ("off", "warn", "error", 0, 1, 2)
// or a list whose first item is the severity followed by rule options.
type RuleSetting any

type LintConfig struct {
	Extends []string               `json:"extends"`
	Rules   map[string]RuleSetting `json:"rules,omitempty"`
}

// Clone returns a copy that shares no slices or maps with c.
func (c LintConfig) Clone() LintConfig {
	clone := LintConfig{
		Extends: make([]string, len(c.Extends)),
		Rules:   make(map[string]RuleSetting, len(c.Rules)),
	}
	copy(clone.Extends, c.Extends)
	for name, setting := range c.Rules {
		clone.Rules[name] = setting
	}
	return clone
}

type Invocation struct {
	Targets []Target
	Config  LintConfig
	// MaxWarnings is nil when no warnings budget applies.
	MaxWarnings    *int
	Fix            bool
	IgnorePatterns []string
}

// TargetStrings returns the targets as plain strings, in order.
func (i Invocation) TargetStrings() []string {
	out := make([]string, len(i.Targets))
	for idx, t := range i.Targets {
		out[idx] = string(t)
	}
	return out
}
