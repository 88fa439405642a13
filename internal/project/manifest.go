// Package project reads the consumer's package.json: the "eslint" overrides
// and the dependency lists used to pick the baseline dialect.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"lintgate/internal/types"
)

const ManifestFile = "package.json"

// Manifest is the subset of package.json lintgate reads.
type Manifest struct {
	Name             string            `json:"name"`
	Dependencies     map[string]string `json:"dependencies"`
	DevDependencies  map[string]string `json:"devDependencies"`
	PeerDependencies map[string]string `json:"peerDependencies"`
	ESLint           *Overrides        `json:"eslint"`
}

// Overrides is the "eslint" key. Extends accepts a string or a list, like ESLint does.
type Overrides struct {
	Extends StringList                   `json:"extends"`
	Rules   map[string]types.RuleSetting `json:"rules"`
}

type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = StringList{single}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("extends must be a string or a list of strings: %w", err)
	}
	*l = list
	return nil
}

// Load reads dir/package.json. A missing manifest yields an empty Manifest so
// that linting a bare directory still works.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestFile)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Manifest{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &m, nil
}

// DependsOn reports whether pkg appears in any dependency list.
func (m *Manifest) DependsOn(pkg string) bool {
	for _, deps := range []map[string]string{m.Dependencies, m.DevDependencies, m.PeerDependencies} {
		if _, ok := deps[pkg]; ok {
			return true
		}
	}
	return false
}

// LintOverrides returns the project's eslint overrides as a LintConfig.
func (m *Manifest) LintOverrides() types.LintConfig {
	cfg := types.LintConfig{Rules: map[string]types.RuleSetting{}}
	if m.ESLint == nil {
		return cfg
	}
	cfg.Extends = append(cfg.Extends, m.ESLint.Extends...)
	for name, setting := range m.ESLint.Rules {
		cfg.Rules[name] = setting
	}
	return cfg
}
