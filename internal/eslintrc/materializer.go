// Package eslintrc builds the effective ESLint configuration from the
// built-in baselines and the project's package.json overrides, and persists
// it as .eslintrc.js.
//
// Baseline shareable configs are resolved to absolute files for the engine
// run only. The persisted file references every configuration by portable
// identifier, so it keeps working in another checkout.
package eslintrc

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/sajari/fuzzy"

	"lintgate/internal/project"
	"lintgate/internal/types"
)

// FileName is written at the project root by Persist.
const FileName = ".eslintrc.js"

var (
	ErrNonPortableExtends = errors.New("extends entry is not a portable identifier")
	ErrPersist            = errors.New("cannot write eslint config")
)

type Materializer struct {
	baselines Baselines
	resolver  Resolver
	rules     *fuzzy.Model
}

type Option func(*Materializer)

// WithResolver sets how baseline identifiers are resolved for engine runs.
func WithResolver(r Resolver) Option {
	return func(m *Materializer) {
		m.resolver = r
	}
}

func NewMaterializer(baselines Baselines, opts ...Option) *Materializer {
	m := &Materializer{
		baselines: baselines,
		resolver:  NodeModulesResolver{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Materialize layers the baselines and the manifest's overrides. Rules are
// override-wins by name; extends is baseline then project, duplicates kept.
func (m *Materializer) Materialize(manifest *project.Manifest) types.LintConfig {
	if manifest == nil {
		manifest = &project.Manifest{}
	}
	cfg := m.baselines.Language.config()
	if m.baselines.UIPackage != "" && manifest.DependsOn(m.baselines.UIPackage) {
		ui := m.baselines.UI.config()
		cfg.Extends = append(cfg.Extends, ui.Extends...)
		for name, setting := range ui.Rules {
			cfg.Rules[name] = setting
		}
		slog.Debug("UI dialect enabled", slog.String("baseline", m.baselines.UI.Name))
	}

	overrides := manifest.LintOverrides()
	cfg.Extends = append(cfg.Extends, overrides.Extends...)
	for _, name := range sortedKeys(overrides.Rules) {
		if _, ok := cfg.Rules[name]; !ok {
			m.logUnknownRule(name)
		}
		cfg.Rules[name] = overrides.Rules[name]
	}
	return cfg
}

// ForEngine returns a copy of cfg whose resolvable extends entries point at
// absolute files. The result must never be persisted.
func (m *Materializer) ForEngine(cfg types.LintConfig) types.LintConfig {
	out := cfg.Clone()
	for i, id := range out.Extends {
		if path, ok := m.resolver.Resolve(id); ok {
			out.Extends[i] = path
		}
	}
	return out
}

// Persist writes cfg to dir/.eslintrc.js, replacing any existing file.
// Every extends entry is made portable first; nothing is written if one
// cannot be.
func (m *Materializer) Persist(dir string, cfg types.LintConfig) (string, error) {
	portable, err := PortableConfig(cfg)
	if err != nil {
		return "", err
	}

	data, err := Render(portable)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("%w %s: %w", ErrPersist, path, err)
	}
	slog.Debug("ESLint config written",
		slog.String("path", path),
		slog.Int("extends", len(portable.Extends)),
		slog.Int("rules", len(portable.Rules)),
	)
	return path, nil
}

// PortableConfig returns a copy of cfg with every extends entry passed through Portable.
func PortableConfig(cfg types.LintConfig) (types.LintConfig, error) {
	out := cfg.Clone()
	for i, id := range out.Extends {
		portable, err := Portable(id)
		if err != nil {
			return types.LintConfig{}, err
		}
		if portable != id {
			slog.Debug("Rewrote extends entry", slog.String("from", id), slog.String("to", portable))
		}
		out.Extends[i] = portable
	}
	return out, nil
}

// Render encodes cfg as a CommonJS module ESLint can load directly.
func Render(cfg types.LintConfig) ([]byte, error) {
	body, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding eslint config: %w", err)
	}
	out := []byte("module.exports = ")
	out = append(out, body...)
	out = append(out, ";\n"...)
	return out, nil
}

// WriteTemp writes cfg as JSON to a hidden temporary file in dir for
// --config and returns its absolute path. ESLint resolves the file's extends
// relative to its location, so dir should be the project root.
func WriteTemp(dir string, cfg types.LintConfig) (string, error) {
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, ".lintgate-*.json")
	if err != nil {
		return "", fmt.Errorf("creating temp config: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(cfg); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("writing temp config: %w", err)
	}

	abs, err := filepath.Abs(f.Name())
	if err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("resolving temp config: %w", err)
	}
	return abs, nil
}

func (m *Materializer) logUnknownRule(name string) {
	if m.rules == nil {
		m.rules = fuzzy.NewModel()
		m.rules.SetThreshold(1)
		m.rules.SetDepth(2)
		words := append([]string{}, knownRules...)
		words = append(words, sortedKeys(m.baselines.Language.Rules)...)
		words = append(words, sortedKeys(m.baselines.UI.Rules)...)
		m.rules.Train(words)
	}

	attrs := []any{slog.String("rule", name)}
	if suggestions := m.rules.Suggestions(name, false); len(suggestions) > 0 && suggestions[0] != name {
		attrs = append(attrs, slog.String("did_you_mean", suggestions[0]))
	}
	slog.Debug("Override for rule outside the baseline", attrs...)
}

func sortedKeys(rules map[string]types.RuleSetting) []string {
	keys := make([]string, 0, len(rules))
	for k := range rules {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
