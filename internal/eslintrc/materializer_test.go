package eslintrc

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lintgate/internal/project"
	"lintgate/internal/types"
)

// stubResolver resolves every non-prefixed id to an absolute path, like a
// tool install with all shareable configs present.
type stubResolver struct{ root string }

func (s stubResolver) Resolve(id string) (string, bool) {
	if strings.HasPrefix(id, "eslint:") || strings.HasPrefix(id, "plugin:") {
		return "", false
	}
	return filepath.Join(s.root, "node_modules", "eslint-config-"+id, "index.js"), true
}

func manifestWith(overrides *project.Overrides, deps map[string]string) *project.Manifest {
	return &project.Manifest{ESLint: overrides, Dependencies: deps}
}

// readPersisted loads the object literal back out of .eslintrc.js.
func readPersisted(t *testing.T, path string) types.LintConfig {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	body := strings.TrimPrefix(string(data), "module.exports = ")
	body = strings.TrimSuffix(strings.TrimSpace(body), ";")

	var cfg types.LintConfig
	require.NoError(t, json.Unmarshal([]byte(body), &cfg))
	return cfg
}

func TestMaterialize_BaselineOnly(t *testing.T) {
	m := NewMaterializer(DefaultBaselines())

	cfg := m.Materialize(&project.Manifest{})

	assert.Equal(t, TypeScriptBaseline().Extends, cfg.Extends)
	assert.Equal(t, "error", cfg.Rules["prettier/prettier"])
	assert.NotContains(t, cfg.Extends, "plugin:react/recommended")
}

func TestMaterialize_NilManifest(t *testing.T) {
	cfg := NewMaterializer(DefaultBaselines()).Materialize(nil)
	assert.Equal(t, TypeScriptBaseline().Extends, cfg.Extends)
}

func TestMaterialize_ReactDialect(t *testing.T) {
	m := NewMaterializer(DefaultBaselines())

	cfg := m.Materialize(manifestWith(nil, map[string]string{"react": "^18.2.0"}))

	assert.Contains(t, cfg.Extends, "plugin:react/recommended")
	assert.Contains(t, cfg.Extends, "plugin:react-hooks/recommended")
	assert.Equal(t, "off", cfg.Rules["react/react-in-jsx-scope"])
}

func TestMaterialize_OverridesWin(t *testing.T) {
	m := NewMaterializer(DefaultBaselines())

	cfg := m.Materialize(manifestWith(&project.Overrides{
		Extends: project.StringList{"prettier", "plugin:jest/recommended"},
		Rules: map[string]types.RuleSetting{
			"@typescript-eslint/no-unused-vars": "error",
			"no-console":                        "warn",
		},
	}, nil))

	// Baseline identifiers first, project identifiers after, duplicates preserved.
	want := append(TypeScriptBaseline().Extends, "prettier", "plugin:jest/recommended")
	assert.Equal(t, want, cfg.Extends)

	assert.Equal(t, "error", cfg.Rules["@typescript-eslint/no-unused-vars"])
	assert.Equal(t, "warn", cfg.Rules["no-console"])
	// Untouched baseline rules stay active.
	assert.Equal(t, "error", cfg.Rules["prettier/prettier"])
}

func TestMaterialize_DoesNotMutateBaselines(t *testing.T) {
	baselines := DefaultBaselines()
	m := NewMaterializer(baselines)

	cfg := m.Materialize(manifestWith(&project.Overrides{
		Rules: map[string]types.RuleSetting{"prettier/prettier": "off"},
	}, nil))
	cfg.Extends[0] = "changed"

	assert.Equal(t, "error", baselines.Language.Rules["prettier/prettier"])
	assert.Equal(t, "eslint:recommended", baselines.Language.Extends[0])

	again := m.Materialize(&project.Manifest{})
	assert.Equal(t, "error", again.Rules["prettier/prettier"])
}

func TestForEngine_ResolvesWithoutTouchingInput(t *testing.T) {
	root := t.TempDir()
	m := NewMaterializer(DefaultBaselines(), WithResolver(stubResolver{root: root}))

	cfg := m.Materialize(&project.Manifest{})
	run := m.ForEngine(cfg)

	assert.Equal(t, filepath.Join(root, "node_modules", "eslint-config-prettier", "index.js"), run.Extends[2])
	assert.Equal(t, "plugin:prettier/recommended", run.Extends[3])
	assert.Equal(t, "prettier", cfg.Extends[2], "materialized config keeps identifiers")
}

func TestPersist_WritesPortableExtends(t *testing.T) {
	dir := t.TempDir()
	m := NewMaterializer(DefaultBaselines(), WithResolver(stubResolver{root: dir}))

	cfg := m.Materialize(manifestWith(&project.Overrides{
		Extends: project.StringList{"airbnb-typescript"},
		Rules:   map[string]types.RuleSetting{"max-len": []any{"warn", map[string]any{"code": 100}}},
	}, map[string]string{"react": "18"}))
	// Resolving for the run must not leak into what gets persisted.
	_ = m.ForEngine(cfg)

	path, err := m.Persist(dir, cfg)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, FileName), path)

	got := readPersisted(t, path)
	require.NotEmpty(t, got.Extends)
	for _, id := range got.Extends {
		assert.True(t, IsPortable(id), "non-portable extends entry %q", id)
		assert.NotContains(t, id, dir)
	}
	assert.Contains(t, got.Extends, "plugin:react/recommended")
	assert.Contains(t, got.Extends, "airbnb-typescript")
	assert.Equal(t, "error", got.Rules["prettier/prettier"])
	assert.Len(t, got.Rules["max-len"], 2)
}

func TestPersist_Overwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte("module.exports = { extends: ['/abs/path'] };\n"), 0644))

	m := NewMaterializer(DefaultBaselines())
	_, err := m.Persist(dir, m.Materialize(&project.Manifest{}))
	require.NoError(t, err)

	got := readPersisted(t, path)
	assert.Equal(t, TypeScriptBaseline().Extends, got.Extends)
}

func TestPersist_RewritesNodeModulesPaths(t *testing.T) {
	dir := t.TempDir()
	m := NewMaterializer(DefaultBaselines())

	cfg := types.LintConfig{
		Extends: []string{
			"/opt/lintgate/node_modules/eslint-config-prettier/index.js",
			"./node_modules/@acme/eslint-config-web/index.js",
			"./node_modules/@acme/eslint-config/react.js",
		},
		Rules: map[string]types.RuleSetting{},
	}

	path, err := m.Persist(dir, cfg)
	require.NoError(t, err)

	got := readPersisted(t, path)
	assert.Equal(t, []string{"eslint-config-prettier", "@acme/eslint-config-web", "@acme/eslint-config/react"}, got.Extends)
}

func TestPersist_RejectsNonConfigPackages(t *testing.T) {
	dir := t.TempDir()
	m := NewMaterializer(DefaultBaselines())

	cfg := types.LintConfig{
		Extends: []string{"/x/node_modules/eslint-plugin-react/configs/recommended.js"},
		Rules:   map[string]types.RuleSetting{},
	}

	_, err := m.Persist(dir, cfg)
	assert.True(t, errors.Is(err, ErrNonPortableExtends))
	assert.NoFileExists(t, filepath.Join(dir, FileName))
}

func TestPersist_RejectsLocalPaths(t *testing.T) {
	dir := t.TempDir()
	m := NewMaterializer(DefaultBaselines())

	cfg := m.Materialize(manifestWith(&project.Overrides{
		Extends: project.StringList{"./config/eslint-base.js"},
	}, nil))

	_, err := m.Persist(dir, cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNonPortableExtends))

	_, statErr := os.Stat(filepath.Join(dir, FileName))
	assert.True(t, os.IsNotExist(statErr), "nothing must be written on rejection")
}

func TestPersist_WriteFailure(t *testing.T) {
	if runtime.GOOS == "windows" || os.Getuid() == 0 {
		t.Skip("permission bits are not enforced")
	}
	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0555))
	t.Cleanup(func() { os.Chmod(dir, 0755) })

	m := NewMaterializer(DefaultBaselines())
	_, err := m.Persist(dir, m.Materialize(&project.Manifest{}))

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPersist))
}

func TestRender(t *testing.T) {
	data, err := Render(types.LintConfig{Extends: []string{"prettier"}})
	require.NoError(t, err)

	out := string(data)
	assert.True(t, strings.HasPrefix(out, "module.exports = {"))
	assert.True(t, strings.HasSuffix(out, "};\n"))
	assert.Contains(t, out, `"prettier"`)
	assert.NotContains(t, out, "rules", "empty rules are omitted")
}

func TestWriteTemp(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteTemp(dir, types.LintConfig{Extends: []string{"/abs/eslint-config-x/index.js"}})
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), ".lintgate-"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var cfg types.LintConfig
	require.NoError(t, json.Unmarshal(data, &cfg))
	assert.Equal(t, []string{"/abs/eslint-config-x/index.js"}, cfg.Extends)
}
