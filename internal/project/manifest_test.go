package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFile), []byte(content), 0644))
	return dir
}

func TestLoad_Missing(t *testing.T) {
	m, err := Load(t.TempDir())
	require.NoError(t, err)

	overrides := m.LintOverrides()
	assert.Empty(t, overrides.Extends)
	assert.Empty(t, overrides.Rules)
	assert.False(t, m.DependsOn("react"))
}

func TestLoad_Invalid(t *testing.T) {
	dir := writeManifest(t, `{"name": `)

	_, err := Load(dir)
	assert.ErrorContains(t, err, "parsing")
}

func TestLoad_Overrides(t *testing.T) {
	dir := writeManifest(t, `{
  "name": "widget",
  "scripts": {"lint": "lintgate lint src"},
  "peerDependencies": {"react": "^18.0.0"},
  "eslint": {
    "extends": ["plugin:jest/recommended", "airbnb-typescript"],
    "rules": {
      "no-console": "off",
      "max-len": ["warn", {"code": 100}]
    }
  }
}`)

	m, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "widget", m.Name)
	assert.True(t, m.DependsOn("react"))
	assert.False(t, m.DependsOn("vue"))

	overrides := m.LintOverrides()
	assert.Equal(t, []string{"plugin:jest/recommended", "airbnb-typescript"}, overrides.Extends)
	assert.Equal(t, "off", overrides.Rules["no-console"])
	assert.Len(t, overrides.Rules["max-len"], 2)
}

func TestStringList_SingleString(t *testing.T) {
	dir := writeManifest(t, `{"eslint": {"extends": "prettier"}}`)

	m, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"prettier"}, m.LintOverrides().Extends)
}

func TestStringList_Rejects(t *testing.T) {
	dir := writeManifest(t, `{"eslint": {"extends": 3}}`)

	_, err := Load(dir)
	assert.ErrorContains(t, err, "extends must be a string or a list of strings")
}
