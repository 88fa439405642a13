package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the tool settings. Project lint overrides live in package.json,
// not here.
type Config struct {
	Engine         []string      `yaml:"engine"`
	DefaultTargets []string      `yaml:"default-targets"`
	Extensions     []string      `yaml:"extensions"`
	Timeout        time.Duration `yaml:"timeout"`
	PluginsDir     string        `yaml:"plugins-dir"`
	LogLevel       string        `yaml:"log-level"`
	Color          string        `yaml:"color"`

	// Path is the file the settings were read from, empty for defaults.
	Path string `yaml:"-"`
}

// ConfigFiles are looked up in the working directory, first match wins.
var ConfigFiles = []string{
	".lintgate.yaml",
	".lintgate.yml",
	"lintgate.yaml",
}

const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

func NewConfig() *Config {
	return &Config{
		Engine:         []string{"npx", "eslint"},
		DefaultTargets: []string{"src", "test"},
		Extensions:     []string{".ts", ".tsx", ".js", ".jsx"},
		Timeout:        2 * time.Minute,
		PluginsDir:     "",
		LogLevel:       "warn",
		Color:          ColorAuto,
	}
}

// LoadConfig reads the first config file found in dir, or returns defaults.
func LoadConfig(dir string) (*Config, error) {
	for _, name := range ConfigFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			slog.Info("Using config file", slog.String("path", path))
			return LoadConfigFromFile(path)
		}
	}
	return NewConfig(), nil
}

func LoadConfigFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s", filename)
		}
		return nil, fmt.Errorf("reading config file %s: %w", filename, err)
	}

	config := NewConfig()
	if err := parseConfig(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", filename, err)
	}
	config.Path = filename
	return config, nil
}

func parseConfig(data []byte, config *Config) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return config.validate()
}

func (c *Config) validate() error {
	if len(c.Engine) == 0 || strings.TrimSpace(c.Engine[0]) == "" {
		return errors.New("engine must name a command")
	}
	if len(c.DefaultTargets) == 0 {
		return errors.New("default-targets must not be empty")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("invalid timeout value: %s", c.Timeout)
	}
	for i, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			c.Extensions[i] = "." + ext
		}
	}
	switch c.Color {
	case "", ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color value: %s", c.Color)
	}
	return nil
}

// PluginsRoot returns the directory whose node_modules holds the baseline
// shareable configs. It falls back to projectDir.
func (c *Config) PluginsRoot(projectDir string) string {
	if c.PluginsDir == "" {
		return projectDir
	}
	if filepath.IsAbs(c.PluginsDir) {
		return c.PluginsDir
	}
	return filepath.Join(projectDir, c.PluginsDir)
}

func GenerateConfigFile(filename string) error {
	if filename == "" {
		filename = ConfigFiles[0]
	}

	content := `# lintgate configuration
# Lint rules belong in the "eslint" key of package.json; this file tunes the tool itself.

# Command used to run ESLint. Arguments are appended after it.
engine: ["npx", "eslint"]

# Linted when "lintgate lint" is called without paths.
default-targets: ["src", "test"]

# File extensions ESLint checks inside directories.
extensions: [".ts", ".tsx", ".js", ".jsx"]

# Abort the ESLint run after this long.
timeout: 2m

# Directory whose node_modules contains the baseline configs (defaults to the project root).
plugins-dir: ""

# debug | info | warn | error
log-level: warn

# auto | always | never
color: auto
`

	return os.WriteFile(filename, []byte(content), 0644)
}

func (c *Config) PrintSummary(w io.Writer) {
	source := c.Path
	if source == "" {
		source = "built-in defaults"
	}
	fmt.Fprintf(w, "Configuration (%s):\n", source)
	fmt.Fprintf(w, "  • Engine: %s\n", strings.Join(c.Engine, " "))
	fmt.Fprintf(w, "  • Default targets: %s\n", strings.Join(c.DefaultTargets, " "))
	fmt.Fprintf(w, "  • Extensions: %s\n", strings.Join(c.Extensions, ","))
	fmt.Fprintf(w, "  • Timeout: %s\n", c.Timeout)
	fmt.Fprintf(w, "  • Log level: %s\n", c.LogLevel)
	fmt.Fprintf(w, "  • Color: %s\n", c.Color)

	if c.PluginsDir != "" {
		fmt.Fprintf(w, "  • Plugins dir: %s\n", c.PluginsDir)
	}
}
