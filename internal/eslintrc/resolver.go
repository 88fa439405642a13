package eslintrc

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// Resolver maps a shareable config identifier to an absolute file.
type Resolver interface {
	Resolve(id string) (string, bool)
}

// NodeModulesResolver resolves identifiers the way ESLint names shareable
// configs: "prettier" is eslint-config-prettier, "@scope" is
// @scope/eslint-config and "@scope/x" is @scope/eslint-config-x.
type NodeModulesResolver struct {
	Root string
}

func (r NodeModulesResolver) Resolve(id string) (string, bool) {
	if r.Root == "" || !IsPortable(id) {
		return "", false
	}
	if strings.HasPrefix(id, "eslint:") || strings.HasPrefix(id, "plugin:") {
		return "", false
	}

	pkgDir := filepath.Join(r.Root, "node_modules", filepath.FromSlash(configPackage(id)))
	main := "index.js"
	data, err := os.ReadFile(filepath.Join(pkgDir, "package.json"))
	if err != nil {
		return "", false
	}
	var meta struct {
		Main string `json:"main"`
	}
	if json.Unmarshal(data, &meta) == nil && meta.Main != "" {
		main = meta.Main
	}

	abs, err := filepath.Abs(filepath.Join(pkgDir, filepath.FromSlash(main)))
	if err != nil {
		return "", false
	}
	return abs, true
}

func configPackage(id string) string {
	if strings.HasPrefix(id, "@") {
		scope, name, found := strings.Cut(id, "/")
		switch {
		case !found || name == "":
			return scope + "/eslint-config"
		case strings.HasPrefix(name, "eslint-config"):
			return id
		default:
			return scope + "/eslint-config-" + name
		}
	}
	if strings.HasPrefix(id, "eslint-config-") {
		return id
	}
	return "eslint-config-" + id
}
