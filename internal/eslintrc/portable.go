package eslintrc

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"regexp"
	"slices"
	"strings"
)

var drivePrefix = regexp.MustCompile(`^[A-Za-z]:[\\/]`)

// IsPortable reports whether id names a configuration rather than a location:
// no leading separator, drive letter, or relative-path prefix.
func IsPortable(id string) bool {
	if id == "" || id == "." || id == ".." {
		return false
	}
	if strings.HasPrefix(id, "/") || strings.HasPrefix(id, `\`) || drivePrefix.MatchString(id) {
		return false
	}
	if strings.HasPrefix(id, "node_modules/") || strings.HasPrefix(id, `node_modules\`) {
		return false
	}
	for _, prefix := range []string{"./", "../", `.\`, `..\`} {
		if strings.HasPrefix(id, prefix) {
			return false
		}
	}
	return true
}

// Portable returns id unchanged when it is portable. A path to a file of an
// eslint-config package inside node_modules is rewritten to the package
// name, plus the file's subpath when it is not the package's main file.
// Anything else is rejected with ErrNonPortableExtends.
func Portable(id string) (string, error) {
	if IsPortable(id) {
		return id, nil
	}
	if ref := configFromPath(id); ref != "" {
		return ref, nil
	}
	return "", fmt.Errorf("%w: %q", ErrNonPortableExtends, id)
}

func configFromPath(p string) string {
	slashed := strings.ReplaceAll(p, `\`, "/")
	if strings.HasPrefix(slashed, "node_modules/") {
		slashed = "/" + slashed
	}
	idx := strings.LastIndex(slashed, "/node_modules/")
	if idx < 0 {
		return ""
	}
	parts := strings.Split(slashed[idx+len("/node_modules/"):], "/")

	n := 1
	if strings.HasPrefix(parts[0], "@") {
		n = 2
	}
	if len(parts) < n || parts[n-1] == "" {
		return ""
	}
	pkg := strings.Join(parts[:n], "/")
	if !isConfigPackage(pkg) {
		return ""
	}

	sub := strings.Join(parts[n:], "/")
	if sub == "" {
		return pkg
	}
	if isMainFile(slashed[:idx+len("/node_modules/")+len(pkg)], sub) {
		return pkg
	}
	sub = strings.TrimSuffix(sub, path.Ext(sub))
	if sub == "" {
		return ""
	}
	return pkg + "/" + sub
}

// isConfigPackage reports whether pkg follows ESLint's shareable config
// naming: eslint-config-*, @scope/eslint-config or @scope/eslint-config-*.
func isConfigPackage(pkg string) bool {
	if scope, name, scoped := strings.Cut(pkg, "/"); scoped && strings.HasPrefix(scope, "@") {
		return name == "eslint-config" || strings.HasPrefix(name, "eslint-config-")
	}
	return strings.HasPrefix(pkg, "eslint-config-") && len(pkg) > len("eslint-config-")
}

// isMainFile reports whether sub is what requiring the package at pkgDir
// loads. The package.json "main" field is used when the package is on disk.
func isMainFile(pkgDir, sub string) bool {
	main := "index.js"
	if data, err := os.ReadFile(pkgDir + "/package.json"); err == nil {
		var meta struct {
			Main string `json:"main"`
		}
		if json.Unmarshal(data, &meta) == nil && meta.Main != "" {
			main = meta.Main
		}
	}
	main = path.Clean(strings.TrimPrefix(main, "./"))
	candidates := []string{main}
	if path.Ext(main) == "" {
		candidates = append(candidates, main+".js", main+"/index.js")
	}
	return slices.Contains(candidates, path.Clean(sub))
}
