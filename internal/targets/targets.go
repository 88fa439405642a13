package targets

import (
	"fmt"
	"strings"

	"lintgate/internal/types"
)

// Resolution is the outcome of Resolve.
type Resolution struct {
	Targets   []types.Target
	Defaulted bool
}

// Resolve returns args verbatim when any are given, otherwise defaults.
// Existence is not checked here; the engine reports missing files.
func Resolve(args []string, defaults []string) Resolution {
	if len(args) > 0 {
		return Resolution{Targets: toTargets(args)}
	}
	return Resolution{Targets: toTargets(defaults), Defaulted: true}
}

// Notice returns the two advisory lines printed when the targets were defaulted,
// and nothing otherwise.
func Notice(program string, r Resolution) []string {
	if !r.Defaulted {
		return nil
	}
	parts := make([]string, len(r.Targets))
	for i, t := range r.Targets {
		parts[i] = string(t)
	}
	example := "src"
	if len(parts) > 0 {
		example = parts[0]
	}
	return []string{
		fmt.Sprintf("Defaulting to %q", strings.TrimSpace(program+" lint "+strings.Join(parts, " "))),
		fmt.Sprintf(`You can override this in the package.json scripts, like "lint": "%s lint %s otherDir"`, program, example),
	}
}

func toTargets(paths []string) []types.Target {
	out := make([]types.Target, len(paths))
	for i, p := range paths {
		out[i] = types.Target(p)
	}
	return out
}
