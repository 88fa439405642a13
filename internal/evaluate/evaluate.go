// Package evaluate turns engine findings into the process outcome.
package evaluate

import (
	"fmt"
	"sort"

	"lintgate/internal/types"
)

const (
	ExitOK      = 0
	ExitFailure = 1
)

// Evaluate tallies findings and applies the warnings budget. A nil budget
// means warnings never fail the run; a warning count equal to the budget passes.
func Evaluate(findings []types.Finding, maxWarnings *int) types.Outcome {
	var outcome types.Outcome
	for _, f := range findings {
		if f.Severity == types.SeverityWarning {
			outcome.WarningCount++
		} else {
			outcome.ErrorCount++
		}
	}

	switch {
	case outcome.ErrorCount > 0:
		outcome.ExitCode = ExitFailure
	case ExceedsBudget(outcome.WarningCount, maxWarnings):
		outcome.ExitCode = ExitFailure
	default:
		outcome.ExitCode = ExitOK
	}
	return outcome
}

// ExceedsBudget reports whether warnings strictly exceed maxWarnings.
func ExceedsBudget(warnings int, maxWarnings *int) bool {
	return maxWarnings != nil && warnings > *maxWarnings
}

// Summary returns extra console lines for outcomes the engine report does
// not explain on its own. Only a blown warnings budget needs one.
func Summary(outcome types.Outcome, maxWarnings *int) []string {
	if outcome.ErrorCount == 0 && ExceedsBudget(outcome.WarningCount, maxWarnings) {
		return []string{fmt.Sprintf("ESLint found too many warnings (maximum: %d).", *maxWarnings)}
	}
	return nil
}

// ByRule counts findings per rule, most frequent first and then by name.
func ByRule(findings []types.Finding) []types.RuleStats {
	index := make(map[string]int)
	var stats []types.RuleStats
	for _, f := range findings {
		rule := f.Rule()
		i, ok := index[rule]
		if !ok {
			i = len(stats)
			index[rule] = i
			stats = append(stats, types.RuleStats{Rule: rule})
		}
		if f.Severity == types.SeverityWarning {
			stats[i].Warnings++
		} else {
			stats[i].Errors++
		}
	}

	sort.SliceStable(stats, func(a, b int) bool {
		if stats[a].Count() != stats[b].Count() {
			return stats[a].Count() > stats[b].Count()
		}
		return stats[a].Rule < stats[b].Rule
	})
	return stats
}
