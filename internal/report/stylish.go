// Package report renders ESLint results the way ESLint's "stylish"
// formatter lays them out and writes the machine-readable report file.
package report

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"lintgate/internal/types"
)

var (
	pathStyle    = color.New(color.Underline)
	errorStyle   = color.New(color.FgRed)
	warningStyle = color.New(color.FgYellow)
	ruleStyle    = color.New(color.Faint)
	summaryError = color.New(color.FgRed, color.Bold)
	summaryWarn  = color.New(color.FgYellow, color.Bold)
)

// Stylish renders results as one block per file with problems, followed by
// a problem count. It returns an empty string when there is nothing to report.
func Stylish(results []types.ESLintResult) string {
	var b strings.Builder
	var errors, warnings, fixableErrors, fixableWarnings int

	for _, result := range results {
		if len(result.Messages) == 0 {
			continue
		}
		errors += result.ErrorCount
		warnings += result.WarningCount
		fixableErrors += result.FixableErrorCount
		fixableWarnings += result.FixableWarningCount

		fmt.Fprintf(&b, "\n%s\n", pathStyle.Sprint(result.FilePath))
		tw := tabwriter.NewWriter(&b, 0, 0, 2, ' ', 0)
		for _, msg := range result.Messages {
			severity := warningStyle.Sprint("warning")
			if msg.Fatal || msg.Severity == int(types.SeverityError) {
				severity = errorStyle.Sprint("error")
			}
			rule := ""
			if msg.RuleID != nil {
				rule = ruleStyle.Sprint(*msg.RuleID)
			}
			fmt.Fprintf(tw, "  %d:%d\t%s\t%s\t%s\n", msg.Line, msg.Column, severity, strings.TrimSpace(msg.Message), rule)
		}
		tw.Flush()
	}

	total := errors + warnings
	if total == 0 {
		return b.String()
	}

	style := summaryWarn
	if errors > 0 {
		style = summaryError
	}
	fmt.Fprintf(&b, "\n%s\n", style.Sprintf("✖ %s (%s, %s)",
		pluralize(total, "problem"), pluralize(errors, "error"), pluralize(warnings, "warning")))

	if fixableErrors+fixableWarnings > 0 {
		fmt.Fprintf(&b, "%s\n", style.Sprintf("  %s and %s potentially fixable with the `--fix` option.",
			pluralize(fixableErrors, "error"), pluralize(fixableWarnings, "warning")))
	}
	b.WriteString("\n")
	return b.String()
}

func pluralize(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
