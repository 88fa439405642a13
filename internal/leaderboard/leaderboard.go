// Package leaderboard ranks the rules and files behind a lint run.
package leaderboard

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"

	"lintgate/internal/evaluate"
	"lintgate/internal/types"
)

// ParseErrorRule stands in for the rule name of findings ESLint reports
// without one, such as parse errors.
const ParseErrorRule = "(parse error)"

func ruleLabel(rule string) string {
	if rule == "" {
		return ParseErrorRule
	}
	return rule
}

type RuleEntry struct {
	Rule     string
	Count    int
	Errors   int
	Warnings int
	Files    int
}

type FileEntry struct {
	Path     string
	Count    int
	Errors   int
	Warnings int
	TopRule  string
	TopCount int
}

// Rules ranks rules by findings, most violated first.
func Rules(findings []types.Finding) []RuleEntry {
	files := make(map[string]map[string]bool)
	for _, f := range findings {
		rule := f.Rule()
		if files[rule] == nil {
			files[rule] = make(map[string]bool)
		}
		files[rule][f.FilePath] = true
	}

	var entries []RuleEntry
	for _, stat := range evaluate.ByRule(findings) {
		entries = append(entries, RuleEntry{
			Rule:     ruleLabel(stat.Rule),
			Count:    stat.Count(),
			Errors:   stat.Errors,
			Warnings: stat.Warnings,
			Files:    len(files[stat.Rule]),
		})
	}
	return entries
}

// Files ranks files by findings, most problematic first, ties by path.
func Files(findings []types.Finding) []FileEntry {
	index := make(map[string]int)
	rules := make(map[string]map[string]int)
	var entries []FileEntry
	for _, f := range findings {
		i, ok := index[f.FilePath]
		if !ok {
			i = len(entries)
			index[f.FilePath] = i
			entries = append(entries, FileEntry{Path: f.FilePath})
			rules[f.FilePath] = make(map[string]int)
		}
		entries[i].Count++
		if f.Severity == types.SeverityWarning {
			entries[i].Warnings++
		} else {
			entries[i].Errors++
		}
		rules[f.FilePath][ruleLabel(f.Rule())]++
	}

	for i := range entries {
		for rule, count := range rules[entries[i].Path] {
			if count > entries[i].TopCount || (count == entries[i].TopCount && rule < entries[i].TopRule) {
				entries[i].TopRule = rule
				entries[i].TopCount = count
			}
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Path < entries[j].Path
	})
	return entries
}

// styles are bound to one writer so color detection follows it.
type styles struct {
	title   lipgloss.Style
	cell    lipgloss.Style
	rank    lipgloss.Style
	topRule lipgloss.Style
	errors  lipgloss.Style
	warns   lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	cell := r.NewStyle().PaddingLeft(1).PaddingRight(1)
	return styles{
		title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#5d5d5d")).
			PaddingLeft(1).
			PaddingRight(1),
		cell:    cell,
		rank:    cell.Foreground(lipgloss.Color("#878787")),
		topRule: cell.Foreground(lipgloss.Color("#ffd700")),
		errors:  r.NewStyle().Foreground(lipgloss.Color("#ff0000")),
		warns:   r.NewStyle().Foreground(lipgloss.Color("#ffff00")),
	}
}

func PrintRules(w io.Writer, entries []RuleEntry, topN int) {
	s := newStyles(w)
	fmt.Fprintln(w, s.title.Render("Rule Leaderboard - Most Violated Rules"))

	if len(entries) == 0 {
		fmt.Fprintln(w, s.cell.Render("No findings."))
		return
	}

	for i, entry := range limit(entries, topN) {
		fmt.Fprintf(w, "%s. %s – %d findings (%s errors, %s warnings), %d files\n",
			s.rank.Render(fmt.Sprintf("%2d", i+1)),
			s.cell.Render(entry.Rule),
			entry.Count,
			s.errors.Render(fmt.Sprint(entry.Errors)),
			s.warns.Render(fmt.Sprint(entry.Warnings)),
			entry.Files)
	}
}

func PrintFiles(w io.Writer, entries []FileEntry, topN int) {
	s := newStyles(w)
	fmt.Fprintln(w, s.title.Render("File Leaderboard - Most Problematic Files"))

	if len(entries) == 0 {
		fmt.Fprintln(w, s.cell.Render("No findings."))
		return
	}

	for i, entry := range limit(entries, topN) {
		fmt.Fprintf(w, "%s. %s – %d findings (%s errors, %s warnings), top rule: %s (%d)\n",
			s.rank.Render(fmt.Sprintf("%2d", i+1)),
			s.cell.Render(entry.Path),
			entry.Count,
			s.errors.Render(fmt.Sprint(entry.Errors)),
			s.warns.Render(fmt.Sprint(entry.Warnings)),
			s.topRule.Render(entry.TopRule),
			entry.TopCount)
	}
}

// limit returns the first n entries; n <= 0 means all of them.
func limit[T any](entries []T, n int) []T {
	if n <= 0 || len(entries) < n {
		return entries
	}
	return entries[:n]
}
