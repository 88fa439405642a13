package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lintgate/internal/types"
)

func init() {
	color.NoColor = true
}

func ruleID(s string) *string { return &s }

func TestStylish_Empty(t *testing.T) {
	out := Stylish([]types.ESLintResult{{FilePath: "/p/src/clean.ts"}})
	assert.Empty(t, out)
}

func TestStylish_Warnings(t *testing.T) {
	results := []types.ESLintResult{{
		FilePath: "/p/src/file-with-lint-warnings.ts",
		Messages: []types.ESLintMessage{
			{RuleID: ruleID("@typescript-eslint/no-unused-vars"), Severity: 1, Message: "'a' is defined but never used.", Line: 1, Column: 7},
			{RuleID: ruleID("@typescript-eslint/no-unused-vars"), Severity: 1, Message: "'b' is defined but never used.", Line: 2, Column: 7},
			{RuleID: ruleID("@typescript-eslint/no-unused-vars"), Severity: 1, Message: "'c' is defined but never used.", Line: 12, Column: 7},
		},
		WarningCount: 3,
	}}

	out := Stylish(results)

	assert.Contains(t, out, "/p/src/file-with-lint-warnings.ts\n")
	assert.Contains(t, out, "@typescript-eslint/no-unused-vars")
	assert.Contains(t, out, "12:7")
	assert.Contains(t, out, "✖ 3 problems (0 errors, 3 warnings)")
	assert.NotContains(t, out, "potentially fixable")
}

func TestStylish_ParseErrorAndFixable(t *testing.T) {
	results := []types.ESLintResult{
		{
			FilePath: "/p/src/broken.ts",
			Messages: []types.ESLintMessage{
				{Fatal: true, Severity: 2, Message: "Parsing error: ';' expected.", Line: 3, Column: 10},
			},
			ErrorCount: 1,
		},
		{
			FilePath: "/p/src/ugly.ts",
			Messages: []types.ESLintMessage{
				{RuleID: ruleID("prettier/prettier"), Severity: 2, Message: "Insert `;`", Line: 1, Column: 20},
			},
			ErrorCount:        1,
			FixableErrorCount: 1,
		},
	}

	out := Stylish(results)

	lines := strings.Split(out, "\n")
	var parseLine string
	for _, l := range lines {
		if strings.Contains(l, "Parsing error:") {
			parseLine = l
		}
	}
	require.NotEmpty(t, parseLine)
	assert.Contains(t, parseLine, "3:10")
	assert.Contains(t, parseLine, "error")

	assert.Contains(t, out, "prettier/prettier")
	assert.Contains(t, out, "✖ 2 problems (2 errors, 0 warnings)")
	assert.Contains(t, out, "1 error and 0 warnings potentially fixable with the `--fix` option.")
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "eslint.json")

	require.NoError(t, WriteFile(path, []byte(`[{"filePath":"a.ts","messages":[]}]`)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"filePath":"a.ts","messages":[]}]`, string(data))
}

func TestWriteFile_EmptyRaw(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eslint.json")

	require.NoError(t, WriteFile(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestWriteFile_NoPath(t *testing.T) {
	assert.Error(t, WriteFile("", []byte("[]")))
}
