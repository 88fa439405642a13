package eslintrc

import "lintgate/internal/types"

// Baseline is one built-in configuration layer.
type Baseline struct {
	Name    string
	Extends []string
	Rules   map[string]types.RuleSetting
}

func (b Baseline) config() types.LintConfig {
	return types.LintConfig{Extends: b.Extends, Rules: b.Rules}.Clone()
}

// Baselines is the full built-in layer set handed to NewMaterializer.
// UI is applied only when the project depends on UIPackage.
type Baselines struct {
	Language  Baseline
	UI        Baseline
	UIPackage string
}

// DefaultBaselines returns fresh copies of the TypeScript and React layers,
// so no caller can alter what another one sees.
func DefaultBaselines() Baselines {
	return Baselines{
		Language:  TypeScriptBaseline(),
		UI:        ReactBaseline(),
		UIPackage: "react",
	}
}

func TypeScriptBaseline() Baseline {
	return Baseline{
		Name: "typescript",
		Extends: []string{
			"eslint:recommended",
			"plugin:@typescript-eslint/recommended",
			"prettier",
			"plugin:prettier/recommended",
		},
		Rules: map[string]types.RuleSetting{
			"prettier/prettier":                  "error",
			"no-unused-vars":                     "off",
			"@typescript-eslint/no-unused-vars":  "warn",
			"@typescript-eslint/no-explicit-any": "warn",
			"no-undef":                           "off",
		},
	}
}

func ReactBaseline() Baseline {
	return Baseline{
		Name: "react",
		Extends: []string{
			"plugin:react/recommended",
			"plugin:react-hooks/recommended",
		},
		Rules: map[string]types.RuleSetting{
			"react/react-in-jsx-scope":    "off",
			"react/prop-types":            "off",
			"react-hooks/exhaustive-deps": "warn",
		},
	}
}

// knownRules seeds override suggestions together with the baseline rule names.
var knownRules = []string{
	"array-callback-return",
	"camelcase",
	"curly",
	"eqeqeq",
	"max-len",
	"no-console",
	"no-debugger",
	"no-duplicate-imports",
	"no-empty",
	"no-implicit-coercion",
	"no-param-reassign",
	"no-shadow",
	"no-unused-expressions",
	"no-use-before-define",
	"no-var",
	"prefer-const",
	"sort-imports",
	"@typescript-eslint/ban-ts-comment",
	"@typescript-eslint/explicit-function-return-type",
	"@typescript-eslint/explicit-module-boundary-types",
	"@typescript-eslint/no-empty-function",
	"@typescript-eslint/no-non-null-assertion",
	"@typescript-eslint/no-shadow",
	"@typescript-eslint/no-use-before-define",
	"@typescript-eslint/no-var-requires",
	"import/no-unresolved",
	"import/order",
	"react/display-name",
	"react/jsx-key",
	"react-hooks/rules-of-hooks",
}
