package presets

import (
	"github.com/speakeasy-api/lintconfig/fragment"
	"github.com/speakeasy-api/lintconfig/validation"
)

// Names of the built-in presets.
const (
	ESLintRecommended                = "eslint-recommended"
	TypeScriptRecommendedTypeChecked = "typescript-recommended-type-checked"
	PrettierRecommended              = "prettier-recommended"
	Project                          = "project"
)

// Default returns a registry holding the built-in presets.
func Default() *Registry {
	r := NewRegistry()
	r.MustRegister(Preset{
		Name:        ESLintRecommended,
		Description: "Core rules that report likely bugs",
		Build:       eslintRecommended,
	})
	r.MustRegister(Preset{
		Name:        TypeScriptRecommendedTypeChecked,
		Description: "TypeScript parser wiring and type-aware rules",
		Build:       typescriptRecommendedTypeChecked,
	})
	r.MustRegister(Preset{
		Name:        PrettierRecommended,
		Description: "Formatting through the prettier plugin, stylistic core rules off",
		Build:       prettierRecommended,
	})
	r.MustRegister(Preset{
		Name:        Project,
		Description: "The project configuration: ignores, shared presets, node and jest globals, project rules",
		Build:       project,
	})
	return r
}

func eslintRecommended(fragment.Environment) []*fragment.Fragment {
	f := fragment.New("eslint/recommended")
	for _, rule := range []string{
		"constructor-super", "for-direction", "getter-return", "no-async-promise-executor", "no-case-declarations",
		"no-class-assign", "no-compare-neg-zero", "no-cond-assign", "no-const-assign", "no-constant-condition",
		"no-debugger", "no-dupe-args", "no-dupe-keys", "no-duplicate-case", "no-empty", "no-empty-pattern",
		"no-ex-assign", "no-fallthrough", "no-func-assign", "no-redeclare", "no-self-assign", "no-undef",
		"no-unreachable", "no-unsafe-finally", "no-unused-vars", "no-useless-escape", "require-yield",
		"use-isnan", "valid-typeof",
	} {
		f.WithRule(rule, validation.SeverityError)
	}
	return []*fragment.Fragment{f}
}

func typescriptRecommendedTypeChecked(fragment.Environment) []*fragment.Fragment {
	base := fragment.New("typescript-eslint/base").
		WithPlugins("@typescript-eslint").
		WithParserOption("parser", "@typescript-eslint/parser").
		WithParserOption("sourceType", "module")

	overrides := fragment.New("typescript-eslint/eslint-recommended").
		WithFiles("**/*.ts", "**/*.tsx", "**/*.mts", "**/*.cts").
		WithRule("constructor-super", validation.SeverityOff).
		WithRule("getter-return", validation.SeverityOff).
		WithRule("no-const-assign", validation.SeverityOff).
		WithRule("no-redeclare", validation.SeverityOff).
		WithRule("no-undef", validation.SeverityOff).
		WithRule("no-unreachable", validation.SeverityOff).
		WithRule("no-var", validation.SeverityError).
		WithRule("prefer-const", validation.SeverityError)

	rules := fragment.New("typescript-eslint/recommended-type-checked")
	for _, rule := range []string{
		"@typescript-eslint/await-thenable", "@typescript-eslint/ban-ts-comment", "@typescript-eslint/no-array-delete",
		"@typescript-eslint/no-explicit-any", "@typescript-eslint/no-floating-promises",
		"@typescript-eslint/no-misused-promises", "@typescript-eslint/no-unsafe-argument",
		"@typescript-eslint/no-unsafe-assignment", "@typescript-eslint/no-unsafe-call",
		"@typescript-eslint/no-unsafe-member-access", "@typescript-eslint/no-unsafe-return",
		"@typescript-eslint/no-unused-vars", "@typescript-eslint/require-await",
	} {
		rules.WithRule(rule, validation.SeverityError)
	}
	rules.WithRule("no-unused-vars", validation.SeverityOff).
		WithRule("require-await", validation.SeverityOff)

	return []*fragment.Fragment{base, overrides, rules}
}

func prettierRecommended(fragment.Environment) []*fragment.Fragment {
	f := fragment.New("prettier/recommended").
		WithPlugins("prettier").
		WithRule("prettier/prettier", validation.SeverityError).
		WithRule("arrow-body-style", validation.SeverityOff).
		WithRule("prefer-arrow-callback", validation.SeverityOff)
	for _, rule := range []string{"curly", "no-unexpected-multiline", "arrow-parens", "indent", "quotes", "semi"} {
		f.WithRule(rule, validation.SeverityOff)
	}
	return []*fragment.Fragment{f}
}
