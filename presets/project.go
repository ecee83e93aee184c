package presets

import (
	"github.com/speakeasy-api/lintconfig/fragment"
	"github.com/speakeasy-api/lintconfig/globals"
	"github.com/speakeasy-api/lintconfig/validation"
)

// project is the repository's own configuration: shared presets followed by local language
// settings and rules. no-debugger and no-console are errors in production and warnings otherwise.
func project(env fragment.Environment) []*fragment.Fragment {
	var out []*fragment.Fragment

	out = append(out, fragment.New("ignores").WithIgnores("eslint.config.mjs", "node_modules/"))
	out = append(out, eslintRecommended(env)...)
	out = append(out, typescriptRecommendedTypeChecked(env)...)
	out = append(out, prettierRecommended(env)...)

	language := fragment.New("language").
		WithParserOption("sourceType", "commonjs").
		WithParserOption("projectService", true).
		WithParserOption("tsconfigRootDir", ".")
	for _, set := range []string{"node", "jest"} {
		symbols, _ := globals.Lookup(set)
		for _, s := range symbols {
			access := fragment.AccessReadonly
			if s.Writable {
				access = fragment.AccessWritable
			}
			language.WithGlobal(s.Name, access)
		}
	}
	out = append(out, language)

	rules := fragment.New("rules").
		WithPlugins("import", "unicorn").
		WithRule("@typescript-eslint/no-explicit-any", validation.SeverityOff).
		WithRule("@typescript-eslint/no-floating-promises", validation.SeverityWarn).
		WithRule("@typescript-eslint/no-unsafe-argument", validation.SeverityWarn).
		WithRule("prettier/prettier", validation.SeverityError, map[string]any{"endOfLine": "auto"}).
		// General
		WithRule("import/order", validation.SeverityError).
		WithRule("import/first", validation.SeverityError).
		WithRule("import/no-mutable-exports", validation.SeverityError).
		WithRule("import/no-unresolved", validation.SeverityOff).
		WithRule("arrow-parens", validation.SeverityError, "as-needed", map[string]any{"requireForBlockBody": true}).
		WithRule("generator-star-spacing", validation.SeverityOff).
		WithRule("no-debugger", env.Select(validation.SeverityError, validation.SeverityWarn)).
		WithRule("no-console", env.Select(validation.SeverityError, validation.SeverityWarn)).
		WithRule("prefer-const", validation.SeverityError, map[string]any{"destructuring": "any", "ignoreReadBeforeAssign": false}).
		WithRule("no-lonely-if", validation.SeverityError).
		WithRule("curly", validation.SeverityError, "all").
		WithRule("require-await", validation.SeverityError).
		WithRule("dot-notation", validation.SeverityError).
		WithRule("no-var", validation.SeverityError).
		WithRule("object-shorthand", validation.SeverityError).
		WithRule("no-useless-rename", validation.SeverityError).
		// Unicorn
		WithRule("unicorn/error-message", validation.SeverityError).
		WithRule("unicorn/escape-case", validation.SeverityError).
		WithRule("unicorn/no-array-instanceof", validation.SeverityError).
		WithRule("unicorn/no-new-buffer", validation.SeverityError).
		WithRule("unicorn/no-unsafe-regex", validation.SeverityOff).
		WithRule("unicorn/number-literal-case", validation.SeverityError).
		WithRule("unicorn/prefer-exponentiation-operator", validation.SeverityError).
		WithRule("unicorn/prefer-includes", validation.SeverityError).
		WithRule("unicorn/prefer-starts-ends-with", validation.SeverityError).
		WithRule("unicorn/prefer-text-content", validation.SeverityError).
		WithRule("unicorn/prefer-type-error", validation.SeverityError).
		WithRule("unicorn/throw-new-error", validation.SeverityError).
		WithRule("@typescript-eslint/no-unused-vars", validation.SeverityError, map[string]any{"args": "all", "argsIgnorePattern": "^_"}).
		WithRule("no-unused-vars", validation.SeverityOff).
		WithRule("no-undef", validation.SeverityOff)
	out = append(out, rules)

	return out
}
