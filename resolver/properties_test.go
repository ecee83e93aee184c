package resolver_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/speakeasy-api/lintconfig/fragment"
	"github.com/speakeasy-api/lintconfig/resolver"
	"github.com/speakeasy-api/lintconfig/validation"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var (
	ruleNames   = []string{"no-var", "curly", "eqeqeq", "no-console", "no-debugger", "prefer-const", "arrow-parens"}
	globalNames = []string{"window", "document", "process", "module", "exports", "describe"}
	ignoreGlobs = []string{"dist/", "node_modules/", "coverage/**", "*.min.js", "eslint.config.mjs"}
	severities  = []validation.Severity{validation.SeverityOff, validation.SeverityWarn, validation.SeverityError}
	accesses    = []fragment.Access{fragment.AccessReadonly, fragment.AccessWritable, fragment.AccessOff}
)

func fragmentGen(rules []string) *rapid.Generator[*fragment.Fragment] {
	return rapid.Custom(func(t *rapid.T) *fragment.Fragment {
		f := fragment.New(rapid.StringMatching(`[a-z]{0,6}`).Draw(t, "name"))

		// SampledFrom panics on an empty slice; a fragment over no rule names simply sets no rules.
		if len(rules) > 0 {
			for _, name := range rapid.SliceOfDistinct(rapid.SampledFrom(rules), rapid.ID[string]).Draw(t, "rules") {
				var opts []any
				if rapid.Bool().Draw(t, "hasOptions") {
					opts = append(opts, rapid.SampledFrom([]any{"all", "always", "as-needed", 2}).Draw(t, "option"))
				}
				f.WithRule(name, rapid.SampledFrom(severities).Draw(t, "severity"), opts...)
			}
		}
		for _, name := range rapid.SliceOfDistinct(rapid.SampledFrom(globalNames), rapid.ID[string]).Draw(t, "globals") {
			f.WithGlobal(name, rapid.SampledFrom(accesses).Draw(t, "access"))
		}
		if rapid.Bool().Draw(t, "hasSourceType") {
			f.WithParserOption("sourceType", rapid.SampledFrom([]string{"module", "commonjs", "script"}).Draw(t, "sourceType"))
		}
		f.WithIgnores(rapid.SliceOfDistinct(rapid.SampledFrom(ignoreGlobs), rapid.ID[string]).Draw(t, "ignores")...)
		f.WithPlugins(rapid.SliceOfDistinct(rapid.SampledFrom([]string{"import", "unicorn", "jest"}), rapid.ID[string]).Draw(t, "plugins")...)

		return f
	})
}

func TestProperty_DisjointRulesUnion(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		split := rapid.IntRange(0, len(ruleNames)).Draw(t, "split")
		a := fragmentGen(ruleNames[:split]).Draw(t, "a")
		b := fragmentGen(ruleNames[split:]).Draw(t, "b")

		cfg, err := resolver.Resolve(a, b)
		require.NoError(t, err)

		rules := cfg.Rules()
		require.Equal(t, a.Rules.Len()+b.Rules.Len(), rules.Len())
		for _, f := range []*fragment.Fragment{a, b} {
			for name, entry := range f.Rules.All() {
				got, ok := rules.Get(name)
				require.True(t, ok, "rule %s missing", name)
				if diff := cmp.Diff(entry.Normalized(), got); diff != "" {
					t.Fatalf("rule %s (-want +got):\n%s", name, diff)
				}
			}
		}
	})
}

func TestProperty_IncrementalEqualsFold(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		fragments := rapid.SliceOfN(fragmentGen(ruleNames), 1, 6).Draw(t, "fragments")
		last := len(fragments) - 1

		whole, err := resolver.Resolve(fragments...)
		require.NoError(t, err)

		prefix, err := resolver.Resolve(fragments[:last]...)
		require.NoError(t, err)

		r := resolver.From(prefix)
		require.NoError(t, r.Apply(fragments[last]))

		if diff := cmp.Diff(whole, r.Result()); diff != "" {
			t.Fatalf("incremental result differs (-whole +incremental):\n%s", diff)
		}
	})
}

func TestProperty_Idempotent(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		fragments := rapid.SliceOfN(fragmentGen(ruleNames), 0, 5).Draw(t, "fragments")

		first, err := resolver.Resolve(fragments...)
		require.NoError(t, err)
		second, err := resolver.Resolve(fragments...)
		require.NoError(t, err)

		if diff := cmp.Diff(first, second); diff != "" {
			t.Fatalf("resolution is not deterministic:\n%s", diff)
		}
		require.Equal(t, first.Hash(), second.Hash())
	})
}

func TestProperty_SetFieldsAccumulate(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		fragments := rapid.SliceOfN(fragmentGen(ruleNames), 1, 5).Draw(t, "fragments")

		cfg, err := resolver.Resolve(fragments...)
		require.NoError(t, err)

		for _, f := range fragments {
			for _, p := range f.Ignores {
				require.Contains(t, cfg.Ignores(), p)
			}
			for _, p := range f.Plugins {
				require.Contains(t, cfg.Plugins(), p)
			}
		}
	})
}

func TestProperty_LastFragmentWinsPerRule(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		fragments := rapid.SliceOfN(fragmentGen(ruleNames), 1, 5).Draw(t, "fragments")

		cfg, err := resolver.Resolve(fragments...)
		require.NoError(t, err)

		want := map[string]fragment.RuleEntry{}
		for _, f := range fragments {
			for name, entry := range f.Rules.All() {
				want[name] = entry.Normalized()
			}
		}
		for name, entry := range want {
			got, _ := cfg.Rule(name)
			if diff := cmp.Diff(entry, got); diff != "" {
				t.Fatalf("rule %s (-want +got):\n%s", name, diff)
			}
		}
	})
}

func TestProperty_DisjointRulesUnion_EmptySide(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		empty := fragmentGen(nil).Draw(t, "empty")
		full := fragmentGen(ruleNames).Draw(t, "full")
		require.Zero(t, empty.Rules.Len())

		for _, order := range [][]*fragment.Fragment{{empty, full}, {full, empty}} {
			cfg, err := resolver.Resolve(order...)
			require.NoError(t, err)
			require.Equal(t, full.Rules.Len(), cfg.Rules().Len())
		}
	})
}
