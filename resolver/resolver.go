// Package resolver merges an ordered list of configuration fragments into one ResolvedConfig.
//
// Resolution is a pure fold over the fragments: set fields (ignores, plugins) are unioned, scalar
// fields (parser options, global access modes) and rule entries are replaced by later fragments, and
// a rule set to off carries no options. Any malformed fragment aborts resolution without a partial
// result.
package resolver

import (
	"slices"

	"github.com/speakeasy-api/lintconfig/fragment"
	"github.com/speakeasy-api/lintconfig/internal/pathmatch"
)

// Resolve merges fragments in order.
// It returns a *validation.MalformedFragmentError for the first malformed fragment encountered.
func Resolve(fragments ...*fragment.Fragment) (*ResolvedConfig, error) {
	r := New()
	for _, f := range fragments {
		if err := r.Apply(f); err != nil {
			return nil, err
		}
	}
	return r.Result(), nil
}

// ResolveForFile merges only the fragments that apply to path.
// A fragment without Files applies to every path. All fragments are validated, including those that do not apply.
func ResolveForFile(path string, fragments ...*fragment.Fragment) (*ResolvedConfig, error) {
	r := New()
	for _, f := range fragments {
		identity := f.Identity(r.applied)
		if err := f.Validate(identity); err != nil {
			return nil, err
		}

		if len(f.Files) > 0 && !pathmatch.MustCompile(f.Files...).Match(path) {
			r.applied++
			continue
		}
		r.merge(f)
	}
	return r.Result(), nil
}

// Resolver accumulates fragments one at a time.
// Applying F1..Fn in order yields the same result as Resolve(F1, ..., Fn).
type Resolver struct {
	cfg     *ResolvedConfig
	applied int
}

// New returns a Resolver with an empty accumulated configuration.
func New() *Resolver {
	return &Resolver{cfg: newResolvedConfig()}
}

// From returns a Resolver that continues from an already resolved configuration.
// cfg is copied; later applies do not affect it.
func From(cfg *ResolvedConfig) *Resolver {
	if cfg == nil {
		return New()
	}
	return &Resolver{cfg: cfg.Clone()}
}

// Apply merges f on top of everything applied so far.
// f is validated first, so on error the accumulated configuration is unchanged.
func (r *Resolver) Apply(f *fragment.Fragment) error {
	if err := f.Validate(f.Identity(r.applied)); err != nil {
		return err
	}
	r.merge(f)
	return nil
}

// Result returns a copy of the accumulated configuration.
func (r *Resolver) Result() *ResolvedConfig {
	return r.cfg.Clone()
}

func (r *Resolver) merge(f *fragment.Fragment) {
	r.applied++
	cfg := r.cfg

	if added := union(cfg.ignores, f.Ignores); len(added) != len(cfg.ignores) {
		cfg.ignores = added
		// Validate has already compiled every pattern.
		cfg.ignoreMatcher = pathmatch.MustCompile(cfg.ignores...)
	}
	cfg.plugins = union(cfg.plugins, f.Plugins)

	for name, access := range f.Globals.All() {
		cfg.globals.Set(name, access)
	}
	for name, value := range f.ParserOptions.All() {
		cfg.parserOptions.Set(name, fragment.CloneValue(value))
	}
	for name, entry := range f.Rules.All() {
		cfg.rules.Set(name, entry.Normalized())
	}
}

func union(dst, src []string) []string {
	for _, s := range src {
		if !slices.Contains(dst, s) {
			dst = append(dst, s)
		}
	}
	return dst
}
