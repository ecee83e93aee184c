// Package presets holds named, reusable lists of fragments that configuration files can pull in by
// name, the way shared configs are spread into a project configuration.
package presets

import (
	"sort"

	"github.com/speakeasy-api/lintconfig/errors"
	"github.com/speakeasy-api/lintconfig/fragment"
)

const (
	ErrDuplicatePreset = errors.Error("preset already registered")
	ErrUnknownPreset   = errors.Error("unknown preset")
)

// BuildFunc constructs a preset's fragments for an environment.
type BuildFunc func(env fragment.Environment) []*fragment.Fragment

// Preset is a named fragment list.
type Preset struct {
	Name        string
	Description string
	Build       BuildFunc
}

// Registry holds registered presets
type Registry struct {
	presets map[string]Preset
}

// NewRegistry creates an empty preset registry
func NewRegistry() *Registry {
	return &Registry{presets: make(map[string]Preset)}
}

// Register registers a preset
func (r *Registry) Register(p Preset) error {
	if p.Name == "" {
		return ErrUnknownPreset.Wrapf("preset name is empty")
	}
	if _, exists := r.presets[p.Name]; exists {
		return ErrDuplicatePreset.Wrapf("%q", p.Name)
	}
	if p.Build == nil {
		p.Build = func(fragment.Environment) []*fragment.Fragment { return nil }
	}

	r.presets[p.Name] = p
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(p Preset) {
	if err := r.Register(p); err != nil {
		panic(err)
	}
}

// Get returns a preset by name
func (r *Registry) Get(name string) (Preset, bool) {
	p, ok := r.presets[name]
	return p, ok
}

// Has reports whether a preset is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.presets[name]
	return ok
}

// Names returns all registered preset names, sorted
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.presets))
	for name := range r.presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Expand builds the named presets for env and concatenates their fragments in argument order.
// Every returned fragment is a fresh copy owned by the caller.
func (r *Registry) Expand(env fragment.Environment, names ...string) ([]*fragment.Fragment, error) {
	var out []*fragment.Fragment
	for _, name := range names {
		p, ok := r.presets[name]
		if !ok {
			return nil, ErrUnknownPreset.Wrapf("%q (available: %v)", name, r.Names())
		}
		for _, f := range p.Build(env) {
			out = append(out, f.Clone())
		}
	}
	return out, nil
}
