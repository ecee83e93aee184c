package fragment

import "github.com/speakeasy-api/lintconfig/validation"

// Environment carries the external signals that fragment construction may depend on.
// It is passed explicitly; nothing in this module reads it from the process environment on its own.
type Environment struct {
	// Production selects the stricter of two literal severities for mode dependent rules.
	Production bool
}

// Select returns production when the environment is in production mode and development otherwise.
func (e Environment) Select(production, development validation.Severity) validation.Severity {
	if e.Production {
		return production
	}
	return development
}
