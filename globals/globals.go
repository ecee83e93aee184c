// Package globals holds the predefined global symbol sets that fragments can pull in by name
// (for example "node" or "jest") instead of listing every symbol by hand.
package globals

import (
	"slices"
	"sort"
	"strings"
)

// Symbol is one predefined global identifier.
type Symbol struct {
	Name string
	// Writable is true when code may assign to the symbol (e.g. CommonJS "exports").
	Writable bool
}

var sets = map[string][]Symbol{
	"node": append(readonly(
		"AbortController", "AbortSignal", "Buffer", "TextDecoder", "TextEncoder", "URL", "URLSearchParams",
		"__dirname", "__filename", "clearImmediate", "clearInterval", "clearTimeout", "console", "fetch",
		"global", "module", "process", "queueMicrotask", "require", "setImmediate", "setInterval",
		"setTimeout", "structuredClone",
	), Symbol{Name: "exports", Writable: true}),
	"jest": readonly(
		"afterAll", "afterEach", "beforeAll", "beforeEach", "describe", "expect", "fdescribe", "fit", "it",
		"jest", "pit", "test", "xdescribe", "xit", "xtest",
	),
	"browser": readonly(
		"AbortController", "Blob", "CustomEvent", "Event", "EventTarget", "FormData", "HTMLElement",
		"Headers", "Request", "Response", "URL", "URLSearchParams", "WebSocket", "alert", "cancelAnimationFrame",
		"clearInterval", "clearTimeout", "console", "document", "fetch", "localStorage", "location",
		"navigator", "requestAnimationFrame", "sessionStorage", "setInterval", "setTimeout", "window",
	),
	"es2021": readonly(
		"AggregateError", "Array", "ArrayBuffer", "BigInt", "BigInt64Array", "BigUint64Array", "Boolean",
		"DataView", "Date", "Error", "FinalizationRegistry", "Float32Array", "Float64Array", "Function",
		"Int16Array", "Int32Array", "Int8Array", "JSON", "Map", "Math", "Number", "Object", "Promise",
		"Proxy", "Reflect", "RegExp", "Set", "SharedArrayBuffer", "String", "Symbol", "Uint16Array",
		"Uint32Array", "Uint8Array", "Uint8ClampedArray", "WeakMap", "WeakRef", "WeakSet", "globalThis",
	),
}

func readonly(names ...string) []Symbol {
	out := make([]Symbol, 0, len(names))
	for _, n := range names {
		out = append(out, Symbol{Name: n})
	}
	return out
}

// Lookup returns the symbols of the named set, sorted by name.
func Lookup(name string) ([]Symbol, bool) {
	set, ok := sets[name]
	if !ok {
		return nil, false
	}
	out := slices.Clone(set)
	slices.SortFunc(out, func(a, b Symbol) int {
		return strings.Compare(a.Name, b.Name)
	})
	return out, true
}

// Names returns the names of all known sets.
func Names() []string {
	names := make([]string, 0, len(sets))
	for name := range sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
