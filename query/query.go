// Package query evaluates JSONPath expressions against a resolved configuration.
//
// Expressions run against the serialized form of the configuration, a mapping with the keys rules,
// globals, parser_options, ignores and plugins. Two engines are available: RFC 9535 (the default,
// with the "~" property name extension so "$.rules.*~" lists rule names) and the legacy yamlpath
// dialect kept for existing scripts.
package query

import (
	"fmt"

	"github.com/speakeasy-api/jsonpath/pkg/jsonpath"
	"github.com/speakeasy-api/jsonpath/pkg/jsonpath/config"
	"github.com/speakeasy-api/lintconfig/errors"
	"github.com/speakeasy-api/lintconfig/resolver"
	"github.com/vmware-labs/yaml-jsonpath/pkg/yamlpath"
	"gopkg.in/yaml.v3"
)

const (
	ErrInvalidExpression = errors.Error("invalid jsonpath expression")
	ErrUnknownEngine     = errors.Error("unknown jsonpath engine")
)

// Engine selects the JSONPath implementation.
type Engine string

const (
	EngineRFC9535 Engine = "rfc9535"
	EngineLegacy  Engine = "legacy"
)

// Queryable is an interface for querying YAML nodes using JSONPath expressions.
type Queryable interface {
	Query(root *yaml.Node) []*yaml.Node
}

type yamlPathQueryable struct {
	path *yamlpath.Path
}

func (y yamlPathQueryable) Query(root *yaml.Node) []*yaml.Node {
	if y.path == nil {
		return []*yaml.Node{}
	}
	// errors aren't actually possible from yamlpath.
	result, _ := y.path.Find(root)
	return result
}

type rfcJSONPathQueryable struct {
	path *jsonpath.JSONPath
}

func (r rfcJSONPathQueryable) Query(root *yaml.Node) []*yaml.Node {
	return r.path.Query(root)
}

// NewPath compiles expr for engine. An empty engine means EngineRFC9535.
func NewPath(expr string, engine Engine) (Queryable, error) {
	switch engine {
	case "", EngineRFC9535:
		path, err := jsonpath.NewPath(expr, config.WithPropertyNameExtension())
		if err != nil {
			return nil, ErrInvalidExpression.Wrap(err)
		}
		return rfcJSONPathQueryable{path: path}, nil
	case EngineLegacy:
		path, err := yamlpath.NewPath(expr)
		if err != nil {
			return nil, ErrInvalidExpression.Wrap(err)
		}
		return yamlPathQueryable{path: path}, nil
	default:
		return nil, ErrUnknownEngine.Wrapf("%q (expected %s or %s)", engine, EngineRFC9535, EngineLegacy)
	}
}

// Run evaluates expr against cfg and returns the matching nodes in document order.
func Run(cfg *resolver.ResolvedConfig, expr string, engine Engine) ([]*yaml.Node, error) {
	path, err := NewPath(expr, engine)
	if err != nil {
		return nil, err
	}

	root, err := cfg.Node()
	if err != nil {
		return nil, fmt.Errorf("encode resolved config: %w", err)
	}
	return path.Query(root), nil
}

// Values decodes matched nodes into plain Go values.
func Values(nodes []*yaml.Node) ([]any, error) {
	out := make([]any, 0, len(nodes))
	for _, n := range nodes {
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		out = append(out, v)
	}
	return out, nil
}
