package fragment

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/speakeasy-api/lintconfig/validation"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaJSON string

const schemaResource = "fragment-file.json"

var (
	shapeSchema     *jsonschema.Schema
	shapeSchemaOnce sync.Once
	defaultPrinter  = message.NewPrinter(language.English)
)

func compiledSchema() *jsonschema.Schema {
	shapeSchemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(schemaJSON))
		if err != nil {
			panic(err)
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaResource, doc); err != nil {
			panic(err)
		}
		shapeSchema = c.MustCompile(schemaResource)
	})
	return shapeSchema
}

// CheckShape validates a fragment file against the fragment file schema before it is decoded.
// It returns nil when the file is well formed, otherwise an error joining one
// *validation.MalformedFragmentError per problem, each naming the fragment and the offending field.
func CheckShape(data []byte, source string) error {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return &validation.MalformedFragmentError{Fragment: source, Message: err.Error(), Source: source}
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil
	}
	top := root.Content[0]

	var raw any
	if err := top.Decode(&raw); err != nil {
		return &validation.MalformedFragmentError{Fragment: source, Message: err.Error(), Source: source}
	}

	buf, err := json.Marshal(raw)
	if err != nil {
		return &validation.MalformedFragmentError{Fragment: source, Message: fmt.Sprintf("not representable as JSON: %s", err.Error()), Source: source}
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(buf))
	if err != nil {
		return &validation.MalformedFragmentError{Fragment: source, Message: err.Error(), Source: source}
	}

	err = compiledSchema().Validate(inst)
	if err == nil {
		return nil
	}

	var vErr *jsonschema.ValidationError
	if !errors.As(err, &vErr) {
		return &validation.MalformedFragmentError{Fragment: source, Message: err.Error(), Source: source}
	}

	var errs []error
	for _, cause := range deepestCauses(vErr) {
		errs = append(errs, toMalformed(cause, top, raw, source))
	}
	return errors.Join(errs...)
}

func leafCauses(err *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(err.Causes) == 0 {
		return []*jsonschema.ValidationError{err}
	}
	var leaves []*jsonschema.ValidationError
	for _, cause := range err.Causes {
		leaves = append(leaves, leafCauses(cause)...)
	}
	return leaves
}

// deepestCauses keeps one leaf cause per instance location, dropping locations that are an ancestor of
// another reported location so a single mistake is reported once.
func deepestCauses(err *jsonschema.ValidationError) []*jsonschema.ValidationError {
	leaves := leafCauses(err)

	var out []*jsonschema.ValidationError
	seen := map[string]bool{}
	for _, leaf := range leaves {
		key := strings.Join(leaf.InstanceLocation, "/")
		if seen[key] {
			continue
		}
		if slices.ContainsFunc(leaves, func(other *jsonschema.ValidationError) bool {
			return len(other.InstanceLocation) > len(leaf.InstanceLocation) &&
				slices.Equal(other.InstanceLocation[:len(leaf.InstanceLocation)], leaf.InstanceLocation)
		}) {
			continue
		}
		seen[key] = true
		out = append(out, leaf)
	}
	return out
}

func toMalformed(cause *jsonschema.ValidationError, top *yaml.Node, raw any, source string) *validation.MalformedFragmentError {
	loc := cause.InstanceLocation
	identity := "#0"
	fragmentRaw := raw
	rest := loc

	if items, ok := raw.([]any); ok {
		fragmentRaw = nil
		if len(loc) > 0 {
			identity = "#" + loc[0]
			if idx, err := strconv.Atoi(loc[0]); err == nil && idx < len(items) {
				fragmentRaw = items[idx]
			}
			rest = loc[1:]
		}
	}
	if m, ok := fragmentRaw.(map[string]any); ok {
		if name, ok := m["name"].(string); ok && name != "" {
			identity = name
		}
	}

	mErr := &validation.MalformedFragmentError{
		Fragment: identity,
		Field:    strings.Join(rest, "."),
		Message:  cause.ErrorKind.LocalizedString(defaultPrinter),
	}
	if len(rest) >= 2 && rest[0] == "rules" {
		mErr.Rule = rest[1]
	}

	line := 0
	if n := lookupNode(top, loc); n != nil {
		line = n.Line
	}
	return mErr.WithSource(locate(source, line))
}

// lookupNode walks a decoded YAML tree along a JSON instance location.
func lookupNode(node *yaml.Node, loc []string) *yaml.Node {
	for _, part := range loc {
		if node != nil && node.Kind == yaml.AliasNode {
			node = node.Alias
		}
		if node == nil {
			return nil
		}
		switch node.Kind {
		case yaml.MappingNode:
			var next *yaml.Node
			for i := 0; i+1 < len(node.Content); i += 2 {
				if node.Content[i].Value == part {
					next = node.Content[i+1]
				}
			}
			node = next
		case yaml.SequenceNode:
			idx, err := strconv.Atoi(part)
			if err != nil || idx < 0 || idx >= len(node.Content) {
				return nil
			}
			node = node.Content[idx]
		default:
			return nil
		}
	}
	return node
}
