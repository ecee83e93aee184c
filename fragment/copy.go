package fragment

// CloneValue returns a deep copy of an opaque option value. Maps and slices produced by decoding YAML or
// JSON, or built by hand from the same shapes, are copied recursively; anything else is returned as is.
func CloneValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		if v == nil {
			return v
		}
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = CloneValue(e)
		}
		return out
	case map[any]any:
		if v == nil {
			return v
		}
		out := make(map[any]any, len(v))
		for k, e := range v {
			out[k] = CloneValue(e)
		}
		return out
	case []any:
		if v == nil {
			return v
		}
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = CloneValue(e)
		}
		return out
	case []string:
		if v == nil {
			return v
		}
		return append([]string(nil), v...)
	case map[string]string:
		if v == nil {
			return v
		}
		out := make(map[string]string, len(v))
		for k, e := range v {
			out[k] = e
		}
		return out
	default:
		return v
	}
}

func cloneOptions(options []any) []any {
	if options == nil {
		return nil
	}
	out := make([]any, len(options))
	for i, o := range options {
		out[i] = CloneValue(o)
	}
	return out
}
