// Package hashing computes stable fingerprints of configuration values.
//
// Two values that hold the same data hash identically regardless of Go map iteration order or the
// insertion order of sequenced maps, so a fingerprint identifies the meaning of a configuration rather
// than its layout.
package hashing

import (
	"fmt"
	"hash/fnv"
	"iter"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// Hash returns a 16 character hex fingerprint of v.
func Hash(v any) string {
	hasher := fnv.New64a()
	_, _ = hasher.Write([]byte(toHashableString(v)))
	return formatHash(hasher.Sum64())
}

// formatHash converts a uint64 hash to a zero-padded 16-character hex string
// without the allocation overhead of fmt.Sprintf.
func formatHash(h uint64) string {
	const hexDigits = "0123456789abcdef"
	var buf [16]byte
	for i := 15; i >= 0; i-- {
		buf[i] = hexDigits[h&0xf]
		h >>= 4
	}
	return string(buf[:])
}

type sequencedMap interface {
	AllUntyped() iter.Seq2[any, any]
}

// token length-prefixes s so concatenated parts cannot collide ("ab"+"c" vs "a"+"bc").
func token(kind byte, s string) string {
	return string(kind) + strconv.Itoa(len(s)) + ":" + s
}

func toHashableString(v any) string {
	if v == nil {
		return ""
	}

	if sm, ok := v.(sequencedMap); ok {
		val := reflect.ValueOf(v)
		if val.Kind() == reflect.Ptr && val.IsNil() {
			return ""
		}
		return sequencedMapToHashableString(sm)
	}

	var builder strings.Builder

	typ := reflect.TypeOf(v)
	switch typ.Kind() {
	case reflect.Slice, reflect.Array:
		sliceVal := reflect.ValueOf(v)

		if typ.Kind() == reflect.Slice && sliceVal.IsNil() {
			return ""
		}

		builder.WriteString("[")
		for i := 0; i < sliceVal.Len(); i++ {
			builder.WriteString(token('e', toHashableString(sliceVal.Index(i).Interface())))
		}
		builder.WriteString("]")
	case reflect.Map:
		mapVal := reflect.ValueOf(v)

		if mapVal.IsNil() {
			return ""
		}

		mapKeys := mapVal.MapKeys()
		// Sort keys for deterministic output
		slices.SortFunc(mapKeys, func(a, b reflect.Value) int {
			return strings.Compare(toHashableString(a.Interface()), toHashableString(b.Interface()))
		})

		builder.WriteString("{")
		for _, key := range mapKeys {
			builder.WriteString(token('k', toHashableString(key.Interface())))
			builder.WriteString(token('v', toHashableString(mapVal.MapIndex(key).Interface())))
		}
		builder.WriteString("}")
	case reflect.Struct:
		builder.WriteString(structToHashableString(v))
	case reflect.Ptr, reflect.Interface:
		val := reflect.ValueOf(v)
		if val.IsNil() {
			return ""
		}
		builder.WriteString(toHashableString(val.Elem().Interface()))
	case reflect.String:
		builder.WriteString(reflect.ValueOf(v).String())
	default:
		switch v := v.(type) {
		case int:
			builder.WriteString(strconv.Itoa(v))
		case int64:
			builder.WriteString(strconv.FormatInt(v, 10))
		case float64:
			builder.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
		case bool:
			builder.WriteString(strconv.FormatBool(v))
		case uint64:
			builder.WriteString(strconv.FormatUint(v, 10))
		default:
			builder.WriteString(fmt.Sprintf("%v", v))
		}
	}

	return builder.String()
}

func structToHashableString(v any) string {
	var builder strings.Builder

	structVal := reflect.ValueOf(v)
	structType := structVal.Type()

	for i := 0; i < structVal.NumField(); i++ {
		fieldType := structType.Field(i)
		if !fieldType.IsExported() {
			continue
		}

		val := toHashableString(structVal.Field(i).Interface())
		if val == "" {
			continue
		}

		builder.WriteString(token('f', fieldType.Name))
		builder.WriteString(token('v', val))
	}

	return builder.String()
}

// sequencedMapToHashableString hashes entries in key order so insertion order does not affect the result.
func sequencedMapToHashableString(sm sequencedMap) string {
	type entry struct {
		key, value string
	}

	var entries []entry
	for k, v := range sm.AllUntyped() {
		entries = append(entries, entry{key: toHashableString(k), value: toHashableString(v)})
	}
	slices.SortFunc(entries, func(a, b entry) int {
		return strings.Compare(a.key, b.key)
	})

	var builder strings.Builder
	builder.WriteString("{")
	for _, e := range entries {
		builder.WriteString(token('k', e.key))
		builder.WriteString(token('v', e.value))
	}
	builder.WriteString("}")
	return builder.String()
}
