package sequencedmap

import "iter"

// Len returns the number of elements in the map. nil safe.
func Len[K comparable, V any](m *Map[K, V]) int {
	return m.Len()
}

// From creates a new map from the given sequence.
func From[K comparable, V any](seq iter.Seq2[K, V]) *Map[K, V] {
	newMap := New[K, V]()

	for k, v := range seq {
		newMap.Set(k, v)
	}

	return newMap
}

// Merge sets every element of src into dst, in src's order. Existing keys keep their position in dst.
func Merge[K comparable, V any](dst, src *Map[K, V]) {
	for k, v := range src.All() {
		dst.Set(k, v)
	}
}
