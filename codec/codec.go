// Package codec encodes cache entries to opaque bytes for persistence
// collaborators. The cache core never touches it; only stores in
// package persist do.
package codec

// Entry is one key/value pair in its persisted form.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// Codec converts entries to and from bytes. Implementations must
// round-trip exactly: DecodeAll(EncodeAll(entries)) == entries.
type Codec[K comparable, V any] interface {
	// Encode serializes one pair.
	Encode(key K, value V) ([]byte, error)
	// Decode parses one pair produced by Encode.
	Decode(data []byte) (K, V, error)
	// EncodeAll serializes a whole collection with framing and an
	// integrity header.
	EncodeAll(entries []Entry[K, V]) ([]byte, error)
	// DecodeAll parses a collection produced by EncodeAll.
	DecodeAll(data []byte) ([]Entry[K, V], error)
}
