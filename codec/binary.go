package codec

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
)

// File format: a 12-byte header (magic, version, entry count, all
// uint32 little-endian) followed by the entries. Each entry is two
// length-prefixed cells — key then value — holding the JSON encoding
// of the field, which keeps the framing byte-exact while supporting
// any JSON-marshalable key and value type, unicode included.
const (
	// Magic identifies a cachekit snapshot ("CCHE" little-endian).
	Magic uint32 = 0x45484343
	// Version is the current format version.
	Version uint32 = 1

	headerSize = 12
)

// Decode error taxonomy. All are wrapped with positional context.
var (
	ErrBadMagic   = errors.New("codec: bad magic number")
	ErrBadVersion = errors.New("codec: unsupported format version")
	ErrTruncated  = errors.New("codec: unexpected end of data")
)

// Binary is the framed binary Codec. Stateless and safe for concurrent
// use.
type Binary[K comparable, V any] struct{}

// NewBinary returns the binary codec.
func NewBinary[K comparable, V any]() Binary[K, V] { return Binary[K, V]{} }

// Encode serializes one pair as two length-prefixed cells.
func (Binary[K, V]) Encode(key K, value V) ([]byte, error) {
	var buf []byte
	buf, err := appendCell(buf, key)
	if err != nil {
		return nil, fmt.Errorf("codec: encode key: %w", err)
	}
	buf, err = appendCell(buf, value)
	if err != nil {
		return nil, fmt.Errorf("codec: encode value: %w", err)
	}
	return buf, nil
}

// Decode parses one pair produced by Encode.
func (Binary[K, V]) Decode(data []byte) (K, V, error) {
	var key K
	var value V

	rest, err := readCell(data, &key)
	if err != nil {
		return key, value, fmt.Errorf("codec: decode key: %w", err)
	}
	if _, err := readCell(rest, &value); err != nil {
		return key, value, fmt.Errorf("codec: decode value: %w", err)
	}
	return key, value, nil
}

// EncodeAll serializes the collection with the magic/version/count
// header.
func (b Binary[K, V]) EncodeAll(entries []Entry[K, V]) ([]byte, error) {
	buf := make([]byte, 0, headerSize+16*len(entries))
	buf = binary.LittleEndian.AppendUint32(buf, Magic)
	buf = binary.LittleEndian.AppendUint32(buf, Version)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(entries)))

	for i, e := range entries {
		cell, err := b.Encode(e.Key, e.Value)
		if err != nil {
			return nil, fmt.Errorf("codec: entry %d: %w", i, err)
		}
		buf = append(buf, cell...)
	}
	return buf, nil
}

// DecodeAll parses a collection produced by EncodeAll, validating the
// header before reading any entry.
func (Binary[K, V]) DecodeAll(data []byte) ([]Entry[K, V], error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("codec: header: %w", ErrTruncated)
	}
	if m := binary.LittleEndian.Uint32(data[0:4]); m != Magic {
		return nil, fmt.Errorf("%w: 0x%08x", ErrBadMagic, m)
	}
	if v := binary.LittleEndian.Uint32(data[4:8]); v != Version {
		return nil, fmt.Errorf("%w: %d", ErrBadVersion, v)
	}
	count := binary.LittleEndian.Uint32(data[8:12])

	rest := data[headerSize:]
	entries := make([]Entry[K, V], 0, count)
	for i := uint32(0); i < count; i++ {
		var e Entry[K, V]
		var err error
		rest, err = readCell(rest, &e.Key)
		if err != nil {
			return nil, fmt.Errorf("codec: entry %d key: %w", i, err)
		}
		rest, err = readCell(rest, &e.Value)
		if err != nil {
			return nil, fmt.Errorf("codec: entry %d value: %w", i, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// appendCell appends a length-prefixed JSON cell for v.
func appendCell(buf []byte, v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(body)))
	return append(buf, body...), nil
}

// readCell parses one length-prefixed JSON cell into out and returns
// the remaining bytes.
func readCell(data []byte, out any) ([]byte, error) {
	if len(data) < 4 {
		return nil, ErrTruncated
	}
	n := binary.LittleEndian.Uint32(data[0:4])
	data = data[4:]
	if uint32(len(data)) < n {
		return nil, ErrTruncated
	}
	if err := json.Unmarshal(data[:n], out); err != nil {
		return nil, err
	}
	return data[n:], nil
}

var _ Codec[string, int] = Binary[string, int]{}
