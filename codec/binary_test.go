package codec

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinary_EncodeDecodePair(t *testing.T) {
	t.Parallel()

	c := NewBinary[string, string]()
	for name, pair := range map[string][2]string{
		"ascii":    {"key", "value"},
		"empty":    {"", ""},
		"unicode":  {"ключ", "значение 🙂"},
		"json-ish": {`{"k":1}`, `["a","b"]`},
	} {
		pair := pair
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			data, err := c.Encode(pair[0], pair[1])
			require.NoError(t, err)

			k, v, err := c.Decode(data)
			require.NoError(t, err)
			assert.Equal(t, pair[0], k)
			assert.Equal(t, pair[1], v)
		})
	}
}

func TestBinary_StructValues(t *testing.T) {
	t.Parallel()

	type session struct {
		User  string   `json:"user"`
		Seen  int64    `json:"seen"`
		Roles []string `json:"roles"`
	}

	c := NewBinary[int, session]()
	in := session{User: "ada", Seen: 1724371200, Roles: []string{"admin", "ops"}}

	data, err := c.Encode(42, in)
	require.NoError(t, err)

	k, v, err := c.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, 42, k)
	assert.Equal(t, in, v)
}

func TestBinary_EncodeAllRoundTrip(t *testing.T) {
	t.Parallel()

	c := NewBinary[string, int]()
	in := []Entry[string, int]{
		{Key: "a", Value: 1},
		{Key: "", Value: 0},
		{Key: "αβγ", Value: -7},
	}

	data, err := c.EncodeAll(in)
	require.NoError(t, err)
	require.Equal(t, Magic, binary.LittleEndian.Uint32(data[0:4]))
	require.Equal(t, Version, binary.LittleEndian.Uint32(data[4:8]))
	require.Equal(t, uint32(len(in)), binary.LittleEndian.Uint32(data[8:12]))

	out, err := c.DecodeAll(data)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestBinary_EmptyCollection(t *testing.T) {
	t.Parallel()

	c := NewBinary[string, int]()
	data, err := c.EncodeAll(nil)
	require.NoError(t, err)
	require.Len(t, data, 12) // header only

	out, err := c.DecodeAll(data)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestBinary_DecodeErrors(t *testing.T) {
	t.Parallel()

	c := NewBinary[string, int]()
	valid, err := c.EncodeAll([]Entry[string, int]{{Key: "a", Value: 1}})
	require.NoError(t, err)

	t.Run("bad magic", func(t *testing.T) {
		t.Parallel()
		data := append([]byte(nil), valid...)
		data[0] ^= 0xff
		_, err := c.DecodeAll(data)
		assert.ErrorIs(t, err, ErrBadMagic)
	})

	t.Run("bad version", func(t *testing.T) {
		t.Parallel()
		data := append([]byte(nil), valid...)
		binary.LittleEndian.PutUint32(data[4:8], Version+1)
		_, err := c.DecodeAll(data)
		assert.ErrorIs(t, err, ErrBadVersion)
	})

	t.Run("short header", func(t *testing.T) {
		t.Parallel()
		_, err := c.DecodeAll(valid[:8])
		assert.ErrorIs(t, err, ErrTruncated)
	})

	t.Run("truncated entry", func(t *testing.T) {
		t.Parallel()
		_, err := c.DecodeAll(valid[:len(valid)-2])
		assert.ErrorIs(t, err, ErrTruncated)
	})

	t.Run("count beyond data", func(t *testing.T) {
		t.Parallel()
		data := append([]byte(nil), valid...)
		binary.LittleEndian.PutUint32(data[8:12], 5)
		_, err := c.DecodeAll(data)
		assert.ErrorIs(t, err, ErrTruncated)
	})
}

func TestBinary_DecodePairTruncated(t *testing.T) {
	t.Parallel()

	c := NewBinary[string, string]()
	data, err := c.Encode("key", "value")
	require.NoError(t, err)

	_, _, err = c.Decode(data[:3])
	assert.ErrorIs(t, err, ErrTruncated)

	_, _, err = c.Decode(data[:len(data)-1])
	assert.ErrorIs(t, err, ErrTruncated)
}
