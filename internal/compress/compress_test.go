package compress

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundTrip(t *testing.T) {
	text := []byte(strings.Repeat("the quick brown fox jumps over the lazy dog. ", 200))

	tests := []struct {
		name  string
		codec Compress
	}{
		{"nop", NewNop()},
		{"gzip", NewGZip()},
		{"brotli", NewBrotli()},
		{"lz4", NewLZ4()},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			encoded, err := test.codec.Encode(text)
			assert.NoError(t, err)

			decoded, err := test.codec.Decode(encoded)
			assert.NoError(t, err)
			assert.Equal(t, text, decoded)
		})
	}
}

func TestRoundTrip_Empty(t *testing.T) {
	for _, codec := range []Compress{NewNop(), NewGZip(), NewBrotli(), NewLZ4()} {
		encoded, err := codec.Encode([]byte{})
		assert.NoError(t, err)

		decoded, err := codec.Decode(encoded)
		assert.NoError(t, err)
		assert.Empty(t, decoded)
	}
}

func TestFromName(t *testing.T) {
	assert.IsType(t, GZip{}, FromName(NameGZip))
	assert.IsType(t, Brotli{}, FromName(NameBrotli))
	assert.IsType(t, LZ4{}, FromName(NameLZ4))
	assert.IsType(t, Nop{}, FromName(NameNop))
	assert.IsType(t, Nop{}, FromName("zstd"))
}

func TestName(t *testing.T) {
	for _, name := range []string{NameNop, NameGZip, NameBrotli, NameLZ4} {
		assert.Equal(t, name, Name(FromName(name)))
	}
}
