package cuid2

import (
	"bytes"
	"crypto/sha256"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_KnownDigests(t *testing.T) {
	tests := []struct {
		name   string
		digest []byte
		want   string
	}{
		{
			// First symbol 0 maps to the first letter; the rest are zeros.
			name:   "all zero",
			digest: make([]byte, DigestSize),
			want:   "a" + strings.Repeat("0", Length-1),
		},
		{
			// First symbol 31 maps to letter 31%22 = 9 (k); the rest are z.
			name:   "all ones",
			digest: bytes.Repeat([]byte{0xff}, DigestSize),
			want:   "k" + strings.Repeat("z", Length-1),
		},
		{
			// 0x08 0x42 0x10 ... is the bit pattern 00001 00001 00001 ...
			name:   "repeating one",
			digest: bytes.Repeat([]byte{0x08, 0x42, 0x10, 0x84, 0x21}, 3),
			want:   "b" + strings.Repeat("1", Length-1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Encode(tt.digest))
		})
	}
}

func TestEncode_Deterministic(t *testing.T) {
	d := Mix(time.Unix(1_739_228_539, 123_456_789), 42, Fingerprint{1, 2, 3}, []byte("0123456789abcdef"))

	first := Encode(d[:])
	for range 10 {
		assert.Equal(t, first, Encode(d[:]))
	}
	assert.Regexp(t, idPattern, first)
}

func TestEncode_IgnoresBitsPastPrefix(t *testing.T) {
	a := make([]byte, DigestSize)
	b := make([]byte, DigestSize)
	b[encodedBytes] = 0xff
	b[DigestSize-1] = 0xff

	assert.Equal(t, Encode(a), Encode(b))
}

func TestEncode_ShortDigestIsExtended(t *testing.T) {
	tests := []struct {
		name   string
		digest []byte
	}{
		{"empty", nil},
		{"one byte", []byte{0x5a}},
		{"one short of prefix", bytes.Repeat([]byte{0xa5}, encodedBytes-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := Encode(tt.digest)
			assert.Regexp(t, idPattern, id)
			assert.Equal(t, id, Encode(tt.digest))
		})
	}
}

func TestEncode_ExtensionKeepsDigestPrefix(t *testing.T) {
	// Eight bytes fill the first twelve symbols in full, so they must match
	// the encoding of the same bytes followed by anything.
	short := []byte{0x12, 0x34, 0x56, 0x78, 0x9a, 0xbc, 0xde, 0xf0}
	long := append(append([]byte(nil), short...), make([]byte, DigestSize)...)

	assert.Equal(t, Encode(long)[:12], Encode(short)[:12])
}

func TestEncode_ExtensionBlocks(t *testing.T) {
	short := []byte{0x01, 0x02}

	input := append(append([]byte(nil), short...), extendSuffix...)
	input = append(input, 0)
	block := sha256.Sum256(input)

	ext := extend(short)
	require.Len(t, ext, len(short)+DigestSize)
	assert.Equal(t, short, ext[:len(short)])
	assert.Equal(t, block[:], ext[len(short):])
}

func TestEncode_DigestMatchesSlice(t *testing.T) {
	d := Mix(time.Unix(1_739_228_539, 0), 7, Fingerprint{9}, []byte("0123456789abcdef"))

	assert.Equal(t, Encode(d[:]), encodeDigest(&d))
}

func TestEncode_FirstSymbolAlwaysLetter(t *testing.T) {
	d := make([]byte, DigestSize)
	for v := range 32 {
		d[0] = byte(v << 3)
		id := Encode(d)
		assert.GreaterOrEqual(t, strings.IndexByte(Alphabet, id[0]), letterOffset, "value %d encoded as %q", v, id[0])
	}
}

func TestEncode_SymbolDistribution(t *testing.T) {
	g := New()

	counts := make(map[byte]int)
	const n = 4000
	for range n {
		id, err := g.Generate()
		require.NoError(t, err)
		for i := 1; i < len(id); i++ {
			counts[id[i]]++
		}
	}

	// Every symbol is expected about n*23/32 times; allow a wide margin.
	require.Len(t, counts, len(Alphabet))
	expected := n * (Length - 1) / len(Alphabet)
	for c, got := range counts {
		assert.InDelta(t, expected, got, float64(expected)/4, "symbol %q", c)
	}
}
