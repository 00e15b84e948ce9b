package cuid2

import "crypto/sha256"

const (
	bitsPerSymbol = 5
	symbolMask    = 1<<bitsPerSymbol - 1

	// encodedBytes is the number of digest bytes needed for Length symbols.
	encodedBytes = (Length*bitsPerSymbol + 7) / 8
)

// extendSuffix separates the extension hash domain from Mix.
const extendSuffix = "cuid2/extend"

// Encode maps the leading 120 bits of digest onto Length symbols, reading 5
// bits per symbol from the most significant bit. The first symbol is
// restricted to letters by taking its value modulo the letter count.
//
// A digest shorter than 15 bytes is extended with SHA-256(digest ||
// "cuid2/extend" || i) for i = 0, 1, ... until it is long enough. Encode is
// pure: equal digests always produce equal identifiers.
func Encode(digest []byte) string {
	if len(digest) >= encodedBytes {
		return encodeBits(digest)
	}
	return encodeBits(extend(digest))
}

// encodeDigest encodes a full Digest without copying it.
func encodeDigest(d *Digest) string {
	return encodeBits(d[:])
}

// encodeBits encodes the first encodedBytes of src, which must be at least
// that long. src is only read.
func encodeBits(src []byte) string {
	var out [Length]byte
	for i := range out {
		v := symbolAt(src, i*bitsPerSymbol)
		if i == 0 {
			out[i] = Alphabet[letterOffset+int(v)%letterCount]
			continue
		}
		out[i] = Alphabet[v]
	}

	return string(out[:])
}

// symbolAt extracts the 5-bit big-endian value starting at bit offset bit.
func symbolAt(src []byte, bit int) byte {
	idx, shift := bit/8, bit%8

	w := uint16(src[idx]) << 8
	if idx+1 < len(src) {
		w |= uint16(src[idx+1])
	}

	return byte(w>>(16-bitsPerSymbol-shift)) & symbolMask
}

func extend(digest []byte) []byte {
	out := make([]byte, len(digest), len(digest)+DigestSize)
	copy(out, digest)

	input := make([]byte, 0, len(digest)+len(extendSuffix)+1)
	input = append(input, digest...)
	input = append(input, extendSuffix...)
	input = append(input, 0)

	for i := 0; len(out) < encodedBytes; i++ {
		input[len(input)-1] = byte(i)
		block := sha256.Sum256(input)
		out = append(out, block[:]...)
	}

	return out
}
