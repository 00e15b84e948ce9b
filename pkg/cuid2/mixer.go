package cuid2

import (
	"crypto/sha256"
	"encoding/binary"
	"time"
)

// DigestSize is the size of a Digest in bytes.
const DigestSize = sha256.Size

// Digest is the SHA-256 output of Mix.
type Digest [DigestSize]byte

const (
	// MinRandomBytes and MaxRandomBytes bound the amount of fresh randomness
	// mixed into each identifier.
	MinRandomBytes = 16
	MaxRandomBytes = 64

	// DefaultRandomBytes is used when no WithRandomBytes option is given.
	DefaultRandomBytes = 32

	// mixHeaderSize covers seconds (8), nanoseconds (4) and counter (8)
	// followed by the fingerprint.
	mixHeaderSize = 8 + 4 + 8 + FingerprintSize
)

// Mix hashes its inputs into a Digest. The buffer layout, all big-endian, is:
//
//	[0:8)    timestamp seconds since the Unix epoch
//	[8:12)   timestamp nanoseconds within the second
//	[12:20)  counter
//	[20:52)  fingerprint
//	[52:)    random
//
// random longer than MaxRandomBytes is truncated.
func Mix(ts time.Time, counter uint64, fp Fingerprint, random []byte) Digest {
	if len(random) > MaxRandomBytes {
		random = random[:MaxRandomBytes]
	}

	var buf [mixHeaderSize + MaxRandomBytes]byte
	binary.BigEndian.PutUint64(buf[0:8], uint64(ts.Unix()))
	binary.BigEndian.PutUint32(buf[8:12], uint32(ts.Nanosecond()))
	binary.BigEndian.PutUint64(buf[12:20], counter)
	copy(buf[20:mixHeaderSize], fp[:])
	n := mixHeaderSize + copy(buf[mixHeaderSize:], random)

	return sha256.Sum256(buf[:n])
}
