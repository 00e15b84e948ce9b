package cuid2

import (
	"crypto/sha256"
	"encoding/binary"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMix_FieldOrder(t *testing.T) {
	ts := time.Unix(1_739_228_539, 987_654_321)
	fp := Fingerprint{0xaa, 0xbb}
	random := []byte("sixteen-byte-rnd")

	var want []byte
	want = binary.BigEndian.AppendUint64(want, uint64(ts.Unix()))
	want = binary.BigEndian.AppendUint32(want, uint32(ts.Nanosecond()))
	want = binary.BigEndian.AppendUint64(want, 99)
	want = append(want, fp[:]...)
	want = append(want, random...)

	assert.Equal(t, Digest(sha256.Sum256(want)), Mix(ts, 99, fp, random))
}

func TestMix_EveryInputMatters(t *testing.T) {
	ts := time.Unix(1_700_000_000, 1)
	fp := Fingerprint{1}
	random := []byte("0123456789abcdef")
	base := Mix(ts, 1, fp, random)

	tests := []struct {
		name string
		got  Digest
	}{
		{"timestamp nanos", Mix(ts.Add(time.Nanosecond), 1, fp, random)},
		{"timestamp seconds", Mix(ts.Add(time.Second), 1, fp, random)},
		{"counter", Mix(ts, 2, fp, random)},
		{"fingerprint", Mix(ts, 1, Fingerprint{2}, random)},
		{"random", Mix(ts, 1, fp, []byte("0123456789abcdeF"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEqual(t, base, tt.got)
		})
	}
}

func TestMix_TruncatesOversizedRandom(t *testing.T) {
	ts := time.Unix(0, 0)
	random := make([]byte, MaxRandomBytes+8)
	random[MaxRandomBytes] = 0xff

	assert.Equal(t, Mix(ts, 0, Fingerprint{}, random[:MaxRandomBytes]), Mix(ts, 0, Fingerprint{}, random))
}
