package cuid2

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/crypto/sha3"
)

// EntropySource supplies unpredictable bytes.
type EntropySource interface {
	// Fill fills p entirely or returns an error. Implementations must not
	// fall back to a weaker source.
	Fill(p []byte) error
}

// CryptoSource reads from the operating system's secure random generator.
type CryptoSource struct{}

// Fill implements EntropySource.
func (CryptoSource) Fill(p []byte) error {
	if _, err := rand.Read(p); err != nil {
		return fmt.Errorf("%w: %w", ErrEntropyUnavailable, err)
	}
	return nil
}

// fillFrom reads from src and guarantees ErrEntropyUnavailable is in the
// error chain, whatever the source returned.
func fillFrom(src EntropySource, p []byte) error {
	err := src.Fill(p)
	if err == nil || errors.Is(err, ErrEntropyUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrEntropyUnavailable, err)
}

// FingerprintSize is the size of a Fingerprint in bytes.
const FingerprintSize = 32

// Fingerprint diverges identifiers produced by different processes. It is
// computed once per Generator and never changes afterwards.
type Fingerprint [FingerprintSize]byte

const fingerprintSeedSize = 32

var processStart = time.Now()

// NewFingerprint derives a fingerprint from random bytes read from src, the
// process id, the host name, the process start time and salt.
func NewFingerprint(src EntropySource, salt []byte) (Fingerprint, error) {
	var seed [fingerprintSeedSize]byte
	if err := fillFrom(src, seed[:]); err != nil {
		return Fingerprint{}, err
	}

	h := sha3.New256()
	_, _ = h.Write(seed[:])

	var scratch [8]byte
	binary.BigEndian.PutUint64(scratch[:], uint64(os.Getpid()))
	_, _ = h.Write(scratch[:])

	binary.BigEndian.PutUint64(scratch[:], uint64(processStart.UnixNano()))
	_, _ = h.Write(scratch[:])

	// The host name only adds divergence across machines; a lookup failure
	// leaves the random seed to carry it.
	if host, err := os.Hostname(); err == nil {
		_, _ = h.Write([]byte(host))
	}

	_, _ = h.Write(salt)

	var fp Fingerprint
	h.Sum(fp[:0])
	return fp, nil
}
