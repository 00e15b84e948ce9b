// Package cuid2 generates fixed-length, collision-resistant identifiers.
//
// Every identifier is 24 characters long. The first character is a lowercase
// letter and the rest are drawn from a 32 symbol alphabet of digits and
// lowercase letters without i, l, o and u:
//
//	id, err := cuid2.Generate()
//
// Identifiers are built by hashing a timestamp, a per-process counter, a
// per-process fingerprint and fresh random bytes with SHA-256, then encoding
// the leading 120 bits of the digest. They are not sortable and carry no
// recoverable information.
package cuid2

import "errors"

const (
	// Length is the number of characters in every identifier.
	Length = 24

	// Alphabet is the ordered output alphabet. Index 10 onwards are letters.
	Alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

	// letterOffset is the index of the first letter in Alphabet.
	letterOffset = 10
	// letterCount is the number of letters in Alphabet.
	letterCount = len(Alphabet) - letterOffset
)

var (
	// ErrEntropyUnavailable is returned when the secure random source cannot
	// supply bytes.
	ErrEntropyUnavailable = errors.New("entropy unavailable")

	// ErrInitializationFailed is returned when the fingerprint or counter seed
	// could not be computed.
	ErrInitializationFailed = errors.New("initialization failed")

	// ErrGenerationFailed wraps every failure surfaced by Generate.
	ErrGenerationFailed = errors.New("generation failed")
)

var defaultGenerator = New()

// Default returns the process-wide generator used by the package level
// functions.
func Default() *Generator {
	return defaultGenerator
}

// Initialize eagerly initializes the default generator. Calling it is
// optional; Generate initializes on first use.
func Initialize() error {
	return defaultGenerator.Initialize()
}

// Generate returns a new identifier from the default generator.
func Generate() (string, error) {
	return defaultGenerator.Generate()
}

// MustGenerate is like Generate but panics if an identifier cannot be
// produced.
func MustGenerate() string {
	id, err := defaultGenerator.Generate()
	if err != nil {
		panic(err)
	}
	return id
}
