package cuid2

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLength is returned when the input is not Length bytes long.
	ErrInvalidLength = errors.New("invalid length")
	// ErrInvalidChar is returned when the input contains a byte outside Alphabet.
	ErrInvalidChar = errors.New("invalid character")
	// ErrLeadingChar is returned when the first character is a digit.
	ErrLeadingChar = errors.New("first character must be a letter")
)

// alphabetIndex maps a byte to its position in Alphabet, or -1.
var alphabetIndex = func() [256]int8 {
	var t [256]int8
	for i := range t {
		t[i] = -1
	}
	for i := 0; i < len(Alphabet); i++ {
		t[Alphabet[i]] = int8(i)
	}
	return t
}()

// Validate reports why s is not a well-formed identifier, or nil.
func Validate(s string) error {
	if len(s) != Length {
		return fmt.Errorf("%w: got %d characters, want %d", ErrInvalidLength, len(s), Length)
	}

	for i := 0; i < len(s); i++ {
		if alphabetIndex[s[i]] < 0 {
			return fmt.Errorf("%w %q at position %d", ErrInvalidChar, s[i], i)
		}
	}

	if alphabetIndex[s[0]] < letterOffset {
		return fmt.Errorf("%w, got %q", ErrLeadingChar, s[0])
	}

	return nil
}

// IsValid reports whether s is a well-formed identifier.
func IsValid(s string) bool {
	return Validate(s) == nil
}
