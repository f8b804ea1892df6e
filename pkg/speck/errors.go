package speck

import (
	"errors"
	"fmt"
)

// ErrInvalidLength is the sentinel every *LengthError unwraps to.
var ErrInvalidLength = errors.New("speck: invalid length")

// ErrUnknownVariant is returned by NewCipher and LookupVariant for names
// outside the variant table.
var ErrUnknownVariant = errors.New("speck: unknown variant")

// LengthError reports a key or block whose length does not match the variant.
type LengthError struct {
	Op   string // "key", "seal" or "open"
	Want int
	Got  int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("speck: invalid %s length %d, want %d bytes", e.Op, e.Got, e.Want)
}

func (e *LengthError) Unwrap() error { return ErrInvalidLength }
