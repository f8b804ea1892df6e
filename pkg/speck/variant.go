package speck

import "fmt"

// Variant is the parameter set of one member of the SPECK family.
type Variant struct {
	Name        string
	WordSize    int // bytes per word
	KeyWords    int
	Rounds      int
	RotateLeft  int
	RotateRight int
}

// KeySize returns the raw key length in bytes.
func (v Variant) KeySize() int { return v.KeyWords * v.WordSize }

// BlockSize returns the block length in bytes.
func (v Variant) BlockSize() int { return 2 * v.WordSize }

func (v Variant) String() string { return v.Name }

var (
	speck64_96   = Variant{Name: "SPECK-64/96", WordSize: 4, KeyWords: 3, Rounds: 26, RotateLeft: 3, RotateRight: 8}
	speck64_128  = Variant{Name: "SPECK-64/128", WordSize: 4, KeyWords: 4, Rounds: 27, RotateLeft: 3, RotateRight: 8}
	speck128_128 = Variant{Name: "SPECK-128/128", WordSize: 8, KeyWords: 2, Rounds: 32, RotateLeft: 3, RotateRight: 8}
	speck128_192 = Variant{Name: "SPECK-128/192", WordSize: 8, KeyWords: 3, Rounds: 33, RotateLeft: 3, RotateRight: 8}
	speck128_256 = Variant{Name: "SPECK-128/256", WordSize: 8, KeyWords: 4, Rounds: 34, RotateLeft: 3, RotateRight: 8}

	variants = []Variant{speck64_96, speck64_128, speck128_128, speck128_192, speck128_256}
)

// Variants returns the supported parameter sets, smallest first.
func Variants() []Variant {
	out := make([]Variant, len(variants))
	copy(out, variants)
	return out
}

// LookupVariant finds a variant by name, e.g. "SPECK-128/256".
func LookupVariant(name string) (Variant, error) {
	for _, v := range variants {
		if v.Name == name {
			return v, nil
		}
	}
	return Variant{}, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
}
