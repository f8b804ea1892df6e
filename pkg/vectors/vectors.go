// Package vectors loads SPECK known-answer tests from TOML and checks them
// against pkg/speck.
package vectors

import (
	"bytes"
	_ "embed"
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	"speck-go/pkg/speck"

	"github.com/pelletier/go-toml/v2"
)

//go:embed vectors.toml
var defaultVectors []byte

// Vector is one (variant, key, plaintext, ciphertext) triple, hex encoded.
type Vector struct {
	Name       string `toml:"name"`
	Key        string `toml:"key"`
	Plaintext  string `toml:"plaintext"`
	Ciphertext string `toml:"ciphertext"`
}

type document struct {
	Vectors []Vector `toml:"vectors"`
}

// ErrNoVectors is returned when a document holds no [[vectors]] entries.
var ErrNoVectors = errors.New("vectors: no test vectors found")

// MismatchError reports a vector whose computed output differs from the
// expected one.
type MismatchError struct {
	Name string
	Op   string // "seal" or "open"
	Got  []byte
	Want []byte
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("vectors: %s %s mismatch: got %x, want %x", e.Name, e.Op, e.Got, e.Want)
}

// Parse decodes a TOML document of [[vectors]] tables.
func Parse(data []byte) ([]Vector, error) {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("vectors: failed to parse toml: %w", err)
	}
	if len(doc.Vectors) == 0 {
		return nil, ErrNoVectors
	}
	return doc.Vectors, nil
}

// Load reads and parses the vector file at path.
func Load(path string) ([]Vector, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("vectors: failed to read %s: %w", path, err)
	}
	return Parse(data)
}

// Default returns the embedded published vectors, one per variant.
func Default() []Vector {
	vs, err := Parse(defaultVectors)
	if err != nil {
		panic(err)
	}
	return vs
}

// Check seals the plaintext, compares it with the ciphertext and opens it
// back.
func (v Vector) Check() error {
	key, err := hex.DecodeString(v.Key)
	if err != nil {
		return fmt.Errorf("vectors: %s: bad key hex: %w", v.Name, err)
	}
	plaintext, err := hex.DecodeString(v.Plaintext)
	if err != nil {
		return fmt.Errorf("vectors: %s: bad plaintext hex: %w", v.Name, err)
	}
	ciphertext, err := hex.DecodeString(v.Ciphertext)
	if err != nil {
		return fmt.Errorf("vectors: %s: bad ciphertext hex: %w", v.Name, err)
	}

	c, err := speck.NewCipher(v.Name, key)
	if err != nil {
		return fmt.Errorf("vectors: %s: %w", v.Name, err)
	}

	buf := bytes.Clone(plaintext)
	if err := c.SealInPlace(buf); err != nil {
		return fmt.Errorf("vectors: %s: %w", v.Name, err)
	}
	if !bytes.Equal(buf, ciphertext) {
		return &MismatchError{Name: v.Name, Op: "seal", Got: buf, Want: ciphertext}
	}
	if err := c.OpenInPlace(buf); err != nil {
		return fmt.Errorf("vectors: %s: %w", v.Name, err)
	}
	if !bytes.Equal(buf, plaintext) {
		return &MismatchError{Name: v.Name, Op: "open", Got: buf, Want: plaintext}
	}
	return nil
}

// Result is the outcome of checking one vector.
type Result struct {
	Vector Vector
	Err    error
}

// CheckAll checks every vector and reports each outcome in order.
func CheckAll(vs []Vector) []Result {
	results := make([]Result, len(vs))
	for i, v := range vs {
		results[i] = Result{Vector: v, Err: v.Check()}
	}
	return results
}
