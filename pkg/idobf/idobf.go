// Package idobf hides sequential identifiers behind a SPECK permutation.
//
// A 64-bit block variant maps every uint64 to another uint64, a 128-bit block
// variant maps every UUID to another UUID. Both mappings are bijective, so
// encoded identifiers never collide and decode back exactly.
package idobf

import (
	"encoding/binary"
	"errors"

	"speck-go/pkg/speck"

	"github.com/google/uuid"
)

// Codec encodes and decodes identifiers with a fixed cipher.
type Codec struct {
	cipher speck.BlockCipher
}

// New returns a Codec around c. c must not be nil.
func New(c speck.BlockCipher) (*Codec, error) {
	if c == nil {
		return nil, errors.New("idobf: nil cipher")
	}
	return &Codec{cipher: c}, nil
}

// Variant returns the variant of the underlying cipher.
func (c *Codec) Variant() speck.Variant { return c.cipher.Variant() }

// EncodeUint64 encrypts id. It needs a cipher with an 8-byte block and fails
// with a speck length error otherwise.
func (c *Codec) EncodeUint64(id uint64) (uint64, error) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], id)
	if err := c.cipher.SealInPlace(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// DecodeUint64 inverts EncodeUint64.
func (c *Codec) DecodeUint64(id uint64) (uint64, error) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], id)
	if err := c.cipher.OpenInPlace(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// EncodeUUID encrypts the 16 bytes of id. It needs a cipher with a 16-byte
// block.
func (c *Codec) EncodeUUID(id uuid.UUID) (uuid.UUID, error) {
	if err := c.cipher.SealInPlace(id[:]); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// DecodeUUID inverts EncodeUUID.
func (c *Codec) DecodeUUID(id uuid.UUID) (uuid.UUID, error) {
	if err := c.cipher.OpenInPlace(id[:]); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}
