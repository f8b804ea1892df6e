/*
Package speck implements the SPECK family of lightweight block ciphers.

SPECK operates on a block of two machine words and is parameterized by the word
size, the number of key words and the number of rounds. The supported variants are:

  - SPECK-64/96:   32-bit words, 12-byte key, 8-byte block, 26 rounds
  - SPECK-64/128:  32-bit words, 16-byte key, 8-byte block, 27 rounds
  - SPECK-128/128: 64-bit words, 16-byte key, 16-byte block, 32 rounds
  - SPECK-128/192: 64-bit words, 24-byte key, 16-byte block, 33 rounds
  - SPECK-128/256: 64-bit words, 32-byte key, 16-byte block, 34 rounds

This is a raw block primitive. It provides no mode of operation, no
authentication and no key derivation.

Basic usage:

	c, err := speck.New128_256(key) // key is 32 bytes
	if err != nil {
		return err
	}

	block := make([]byte, c.BlockSize())
	// fill block...
	if err := c.SealInPlace(block); err != nil {
		return err
	}
	if err := c.OpenInPlace(block); err != nil {
		return err
	}

Keys and blocks are read as little-endian words, word 0 first, which is the
byte order of the published SPECK test vectors. A Cipher never changes after
construction and may be shared between goroutines.
*/
package speck
