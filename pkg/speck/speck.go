package speck

import "crypto/cipher"

// BlockCipher is the variant-independent view of a Cipher.
type BlockCipher interface {
	cipher.Block
	Variant() Variant
	SealInPlace(buf []byte) error
	OpenInPlace(buf []byte) error
}

// Cipher is a SPECK instance with its expanded key. It is immutable after
// construction.
type Cipher[W Word] struct {
	variant   Variant
	roundKeys []W
}

var (
	_ BlockCipher = (*Cipher[uint32])(nil)
	_ BlockCipher = (*Cipher[uint64])(nil)
)

func newCipher[W Word](v Variant, words []W) *Cipher[W] {
	return &Cipher[W]{
		variant:   v,
		roundKeys: expandKey(v, words),
	}
}

func newCipherKey[W Word](v Variant, key []byte) (*Cipher[W], error) {
	if len(key) != v.KeySize() {
		return nil, &LengthError{Op: "key", Want: v.KeySize(), Got: len(key)}
	}
	words := make([]W, v.KeyWords)
	for i := range words {
		words[i] = loadWord[W](key[i*v.WordSize:])
	}
	return newCipher(v, words), nil
}

// New64_96Words returns a SPECK-64/96 cipher for the key words k[0], k[1], k[2].
func New64_96Words(k [3]uint32) *Cipher[uint32] { return newCipher(speck64_96, k[:]) }

// New64_128Words returns a SPECK-64/128 cipher.
func New64_128Words(k [4]uint32) *Cipher[uint32] { return newCipher(speck64_128, k[:]) }

// New128_128Words returns a SPECK-128/128 cipher.
func New128_128Words(k [2]uint64) *Cipher[uint64] { return newCipher(speck128_128, k[:]) }

// New128_192Words returns a SPECK-128/192 cipher.
func New128_192Words(k [3]uint64) *Cipher[uint64] { return newCipher(speck128_192, k[:]) }

// New128_256Words returns a SPECK-128/256 cipher.
func New128_256Words(k [4]uint64) *Cipher[uint64] { return newCipher(speck128_256, k[:]) }

// New64_96 returns a SPECK-64/96 cipher for a 12-byte key.
func New64_96(key []byte) (*Cipher[uint32], error) { return newCipherKey[uint32](speck64_96, key) }

// New64_128 returns a SPECK-64/128 cipher for a 16-byte key.
func New64_128(key []byte) (*Cipher[uint32], error) { return newCipherKey[uint32](speck64_128, key) }

// New128_128 returns a SPECK-128/128 cipher for a 16-byte key.
func New128_128(key []byte) (*Cipher[uint64], error) { return newCipherKey[uint64](speck128_128, key) }

// New128_192 returns a SPECK-128/192 cipher for a 24-byte key.
func New128_192(key []byte) (*Cipher[uint64], error) { return newCipherKey[uint64](speck128_192, key) }

// New128_256 returns a SPECK-128/256 cipher for a 32-byte key.
func New128_256(key []byte) (*Cipher[uint64], error) { return newCipherKey[uint64](speck128_256, key) }

// NewCipher builds the variant called name from a raw key.
func NewCipher(name string, key []byte) (BlockCipher, error) {
	v, err := LookupVariant(name)
	if err != nil {
		return nil, err
	}
	if v.WordSize == 4 {
		c, err := newCipherKey[uint32](v, key)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	c, err := newCipherKey[uint64](v, key)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Variant returns the parameter set of c.
func (c *Cipher[W]) Variant() Variant { return c.variant }

// BlockSize returns the block length in bytes.
func (c *Cipher[W]) BlockSize() int { return c.variant.BlockSize() }

// EncryptWords encrypts one block. block[0] is the y half and block[1] the x
// half; the result uses the same layout.
func (c *Cipher[W]) EncryptWords(block [2]W) [2]W {
	y, x := block[0], block[1]
	for _, k := range c.roundKeys {
		x, y = round(x, y, k, c.variant.RotateLeft, c.variant.RotateRight)
	}
	return [2]W{y, x}
}

// DecryptWords inverts EncryptWords.
func (c *Cipher[W]) DecryptWords(block [2]W) [2]W {
	y, x := block[0], block[1]
	for i := len(c.roundKeys) - 1; i >= 0; i-- {
		x, y = unround(x, y, c.roundKeys[i], c.variant.RotateLeft, c.variant.RotateRight)
	}
	return [2]W{y, x}
}

// SealInPlace encrypts buf, which must be exactly one block long. On error
// buf is left untouched.
func (c *Cipher[W]) SealInPlace(buf []byte) error {
	if len(buf) != c.BlockSize() {
		return &LengthError{Op: "seal", Want: c.BlockSize(), Got: len(buf)}
	}
	c.store(buf, c.EncryptWords(c.load(buf)))
	return nil
}

// OpenInPlace decrypts buf, which must be exactly one block long. On error
// buf is left untouched.
func (c *Cipher[W]) OpenInPlace(buf []byte) error {
	if len(buf) != c.BlockSize() {
		return &LengthError{Op: "open", Want: c.BlockSize(), Got: len(buf)}
	}
	c.store(buf, c.DecryptWords(c.load(buf)))
	return nil
}

// Encrypt encrypts the first block of src into dst, as cipher.Block.
// dst and src may overlap entirely.
func (c *Cipher[W]) Encrypt(dst, src []byte) {
	bs := c.BlockSize()
	if len(src) < bs || len(dst) < bs {
		panic("speck: input not full block")
	}
	c.store(dst[:bs], c.EncryptWords(c.load(src[:bs])))
}

// Decrypt decrypts the first block of src into dst, as cipher.Block.
func (c *Cipher[W]) Decrypt(dst, src []byte) {
	bs := c.BlockSize()
	if len(src) < bs || len(dst) < bs {
		panic("speck: input not full block")
	}
	c.store(dst[:bs], c.DecryptWords(c.load(src[:bs])))
}

func (c *Cipher[W]) load(b []byte) [2]W {
	ws := c.variant.WordSize
	return [2]W{loadWord[W](b[:ws]), loadWord[W](b[ws:])}
}

func (c *Cipher[W]) store(b []byte, block [2]W) {
	ws := c.variant.WordSize
	storeWord(b[:ws], block[0])
	storeWord(b[ws:], block[1])
}
