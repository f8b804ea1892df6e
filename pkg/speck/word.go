package speck

import (
	"encoding/binary"
	"math"
)

// Word is the unsigned integer a block half is made of.
type Word interface {
	~uint32 | ~uint64
}

// wordSize returns the size of W in bytes.
func wordSize[W Word]() int {
	if uint64(^W(0)) == math.MaxUint32 {
		return 4
	}
	return 8
}

func wordBits[W Word]() int { return 8 * wordSize[W]() }

// loadWord decodes a little-endian word. b must hold at least wordSize bytes.
func loadWord[W Word](b []byte) W {
	if wordSize[W]() == 4 {
		return W(binary.LittleEndian.Uint32(b))
	}
	return W(binary.LittleEndian.Uint64(b))
}

// storeWord encodes w little-endian into b.
func storeWord[W Word](b []byte, w W) {
	if wordSize[W]() == 4 {
		binary.LittleEndian.PutUint32(b, uint32(w))
		return
	}
	binary.LittleEndian.PutUint64(b, uint64(w))
}

// rotl rotates x left by n bits, 0 <= n < bits.
func rotl[W Word](x W, n int) W {
	return x<<n | x>>(wordBits[W]()-n)
}

// rotr rotates x right by n bits, 0 <= n < bits.
func rotr[W Word](x W, n int) W {
	return x>>n | x<<(wordBits[W]()-n)
}
