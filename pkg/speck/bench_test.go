package speck

import "testing"

func benchmarkSeal(b *testing.B, c BlockCipher) {
	buf := make([]byte, c.BlockSize())
	b.SetBytes(int64(len(buf)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := c.SealInPlace(buf); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkSpeck64_96(b *testing.B)   { benchmarkSeal(b, New64_96Words([3]uint32{0, 1, 2})) }
func BenchmarkSpeck64_128(b *testing.B)  { benchmarkSeal(b, New64_128Words([4]uint32{0, 1, 2, 4})) }
func BenchmarkSpeck128_128(b *testing.B) { benchmarkSeal(b, New128_128Words([2]uint64{0, 1})) }
func BenchmarkSpeck128_192(b *testing.B) { benchmarkSeal(b, New128_192Words([3]uint64{0, 1, 2})) }
func BenchmarkSpeck128_256(b *testing.B) { benchmarkSeal(b, New128_256Words([4]uint64{0, 1, 2, 4})) }

func BenchmarkExpandKey128_256(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = New128_256Words([4]uint64{0, 1, 2, 4})
	}
}
