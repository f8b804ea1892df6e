package speck

// round is one SPECK round. alpha is the left rotation applied to y, beta the
// right rotation applied to x.
func round[W Word](x, y, k W, alpha, beta int) (W, W) {
	x = rotr(x, beta)
	x += y
	x ^= k

	y = rotl(y, alpha)
	y ^= x

	return x, y
}

// unround inverts round for the same k.
func unround[W Word](x, y, k W, alpha, beta int) (W, W) {
	y ^= x
	y = rotr(y, alpha)

	x ^= k
	x -= y
	x = rotl(x, beta)

	return x, y
}

// maxKeyWords bounds the leftover buffer of the key schedule.
const maxKeyWords = 4

// expandKey derives v.Rounds round keys from v.KeyWords key words. Word 0 is
// the running key, the others seed the leftover buffer that is cycled
// through with index r mod (KeyWords-1).
func expandKey[W Word](v Variant, words []W) []W {
	var l [maxKeyWords - 1]W
	n := copy(l[:], words[1:v.KeyWords])
	k := words[0]

	roundKeys := make([]W, v.Rounds)
	for r := range roundKeys {
		roundKeys[r] = k

		i := r % n
		l[i], k = round(l[i], k, W(r), v.RotateLeft, v.RotateRight)
	}
	return roundKeys
}
