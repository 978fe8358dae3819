package bits

// SignExtend8 sign-extends the low n bits of x (1 <= n <= 8) to a full byte,
// by replicating the top bit of the n-bit field into the unused high bits.
//
// This is the datum sign-extension rule used by the RLE44 (n=4), RLE26 (n=6)
// and HALF (n=4) element methods: the top bit of a 4-bit or 6-bit datum is
// copied into bits [n,8) when the method's sign-extend flag is set.
func SignExtend8(x byte, n uint) byte {
	return byte(IntN(uint64(x), n))
}
