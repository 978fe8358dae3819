// Package element implements the seven-method-plus-ZERO bit-packed codec
// that compresses or decompresses one run of bytes of a known length, and
// the element record header that precedes each run. It is the leaf
// component of the container format: the frame encoder and decoder both
// build on it, but it has no knowledge of frames, the previous frame,
// streams, or the stream header.
package element

// Method identifies one of the eight element compression schemes. The
// three-bit on-wire encoding (spec §4.2) matches the iota order here exactly:
// it is also the shift-right-by-2 value of the original C encoding's
// EE_CMP* constants (original_source/src/common.h).
type Method byte

// The eight element methods.
const (
	NONE Method = iota
	RLE88
	RLE48
	RLE28
	RLE44
	RLE26
	HALF
	ZERO
)

func (m Method) String() string {
	switch m {
	case NONE:
		return "NONE"
	case RLE88:
		return "RLE88"
	case RLE48:
		return "RLE48"
	case RLE28:
		return "RLE28"
	case RLE44:
		return "RLE44"
	case RLE26:
		return "RLE26"
	case HALF:
		return "HALF"
	case ZERO:
		return "ZERO"
	default:
		return "Method(?)"
	}
}
