package element

import (
	"bytes"
	"testing"

	"pgregory.net/rapid"
)

// rleMethods excludes ZERO and NONE, whose round-trip behavior is trivial
// (ZERO always decodes to all-zero; NONE is a raw copy) and are covered by
// TestRoundTripMethods instead.
var rleMethods = []Method{RLE88, RLE48, RLE28, RLE44, RLE26, HALF}

// TestRoundTripProperty checks spec §8 law 7: decompress(compress(block)) ==
// block for arbitrary blocks, for every method in rleMethods, at every
// length >= 1. RLE44 and HALF keep only 4-bit datums and RLE26 only 6-bit
// datums (the methods are lossy outside their bit width by construction),
// so the property is checked on data already reduced to that width.
func TestRoundTripProperty(t *testing.T) {
	for _, m := range rleMethods {
		m := m
		t.Run(m.String(), func(t *testing.T) {
			rapid.Check(t, func(t *rapid.T) {
				n := rapid.IntRange(1, 200).Draw(t, "n")
				data := make([]byte, n)
				for i := range data {
					data[i] = byte(rapid.IntRange(0, 255).Draw(t, "b"))
				}
				data = reduceToWidth(m, data)

				var buf bytes.Buffer
				if err := Compress(m, data, &buf); err != nil {
					t.Fatalf("Compress: %v", err)
				}
				dst := make([]byte, len(data))
				if err := Decompress(m, dst, bytes.NewReader(buf.Bytes()), false); err != nil {
					t.Fatalf("Decompress: %v", err)
				}
				if !bytes.Equal(dst, data) {
					t.Fatalf("round trip mismatch for %s: got %v, want %v", m, dst, data)
				}
			})
		})
	}
}

// TestDecompressNeverReadsPastDeclaredLength checks spec §8 law 8: a
// decompressor never reads more bytes than required to produce its declared
// output length, by feeding it exactly a valid encoding plus trailing
// sentinel bytes and checking the sentinel survives untouched.
func TestDecompressNeverReadsPastDeclaredLength(t *testing.T) {
	for _, m := range rleMethods {
		m := m
		t.Run(m.String(), func(t *testing.T) {
			rapid.Check(t, func(t *rapid.T) {
				n := rapid.IntRange(1, 64).Draw(t, "n")
				data := make([]byte, n)
				for i := range data {
					data[i] = byte(rapid.IntRange(0, 255).Draw(t, "b"))
				}
				data = reduceToWidth(m, data)

				var buf bytes.Buffer
				if err := Compress(m, data, &buf); err != nil {
					t.Fatalf("Compress: %v", err)
				}
				sentinel := []byte{0xDE, 0xAD, 0xBE, 0xEF}
				buf.Write(sentinel)

				dst := make([]byte, len(data))
				r := bytes.NewReader(buf.Bytes())
				if err := Decompress(m, dst, r, false); err != nil {
					t.Fatalf("Decompress: %v", err)
				}
				rest := make([]byte, len(sentinel))
				if _, err := r.Read(rest); err != nil {
					t.Fatalf("reading sentinel: %v", err)
				}
				if !bytes.Equal(rest, sentinel) {
					t.Fatalf("decoder consumed into sentinel: got %v, want %v", rest, sentinel)
				}
			})
		})
	}
}

func reduceToWidth(m Method, data []byte) []byte {
	out := make([]byte, len(data))
	switch m {
	case RLE44, HALF:
		for i, b := range data {
			out[i] = b & 0xF
		}
	case RLE26:
		for i, b := range data {
			out[i] = b & 0x3F
		}
	default:
		copy(out, data)
	}
	return out
}
