package drachen

import (
	"bytes"
	"testing"

	"pgregory.net/rapid"
)

// randomPermutation draws a uniformly-labeled permutation of [0,n) by
// drawing a Fisher-Yates shuffle of the identity table.
func randomPermutation(t *rapid.T, n int) []uint32 {
	perm := make([]uint32, n)
	for i := range perm {
		perm[i] = uint32(i)
	}
	for i := n - 1; i > 0; i-- {
		j := rapid.IntRange(0, i).Draw(t, "swap")
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}

// TestRoundTripFrameSequence checks spec §8 laws 1-3: encoding a sequence of
// frames then decoding reproduces every frame and name in order, and the
// previous-frame buffers agree at every boundary (verified indirectly: each
// decoded frame must equal what was encoded, which can only hold if P stays
// synchronized).
func TestRoundTripFrameSequence(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		frameSize := rapid.IntRange(1, 40).Draw(t, "frameSize")
		numFrames := rapid.IntRange(0, 6).Draw(t, "numFrames")
		perm := randomPermutation(t, frameSize)

		names := make([]string, numFrames)
		frames := make([][]byte, numFrames)
		for i := range frames {
			names[i] = rapid.StringMatching(`[a-zA-Z0-9_]{1,8}`).Draw(t, "name")
			data := make([]byte, frameSize)
			for j := range data {
				data[j] = byte(rapid.IntRange(0, 255).Draw(t, "byte"))
			}
			frames[i] = data
		}

		var out bytes.Buffer
		enc, err := NewEncoder(&out, uint32(frameSize), perm, nil)
		if err != nil {
			t.Fatalf("NewEncoder: %v", err)
		}
		for i, data := range frames {
			if err := enc.EncodeFrame(names[i], data); err != nil {
				t.Fatalf("EncodeFrame(%d): %v", i, err)
			}
		}

		dec, err := NewDecoder(bytes.NewReader(out.Bytes()), 0)
		if err != nil {
			t.Fatalf("NewDecoder: %v", err)
		}
		buf := make([]byte, frameSize)
		for i := range frames {
			name, err := dec.DecodeFrame(buf)
			if err != nil {
				t.Fatalf("DecodeFrame(%d): %v", i, err)
			}
			if name != names[i] {
				t.Fatalf("frame %d: name = %q, want %q", i, name, names[i])
			}
			if !bytes.Equal(buf, frames[i]) {
				t.Fatalf("frame %d: got %v, want %v", i, buf, frames[i])
			}
		}
		if _, err := dec.DecodeFrame(buf); !IsEndOfStream(err) {
			t.Fatalf("got %v, want end-of-stream after last frame", err)
		}
	})
}
