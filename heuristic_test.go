package drachen

import (
	"testing"

	"github.com/mewkiz/drachen/element"
)

// TestConstantBlockChoosesZero checks spec §8 law 9.
func TestConstantBlockChoosesZero(t *testing.T) {
	data := []byte{7, 7, 7, 7, 7, 7, 7, 7}
	prev := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	m := optimalMethod(data, prev)
	if m.compression != element.ZERO {
		t.Fatalf("compression = %s, want ZERO", m.compression)
	}
}

// TestPrevMatchChoosesZeroPrevAdd checks spec §8 law 10.
func TestPrevMatchChoosesZeroPrevAdd(t *testing.T) {
	prev := []byte{10, 20, 30, 40, 255, 0, 9, 9}
	data := append([]byte(nil), prev...)
	m := optimalMethod(data, prev)
	if m.compression != element.ZERO {
		t.Fatalf("compression = %s, want ZERO", m.compression)
	}
	if !m.subPrev {
		t.Fatal("subPrev = false, want true for a block identical to prev")
	}
}

// TestMonotoneNibbleRangeNeverNone checks spec §8 law 11: blocks whose byte
// differences (against zero) all fit in 4 bits never choose NONE.
func TestMonotoneNibbleRangeNeverNone(t *testing.T) {
	data := []byte{0, 3, 7, 12, 15, 2, 9, 1}
	prev := make([]byte, len(data))
	m := optimalMethod(data, prev)
	if m.compression == element.NONE {
		t.Fatalf("compression = NONE for a nibble-range block")
	}
}

func TestZeroFirstFrameCost(t *testing.T) {
	// spec §8 scenario 14: 8 zero bytes, first frame (prev all zero).
	data := make([]byte, 8)
	prev := make([]byte, 8)
	m := optimalMethod(data, prev)
	if m.compression != element.ZERO || m.subFixed || m.subPrev {
		t.Fatalf("got %+v, want plain ZERO with no sub flags", m)
	}
}
