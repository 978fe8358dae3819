package bits

import "testing"

func TestSignExtend8(t *testing.T) {
	cases := []struct {
		x    byte
		n    uint
		want byte
	}{
		{0x0, 4, 0x00},
		{0x7, 4, 0x07},
		{0x8, 4, 0xF8},
		{0xF, 4, 0xFF},
		{0x1F, 6, 0x1F},
		{0x20, 6, 0xE0},
		{0x3F, 6, 0xFF},
	}
	for _, c := range cases {
		got := SignExtend8(c.x, c.n)
		if got != c.want {
			t.Errorf("SignExtend8(%#x, %d) = %#x, want %#x", c.x, c.n, got, c.want)
		}
	}
}
