package element

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestHeaderRoundTrip(t *testing.T) {
	cases := []Header{
		{Length: 1, Method: NONE},
		{Length: 8, Method: ZERO},
		{Length: 300, Method: RLE26, SignExtend: true},
		{Length: 70000, Method: RLE44, FixedSub: true},
		{Length: 4, Method: HALF, PrevAdd: true, SignExtend: true},
	}
	for _, hdr := range cases {
		var buf bytes.Buffer
		if err := hdr.Write(&buf, 0x7F, binary.LittleEndian); err != nil {
			t.Fatalf("Write: %v", err)
		}
		got, fixedSub, err := ReadHeader(&buf, binary.LittleEndian)
		if err != nil {
			t.Fatalf("ReadHeader: %v", err)
		}
		if got != hdr {
			t.Fatalf("got %+v, want %+v", got, hdr)
		}
		if hdr.FixedSub && fixedSub != 0x7F {
			t.Fatalf("fixedSub = %#x, want 0x7f", fixedSub)
		}
	}
}

func TestHeaderLengthClasses(t *testing.T) {
	cases := []struct {
		length   uint32
		wantByte byte
	}{
		{1, 0}, {2, 1}, {257, 1}, {258, 3}, {259, 2}, {65535 + 259, 2}, {65536 + 259, 3},
	}
	for _, c := range cases {
		var buf bytes.Buffer
		hdr := Header{Length: c.length, Method: NONE}
		if err := hdr.Write(&buf, 0, binary.LittleEndian); err != nil {
			t.Fatalf("Write(%d): %v", c.length, err)
		}
		gotClass := buf.Bytes()[0] & lenClassMask
		if gotClass != c.wantByte {
			t.Fatalf("length %d: class byte = %d, want %d", c.length, gotClass, c.wantByte)
		}
		got, _, err := ReadHeader(bytes.NewReader(buf.Bytes()), binary.LittleEndian)
		if err != nil {
			t.Fatalf("ReadHeader(%d): %v", c.length, err)
		}
		if got.Length != c.length {
			t.Fatalf("length %d: round trip got %d", c.length, got.Length)
		}
	}
}
