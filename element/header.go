package element

import (
	"io"
)

// Header is the parsed form of one element record header (spec §4.2): the
// method, its flags, and the declared body length. It precedes, in order,
// an optional length operand, an optional fixed-sub byte, and the
// compressed body.
type Header struct {
	Length      uint32
	Method      Method
	SignExtend  bool
	FixedSub    bool
	PrevAdd     bool
}

// Header byte bit layout (spec §4.2), grounded in
// original_source/src/common.h's EE_* constants.
const (
	lenClassMask  = 0x03
	lenClassOne   = 0x00
	lenClassByte  = 0x01
	lenClassShort = 0x02
	lenClassInt   = 0x03

	methodShift = 2
	methodMask  = 0x07

	flagSignExtend = 0x20
	flagFixedSub   = 0x40
	flagPrevAdd    = 0x80
)

// ByteOrder is the minimal slice-based decoding surface ReadHeader needs to
// recover multi-byte length operands; encoding/binary.ByteOrder (BigEndian,
// LittleEndian, NativeEndian) satisfies it directly, as does any recovered
// per-stream endian schedule.
type ByteOrder interface {
	Uint16([]byte) uint16
	Uint32([]byte) uint32
}

// PutByteOrder is the encoding counterpart used by Header.Write.
type PutByteOrder interface {
	PutUint16([]byte, uint16)
	PutUint32([]byte, uint32)
}

// Write serializes the header byte followed by whatever length operand and
// fixed-sub byte the header calls for (spec §4.2). It does not write the
// element body; callers follow Write with Compress.
func (h Header) Write(w io.Writer, fixedSub byte, order PutByteOrder) error {
	var head byte
	switch {
	case h.Length == 1:
		head = lenClassOne
	case h.Length >= 2 && h.Length <= 255+2:
		head = lenClassByte
	case h.Length >= 259 && h.Length <= 65535+259:
		head = lenClassShort
	default:
		head = lenClassInt
	}
	head |= byte(h.Method&methodMask) << methodShift
	if h.SignExtend {
		head |= flagSignExtend
	}
	if h.FixedSub {
		head |= flagFixedSub
	}
	if h.PrevAdd {
		head |= flagPrevAdd
	}
	if _, err := w.Write([]byte{head}); err != nil {
		return err
	}

	switch head & lenClassMask {
	case lenClassOne:
		// No length operand.
	case lenClassByte:
		if _, err := w.Write([]byte{byte(h.Length - 2)}); err != nil {
			return err
		}
	case lenClassShort:
		var buf [2]byte
		order.PutUint16(buf[:], uint16(h.Length-259))
		if _, err := w.Write(buf[:]); err != nil {
			return err
		}
	case lenClassInt:
		var buf [4]byte
		order.PutUint32(buf[:], h.Length)
		if _, err := w.Write(buf[:]); err != nil {
			return err
		}
	}

	if h.FixedSub {
		if _, err := w.Write([]byte{fixedSub}); err != nil {
			return err
		}
	}
	return nil
}

// ReadHeader reads one element record header, per spec §4.2. The returned
// fixedSub is only meaningful when the returned Header has FixedSub set.
func ReadHeader(r io.ByteReader, order ByteOrder) (hdr Header, fixedSub byte, err error) {
	head, err := r.ReadByte()
	if err != nil {
		return Header{}, 0, ErrPrematureEOF
	}

	hdr.Method = Method((head >> methodShift) & methodMask)
	hdr.SignExtend = head&flagSignExtend != 0
	hdr.FixedSub = head&flagFixedSub != 0
	hdr.PrevAdd = head&flagPrevAdd != 0

	switch head & lenClassMask {
	case lenClassOne:
		hdr.Length = 1
	case lenClassByte:
		b, err := r.ReadByte()
		if err != nil {
			return Header{}, 0, ErrPrematureEOF
		}
		hdr.Length = uint32(b) + 2
	case lenClassShort:
		var buf [2]byte
		for i := range buf {
			b, err := r.ReadByte()
			if err != nil {
				return Header{}, 0, ErrPrematureEOF
			}
			buf[i] = b
		}
		hdr.Length = uint32(order.Uint16(buf[:])) + 259
	case lenClassInt:
		var buf [4]byte
		for i := range buf {
			b, err := r.ReadByte()
			if err != nil {
				return Header{}, 0, ErrPrematureEOF
			}
			buf[i] = b
		}
		hdr.Length = order.Uint32(buf[:])
	}

	if hdr.FixedSub {
		b, err := r.ReadByte()
		if err != nil {
			return Header{}, 0, ErrPrematureEOF
		}
		fixedSub = b
	}

	return hdr, fixedSub, nil
}
