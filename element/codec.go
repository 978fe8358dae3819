package element

import (
	"errors"
	"io"

	"github.com/mewkiz/drachen/internal/bits"
)

// ErrPrematureEOF is returned when the underlying stream ends before a
// method has produced its declared number of output bytes.
var ErrPrematureEOF = errors.New("element: premature end of stream")

// ErrOverrun is returned when a decoded run would write past the end of the
// destination block.
var ErrOverrun = errors.New("element: run overruns block")

// Compress writes data (len(data) == L) to w using method, producing the
// minimum-size encoding the method allows: runs are emitted maximally,
// breaking only on a value change or the method's per-run cap (spec §4.1,
// "Encoder contract").
//
// Grounded in original_source/src/encoder.c's compressor_* family.
func Compress(m Method, data []byte, w io.Writer) error {
	if len(data) == 0 {
		return nil
	}
	switch m {
	case NONE:
		_, err := w.Write(data)
		return err
	case ZERO:
		return nil
	case RLE88:
		return compressRLE88(data, w)
	case RLE48:
		return compressRLE48(data, w)
	case RLE28:
		return compressRLE28(data, w)
	case RLE44:
		return compressRLE44(data, w)
	case RLE26:
		return compressRLE26(data, w)
	case HALF:
		return compressHALF(data, w)
	default:
		return errors.New("element: unknown method")
	}
}

// Decompress reads from r and fills dst (len(dst) == L) using method m. If
// signExtend is set, RLE44/RLE26/HALF datums are sign-extended from their
// top bit. Decompress never reads more input bytes than necessary to
// produce len(dst) output bytes; if the stream ends first it returns
// ErrPrematureEOF, and if a decoded run would overflow dst it returns
// ErrOverrun before consuming further input.
//
// Grounded in original_source/src/decoder.c's decompress_* family.
func Decompress(m Method, dst []byte, r io.ByteReader, signExtend bool) error {
	if len(dst) == 0 {
		return nil
	}
	switch m {
	case NONE:
		return decompressNONE(dst, r)
	case ZERO:
		for i := range dst {
			dst[i] = 0
		}
		return nil
	case RLE88:
		return decompressRLE88(dst, r)
	case RLE48:
		return decompressRLE48(dst, r)
	case RLE28:
		return decompressRLE28(dst, r)
	case RLE44:
		return decompressRLE44(dst, r, signExtend)
	case RLE26:
		return decompressRLE26(dst, r, signExtend)
	case HALF:
		return decompressHALF(dst, r, signExtend)
	default:
		return errors.New("element: unknown method")
	}
}

func decompressNONE(dst []byte, r io.ByteReader) error {
	for i := range dst {
		b, err := r.ReadByte()
		if err != nil {
			return ErrPrematureEOF
		}
		dst[i] = b
	}
	return nil
}

// fill writes n copies of datum starting at dst[*pos], returning ErrOverrun
// if that would write past len(dst).
func fill(dst []byte, pos *int, n int, datum byte) error {
	if n > len(dst)-*pos {
		return ErrOverrun
	}
	for i := 0; i < n; i++ {
		dst[*pos+i] = datum
	}
	*pos += n
	return nil
}

func readByte(r io.ByteReader) (byte, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, ErrPrematureEOF
	}
	return b, nil
}

func compressRLE88(data []byte, w io.Writer) error {
	buf := make([]byte, 0, len(data)*2)
	curr := data[0]
	runLen := 1
	for i := 1; i < len(data); i++ {
		if runLen == 256 || data[i] != curr {
			buf = append(buf, byte(runLen&0xFF), curr)
			curr = data[i]
			runLen = 1
		} else {
			runLen++
		}
	}
	buf = append(buf, byte(runLen&0xFF), curr)
	_, err := w.Write(buf)
	return err
}

func decompressRLE88(dst []byte, r io.ByteReader) error {
	pos := 0
	for pos != len(dst) {
		rl, err := readByte(r)
		if err != nil {
			return err
		}
		datum, err := readByte(r)
		if err != nil {
			return err
		}
		runLen := int(rl)
		if runLen == 0 {
			runLen = 256
		}
		if err := fill(dst, &pos, runLen, datum); err != nil {
			return err
		}
	}
	return nil
}

func compressRLE48(data []byte, w io.Writer) error {
	buf := make([]byte, 0, len(data))
	i := 0
	for i < len(data) {
		c0 := data[i]
		rl0 := 1
		i++
		for i < len(data) && rl0 != 16 && data[i] == c0 {
			rl0++
			i++
		}
		if i == len(data) {
			buf = append(buf, byte(rl0&0xF), c0)
			break
		}
		c1 := data[i]
		rl1 := 1
		i++
		for i < len(data) && rl1 != 16 && data[i] == c1 {
			rl1++
			i++
		}
		buf = append(buf, byte((rl0&0xF)|((rl1&0xF)<<4)), c0, c1)
	}
	_, err := w.Write(buf)
	return err
}

func decompressRLE48(dst []byte, r io.ByteReader) error {
	pos := 0
	for pos != len(dst) {
		head, err := readByte(r)
		if err != nil {
			return err
		}
		rl0 := int(head & 0xF)
		rl1 := int((head >> 4) & 0xF)
		if rl0 == 0 {
			rl0 = 16
		}
		if rl1 == 0 {
			rl1 = 16
		}
		d0, err := readByte(r)
		if err != nil {
			return err
		}
		if err := fill(dst, &pos, rl0, d0); err != nil {
			return err
		}
		if pos == len(dst) {
			break
		}
		d1, err := readByte(r)
		if err != nil {
			return err
		}
		if err := fill(dst, &pos, rl1, d1); err != nil {
			return err
		}
	}
	return nil
}

func compressRLE28(data []byte, w io.Writer) error {
	buf := make([]byte, 0, len(data))
	i := 0
	for i < len(data) {
		var runs [4]int
		var datums [4]byte
		n := 0
		for n < 4 && i < len(data) {
			c := data[i]
			rl := 1
			i++
			for i < len(data) && rl != 4 && data[i] == c {
				rl++
				i++
			}
			runs[n] = rl
			datums[n] = c
			n++
		}
		var head byte
		for k := 0; k < n; k++ {
			head |= byte(runs[k]&0x3) << uint(2*k)
		}
		buf = append(buf, head)
		for k := 0; k < n; k++ {
			buf = append(buf, datums[k])
		}
	}
	_, err := w.Write(buf)
	return err
}

func decompressRLE28(dst []byte, r io.ByteReader) error {
	pos := 0
	for pos != len(dst) {
		head, err := readByte(r)
		if err != nil {
			return err
		}
		var runs [4]int
		for k := 0; k < 4; k++ {
			rl := int((head >> uint(2*k)) & 0x3)
			if rl == 0 {
				rl = 4
			}
			runs[k] = rl
		}
		for k := 0; k < 4; k++ {
			datum, err := readByte(r)
			if err != nil {
				return err
			}
			if err := fill(dst, &pos, runs[k], datum); err != nil {
				return err
			}
			if pos == len(dst) {
				break
			}
		}
	}
	return nil
}

func compressRLE44(data []byte, w io.Writer) error {
	buf := make([]byte, 0, len(data))
	i := 0
	for i < len(data) {
		c := data[i]
		rl := 1
		i++
		for i < len(data) && rl != 16 && data[i] == c {
			rl++
			i++
		}
		buf = append(buf, byte(rl&0xF)|((c&0xF)<<4))
	}
	_, err := w.Write(buf)
	return err
}

func decompressRLE44(dst []byte, r io.ByteReader, signExtend bool) error {
	pos := 0
	for pos != len(dst) {
		v, err := readByte(r)
		if err != nil {
			return err
		}
		rl := int(v & 0xF)
		if rl == 0 {
			rl = 16
		}
		datum := (v >> 4) & 0xF
		if signExtend {
			datum = bits.SignExtend8(datum, 4)
		}
		if err := fill(dst, &pos, rl, datum); err != nil {
			return err
		}
	}
	return nil
}

func compressRLE26(data []byte, w io.Writer) error {
	buf := make([]byte, 0, len(data))
	i := 0
	for i < len(data) {
		c := data[i]
		rl := 1
		i++
		for i < len(data) && rl != 4 && data[i] == c {
			rl++
			i++
		}
		buf = append(buf, byte(rl&0x3)|((c&0x3F)<<2))
	}
	_, err := w.Write(buf)
	return err
}

func decompressRLE26(dst []byte, r io.ByteReader, signExtend bool) error {
	pos := 0
	for pos != len(dst) {
		v, err := readByte(r)
		if err != nil {
			return err
		}
		rl := int(v & 0x3)
		if rl == 0 {
			rl = 4
		}
		datum := (v >> 2) & 0x3F
		if signExtend {
			datum = bits.SignExtend8(datum, 6)
		}
		if err := fill(dst, &pos, rl, datum); err != nil {
			return err
		}
	}
	return nil
}

func compressHALF(data []byte, w io.Writer) error {
	buf := make([]byte, 0, (len(data)+1)/2)
	i := 0
	for ; i+1 < len(data); i += 2 {
		buf = append(buf, (data[i]&0xF)|((data[i+1]&0xF)<<4))
	}
	if i < len(data) {
		buf = append(buf, data[i])
	}
	_, err := w.Write(buf)
	return err
}

func decompressHALF(dst []byte, r io.ByteReader, signExtend bool) error {
	pos := 0
	for pos != len(dst) {
		v, err := readByte(r)
		if err != nil {
			return err
		}
		d0 := v & 0xF
		d1 := (v >> 4) & 0xF
		if signExtend {
			d0 = bits.SignExtend8(d0, 4)
			d1 = bits.SignExtend8(d1, 4)
		}
		dst[pos] = d0
		pos++
		if pos != len(dst) {
			dst[pos] = d1
			pos++
		}
	}
	return nil
}
