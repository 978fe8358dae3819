package drachen

import (
	"errors"
	"io"

	"github.com/icza/bitio"
	"github.com/mewkiz/drachen/element"
)

// Decoder reads a sequence of named, fixed-size frames from an underlying
// drachen stream (spec §4.6, §4.7).
//
// A Decoder is not safe for concurrent use. Once any call returns a non-nil,
// non-end-of-stream error, that same error is latched and returned by every
// subsequent call (spec §4.8, §7). Reads go through a bitio.Reader, the
// counterpart of Encoder's bitio.Writer; its ReadByte satisfies both the
// name scanner below and element.ReadHeader/element.Decompress's
// io.ByteReader requirement.
type Decoder struct {
	r     *bitio.Reader
	hdr   *streamHeader
	order element.ByteOrder

	prev, curr []byte
	failed     error
}

// NewDecoder reads and validates the stream header. wantFrameSize, if
// nonzero, must match the frame size recorded in the stream, or
// WrongFrameSize is returned.
func NewDecoder(r io.Reader, wantFrameSize uint32) (*Decoder, error) {
	br := bitio.NewReader(r)
	hdr, err := readHeader(br, wantFrameSize)
	if err != nil {
		return nil, err
	}
	return &Decoder{
		r:     br,
		hdr:   hdr,
		order: hdr.sched,
		prev:  make([]byte, hdr.frameSize),
		curr:  make([]byte, hdr.frameSize),
	}, nil
}

// FrameSize returns the fixed frame size recorded in the stream header.
func (d *Decoder) FrameSize() uint32 { return d.hdr.frameSize }

// Permutation returns the permutation table recorded in the stream header.
// The returned slice must not be modified.
func (d *Decoder) Permutation() []uint32 { return d.hdr.perm }

// DecodeFrame reads one frame: its NUL-terminated name, then elements until
// the frame is complete, then applies the inverse permutation into out
// (which must be exactly FrameSize() bytes).
//
// If EOF is observed at the very first byte of the name, DecodeFrame returns
// ("", IsEndOfStream(err) == true) rather than a failure; the stream is left
// in a state where further calls also return end-of-stream.
func (d *Decoder) DecodeFrame(out []byte) (name string, err error) {
	if d.failed != nil {
		return "", d.failed
	}
	if uint32(len(out)) != d.hdr.frameSize {
		err := newErrf(IO, "output buffer has %d bytes, want %d", len(out), d.hdr.frameSize)
		d.failed = err
		return "", err
	}

	name, err = d.readName()
	if err != nil {
		if IsEndOfStream(err) {
			return "", err
		}
		d.failed = err
		return "", err
	}

	var o uint32
	for o < d.hdr.frameSize {
		hdr, fixedSub, err := element.ReadHeader(d.r, d.order)
		if err != nil {
			e := newErr(PrematureEOF, err)
			d.failed = e
			return "", e
		}
		if uint64(o)+uint64(hdr.Length) > uint64(d.hdr.frameSize) {
			e := newErrf(Overrun, "element at offset %d declares length %d, frame size %d", o, hdr.Length, d.hdr.frameSize)
			d.failed = e
			return "", e
		}
		block := d.curr[o : o+hdr.Length]

		if hdr.Method == element.ZERO {
			for i := range block {
				block[i] = 0
			}
		} else {
			if err := element.Decompress(hdr.Method, block, d.r, hdr.SignExtend); err != nil {
				code := PrematureEOF
				if errors.Is(err, element.ErrOverrun) {
					code = Overrun
				}
				e := newErr(code, err)
				d.failed = e
				return "", e
			}
		}

		if hdr.FixedSub {
			for i := range block {
				block[i] += fixedSub
			}
		}
		if hdr.PrevAdd {
			copy(block, d.prev[o:o+hdr.Length])
		}

		o += hdr.Length
	}

	for j := uint32(0); j < d.hdr.frameSize; j++ {
		out[d.hdr.perm[j]] = d.curr[j]
	}
	d.prev, d.curr = d.curr, d.prev

	return name, nil
}

// readName reads a NUL-terminated frame name. EOF at the very first byte is
// reported as end-of-stream (spec §4.6, §7); EOF anywhere else is
// premature-EOF.
func (d *Decoder) readName() (string, error) {
	var buf []byte
	first := true
	for {
		b, err := d.r.ReadByte()
		if err != nil {
			if first {
				return "", newErr(EndOfStream, nil)
			}
			return "", newErr(PrematureEOF, err)
		}
		first = false
		if b == 0 {
			return string(buf), nil
		}
		buf = append(buf, b)
	}
}
