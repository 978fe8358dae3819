package drachen

import (
	"encoding/binary"
	"io"

	"github.com/icza/bitio"
	"github.com/mewkiz/drachen/element"
)

// Encoder writes a sequence of named, fixed-size frames to an underlying
// io.Writer as a drachen stream (spec §2, §4.5, §6).
//
// An Encoder is not safe for concurrent use; each instance owns its output
// stream and its previous/current frame buffers exclusively. Writes go
// through one bitio.Writer per stream, which is also the io.Writer handed to
// element.Header.Write and element.Compress; every field of the format is a
// whole number of bytes, so every write is byte-aligned.
type Encoder struct {
	w         *bitio.Writer
	frameSize uint32
	perm      []uint32
	schedule  Schedule

	prev, curr []byte
	failed     error
}

// NewEncoder writes the stream header (magic, byte order, frame size,
// permutation table) and returns an Encoder ready to accept frames. A nil
// perm means identity; a nil schedule means DefaultSchedule(frameSize).
func NewEncoder(w io.Writer, frameSize uint32, perm []uint32, schedule Schedule) (*Encoder, error) {
	if perm == nil {
		perm = identityPermutation(frameSize)
	}
	if schedule == nil {
		schedule = DefaultSchedule(frameSize)
	}
	if err := schedule.validate(frameSize); err != nil {
		return nil, err
	}
	bw := bitio.NewWriter(w)
	if err := writeHeader(bw, frameSize, perm); err != nil {
		return nil, err
	}
	return &Encoder{
		w:         bw,
		frameSize: frameSize,
		perm:      perm,
		schedule:  schedule,
		prev:      make([]byte, frameSize),
		curr:      make([]byte, frameSize),
	}, nil
}

// pendingElement accumulates one or more adjacent blocks that share a method,
// awaiting either a method change or end of frame before it is flushed.
type pendingElement struct {
	method method
	offset uint32
	length uint32
}

// EncodeFrame permutes data (which must be exactly frameSize bytes),
// partitions it into blocks per the encoder's schedule, chooses a method per
// block via the heuristic, merges adjacent blocks sharing a method, and
// writes the resulting elements following the frame's NUL-terminated name
// (spec §4.5, §4.6).
//
// name must not contain a NUL byte.
func (e *Encoder) EncodeFrame(name string, data []byte) error {
	if e.failed != nil {
		return e.failed
	}
	if uint32(len(data)) != e.frameSize {
		err := newErrf(IO, "frame has %d bytes, want %d", len(data), e.frameSize)
		e.failed = err
		return err
	}

	for i := range e.curr {
		e.curr[i] = data[e.perm[i]]
	}

	if err := e.writeName(name); err != nil {
		e.failed = err
		return err
	}

	walker := newBlockWalker(e.schedule, e.frameSize)
	var pending *pendingElement
	flush := func() error {
		if pending == nil {
			return nil
		}
		err := e.emitElement(*pending)
		pending = nil
		return err
	}

	for {
		offset, length, ok := walker.next()
		if !ok {
			break
		}
		m := optimalMethod(e.curr[offset:offset+length], e.prev[offset:offset+length])
		if pending != nil && pending.method == m {
			pending.length += length
			continue
		}
		if err := flush(); err != nil {
			e.failed = err
			return err
		}
		pending = &pendingElement{method: m, offset: offset, length: length}
	}
	if err := flush(); err != nil {
		e.failed = err
		return err
	}

	e.prev, e.curr = e.curr, e.prev
	return nil
}

func (e *Encoder) writeName(name string) error {
	if _, err := io.WriteString(e.w, name); err != nil {
		return newErr(IO, err)
	}
	if _, err := e.w.Write([]byte{0}); err != nil {
		return newErr(IO, err)
	}
	return nil
}

// emitElement writes one element record: header, length operand, optional
// fixed-sub byte, then the compressed body (spec §4.2, §4.5).
func (e *Encoder) emitElement(p pendingElement) error {
	hdr := element.Header{
		Length:     p.length,
		Method:     p.method.compression,
		SignExtend: p.method.signed,
		FixedSub:   p.method.subFixed,
		PrevAdd:    p.method.subPrev,
	}
	if err := hdr.Write(e.w, p.method.fixedSub, binary.NativeEndian); err != nil {
		return newErr(IO, err)
	}

	if p.method.compression == element.ZERO {
		// No body: either a constant run (zero, or the fixed-sub byte when
		// FixedSub is set), or (when PrevAdd is set) the previous frame's
		// bytes reproduced verbatim.
		return nil
	}

	block := e.curr[p.offset : p.offset+p.length]
	body := block
	if p.method.subFixed {
		body = make([]byte, len(block))
		for i, v := range block {
			body[i] = v - p.method.fixedSub
		}
	}
	if err := element.Compress(p.method.compression, body, e.w); err != nil {
		return newErr(IO, err)
	}
	return nil
}
