// Package drachen implements a streaming codec for sequences of fixed-size
// binary frames ("frame streams"), optimized for frames that are highly
// correlated with their predecessor: screen captures, uncompressed video, or
// any byte stream where frame N differs from frame N-1 in local, low
// amplitude ways.
//
// A stream is a self-describing container: a small header (magic, recorded
// byte order, frame size, permutation table) followed by an ordered sequence
// of named frames, each compressed against the previous frame using one of
// seven per-block methods chosen by Encoder's heuristic. Decoding is strictly
// sequential: frame N can only be reconstructed after every frame before it
// has been replayed.
package drachen

import (
	"encoding/binary"
	"io"
)

// magic is the 8-byte signature at the start of every stream: the ASCII
// bytes "Drachen" followed by a mandatory NUL.
var magic = [8]byte{'D', 'r', 'a', 'c', 'h', 'e', 'n', 0}

// nativeEndian32 and nativeEndian16 are the literal byte-order marker values
// a writer always emits, in its own native byte order. A reader recovers the
// producer's byte order by comparing the raw bytes it received for these
// markers against 0,1,2,3 (resp. 0,1) and building a per-stream shift
// schedule from the result.
const (
	nativeEndian32 uint32 = 0x03020100
	nativeEndian16 uint16 = 0x0100
)

// endianSchedule is a self-describing shift schedule recovered from the
// byte-order marker in the stream header: s[i] says "raw byte i belongs at
// bit position s[i]*8 of the reassembled integer". The identity schedule
// {0,1,2,3} (resp. {0,1}) means no swap is required.
type endianSchedule struct {
	shift32 [4]byte
	shift16 [2]byte
}

func identitySchedule() endianSchedule {
	return endianSchedule{
		shift32: [4]byte{0, 1, 2, 3},
		shift16: [2]byte{0, 1},
	}
}

// deriveSchedule recovers the shift schedule from the raw bytes a producer
// wrote for the two byte-order markers, and validates that each is a genuine
// permutation of its index range (spec's "minor robustness gap worth
// fixing" relative to the original implementation, which trusted the bytes
// unconditionally).
func deriveSchedule(raw32 [4]byte, raw16 [2]byte) (endianSchedule, error) {
	var sched endianSchedule
	var seen32 [4]bool
	for i, b := range raw32 {
		if b > 3 || seen32[b] {
			return endianSchedule{}, newErrf(BadPermutation, "invalid 32-bit endian marker byte %d: %d", i, b)
		}
		seen32[b] = true
		sched.shift32[i] = b
	}
	var seen16 [2]bool
	for i, b := range raw16 {
		if b > 1 || seen16[b] {
			return endianSchedule{}, newErrf(BadPermutation, "invalid 16-bit endian marker byte %d: %d", i, b)
		}
		seen16[b] = true
		sched.shift16[i] = b
	}
	return sched, nil
}

// decode32 reassembles a 32-bit value from its four raw bytes using the
// recovered shift schedule: result = sum(b[i] << (s[i]*8)).
func (s endianSchedule) decode32(b [4]byte) uint32 {
	var v uint32
	for i, shift := range s.shift32 {
		v |= uint32(b[i]) << (uint(shift) * 8)
	}
	return v
}

func (s endianSchedule) decode16(b [2]byte) uint16 {
	var v uint16
	for i, shift := range s.shift16 {
		v |= uint16(b[i]) << (uint(shift) * 8)
	}
	return v
}

// Uint32 and Uint16 adapt the recovered schedule to the element package's
// ByteOrder interface, so an element's multi-byte length operand can be
// decoded in the container's declared byte order (spec §4.2) rather than
// the reader's native order.
func (s endianSchedule) Uint32(b []byte) uint32 {
	return s.decode32([4]byte{b[0], b[1], b[2], b[3]})
}

func (s endianSchedule) Uint16(b []byte) uint16 {
	return s.decode16([2]byte{b[0], b[1]})
}

// streamHeader is the parsed fixed-layout prefix of a drachen stream: magic,
// byte-order markers, frame size, and permutation table.
type streamHeader struct {
	frameSize uint32
	perm      []uint32
	sched     endianSchedule
}

// writeHeader writes the stream header (§6) in the host's native byte order.
// perm may be nil, meaning identity.
func writeHeader(w io.Writer, frameSize uint32, perm []uint32) error {
	return writeHeaderOrder(w, frameSize, perm, binary.NativeEndian)
}

// writeHeaderOrder is writeHeader parameterized over the byte order used to
// lay out every multi-byte field, so tests can simulate a producer running
// on a different architecture than the consumer (spec's cross-endian
// round-trip law).
func writeHeaderOrder(w io.Writer, frameSize uint32, perm []uint32, order binary.ByteOrder) error {
	if _, err := w.Write(magic[:]); err != nil {
		return newErr(IO, err)
	}
	var buf32 [4]byte
	order.PutUint32(buf32[:], nativeEndian32)
	if _, err := w.Write(buf32[:]); err != nil {
		return newErr(IO, err)
	}
	var buf16 [2]byte
	order.PutUint16(buf16[:], nativeEndian16)
	if _, err := w.Write(buf16[:]); err != nil {
		return newErr(IO, err)
	}
	order.PutUint32(buf32[:], frameSize)
	if _, err := w.Write(buf32[:]); err != nil {
		return newErr(IO, err)
	}
	if perm == nil {
		perm = identityPermutation(frameSize)
	}
	if uint32(len(perm)) != frameSize {
		return newErrf(BadPermutation, "permutation table length %d does not match frame size %d", len(perm), frameSize)
	}
	for i, idx := range perm {
		if idx >= frameSize {
			return newErrf(BadPermutation, "permutation entry %d out of range: %d >= %d", i, idx, frameSize)
		}
	}
	for _, idx := range perm {
		order.PutUint32(buf32[:], idx)
		if _, err := w.Write(buf32[:]); err != nil {
			return newErr(IO, err)
		}
	}
	return nil
}

// readHeader reads and validates the stream header. wantFrameSize, if
// nonzero, must match the frame size stored in the stream or
// WrongFrameSize is returned.
func readHeader(r io.Reader, wantFrameSize uint32) (*streamHeader, error) {
	var gotMagic [8]byte
	if _, err := io.ReadFull(r, gotMagic[:]); err != nil {
		return nil, newErr(IO, err)
	}
	if gotMagic != magic {
		return nil, newErrf(BadMagic, "expected %q, got % X", magic, gotMagic)
	}

	var raw32 [4]byte
	if _, err := io.ReadFull(r, raw32[:]); err != nil {
		return nil, newErr(IO, err)
	}
	var raw16 [2]byte
	if _, err := io.ReadFull(r, raw16[:]); err != nil {
		return nil, newErr(IO, err)
	}
	sched, err := deriveSchedule(raw32, raw16)
	if err != nil {
		return nil, err
	}

	var frameSizeRaw [4]byte
	if _, err := io.ReadFull(r, frameSizeRaw[:]); err != nil {
		return nil, newErr(IO, err)
	}
	frameSize := sched.decode32(frameSizeRaw)
	if wantFrameSize != 0 && frameSize != wantFrameSize {
		return nil, newErrf(WrongFrameSize, "expected frame size %d, got %d", wantFrameSize, frameSize)
	}

	perm := make([]uint32, frameSize)
	var idxRaw [4]byte
	for i := range perm {
		if _, err := io.ReadFull(r, idxRaw[:]); err != nil {
			return nil, newErr(IO, err)
		}
		idx := sched.decode32(idxRaw)
		if idx >= frameSize {
			return nil, newErrf(BadPermutation, "permutation entry %d out of range: %d >= %d", i, idx, frameSize)
		}
		perm[i] = idx
	}

	return &streamHeader{frameSize: frameSize, perm: perm, sched: sched}, nil
}

func identityPermutation(n uint32) []uint32 {
	perm := make([]uint32, n)
	for i := range perm {
		perm[i] = uint32(i)
	}
	return perm
}

// headerSize returns the total on-wire size in bytes of the stream header
// for the given frame size: 8 (magic) + 4 + 2 (endian markers) + 4 (frame
// size) + 4*F (permutation table).
func headerSize(frameSize uint32) int64 {
	return 8 + 4 + 2 + 4 + 4*int64(frameSize)
}
