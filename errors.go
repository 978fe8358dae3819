package drachen

import (
	"fmt"

	"github.com/mewkiz/pkg/errutil"
)

// ErrorCode identifies one of the sentinel failure conditions a stream can
// latch, per the error taxonomy of the container format.
type ErrorCode int

// Sentinel error codes. The zero value Ok is never latched; it only appears
// as the Code of a zero Error value.
const (
	Ok ErrorCode = iota
	// EndOfStream is reported when end-of-file is observed at the first byte
	// of an expected frame name. It is informational, not a failure: no
	// error is latched on the stream when EndOfStream is returned.
	EndOfStream
	// BadMagic means the first 8 header bytes were not "Drachen\x00".
	BadMagic
	// WrongFrameSize means the caller pre-declared a frame size that
	// disagrees with the one stored in the stream header.
	WrongFrameSize
	// BadPermutation means the permutation table contains an index >= F, or
	// the endian-shift schedule is not itself a permutation.
	BadPermutation
	// Overrun means an element declared a length that would push the frame
	// cursor past F.
	Overrun
	// PrematureEOF means the underlying stream ended before an element's
	// declared length was satisfied.
	PrematureEOF
	// IO wraps any other error returned by the underlying io.Reader/Writer.
	IO
)

func (c ErrorCode) String() string {
	switch c {
	case Ok:
		return "ok"
	case EndOfStream:
		return "end of stream"
	case BadMagic:
		return "bad magic"
	case WrongFrameSize:
		return "wrong frame size"
	case BadPermutation:
		return "bad permutation"
	case Overrun:
		return "overrun"
	case PrematureEOF:
		return "premature eof"
	case IO:
		return "i/o error"
	default:
		return fmt.Sprintf("ErrorCode(%d)", int(c))
	}
}

// Error is the sum-type error value an Encoder or Decoder latches on its
// first failure. Every non-ok code besides EndOfStream is terminal: once latched,
// every further operation on the owning Encoder/Decoder returns the same
// Error.
type Error struct {
	Code ErrorCode
	// Err is the wrapped underlying cause, if any (e.g. the I/O error for
	// code IO, or the errutil-wrapped call site for internal failures).
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("drachen: %s: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("drachen: %s", e.Code)
}

// Unwrap allows errors.Is/errors.As to see through to the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// newErr builds a latched Error of the given code, wrapping cause (which may
// be nil) with errutil for stack context, mirroring the teacher's
// errutil.Err/errutil.Newf call sites.
func newErr(code ErrorCode, cause error) *Error {
	if cause == nil {
		return &Error{Code: code}
	}
	return &Error{Code: code, Err: errutil.Err(cause)}
}

func newErrf(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{Code: code, Err: errutil.Newf(format, args...)}
}

// IsEndOfStream reports whether err is the informational end-of-stream
// signal rather than a real failure.
func IsEndOfStream(err error) bool {
	e, ok := err.(*Error)
	return ok && e.Code == EndOfStream
}
