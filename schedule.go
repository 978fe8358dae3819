package drachen

// BlockSpec is one entry of a block-size schedule: "use BlockSize-byte
// blocks for offsets up to (but not including) SegmentEnd".
//
// Schedules are an encoder-side tuning parameter (spec §3): they are never
// persisted to the stream and have no effect on what a decoder can read.
type BlockSpec struct {
	SegmentEnd uint32
	BlockSize  uint32
}

// Schedule is a sorted sequence of BlockSpec entries whose final SegmentEnd
// must cover the whole frame. It governs how Encoder partitions a frame into
// the blocks over which the method-selection heuristic runs (spec §4.5).
type Schedule []BlockSpec

// defaultBlockSize mirrors the original implementation's DEFAULT_BLOCK_SZ
// (original_source/src/drachen.c), a single fixed 32-byte block size used
// when the caller supplies no schedule.
const defaultBlockSize = 32

// DefaultSchedule returns the built-in schedule for a frame of the given
// size: fixed 32-byte blocks end to end.
func DefaultSchedule(frameSize uint32) Schedule {
	return Schedule{{SegmentEnd: frameSize, BlockSize: defaultBlockSize}}
}

// validate checks that a schedule is well formed for the given frame size:
// segment ends strictly increase, block sizes are at least 1, and the final
// segment covers the whole frame.
func (s Schedule) validate(frameSize uint32) error {
	if len(s) == 0 {
		return newErrf(IO, "empty block-size schedule")
	}
	var prevEnd uint32
	for i, spec := range s {
		if spec.BlockSize == 0 {
			return newErrf(IO, "schedule entry %d has zero block size", i)
		}
		if spec.SegmentEnd <= prevEnd {
			return newErrf(IO, "schedule entry %d segment end %d does not strictly increase past %d", i, spec.SegmentEnd, prevEnd)
		}
		prevEnd = spec.SegmentEnd
	}
	if prevEnd < frameSize {
		return newErrf(IO, "schedule covers only %d of %d frame bytes", prevEnd, frameSize)
	}
	return nil
}

// blockWalker iterates the (offset, length) blocks a schedule induces over a
// frame of size frameSize, advancing the active schedule entry whenever the
// walk crosses a SegmentEnd (spec §4.5).
type blockWalker struct {
	schedule  Schedule
	frameSize uint32
	offset    uint32
	specIdx   int
}

func newBlockWalker(schedule Schedule, frameSize uint32) *blockWalker {
	return &blockWalker{schedule: schedule, frameSize: frameSize}
}

// next returns the next block's (offset, length), and false once the frame
// is fully covered.
func (w *blockWalker) next() (offset, length uint32, ok bool) {
	if w.offset >= w.frameSize {
		return 0, 0, false
	}
	spec := w.schedule[w.specIdx]
	bs := spec.BlockSize
	if w.offset+bs >= spec.SegmentEnd {
		bs = spec.SegmentEnd - w.offset
		if w.specIdx < len(w.schedule)-1 {
			w.specIdx++
		}
	}
	if w.offset+bs > w.frameSize {
		bs = w.frameSize - w.offset
	}
	offset = w.offset
	length = bs
	w.offset += bs
	return offset, length, true
}
