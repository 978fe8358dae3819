package drachen

import "testing"

func TestDefaultScheduleCoversFrame(t *testing.T) {
	sched := DefaultSchedule(100)
	if err := sched.validate(100); err != nil {
		t.Fatalf("validate: %v", err)
	}
	w := newBlockWalker(sched, 100)
	var total uint32
	for {
		_, length, ok := w.next()
		if !ok {
			break
		}
		total += length
	}
	if total != 100 {
		t.Fatalf("walked %d bytes, want 100", total)
	}
}

func TestBlockWalkerRespectsSegmentBoundaries(t *testing.T) {
	sched := Schedule{
		{SegmentEnd: 10, BlockSize: 4},
		{SegmentEnd: 20, BlockSize: 6},
	}
	w := newBlockWalker(sched, 20)
	var offsets []uint32
	var lengths []uint32
	for {
		o, l, ok := w.next()
		if !ok {
			break
		}
		offsets = append(offsets, o)
		lengths = append(lengths, l)
	}
	wantOffsets := []uint32{0, 4, 8, 10, 16}
	wantLengths := []uint32{4, 4, 2, 6, 4}
	if len(offsets) != len(wantOffsets) {
		t.Fatalf("got %d blocks, want %d (offsets=%v)", len(offsets), len(wantOffsets), offsets)
	}
	for i := range offsets {
		if offsets[i] != wantOffsets[i] || lengths[i] != wantLengths[i] {
			t.Fatalf("block %d: got (%d,%d), want (%d,%d)", i, offsets[i], lengths[i], wantOffsets[i], wantLengths[i])
		}
	}
}

func TestScheduleValidateRejectsGaps(t *testing.T) {
	sched := Schedule{{SegmentEnd: 10, BlockSize: 4}}
	if err := sched.validate(20); err == nil {
		t.Fatal("validate accepted a schedule that doesn't cover the frame")
	}
}
