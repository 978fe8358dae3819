package drachen

import "github.com/mewkiz/drachen/element"

// method bundles every field the wire header needs to describe how one
// element's body was produced: the compression scheme, whether datums are
// sign-extended, whether the body was differenced against a fixed byte
// and/or replaced outright by the aligned previous-frame window, and the
// fixed-sub byte itself.
//
// Two blocks merge into a single element (spec §4.5) exactly when their
// method values are equal, so method must stay a plain comparable struct.
//
// subPrev is only ever set together with compression == element.ZERO, and
// only when the block is byte-identical to the aligned previous-frame
// window. The original encoder could in principle set it alongside any
// method (or any constant delta from prev) to differencing the body against
// the previous frame; its decoder, however, unconditionally overwrites the
// decompressed body with the previous frame's bytes whenever the prev-add
// bit is set, silently discarding that differenced body. That is only
// correct when the block equals prev exactly — a constant nonzero delta
// would round-trip to prev's bytes, not the block's. This implementation
// never chooses subPrev outside of that one safe case — see DESIGN.md.
type method struct {
	compression element.Method
	signed      bool
	subPrev     bool
	subFixed    bool
	fixedSub    byte
}

// rangeStats holds the unsigned and signed byte-difference range (spec
// §4.4's "Uz, Up, Sz, Sp") computed over a block against both the zero axis
// and the aligned previous-frame window. Of the prev-axis fields only
// minP/maxP are consulted, to detect a block that exactly reproduces the
// previous frame (the one case where prev-differencing is both safe and
// free); sMinP/sMaxP are computed but nothing reads them, and no non-ZERO
// method consults the prev axis.
type rangeStats struct {
	minZ, maxZ   uint8 // unsigned, data - 0
	minP, maxP   uint8 // unsigned, data - prev
	sMinZ, sMaxZ int8
	sMinP, sMaxP int8
}

func unsignedRange(data, ref []byte) (min, max uint8) {
	min = data[0] - ref[0]
	max = min
	for i := 1; i < len(data); i++ {
		d := data[i] - ref[i]
		if d > max {
			max = d
		} else if d < min {
			min = d
		}
	}
	return min, max
}

func signedRange(data, ref []byte) (min, max int8) {
	min = int8(data[0] - ref[0])
	max = min
	for i := 1; i < len(data); i++ {
		d := int8(data[i] - ref[i])
		if d > max {
			max = d
		} else if d < min {
			min = d
		}
	}
	return min, max
}

// computeStats computes the four range statistics (spec §4.4). "Range" as
// defined in the spec is max-min+1; the fields here store min/max so callers
// can recover both the range and, where needed, the minimum value itself
// (used to decide whether subtracting a fixed byte would be free).
func computeStats(data, prev []byte) rangeStats {
	z := make([]byte, len(data))
	var st rangeStats
	st.minZ, st.maxZ = unsignedRange(data, z)
	st.minP, st.maxP = unsignedRange(data, prev)
	st.sMinZ, st.sMaxZ = signedRange(data, z)
	st.sMinP, st.sMaxP = signedRange(data, prev)
	return st
}

func urange(min, max uint8) int { return int(max) - int(min) + 1 }
func srange(min, max int8) int  { return int(max) - int(min) + 1 }

func ceilDiv(dividend, divisor int) int {
	return (dividend + divisor - 1) / divisor
}

// countRuns counts the number of runs data splits into when no run may
// exceed maxRun bytes, matching the encoder-side body-length estimator used
// to pick among RLE variants (spec §4.4, "count RLE runs at cap ...").
func countRuns(data []byte, maxRun int) int {
	if len(data) == 0 {
		return 0
	}
	cnt := 1
	runLen := 1
	run := data[0]
	for i := 1; i < len(data); i++ {
		if runLen == maxRun || data[i] != run {
			cnt++
			run = data[i]
			runLen = 1
		} else {
			runLen++
		}
	}
	return cnt
}

// optimalMethod picks the method for one block, following the family
// decision tree of spec §4.4 (grounded in original_source/src/encoder.c's
// optimal_encoding_method), restricted per the subPrev note above: only the
// ZERO branch ever consults the previous-frame axis.
func optimalMethod(data, prev []byte) method {
	st := computeStats(data, prev)
	uranZ := urange(st.minZ, st.maxZ)
	sranZ := srange(st.sMinZ, st.sMaxZ)

	// blockEqualsPrev holds when the block is byte-identical to the aligned
	// previous-frame window: the only case where the decoder's unconditional
	// copy(block, prev) (decoder.go) reproduces the right bytes. A block that
	// merely differs from prev by some nonzero constant does NOT qualify —
	// subPrev would discard that constant and hand back prev itself.
	blockEqualsPrev := st.minP == 0 && st.maxP == 0

	// Range 1 on the zero axis, or a block matching prev outright -> ZERO.
	// The zero axis is checked first: when the block is itself constant,
	// that's reported plain (no sub flags at all when the constant is 0,
	// one fixed-sub byte otherwise) without involving prev at all. Only
	// when the block isn't constant on its own do we fall back to asking
	// whether it happens to equal prev exactly.
	if uranZ == 1 || sranZ == 1 || blockEqualsPrev {
		var m method
		m.compression = element.ZERO
		switch {
		case uranZ == 1:
			m.signed = false
			m.fixedSub = st.minZ
			m.subFixed = st.minZ != 0
		case sranZ == 1:
			m.signed = true
			m.fixedSub = byte(st.sMinZ)
			m.subFixed = st.sMinZ != 0
		case blockEqualsPrev:
			m.subPrev = true
		}
		return m
	}

	// All ranges > 64: 8-bit family (NONE / RLE88 / RLE48 / RLE28).
	if uranZ > 64 && sranZ > 64 {
		var m method
		m.compression = element.NONE

		best := len(data)
		if n := 2 * countRuns(data, 256); n < best {
			m.compression = element.RLE88
			best = n
		}
		if runs := countRuns(data, 16); runs+ceilDiv(runs, 2) < best {
			m.compression = element.RLE48
			best = runs + ceilDiv(runs, 2)
		}
		if runs := countRuns(data, 4); runs+ceilDiv(runs, 4) < best {
			m.compression = element.RLE28
			best = runs + ceilDiv(runs, 4)
		}
		return m
	}

	// At least one zero-axis range <= 64: 6-bit family centered on RLE26.
	if uranZ > 16 && sranZ > 16 {
		var m method
		if uranZ <= 64 {
			m.signed = false
			m.subFixed = st.minZ != 0
			m.fixedSub = st.minZ
		} else {
			// Center the body on zero: data - (sMin+32) lies in [-32, 31],
			// which the sign-extended 6-bit datum reproduces exactly.
			m.signed = true
			m.fixedSub = byte(st.sMinZ) + 32
			m.subFixed = m.fixedSub != 0
		}

		m.compression = element.RLE26
		best := countRuns(data, 4)

		if runs := countRuns(data, 16); runs+ceilDiv(runs, 2) < best {
			m.compression = element.RLE48
			best = runs + ceilDiv(runs, 2)
		}
		if runs := 2 * countRuns(data, 256); runs < best {
			m.compression = element.RLE88
			best = runs
		}
		if m.compression == element.RLE48 || m.compression == element.RLE88 {
			m.subFixed = false
		}
		return m
	}

	// At least one zero-axis range <= 16: 4-bit family centered on HALF.
	var m method
	if uranZ <= 16 {
		m.signed = false
		m.subFixed = st.minZ != 0
		m.fixedSub = st.minZ
	} else {
		// Center the body on zero: data - (sMin+8) lies in [-8, 7], which
		// the sign-extended 4-bit datum reproduces exactly.
		m.signed = true
		m.fixedSub = byte(st.sMinZ) + 8
		m.subFixed = m.fixedSub != 0
	}

	m.compression = element.HALF
	best := ceilDiv(len(data), 2)

	if n := 2 * countRuns(data, 256); n < best {
		m.compression = element.RLE88
		best = n
	}
	if n := countRuns(data, 16); n < best {
		m.compression = element.RLE44
		best = n
	}
	if m.compression == element.RLE88 {
		m.subFixed = false
	}
	return m
}
