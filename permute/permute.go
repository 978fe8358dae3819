// Package permute builds and validates the frame-reordering tables consumed
// by a drachen stream's permutation slot (spec §3, §6): π such that
// curr[i] = input[π[i]] at encode, and out[π[i]] = curr[i] at decode.
//
// This fills in the "image-reordering permutation helper" spec.md treats as
// an external collaborator; original_source/src/drachen.h names its C
// counterpart drachen_make_image_xform_matrix.
package permute

import (
	"github.com/mewkiz/pkg/errutil"
)

// Identity returns the trivial permutation of length n: π[i] = i.
func Identity(n int) []uint32 {
	perm := make([]uint32, n)
	for i := range perm {
		perm[i] = uint32(i)
	}
	return perm
}

// ImageXform builds a permutation that regroups a row-major buffer of
// rows*cols pixels, each with numComponents interleaved component bytes,
// into block-tiled order: every blockWidth x blockHeight tile of a single
// component occupies a contiguous run in the permuted stream, tiles in
// raster order, components outermost.
//
// The resulting table has length rows*cols*numComponents and is meant to be
// passed as a stream's permutation table, giving the block-size schedule
// (spec §4.5) good locality on frames that are really tiled images (screen
// captures, video), the same tiling idea mrjoshuak/go-jpeg2000 uses for its
// codeblock layout, applied here only to pick a byte order, not to implement
// any transform coding of its own.
func ImageXform(rows, cols, numComponents, blockWidth, blockHeight int) []uint32 {
	perm := make([]uint32, 0, rows*cols*numComponents)
	for comp := 0; comp < numComponents; comp++ {
		for blockRow := 0; blockRow < rows; blockRow += blockHeight {
			for blockCol := 0; blockCol < cols; blockCol += blockWidth {
				rowEnd := min(blockRow+blockHeight, rows)
				colEnd := min(blockCol+blockWidth, cols)
				for r := blockRow; r < rowEnd; r++ {
					for c := blockCol; c < colEnd; c++ {
						pixel := r*cols + c
						perm = append(perm, uint32(pixel*numComponents+comp))
					}
				}
			}
		}
	}
	return perm
}

// Validate checks that table is a well-formed permutation for a frame of
// frameSize bytes: the right length, every entry in range, and no repeats
// (spec §3: "Must be validated on load: any index >= F is a fatal stream
// error").
func Validate(table []uint32, frameSize uint32) error {
	if uint32(len(table)) != frameSize {
		return errutil.Newf("permutation table has %d entries, want %d", len(table), frameSize)
	}
	seen := make([]bool, frameSize)
	for i, idx := range table {
		if idx >= frameSize {
			return errutil.Newf("permutation entry %d out of range: %d >= %d", i, idx, frameSize)
		}
		if seen[idx] {
			return errutil.Newf("permutation entry %d duplicates index %d", i, idx)
		}
		seen[idx] = true
	}
	return nil
}
