package main

import (
	"bufio"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	drachen "github.com/mewkiz/drachen"
	"github.com/mewkiz/drachen/permute"
)

func runEncode(logger *log.Logger) error {
	var (
		frameSize = pflag.Uint32("frame-size", 0, "frame size in bytes (required)")
		schedPath = pflag.String("schedule", "", "YAML block-size schedule (default: built-in 32-byte blocks)")
		permPath  = pflag.String("permute", "", "raw little-endian uint32 permutation table (default: identity)")
	)
	pflag.Parse()

	if *frameSize == 0 {
		return errUsagef("encode: --frame-size is required")
	}
	args := pflag.Args()
	if len(args) < 2 {
		return errUsagef("encode: usage: drachen encode --frame-size N OUT IN...")
	}
	outPath, inPaths := args[0], args[1:]

	var schedule drachen.Schedule
	if *schedPath != "" {
		s, err := loadSchedule(*schedPath)
		if err != nil {
			return err
		}
		schedule = s
	}

	var perm []uint32
	if *permPath != "" {
		p, err := loadPermutation(*permPath, *frameSize)
		if err != nil {
			return err
		}
		perm = p
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	// bitio buffers an output that is not an io.ByteWriter and Encoder has
	// no Close, so buffer here and flush once every frame is written.
	bw := bufio.NewWriter(out)
	enc, err := drachen.NewEncoder(bw, *frameSize, perm, schedule)
	if err != nil {
		return err
	}

	for _, inPath := range inPaths {
		data, err := os.ReadFile(inPath)
		if err != nil {
			return err
		}
		if uint32(len(data)) != *frameSize {
			return errUsagef("encode: %s has %d bytes, want %d", inPath, len(data), *frameSize)
		}
		name := filepath.Base(inPath)
		logger.Debug("encoding frame", "name", name, "bytes", len(data))
		if err := enc.EncodeFrame(name, data); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func loadPermutation(path string, frameSize uint32) ([]uint32, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(raw)%4 != 0 {
		return nil, errUsagef("permute: %s is not a multiple of 4 bytes", path)
	}
	perm := make([]uint32, len(raw)/4)
	for i := range perm {
		perm[i] = uint32(raw[4*i]) | uint32(raw[4*i+1])<<8 | uint32(raw[4*i+2])<<16 | uint32(raw[4*i+3])<<24
	}
	if err := permute.Validate(perm, frameSize); err != nil {
		return nil, err
	}
	return perm, nil
}
