package main

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	drachen "github.com/mewkiz/drachen"
)

func runDecode(logger *log.Logger) error {
	outDir := pflag.String("out-dir", ".", "directory to write decoded frames into")
	pflag.Parse()

	args := pflag.Args()
	if len(args) != 1 {
		return errUsagef("decode: usage: drachen decode [--out-dir DIR] IN")
	}

	in, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer in.Close()

	dec, err := drachen.NewDecoder(in, 0)
	if err != nil {
		return err
	}
	buf := make([]byte, dec.FrameSize())

	for {
		name, err := dec.DecodeFrame(buf)
		if drachen.IsEndOfStream(err) {
			return nil
		}
		if err != nil {
			return err
		}
		logger.Info("decoded frame", "name", name)
		outPath := filepath.Join(*outDir, name)
		if err := os.WriteFile(outPath, buf, 0o644); err != nil {
			return err
		}
	}
}
