package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	drachen "github.com/mewkiz/drachen"
)

func runStats(logger *log.Logger) error {
	pflag.Parse()
	args := pflag.Args()
	if len(args) != 1 {
		return errUsagef("stats: usage: drachen stats IN")
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

	var n int
	var total time.Duration
	for {
		start := time.Now()
		name, err := dec.DecodeFrame(buf)
		elapsed := time.Since(start)
		if drachen.IsEndOfStream(err) {
			break
		}
		if err != nil {
			return err
		}
		n++
		total += elapsed
		fmt.Printf("%s\t%s\n", name, elapsed)
	}
	logger.Info("done", "frames", n, "total", total)
	return nil
}
