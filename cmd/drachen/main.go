// Command drachen encodes and decodes drachen frame streams.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: drachen [encode|decode|stats] [OPTION]... FILE...")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "encode --frame-size N [--schedule file.yaml] [--permute file] OUT IN...")
	fmt.Fprintln(os.Stderr, "  Pack each input file, taken as one raw frame of N bytes, into a single")
	fmt.Fprintln(os.Stderr, "  drachen container written to OUT.")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "decode [--out-dir DIR] IN")
	fmt.Fprintln(os.Stderr, "  Unpack a drachen container, writing one file per frame named after its")
	fmt.Fprintln(os.Stderr, "  stored name.")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "stats IN")
	fmt.Fprintln(os.Stderr, "  Decode a container, reporting per-frame wall-clock timing.")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Flags:")
	pflag.PrintDefaults()
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	command := os.Args[1]
	os.Args = append(os.Args[:1], os.Args[2:]...)

	logger := log.New(os.Stderr)

	var err error
	switch command {
	case "encode":
		err = runEncode(logger)
	case "decode":
		err = runDecode(logger)
	case "stats":
		err = runStats(logger)
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "drachen: unknown command %q\n", command)
		usage()
		os.Exit(1)
	}
	if err != nil {
		logger.Fatal(err)
	}
}
