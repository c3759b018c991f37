package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/intuitionamiga/IntuitionScanline/scanline"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run parses args, traces the requested stage into stdout and returns the
// process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	flagSet := flag.NewFlagSet("swaptrace", flag.ContinueOnError)
	flagSet.SetOutput(stderr)
	kindName := flagSet.String("kind", "swap-even", "Stage kind: copy, swap-even, swap-odd")
	depthBits := flagSet.Int("depth", 16, "Element depth in bits (8, 16, 32)")
	count := flagSet.Int("count", 4, "Pixels per line")
	lines := flagSet.Int("lines", 8, "Number of lines to feed")
	strategy := flagSet.String("strategy", "auto", "Line strategy: auto, reference, accelerated")
	flagSet.Usage = func() {
		fmt.Fprintf(stderr, "Usage: swaptrace [options]\n\nPrints the per-call phase and output line of a scanline stage.\n\nOptions:\n")
		flagSet.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  swaptrace -kind swap-odd -lines 6\n")
		fmt.Fprintf(stderr, "  swaptrace -depth 32 -strategy reference\n")
	}

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if flagSet.NArg() != 0 {
		flagSet.Usage()
		return 2
	}

	if err := trace(stdout, *kindName, *depthBits, *count, *lines, *strategy); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func trace(w io.Writer, kindName string, depthBits, count, lines int, strategy string) error {
	kind, err := scanline.ParseKind(kindName)
	if err != nil {
		return err
	}
	depth, err := scanline.DepthFromBits(depthBits)
	if err != nil {
		return err
	}
	features, err := scanline.FeaturesFor(strategy, scanline.HostFeatures())
	if err != nil {
		return err
	}
	tr, err := NewTracer(kind, depth, count, features)
	if err != nil {
		return err
	}
	rows, err := tr.Run(lines)
	if err != nil {
		return err
	}
	return WriteTable(w, tr.Stage(), rows)
}
