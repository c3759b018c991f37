package main

import (
	"fmt"
	"runtime"
	"sort"

	"github.com/intuitionamiga/IntuitionScanline/scanline"
)

// compiledFeatures tracks build-time feature flags via init() registration.
var compiledFeatures []string

func printFeatures() {
	fmt.Printf("Intuition Scanline %s\n", Version)
	fmt.Printf("  Go version: %s\n", runtime.Version())
	fmt.Printf("  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Println()

	host := scanline.HostFeatures()
	fmt.Printf("Host CPU features: %s\n", host)
	fmt.Printf("Line strategy:     %s\n", scanline.SelectStrategy(host))
	fmt.Println()
	fmt.Println("Compiled features:")

	sort.Strings(compiledFeatures)
	for _, f := range compiledFeatures {
		fmt.Printf("  %s\n", f)
	}
	if len(compiledFeatures) == 0 {
		fmt.Println("  (none)")
	}
}
