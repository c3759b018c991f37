// features.go - Host capability query and line strategy selection

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine

License: GPLv3 or later
*/

package scanline

import (
	"fmt"
	"strings"

	"golang.org/x/sys/cpu"
)

// Features is a set of CPU instruction extensions relevant to line copying.
type Features uint32

const (
	FeatureSSE2 Features = 1 << iota
	FeatureAVX2
	FeatureASIMD
)

var featureNames = []struct {
	f    Features
	name string
}{
	{FeatureSSE2, "sse2"},
	{FeatureAVX2, "avx2"},
	{FeatureASIMD, "asimd"},
}

// HostFeatures queries the running CPU. Call it once at configuration time
// and pass the result into Config.Features.
func HostFeatures() Features {
	var f Features
	if cpu.X86.HasSSE2 {
		f |= FeatureSSE2
	}
	if cpu.X86.HasAVX2 {
		f |= FeatureAVX2
	}
	if cpu.ARM64.HasASIMD {
		f |= FeatureASIMD
	}
	return f
}

// Has reports whether every feature in x is present.
func (f Features) Has(x Features) bool {
	return f&x == x
}

// WideCopy reports whether the accelerated strategy may be used. Both
// extensions imply vector line moves and cheap unaligned word access.
func (f Features) WideCopy() bool {
	return f&(FeatureSSE2|FeatureASIMD) != 0
}

func (f Features) String() string {
	if f == 0 {
		return "none"
	}
	var names []string
	for _, n := range featureNames {
		if f.Has(n.f) {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, ",")
}

// Strategy identifies which implementation backs a stage's line operation.
type Strategy uint8

const (
	StrategyReference Strategy = iota
	StrategyAccelerated
)

// SelectStrategy picks the accelerated strategy when the features allow it.
func SelectStrategy(f Features) Strategy {
	if f.WideCopy() {
		return StrategyAccelerated
	}
	return StrategyReference
}

// FeaturesFor turns a strategy name (auto, reference or accelerated) into
// the feature set to pass in Config.Features. Reference masks every feature;
// accelerated fails with ErrStrategyUnavailable when host cannot run it.
func FeaturesFor(name string, host Features) (Features, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "auto":
		return host, nil
	case "reference":
		return 0, nil
	case "accelerated":
		if !host.WideCopy() {
			return 0, fmt.Errorf("%w (host features: %s)", ErrStrategyUnavailable, host)
		}
		return host, nil
	}
	return 0, fmt.Errorf("%w %q: want auto, reference or accelerated", ErrInvalidStrategy, name)
}

func (s Strategy) String() string {
	switch s {
	case StrategyReference:
		return "reference"
	case StrategyAccelerated:
		return "accelerated"
	default:
		return "unknown"
	}
}

// copyFunc returns the copy primitive backing s.
func (s Strategy) copyFunc() copyFunc {
	if s == StrategyAccelerated {
		return copyVector
	}
	return copyReference
}
