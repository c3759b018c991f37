// state.go - Stage kinds and the per-stage state value

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
)

// StageState is the phase carried by a stage between consecutive lines.
type StageState uint8

const (
	StateUninitialized StageState = iota
	StatePrimed
	StateSteady
)

func (s StageState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StatePrimed:
		return "primed"
	case StateSteady:
		return "steady"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Kind identifies the transformation a stage performs.
type Kind uint8

const (
	KindCopy Kind = iota
	KindSwapEven
	KindSwapOdd
)

func (k Kind) String() string {
	switch k {
	case KindCopy:
		return "copy"
	case KindSwapEven:
		return "swap-even"
	case KindSwapOdd:
		return "swap-odd"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// ParseKind accepts the names produced by Kind.String.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "copy":
		return KindCopy, nil
	case "swap-even", "swapeven":
		return KindSwapEven, nil
	case "swap-odd", "swapodd":
		return KindSwapOdd, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidKind, name)
}

// stateful reports whether stages of this kind keep a scratch line.
func (k Kind) stateful() bool {
	return k == KindSwapEven || k == KindSwapOdd
}

// Next returns the state a stage of kind k moves to after processing one
// line in state s. Stateless kinds stay where they are. It panics on a
// state outside the cycle.
func (k Kind) Next(s StageState) StageState {
	switch k {
	case KindSwapEven:
		return swapEven.row(s).next
	case KindSwapOdd:
		return swapOdd.row(s).next
	}
	return s
}
