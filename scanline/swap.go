// swap.go - Swap-even / swap-odd line stages

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

import "fmt"

/*
Both effects share one three-state cycle. Each step emits either the
incoming line or the line latched on an earlier call, and optionally
latches the incoming line for later:

  swap-even                            swap-odd
  0: emit src, latch src      -> 1     0: emit src, latch src      -> 1
  1: emit src                 -> 2     1: emit scratch, latch src  -> 2
  2: emit scratch, latch src  -> 1     2: emit src                 -> 1

Fed L0..L5 from state 0, swap-even emits L0 L1 L0 L3 L2 L5 (each pair of
lines after the first is exchanged) and swap-odd emits L0 L0 L2 L1 L4 L3
(pairs exchanged one line later). The table is depth independent: the stage
passes count*depth bytes to the copy primitive.
*/

type lineSource uint8

const (
	fromSource lineSource = iota
	fromScratch
)

type swapStep struct {
	emit  lineSource
	latch bool // copy the source line into scratch after emitting
	next  StageState
}

type swapTable [3]swapStep

var swapEven = swapTable{
	StateUninitialized: {emit: fromSource, latch: true, next: StatePrimed},
	StatePrimed:        {emit: fromSource, next: StateSteady},
	StateSteady:        {emit: fromScratch, latch: true, next: StatePrimed},
}

var swapOdd = swapTable{
	StateUninitialized: {emit: fromSource, latch: true, next: StatePrimed},
	StatePrimed:        {emit: fromScratch, latch: true, next: StateSteady},
	StateSteady:        {emit: fromSource, next: StatePrimed},
}

func (t *swapTable) row(s StageState) *swapStep {
	if s > StateSteady {
		panic(fmt.Sprintf("scanline: swap stage in invalid state %d", uint8(s)))
	}
	return &t[s]
}

// step performs one line of the effect over n bytes and returns the next state.
func (t *swapTable) step(s StageState, scratch, dst, src []byte, n int, cp copyFunc) StageState {
	r := t.row(s)
	if r.emit == fromScratch {
		cp(dst, scratch, n)
	} else {
		cp(dst, src, n)
	}
	if r.latch {
		cp(scratch, src, n)
	}
	return r.next
}

func swapLine(t *swapTable, cp copyFunc) LineFunc {
	return func(st *Stage, dst, src []byte) {
		st.state = t.step(st.state, st.scratch, dst, src, st.lineBytes, cp)
	}
}

// NewSwapEven builds a swap-even stage. The source must be contiguous.
func NewSwapEven(cfg Config) (*Stage, error) {
	return NewStage(KindSwapEven, cfg)
}

// NewSwapOdd builds a swap-odd stage. The source must be contiguous.
func NewSwapOdd(cfg Config) (*Stage, error) {
	return NewStage(KindSwapOdd, cfg)
}

func NewSwapEven8(count, srcStride int, features Features) (*Stage, error) {
	return NewSwapEven(Config{Depth: Depth8, Count: count, SourceStride: srcStride, Features: features})
}

func NewSwapOdd8(count, srcStride int, features Features) (*Stage, error) {
	return NewSwapOdd(Config{Depth: Depth8, Count: count, SourceStride: srcStride, Features: features})
}

func NewSwapEven16(count, srcStride int, features Features) (*Stage, error) {
	return NewSwapEven(Config{Depth: Depth16, Count: count, SourceStride: srcStride, Features: features})
}

func NewSwapOdd16(count, srcStride int, features Features) (*Stage, error) {
	return NewSwapOdd(Config{Depth: Depth16, Count: count, SourceStride: srcStride, Features: features})
}

func NewSwapEven32(count, srcStride int, features Features) (*Stage, error) {
	return NewSwapEven(Config{Depth: Depth32, Count: count, SourceStride: srcStride, Features: features})
}

func NewSwapOdd32(count, srcStride int, features Features) (*Stage, error) {
	return NewSwapOdd(Config{Depth: Depth32, Count: count, SourceStride: srcStride, Features: features})
}
