// stage.go - Stage descriptors and the per-line calling convention

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

// Package scanline implements per-scanline transformation stages.
//
// A Stage is configured once (depth, pixel count, source stride, CPU
// features) and then invoked once per line with Process. Each stage owns
// its phase state and scratch line; the implementation backing Process is
// chosen at construction and never re-dispatched.
package scanline

import "github.com/google/uuid"

// LineFunc transforms one scanline for st. dst and src must not overlap.
type LineFunc func(st *Stage, dst, src []byte)

// Config describes the geometry of a stage.
type Config struct {
	Depth        ElementDepth
	Count        int      // pixels per line
	SourceStride int      // signed bytes between source pixels, 0 means Depth
	Features     Features // capabilities used to pick the strategy
}

// Stage is one unit of the line pipeline. It must only be driven from one
// goroutine, with lines in order.
type Stage struct {
	id        uuid.UUID
	kind      Kind
	depth     ElementDepth
	count     int
	srcStride int
	dstStride int
	lineBytes int
	state     StageState
	scratch   []byte
	strategy  Strategy
	line      LineFunc
}

// NewStage validates cfg and returns a stage of the given kind ready for
// Process. Stateful kinds get a scratch line of Count*Depth bytes.
func NewStage(kind Kind, cfg Config) (*Stage, error) {
	op := kind.String() + " setup"
	if !cfg.Depth.Valid() {
		return nil, stageError(op, ErrInvalidDepth, "depth %d is not 1, 2 or 4 bytes", int(cfg.Depth))
	}
	if cfg.Count <= 0 {
		return nil, stageError(op, ErrInvalidCount, "count %d must be positive", cfg.Count)
	}

	stride := cfg.SourceStride
	if stride == 0 {
		stride = cfg.Depth.Bytes()
	}
	if abs(stride) < cfg.Depth.Bytes() {
		return nil, stageError(op, ErrInvalidStride, "stride %d overlaps %s pixels", stride, cfg.Depth)
	}

	strategy := SelectStrategy(cfg.Features)
	s := &Stage{
		id:        uuid.New(),
		kind:      kind,
		depth:     cfg.Depth,
		count:     cfg.Count,
		srcStride: stride,
		dstStride: cfg.Depth.Bytes(),
		lineBytes: cfg.Depth.LineBytes(cfg.Count),
		state:     StateUninitialized,
		strategy:  strategy,
	}

	switch kind {
	case KindSwapEven, KindSwapOdd:
		if stride != cfg.Depth.Bytes() {
			return nil, stageError(op, ErrInvalidStride, "stride %d: swap stages need a contiguous %s source", stride, cfg.Depth)
		}
		table := &swapEven
		if kind == KindSwapOdd {
			table = &swapOdd
		}
		s.line = swapLine(table, strategy.copyFunc())
	case KindCopy:
		s.line = copyLine(strategy)
	default:
		return nil, stageError(op, ErrInvalidKind, "%s", kind)
	}

	if kind.stateful() {
		s.scratch = make([]byte, s.lineBytes)
	}

	Logger().Debug("scanline: stage configured",
		"id", s.id,
		"kind", kind.String(),
		"depth", cfg.Depth.String(),
		"count", cfg.Count,
		"stride", stride,
		"strategy", strategy.String(),
		"features", cfg.Features.String())
	return s, nil
}

// Process transforms one line. dst must hold DestBytes and src SourceBytes;
// shorter buffers are a caller bug and panic.
func (s *Stage) Process(dst, src []byte) {
	s.line(s, dst, src)
}

// ID identifies the stage in logs.
func (s *Stage) ID() uuid.UUID { return s.id }

func (s *Stage) Kind() Kind { return s.kind }

func (s *Stage) Depth() ElementDepth { return s.depth }

// Count is the number of pixels per line.
func (s *Stage) Count() int { return s.count }

// SourceStride is the signed byte step between source pixels.
func (s *Stage) SourceStride() int { return s.srcStride }

func (s *Stage) DestStride() int { return s.dstStride }

func (s *Stage) State() StageState { return s.state }

func (s *Stage) Strategy() Strategy { return s.strategy }

// SourceBytes is the minimum length of the src view passed to Process.
func (s *Stage) SourceBytes() int {
	return (s.count-1)*abs(s.srcStride) + s.depth.Bytes()
}

// DestBytes is the number of bytes Process writes to dst.
func (s *Stage) DestBytes() int { return s.lineBytes }

// ScratchBytes is zero for stateless kinds.
func (s *Stage) ScratchBytes() int { return len(s.scratch) }

func (s *Stage) String() string {
	return s.kind.String() + "/" + s.depth.String()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
