package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/intuitionamiga/IntuitionScanline/scanline"
)

// runtimeStatusSnapshot is what the status bar and the exit summary show.
type runtimeStatusSnapshot struct {
	kinds    []scanline.Kind
	states   []scanline.StageState
	depth    scanline.ElementDepth
	strategy scanline.Strategy
	features scanline.Features
	output   string
	frames   uint64
}

type runtimeStatusStore struct {
	mu sync.RWMutex
	runtimeStatusSnapshot
}

func (s *runtimeStatusStore) setPipeline(p *scanline.Pipeline, features scanline.Features, output string) {
	stages := p.Stages()
	kinds := make([]scanline.Kind, len(stages))
	for i, st := range stages {
		kinds[i] = st.Kind()
	}
	s.mu.Lock()
	s.kinds = kinds
	s.states = make([]scanline.StageState, len(stages))
	s.depth = stages[len(stages)-1].Depth()
	s.strategy = stages[0].Strategy()
	s.features = features
	s.output = output
	s.frames = 0
	s.mu.Unlock()
}

func (s *runtimeStatusStore) setFrame(frames uint64, states []scanline.StageState) {
	s.mu.Lock()
	s.frames = frames
	if len(s.states) != len(states) {
		s.states = make([]scanline.StageState, len(states))
	}
	copy(s.states, states)
	s.mu.Unlock()
}

func (s *runtimeStatusStore) snapshot() runtimeStatusSnapshot {
	s.mu.RLock()
	snap := s.runtimeStatusSnapshot
	snap.kinds = append([]scanline.Kind(nil), s.kinds...)
	snap.states = append([]scanline.StageState(nil), s.states...)
	s.mu.RUnlock()
	return snap
}

// effect names the pipeline as its stage kinds joined with '+'.
func (s runtimeStatusSnapshot) effect() string {
	names := make([]string, len(s.kinds))
	for i, k := range s.kinds {
		names[i] = k.String()
	}
	return strings.Join(names, "+")
}

type statusToken struct {
	name    string
	enabled bool
}

// stageTokens lists every stage with its current phase. A stage shows as
// enabled once it has seen a line.
func stageTokens(s runtimeStatusSnapshot) []statusToken {
	tokens := make([]statusToken, 0, 2*len(s.kinds))
	for i, k := range s.kinds {
		if i > 0 {
			tokens = append(tokens, statusToken{name: ">"})
		}
		state := scanline.StateUninitialized
		if i < len(s.states) {
			state = s.states[i]
		}
		name := k.String()
		if k != scanline.KindCopy {
			name += ":" + state.String()
		}
		tokens = append(tokens, statusToken{name: name, enabled: state != scanline.StateUninitialized || s.frames > 0})
	}
	return tokens
}

func formatFrameCount(n uint64) string {
	return fmt.Sprintf("%d", n)
}

// statusLine is one labelled row of the window status overlay.
type statusLine struct {
	label  string
	tokens []statusToken
}

// statusLines lays out the overlay top to bottom: stage phases, line format
// and strategy, then the frame counter.
func statusLines(s runtimeStatusSnapshot) []statusLine {
	sep := statusToken{name: "|"}
	return []statusLine{
		{label: "STAGE", tokens: stageTokens(s)},
		{label: "LINE ", tokens: []statusToken{
			{name: s.depth.String(), enabled: true},
			sep,
			{name: "REF", enabled: s.strategy == scanline.StrategyReference},
			sep,
			{name: "ACCEL", enabled: s.strategy == scanline.StrategyAccelerated},
			sep,
			{name: s.features.String(), enabled: s.features != 0},
		}},
		{label: "FRAME", tokens: []statusToken{
			{name: formatFrameCount(s.frames), enabled: s.frames > 0},
		}},
	}
}

var runtimeStatus = &runtimeStatusStore{}
