// pipeline.go - Ordered chain of stages driven one line at a time

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

// Pipeline runs a fixed sequence of stages over each line. Intermediate
// results go through two pipeline-owned line buffers, so no stage ever sees
// its own output as input.
type Pipeline struct {
	stages []*Stage
	buf    [2][]byte
}

// NewPipeline checks that every stage's output covers the next stage's
// input and allocates the intermediate buffers. A stage may appear only once:
// its state advances once per line.
func NewPipeline(stages ...*Stage) (*Pipeline, error) {
	if len(stages) == 0 {
		return nil, stageError("pipeline setup", ErrChainMismatch, "no stages")
	}
	inter := 0
	seen := make(map[*Stage]int, len(stages))
	for i, st := range stages {
		if st == nil {
			return nil, stageError("pipeline setup", ErrChainMismatch, "stage %d is nil", i)
		}
		if first, dup := seen[st]; dup {
			return nil, stageError("pipeline setup", ErrChainMismatch,
				"stage %d (%s) is stage %d again", i, st, first)
		}
		seen[st] = i
		if i == 0 {
			continue
		}
		prev := stages[i-1]
		if prev.DestBytes() < st.SourceBytes() {
			return nil, stageError("pipeline setup", ErrChainMismatch,
				"stage %d (%s) writes %d bytes, stage %d (%s) reads %d",
				i-1, prev, prev.DestBytes(), i, st, st.SourceBytes())
		}
		inter = max(inter, prev.DestBytes())
	}

	p := &Pipeline{stages: append([]*Stage(nil), stages...)}
	if len(stages) > 1 {
		p.buf[0] = make([]byte, inter)
		p.buf[1] = make([]byte, inter)
	}

	Logger().Debug("scanline: pipeline configured",
		"stages", len(stages),
		"source_bytes", p.SourceBytes(),
		"dest_bytes", p.DestBytes())
	return p, nil
}

// ProcessLine runs every stage over one line, the last stage writing dst.
func (p *Pipeline) ProcessLine(dst, src []byte) {
	last := len(p.stages) - 1
	in := src
	for i, st := range p.stages {
		if i == last {
			st.Process(dst, in)
			return
		}
		out := p.buf[i&1]
		st.Process(out, in)
		in = out
	}
}

func (p *Pipeline) Len() int { return len(p.stages) }

// Stages returns the stages in processing order.
func (p *Pipeline) Stages() []*Stage {
	return append([]*Stage(nil), p.stages...)
}

// SourceBytes is the src length ProcessLine requires.
func (p *Pipeline) SourceBytes() int { return p.stages[0].SourceBytes() }

// DestBytes is the dst length ProcessLine writes.
func (p *Pipeline) DestBytes() int { return p.stages[len(p.stages)-1].DestBytes() }
