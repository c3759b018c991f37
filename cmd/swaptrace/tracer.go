package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/intuitionamiga/IntuitionScanline/scanline"
)

// TraceRow records one Process call on a traced stage.
type TraceRow struct {
	Call   int
	Before scanline.StageState
	After  scanline.StageState
	Emits  int // index of the input line that reached dst
}

// Tracer feeds numbered lines through a single stage and records which
// input line comes out of each call.
type Tracer struct {
	stage *scanline.Stage
	lines [][]byte
	dst   []byte
}

func NewTracer(kind scanline.Kind, depth scanline.ElementDepth, count int, features scanline.Features) (*Tracer, error) {
	st, err := scanline.NewStage(kind, scanline.Config{Depth: depth, Count: count, Features: features})
	if err != nil {
		return nil, err
	}
	return &Tracer{stage: st, dst: make([]byte, st.DestBytes())}, nil
}

// line returns input line n, every byte set to n+1 so no line is all zero.
func (tr *Tracer) line(n int) []byte {
	for len(tr.lines) <= n {
		k := len(tr.lines)
		l := make([]byte, tr.stage.SourceBytes())
		for i := range l {
			l[i] = byte(k + 1)
		}
		tr.lines = append(tr.lines, l)
	}
	return tr.lines[n]
}

// identify maps dst back to the input line it was copied from, or -1 when
// dst is not a whole copy of any line.
func (tr *Tracer) identify() int {
	tag := tr.dst[0]
	for _, b := range tr.dst {
		if b != tag {
			return -1
		}
	}
	if tag == 0 || int(tag) > len(tr.lines) {
		return -1
	}
	return int(tag) - 1
}

// Run processes n lines and returns one row per call.
func (tr *Tracer) Run(n int) ([]TraceRow, error) {
	if n <= 0 || n > 255 {
		return nil, fmt.Errorf("line count %d must be between 1 and 255", n)
	}
	rows := make([]TraceRow, 0, n)
	for call := range n {
		before := tr.stage.State()
		tr.stage.Process(tr.dst, tr.line(call))
		rows = append(rows, TraceRow{Call: call, Before: before, After: tr.stage.State(), Emits: tr.identify()})
	}
	return rows, nil
}

func (tr *Tracer) Stage() *scanline.Stage {
	return tr.stage
}

// WriteTable prints rows as an aligned table followed by the emitted line
// sequence.
func WriteTable(w io.Writer, st *scanline.Stage, rows []TraceRow) error {
	fmt.Fprintf(w, "%s, %d pixels, %s strategy\n\n", st, st.Count(), st.Strategy())
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CALL\tIN\tSTATE\tOUT\tNEXT")
	seq := make([]string, len(rows))
	for i, r := range rows {
		out := "?"
		if r.Emits >= 0 {
			out = fmt.Sprintf("L%d", r.Emits)
		}
		seq[i] = out
		fmt.Fprintf(tw, "%d\tL%d\t%s\t%s\t%s\n", r.Call, r.Call, r.Before, out, r.After)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\nsequence: %s\n", strings.Join(seq, " "))
	return err
}
