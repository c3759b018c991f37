package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/intuitionamiga/IntuitionScanline/scanline"
)

// ============================================================================
// Trace Sequence Tests
// ============================================================================

func emitted(rows []TraceRow) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.Emits
	}
	return out
}

func TestTracer_Sequences(t *testing.T) {
	tests := []struct {
		kind scanline.Kind
		want []int
	}{
		{scanline.KindCopy, []int{0, 1, 2, 3, 4, 5}},
		{scanline.KindSwapEven, []int{0, 1, 0, 3, 2, 5}},
		{scanline.KindSwapOdd, []int{0, 0, 2, 1, 4, 3}},
	}
	for _, tt := range tests {
		for _, d := range []scanline.ElementDepth{scanline.Depth8, scanline.Depth16, scanline.Depth32} {
			tr, err := NewTracer(tt.kind, d, 5, 0)
			if err != nil {
				t.Fatalf("NewTracer(%s, %s) returned error: %v", tt.kind, d, err)
			}
			rows, err := tr.Run(len(tt.want))
			if err != nil {
				t.Fatalf("Run returned error: %v", err)
			}
			got := emitted(rows)
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("%s/%s: emitted %v, want %v", tt.kind, d, got, tt.want)
					break
				}
			}
		}
	}
}

func TestTracer_RecordsStates(t *testing.T) {
	tr, _ := NewTracer(scanline.KindSwapOdd, scanline.Depth8, 3, 0)
	rows, _ := tr.Run(4)
	want := []scanline.StageState{scanline.StateUninitialized, scanline.StatePrimed, scanline.StateSteady, scanline.StatePrimed}
	for i, r := range rows {
		if r.Before != want[i] {
			t.Errorf("call %d: before = %s, want %s", i, r.Before, want[i])
		}
		if r.After != scanline.KindSwapOdd.Next(r.Before) {
			t.Errorf("call %d: after = %s, want %s", i, r.After, scanline.KindSwapOdd.Next(r.Before))
		}
	}
}

func TestTracer_RunBounds(t *testing.T) {
	tr, _ := NewTracer(scanline.KindSwapEven, scanline.Depth8, 3, 0)
	if _, err := tr.Run(0); err == nil {
		t.Error("Run(0) should fail")
	}
	if _, err := tr.Run(256); err == nil {
		t.Error("Run(256) should fail")
	}
}

func TestWriteTable(t *testing.T) {
	tr, _ := NewTracer(scanline.KindSwapEven, scanline.Depth16, 4, 0)
	rows, _ := tr.Run(4)
	var buf bytes.Buffer
	if err := WriteTable(&buf, tr.Stage(), rows); err != nil {
		t.Fatalf("WriteTable returned error: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"swap-even/16bpp, 4 pixels, reference strategy", "CALL", "uninitialized", "sequence: L0 L1 L0 L3"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRun(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-kind", "swap-odd", "-depth", "8", "-lines", "4", "-strategy", "reference"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code %d, stderr %q", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "sequence: L0 L0 L2 L1") {
		t.Fatalf("unexpected trace:\n%s", stdout.String())
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		args []string
		code int
		want string
	}{
		{[]string{"-strategy", "turbo"}, 1, "invalid strategy"},
		{[]string{"-kind", "blur"}, 1, "invalid stage kind"},
		{[]string{"-depth", "24"}, 1, "invalid element depth"},
		{[]string{"-lines", "0"}, 1, "error:"},
		{[]string{"-bogus"}, 2, "flag provided but not defined"},
		{[]string{"extra"}, 2, "Usage: swaptrace"},
		{[]string{"-h"}, 0, "Usage: swaptrace"},
	}
	for _, tt := range tests {
		var stdout, stderr bytes.Buffer
		if code := run(tt.args, &stdout, &stderr); code != tt.code {
			t.Errorf("run(%v) = %d, want %d", tt.args, code, tt.code)
		}
		if !strings.Contains(stderr.String(), tt.want) {
			t.Errorf("run(%v) stderr %q, want %q", tt.args, stderr.String(), tt.want)
		}
	}
}
