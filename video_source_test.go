// video_source_test.go - Pattern source tests

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

package main

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/intuitionamiga/IntuitionScanline/scanline"
)

func TestPatternSource_Geometry(t *testing.T) {
	src, err := NewPatternSource(10, 3, scanline.Depth16, 6)
	if err != nil {
		t.Fatal(err)
	}
	if src.RowBytes() != 9*6+2 || len(src.GetFrame()) != 3*src.RowBytes() {
		t.Fatalf("row bytes %d frame %d", src.RowBytes(), len(src.GetFrame()))
	}
	if w, h := src.GetDimensions(); w != 10 || h != 3 {
		t.Fatalf("dimensions %dx%d", w, h)
	}
	if len(src.Palette()) != 256 {
		t.Fatalf("palette has %d entries", len(src.Palette()))
	}
}

func TestPatternSource_RejectsBadSetup(t *testing.T) {
	if _, err := NewPatternSource(0, 3, scanline.Depth8, 0); err == nil {
		t.Fatal("expected zero width to fail")
	}
	if _, err := NewPatternSource(4, 4, scanline.ElementDepth(3), 0); !errors.Is(err, scanline.ErrInvalidDepth) {
		t.Fatalf("bad depth err = %v", err)
	}
	if _, err := NewPatternSource(4, 4, scanline.Depth32, 2); !errors.Is(err, scanline.ErrInvalidStride) {
		t.Fatalf("narrow pitch err = %v", err)
	}
}

func TestPatternSource_RowsAreDistinct(t *testing.T) {
	for _, d := range []scanline.ElementDepth{scanline.Depth8, scanline.Depth16, scanline.Depth32} {
		src, _ := NewPatternSource(32, 8, d, 0)
		src.RenderFrame(0)
		row := src.RowBytes()
		f := src.GetFrame()
		for y := 1; y < 8; y++ {
			if bytes.Equal(f[(y-1)*row:y*row], f[y*row:(y+1)*row]) {
				t.Fatalf("%s: rows %d and %d are identical", d, y-1, y)
			}
		}
	}
}

func TestPatternSource_Scrolls(t *testing.T) {
	src, _ := NewPatternSource(64, 1, scanline.Depth16, 4)
	src.RenderFrame(0)
	first := append([]byte(nil), src.GetFrame()...)
	src.RenderFrame(16)
	if bytes.Equal(first, src.GetFrame()) {
		t.Fatal("frame did not change after scrolling one bar")
	}
	// Pixel x at frame 16 matches pixel x+16 at frame 0.
	at := func(buf []byte, x int) uint16 { return binary.LittleEndian.Uint16(buf[x*4:]) }
	if at(src.GetFrame(), 3) != at(first, 19) {
		t.Fatalf("pixel 3 = %04x, want %04x", at(src.GetFrame(), 3), at(first, 19))
	}
}

func TestPaletteIndex_HitsCubeCorners(t *testing.T) {
	pal := defaultPalette()
	for _, c := range [][3]uint8{{0, 0, 0}, {255, 0, 0}, {0, 255, 0}, {0, 0, 255}, {255, 255, 255}} {
		got := pal[paletteIndex(c[0], c[1], c[2])]
		want := uint32(c[0])<<16 | uint32(c[1])<<8 | uint32(c[2])
		if got != want {
			t.Fatalf("%v -> %06x, want %06x", c, got, want)
		}
	}
}
