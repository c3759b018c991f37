// video_source.go - Emulated frame producer for the scanline driver

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

/*
video_source.go - Test Pattern Video Source

PatternSource stands in for an emulated video chip. Each frame it renders a
scrolling set of colour bars into its own frame buffer at the configured
element depth:

- 8bpp:  palette indices into a 256-entry RGB palette
- 16bpp: RGB565, little endian
- 32bpp: RGBA8888

Pixels inside a row sit PixelPitch bytes apart, so sources wider than the
element depth (interleaved planes, padded words) can be fed through a copy
stage with a matching stride. Blue ramps with the row number and odd rows
are drawn at half intensity, so line reordering by swap stages is visible.
*/

package main

import (
	"encoding/binary"
	"fmt"

	"github.com/intuitionamiga/IntuitionScanline/scanline"
)

// VideoSource produces raw frames for the scanline driver
type VideoSource interface {
	RenderFrame(frame uint64)
	GetFrame() []byte
	GetDimensions() (w, h int)
	Depth() scanline.ElementDepth
	RowBytes() int // bytes between the starts of consecutive rows
	Palette() []uint32
}

type PatternSource struct {
	width      int
	height     int
	depth      scanline.ElementDepth
	pixelPitch int
	rowBytes   int
	frame      []byte
	palette    []uint32
}

// NewPatternSource creates a pattern generator. pitch is the byte distance
// between pixels in a row; 0 means densely packed.
func NewPatternSource(width, height int, depth scanline.ElementDepth, pitch int) (*PatternSource, error) {
	if width <= 0 || height <= 0 {
		return nil, &VideoError{
			Operation: "source setup",
			Details:   fmt.Sprintf("invalid dimensions %dx%d", width, height),
		}
	}
	if !depth.Valid() {
		return nil, &VideoError{
			Operation: "source setup",
			Details:   fmt.Sprintf("depth %d", int(depth)),
			Err:       scanline.ErrInvalidDepth,
		}
	}
	if pitch == 0 {
		pitch = depth.Bytes()
	}
	if pitch < depth.Bytes() {
		return nil, &VideoError{
			Operation: "source setup",
			Details:   fmt.Sprintf("pixel pitch %d below %s", pitch, depth),
			Err:       scanline.ErrInvalidStride,
		}
	}
	rowBytes := (width-1)*pitch + depth.Bytes()
	return &PatternSource{
		width:      width,
		height:     height,
		depth:      depth,
		pixelPitch: pitch,
		rowBytes:   rowBytes,
		frame:      make([]byte, rowBytes*height),
		palette:    defaultPalette(),
	}, nil
}

// defaultPalette is a 6x7x6 colour cube followed by a grey ramp, stored as
// 0x00RRGGBB.
func defaultPalette() []uint32 {
	pal := make([]uint32, 256)
	i := 0
	for r := range 6 {
		for g := range 7 {
			for b := range 6 {
				pal[i] = uint32(r*255/5)<<16 | uint32(g*255/6)<<8 | uint32(b*255/5)
				i++
			}
		}
	}
	for ; i < 256; i++ {
		v := uint32((i - 252) * 85)
		pal[i] = v<<16 | v<<8 | v
	}
	return pal
}

// patternRGB is the colour of pixel (x, y) in the given frame.
func patternRGB(x, y int, frame uint64) (r, g, b uint8) {
	bar := ((x + int(frame)) / 16) & 7
	if bar&1 != 0 {
		r = 0xFF
	}
	if bar&2 != 0 {
		g = 0xFF
	}
	b = uint8(y * 8)
	if y&1 == 1 {
		r >>= 1
		g >>= 1
	}
	return r, g, b
}

// RenderFrame draws frame number n into the source buffer
func (p *PatternSource) RenderFrame(n uint64) {
	for y := 0; y < p.height; y++ {
		row := p.frame[y*p.rowBytes : (y+1)*p.rowBytes]
		for x := 0; x < p.width; x++ {
			off := x * p.pixelPitch
			r, g, b := patternRGB(x, y, n)
			switch p.depth {
			case scanline.Depth8:
				row[off] = paletteIndex(r, g, b)
			case scanline.Depth16:
				binary.LittleEndian.PutUint16(row[off:], rgbTo565(r, g, b))
			case scanline.Depth32:
				row[off+0] = r
				row[off+1] = g
				row[off+2] = b
				row[off+3] = 0xFF
			}
		}
	}
}

// paletteIndex picks the colour cube entry nearest to r, g, b.
func paletteIndex(r, g, b uint8) uint8 {
	ri := (int(r)*5 + 127) / 255
	gi := (int(g)*6 + 127) / 255
	bi := (int(b)*5 + 127) / 255
	return uint8(ri*42 + gi*6 + bi)
}

func rgbTo565(r, g, b uint8) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}

func (p *PatternSource) GetFrame() []byte {
	return p.frame
}

func (p *PatternSource) GetDimensions() (int, int) {
	return p.width, p.height
}

func (p *PatternSource) Depth() scanline.ElementDepth {
	return p.depth
}

func (p *PatternSource) RowBytes() int {
	return p.rowBytes
}

func (p *PatternSource) PixelPitch() int {
	return p.pixelPitch
}

func (p *PatternSource) Palette() []uint32 {
	return p.palette
}
