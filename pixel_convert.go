// pixel_convert.go - Frame format conversion to RGBA for output devices

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
	"encoding/binary"
	"fmt"
)

// convertToRGBA expands a width*height frame in format f into dst, which
// must hold width*height*4 bytes.
func convertToRGBA(dst, src []byte, f PixelFormat, palette []uint32) error {
	switch f {
	case PixelFormatRGBA:
		if len(src) < len(dst) {
			return conversionError(f, len(src), len(dst))
		}
		copy(dst, src)
	case PixelFormatRGB565:
		if len(src) < len(dst)/2 {
			return conversionError(f, len(src), len(dst))
		}
		rgb565ToRGBA(dst, src)
	case PixelFormatPaletted:
		if len(src) < len(dst)/4 {
			return conversionError(f, len(src), len(dst))
		}
		if len(palette) < 256 {
			return &VideoError{
				Operation: "pixel conversion",
				Details:   fmt.Sprintf("palette has %d entries, need 256", len(palette)),
			}
		}
		palettedToRGBA(dst, src, palette)
	default:
		return &VideoError{
			Operation: "pixel conversion",
			Details:   fmt.Sprintf("unsupported format %s", f),
		}
	}
	return nil
}

func conversionError(f PixelFormat, have, want int) error {
	return &VideoError{
		Operation: "pixel conversion",
		Details:   fmt.Sprintf("%s frame of %d bytes too short for %d RGBA bytes", f, have, want),
	}
}

// rgb565ToRGBA widens each channel by replicating its top bits.
func rgb565ToRGBA(dst, src []byte) {
	for i, j := 0, 0; j+3 < len(dst); i, j = i+2, j+4 {
		v := binary.LittleEndian.Uint16(src[i:])
		r := uint8(v>>11) & 0x1F
		g := uint8(v>>5) & 0x3F
		b := uint8(v) & 0x1F
		dst[j+0] = r<<3 | r>>2
		dst[j+1] = g<<2 | g>>4
		dst[j+2] = b<<3 | b>>2
		dst[j+3] = 0xFF
	}
}

func palettedToRGBA(dst, src []byte, palette []uint32) {
	for i, j := 0, 0; j+3 < len(dst); i, j = i+1, j+4 {
		c := palette[src[i]]
		dst[j+0] = byte(c >> 16)
		dst[j+1] = byte(c >> 8)
		dst[j+2] = byte(c)
		dst[j+3] = 0xFF
	}
}
