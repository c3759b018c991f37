// pixel_convert_test.go - Pixel format conversion tests

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
	"testing"
)

func TestConvertToRGBA(t *testing.T) {
	palette := make([]uint32, 256)
	palette[3] = 0x112233
	palette[200] = 0xFFFFFF

	tests := []struct {
		name   string
		format PixelFormat
		src    []byte
		want   []byte
	}{
		{"rgba", PixelFormatRGBA, []byte{1, 2, 3, 4, 5, 6, 7, 8}, []byte{1, 2, 3, 4, 5, 6, 7, 8}},
		{"rgb565 white black", PixelFormatRGB565, []byte{0xFF, 0xFF, 0x00, 0x00}, []byte{255, 255, 255, 255, 0, 0, 0, 255}},
		{"rgb565 primaries", PixelFormatRGB565, []byte{0x00, 0xF8, 0x1F, 0x00}, []byte{255, 0, 0, 255, 0, 0, 255, 255}},
		{"paletted", PixelFormatPaletted, []byte{3, 200}, []byte{0x11, 0x22, 0x33, 255, 255, 255, 255, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := make([]byte, 8)
			if err := convertToRGBA(dst, tt.src, tt.format, palette); err != nil {
				t.Fatalf("convertToRGBA: %v", err)
			}
			if !bytes.Equal(dst, tt.want) {
				t.Fatalf("got %v, want %v", dst, tt.want)
			}
		})
	}
}

func TestConvertToRGBA_Errors(t *testing.T) {
	dst := make([]byte, 16)
	if err := convertToRGBA(dst, make([]byte, 6), PixelFormatRGB565, nil); err == nil {
		t.Fatal("expected short RGB565 frame to fail")
	}
	if err := convertToRGBA(dst, make([]byte, 4), PixelFormatPaletted, make([]uint32, 16)); err == nil {
		t.Fatal("expected short palette to fail")
	}
	if err := convertToRGBA(dst, make([]byte, 16), PixelFormat(9), nil); err == nil {
		t.Fatal("expected unknown format to fail")
	}
}

func TestRGB565RoundTripKeepsTopBits(t *testing.T) {
	for _, c := range [][3]uint8{{0, 0, 0}, {255, 255, 255}, {0x80, 0x40, 0x20}, {0x13, 0xC7, 0x9A}} {
		v := rgbTo565(c[0], c[1], c[2])
		src := []byte{byte(v), byte(v >> 8)}
		dst := make([]byte, 4)
		rgb565ToRGBA(dst, src)
		if dst[0]&0xF8 != c[0]&0xF8 || dst[1]&0xFC != c[1]&0xFC || dst[2]&0xF8 != c[2]&0xF8 {
			t.Fatalf("%v -> %04x -> %v", c, v, dst)
		}
	}
}
