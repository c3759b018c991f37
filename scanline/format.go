// format.go - Pixel element depths for scanline stages

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

// ElementDepth is the number of bytes one pixel occupies in a line buffer.
type ElementDepth int

const (
	Depth8  ElementDepth = 1 // palette index
	Depth16 ElementDepth = 2 // RGB565
	Depth32 ElementDepth = 4 // RGBA8888
)

// DepthFromBits maps a bits-per-pixel value (8, 16, 32) to an ElementDepth.
func DepthFromBits(bits int) (ElementDepth, error) {
	switch bits {
	case 8:
		return Depth8, nil
	case 16:
		return Depth16, nil
	case 32:
		return Depth32, nil
	}
	return 0, fmt.Errorf("%w: %d bits per pixel", ErrInvalidDepth, bits)
}

// Valid reports whether d is one of the supported depths.
func (d ElementDepth) Valid() bool {
	return d == Depth8 || d == Depth16 || d == Depth32
}

// Bytes returns the byte size of one pixel.
func (d ElementDepth) Bytes() int {
	return int(d)
}

// Bits returns the bits-per-pixel value.
func (d ElementDepth) Bits() int {
	return int(d) * 8
}

// LineBytes returns the byte length of count contiguous pixels.
func (d ElementDepth) LineBytes(count int) int {
	return count * int(d)
}

func (d ElementDepth) String() string {
	if !d.Valid() {
		return fmt.Sprintf("depth(%d)", int(d))
	}
	return fmt.Sprintf("%dbpp", d.Bits())
}
