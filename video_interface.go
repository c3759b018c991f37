// video_interface.go - Output device interface for Intuition Scanline

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
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/intuitionamiga/IntuitionScanline/scanline"
)

// VideoError provides detailed error context for video operations
type VideoError struct {
	Operation string // What operation was being attempted
	Details   string // Additional error context
	Err       error  // Underlying error if any
}

func (e *VideoError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("video %s failed: %s: %v", e.Operation, e.Details, e.Err)
	}
	return fmt.Sprintf("video %s failed: %s", e.Operation, e.Details)
}

func (e *VideoError) Unwrap() error {
	return e.Err
}

// FrameSnapshot encapsulates the data needed to represent a complete frame
type FrameSnapshot struct {
	Buffer    []byte // RGBA pixels
	Width     int
	Height    int
	Format    PixelFormat // Format the frame was produced in before conversion
	Timestamp time.Time
}

// DisplayConfig contains hardware-independent configuration
type DisplayConfig struct {
	Width       int
	Height      int
	Scale       int // Integer scaling factor for output
	RefreshRate int // Target refresh rate in Hz
	PixelFormat PixelFormat
	VSync       bool
	Fullscreen  bool
}

// VideoOutput defines the minimal interface that backends must implement
type VideoOutput interface {
	// Lifecycle management
	Start() error
	Stop() error
	Close() error
	IsStarted() bool

	SetDisplayConfig(config DisplayConfig) error
	GetDisplayConfig() DisplayConfig
	UpdateFrame(buffer []byte) error // Takes RGBA pixels only

	// Timing and synchronization
	WaitForVSync() error
	GetFrameCount() uint64
	GetRefreshRate() int
}

// SnapshotCapable outputs can hand back the last frame they were given.
type SnapshotCapable interface {
	GetSnapshot() (FrameSnapshot, error)
}

type PixelFormat int

const (
	PixelFormatRGBA PixelFormat = iota
	PixelFormatRGB565
	PixelFormatPaletted
)

// pixelFormatForDepth maps a scanline element depth to the frame format
// the driver produces at that depth.
func pixelFormatForDepth(d scanline.ElementDepth) PixelFormat {
	switch d {
	case scanline.Depth8:
		return PixelFormatPaletted
	case scanline.Depth16:
		return PixelFormatRGB565
	default:
		return PixelFormatRGBA
	}
}

func (f PixelFormat) String() string {
	switch f {
	case PixelFormatRGBA:
		return "RGBA8888"
	case PixelFormatRGB565:
		return "RGB565"
	case PixelFormatPaletted:
		return "paletted"
	}
	return fmt.Sprintf("format(%d)", int(f))
}

const (
	MIN_SCALE = 1
	MAX_SCALE = 4
)

func clampScale(scale int) int {
	return min(max(scale, MIN_SCALE), MAX_SCALE)
}

// Predefined video backend types
const (
	VIDEO_BACKEND_EBITEN   = iota // Ebiten window, or the headless counter in headless builds
	VIDEO_BACKEND_HEADLESS        // Frame counter only
	VIDEO_BACKEND_TERMINAL        // ANSI preview on stdout
)

var videoBackendNames = map[string]int{
	"ebiten":   VIDEO_BACKEND_EBITEN,
	"window":   VIDEO_BACKEND_EBITEN,
	"headless": VIDEO_BACKEND_HEADLESS,
	"terminal": VIDEO_BACKEND_TERMINAL,
}

func parseVideoBackend(name string) (int, error) {
	backend, ok := videoBackendNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, &VideoError{
			Operation: "backend selection",
			Details:   fmt.Sprintf("unknown output %q (want ebiten, headless or terminal)", name),
		}
	}
	return backend, nil
}

// NewVideoOutput creates a new video output instance using the specified backend
func NewVideoOutput(backend int) (VideoOutput, error) {
	switch backend {
	case VIDEO_BACKEND_EBITEN:
		return NewEbitenOutput()
	case VIDEO_BACKEND_HEADLESS:
		return NewHeadlessVideoOutput(), nil
	case VIDEO_BACKEND_TERMINAL:
		return NewTerminalVideoOutput(os.Stdout, int(os.Stdout.Fd())), nil
	}
	return nil, &VideoError{
		Operation: "backend creation",
		Details:   fmt.Sprintf("unknown backend type: %d", backend),
	}
}
