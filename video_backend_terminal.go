// video_backend_terminal.go - ANSI truecolor preview output

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
	"io"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/term"
)

const (
	TERMINAL_DEFAULT_COLS   = 80
	TERMINAL_DEFAULT_ROWS   = 24
	TERMINAL_PREVIEW_FPS    = 15
	terminalUpperHalfBlock  = "▀"
	terminalCursorHome      = "\x1b[H"
	terminalClearScreen     = "\x1b[2J"
	terminalHideCursor      = "\x1b[?25l"
	terminalShowCursor      = "\x1b[?25h"
	terminalResetAttributes = "\x1b[0m"
)

// TerminalVideoOutput draws a downsampled frame with one half-block
// character per two pixel rows. The preview is sized to the terminal when
// fd is a terminal and to 80x24 otherwise.
type TerminalVideoOutput struct {
	mu          sync.Mutex
	w           io.Writer
	fd          int
	started     atomic.Bool
	config      DisplayConfig
	frameCount  uint64
	minInterval time.Duration
	lastDraw    time.Time
	out         bytes.Buffer
	vblank      vblankClock
}

func NewTerminalVideoOutput(w io.Writer, fd int) *TerminalVideoOutput {
	return &TerminalVideoOutput{
		w:           w,
		fd:          fd,
		config:      DisplayConfig{Width: 640, Height: 480, Scale: 1, RefreshRate: 60},
		minInterval: time.Second / TERMINAL_PREVIEW_FPS,
	}
}

func (t *TerminalVideoOutput) Start() error {
	if t.started.Swap(true) {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	_, err := io.WriteString(t.w, terminalClearScreen+terminalHideCursor)
	return err
}

func (t *TerminalVideoOutput) Stop() error {
	if !t.started.Swap(false) {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	_, err := io.WriteString(t.w, terminalResetAttributes+terminalShowCursor+"\n")
	return err
}

func (t *TerminalVideoOutput) Close() error {
	return t.Stop()
}

func (t *TerminalVideoOutput) IsStarted() bool {
	return t.started.Load()
}

func (t *TerminalVideoOutput) SetDisplayConfig(config DisplayConfig) error {
	t.mu.Lock()
	config.Scale = clampScale(config.Scale)
	t.config = config
	t.mu.Unlock()
	return nil
}

func (t *TerminalVideoOutput) GetDisplayConfig() DisplayConfig {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.config
}

// terminalSize returns the preview area in character cells, leaving the
// last terminal row free for the shell prompt.
func (t *TerminalVideoOutput) terminalSize() (cols, rows int) {
	if term.IsTerminal(t.fd) {
		if c, r, err := term.GetSize(t.fd); err == nil && c > 0 && r > 1 {
			return c, r - 1
		}
	}
	return TERMINAL_DEFAULT_COLS, TERMINAL_DEFAULT_ROWS
}

func (t *TerminalVideoOutput) UpdateFrame(buffer []byte) error {
	atomic.AddUint64(&t.frameCount, 1)
	if !t.started.Load() {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	now := time.Now()
	if t.minInterval > 0 && now.Sub(t.lastDraw) < t.minInterval {
		return nil
	}
	t.lastDraw = now

	width, height := t.config.Width, t.config.Height
	if width <= 0 || height <= 0 || len(buffer) < width*height*4 {
		return &VideoError{Operation: "terminal update", Details: "frame does not match display config"}
	}
	cols, rows := t.terminalSize()
	cols = min(cols, width)
	rows = min(rows, (height+1)/2)

	t.out.Reset()
	t.out.WriteString(terminalCursorHome)
	for cy := 0; cy < rows; cy++ {
		top := (2 * cy) * height / (2 * rows)
		bottom := min((2*cy+1)*height/(2*rows), height-1)
		for cx := 0; cx < cols; cx++ {
			x := cx * width / cols
			hi := (top*width + x) * 4
			lo := (bottom*width + x) * 4
			writeANSIColor(&t.out, "38", buffer[hi:hi+3])
			writeANSIColor(&t.out, "48", buffer[lo:lo+3])
			t.out.WriteString(terminalUpperHalfBlock)
		}
		t.out.WriteString(terminalResetAttributes + "\r\n")
	}
	_, err := t.w.Write(t.out.Bytes())
	return err
}

// writeANSIColor emits a 24-bit SGR colour; layer is 38 for foreground and
// 48 for background.
func writeANSIColor(b *bytes.Buffer, layer string, rgb []byte) {
	b.WriteString("\x1b[")
	b.WriteString(layer)
	b.WriteString(";2;")
	b.WriteString(strconv.Itoa(int(rgb[0])))
	b.WriteByte(';')
	b.WriteString(strconv.Itoa(int(rgb[1])))
	b.WriteByte(';')
	b.WriteString(strconv.Itoa(int(rgb[2])))
	b.WriteByte('m')
}

// WaitForVSync paces callers at the configured refresh rate. The preview
// itself is redrawn at most TERMINAL_PREVIEW_FPS times a second.
func (t *TerminalVideoOutput) WaitForVSync() error {
	t.vblank.wait(t.GetRefreshRate())
	return nil
}

func (t *TerminalVideoOutput) GetFrameCount() uint64 {
	return atomic.LoadUint64(&t.frameCount)
}

func (t *TerminalVideoOutput) GetRefreshRate() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.config.RefreshRate <= 0 {
		return DRIVER_REFRESH_RATE
	}
	return t.config.RefreshRate
}
