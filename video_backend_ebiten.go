//go:build !headless

// video_backend_ebiten.go - Ebiten window output for Intuition Scanline

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
	"image/color"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
)

func init() {
	compiledFeatures = append(compiledFeatures, "video:ebiten")
}

const (
	EBITEN_WINDOW_TITLE  = "Intuition Scanline (c) 2024 - 2026 Zayn Otley"
	EBITEN_OVERLAY_ROW   = 13
	EBITEN_OVERLAY_INSET = 6
)

// EbitenOutput presents driver frames in a desktop window. UpdateFrame fills
// a back buffer on the driver goroutine; Draw uploads it on the ebiten
// goroutine only when a frame arrived since the last upload, then signals the
// blank that WaitForVSync waits on.
type EbitenOutput struct {
	mu      sync.Mutex
	cfg     DisplayConfig
	back    []byte
	dirty   bool
	overlay bool
	canvas  *ebiten.Image // ebiten goroutine only
	onClose func()

	running   atomic.Bool
	presented atomic.Uint64
	vblank    chan struct{}
	closed    chan struct{}
	closeOnce sync.Once

	clipboardOnce sync.Once
	clipboardErr  error
}

type windowHotkey struct {
	key    ebiten.Key
	action func(*EbitenOutput)
}

var windowHotkeys = []windowHotkey{
	{ebiten.KeyF9, (*EbitenOutput).copySnapshotToClipboard},
	{ebiten.KeyF11, (*EbitenOutput).toggleFullscreen},
	{ebiten.KeyF12, (*EbitenOutput).toggleOverlay},
}

func NewEbitenOutput() (VideoOutput, error) {
	cfg := DisplayConfig{Width: 640, Height: 480, Scale: 1, RefreshRate: DRIVER_REFRESH_RATE, VSync: true}
	return &EbitenOutput{
		cfg:     cfg,
		back:    make([]byte, cfg.Width*cfg.Height*4),
		overlay: true,
		vblank:  make(chan struct{}, 1),
		closed:  make(chan struct{}),
	}, nil
}

// Start opens the window and returns after the first frame has been drawn.
// A window can be started once; it cannot be reopened after it closes.
func (eo *EbitenOutput) Start() error {
	if eo.running.Swap(true) {
		return nil
	}
	cfg := eo.GetDisplayConfig()
	ebiten.SetWindowTitle(EBITEN_WINDOW_TITLE)
	ebiten.SetWindowSize(cfg.Width*cfg.Scale, cfg.Height*cfg.Scale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetVsyncEnabled(cfg.VSync)
	ebiten.SetFullscreen(cfg.Fullscreen)

	go func() {
		defer eo.markClosed()
		if err := ebiten.RunGame(eo); err != nil {
			slog.Error("ebiten: run loop failed", "err", err)
		}
	}()

	select {
	case <-eo.vblank:
		return nil
	case <-eo.closed:
		return &VideoError{Operation: "window start", Details: "window closed before the first frame"}
	}
}

func (eo *EbitenOutput) Stop() error {
	eo.running.Store(false)
	return nil
}

func (eo *EbitenOutput) Close() error {
	return eo.Stop()
}

func (eo *EbitenOutput) IsStarted() bool {
	return eo.running.Load()
}

func (eo *EbitenOutput) markClosed() {
	eo.running.Store(false)
	eo.closeOnce.Do(func() { close(eo.closed) })
}

// Done is closed when the window goes away.
func (eo *EbitenOutput) Done() <-chan struct{} {
	return eo.closed
}

// SetCloseHandler registers fn to run when the user closes the window.
func (eo *EbitenOutput) SetCloseHandler(fn func()) {
	eo.mu.Lock()
	eo.onClose = fn
	eo.mu.Unlock()
}

func (eo *EbitenOutput) SetDisplayConfig(config DisplayConfig) error {
	if config.Width <= 0 || config.Height <= 0 {
		return &VideoError{Operation: "window config", Details: "width and height must be positive"}
	}
	config.Scale = clampScale(config.Scale)
	if config.RefreshRate <= 0 {
		config.RefreshRate = DRIVER_REFRESH_RATE
	}

	eo.mu.Lock()
	eo.cfg = config
	if size := config.Width * config.Height * 4; len(eo.back) != size {
		eo.back = make([]byte, size)
	}
	eo.dirty = true
	eo.mu.Unlock()

	if eo.running.Load() {
		ebiten.SetVsyncEnabled(config.VSync)
		eo.applyWindowMode(config)
	}
	return nil
}

func (eo *EbitenOutput) GetDisplayConfig() DisplayConfig {
	eo.mu.Lock()
	defer eo.mu.Unlock()
	return eo.cfg
}

func (eo *EbitenOutput) applyWindowMode(cfg DisplayConfig) {
	ebiten.SetFullscreen(cfg.Fullscreen)
	if !cfg.Fullscreen {
		ebiten.SetWindowSize(cfg.Width*cfg.Scale, cfg.Height*cfg.Scale)
	}
}

func (eo *EbitenOutput) UpdateFrame(data []byte) error {
	eo.mu.Lock()
	defer eo.mu.Unlock()
	if len(data) < len(eo.back) {
		return &VideoError{Operation: "window update", Details: "frame smaller than the display config"}
	}
	copy(eo.back, data)
	eo.dirty = true
	return nil
}

// WaitForVSync blocks until the next Draw has presented a frame. It fails
// once the window is gone so a pacing loop cannot hang on a closed window.
func (eo *EbitenOutput) WaitForVSync() error {
	select {
	case <-eo.vblank:
		return nil
	case <-eo.closed:
		return &VideoError{Operation: "vsync wait", Details: "window closed"}
	}
}

func (eo *EbitenOutput) GetFrameCount() uint64 {
	return eo.presented.Load()
}

func (eo *EbitenOutput) GetRefreshRate() int {
	return eo.GetDisplayConfig().RefreshRate
}

func (eo *EbitenOutput) GetSnapshot() (FrameSnapshot, error) {
	eo.mu.Lock()
	defer eo.mu.Unlock()
	snap := FrameSnapshot{
		Buffer:    append([]byte(nil), eo.back...),
		Width:     eo.cfg.Width,
		Height:    eo.cfg.Height,
		Format:    eo.cfg.PixelFormat,
		Timestamp: time.Now(),
	}
	return snap, nil
}

func (eo *EbitenOutput) Update() error {
	if ebiten.IsWindowBeingClosed() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		eo.mu.Lock()
		fn := eo.onClose
		eo.mu.Unlock()
		if fn != nil {
			fn()
		}
		return ebiten.Termination
	}
	if !eo.running.Load() {
		return ebiten.Termination
	}
	for _, hk := range windowHotkeys {
		if inpututil.IsKeyJustPressed(hk.key) {
			hk.action(eo)
		}
	}
	return nil
}

func (eo *EbitenOutput) toggleFullscreen() {
	eo.mu.Lock()
	eo.cfg.Fullscreen = !eo.cfg.Fullscreen
	cfg := eo.cfg
	eo.mu.Unlock()
	eo.applyWindowMode(cfg)
}

func (eo *EbitenOutput) toggleOverlay() {
	eo.mu.Lock()
	eo.overlay = !eo.overlay
	eo.mu.Unlock()
}

// copySnapshotToClipboard puts the current frame on the system clipboard
// as a PNG image.
func (eo *EbitenOutput) copySnapshotToClipboard() {
	eo.clipboardOnce.Do(func() {
		eo.clipboardErr = clipboard.Init()
	})
	if eo.clipboardErr != nil {
		slog.Warn("ebiten: clipboard unavailable, snapshot not copied", "err", eo.clipboardErr)
		return
	}
	snap, _ := eo.GetSnapshot()
	data, err := encodeSnapshotPNG(snap)
	if err != nil {
		slog.Warn("ebiten: snapshot encode failed", "err", err)
		return
	}
	clipboard.Write(clipboard.FmtImage, data)
	slog.Info("ebiten: snapshot copied to clipboard", "width", snap.Width, "height", snap.Height, "bytes", len(data))
}

func (eo *EbitenOutput) Draw(screen *ebiten.Image) {
	eo.mu.Lock()
	w, h := eo.cfg.Width, eo.cfg.Height
	if eo.canvas == nil || eo.canvas.Bounds().Dx() != w || eo.canvas.Bounds().Dy() != h {
		if eo.canvas != nil {
			eo.canvas.Deallocate()
		}
		eo.canvas = ebiten.NewImage(w, h)
		eo.dirty = true
	}
	if eo.dirty {
		eo.canvas.WritePixels(eo.back)
		eo.dirty = false
	}
	overlay := eo.overlay
	eo.mu.Unlock()

	screen.DrawImage(eo.canvas, nil)
	if overlay {
		drawStatusOverlay(screen, w, h, statusLines(runtimeStatus.snapshot()))
	}

	eo.presented.Add(1)
	select {
	case eo.vblank <- struct{}{}:
	default:
	}
}

func (eo *EbitenOutput) Layout(_, _ int) (int, int) {
	eo.mu.Lock()
	defer eo.mu.Unlock()
	return eo.cfg.Width, eo.cfg.Height
}

var (
	overlayShade  = color.RGBA{0, 0, 0, 180}
	overlayLabel  = color.RGBA{190, 190, 190, 255}
	overlayOff    = color.RGBA{120, 120, 120, 255}
	overlayOn     = color.RGBA{0, 220, 90, 255}
	overlayLegend = "F9 Snapshot  F11 Fullscreen  F12 Overlay"
)

// drawStatusOverlay shades the bottom of the frame and prints one status
// line per row. Frames too short for the overlay are left untouched.
func drawStatusOverlay(screen *ebiten.Image, width, height int, lines []statusLine) {
	face := basicfont.Face7x13
	barHeight := len(lines)*EBITEN_OVERLAY_ROW + EBITEN_OVERLAY_INSET
	if barHeight >= height {
		return
	}
	top := height - barHeight
	ebitenutil.DrawRect(screen, 0, float64(top), float64(width), float64(barHeight), overlayShade)

	baseline := top
	for _, line := range lines {
		baseline += EBITEN_OVERLAY_ROW
		x := EBITEN_OVERLAY_INSET
		text.Draw(screen, line.label, face, x, baseline, overlayLabel)
		x += text.BoundString(face, line.label).Dx() + 6
		for _, tok := range line.tokens {
			c := overlayOff
			if tok.enabled {
				c = overlayOn
			}
			text.Draw(screen, tok.name, face, x, baseline, c)
			x += text.BoundString(face, tok.name).Dx() + 8
		}
	}

	legendX := max(width-text.BoundString(face, overlayLegend).Dx()-EBITEN_OVERLAY_INSET, EBITEN_OVERLAY_INSET)
	text.Draw(screen, overlayLegend, face, legendX, baseline, overlayLabel)
}
