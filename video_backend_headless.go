// video_backend_headless.go - Frame-counting output without a display

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
	"sync"
	"sync/atomic"
	"time"
)

// HeadlessVideoOutput accepts frames without presenting them. It keeps the
// most recent frame so runs without a display can still be inspected.
type HeadlessVideoOutput struct {
	mu          sync.Mutex
	started     atomic.Bool
	config      DisplayConfig
	lastFrame   []byte
	frameCount  uint64
	refreshRate int
	vblank      vblankClock
}

func NewHeadlessVideoOutput() *HeadlessVideoOutput {
	return &HeadlessVideoOutput{refreshRate: DRIVER_REFRESH_RATE}
}

// vblankClock stands in for the vertical blank of outputs without a real
// display. Blanks fall on a fixed grid; a caller that falls more than one
// period behind restarts the grid instead of bursting to catch up.
type vblankClock struct {
	mu   sync.Mutex
	next time.Time
}

func (c *vblankClock) wait(hz int) {
	if hz <= 0 {
		hz = DRIVER_REFRESH_RATE
	}
	period := time.Second / time.Duration(hz)
	c.mu.Lock()
	now := time.Now()
	if c.next.IsZero() || now.Sub(c.next) > period {
		c.next = now
	}
	c.next = c.next.Add(period)
	deadline := c.next
	c.mu.Unlock()
	time.Sleep(time.Until(deadline))
}

func (h *HeadlessVideoOutput) Start() error {
	h.started.Store(true)
	return nil
}

func (h *HeadlessVideoOutput) Stop() error {
	h.started.Store(false)
	return nil
}

func (h *HeadlessVideoOutput) Close() error {
	return h.Stop()
}

func (h *HeadlessVideoOutput) IsStarted() bool {
	return h.started.Load()
}

func (h *HeadlessVideoOutput) SetDisplayConfig(config DisplayConfig) error {
	h.mu.Lock()
	config.Scale = clampScale(config.Scale)
	h.config = config
	if config.RefreshRate > 0 {
		h.refreshRate = config.RefreshRate
	}
	h.mu.Unlock()
	return nil
}

func (h *HeadlessVideoOutput) GetDisplayConfig() DisplayConfig {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.config
}

func (h *HeadlessVideoOutput) UpdateFrame(buffer []byte) error {
	h.mu.Lock()
	if len(h.lastFrame) != len(buffer) {
		h.lastFrame = make([]byte, len(buffer))
	}
	copy(h.lastFrame, buffer)
	h.mu.Unlock()
	atomic.AddUint64(&h.frameCount, 1)
	return nil
}

func (h *HeadlessVideoOutput) WaitForVSync() error {
	h.vblank.wait(h.GetRefreshRate())
	return nil
}

func (h *HeadlessVideoOutput) GetFrameCount() uint64 {
	return atomic.LoadUint64(&h.frameCount)
}

func (h *HeadlessVideoOutput) GetRefreshRate() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.refreshRate == 0 {
		return DRIVER_REFRESH_RATE
	}
	return h.refreshRate
}

func (h *HeadlessVideoOutput) GetSnapshot() (FrameSnapshot, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.lastFrame == nil {
		return FrameSnapshot{}, &VideoError{Operation: "snapshot", Details: "no frame received yet"}
	}
	snap := FrameSnapshot{
		Buffer:    make([]byte, len(h.lastFrame)),
		Width:     h.config.Width,
		Height:    h.config.Height,
		Format:    h.config.PixelFormat,
		Timestamp: time.Now(),
	}
	copy(snap.Buffer, h.lastFrame)
	return snap, nil
}
