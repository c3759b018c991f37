// scanline_driver.go - Frame driver feeding source rows through the stage pipeline

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
scanline_driver.go - Scanline Driver

The driver owns the per-frame loop around a scanline.Pipeline:

1. The video source renders frame N into its own buffer
2. Every source row, top to bottom, goes through Pipeline.ProcessLine
3. The transformed frame is expanded to RGBA
4. The RGBA frame is handed to the VideoOutput

Signal Flow:
                    ┌─────────────┐     ┌──────────┐     ┌─────────┐     ┌─────────┐
  frame N ────────→ │ VideoSource │ ──→ │ Pipeline │ ──→ │ Convert │ ──→ │ Display │
                    └─────────────┘     └──────────┘     └─────────┘     └─────────┘
                          row y            row y          RGBA frame

Rows are always processed in increasing order and frames strictly one after
another from the refresh goroutine; stages carry state from line to line and
frame to frame and are never touched by any other goroutine.
*/

package main

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/intuitionamiga/IntuitionScanline/scanline"
)

// Driver constants
const (
	DRIVER_REFRESH_RATE     = 60
	DRIVER_REFRESH_INTERVAL = time.Second / DRIVER_REFRESH_RATE
)

// ScanlineDriver runs a source through a pipeline once per refresh
type ScanlineDriver struct {
	mutex      sync.Mutex
	output     VideoOutput
	source     VideoSource
	pipeline   *scanline.Pipeline
	stages     []*scanline.Stage
	format     PixelFormat
	width      int
	height     int
	lineFrame  []byte // pipeline output, one DestBytes row per source row
	finalFrame []byte // RGBA
	states     []scanline.StageState
	interval   time.Duration
	vsync      bool
	frameLimit uint64
	frames     atomic.Uint64
	done       chan struct{}
	finished   chan struct{}
	stopOnce   sync.Once
}

// NewScanlineDriver checks that the pipeline fits the source rows and sizes
// the frame buffers.
func NewScanlineDriver(output VideoOutput, source VideoSource, pipeline *scanline.Pipeline) (*ScanlineDriver, error) {
	_, height := source.GetDimensions()
	if pipeline.SourceBytes() > source.RowBytes() {
		return nil, &VideoError{
			Operation: "driver setup",
			Details:   fmt.Sprintf("pipeline reads %d bytes per row, source rows are %d", pipeline.SourceBytes(), source.RowBytes()),
			Err:       scanline.ErrChainMismatch,
		}
	}

	stages := pipeline.Stages()
	outDepth := stages[len(stages)-1].Depth()
	if pipeline.DestBytes()%outDepth.Bytes() != 0 {
		return nil, &VideoError{
			Operation: "driver setup",
			Details:   fmt.Sprintf("pipeline writes %d bytes, not a whole number of %s pixels", pipeline.DestBytes(), outDepth),
			Err:       scanline.ErrChainMismatch,
		}
	}
	width := pipeline.DestBytes() / outDepth.Bytes()

	return &ScanlineDriver{
		output:     output,
		source:     source,
		pipeline:   pipeline,
		stages:     stages,
		format:     pixelFormatForDepth(outDepth),
		width:      width,
		height:     height,
		lineFrame:  make([]byte, pipeline.DestBytes()*height),
		finalFrame: make([]byte, width*height*4),
		states:     make([]scanline.StageState, len(stages)),
		interval:   DRIVER_REFRESH_INTERVAL,
		vsync:      true,
		done:       make(chan struct{}),
		finished:   make(chan struct{}),
	}, nil
}

// SetRefreshRate changes the tick rate. Call before Start.
func (d *ScanlineDriver) SetRefreshRate(hz int) {
	if hz <= 0 {
		hz = DRIVER_REFRESH_RATE
	}
	d.interval = time.Second / time.Duration(hz)
}

// SetVSync chooses between pacing on the output's WaitForVSync (the
// default) and a free-running ticker at the driver refresh rate. Call before
// Start.
func (d *ScanlineDriver) SetVSync(on bool) {
	d.vsync = on
}

// SetFrameLimit makes the refresh loop stop by itself after n frames; 0 runs
// until Stop.
func (d *ScanlineDriver) SetFrameLimit(n uint64) {
	d.frameLimit = n
}

// DisplayConfig describes the frames the driver hands to its output.
func (d *ScanlineDriver) DisplayConfig() DisplayConfig {
	return DisplayConfig{
		Width:       d.width,
		Height:      d.height,
		Scale:       1,
		RefreshRate: int(time.Second / d.interval),
		PixelFormat: d.format,
		VSync:       d.vsync,
	}
}

// Start begins the driver refresh loop. With vsync on, each frame is
// rendered right after the output reports a blank.
func (d *ScanlineDriver) Start() error {
	if d.vsync && d.output != nil {
		slog.Debug("driver: pacing on output vsync", "refresh_hz", d.output.GetRefreshRate())
		go d.vsyncLoop()
		return nil
	}
	go d.refreshLoop()
	return nil
}

// Stop halts the refresh loop. Safe to call more than once.
func (d *ScanlineDriver) Stop() {
	d.stopOnce.Do(func() {
		close(d.done)
	})
}

// Done is closed once the refresh loop has exited.
func (d *ScanlineDriver) Done() <-chan struct{} {
	return d.finished
}

func (d *ScanlineDriver) FrameCount() uint64 {
	return d.frames.Load()
}

func (d *ScanlineDriver) refreshLoop() {
	defer close(d.finished)
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-d.done:
			return
		case <-ticker.C:
			if !d.tick() {
				return
			}
		}
	}
}

func (d *ScanlineDriver) vsyncLoop() {
	defer close(d.finished)
	for {
		select {
		case <-d.done:
			return
		default:
		}
		if err := d.output.WaitForVSync(); err != nil {
			slog.Warn("driver: vsync wait failed, stopping", "err", err)
			return
		}
		select {
		case <-d.done:
			return
		default:
		}
		if !d.tick() {
			return
		}
	}
}

// tick renders one frame and reports whether the loop should continue.
func (d *ScanlineDriver) tick() bool {
	if err := d.RenderFrame(); err != nil {
		slog.Warn("driver: frame dropped", "frame", d.frames.Load(), "err", err)
	}
	if d.frameLimit > 0 && d.frames.Load() >= d.frameLimit {
		slog.Info("driver: frame limit reached", "frames", d.frameLimit)
		return false
	}
	return true
}

// RenderFrame produces one frame and sends it to the output. The refresh
// loop calls it on every tick; tests call it directly.
func (d *ScanlineDriver) RenderFrame() error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	n := d.frames.Load()
	d.source.RenderFrame(n)
	src := d.source.GetFrame()
	rowBytes := d.source.RowBytes()
	inBytes := d.pipeline.SourceBytes()
	outBytes := d.pipeline.DestBytes()

	for y := 0; y < d.height; y++ {
		in := src[y*rowBytes : y*rowBytes+inBytes]
		d.pipeline.ProcessLine(d.lineFrame[y*outBytes:(y+1)*outBytes], in)
	}

	if err := convertToRGBA(d.finalFrame, d.lineFrame, d.format, d.source.Palette()); err != nil {
		return err
	}
	d.frames.Add(1)

	for i, st := range d.stages {
		d.states[i] = st.State()
	}
	runtimeStatus.setFrame(n+1, d.states)

	if d.output != nil && d.output.IsStarted() {
		if err := d.output.UpdateFrame(d.finalFrame); err != nil {
			return &VideoError{Operation: "frame update", Details: fmt.Sprintf("frame %d", n), Err: err}
		}
	}
	return nil
}

// Frame returns the last RGBA frame. The slice is reused by the next
// RenderFrame.
func (d *ScanlineDriver) Frame() []byte {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	return d.finalFrame
}
