// config.go - YAML pipeline configuration

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
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/intuitionamiga/IntuitionScanline/scanline"
)

// Config represents a complete Intuition Scanline run
type Config struct {
	Display  DisplaySection `yaml:"display"`
	Source   SourceSection  `yaml:"source"`
	Stages   []StageSection `yaml:"stages"`
	Strategy string         `yaml:"strategy"` // auto, reference, accelerated
	Frames   int            `yaml:"frames"`   // 0 runs until closed
	LogLevel string         `yaml:"log_level"`
}

// DisplaySection contains output settings
type DisplaySection struct {
	Output     string `yaml:"output"` // ebiten, headless, terminal
	Scale      int    `yaml:"scale"`
	RefreshHz  int    `yaml:"refresh_hz"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"` // pace on the output's blank instead of a timer
}

// SourceSection describes the emulated frame producer
type SourceSection struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Depth  int `yaml:"depth"` // bits per pixel: 8, 16 or 32
	Pitch  int `yaml:"pitch"` // bytes between pixels in a source row, 0 for packed
}

// StageSection configures one pipeline stage
type StageSection struct {
	Kind   string `yaml:"kind"`   // copy, swap-even, swap-odd
	Stride int    `yaml:"stride"` // signed source stride in bytes, 0 for packed
}

// DefaultConfig is a 320x240 RGB565 swap-even run in a window.
func DefaultConfig() *Config {
	return &Config{
		Display: DisplaySection{
			Output:    "ebiten",
			Scale:     2,
			RefreshHz: DRIVER_REFRESH_RATE,
			VSync:     true,
		},
		Source: SourceSection{
			Width:  320,
			Height: 240,
			Depth:  16,
		},
		Stages:   []StageSection{{Kind: scanline.KindSwapEven.String()}},
		Strategy: "auto",
		LogLevel: "info",
	}
}

// LoadConfig reads a YAML file over the defaults and validates the result
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks cfg and fills in defaults for omitted values
func Validate(cfg *Config) error {
	if cfg.Source.Width <= 0 || cfg.Source.Height <= 0 {
		return fmt.Errorf("source dimensions must be > 0, got %dx%d", cfg.Source.Width, cfg.Source.Height)
	}
	depth, err := scanline.DepthFromBits(cfg.Source.Depth)
	if err != nil {
		return fmt.Errorf("source.depth: %w", err)
	}
	if cfg.Source.Pitch != 0 && cfg.Source.Pitch < depth.Bytes() {
		return fmt.Errorf("source.pitch %d is smaller than a %s pixel", cfg.Source.Pitch, depth)
	}

	if _, err := parseVideoBackend(cfg.Display.Output); err != nil {
		return fmt.Errorf("display.output: %w", err)
	}
	if cfg.Display.Scale <= 0 {
		cfg.Display.Scale = 1
	}
	if cfg.Display.Scale > MAX_SCALE {
		return fmt.Errorf("display.scale must be <= %d", MAX_SCALE)
	}
	if cfg.Display.RefreshHz <= 0 {
		cfg.Display.RefreshHz = DRIVER_REFRESH_RATE
	}
	if cfg.Frames < 0 {
		return fmt.Errorf("frames must be >= 0")
	}

	if len(cfg.Stages) == 0 {
		cfg.Stages = []StageSection{{Kind: scanline.KindCopy.String()}}
	}
	for i, st := range cfg.Stages {
		if _, err := scanline.ParseKind(st.Kind); err != nil {
			return fmt.Errorf("stages[%d]: %w", i, err)
		}
	}

	if cfg.Strategy == "" {
		cfg.Strategy = "auto"
	}
	if _, err := scanline.FeaturesFor(cfg.Strategy, 0); errors.Is(err, scanline.ErrInvalidStrategy) {
		return fmt.Errorf("strategy: %w", err)
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if _, err := parseLogLevel(cfg.LogLevel); err != nil {
		return err
	}
	return nil
}

// stageFeatures turns the strategy setting into the feature set passed to
// every stage.
func (c *Config) stageFeatures(host scanline.Features) (scanline.Features, error) {
	return scanline.FeaturesFor(c.Strategy, host)
}

// buildPipeline constructs the configured stages. The first stage reads the
// source rows; its stride defaults to the source pitch. Later stages read
// the previous stage's packed output.
func (c *Config) buildPipeline(features scanline.Features) (*scanline.Pipeline, error) {
	depth, err := scanline.DepthFromBits(c.Source.Depth)
	if err != nil {
		return nil, err
	}
	pitch := c.Source.Pitch
	if pitch == 0 {
		pitch = depth.Bytes()
	}

	stages := make([]*scanline.Stage, 0, len(c.Stages))
	for i, sec := range c.Stages {
		kind, err := scanline.ParseKind(sec.Kind)
		if err != nil {
			return nil, fmt.Errorf("stages[%d]: %w", i, err)
		}
		stride := sec.Stride
		if stride == 0 && i == 0 {
			stride = pitch
		}
		st, err := scanline.NewStage(kind, scanline.Config{
			Depth:        depth,
			Count:        c.Source.Width,
			SourceStride: stride,
			Features:     features,
		})
		if err != nil {
			return nil, fmt.Errorf("stages[%d]: %w", i, err)
		}
		stages = append(stages, st)
	}
	return scanline.NewPipeline(stages...)
}

// fallbackPipeline is a single copy stage that gathers the source at its
// pitch with the reference strategy. It is used when the configured
// pipeline cannot be built.
func (c *Config) fallbackPipeline() (*scanline.Pipeline, error) {
	depth, err := scanline.DepthFromBits(c.Source.Depth)
	if err != nil {
		return nil, err
	}
	st, err := scanline.NewCopy(scanline.Config{
		Depth:        depth,
		Count:        c.Source.Width,
		SourceStride: c.Source.Pitch,
	})
	if err != nil {
		return nil, err
	}
	return scanline.NewPipeline(st)
}
