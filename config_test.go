// config_test.go - Configuration loading and validation tests

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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/intuitionamiga/IntuitionScanline/scanline"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
display:
  output: headless
  scale: 3
source:
  width: 64
  height: 48
  depth: 32
  pitch: 8
stages:
  - kind: copy
    stride: -8
  - kind: swap-odd
strategy: reference
frames: 10
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Display.Output != "headless" || cfg.Display.Scale != 3 || cfg.Display.RefreshHz != DRIVER_REFRESH_RATE {
		t.Fatalf("display = %+v", cfg.Display)
	}
	if cfg.Source.Width != 64 || cfg.Source.Depth != 32 || cfg.Source.Pitch != 8 {
		t.Fatalf("source = %+v", cfg.Source)
	}
	if len(cfg.Stages) != 2 || cfg.Stages[0].Stride != -8 || cfg.Stages[1].Kind != "swap-odd" {
		t.Fatalf("stages = %+v", cfg.Stages)
	}
	if cfg.LogLevel != "info" || cfg.Frames != 10 {
		t.Fatalf("log level %q frames %d", cfg.LogLevel, cfg.Frames)
	}

	p, err := cfg.buildPipeline(0)
	if err != nil {
		t.Fatalf("buildPipeline: %v", err)
	}
	stages := p.Stages()
	if stages[0].Kind() != scanline.KindCopy || stages[0].SourceStride() != -8 || stages[1].Kind() != scanline.KindSwapOdd {
		t.Fatalf("pipeline %v %v", stages[0], stages[1])
	}
	if p.SourceBytes() != 63*8+4 || p.DestBytes() != 64*4 {
		t.Fatalf("pipeline bytes src=%d dst=%d", p.SourceBytes(), p.DestBytes())
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad depth", "source: {width: 8, height: 8, depth: 24}", "source.depth"},
		{"bad output", "display: {output: opengl}", "display.output"},
		{"bad kind", "stages: [{kind: rotate}]", "stages[0]"},
		{"bad strategy", "strategy: turbo", "strategy"},
		{"bad scale", "display: {scale: 9}", "display.scale"},
		{"narrow pitch", "source: {width: 8, height: 8, depth: 32, pitch: 2}", "source.pitch"},
		{"bad yaml", "source: [", "failed to parse"},
		{"bad log level", "log_level: chatty", "log_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file err = %v", err)
	}
}

func TestValidate_EmptyStagesBecomeCopy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Stages = nil
	cfg.Strategy = ""
	if err := Validate(cfg); err != nil {
		t.Fatal(err)
	}
	if len(cfg.Stages) != 1 || cfg.Stages[0].Kind != "copy" || cfg.Strategy != "auto" {
		t.Fatalf("stages %+v strategy %q", cfg.Stages, cfg.Strategy)
	}
}

func TestConfig_StageFeatures(t *testing.T) {
	cfg := DefaultConfig()
	host := scanline.FeatureSSE2 | scanline.FeatureAVX2

	cfg.Strategy = "reference"
	if f, err := cfg.stageFeatures(host); err != nil || f != 0 {
		t.Fatalf("reference: %s, %v", f, err)
	}
	cfg.Strategy = "auto"
	if f, err := cfg.stageFeatures(host); err != nil || f != host {
		t.Fatalf("auto: %s, %v", f, err)
	}
	cfg.Strategy = "accelerated"
	if f, err := cfg.stageFeatures(host); err != nil || scanline.SelectStrategy(f) != scanline.StrategyAccelerated {
		t.Fatalf("accelerated: %s, %v", f, err)
	}
	if _, err := cfg.stageFeatures(0); !errors.Is(err, scanline.ErrStrategyUnavailable) {
		t.Fatalf("accelerated without features: err = %v", err)
	}
}

func TestConfig_BuildPipelineRejectsStridedSwap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Source.Pitch = 4
	if err := Validate(cfg); err != nil {
		t.Fatal(err)
	}
	// The default swap-even stage cannot read a padded source directly.
	_, err := cfg.buildPipeline(0)
	if !errors.Is(err, scanline.ErrInvalidStride) {
		t.Fatalf("err = %v, want ErrInvalidStride", err)
	}
	p, err := cfg.fallbackPipeline()
	if err != nil {
		t.Fatalf("fallbackPipeline: %v", err)
	}
	if p.Len() != 1 || p.Stages()[0].Kind() != scanline.KindCopy || p.Stages()[0].Strategy() != scanline.StrategyReference {
		t.Fatalf("fallback pipeline %v", p.Stages())
	}
	if p.SourceBytes() != (cfg.Source.Width-1)*4+2 {
		t.Fatalf("fallback reads %d bytes", p.SourceBytes())
	}
}
