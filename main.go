// main.go - Intuition Scanline entry point

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
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/intuitionamiga/IntuitionScanline/scanline"
)

// Version is overridden at link time.
var Version = "dev"

func boilerPlate() {
	fmt.Println("\n\033[38;2;255;20;147m ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████\033[0m\n\033[38;2;255;50;147m▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀\033[0m\n\033[38;2;255;80;147m▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███\033[0m\n\033[38;2;255;110;147m░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄\033[0m\n\033[38;2;255;140;147m░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒\033[0m\n\033[38;2;255;170;147m░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░\033[0m\n\033[38;2;255;200;147m ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░\033[0m\n\033[38;2;255;230;147m ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░\033[0m\n\033[38;2;255;255;147m ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░\033[0m")
	fmt.Println("\nPer-scanline video stage pipeline for the Intuition Engine.")
	fmt.Println("(c) 2024 - 2026 Zayn Otley")
	fmt.Println("https://github.com/IntuitionAmiga/IntuitionEngine")
	fmt.Println("License: GPLv3 or later")
}

// cliOptions are the flags that do not live in the config file.
type cliOptions struct {
	configPath   string
	showFeatures bool
	verbose      bool
}

// parseCommandLine builds the run configuration: defaults, then the
// -config file if given, then every flag set explicitly on the command line.
func parseCommandLine(args []string) (*Config, cliOptions, error) {
	var (
		opts       cliOptions
		effect     string
		depthBits  int
		width      int
		height     int
		pitch      int
		stride     int
		frames     int
		output     string
		strategy   string
		scale      int
		refreshHz  int
		fullscreen bool
		vsync      bool
	)

	flagSet := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&opts.configPath, "config", "", "YAML configuration file")
	flagSet.BoolVar(&opts.showFeatures, "features", false, "Print host CPU features and exit")
	flagSet.BoolVar(&opts.verbose, "v", false, "Debug logging")
	flagSet.StringVar(&effect, "effect", "swap-even", "Comma separated stage kinds: copy, swap-even, swap-odd")
	flagSet.IntVar(&depthBits, "depth", 16, "Source depth in bits (8, 16, 32)")
	flagSet.IntVar(&width, "width", 320, "Source width in pixels")
	flagSet.IntVar(&height, "height", 240, "Source height in pixels")
	flagSet.IntVar(&pitch, "pitch", 0, "Bytes between source pixels (0 = packed)")
	flagSet.IntVar(&stride, "stride", 0, "Signed source stride of the first stage in bytes (0 = pitch)")
	flagSet.IntVar(&frames, "frames", 0, "Stop after this many frames (0 = run until closed)")
	flagSet.StringVar(&output, "output", "ebiten", "Output device: ebiten, headless, terminal")
	flagSet.StringVar(&strategy, "strategy", "auto", "Line strategy: auto, reference, accelerated")
	flagSet.IntVar(&scale, "scale", 2, "Window scale factor (1-4)")
	flagSet.IntVar(&refreshHz, "refresh", DRIVER_REFRESH_RATE, "Frames per second")
	flagSet.BoolVar(&fullscreen, "fullscreen", false, "Start fullscreen")
	flagSet.BoolVar(&vsync, "vsync", true, "Pace frames on the output's vertical blank (false uses a free-running timer)")

	flagSet.Usage = func() {
		flagSet.SetOutput(os.Stdout)
		fmt.Println("Usage: ./intuition_scanline [-config run.yaml] [-effect swap-even] [-depth 16] [-output ebiten|headless|terminal]")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		return nil, opts, err
	}

	cfg := DefaultConfig()
	if opts.configPath != "" {
		loaded, err := LoadConfig(opts.configPath)
		if err != nil {
			return nil, opts, err
		}
		cfg = loaded
	}

	var flagErr error
	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "effect":
			cfg.Stages, flagErr = parseEffect(effect)
		case "depth":
			cfg.Source.Depth = depthBits
		case "width":
			cfg.Source.Width = width
		case "height":
			cfg.Source.Height = height
		case "pitch":
			cfg.Source.Pitch = pitch
		case "frames":
			cfg.Frames = frames
		case "output":
			cfg.Display.Output = output
		case "strategy":
			cfg.Strategy = strategy
		case "scale":
			cfg.Display.Scale = scale
		case "refresh":
			cfg.Display.RefreshHz = refreshHz
		case "fullscreen":
			cfg.Display.Fullscreen = fullscreen
		case "vsync":
			cfg.Display.VSync = vsync
		}
	})
	if flagErr != nil {
		return nil, opts, flagErr
	}
	// Applied after -effect so the stride lands on the final first stage.
	if stride != 0 {
		if len(cfg.Stages) == 0 {
			cfg.Stages = []StageSection{{Kind: scanline.KindCopy.String()}}
		}
		cfg.Stages[0].Stride = stride
	}
	if opts.verbose {
		cfg.LogLevel = "debug"
	}

	if err := Validate(cfg); err != nil {
		return nil, opts, err
	}
	return cfg, opts, nil
}

// parseEffect turns "copy,swap-odd" into stage sections.
func parseEffect(effect string) ([]StageSection, error) {
	var stages []StageSection
	for _, name := range strings.Split(effect, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		kind, err := scanline.ParseKind(name)
		if err != nil {
			return nil, fmt.Errorf("-effect: %w", err)
		}
		stages = append(stages, StageSection{Kind: kind.String()})
	}
	if len(stages) == 0 {
		return nil, fmt.Errorf("-effect: no stages in %q", effect)
	}
	return stages, nil
}

func parseLogLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("log_level %q: %w", name, err)
	}
	return level, nil
}

// windowCloser is implemented by outputs whose user can close them.
type windowCloser interface {
	SetCloseHandler(fn func())
	Done() <-chan struct{}
}

func main() {
	boilerPlate()

	cfg, opts, err := parseCommandLine(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if opts.showFeatures {
		printFeatures()
		return
	}

	level, _ := parseLogLevel(cfg.LogLevel)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	scanline.SetLogger(logger)

	host := scanline.HostFeatures()
	features, err := cfg.stageFeatures(host)
	if err != nil {
		slog.Error("strategy selection failed", "err", err)
		os.Exit(1)
	}

	depth, _ := scanline.DepthFromBits(cfg.Source.Depth)
	source, err := NewPatternSource(cfg.Source.Width, cfg.Source.Height, depth, cfg.Source.Pitch)
	if err != nil {
		slog.Error("source setup failed", "err", err)
		os.Exit(1)
	}

	pipeline, err := cfg.buildPipeline(features)
	if err != nil {
		slog.Warn("pipeline setup failed, falling back to a plain copy", "err", err)
		features = 0
		pipeline, err = cfg.fallbackPipeline()
		if err != nil {
			slog.Error("fallback pipeline setup failed", "err", err)
			os.Exit(1)
		}
	}

	backend, _ := parseVideoBackend(cfg.Display.Output)
	output, err := NewVideoOutput(backend)
	if err != nil {
		slog.Error("output setup failed", "err", err)
		os.Exit(1)
	}

	driver, err := NewScanlineDriver(output, source, pipeline)
	if err != nil {
		slog.Error("driver setup failed", "err", err)
		os.Exit(1)
	}
	driver.SetRefreshRate(cfg.Display.RefreshHz)
	driver.SetVSync(cfg.Display.VSync)
	driver.SetFrameLimit(uint64(cfg.Frames))

	display := driver.DisplayConfig()
	display.Scale = cfg.Display.Scale
	display.Fullscreen = cfg.Display.Fullscreen
	if err := output.SetDisplayConfig(display); err != nil {
		slog.Error("display configuration failed", "err", err)
		os.Exit(1)
	}
	runtimeStatus.setPipeline(pipeline, features, cfg.Display.Output)

	var windowDone <-chan struct{}
	if wc, ok := output.(windowCloser); ok {
		wc.SetCloseHandler(driver.Stop)
		windowDone = wc.Done()
	}

	slog.Info("starting",
		"effect", runtimeStatus.snapshot().effect(),
		"depth", depth.String(),
		"size", fmt.Sprintf("%dx%d", cfg.Source.Width, cfg.Source.Height),
		"format", display.PixelFormat.String(),
		"strategy", pipeline.Stages()[0].Strategy().String(),
		"features", host.String(),
		"output", cfg.Display.Output)

	if err := output.Start(); err != nil {
		slog.Error("output start failed", "err", err)
		os.Exit(1)
	}
	if err := driver.Start(); err != nil {
		slog.Error("driver start failed", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
	case <-driver.Done():
	case <-windowDone:
	}
	driver.Stop()
	<-driver.Done()
	if err := output.Close(); err != nil {
		slog.Warn("output close failed", "err", err)
	}

	s := runtimeStatus.snapshot()
	slog.Info("stopped", "frames", s.frames, "presented", output.GetFrameCount(), "effect", s.effect())
}
