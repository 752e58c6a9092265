// Command fundamentals runs the WebGL2-style demos, headless or in a
// window.
//
// Headless runs render a fixed number of frames and write the last one to
// a PNG file:
//
//	fundamentals -demo cube -frames 90 -output cube.png
//
// Settings come from defaults, then the optional -config file (TOML or
// YAML), then flags given on the command line.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gogpu/fundamentals"
	"github.com/gogpu/fundamentals/config"
	"github.com/gogpu/fundamentals/demo"
	_ "github.com/gogpu/fundamentals/demos/all"
	"github.com/gogpu/fundamentals/gfx"
	"github.com/gogpu/fundamentals/integration/window"
	"github.com/gogpu/fundamentals/internal/shaderwatch"
	"github.com/gogpu/fundamentals/loop"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatal(err)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("fundamentals", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath = fs.String("config", "", "settings file (.toml, .yaml)")
		list       = fs.Bool("list", false, "list the demos and exit")
		demoName   = fs.String("demo", "", "demo to run")
		backend    = fs.String("backend", "", "GPU backend for headless runs (vulkan, noop)")
		width      = fs.Int("width", 0, "frame width")
		height     = fs.Int("height", 0, "frame height")
		fps        = fs.Int("fps", 0, "frame rate cap, 0 for unthrottled")
		frames     = fs.Int("frames", 0, "frames to render headless, 0 until interrupted")
		output     = fs.String("output", "", "PNG file for the last headless frame")
		win        = fs.Bool("window", false, "show the demo in a window")
		texture    = fs.String("texture", "", "image for textured demos")
		shaderDir  = fs.String("shaders", "", "directory of <demo>.wgsl overrides")
		watch      = fs.Bool("watch", false, "reload the demo when a shader in -shaders changes")
		seed       = fs.Uint64("seed", 0, "random seed, 0 picks one")
		verbose    = fs.Bool("v", false, "log debug messages")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *list {
		return listDemos(stdout)
	}

	cfg := config.Default()
	if *configPath != "" {
		if err := cfg.Load(*configPath); err != nil {
			return err
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "demo":
			cfg.Demo = *demoName
		case "backend":
			cfg.Backend = *backend
		case "width":
			cfg.Width = *width
		case "height":
			cfg.Height = *height
		case "fps":
			cfg.FPS = *fps
		case "frames":
			cfg.Frames = *frames
		case "output":
			cfg.Output = *output
		case "window":
			cfg.Window = *win
		case "texture":
			cfg.Texture = *texture
		case "shaders":
			cfg.ShaderDir = *shaderDir
		case "watch":
			cfg.Watch = *watch
		case "seed":
			cfg.Seed = *seed
		case "v":
			cfg.Verbose = *verbose
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}
	if !demo.IsRegistered(cfg.Demo) {
		return fmt.Errorf("%w: %q (try -list)", demo.ErrUnknownDemo, cfg.Demo)
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	fundamentals.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
	defer fundamentals.SetLogger(nil)

	opts := demo.Options{Seed: cfg.Seed, TexturePath: cfg.Texture}
	var watcher *shaderwatch.Watcher
	if cfg.ShaderDir != "" {
		opts.Shaders = demo.DirShaders(cfg.ShaderDir)
	}
	if cfg.Watch {
		w, err := shaderwatch.New(cfg.ShaderDir)
		if err != nil {
			return err
		}
		defer w.Close()
		watcher = w
	}

	if cfg.Window {
		return runWindow(cfg, opts, watcher)
	}
	return runHeadless(ctx, cfg, opts, watcher, stderr)
}

func listDemos(w io.Writer) error {
	title := cases.Title(language.English)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, name := range demo.Names() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", name, title.String(name), demo.Description(name))
	}
	return tw.Flush()
}

func runWindow(cfg config.Config, opts demo.Options, watcher *shaderwatch.Watcher) error {
	wopts := window.Options{
		Title:  "Fundamentals: " + cases.Title(language.English).String(cfg.Demo),
		Width:  cfg.Width,
		Height: cfg.Height,
	}
	if watcher != nil {
		wopts.Changed = watcher.Changed()
	}
	return window.Run(wopts, func(dev *gfx.Device, w, h int) (*demo.Runner, error) {
		return demo.NewRunner(dev, cfg.Demo, w, h, opts)
	})
}

func runHeadless(ctx context.Context, cfg config.Config, opts demo.Options, watcher *shaderwatch.Watcher, stderr io.Writer) error {
	dev, err := gfx.Open(gfx.OpenOptions{Backend: cfg.Backend})
	if err != nil {
		return err
	}
	defer dev.Close()

	r, err := demo.NewRunner(dev, cfg.Demo, cfg.Width, cfg.Height, opts)
	if err != nil {
		return err
	}
	defer r.Close()

	total := int64(cfg.Frames)
	if total == 0 {
		total = -1
	}
	bar := progressbar.NewOptions64(total,
		progressbar.OptionSetDescription(cfg.Demo),
		progressbar.OptionSetWriter(stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	defer bar.Close()

	var (
		img  *image.RGBA
		last loop.Tick
	)
	ticker := loop.Ticker{FPS: cfg.FPS, Frames: cfg.Frames}
	err = ticker.Run(ctx, func(t loop.Tick) error {
		if watcher != nil && watcher.Pending() {
			// A failed reload is logged and the previous instance keeps running.
			_ = r.Reload()
		}
		last = t
		if cfg.Frames > 0 && t.Frame == uint64(cfg.Frames-1) && cfg.Output != "" {
			var err error
			img, err = r.Frame(t, cfg.Width, cfg.Height)
			if err != nil {
				return err
			}
		} else if err := r.Step(t, cfg.Width, cfg.Height); err != nil {
			return err
		}
		return bar.Add(1)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	_ = bar.Finish()

	st := r.Stats()
	fundamentals.Logger().Info("run finished",
		"demo", cfg.Demo, "frames", st.Frames, "draw_calls", st.DrawCalls, "vertices", st.Vertices)

	if cfg.Output == "" {
		return nil
	}
	if img == nil {
		if img, err = r.Frame(last, cfg.Width, cfg.Height); err != nil {
			return err
		}
	}
	return writePNG(cfg.Output, img)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	fundamentals.Logger().Info("frame written", "path", path)
	return nil
}
