// orrery - Software-rendered solar system
// Animates a scene of orbiting bodies in the terminal, in a desktop window,
// or headless to a PNG file.
//
// Controls:
//
//	Arrows, W/S - Orbit the camera
//	A/D         - Pan left/right
//	Q/E         - Pan up/down
//	+/-         - Zoom in/out
//	X           - Toggle wireframe
//	O           - Toggle orbit paths
//	P           - Pause
//	R           - Reset camera
//	Esc         - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/taigrr/orrery/pkg/render"
	"github.com/taigrr/orrery/pkg/scene"
)

var (
	scenePath   = flag.String("scene", "", "Scene file (.toml or .yaml); empty uses the built-in solar system")
	watchScene  = flag.Bool("watch", false, "Reload the scene file when it changes")
	targetFPS   = flag.Int("fps", 0, "Target FPS (0 uses the scene setting)")
	useWindow   = flag.Bool("window", false, "Open a desktop window instead of drawing in the terminal")
	snapshotOut = flag.String("snapshot", "", "Render headless and write a PNG to this path")
	frames      = flag.Int("frames", 1, "Frames to render for -snapshot")
	outWidth    = flag.Int("width", 0, "Output width in pixels for -window/-snapshot (0 uses the scene setting)")
	outHeight   = flag.Int("height", 0, "Output height in pixels for -window/-snapshot (0 uses the scene setting)")
	upscale     = flag.Int("scale", 1, "Integer upscale factor for -snapshot")
	label       = flag.String("label", "", "Text stamped on the -snapshot image")
	bgColor     = flag.String("bg", "", "Background color override (#rrggbb)")
	wireframe   = flag.Bool("wireframe", false, "Start with the wireframe overlay on")
	orbits      = flag.Bool("orbits", false, "Start with orbit paths drawn")
	printScene  = flag.Bool("print-scene", false, "Print the scene as TOML and exit")
	logPath     = flag.String("log", "", "Write logs to this file")
	verbose     = flag.Bool("v", false, "Enable debug logging")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "orrery - Software-rendered solar system\n\n")
		fmt.Fprintf(os.Stderr, "Usage: orrery [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Arrows, W/S - Orbit the camera\n")
		fmt.Fprintf(os.Stderr, "  A/D, Q/E    - Pan\n")
		fmt.Fprintf(os.Stderr, "  +/-         - Zoom\n")
		fmt.Fprintf(os.Stderr, "  X           - Toggle wireframe\n")
		fmt.Fprintf(os.Stderr, "  O           - Toggle orbit paths\n")
		fmt.Fprintf(os.Stderr, "  P           - Pause\n")
		fmt.Fprintf(os.Stderr, "  R           - Reset camera\n")
		fmt.Fprintf(os.Stderr, "  Esc         - Quit\n")
	}
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	closeLog, err := setupLogging()
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if *printScene {
		data, err := cfg.Marshal()
		if err != nil {
			return fmt.Errorf("encode scene: %w", err)
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	sc, err := scene.New(cfg)
	if err != nil {
		return fmt.Errorf("build scene: %w", err)
	}
	sc.Wireframe = sc.Wireframe || *wireframe
	sc.Orbits = sc.Orbits || *orbits

	// Context for clean shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if *snapshotOut != "" {
		return runSnapshot(sc, cfg)
	}

	v := newViewer(sc, cfg)
	if *watchScene && *scenePath != "" {
		go func() {
			err := scene.Watch(ctx, *scenePath, func(c scene.Config) {
				v.queueReload(applyOverrides(c))
			})
			if err != nil {
				slog.Warn("scene watcher stopped", "err", err)
			}
		}()
	}

	if *useWindow {
		return runWindow(ctx, v, cfg)
	}
	return runTerminal(ctx, v)
}

// setupLogging installs a text logger. The terminal viewer owns the screen,
// so it only logs when -log names a file.
func setupLogging() (func(), error) {
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}

	var (
		w       io.Writer = os.Stderr
		closeFn           = func() {}
	)
	switch {
	case *logPath != "":
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case !*useWindow && *snapshotOut == "":
		w = io.Discard
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	scene.SetLogger(logger)
	return closeFn, nil
}

func loadConfig() (scene.Config, error) {
	cfg := scene.Default()
	if *scenePath != "" {
		var err error
		if cfg, err = scene.Load(*scenePath); err != nil {
			return scene.Config{}, err
		}
	}
	cfg = applyOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return scene.Config{}, err
	}
	return cfg, nil
}

// applyOverrides layers command-line settings over a scene file.
func applyOverrides(cfg scene.Config) scene.Config {
	if *targetFPS > 0 {
		cfg.Window.FPS = *targetFPS
	}
	if *outWidth > 0 {
		cfg.Window.Width = *outWidth
	}
	if *outHeight > 0 {
		cfg.Window.Height = *outHeight
	}
	if *bgColor != "" {
		cfg.Render.Background = *bgColor
	}
	return cfg
}

func runSnapshot(sc *scene.Scene, cfg scene.Config) error {
	fb := render.NewFramebuffer(cfg.Window.Width, cfg.Window.Height)
	n := max(*frames, 1)
	var st scene.FrameStats
	for t := 1; t <= n; t++ {
		st = sc.Frame(fb, uint32(t))
	}
	opts := render.SnapshotOptions{Scale: *upscale, Label: *label}
	if err := render.WriteSnapshot(*snapshotOut, fb, opts); err != nil {
		return err
	}
	slog.Info("snapshot written",
		"path", *snapshotOut,
		"frames", n,
		"drawn", st.Drawn,
		"culled", st.Culled,
		"triangles", st.Triangles,
		"pixels", st.PixelsWritten,
	)
	return nil
}
