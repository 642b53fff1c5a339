package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/ayusman/handmouse/internal/app"
	"github.com/ayusman/handmouse/internal/capture"
	"github.com/ayusman/handmouse/internal/config"
	"github.com/ayusman/handmouse/internal/detector"
	"github.com/ayusman/handmouse/internal/gesture"
	"github.com/ayusman/handmouse/internal/mouse"
	"github.com/ayusman/handmouse/internal/overlay"
	"github.com/ayusman/handmouse/internal/server"
	"github.com/ayusman/handmouse/internal/store"
	"github.com/ayusman/handmouse/internal/tray"
	"github.com/kataras/golog"
)

var logger = golog.Child("[main]")

const loopShutdownTimeout = 5 * time.Second

func init() {
	// highgui and the tray both need the main OS thread.
	runtime.LockOSThread()
}

type options struct {
	configPath string
	camera     int
	addr       string
	headless   bool
	tray       bool
	journal    bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", config.DefaultPath(), "path to the JSON config file")
	flag.IntVar(&opts.camera, "camera", 0, "camera device index")
	flag.StringVar(&opts.addr, "addr", "", "status server address, overrides the config file")
	flag.BoolVar(&opts.headless, "headless", false, "run without the debug window")
	flag.BoolVar(&opts.tray, "tray", false, "run from the system tray (implies -headless)")
	flag.BoolVar(&opts.journal, "journal", true, "record sessions and clicks to the database")
	flag.Parse()

	if err := run(opts); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	golog.SetLevel(cfg.LogLevel)

	logger.Infof("handmouse - hand gesture mouse control")

	screen, err := mouse.PrimaryScreen()
	if err != nil {
		return fmt.Errorf("query screen: %w", err)
	}
	logger.Infof("screen %dx%d", screen.Width, screen.Height)

	ctrl := mouse.NewController(mouse.NewRobotgoDriver(), screen)
	ctrl.Margin = cfg.Margin
	ctrl.Sensitivity = cfg.Sensitivity
	ctrl.VerticalBoost = cfg.VerticalBoost

	det, err := detector.NewMediaPipeDetector(detector.Config{
		MaxHands:      cfg.MaxHands,
		MinConfidence: cfg.MinConfidence,
	})
	if err != nil {
		return fmt.Errorf("hand detector: %w", err)
	}
	defer det.Close()

	var st *store.Store
	if cfg.Journal || cfg.Addr != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
			return fmt.Errorf("create data directory: %w", err)
		}
		st, err = store.New(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer st.Close()
	}

	var display overlay.Display = overlay.Headless{}
	if !cfg.Headless && !opts.tray {
		display = overlay.NewWindow(overlay.WindowTitle)
	}

	a := app.New(app.Config{
		CameraID: cfg.CameraID,
		Preprocess: capture.PreprocessOptions{
			Rotation: cfg.Rotation,
			CropX:    cfg.CropX,
			Width:    cfg.FrameWidth,
			Height:   cfg.FrameHeight,
		},
		Thresholds:   cfg.Thresholds,
		Journal:      cfg.Journal,
		JournalMoves: cfg.JournalMoves,
	}, app.Deps{
		Camera:   capture.NewCamera(capture.CameraConfig{DeviceID: cfg.CameraID}),
		Detector: det,
		Mouse:    ctrl,
		Display:  display,
		Store:    st,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var t *tray.Tray
	if opts.tray {
		t = tray.New(a.IsEnabled())
	}

	if cfg.Addr != "" {
		srv := server.New(server.Config{
			StaticDir: findWebDir(),
			Store:     st,
			Runtime:   trayAware{App: a, tray: t},
		})
		go func() {
			if err := srv.ListenAndServe(ctx, cfg.Addr); err != nil {
				logger.Errorf("status server: %v", err)
			}
		}()
	}

	if t == nil {
		return a.Run(ctx)
	}
	return runTray(ctx, stop, a, t, cfg.Addr)
}

// runTray gives the main goroutine to the tray and runs the loop beside it.
func runTray(ctx context.Context, stop context.CancelFunc, a *app.App, t *tray.Tray, addr string) error {
	t.OnToggle(a.SetEnabled)
	t.OnQuit(stop)
	a.OnAction(func(action gesture.Action) {
		t.SetLastGesture(action.String())
	})
	if addr != "" {
		t.OnSettings(func() { openBrowser("http://" + addr + "/") })
	}

	done := make(chan error, 1)
	t.OnReady(func() {
		err := a.Run(ctx)
		done <- err
		t.Quit()
	})

	go func() {
		<-ctx.Done()
		t.Quit()
	}()

	t.Run()
	stop()

	select {
	case err := <-done:
		return err
	case <-time.After(loopShutdownTimeout):
		return errors.New("frame loop did not stop")
	}
}

// trayAware keeps the tray toggle in sync with changes made over HTTP.
type trayAware struct {
	*app.App
	tray *tray.Tray
}

func (r trayAware) SetEnabled(enabled bool) {
	r.App.SetEnabled(enabled)
	if r.tray != nil {
		r.tray.SetEnabled(enabled)
	}
}

func loadConfig(opts options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	// Flags given on the command line win over file and environment.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "camera":
			cfg.CameraID = opts.camera
		case "addr":
			cfg.Addr = opts.addr
		case "headless":
			cfg.Headless = opts.headless
		case "journal":
			cfg.Journal = opts.journal
		}
	})
	if opts.tray {
		cfg.Headless = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// findWebDir searches for an optional status page directory.
// It checks: "web", "../web" and ~/.handmouse/web.
func findWebDir() string {
	candidates := []string{"web", "../web", filepath.Join(config.Dir(), "web")}
	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}
	return ""
}

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		logger.Warnf("open %s: %v", url, err)
	}
}
