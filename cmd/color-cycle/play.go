package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/color-cycle/ambient"
	"github.com/lixenwraith/color-cycle/config"
	"github.com/lixenwraith/color-cycle/core"
	"github.com/lixenwraith/color-cycle/engine"
	"github.com/lixenwraith/color-cycle/input"
	"github.com/lixenwraith/color-cycle/loader"
	"github.com/lixenwraith/color-cycle/render"
	"github.com/lixenwraith/color-cycle/tcellview"
	"github.com/lixenwraith/color-cycle/terminal"
)

// actionQueue bounds input buffered between ticks
const actionQueue = 64

// backendScreen is a display that is also the input source
type backendScreen interface {
	engine.Display
	input.EventSource
	Size() (int, int)
	Fini()
}

// nativeScreen pairs the raw terminal with the ANSI compositor
type nativeScreen struct {
	terminal.Terminal
	*render.TerminalDisplay

	cols, rows int
}

func newNativeScreen(term terminal.Terminal) *nativeScreen {
	return &nativeScreen{Terminal: term, TerminalDisplay: render.NewTerminalDisplay(term)}
}

// Draw clears the terminal when the frame size changes, then draws changed cells
// Resizing leaves stale glyphs outside the new image area
func (s *nativeScreen) Draw(f *render.Frame) error {
	if f.Cols != s.cols || f.Rows != s.rows {
		if err := s.Clear(); err != nil {
			return err
		}
		s.Invalidate()
		s.cols, s.rows = f.Cols, f.Rows
	}
	return s.TerminalDisplay.Draw(f)
}

func runPlay(cmd *cobra.Command, args []string) error {
	logFile := setupLogging(debugLog)
	if logFile != nil {
		defer logFile.Close()
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	if writeConfig {
		return saveConfig(cmd, cfg)
	}
	if helpHotkeys {
		fmt.Fprintln(cmd.OutOrStdout(), renderHotkeys(input.Hotkeys(cfg.FastForwardSpeed)))
		return nil
	}
	if len(args) == 0 {
		return errors.New("no input files given (see --help)")
	}

	entries, errs := loader.LoadAll(args)
	for _, err := range errs {
		fmt.Fprintln(cmd.ErrOrStderr(), warnStyle.Render(err.Error()))
	}
	if len(entries) == 0 {
		return fmt.Errorf("none of %d path(s) could be loaded", len(args))
	}

	if !terminal.TrueColor() {
		log.Printf("terminal does not advertise 24-bit color; output may be approximated")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stats, err := play(ctx, cfg, entries)
	if err != nil {
		return err
	}

	if showStats {
		fmt.Fprintln(cmd.OutOrStdout(), renderStats(stats))
	}
	return nil
}

// loadConfig reads the config file and applies explicitly set flags over it
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if configFile != "" {
		cfg, err = config.Load(configFile)
		// --write-config may create the file
		if writeConfig && errors.Is(err, os.ErrNotExist) {
			cfg, err = config.Default(), nil
		}
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// saveConfig writes cfg to --config, or the default location when none is given
func saveConfig(cmd *cobra.Command, cfg *config.Config) error {
	path := configFile
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	log.Printf("config: wrote %s", path)
	fmt.Fprintln(cmd.OutOrStdout(), "Wrote "+path)
	return nil
}

// applyFlags overrides config values only for flags given on the command line
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("fps") {
		cfg.FPS = fps
	}
	if f.Changed("blend") {
		cfg.Blend = blend
	}
	if f.Changed("osd") {
		cfg.OSD = osd
	}
	if f.Changed("column-reverse") {
		cfg.ColumnReverse = columnReverse
	}
	if f.Changed("backend") {
		cfg.Backend = backend
	}
	if f.Changed("sound") {
		cfg.Sound = soundFile
	}
}

// openScreen acquires the configured backend; the caller must Fini it
func openScreen(name string) (backendScreen, error) {
	log.Printf("display backend: %s", name)
	if name == config.BackendTcell {
		d, err := tcellview.New()
		if err != nil {
			return nil, fmt.Errorf("terminal: %w", err)
		}
		return d, nil
	}

	term := terminal.New()
	if err := term.Init(); err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}
	return newNativeScreen(term), nil
}

// play runs the event loop until quit, returning the frame statistics
func play(ctx context.Context, cfg *config.Config, entries []loader.Entry) (*engine.Stats, error) {
	fg, bg, err := cfg.Colors()
	if err != nil {
		return nil, err
	}
	keys, err := cfg.KeyTable()
	if err != nil {
		return nil, err
	}

	images := make([]engine.Entry, len(entries))
	for i, e := range entries {
		images[i] = engine.Entry{Name: e.Name, Image: e.Image}
	}

	screen, err := openScreen(cfg.Backend)
	if err != nil {
		return nil, err
	}
	defer screen.Fini()

	if cfg.Sound != "" {
		player := ambient.NewPlayer()
		if err := player.Start(cfg.Sound); err != nil {
			log.Printf("ambient: %v (continuing without sound)", err)
		} else {
			defer player.Close()
		}
	}

	cols, rows := screen.Size()
	clock := engine.NewVirtualClock(engine.TimeOfDay(time.Now()))
	session := engine.NewSession(images, engine.Settings{
		FPS:              cfg.FPS,
		Blend:            cfg.Blend,
		OSD:              cfg.OSD,
		ColumnReverse:    cfg.ColumnReverse,
		OSDDuration:      cfg.OSDDuration,
		FastForwardSpeed: cfg.FastForwardSpeed,
		OSDFg:            fg,
		OSDBg:            bg,
	}, clock, cols, rows)
	log.Printf("terminal %dx%d, %d image(s)", cols, rows, len(images))

	actions := make(chan input.Action, actionQueue)
	router := input.NewRouter(keys)
	core.Go(func() { router.Pump(ctx, screen, actions) })

	loop := engine.NewLoop(session, screen, actions, engine.NewMonotonicTimeProvider())
	if err := loop.Run(ctx); err != nil {
		return nil, err
	}

	sum := loop.Stats().Summary()
	log.Printf("frames %d, achieved %.1f fps, mean %v, p95 %v, max %v, %.1f cells/frame",
		sum.Frames, sum.AchievedFPS, sum.Mean, sum.P95, sum.Max, sum.CellsPerFrame)
	return loop.Stats(), nil
}
