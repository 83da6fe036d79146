package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/particle-field/background"
	"github.com/lixenwraith/particle-field/config"
	"github.com/lixenwraith/particle-field/core"
	"github.com/lixenwraith/particle-field/engine"
	"github.com/lixenwraith/particle-field/event"
	"github.com/lixenwraith/particle-field/field"
	"github.com/lixenwraith/particle-field/input"
	"github.com/lixenwraith/particle-field/parameter"
	"github.com/lixenwraith/particle-field/render"
)

// statusInterval is the status line refresh period
const statusInterval = 250 * time.Millisecond

type runOptions struct {
	fps    int
	watch  bool
	status bool

	// newScreen is replaced in tests
	newScreen func() (tcell.Screen, error)
}

func bindRunFlags(cmd *cobra.Command, o *runOptions) {
	f := cmd.Flags()
	f.IntVar(&o.fps, "fps", parameter.FrameRate, "target frame rate")
	f.BoolVar(&o.watch, "watch", false, "reload the config file when it changes")
	f.BoolVar(&o.status, "status", false, "show the status line")
}

func newRunCmd(opts *options, runOpts *runOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the particle field in the terminal",
		Long: `Run the particle field in the terminal.

Keys: q, Esc or Ctrl-C quit; r reseeds the field; s toggles the status line.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runField(cmd, opts, runOpts)
		},
	}
	bindRunFlags(cmd, runOpts)
	return cmd
}

// runConfig merges run flags over the loaded configuration
func runConfig(cmd *cobra.Command, opts *options, runOpts *runOptions) (config.Config, error) {
	cfg, err := opts.load(cmd)
	if err != nil {
		return config.Config{}, err
	}
	if cmd.Flags().Changed("fps") {
		cfg.FrameRate = runOpts.fps
	}
	if runOpts.status {
		cfg.Terminal.Status = true
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	if runOpts.watch && opts.configPath == "" {
		return config.Config{}, fmt.Errorf("--watch requires --config")
	}
	return cfg, nil
}

func runField(cmd *cobra.Command, opts *options, runOpts *runOptions) error {
	cfg, err := runConfig(cmd, opts, runOpts)
	if err != nil {
		return err
	}

	logger, logFile, err := setupLogging(cfg.Log.Debug, cfg.Log.Dir, cfg.Log.File)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}
	defer logger.Sync()

	newScreen := runOpts.newScreen
	if newScreen == nil {
		newScreen = tcell.NewScreen
	}
	screen, err := newScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	var finiOnce sync.Once
	fini := func() { finiOnce.Do(screen.Fini) }
	core.SetRestoreHook(fini)
	defer core.SetRestoreHook(nil)
	defer fini()

	s, err := newSession(cfg, screen, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watchPath := ""
	if runOpts.watch {
		watchPath = opts.configPath
	}
	return s.run(ctx, watchPath)
}

// session is one interactive run over an initialized screen
type session struct {
	cfg    config.Config
	seed   uint64
	screen tcell.Screen
	target *render.Screen
	pump   *input.Pump
	bg     *background.Background
	logger *zap.Logger

	statusMu   sync.Mutex
	showStatus bool
	cancel     context.CancelFunc
}

// newSession wires the field, terminal target and input pump onto screen
func newSession(cfg config.Config, screen tcell.Screen, logger *zap.Logger) (*session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	tuning, err := cfg.Tuning()
	if err != nil {
		return nil, err
	}
	bgColor, err := render.ParseHex(cfg.Terminal.Background)
	if err != nil {
		return nil, err
	}

	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()
	screen.SetStyle(tcell.StyleDefault.Background(bgColor.Tcell()))
	screen.Clear()

	target := render.NewScreen(screen, render.ScreenOptions{
		UnitsPerDot: cfg.Terminal.UnitsPerDot,
		Gain:        cfg.Terminal.Gain,
		Background:  bgColor,
	})
	pump := input.NewPump(screen, target, logger)

	seed := resolveSeed(cfg.Seed)
	f := field.New(tuning, field.NewRand(seed))
	sched := engine.NewTickerScheduler(time.Second/time.Duration(cfg.FrameRate), engine.NewMonotonicTimeProvider())

	s := &session{
		cfg:    cfg,
		seed:   seed,
		screen: screen,
		target: target,
		pump:   pump,
		bg:     background.New(f, target, sched, pump.Pointer(), pump.Resize(), logger),
		logger: logger,
	}
	s.showStatus = cfg.Terminal.Status
	return s, nil
}

// run mounts the field and blocks until quit, terminal closure or ctx is done
// watchPath enables config hot reload when non-empty
func (s *session) run(ctx context.Context, watchPath string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.cancel = cancel

	width, height := s.target.SizeFromCells(s.screen.Size())
	if err := s.bg.Mount(width, height); err != nil {
		return err
	}
	defer s.bg.Unmount()

	// Resize leaves stale cells on some terminals
	unsubResize := s.pump.Resize().Subscribe(func(event.Resize) { s.target.Sync() })
	defer unsubResize()
	unsubKeys := s.pump.Keys().Subscribe(s.handleKey)
	defer unsubKeys()

	s.logger.Info("particle field started",
		zap.Uint64("seed", s.seed),
		zap.Int("fps", s.cfg.FrameRate),
		zap.Float64("width", width),
		zap.Float64("height", height))

	g, gctx := errgroup.WithContext(ctx)

	g.Go(guard(func() error {
		// Terminal closed or context done both end the session
		defer cancel()
		return s.pump.Run(gctx)
	}))

	g.Go(guard(func() error {
		s.refreshStatus(gctx)
		return nil
	}))

	if watchPath != "" {
		g.Go(guard(func() error {
			return config.Watch(gctx, watchPath, s.logger, s.applyReload)
		}))
	}

	err := g.Wait()
	s.logger.Info("particle field stopped", zap.Uint64("frames", s.bg.Stats().Frames))
	return err
}

// handleKey applies a key intent, runs on the input goroutine
func (s *session) handleKey(k event.Key) {
	switch input.IntentFor(k) {
	case input.IntentQuit:
		if s.cancel != nil {
			s.cancel()
		}
	case input.IntentReset:
		s.bg.Reset()
	case input.IntentToggleStatus:
		s.statusMu.Lock()
		s.showStatus = !s.showStatus
		s.statusMu.Unlock()
		s.updateStatus()
	}
}

// applyReload applies a reloaded field section live
// Frame rate and terminal settings are fixed for the session, changes are reported
func (s *session) applyReload(c config.Config) {
	t, err := c.Tuning()
	if err != nil {
		s.logger.Warn("reloaded tuning rejected", zap.Error(err))
		return
	}
	s.bg.Reconfigure(t)
	s.cfg.Field = c.Field

	termChanged := terminalChanged(s.cfg.Terminal, c.Terminal)
	if c.FrameRate != s.cfg.FrameRate || termChanged {
		s.logger.Info("config change needs restart",
			zap.Int("frame_rate", c.FrameRate),
			zap.Int("running_frame_rate", s.cfg.FrameRate),
			zap.Bool("terminal_changed", termChanged))
	}
}

// terminalChanged ignores Status, which the s key toggles live
func terminalChanged(a, b config.TerminalConfig) bool {
	a.Status, b.Status = false, false
	return a != b
}

// refreshStatus updates the status line until ctx is done
func (s *session) refreshStatus(ctx context.Context) {
	ticker := time.NewTicker(statusInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.updateStatus()
		}
	}
}

// updateStatus writes the current stats, or clears the line when hidden
func (s *session) updateStatus() {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	if !s.showStatus {
		s.target.SetStatus("")
		return
	}
	s.target.SetStatus(statusLine(s.bg.Stats()))
}

func statusLine(s background.Stats) string {
	return fmt.Sprintf(" %d particles | %d frames | %d skipped | %.0fx%.0f | pointer %.0f,%.0f ",
		s.Particles, s.Frames, s.Skipped, s.Width, s.Height, s.Pointer.X, s.Pointer.Y)
}

// guard routes a panic through the crash handler so the terminal is restored
func guard(fn func() error) func() error {
	return func() error {
		defer func() {
			if r := recover(); r != nil {
				core.HandleCrash(r)
			}
		}()
		return fn()
	}
}
