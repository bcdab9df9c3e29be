package app

import (
	"context"
	"image"
	"sync"

	"github.com/kbaines/pounce/internal/accessibility"
	"github.com/kbaines/pounce/internal/config"
	"github.com/kbaines/pounce/internal/grid"
	"github.com/kbaines/pounce/internal/hint"
	"github.com/kbaines/pounce/internal/input/hotkey"
	"github.com/kbaines/pounce/internal/input/key"
	"github.com/kbaines/pounce/internal/ipc"
	"github.com/kbaines/pounce/internal/metrics"
	"github.com/kbaines/pounce/internal/mode"
	"github.com/kbaines/pounce/internal/overlay"
	"github.com/kbaines/pounce/internal/perr"
	"github.com/kbaines/pounce/internal/pointer"
	"github.com/kbaines/pounce/internal/script"
	"go.uber.org/zap"
)

// Options configures App construction.
type Options struct {
	// Config is the loaded configuration. Nil loads from ConfigPath.
	Config *config.Config

	// ConfigPath is the file the configuration came from. It is watched
	// for changes when non-empty.
	ConfigPath string

	// Bridges are the platform implementations.
	Bridges Bridges

	// Logger overrides the logger built from Config.Logging.
	Logger *zap.Logger

	// Version is the build version reported over IPC.
	Version string
}

// App is the assembled daemon.
type App struct {
	cfg     *config.Config
	cfgPath string
	version string

	logger   *zap.Logger
	bridges  Bridges
	met      *metrics.Metrics
	overlay  *overlay.Manager
	ctrl     *mode.Controller
	queue    *mode.Queue
	registry *hotkey.Registry
	server   *ipc.Server
	engine   *script.Engine
	watcher  *config.Watcher

	// mu guards cfg and hotkeyIDs against the watcher goroutine.
	mu        sync.Mutex
	hotkeyIDs []hotkey.ID

	stopOnce sync.Once
	stopped  chan struct{}
}

// New builds the daemon from configuration and platform bridges. Nothing
// is started; call Run.
func New(opts Options) (*App, error) {
	if err := opts.Bridges.validate(); err != nil {
		return nil, err
	}

	cfg := opts.Config
	if cfg == nil {
		loaded, err := config.Load(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	config.SetGlobal(cfg)

	logger := opts.Logger
	if logger == nil {
		built, err := NewLogger(cfg.Logging)
		if err != nil {
			return nil, err
		}
		logger = built
	}

	var met *metrics.Metrics
	var modeStats mode.Stats
	var overlayStats overlay.Stats
	if cfg.Metrics.Enabled {
		met = metrics.New(logger)
		modeStats = met
		overlayStats = met
	}

	alloc, err := hint.NewAllocator(cfg.Hints.Characters)
	if err != nil {
		return nil, err
	}
	part, err := grid.NewPartitioner(cfg.Grid.Characters, cfg.GridOptions())
	if err != nil {
		return nil, err
	}

	index := accessibility.NewIndex(opts.Bridges.Accessibility, cfg.DiscoveryOptions(), logger)
	ovm := overlay.NewManager(opts.Bridges.Renderer, logger, overlayStats)
	act := pointer.NewActuator(opts.Bridges.Pointer, logger, cfg.PointerOptions())

	ctrl := mode.NewController(
		opts.Bridges.Accessibility,
		index,
		alloc,
		grid.NewNavigator(part),
		ovm,
		act,
		logger,
		modeStats,
		cfg.ModeConfig(),
	)

	a := &App{
		cfg:      cfg,
		cfgPath:  opts.ConfigPath,
		version:  opts.Version,
		logger:   logger,
		bridges:  opts.Bridges,
		met:      met,
		overlay:  ovm,
		ctrl:     ctrl,
		queue:    mode.NewQueue(mode.DefaultQueueSize, logger),
		registry: hotkey.NewRegistry(opts.Bridges.Hotkeys, logger),
		stopped:  make(chan struct{}),
	}

	if cfg.Script.Enabled {
		engine, err := script.NewEngine(cfg.Script.Path, logger)
		if err != nil {
			return nil, err
		}
		a.engine = engine
	}

	socketPath := cfg.IPC.SocketPath
	if socketPath == "" {
		socketPath = ipc.DefaultSocketPath()
	}
	server, err := ipc.NewServer(socketPath, a.handleCommand, logger)
	if err != nil {
		a.closeEngine()
		return nil, err
	}
	a.server = server

	ctrl.OnChange(a.onModeChange)
	ctrl.OnSelect(a.onSelection)

	return a, nil
}

// Controller exposes the mode state machine, mainly for tests and the
// preview command.
func (a *App) Controller() *mode.Controller { return a.ctrl }

// Config returns the active configuration.
func (a *App) Config() *config.Config { return a.cfg }

// Run starts the daemon and blocks until the context is cancelled or a
// stop command arrives over IPC.
func (a *App) Run(ctx context.Context) error {
	defer a.shutdown()

	a.queue.Start(ctx)
	a.server.Start(ctx)

	if err := a.bindHotkeys(a.cfg); err != nil {
		return err
	}
	if err := a.bridges.Keys.Start(a.deliverKey); err != nil {
		return perr.Wrap(perr.CodeInternal, "start key source", err)
	}

	if a.met != nil {
		go func() {
			if err := a.met.Serve(ctx, a.cfg.Metrics.Listen); err != nil {
				a.logger.Warn("metrics server stopped", zap.Error(err))
			}
		}()
	}

	if a.cfgPath != "" {
		w, err := config.NewWatcher(a.cfgPath, a.logger, a.applyConfig)
		if err != nil {
			a.logger.Warn("config watcher unavailable", zap.Error(err))
		} else {
			a.watcher = w
		}
	}

	a.logger.Info("daemon running",
		zap.String("version", a.version),
		zap.Int("hotkeys", a.registry.Len()))

	select {
	case <-ctx.Done():
	case <-a.stopped:
	}
	return nil
}

// Stop requests shutdown. Safe to call from any goroutine, including the
// IPC handler.
func (a *App) Stop() {
	a.stopOnce.Do(func() { close(a.stopped) })
}

func (a *App) shutdown() {
	a.registry.UnregisterAll()
	a.bridges.Keys.Stop()
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			a.logger.Warn("close config watcher", zap.Error(err))
		}
	}
	a.server.Stop()
	a.queue.Stop()
	if err := a.overlay.Close(); err != nil {
		a.logger.Warn("close overlay", zap.Error(err))
	}
	a.closeEngine()
	a.logger.Info("daemon stopped")
	_ = a.logger.Sync()
}

func (a *App) closeEngine() {
	if a.engine != nil {
		a.engine.Close()
	}
}

// deliverKey forwards a captured key event onto the serialization queue.
func (a *App) deliverKey(ev key.Event) {
	posted := a.queue.Post(func(ctx context.Context) {
		if _, err := a.ctrl.HandleKey(ctx, ev); err != nil {
			a.logger.Warn("key handling failed", zap.Stringer("event", ev), zap.Error(err))
		}
	})
	if !posted {
		a.logger.Warn("key event dropped", zap.Stringer("event", ev))
	}
}

func (a *App) onModeChange(from, to mode.Mode) {
	a.logger.Debug("mode changed",
		zap.Stringer("from", from),
		zap.Stringer("to", to))
	if a.engine != nil {
		a.engine.OnModeChange(from.String(), to.String())
	}
}

func (a *App) onSelection(label string, target image.Point) {
	if a.engine != nil {
		a.engine.OnSelection(label, target.X, target.Y)
	}
}

// applyConfig reacts to a validated config reload. Hotkey bindings take
// effect immediately; structural settings (alphabets, grid geometry,
// backends) require a restart and are logged as such.
func (a *App) applyConfig(cfg *config.Config) {
	a.mu.Lock()
	defer a.mu.Unlock()

	config.SetGlobal(cfg)
	if err := a.bindHotkeysLocked(cfg); err != nil {
		a.logger.Warn("hotkey rebind failed, keeping previous bindings", zap.Error(err))
		if err := a.bindHotkeysLocked(a.cfg); err != nil {
			a.logger.Error("restoring previous hotkeys failed", zap.Error(err))
		}
		return
	}
	if cfg.Hints.Characters != a.cfg.Hints.Characters ||
		cfg.Grid != a.cfg.Grid {
		a.logger.Info("alphabet and grid changes take effect on restart")
	}
	a.cfg = cfg
	a.logger.Info("configuration reloaded")
}
