// Package app ties the editor together: it owns the document session,
// dispatches key events to the engine, and repaints after every event.
//
// The session runs on a single goroutine. Other goroutines (the file
// watcher, signal handling) talk to it only by posting interrupt events to
// the backend's queue.
package app

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/dshills/clack/internal/config"
	"github.com/dshills/clack/internal/engine"
	"github.com/dshills/clack/internal/renderer"
	"github.com/dshills/clack/internal/renderer/backend"
	"github.com/dshills/clack/internal/renderer/layout"
	"github.com/dshills/clack/internal/renderer/theme"
	"github.com/dshills/clack/internal/sound"
	"github.com/dshills/clack/internal/watcher"
)

// closeTimeout bounds how long Close waits for sounds to stop.
const closeTimeout = time.Second

// Options configures a new App.
type Options struct {
	// Backend is the terminal to draw on. Required.
	Backend backend.Backend

	// Preferences are the startup settings. Nil uses the defaults.
	Preferences *config.Preferences

	// Player plays sound effects. Nil builds one from the sound
	// preferences, ringing the terminal bell when no samples are set.
	Player sound.Player

	// Logger receives session logs. Nil discards them.
	Logger *Logger

	// File is opened at startup when set.
	File string

	// Watch enables notices when the file changes on disk.
	Watch bool
}

// App is one editing session.
type App struct {
	prefs   *config.Preferences
	backend backend.Backend
	logger  *Logger

	engine   *engine.Engine
	layout   *layout.Engine
	renderer *renderer.Renderer
	audio    *sound.Engine
	watcher  *watcher.Watcher

	themeType     theme.Type
	typewriter    bool
	focus         bool
	doubleSpacing bool
	help          bool

	path      string
	status    string
	statusErr bool

	// sleep pauses input for the page feed.
	sleep func(time.Duration)

	running atomic.Bool
	closed  bool
}

// New creates a session. Failing to open Options.File is not fatal: the
// session starts with an empty document and shows the error.
func New(opts Options) (*App, error) {
	if opts.Backend == nil {
		return nil, ErrNoBackend
	}

	prefs := opts.Preferences
	if prefs == nil {
		prefs = config.Default()
	} else {
		p := *prefs
		prefs = &p
	}
	log := opts.Logger
	if log == nil {
		log = NewNullLogger()
	}
	for _, err := range prefs.Validate() {
		log.WithComponent("config").Warn("%v", err)
	}

	themeType, _ := theme.Parse(prefs.Theme)
	a := &App{
		prefs:         prefs,
		backend:       opts.Backend,
		logger:        log,
		engine:        engine.New(engine.WithTypewriter(prefs.Typewriter)),
		layout:        layout.New(prefs.Layout, prefs.Typewriter),
		renderer:      renderer.New(opts.Backend, theme.New(themeType), prefs.Layout),
		themeType:     themeType,
		typewriter:    prefs.TypewriterMode,
		focus:         prefs.FocusMode,
		doubleSpacing: prefs.DoubleSpacing,
		sleep:         time.Sleep,
	}

	player := opts.Player
	if player == nil {
		player = a.defaultPlayer()
	}
	soundLog := log.WithComponent("sound")
	a.audio = sound.New(player,
		sound.WithVoices(prefs.Sound.Voices),
		sound.WithQueueSize(prefs.Sound.Queue),
		sound.WithEnabled(prefs.SoundEnabled),
		sound.WithErrorHandler(func(err error) {
			soundLog.Debug("%v", err)
		}),
	)

	if opts.Watch {
		a.startWatcher()
	}

	if opts.File != "" {
		// Open reports failures through the status line.
		_ = a.Open(opts.File)
	}

	log.Info("session started (theme=%s typewriter=%t sound=%t)",
		themeType, a.typewriter, prefs.SoundEnabled)
	return a, nil
}

// defaultPlayer plays samples from the configured directory and rings the
// terminal bell for anything without a sample.
func (a *App) defaultPlayer() sound.Player {
	bell := sound.BellPlayer{Beeper: a.backend}
	if a.prefs.Sound.Dir == "" {
		return bell
	}
	p, err := sound.NewCommandPlayer(a.prefs.Sound.Player, a.prefs.Sound.Dir, bell)
	if err != nil {
		a.logger.WithComponent("sound").Warn("using terminal bell: %v", err)
		return bell
	}
	return p
}

func (a *App) startWatcher() {
	log := a.logger.WithComponent("watcher")
	w, err := watcher.New(func(ev watcher.Event) {
		a.backend.PostEvent(backend.Event{Type: backend.EventInterrupt, Data: ev})
	}, watcher.WithErrorHandler(func(err error) {
		log.Warn("%v", err)
	}))
	if err != nil {
		log.Warn("%v", &ComponentError{Component: "watcher", Err: err})
		return
	}
	a.watcher = w
}

// quitRequest asks the event loop to stop.
type quitRequest struct{}

// RequestQuit stops the event loop. It is safe to call from any goroutine.
func (a *App) RequestQuit() {
	a.backend.PostEvent(backend.Event{Type: backend.EventInterrupt, Data: quitRequest{}})
}

// Run initializes the backend and processes events until the user quits.
func (a *App) Run() error {
	if !a.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer a.running.Store(false)

	if err := a.backend.Init(); err != nil {
		return &ComponentError{Component: "backend", Err: err}
	}
	defer a.backend.Shutdown()

	a.audio.Trigger(sound.Startup)
	a.Draw()

	for {
		ev := a.backend.PollEvent()
		if ev.Type == backend.EventNone {
			// The backend has been shut down.
			return nil
		}
		if err := a.HandleEvent(ev); err != nil {
			if errors.Is(err, ErrQuit) {
				a.logger.Info("quit")
				return nil
			}
			return err
		}
		a.Draw()
	}
}

// Close stops the sound voices and the watcher.
func (a *App) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true

	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	var errs []error
	if err := a.audio.Close(ctx); err != nil {
		errs = append(errs, &ComponentError{Component: "sound", Err: err})
	}
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			errs = append(errs, &ComponentError{Component: "watcher", Err: err})
		}
	}

	s := a.audio.Stats()
	a.logger.Info("session closed (sounds played=%d dropped=%d failed=%d)", s.Played, s.Dropped, s.Failed)
	return errors.Join(errs...)
}

// Draw lays out the document and paints the screen.
func (a *App) Draw() {
	a.renderer.Draw(a.screen())
}

func (a *App) screen() renderer.Screen {
	w, h := a.renderer.BodySize()
	frame := a.layout.Compute(a.engine, layout.View{
		Width:         w,
		Height:        h,
		Typewriter:    a.typewriter,
		Focus:         a.focus,
		DoubleSpacing: a.doubleSpacing,
	})
	return renderer.Screen{
		Frame:       frame,
		FileName:    a.path,
		Modified:    a.engine.Modified(),
		Typewriter:  a.typewriter,
		Focus:       a.focus,
		Sound:       a.audio.Enabled(),
		Words:       a.engine.WordCount(),
		Chars:       a.engine.CharCount(),
		Page:        a.engine.CurrentPage(),
		Status:      a.status,
		StatusError: a.statusErr,
		Help:        a.help,
	}
}

// ============================================================================
// Accessors
// ============================================================================

// Engine returns the document engine.
func (a *App) Engine() *engine.Engine { return a.engine }

// Path returns the bound file path, or "" for an unsaved document.
func (a *App) Path() string { return a.path }

// Status returns the footer message and whether it is an error.
func (a *App) Status() (string, bool) { return a.status, a.statusErr }

// Typewriter reports whether typewriter scrolling is on.
func (a *App) Typewriter() bool { return a.typewriter }

// Focus reports whether focus mode is on.
func (a *App) Focus() bool { return a.focus }

// DoubleSpacing reports whether double spacing is on.
func (a *App) DoubleSpacing() bool { return a.doubleSpacing }

// SoundEnabled reports whether sound effects are on.
func (a *App) SoundEnabled() bool { return a.audio.Enabled() }

// HelpVisible reports whether the help overlay is shown.
func (a *App) HelpVisible() bool { return a.help }

// Theme returns the active palette.
func (a *App) Theme() theme.Type { return a.themeType }

// ============================================================================
// Status line
// ============================================================================

func (a *App) setStatus(msg string) {
	a.status = msg
	a.statusErr = false
}

func (a *App) setError(msg string) {
	a.status = "Error: " + msg
	a.statusErr = true
}

func (a *App) setOperationError(err error) {
	var opErr *OperationError
	if errors.As(err, &opErr) {
		a.setError(opErr.StatusText())
		return
	}
	a.setError(err.Error())
}

func (a *App) clearStatus() {
	a.status = ""
	a.statusErr = false
}
