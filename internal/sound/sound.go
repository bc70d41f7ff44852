// Package sound plays typewriter sound effects without ever blocking the
// editor.
//
// Trigger places a request on a bounded queue and returns immediately. A
// fixed pool of voices takes requests off the queue and plays them; while
// every voice is busy requests wait in the queue. When the queue is full
// the oldest waiting request is discarded to make room, so a burst of
// keystrokes favors the most recent sounds. Playback failures are reported
// to an optional error handler and never reach the caller of Trigger.
package sound

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
)

// Kind identifies a sound effect.
type Kind uint8

const (
	Key Kind = iota
	Space
	Backspace
	Return
	Bell
	Startup
	Toggle
	Feed
)

var kindNames = [...]string{
	Key:       "key",
	Space:     "space",
	Backspace: "backspace",
	Return:    "return",
	Bell:      "bell",
	Startup:   "startup",
	Toggle:    "toggle",
	Feed:      "feed",
}

// String returns the sample base name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Kinds returns every sound kind.
func Kinds() []Kind {
	return []Kind{Key, Space, Backspace, Return, Bell, Startup, Toggle, Feed}
}

// Player renders one sound. Play may block until the sound has finished
// and must return promptly once ctx is cancelled.
type Player interface {
	Play(ctx context.Context, k Kind) error
}

// ErrorHandler receives playback failures.
type ErrorHandler func(err error)

// Engine is the fire-and-forget audio trigger.
type Engine struct {
	player  Player
	voices  int
	size    int
	onError ErrorHandler

	mu      sync.RWMutex // guards queue against send after close
	queue   chan Kind
	running bool
	enabled atomic.Bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	enqueued atomic.Uint64
	played   atomic.Uint64
	failed   atomic.Uint64
	dropped  atomic.Uint64
}

// Option configures an Engine.
type Option func(*Engine)

// WithVoices sets how many sounds may play at once.
func WithVoices(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.voices = n
		}
	}
}

// WithQueueSize sets how many requests may wait for a voice.
func WithQueueSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.size = n
		}
	}
}

// WithErrorHandler sets the handler for playback failures.
func WithErrorHandler(h ErrorHandler) Option {
	return func(e *Engine) {
		e.onError = h
	}
}

// WithEnabled sets the initial enabled state. Engines start enabled.
func WithEnabled(on bool) Option {
	return func(e *Engine) {
		e.enabled.Store(on)
	}
}

// New creates an engine and starts its voices. A nil player plays nothing.
func New(p Player, opts ...Option) *Engine {
	if p == nil {
		p = NopPlayer{}
	}
	e := &Engine{
		player: p,
		voices: 4,
		size:   16,
	}
	e.enabled.Store(true)
	for _, opt := range opts {
		opt(e)
	}

	e.ctx, e.cancel = context.WithCancel(context.Background())
	e.queue = make(chan Kind, e.size)
	e.running = true
	for i := 0; i < e.voices; i++ {
		e.wg.Add(1)
		go e.voice()
	}
	return e
}

// SetEnabled turns playback on or off. Triggers while disabled are
// discarded before reaching the queue.
func (e *Engine) SetEnabled(on bool) {
	e.enabled.Store(on)
}

// Enabled reports whether triggers are accepted.
func (e *Engine) Enabled() bool {
	return e.enabled.Load()
}

// Trigger requests a sound. It never blocks and never fails.
func (e *Engine) Trigger(k Kind) {
	if !e.enabled.Load() {
		return
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	if !e.running {
		return
	}

	for {
		select {
		case e.queue <- k:
			e.enqueued.Add(1)
			return
		default:
		}
		// Full: discard the oldest waiting request and retry.
		select {
		case <-e.queue:
			e.dropped.Add(1)
		default:
		}
	}
}

// Close stops accepting requests, cancels sounds in progress and waits for
// the voices to exit or ctx to expire.
func (e *Engine) Close(ctx context.Context) error {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return ErrClosed
	}
	e.running = false
	close(e.queue)
	e.cancel()
	e.mu.Unlock()

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// voice plays requests until the queue is closed.
func (e *Engine) voice() {
	defer e.wg.Done()
	for k := range e.queue {
		if e.ctx.Err() != nil {
			// Closing: drain without playing.
			e.dropped.Add(1)
			continue
		}
		e.play(k)
	}
}

func (e *Engine) play(k Kind) {
	defer func() {
		if r := recover(); r != nil {
			e.failed.Add(1)
			e.report(&PanicError{Kind: k, Value: r})
		}
	}()

	if err := e.player.Play(e.ctx, k); err != nil {
		if e.ctx.Err() != nil {
			return
		}
		e.failed.Add(1)
		e.report(&PlayError{Kind: k, Err: err})
		return
	}
	e.played.Add(1)
}

func (e *Engine) report(err error) {
	if e.onError == nil {
		return
	}
	func() {
		defer func() { _ = recover() }()
		e.onError(err)
	}()
}

// Stats contains counters for an engine.
type Stats struct {
	// Enqueued is the number of requests accepted onto the queue.
	Enqueued uint64
	// Played is the number of sounds that finished without error.
	Played uint64
	// Failed is the number of sounds whose player returned an error.
	Failed uint64
	// Dropped is the number of requests discarded because the queue was
	// full or the engine was closing.
	Dropped uint64
	// QueueDepth is the number of requests waiting for a voice.
	QueueDepth int
}

// Stats returns the engine counters.
func (e *Engine) Stats() Stats {
	e.mu.RLock()
	depth := 0
	if e.running {
		depth = len(e.queue)
	}
	e.mu.RUnlock()

	return Stats{
		Enqueued:   e.enqueued.Load(),
		Played:     e.played.Load(),
		Failed:     e.failed.Load(),
		Dropped:    e.dropped.Load(),
		QueueDepth: depth,
	}
}
