package rangegame

import (
	"context"
	"errors"
	"image/color"
	"math/rand"
	"sync"
	"time"

	"shootingrange/internal/events"
	"shootingrange/internal/targets"
)

const (
	ViewportScale = 0.8  // share of the window the surface occupies
	SpawnChance   = 0.02 // per-tick spawn probability
	HitPoints     = 10   // awarded once per scoring click
)

var (
	ErrAlreadyMounted = errors.New("engine already mounted")
	ErrEmptyViewport  = errors.New("viewport has no area")
)

var DefaultFill = color.RGBA{R: 0xff, A: 0xff}

// GameState is a point-in-time copy of an engine's state.
type GameState struct {
	Score    int
	Targets  []targets.Target
	Viewport targets.Viewport
}

type Option func(*Engine)

// WithRand replaces the random source used for spawn chance and placement.
func WithRand(r targets.Rand) Option {
	return func(e *Engine) { e.rnd = r }
}

func WithFill(c color.Color) Option {
	return func(e *Engine) { e.fill = c }
}

// WithFrameRate makes Mount start a frame loop calling Tick fps times per
// second. Without it the host is expected to call Tick itself.
func WithFrameRate(fps int) Option {
	return func(e *Engine) {
		if fps > 0 {
			e.interval = time.Second / time.Duration(fps)
		}
	}
}

func WithPublisher(p events.Publisher, sessionID string) Option {
	return func(e *Engine) {
		e.bus = p
		e.sessionID = sessionID
	}
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// Engine runs one shooting range: a bounded set of circular targets that
// spawn at random and disappear when clicked.
type Engine struct {
	mu        sync.Mutex
	score     int
	targets   *targets.Store
	viewport  targets.Viewport
	surface   Surface
	rnd       targets.Rand
	fill      color.Color
	interval  time.Duration
	bus       events.Publisher
	sessionID string

	mounted bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New creates an unmounted engine drawing onto surface. A nil surface is
// allowed; frames are then skipped.
func New(surface Surface, opts ...Option) *Engine {
	e := &Engine{
		targets: targets.NewStore(targets.MaxTargets),
		surface: surface,
		rnd:     globalRand{},
		fill:    DefaultFill,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Mount resets the game state, sizes the viewport from the window and, if a
// frame rate is set, starts the frame loop. The loop stops when ctx is done
// or on Unmount.
func (e *Engine) Mount(ctx context.Context, windowWidth, windowHeight float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.mounted {
		return ErrAlreadyMounted
	}
	vp := scaleViewport(windowWidth, windowHeight)
	if vp.Empty() {
		return ErrEmptyViewport
	}

	e.viewport = vp
	e.score = 0
	e.targets.Clear()
	e.mounted = true

	if e.interval > 0 {
		loopCtx, cancel := context.WithCancel(ctx)
		e.cancel = cancel
		e.done = make(chan struct{})
		go e.run(loopCtx, e.done)
	}
	e.publish(events.Event{Kind: events.KindMount})
	return nil
}

// Unmount stops the frame loop and waits for it to exit. No spawn or render
// happens once Unmount returns. Calling it on an unmounted engine is a no-op.
func (e *Engine) Unmount() {
	e.mu.Lock()
	if !e.mounted {
		e.mu.Unlock()
		return
	}
	e.mounted = false
	cancel, done := e.cancel, e.done
	e.cancel, e.done = nil, nil
	e.publish(events.Event{Kind: events.KindUnmount, Score: e.score})
	e.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

func (e *Engine) Mounted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mounted
}

func (e *Engine) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			e.Tick()
		}
	}
}

// Resize sets the viewport to ViewportScale of the window. Existing targets
// keep their positions even if they now fall outside.
func (e *Engine) Resize(windowWidth, windowHeight float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.viewport = scaleViewport(windowWidth, windowHeight)
}

func scaleViewport(w, h float64) targets.Viewport {
	return targets.Viewport{Width: w * ViewportScale, Height: h * ViewportScale}
}

// SpawnTarget adds a random target unless the range is full or the viewport
// cannot hold it.
func (e *Engine) SpawnTarget() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.spawnLocked()
}

func (e *Engine) spawnLocked() {
	if e.targets.Full() {
		return
	}
	if t := e.targets.Spawn(e.viewport, e.rnd); t != nil {
		e.publish(events.Event{Kind: events.KindSpawn})
	}
}

// Tick is one frame: maybe spawn, then redraw everything. It does nothing
// while the engine is not mounted.
func (e *Engine) Tick() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.mounted {
		return
	}
	if e.rnd.Float64() < SpawnChance {
		e.spawnLocked()
	}
	e.renderLocked()
}

func (e *Engine) renderLocked() {
	if e.surface == nil {
		return
	}
	e.surface.Clear(e.viewport)
	for _, t := range e.targets.GetList() {
		e.surface.FillCircle(t.X, t.Y, t.Radius, e.fill)
	}
	if p, ok := e.surface.(Presenter); ok {
		p.Present(e.score)
	}
}

// HandleClick removes every target under the surface-local point (x, y).
// A click that removes anything scores HitPoints once, however many targets
// it took out. It returns the number of targets removed.
func (e *Engine) HandleClick(x, y float64) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	hit := e.targets.HitAt(x, y)
	if len(hit) > 0 {
		e.score += HitPoints
	}
	e.publish(events.Event{Kind: events.KindClick, Hits: len(hit), Score: e.score})
	return len(hit)
}

func (e *Engine) Score() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.score
}

func (e *Engine) Snapshot() GameState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return GameState{
		Score:    e.score,
		Targets:  e.targets.GetList(),
		Viewport: e.viewport,
	}
}

func (e *Engine) publish(ev events.Event) {
	if e.bus == nil {
		return
	}
	ev.SessionID = e.sessionID
	e.bus.Publish(ev)
}
