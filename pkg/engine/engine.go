// Package engine drives one animated sky on a host.
//
// An Engine owns the drawing surface, the particle store and the systems of
// one variant. Mount builds the population for the current viewport and
// starts the frame loop; every frame steps the systems and repaints the
// surface; Unmount cancels the pending frame, detaches every listener and
// releases the surface in one synchronous step.
//
// 生命周期：Unmounted → Running →（resize：重建粒子，保持 Running）→ Stopped。
// Stopped 是终态，不能再次 Mount。
package engine

import (
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/decker502/nightsky/pkg/components"
	"github.com/decker502/nightsky/pkg/config"
	"github.com/decker502/nightsky/pkg/host"
	"github.com/decker502/nightsky/pkg/render"
	"github.com/decker502/nightsky/pkg/store"
	"github.com/decker502/nightsky/pkg/systems"
)

// MaxFrameDelta caps the time step of one frame in seconds.
const MaxFrameDelta = 0.25

// DefaultTransientCap bounds the transient pool of one engine.
const DefaultTransientCap = 256

// ErrAlreadyMounted is returned by Mount when the engine is not in the
// Unmounted state.
var ErrAlreadyMounted = errors.New("engine already mounted")

// State is the lifecycle state of an Engine.
type State int

const (
	StateUnmounted State = iota
	StateRunning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateUnmounted:
		return "unmounted"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Option configures an Engine.
type Option func(*Engine)

// WithSeed fixes the random seed. 0 seeds from the clock.
func WithSeed(seed uint64) Option {
	return func(e *Engine) { e.seed = seed }
}

// WithTransientCap overrides the transient pool capacity.
func WithTransientCap(n int) Option {
	return func(e *Engine) { e.transientCap = n }
}

// Engine animates one variant.
type Engine struct {
	variant      *config.VariantConfig
	seed         uint64
	transientCap int

	host    host.Host
	surface render.Canvas
	store   *store.Store
	noop    bool // 表面不可用时只保持生命周期，不绘制

	rng      *rand.Rand
	motion   *systems.MotionSystem
	shooting *systems.ShootingStarSystem
	cursor   *systems.CursorSystem
	renderer *systems.RenderSystem

	state   State
	frame   host.FrameHandle
	unsubs  []func()
	elapsed float64
	ticks   uint64
}

// New creates an unmounted engine for variant.
func New(variant *config.VariantConfig, opts ...Option) *Engine {
	e := &Engine{
		variant:      variant,
		transientCap: DefaultTransientCap,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.seed == 0 {
		e.seed = uint64(time.Now().UnixNano())
	}
	return e
}

// Mount attaches the engine to h, builds the population for the current
// viewport and schedules the first frame. A host that cannot provide a
// surface leaves the engine running as a no-op.
func (e *Engine) Mount(h host.Host) error {
	if e.state != StateUnmounted {
		return fmt.Errorf("mount %q: %w (state %s)", e.variant.Name, ErrAlreadyMounted, e.state)
	}
	e.host = h
	e.state = StateRunning

	w, hh := h.ViewportSize()
	surface, err := h.NewSurface(w, hh)
	if err != nil {
		log.Printf("[Engine] %s: surface unavailable, rendering disabled: %v", e.variant.Name, err)
		e.noop = true
		return nil
	}
	e.surface = surface
	e.store = store.New(e.transientCap)
	e.buildSystems()
	e.rebuild(w, hh)

	e.unsubs = append(e.unsubs, h.OnResize(e.onResize))
	if e.cursor != nil {
		e.unsubs = append(e.unsubs,
			h.OnPointerMove(e.cursor.PointerMove),
			h.OnPointerPresence(e.cursor.PointerPresence),
		)
	}
	e.frame = h.RequestFrame(e.onFrame)

	log.Printf("[Engine] %s mounted at %dx%d (seed %d)", e.variant.Name, w, hh, e.seed)
	return nil
}

// Unmount cancels the pending frame, detaches the listeners, clears the
// store and releases the surface. The engine ends in StateStopped.
// Calling Unmount on an engine that is not running is a no-op.
func (e *Engine) Unmount() {
	if e.state != StateRunning {
		return
	}
	e.state = StateStopped

	if e.frame != 0 {
		e.host.CancelFrame(e.frame)
		e.frame = 0
	}
	for _, unsub := range e.unsubs {
		unsub()
	}
	e.unsubs = nil

	if e.store != nil {
		e.store.Clear()
	}
	if e.surface != nil {
		e.host.ReleaseSurface(e.surface)
		e.surface = nil
	}
	log.Printf("[Engine] %s unmounted after %d ticks", e.variant.Name, e.ticks)
}

// Reseed replaces the random source and rebuilds the population and the
// systems. Transient particles are dropped.
func (e *Engine) Reseed(seed uint64) {
	e.seed = seed
	if e.state != StateRunning || e.noop {
		return
	}
	e.store.Clear()
	e.buildSystems()
	w, h := e.host.ViewportSize()
	e.rebuild(w, h)
	log.Printf("[Engine] %s reseeded with %d", e.variant.Name, seed)
}

// Step advances the simulation by dt seconds without drawing.
// It does nothing unless the engine is mounted on a usable surface.
func (e *Engine) Step(dt float64) {
	if e.state != StateRunning || e.noop {
		return
	}
	e.elapsed += dt
	e.ticks++

	e.motion.Update(e.elapsed)
	if e.shooting != nil {
		e.shooting.Update()
	}
	if e.cursor != nil {
		e.cursor.Update(dt)
	}
	e.store.Sweep()
}

func (e *Engine) onFrame(dt float64) {
	// 已卸载后被宿主触发的残留回调直接忽略
	if e.state != StateRunning || e.noop {
		return
	}
	e.frame = 0

	e.Step(ClampDelta(dt))
	e.renderer.Draw(e.surface, e.elapsed, e.cursor)

	e.frame = e.host.RequestFrame(e.onFrame)
}

func (e *Engine) onResize(w, h int) {
	if e.state != StateRunning || e.noop {
		return
	}
	e.rebuild(w, h)
}

// rebuild resizes the surface and regenerates the permanent population.
// Transient particles anchored to the previous bounds are dropped.
func (e *Engine) rebuild(w, h int) {
	e.surface.Resize(w, h)
	e.store.ClearTransient()
	b := components.NewBounds(w, h)
	counts := systems.LayerCounts(e.variant.Layers, b)
	e.store.Rebuild(b, counts, systems.NewLayerInit(e.variant.Layers, b, e.rng))
}

func (e *Engine) buildSystems() {
	e.rng = rand.New(rand.NewPCG(e.seed, e.seed^0x9e3779b97f4a7c15))
	e.motion = systems.NewMotionSystem(e.store, e.variant.Layers, e.rng)
	e.shooting = nil
	if e.variant.ShootingStars != nil {
		e.shooting = systems.NewShootingStarSystem(e.store, e.variant.ShootingStars, e.rng)
	}
	if e.variant.Cursor != nil && e.cursor == nil {
		// 光标系统保留跨 reseed 的指针状态
		e.cursor = systems.NewCursorSystem(e.store, e.variant.Cursor)
	}
	e.renderer = systems.NewRenderSystem(e.store, e.variant, int64(e.seed))
}

// ClampDelta limits a host frame delta to [0, MaxFrameDelta].
func ClampDelta(dt float64) float64 {
	switch {
	case dt < 0:
		return 0
	case dt > MaxFrameDelta:
		return MaxFrameDelta
	default:
		return dt
	}
}

// Variant returns the configuration the engine animates.
func (e *Engine) Variant() *config.VariantConfig { return e.variant }

// State returns the lifecycle state.
func (e *Engine) State() State { return e.state }

// Store returns the particle store, nil before a successful mount.
func (e *Engine) Store() *store.Store { return e.store }

// Surface returns the drawing surface, nil when none is held.
func (e *Engine) Surface() render.Canvas { return e.surface }

// Cursor returns the cursor system of cursor variants.
func (e *Engine) Cursor() *systems.CursorSystem { return e.cursor }

// Seed returns the current random seed.
func (e *Engine) Seed() uint64 { return e.seed }

// Ticks returns the number of simulation steps taken.
func (e *Engine) Ticks() uint64 { return e.ticks }

// Elapsed returns the simulated time in seconds.
func (e *Engine) Elapsed() float64 { return e.elapsed }

// Disabled reports whether the engine runs without a surface.
func (e *Engine) Disabled() bool { return e.noop }
