package engine

import (
	"errors"
	"testing"

	"github.com/decker502/nightsky/pkg/config"
	"github.com/decker502/nightsky/pkg/host"
	"github.com/decker502/nightsky/pkg/render"
)

const tick = 1.0 / 60

func variant(t *testing.T, name string) *config.VariantConfig {
	t.Helper()
	v, err := config.DefaultVariants().Find(name)
	if err != nil {
		t.Fatalf("Find(%q): %v", name, err)
	}
	return v
}

func mount(t *testing.T, name string, w, h int) (*Engine, *host.Manual) {
	t.Helper()
	m := host.NewManual(w, h)
	e := New(variant(t, name), WithSeed(7))
	if err := e.Mount(m); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	return e, m
}

func TestEngine_MountBuildsPopulation(t *testing.T) {
	e, m := mount(t, config.VariantDeepSpace, 1920, 1080)

	if e.State() != StateRunning {
		t.Fatalf("state = %s, want running", e.State())
	}
	if got := len(e.Store().Layer(0)); got != 259 {
		t.Errorf("stars = %d, want 259", got)
	}
	if got := len(e.Store().Layer(1)); got != 41 {
		t.Errorf("asteroids = %d, want 41", got)
	}
	if m.Pending() != 1 {
		t.Errorf("pending frames = %d, want 1", m.Pending())
	}
	if m.Listeners() != 1 {
		t.Errorf("listeners = %d, want 1 (resize only)", m.Listeners())
	}
	if len(m.Surfaces()) != 1 {
		t.Errorf("surfaces = %d, want 1", len(m.Surfaces()))
	}
}

func TestEngine_FrameLoop(t *testing.T) {
	e, m := mount(t, config.VariantStarfield, 640, 480)

	m.Frames(30, tick)
	if e.Ticks() != 30 {
		t.Errorf("ticks = %d, want 30", e.Ticks())
	}
	if m.Pending() != 1 {
		t.Errorf("pending = %d, want 1 after each frame reschedules", m.Pending())
	}

	rec := m.Surfaces()[0]
	kinds := rec.Kinds()
	if kinds[0] != render.OpClear || kinds[1] != render.OpGradient || kinds[len(kinds)-1] != render.OpFlush {
		t.Errorf("frame ops start %v ... end %v", kinds[:2], kinds[len(kinds)-1])
	}
}

func TestEngine_ClampsFrameDelta(t *testing.T) {
	e, m := mount(t, config.VariantStarfield, 100, 100)

	m.Frame(10)
	m.Frame(-1)
	if e.Elapsed() != MaxFrameDelta {
		t.Errorf("elapsed = %v, want %v", e.Elapsed(), MaxFrameDelta)
	}

	tests := []struct {
		in, want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.016, 0.016},
		{0.25, 0.25},
		{3, 0.25},
	}
	for _, tt := range tests {
		if got := ClampDelta(tt.in); got != tt.want {
			t.Errorf("ClampDelta(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestEngine_ResizeRebuilds(t *testing.T) {
	e, m := mount(t, config.VariantDeepSpace, 1920, 1080)
	m.Frames(5, tick)
	gen := e.Store().Generation()

	m.Resize(800, 600)

	if e.Store().Generation() != gen+1 {
		t.Errorf("generation = %d, want %d", e.Store().Generation(), gen+1)
	}
	if got := len(e.Store().Layer(0)); got != 60 {
		t.Errorf("stars after resize = %d, want 60", got)
	}
	if got := len(e.Store().Layer(1)); got != 9 {
		t.Errorf("asteroids after resize = %d, want 9", got)
	}
	for i, p := range e.Store().Permanent() {
		if p.X < 0 || p.X > 800 || p.Y < 0 || p.Y > 600 {
			t.Fatalf("particle %d at (%v,%v) outside 800x600", i, p.X, p.Y)
		}
	}
	if w, h := e.Surface().Size(); w != 800 || h != 600 {
		t.Errorf("surface = %dx%d, want 800x600", w, h)
	}

	// 连续 resize 后人口只由最终尺寸决定
	m.Resize(0, 0)
	if e.Store().Len() != len(e.Store().Transient()) {
		t.Errorf("empty viewport should have no permanent particles")
	}
	m.Resize(1920, 1080)
	if got := len(e.Store().Layer(0)); got != 259 {
		t.Errorf("stars = %d, want 259", got)
	}
	m.Frames(5, tick)
}

func TestEngine_ResizeDropsTransient(t *testing.T) {
	e, m := mount(t, config.VariantStarfield, 1920, 1080)

	// 流星概率较低，推进到至少生成一颗
	for i := 0; i < 20000 && len(e.Store().Transient()) == 0; i++ {
		m.Frame(tick)
	}
	if len(e.Store().Transient()) == 0 {
		t.Fatal("no shooting star spawned")
	}
	spawned := e.Store().Spawned()

	m.Resize(200, 100)

	for _, p := range e.Store().Transient() {
		t.Errorf("transient %s at (%.0f,%.0f) survived resize", p.Kind, p.X, p.Y)
	}
	if e.Store().Spawned() != spawned {
		t.Errorf("resize spawned particles: %d -> %d", spawned, e.Store().Spawned())
	}
}

func TestEngine_StepBeforeMount(t *testing.T) {
	e := New(variant(t, config.VariantStarfield), WithSeed(3))
	e.Step(tick)
	if e.Ticks() != 0 || e.Elapsed() != 0 {
		t.Errorf("unmounted engine advanced: ticks=%d elapsed=%v", e.Ticks(), e.Elapsed())
	}
}

func TestEngine_UnmountLeavesNoDanglingFrame(t *testing.T) {
	e, m := mount(t, config.VariantCursor, 800, 600)
	if m.Listeners() != 3 {
		t.Fatalf("listeners = %d, want 3 for the cursor variant", m.Listeners())
	}

	e.Unmount()

	if e.State() != StateStopped {
		t.Errorf("state = %s, want stopped", e.State())
	}
	if m.Pending() != 0 {
		t.Errorf("pending = %d, want 0", m.Pending())
	}
	if m.Listeners() != 0 {
		t.Errorf("listeners = %d, want 0", m.Listeners())
	}
	if len(m.Surfaces()) != 0 {
		t.Errorf("surface not released")
	}

	// 宿主强行触发残留回调：不能有任何修改
	for _, fn := range m.Requested() {
		fn(tick)
	}
	m.MovePointer(10, 10)
	m.Resize(100, 100)
	if e.Ticks() != 0 {
		t.Errorf("ticks = %d after teardown, want 0", e.Ticks())
	}
	if e.Store().Len() != 0 {
		t.Errorf("store touched after teardown: len=%d", e.Store().Len())
	}
	if m.Frame(tick) != 0 {
		t.Errorf("a frame ran after teardown")
	}

	e.Unmount() // 重复卸载无副作用
	if err := e.Mount(m); !errors.Is(err, ErrAlreadyMounted) {
		t.Errorf("remount err = %v, want ErrAlreadyMounted", err)
	}
}

func TestEngine_UnmountAfterTicks(t *testing.T) {
	e, m := mount(t, config.VariantStarfield, 640, 480)
	m.Frames(10, tick)
	e.Unmount()

	for _, fn := range m.Requested() {
		fn(tick)
	}
	if e.Ticks() != 10 {
		t.Errorf("ticks = %d, want 10", e.Ticks())
	}
}

func TestEngine_SurfaceUnavailable(t *testing.T) {
	m := host.NewManual(800, 600)
	m.FailSurfaces = true
	e := New(variant(t, config.VariantDeepSpace), WithSeed(1))

	if err := e.Mount(m); err != nil {
		t.Fatalf("Mount must not fail the host: %v", err)
	}
	if !e.Disabled() || e.State() != StateRunning {
		t.Errorf("disabled=%v state=%s, want no-op running", e.Disabled(), e.State())
	}
	if m.Pending() != 0 || m.Listeners() != 0 {
		t.Errorf("no-op engine scheduled work: pending=%d listeners=%d", m.Pending(), m.Listeners())
	}
	e.Step(tick)
	if e.Ticks() != 0 {
		t.Errorf("ticks = %d, want 0 on a no-op engine", e.Ticks())
	}
	e.Reseed(5)
	e.Unmount()
	e.Step(tick)
	if e.State() != StateStopped {
		t.Errorf("state = %s, want stopped", e.State())
	}
}

func TestEngine_ShootingStarSpawnRate(t *testing.T) {
	e, m := mount(t, config.VariantStarfield, 640, 480)

	m.Frames(10000, tick)

	// 期望约 30 颗，宽松容差
	if got := e.Store().Spawned(); got < 10 || got > 55 {
		t.Errorf("spawned %d shooting stars in 10000 ticks, want about 30", got)
	}
	if got := len(e.Store().Layer(0)); got != 200 {
		t.Errorf("permanent population = %d, want 200", got)
	}
	for _, p := range e.Store().Transient() {
		if p.Opacity <= 0 {
			t.Errorf("dead transient particle survived sweep: %+v", p)
		}
	}
}

func TestEngine_Determinism(t *testing.T) {
	a, ma := mount(t, config.VariantDeepSpace, 800, 600)
	b, mb := mount(t, config.VariantDeepSpace, 800, 600)
	ma.Frames(50, tick)
	mb.Frames(50, tick)

	pa, pb := a.Store().Permanent(), b.Store().Permanent()
	for i := range pa {
		if pa[i] != pb[i] {
			t.Fatalf("particle %d differs with equal seeds", i)
		}
	}
}

func TestEngine_Reseed(t *testing.T) {
	e, _ := mount(t, config.VariantDeepSpace, 800, 600)
	before := e.Store().Permanent()[0]
	gen := e.Store().Generation()

	e.Reseed(99)

	if e.Seed() != 99 {
		t.Errorf("seed = %d", e.Seed())
	}
	if e.Store().Generation() != gen+1 {
		t.Errorf("reseed should rebuild the store")
	}
	if e.Store().Permanent()[0] == before {
		t.Errorf("first particle unchanged after reseed")
	}
	if got := len(e.Store().Layer(0)); got != 60 {
		t.Errorf("stars = %d, want 60", got)
	}
}

func TestEngine_CursorPointerEvents(t *testing.T) {
	e, m := mount(t, config.VariantCursor, 800, 600)

	m.SetPointerInside(true)
	m.MovePointer(100, 100)
	m.Frame(tick)
	m.MovePointer(200, 100)
	m.Frames(3, tick)

	if !e.Cursor().Cursor().Visible {
		t.Fatal("cursor should be visible")
	}
	if got := len(e.Store().Transient()); got != 2 {
		t.Errorf("trail points = %d, want 2", got)
	}

	rec := m.Surfaces()[0]
	if rec.Count(render.OpRing) == 0 {
		t.Errorf("cursor ring not drawn: %v", rec.Kinds())
	}

	m.SetPointerInside(false)
	m.Frames(60, tick)
	if got := len(e.Store().Transient()); got != 0 {
		t.Errorf("trail points = %d after fading, want 0", got)
	}
	if rec.Count(render.OpRing) != 0 {
		t.Errorf("ring drawn while pointer outside")
	}
}

func TestState_String(t *testing.T) {
	tests := map[State]string{
		StateUnmounted: "unmounted",
		StateRunning:   "running",
		StateStopped:   "stopped",
		State(9):       "State(9)",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", int(s), got, want)
		}
	}
}
