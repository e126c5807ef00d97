package systems

import (
	"testing"

	"github.com/decker502/nightsky/pkg/components"
	"github.com/decker502/nightsky/pkg/config"
	"github.com/decker502/nightsky/pkg/store"
)

func starfieldShooting(t *testing.T) (*store.Store, *ShootingStarSystem, *config.ShootingStarConfig) {
	t.Helper()
	rng := newRand()
	st, v := buildVariant(t, config.VariantStarfield, 1920, 1080, rng)
	return st, NewShootingStarSystem(st, v.ShootingStars, rng), v.ShootingStars
}

// TestShootingStarSystem_SpawnRate 10000 tick 内生成数量约为 30（统计性质）
func TestShootingStarSystem_SpawnRate(t *testing.T) {
	st, sys, _ := starfieldShooting(t)

	for tick := 0; tick < 10000; tick++ {
		sys.Update()
		st.Sweep()
	}

	got := st.Spawned()
	if got < 10 || got > 55 {
		t.Errorf("spawned %d shooting stars in 10000 ticks, want ~30", got)
	}
}

func TestShootingStarSystem_SpawnWithinStartArea(t *testing.T) {
	st, _, cfg := starfieldShooting(t)
	cfg.Probability = 1
	sys := NewShootingStarSystem(st, cfg, newRand())

	for tick := 0; tick < 200; tick++ {
		sys.Update()
	}
	for i, p := range st.Transient() {
		if p.Kind != components.KindShootingStar {
			t.Fatalf("transient %d kind = %v", i, p.Kind)
		}
		if p.Speed < cfg.Speed.Min || p.Speed >= cfg.Speed.Max {
			t.Fatalf("speed %v outside %v", p.Speed, cfg.Speed)
		}
		if p.Heading < cfg.Angle.Min || p.Heading >= cfg.Angle.Max {
			t.Fatalf("heading %v outside %v", p.Heading, cfg.Angle)
		}
	}

	// 新生成的流星：起点在视口上半部分，透明度为 1
	last := st.Transient()[len(st.Transient())-1]
	if last.Opacity != 1 {
		t.Errorf("new shooting star opacity = %v, want 1", last.Opacity)
	}
	if last.X < 0 || last.X > 1920 || last.Y < 0 || last.Y > 540 {
		t.Errorf("new shooting star at (%v,%v), want upper half", last.X, last.Y)
	}
}

// TestShootingStarSystem_DecayAndRemoval 透明度逐 tick 严格递减，≤0 后被移除且不再出现
func TestShootingStarSystem_DecayAndRemoval(t *testing.T) {
	st, _, cfg := starfieldShooting(t)
	cfg.Probability = 0
	sys := NewShootingStarSystem(st, cfg, newRand())

	st.Spawn(components.Particle{
		Kind:    components.KindShootingStar,
		X:       100,
		Y:       100,
		Speed:   5,
		Heading: 1,
		Length:  50,
		Opacity: 1,
	})

	prev := 1.0
	ticks := 0
	for len(st.Transient()) > 0 {
		sys.Update()
		if p := st.Transient()[0]; p.Alive() && p.Opacity >= prev {
			t.Fatalf("tick %d opacity %v did not decrease from %v", ticks, p.Opacity, prev)
		} else {
			prev = p.Opacity
		}
		st.Sweep()
		ticks++
		if ticks > 1000 {
			t.Fatal("shooting star never removed")
		}
	}

	// 1 / 0.01 = 100 tick，浮点累积误差允许一个 tick
	if ticks < 100 || ticks > 101 {
		t.Errorf("removed after %d ticks, want ~100", ticks)
	}

	// 已移除的粒子不受后续 tick 影响
	sys.Update()
	if removed := st.Sweep(); removed != 0 || len(st.Transient()) != 0 {
		t.Errorf("extra tick changed the pool: removed=%d len=%d", removed, len(st.Transient()))
	}
}

func TestShootingStarSystem_Moves(t *testing.T) {
	st, _, cfg := starfieldShooting(t)
	cfg.Probability = 0
	sys := NewShootingStarSystem(st, cfg, newRand())

	st.Spawn(components.Particle{Kind: components.KindShootingStar, X: 0, Y: 0, Speed: 10, Heading: 0, Opacity: 1})
	sys.Update()

	p := st.Transient()[0]
	if p.X != 10 || p.Y != 0 {
		t.Errorf("position = (%v,%v), want (10,0)", p.X, p.Y)
	}
}

func TestShootingStarSystem_EmptyBounds(t *testing.T) {
	v, _ := config.DefaultVariants().Find(config.VariantStarfield)
	cfg := *v.ShootingStars
	cfg.Probability = 1
	st := store.New(0)
	sys := NewShootingStarSystem(st, &cfg, newRand())

	sys.Update()
	if len(st.Transient()) != 0 {
		t.Errorf("spawned %d shooting stars with empty bounds", len(st.Transient()))
	}
}
