package systems

import (
	"math"
	"math/rand/v2"

	"github.com/decker502/nightsky/pkg/components"
	"github.com/decker502/nightsky/pkg/config"
	"github.com/decker502/nightsky/pkg/store"
)

// ShootingStarSystem spawns shooting stars and advances the live ones.
//
// 每 tick 先推进已有流星（沿航向移动，透明度线性衰减），再以固定概率生成一颗新流星。
// 透明度降到 0 以下的流星由 Store.Sweep 在同一 tick 末尾移除。
type ShootingStarSystem struct {
	store *store.Store
	cfg   *config.ShootingStarConfig
	rng   *rand.Rand
}

// NewShootingStarSystem creates the spawner for cfg.
func NewShootingStarSystem(st *store.Store, cfg *config.ShootingStarConfig, rng *rand.Rand) *ShootingStarSystem {
	return &ShootingStarSystem{
		store: st,
		cfg:   cfg,
		rng:   rng,
	}
}

// Update runs one tick.
func (s *ShootingStarSystem) Update() {
	transient := s.store.Transient()
	for i := range transient {
		p := &transient[i]
		if p.Kind != components.KindShootingStar {
			continue
		}
		p.X += math.Cos(p.Heading) * p.Speed
		p.Y += math.Sin(p.Heading) * p.Speed
		p.Opacity -= s.cfg.Decay
	}

	if s.rng.Float64() < s.cfg.Probability {
		s.spawn()
	}
}

func (s *ShootingStarSystem) spawn() {
	b := s.store.Bounds()
	if b.Empty() {
		return
	}
	s.store.Spawn(components.Particle{
		Kind:        components.KindShootingStar,
		X:           s.cfg.StartX.Sample(s.rng) * b.Width,
		Y:           s.cfg.StartY.Sample(s.rng) * b.Height,
		Length:      s.cfg.Length.Sample(s.rng),
		Speed:       s.cfg.Speed.Sample(s.rng),
		Heading:     s.cfg.Angle.Sample(s.rng),
		Opacity:     1,
		BaseOpacity: 1,
		Size:        s.cfg.Width,
		Scale:       1,
	})
}
