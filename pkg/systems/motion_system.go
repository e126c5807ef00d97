package systems

import (
	"math"
	"math/rand/v2"

	"github.com/decker502/nightsky/pkg/config"
	"github.com/decker502/nightsky/pkg/store"
	"github.com/decker502/nightsky/pkg/utils"
)

// MotionSystem advances the permanent population one tick.
//
// 每个永久粒子每 tick：
//  1. 按速度推进深度（depth）或纵坐标（fall）
//  2. 越出可见范围时回收：深度重置为 MaxDepth，或回到顶部，并重新随机正交坐标
//  3. 旋转角按旋转速度累加
//  4. 闪烁透明度 = clamp(base + sin(t*rate + phase)*amplitude, min, max)
//
// 粒子数组原地修改，不分配内存。
type MotionSystem struct {
	store  *store.Store
	layers []config.LayerConfig
	rng    *rand.Rand
}

// NewMotionSystem creates a motion system over the layers of one variant.
func NewMotionSystem(st *store.Store, layers []config.LayerConfig, rng *rand.Rand) *MotionSystem {
	return &MotionSystem{
		store:  st,
		layers: layers,
		rng:    rng,
	}
}

// Update steps every permanent particle. elapsed is the engine clock in
// seconds and drives twinkling.
func (s *MotionSystem) Update(elapsed float64) {
	b := s.store.Bounds()
	for i := range s.layers {
		cfg := &s.layers[i]
		particles := s.store.Layer(i)

		for j := range particles {
			p := &particles[j]

			switch cfg.Motion {
			case config.MotionDepth:
				p.Z -= p.Speed
				if p.Z <= 0 {
					// 回收：在到达投影奇点之前重置深度
					p.Z = cfg.MaxDepth
					p.X = s.rng.Float64() * b.Width
					p.Y = s.rng.Float64() * b.Height
				}
			case config.MotionFall:
				p.Y += p.Speed
				if p.Y > b.Height {
					p.Y = -p.Size
					p.X = s.rng.Float64() * b.Width
				}
			}

			if p.RotationSpeed != 0 {
				p.Rotation = math.Mod(p.Rotation+p.RotationSpeed, 2*math.Pi)
			}

			if t := cfg.Twinkle; t != nil && p.Twinkles() {
				p.Opacity = Twinkle(p.BaseOpacity, elapsed, p.TwinkleRate, p.TwinklePhase, t)
			}
		}
	}
}

// Twinkle evaluates the clamped twinkle opacity at time t.
func Twinkle(base, t, rate, phase float64, cfg *config.TwinkleConfig) float64 {
	return utils.Clamp(base+math.Sin(t*rate+phase)*cfg.Amplitude, cfg.Min, cfg.Max)
}
