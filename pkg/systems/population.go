package systems

import (
	"math"
	"math/rand/v2"

	"github.com/decker502/nightsky/pkg/components"
	"github.com/decker502/nightsky/pkg/config"
	"github.com/decker502/nightsky/pkg/store"
	"github.com/decker502/nightsky/pkg/utils"
)

// LayerCounts returns the permanent population of every layer for bounds b.
func LayerCounts(layers []config.LayerConfig, b components.Bounds) []int {
	counts := make([]int, len(layers))
	for i := range layers {
		counts[i] = layers[i].PopulationFor(b)
	}
	return counts
}

// NewLayerInit returns the store initializer that seeds each particle of a
// layer from its configured ranges.
func NewLayerInit(layers []config.LayerConfig, b components.Bounds, rng *rand.Rand) store.InitFunc {
	return func(layer int, p *components.Particle) {
		SeedParticle(&layers[layer], b, rng, p)
	}
}

// SeedParticle 按层配置随机初始化一个永久粒子
//
// 位置在 bounds 内均匀分布；尺寸、速度、透明度、闪烁、旋转都从配置范围采样。
// 闪烁粒子的初始透明度会被限制在闪烁区间内。
func SeedParticle(cfg *config.LayerConfig, b components.Bounds, rng *rand.Rand, p *components.Particle) {
	p.Kind = components.KindStar
	if cfg.Style == config.StylePolygon {
		p.Kind = components.KindAsteroid
	}

	p.X = rng.Float64() * b.Width
	p.Y = rng.Float64() * b.Height
	if cfg.Motion == config.MotionDepth {
		p.Z = cfg.Depth.Sample(rng)
	}

	p.Size = cfg.Size.Sample(rng)
	p.Speed = cfg.Speed.Sample(rng)
	p.BaseOpacity = cfg.Opacity.Sample(rng)
	p.Opacity = p.BaseOpacity
	p.Scale = 1

	if t := cfg.Twinkle; t != nil {
		p.TwinkleRate = t.Rate.Sample(rng)
		p.TwinklePhase = rng.Float64() * 2 * math.Pi
		p.Opacity = utils.Clamp(p.BaseOpacity, t.Min, t.Max)
	}

	p.Rotation = cfg.Rotation.Sample(rng)
	p.RotationSpeed = cfg.RotationSpeed.Sample(rng)

	if n := len(cfg.Palette); n > 0 {
		p.Color = rng.IntN(n)
	}
}
