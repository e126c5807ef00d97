package systems

import (
	"image/color"
	"math"

	"github.com/aquilax/go-perlin"

	"github.com/decker502/nightsky/pkg/components"
	"github.com/decker502/nightsky/pkg/config"
	"github.com/decker502/nightsky/pkg/render"
	"github.com/decker502/nightsky/pkg/store"
)

// RenderSystem paints the store onto a canvas.
//
// 绘制顺序：
//  1. 清空并绘制背景（纯色 / 竖直渐变 / 透明）
//  2. 永久粒子，按层、按存储顺序
//  3. 瞬态粒子（流星、轨迹点），始终在最上层
//  4. 光标圆环
//
// 透视缩放、投影位置都在绘制时计算，不写回粒子；投影后完全落在视口外的粒子跳过。
// RenderSystem 只读取粒子，从不修改粒子状态。
type RenderSystem struct {
	store   *store.Store
	variant *config.VariantConfig
	noise   *perlin.Perlin

	// 复用的缓冲区，避免每帧分配
	stops  []render.Stop
	points []render.Point
	bg     []render.Stop
}

// NewRenderSystem creates the renderer for variant. seed feeds the perlin
// wobble of polygon layers.
func NewRenderSystem(st *store.Store, variant *config.VariantConfig, seed int64) *RenderSystem {
	s := &RenderSystem{
		store:   st,
		variant: variant,
		stops:   make([]render.Stop, 0, 4),
		points:  make([]render.Point, 0, 8),
	}
	for i := range variant.Layers {
		if variant.Layers[i].Polygon.Wobble == config.WobblePerlin {
			s.noise = perlin.NewPerlin(2, 2, 3, seed)
			break
		}
	}
	for _, g := range variant.Background.Gradient {
		s.bg = append(s.bg, render.Stop{Offset: g.Offset, Color: g.Color.NRGBA()})
	}
	return s
}

// Project applies the perspective of a depth particle.
// Returns screen position and the scale factor F/(F-z).
func Project(x, y, z float64) (sx, sy, scale float64) {
	scale = config.FocalLength / (config.FocalLength - z)
	return x * scale, y * scale, scale
}

// Draw renders one frame. cursorSys is nil for variants without a cursor.
func (s *RenderSystem) Draw(c render.Canvas, elapsed float64, cursorSys *CursorSystem) {
	c.Clear()
	s.drawBackground(c)

	b := s.store.Bounds()
	for i := range s.variant.Layers {
		cfg := &s.variant.Layers[i]
		extent := layerExtent(cfg)
		particles := s.store.Layer(i)
		for j := range particles {
			p := &particles[j]
			if !p.Alive() {
				continue
			}
			x, y, scale := p.X, p.Y, 1.0
			if cfg.Motion == config.MotionDepth {
				x, y, scale = Project(p.X, p.Y, p.Z)
			}
			size := p.Size * scale
			if !Visible(b, x, y, size*extent) {
				continue
			}

			switch cfg.Style {
			case config.StyleGlow, config.StyleDot:
				s.drawStar(c, cfg, p, x, y, size)
			case config.StylePolygon:
				s.drawAsteroid(c, cfg, p, j, x, y, size, elapsed)
			}
		}
	}

	transient := s.store.Transient()
	for i := range transient {
		p := &transient[i]
		if !p.Alive() {
			continue
		}
		switch p.Kind {
		case components.KindShootingStar:
			s.drawShootingStar(c, p)
		case components.KindTrail:
			s.drawTrailPoint(c, p)
		}
	}

	if cursorSys != nil {
		s.drawCursor(c, cursorSys)
	}

	c.Flush()
}

// Visible reports whether a disc of radius r at (x, y) intersects b.
func Visible(b components.Bounds, x, y, r float64) bool {
	return x+r >= 0 && x-r <= b.Width && y+r >= 0 && y-r <= b.Height
}

// layerExtent 粒子绘制范围相对 size 的最大倍数
func layerExtent(cfg *config.LayerConfig) float64 {
	extent := math.Max(1, math.Max(cfg.Glow.RadiusFactor, cfg.Core.RadiusFactor))
	if cfg.Style == config.StylePolygon {
		extent = math.Max(extent, cfg.Polygon.Base+cfg.Polygon.Amplitude)
	}
	return extent
}

func (s *RenderSystem) drawBackground(c render.Canvas) {
	bg := s.variant.Background
	switch {
	case len(s.bg) > 0:
		c.FillVerticalGradient(s.bg)
	case bg.Solid != nil:
		c.Fill(bg.Solid.NRGBA())
	}
}

// drawStar 光晕（径向渐变）+ 实心核心
func (s *RenderSystem) drawStar(c render.Canvas, cfg *config.LayerConfig, p *components.Particle, x, y, size float64) {
	var tint *color.NRGBA
	if len(cfg.Palette) > 0 {
		pc := cfg.Palette[p.Color%len(cfg.Palette)].NRGBA()
		tint = &pc
	}

	if cfg.Glow.RadiusFactor > 0 && len(cfg.Glow.Stops) > 0 {
		var glowTint *color.NRGBA
		if cfg.Glow.Tint {
			glowTint = tint
		}
		s.stops = render.StopsFrom(s.stops, cfg.Glow.Stops, p.Opacity, glowTint)
		c.FillGlow(x, y, size*cfg.Glow.RadiusFactor, s.stops)
	}

	if cfg.Core.RadiusFactor > 0 {
		var core config.Color
		switch {
		case cfg.Core.Color != nil:
			core = *cfg.Core.Color
		case tint != nil:
			core = config.Color(*tint)
		default:
			return
		}
		c.FillCircle(x, y, size*cfg.Core.RadiusFactor, core.WithAlpha(p.Opacity))
	}
}

// drawAsteroid 紫色光晕 + 旋转的抖动多边形
func (s *RenderSystem) drawAsteroid(c render.Canvas, cfg *config.LayerConfig, p *components.Particle, index int, x, y, size, elapsed float64) {
	if cfg.Glow.RadiusFactor > 0 && len(cfg.Glow.Stops) > 0 {
		s.stops = render.StopsFrom(s.stops, cfg.Glow.Stops, p.Opacity, nil)
		c.FillGlow(x, y, size*cfg.Glow.RadiusFactor, s.stops)
	}

	poly := &cfg.Polygon
	if poly.Fill == nil {
		return
	}
	s.points = PolygonPoints(s.points, poly, x, y, size, p.Rotation, elapsed, s.wobbleFunc(poly, index))
	c.FillPolygon(s.points, poly.Fill.WithAlpha(p.Opacity))
}

// WobbleFunc returns the outline offset in [-1, 1] at angle a and time t.
type WobbleFunc func(a, t float64) float64

func (s *RenderSystem) wobbleFunc(poly *config.PolygonConfig, index int) WobbleFunc {
	if poly.Wobble == config.WobblePerlin && s.noise != nil {
		offset := float64(index) * 7.31
		return func(a, t float64) float64 {
			n := s.noise.Noise2D(math.Cos(a)*poly.Frequency*0.5+offset, math.Sin(a)*poly.Frequency*0.5+t*poly.TimeScale)
			return math.Max(-1, math.Min(1, n*2))
		}
	}
	return func(a, t float64) float64 {
		return math.Sin(a*poly.Frequency + t*poly.TimeScale)
	}
}

// PolygonPoints computes the outline of a wobbling polygon centered on
// (x, y): vertex k sits at angle 2πk/sides + rotation with radius
// size*(Base + wobble*Amplitude). dst is reused.
func PolygonPoints(dst []render.Point, poly *config.PolygonConfig, x, y, size, rotation, elapsed float64, wobble WobbleFunc) []render.Point {
	dst = dst[:0]
	for k := 0; k < poly.Sides; k++ {
		a := float64(k) / float64(poly.Sides) * 2 * math.Pi
		r := size * (poly.Base + wobble(a, elapsed)*poly.Amplitude)
		sin, cos := math.Sincos(a + rotation)
		dst = append(dst, render.Point{X: x + cos*r, Y: y + sin*r})
	}
	return dst
}

// drawShootingStar 外层宽光晕线 + 内层实线
func (s *RenderSystem) drawShootingStar(c render.Canvas, p *components.Particle) {
	cfg := s.variant.ShootingStars
	if cfg == nil {
		return
	}
	ex := p.X + math.Cos(p.Heading)*p.Length
	ey := p.Y + math.Sin(p.Heading)*p.Length
	if cfg.GlowWidth > 0 {
		c.StrokeLine(p.X, p.Y, ex, ey, cfg.GlowWidth, cfg.Color.WithAlpha(p.Opacity*0.3))
	}
	c.StrokeLine(p.X, p.Y, ex, ey, cfg.Width, cfg.Color.WithAlpha(p.Opacity))
}

// drawTrailPoint 扩散的圆环 + 内部淡淡的径向填充
func (s *RenderSystem) drawTrailPoint(c render.Canvas, p *components.Particle) {
	cfg := s.variant.Cursor
	if cfg == nil {
		return
	}
	r := p.Size * p.Scale
	if r <= 0 {
		return
	}
	s.stops = append(s.stops[:0],
		render.Stop{Offset: 0, Color: cfg.Color.WithAlpha(p.Opacity * 0.125)},
		render.Stop{Offset: 0.7, Color: cfg.Color.WithAlpha(0)},
	)
	c.FillGlow(p.X, p.Y, r, s.stops)
	c.StrokeCircle(p.X, p.Y, r, 1, cfg.Color.WithAlpha(p.Opacity))
}

// drawCursor 外发光 + 内部渐变填充 + 圆环
func (s *RenderSystem) drawCursor(c render.Canvas, sys *CursorSystem) {
	cur := sys.Cursor()
	cfg := s.variant.Cursor
	if !cur.Visible || !cur.Placed || cfg == nil {
		return
	}
	r := cfg.RingRadius * cur.Scale
	glow := sys.GlowAlpha()

	s.stops = append(s.stops[:0],
		render.Stop{Offset: 0.5, Color: cfg.Color.WithAlpha(glow * 2)},
		render.Stop{Offset: 1, Color: cfg.Color.WithAlpha(0)},
	)
	c.FillGlow(cur.X, cur.Y, r*2, s.stops)

	s.stops = append(s.stops[:0],
		render.Stop{Offset: 0, Color: cfg.Color.WithAlpha(glow)},
		render.Stop{Offset: 0.7, Color: cfg.Color.WithAlpha(glow * 0.3)},
		render.Stop{Offset: 1, Color: cfg.Color.WithAlpha(0)},
	)
	c.FillGlow(cur.X, cur.Y, r, s.stops)
	c.StrokeCircle(cur.X, cur.Y, r-cfg.RingWidth/2, cfg.RingWidth, cfg.Color.WithAlpha(1))
}
