package config

import (
	"math"

	"github.com/decker502/nightsky/internal/particle"
)

// Built-in variant names.
const (
	VariantStarfield = "starfield"
	VariantDeepSpace = "deepspace"
	VariantCursor    = "cursor"
)

// DefaultVariant 未指定时启动的变体
const DefaultVariant = VariantDeepSpace

// DefaultVariants returns the built-in variants. data/variants.yaml carries
// the same values in file form.
func DefaultVariants() *VariantsFile {
	return &VariantsFile{
		Variants: []VariantConfig{
			defaultStarfield(),
			defaultDeepSpace(),
			defaultCursor(),
		},
	}
}

func colorPtr(s string) *Color {
	c := MustColor(s)
	return &c
}

// defaultStarfield 简单星空：渐变夜空 + 下落闪烁的彩色星星 + 流星
func defaultStarfield() VariantConfig {
	return VariantConfig{
		Name: VariantStarfield,
		Background: BackgroundConfig{
			Gradient: []GradientStop{
				{Offset: 0, Color: MustColor("#0a0a1a")},
				{Offset: 0.5, Color: MustColor("#1a1a2e")},
				{Offset: 1, Color: MustColor("#16213e")},
			},
		},
		Layers: []LayerConfig{
			{
				Name:    "stars",
				Motion:  MotionFall,
				Style:   StyleDot,
				Count:   200,
				Size:    particle.Range{Min: 0.5, Max: 3.5},
				Speed:   particle.Range{Min: 0.1, Max: 0.4},
				Opacity: particle.Range{Min: 0.2, Max: 1.0},
				Twinkle: &TwinkleConfig{
					Rate:      particle.Range{Min: 10, Max: 30},
					Amplitude: 0.3,
					Min:       0.2,
					Max:       1.0,
				},
				Palette: []Color{
					MustColor("#ffffff"),
					MustColor("#b3d9ff"),
					MustColor("#ffffcc"),
					MustColor("#ffcccc"),
					MustColor("#ccffcc"),
				},
				Glow: GlowConfig{
					RadiusFactor: 3,
					Tint:         true,
					Stops: []GradientStop{
						{Offset: 0, Color: MustColor("rgba(255, 255, 255, 0.5)")},
						{Offset: 1, Color: MustColor("rgba(255, 255, 255, 0)")},
					},
				},
				Core: CoreConfig{RadiusFactor: 1},
			},
		},
		ShootingStars: &ShootingStarConfig{
			Probability: 0.003,
			StartX:      particle.Range{Min: 0, Max: 1},
			StartY:      particle.Range{Min: 0, Max: 0.5},
			Length:      particle.Range{Min: 20, Max: 100},
			Speed:       particle.Range{Min: 4, Max: 10},
			Angle:       particle.Range{Min: math.Pi / 4, Max: math.Pi / 2},
			Decay:       0.01,
			Width:       2,
			GlowWidth:   6,
			Color:       MustColor("#ffffff"),
		},
	}
}

// defaultDeepSpace 分层深空：透视飞近的蓝色星星 + 旋转的小行星
func defaultDeepSpace() VariantConfig {
	return VariantConfig{
		Name: VariantDeepSpace,
		Background: BackgroundConfig{
			Solid: colorPtr("#05060f"),
		},
		Layers: []LayerConfig{
			{
				Name:     "stars",
				Motion:   MotionDepth,
				Style:    StyleGlow,
				Density:  8000,
				Depth:    particle.Range{Min: 0, Max: 999},
				MaxDepth: 999,
				Size:     particle.Range{Min: 0.5, Max: 2.5},
				Speed:    particle.Range{Min: 0.1, Max: 0.6},
				Opacity:  particle.Range{Min: 0.2, Max: 1.0},
				Twinkle: &TwinkleConfig{
					Rate:      particle.Range{Min: 10, Max: 30},
					Amplitude: 0.3,
					Min:       0.1,
					Max:       1.0,
				},
				Glow: GlowConfig{
					RadiusFactor: 3,
					Stops: []GradientStop{
						{Offset: 0, Color: MustColor("rgba(147, 197, 253, 1)")},
						{Offset: 0.3, Color: MustColor("rgba(96, 165, 250, 0.6)")},
						{Offset: 1, Color: MustColor("rgba(59, 130, 246, 0)")},
					},
				},
				Core: CoreConfig{RadiusFactor: 0.5, Color: colorPtr("#ffffff")},
			},
			{
				Name:          "asteroids",
				Motion:        MotionDepth,
				Style:         StylePolygon,
				Density:       50000,
				Depth:         particle.Range{Min: 500, Max: 999},
				MaxDepth:      999,
				Size:          particle.Range{Min: 1, Max: 4},
				Speed:         particle.Range{Min: 0.05, Max: 0.35},
				Opacity:       particle.Range{Min: 0.1, Max: 0.5},
				Rotation:      particle.Range{Min: 0, Max: 2 * math.Pi},
				RotationSpeed: particle.Range{Min: -0.01, Max: 0.01},
				Glow: GlowConfig{
					RadiusFactor: 2,
					Stops: []GradientStop{
						{Offset: 0, Color: MustColor("rgba(168, 85, 247, 0.3)")},
						{Offset: 1, Color: MustColor("rgba(168, 85, 247, 0)")},
					},
				},
				Polygon: PolygonConfig{
					Sides:     6,
					Base:      0.7,
					Amplitude: 0.3,
					Frequency: 3,
					TimeScale: 1,
					Wobble:    WobbleSine,
					Fill:      colorPtr("rgba(156, 163, 175, 1)"),
				},
			},
		},
	}
}

// defaultCursor 光标叠加层：弹簧跟随的圆环 + 渐隐扩散的轨迹点
func defaultCursor() VariantConfig {
	return VariantConfig{
		Name: VariantCursor,
		Cursor: &CursorConfig{
			RingRadius:       10,
			RingWidth:        2,
			Color:            MustColor("#00f8e1"),
			Stiffness:        500,
			Damping:          28,
			Mass:             0.5,
			GlowAlpha:        0.2,
			HoverGlowAlpha:   0.3,
			HoverScale:       1.5,
			TrailTTL:         0.6,
			TrailMinDistance: 4,
			TrailMax:         64,
			TrailRadius:      16,
			TrailOpacity: particle.Curve{
				Keyframes: []particle.Keyframe{{Time: 0, Value: 0.8}, {Time: 1, Value: 0}},
			},
			TrailScale: particle.Curve{
				Keyframes:     []particle.Keyframe{{Time: 0, Value: 0}, {Time: 1, Value: 2}},
				Interpolation: particle.InterpEaseOut,
			},
		},
	}
}
