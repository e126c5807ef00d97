package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/decker502/nightsky/internal/particle"
	"github.com/decker502/nightsky/pkg/components"
)

// FocalLength 透视投影的焦距：scale = F / (F - z)
const FocalLength = 1000.0

// ErrUnknownVariant is returned when a variant name is not configured.
var ErrUnknownVariant = errors.New("unknown variant")

// Motion rules for permanent layers.
const (
	MotionDepth = "depth" // z 递减，透视投影
	MotionFall  = "fall"  // y 递增，越界后回到顶部
)

// Render styles for permanent layers.
const (
	StyleGlow    = "glow"    // 径向渐变光晕 + 实心核心
	StyleDot     = "dot"     // 调色板颜色实心圆 + 同色光晕
	StylePolygon = "polygon" // 旋转的抖动多边形（小行星）
)

// Wobble functions for polygon outlines.
const (
	WobbleSine   = "sine"
	WobblePerlin = "perlin"
)

// VariantsFile 变体配置文件的根结构
//
// 配置文件位置: data/variants.yaml
type VariantsFile struct {
	Variants []VariantConfig `yaml:"variants"`
}

// VariantConfig describes one complete sky: background, permanent layers,
// and the optional transient sources.
type VariantConfig struct {
	Name       string           `yaml:"name"`
	Background BackgroundConfig `yaml:"background"`
	Layers     []LayerConfig    `yaml:"layers,omitempty"`

	ShootingStars *ShootingStarConfig `yaml:"shootingStars,omitempty"`
	Cursor        *CursorConfig       `yaml:"cursor,omitempty"`
}

// BackgroundConfig 背景：纯色、竖直渐变或透明（两者都为空）
type BackgroundConfig struct {
	Solid    *Color         `yaml:"solid,omitempty"`
	Gradient []GradientStop `yaml:"gradient,omitempty"`
}

// Transparent reports whether the background is left unpainted.
func (b BackgroundConfig) Transparent() bool {
	return b.Solid == nil && len(b.Gradient) == 0
}

// GradientStop 渐变色标
// 在光晕中使用时，Color 的 alpha 会再乘以粒子的透明度
type GradientStop struct {
	Offset float64 `yaml:"offset"`
	Color  Color   `yaml:"color"`
}

// LayerConfig describes one permanent population.
type LayerConfig struct {
	Name   string `yaml:"name"`
	Motion string `yaml:"motion"`
	Style  string `yaml:"style"`

	// 种群规模：Count > 0 时固定数量，否则 floor(面积 / Density)
	Density float64 `yaml:"density,omitempty"`
	Count   int     `yaml:"count,omitempty"`

	// 深度（仅 depth 运动）
	Depth    particle.Range `yaml:"depth,omitempty"`
	MaxDepth float64        `yaml:"maxDepth,omitempty"`

	Size    particle.Range `yaml:"size"`
	Speed   particle.Range `yaml:"speed"`
	Opacity particle.Range `yaml:"opacity"`

	Twinkle *TwinkleConfig `yaml:"twinkle,omitempty"`

	Rotation      particle.Range `yaml:"rotation,omitempty"`
	RotationSpeed particle.Range `yaml:"rotationSpeed,omitempty"`

	Palette []Color `yaml:"palette,omitempty"`

	Glow    GlowConfig    `yaml:"glow"`
	Core    CoreConfig    `yaml:"core"`
	Polygon PolygonConfig `yaml:"polygon,omitempty"`
}

// TwinkleConfig opacity = clamp(base + sin(t*rate + phase) * amplitude, min, max)
type TwinkleConfig struct {
	Rate      particle.Range `yaml:"rate"` // 弧度/秒
	Amplitude float64        `yaml:"amplitude"`
	Min       float64        `yaml:"min"`
	Max       float64        `yaml:"max"`
}

// GlowConfig 光晕：半径 = size * RadiusFactor
type GlowConfig struct {
	RadiusFactor float64        `yaml:"radiusFactor"`
	Stops        []GradientStop `yaml:"stops,omitempty"`
	Tint         bool           `yaml:"tint,omitempty"` // 使用粒子调色板颜色替换色标 RGB
}

// CoreConfig 实心核心：半径 = size * RadiusFactor
type CoreConfig struct {
	RadiusFactor float64 `yaml:"radiusFactor"`
	Color        *Color  `yaml:"color,omitempty"` // 为空时使用调色板颜色
}

// PolygonConfig 小行星多边形：半径 = size * (Base + wobble * Amplitude)
type PolygonConfig struct {
	Sides     int     `yaml:"sides,omitempty"`
	Base      float64 `yaml:"base,omitempty"`
	Amplitude float64 `yaml:"amplitude,omitempty"`
	Frequency float64 `yaml:"frequency,omitempty"` // 每圈的波数
	TimeScale float64 `yaml:"timeScale,omitempty"` // 弧度/秒
	Wobble    string  `yaml:"wobble,omitempty"`
	Fill      *Color  `yaml:"fill,omitempty"`
}

// ShootingStarConfig 流星生成参数
type ShootingStarConfig struct {
	Probability float64        `yaml:"probability"` // 每 tick 生成概率
	StartX      particle.Range `yaml:"startX"`      // 视口宽度的比例
	StartY      particle.Range `yaml:"startY"`      // 视口高度的比例
	Length      particle.Range `yaml:"length"`
	Speed       particle.Range `yaml:"speed"`
	Angle       particle.Range `yaml:"angle"` // 弧度，0 向右，π/2 向下
	Decay       float64        `yaml:"decay"` // 每 tick 透明度减少量
	Width       float64        `yaml:"width"`
	GlowWidth   float64        `yaml:"glowWidth"`
	Color       Color          `yaml:"color"`
}

// CursorConfig 光标叠加层参数
type CursorConfig struct {
	RingRadius float64 `yaml:"ringRadius"`
	RingWidth  float64 `yaml:"ringWidth"`
	Color      Color   `yaml:"color"`

	// 弹簧参数（刚度、阻尼、质量）
	Stiffness float64 `yaml:"stiffness"`
	Damping   float64 `yaml:"damping"`
	Mass      float64 `yaml:"mass"`

	GlowAlpha      float64 `yaml:"glowAlpha"`
	HoverGlowAlpha float64 `yaml:"hoverGlowAlpha"`
	HoverScale     float64 `yaml:"hoverScale"`
	Hotspots       []Rect  `yaml:"hotspots,omitempty"`

	TrailTTL         float64        `yaml:"trailTTL"` // 秒
	TrailMinDistance float64        `yaml:"trailMinDistance"`
	TrailMax         int            `yaml:"trailMax"`
	TrailRadius      float64        `yaml:"trailRadius"`
	TrailOpacity     particle.Curve `yaml:"trailOpacity"`
	TrailScale       particle.Curve `yaml:"trailScale"`
}

// AngularFrequency returns sqrt(k/m) for the spring.
func (c *CursorConfig) AngularFrequency() float64 {
	return math.Sqrt(c.Stiffness / c.Mass)
}

// DampingRatio returns c / (2*sqrt(k*m)).
func (c *CursorConfig) DampingRatio() float64 {
	return c.Damping / (2 * math.Sqrt(c.Stiffness*c.Mass))
}

// Rect 轴对齐矩形（悬停热区）
type Rect struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// PopulationFor returns the permanent population of the layer for bounds b:
// the fixed Count when set, otherwise floor(area / Density).
// Empty bounds always yield zero.
func (l *LayerConfig) PopulationFor(b components.Bounds) int {
	if b.Empty() {
		return 0
	}
	if l.Count > 0 {
		return l.Count
	}
	if l.Density <= 0 {
		return 0
	}
	return int(math.Floor(b.Area() / l.Density))
}

// LoadVariants 从文件加载变体配置
//
// 参数:
//   - path: 配置文件路径（如 "data/variants.yaml"）
//
// 返回:
//   - *VariantsFile: 校验通过的配置
//   - error: 读取、解析或校验失败时返回错误
func LoadVariants(path string) (*VariantsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read variants config: %w", err)
	}
	return ParseVariants(data)
}

// ParseVariants parses and validates a variants document.
func ParseVariants(data []byte) (*VariantsFile, error) {
	var file VariantsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse variants config: %w", err)
	}
	if err := file.Validate(); err != nil {
		return nil, fmt.Errorf("invalid variants config: %w", err)
	}
	return &file, nil
}

// Find returns the variant with the given name.
func (f *VariantsFile) Find(name string) (*VariantConfig, error) {
	for i := range f.Variants {
		if f.Variants[i].Name == name {
			return &f.Variants[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, name)
}

// Names lists the configured variant names in file order.
func (f *VariantsFile) Names() []string {
	names := make([]string, 0, len(f.Variants))
	for _, v := range f.Variants {
		names = append(names, v.Name)
	}
	return names
}

// Next returns the name following current, wrapping around.
func (f *VariantsFile) Next(current string) string {
	if len(f.Variants) == 0 {
		return ""
	}
	for i, v := range f.Variants {
		if v.Name == current {
			return f.Variants[(i+1)%len(f.Variants)].Name
		}
	}
	return f.Variants[0].Name
}
