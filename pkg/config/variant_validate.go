package config

import (
	"fmt"

	"github.com/decker502/nightsky/internal/particle"
)

// Validate 验证所有变体配置的有效性
func (f *VariantsFile) Validate() error {
	if len(f.Variants) == 0 {
		return fmt.Errorf("no variants defined")
	}
	seen := make(map[string]bool, len(f.Variants))
	for i := range f.Variants {
		v := &f.Variants[i]
		if v.Name == "" {
			return fmt.Errorf("variant %d: missing name", i)
		}
		if seen[v.Name] {
			return fmt.Errorf("duplicate variant %q", v.Name)
		}
		seen[v.Name] = true
		if err := v.Validate(); err != nil {
			return fmt.Errorf("variant %q: %w", v.Name, err)
		}
	}
	return nil
}

// Validate 验证单个变体
//
// 检查：
//   - 每个范围 min <= max
//   - 速度范围严格为正，透明度范围在 (0, 1]
//   - 固定数量或密度至少一个为正
//   - 生成概率在 [0, 1]
//   - 运动方式和渲染风格为已知名称
//   - 深度回收值严格小于焦距（避免透视除零）
func (v *VariantConfig) Validate() error {
	if len(v.Layers) == 0 && v.ShootingStars == nil && v.Cursor == nil {
		return fmt.Errorf("nothing to animate")
	}
	if err := validateStops("background gradient", v.Background.Gradient); err != nil {
		return err
	}
	for i := range v.Layers {
		if err := v.Layers[i].Validate(); err != nil {
			name := v.Layers[i].Name
			if name == "" {
				name = fmt.Sprintf("#%d", i)
			}
			return fmt.Errorf("layer %s: %w", name, err)
		}
	}
	if v.ShootingStars != nil {
		if err := v.ShootingStars.Validate(); err != nil {
			return fmt.Errorf("shootingStars: %w", err)
		}
	}
	if v.Cursor != nil {
		if err := v.Cursor.Validate(); err != nil {
			return fmt.Errorf("cursor: %w", err)
		}
	}
	return nil
}

// Validate checks a permanent layer.
func (l *LayerConfig) Validate() error {
	switch l.Motion {
	case MotionDepth:
		if !l.Depth.Valid() || l.Depth.Min < 0 {
			return fmt.Errorf("depth %v must be a non-negative range", l.Depth)
		}
		if l.MaxDepth <= 0 || l.MaxDepth >= FocalLength {
			return fmt.Errorf("maxDepth %v must be in (0, %v)", l.MaxDepth, FocalLength)
		}
		if l.Depth.Max > l.MaxDepth {
			return fmt.Errorf("depth %v exceeds maxDepth %v", l.Depth, l.MaxDepth)
		}
	case MotionFall:
	default:
		return fmt.Errorf("unknown motion %q", l.Motion)
	}

	switch l.Style {
	case StyleGlow, StyleDot:
	case StylePolygon:
		if l.Polygon.Sides < 3 {
			return fmt.Errorf("polygon needs at least 3 sides, got %d", l.Polygon.Sides)
		}
		if l.Polygon.Wobble != "" && l.Polygon.Wobble != WobbleSine && l.Polygon.Wobble != WobblePerlin {
			return fmt.Errorf("unknown wobble %q", l.Polygon.Wobble)
		}
	default:
		return fmt.Errorf("unknown style %q", l.Style)
	}

	if l.Count <= 0 && l.Density <= 0 {
		return fmt.Errorf("either count or density must be positive")
	}

	if err := positiveRange("size", l.Size); err != nil {
		return err
	}
	if err := positiveRange("speed", l.Speed); err != nil {
		return err
	}
	if err := opacityRange("opacity", l.Opacity); err != nil {
		return err
	}
	if !l.Rotation.Valid() {
		return fmt.Errorf("rotation %v: min > max", l.Rotation)
	}
	if !l.RotationSpeed.Valid() {
		return fmt.Errorf("rotationSpeed %v: min > max", l.RotationSpeed)
	}

	if t := l.Twinkle; t != nil {
		if !t.Rate.Valid() || t.Rate.Min <= 0 {
			return fmt.Errorf("twinkle rate %v must be positive", t.Rate)
		}
		if t.Amplitude < 0 {
			return fmt.Errorf("twinkle amplitude %v must be >= 0", t.Amplitude)
		}
		if t.Min <= 0 || t.Min > t.Max || t.Max > 1 {
			return fmt.Errorf("twinkle clamp [%v %v] must satisfy 0 < min <= max <= 1", t.Min, t.Max)
		}
	}

	if l.Glow.RadiusFactor < 0 || l.Core.RadiusFactor < 0 {
		return fmt.Errorf("radius factors must be >= 0")
	}
	if err := validateStops("glow", l.Glow.Stops); err != nil {
		return err
	}
	if l.Core.Color == nil && len(l.Palette) == 0 && l.Style != StylePolygon {
		return fmt.Errorf("core color or palette required")
	}
	if l.Glow.Tint && len(l.Palette) == 0 {
		return fmt.Errorf("glow tint requires a palette")
	}
	return nil
}

// Validate checks the shooting-star spawner.
func (s *ShootingStarConfig) Validate() error {
	if s.Probability < 0 || s.Probability > 1 {
		return fmt.Errorf("probability %v must be in [0, 1]", s.Probability)
	}
	if !s.StartX.Valid() || s.StartX.Min < 0 || s.StartX.Max > 1 {
		return fmt.Errorf("startX %v must be a fraction range", s.StartX)
	}
	if !s.StartY.Valid() || s.StartY.Min < 0 || s.StartY.Max > 1 {
		return fmt.Errorf("startY %v must be a fraction range", s.StartY)
	}
	if err := positiveRange("length", s.Length); err != nil {
		return err
	}
	if err := positiveRange("speed", s.Speed); err != nil {
		return err
	}
	if !s.Angle.Valid() {
		return fmt.Errorf("angle %v: min > max", s.Angle)
	}
	if s.Decay <= 0 {
		return fmt.Errorf("decay %v must be positive", s.Decay)
	}
	if s.Width <= 0 {
		return fmt.Errorf("width %v must be positive", s.Width)
	}
	return nil
}

// Validate checks the cursor overlay.
func (c *CursorConfig) Validate() error {
	if c.RingRadius <= 0 || c.RingWidth <= 0 {
		return fmt.Errorf("ring radius and width must be positive")
	}
	if c.Stiffness <= 0 || c.Mass <= 0 || c.Damping < 0 {
		return fmt.Errorf("spring needs positive stiffness and mass, non-negative damping")
	}
	if c.TrailTTL <= 0 {
		return fmt.Errorf("trailTTL %v must be positive", c.TrailTTL)
	}
	if c.TrailMinDistance < 0 || c.TrailMax < 0 {
		return fmt.Errorf("trailMinDistance and trailMax must be >= 0")
	}
	if c.TrailOpacity.IsZero() {
		return fmt.Errorf("trailOpacity curve required")
	}
	if c.TrailOpacity.Evaluate(0) <= 0 {
		return fmt.Errorf("trailOpacity must start above 0")
	}
	if c.HoverScale <= 0 {
		return fmt.Errorf("hoverScale %v must be positive", c.HoverScale)
	}
	return nil
}

func positiveRange(name string, r particle.Range) error {
	if !r.Valid() {
		return fmt.Errorf("%s %v: min > max", name, r)
	}
	if r.Min <= 0 {
		return fmt.Errorf("%s %v must be strictly positive", name, r)
	}
	return nil
}

func opacityRange(name string, r particle.Range) error {
	if !r.Valid() {
		return fmt.Errorf("%s %v: min > max", name, r)
	}
	if r.Min <= 0 || r.Max > 1 {
		return fmt.Errorf("%s %v must lie in (0, 1]", name, r)
	}
	return nil
}

func validateStops(name string, stops []GradientStop) error {
	last := -1.0
	for i, s := range stops {
		if s.Offset < 0 || s.Offset > 1 {
			return fmt.Errorf("%s stop %d offset %v outside [0, 1]", name, i, s.Offset)
		}
		if s.Offset < last {
			return fmt.Errorf("%s stops out of order at %d", name, i)
		}
		last = s.Offset
	}
	return nil
}
