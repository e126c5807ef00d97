package config

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Color is a non-premultiplied RGBA color that unmarshals from
// "#rrggbb", "#rgb", "#rrggbbaa" or "rgba(r, g, b, a)".
type Color color.NRGBA

// ParseColor parses one of the supported color notations.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		return parseRGBA(s[len("rgba(") : len(s)-1])
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseRGBA(s[len("rgb("):len(s)-1] + ",1")
	case strings.HasPrefix(s, "#") && len(s) == 9:
		c, err := colorful.Hex(s[:7])
		if err != nil {
			return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid alpha in color %q", s)
		}
		r, g, b := c.RGB255()
		return Color{R: r, G: g, B: b, A: uint8(a)}, nil
	case strings.HasPrefix(s, "#"):
		c, err := colorful.Hex(s)
		if err != nil {
			return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		r, g, b := c.RGB255()
		return Color{R: r, G: g, B: b, A: 255}, nil
	default:
		return Color{}, fmt.Errorf("invalid color %q", s)
	}
}

func parseRGBA(body string) (Color, error) {
	parts := strings.Split(body, ",")
	if len(parts) != 4 {
		return Color{}, fmt.Errorf("invalid rgba(%s): want 4 components", body)
	}
	var ch [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || v < 0 || v > 255 {
			return Color{}, fmt.Errorf("invalid rgba(%s): channel %d", body, i)
		}
		ch[i] = uint8(v)
	}
	a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
	if err != nil || a < 0 || a > 1 {
		return Color{}, fmt.Errorf("invalid rgba(%s): alpha", body)
	}
	return Color{R: ch[0], G: ch[1], B: ch[2], A: uint8(math.Round(a * 255))}, nil
}

// MustColor parses s and panics on error. Only for built-in defaults.
func MustColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

// NRGBA returns the color as a standard library value.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA(c)
}

// WithAlpha returns the color with its alpha multiplied by f (clamped to [0,1]).
func (c Color) WithAlpha(f float64) color.NRGBA {
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	out := color.NRGBA(c)
	out.A = uint8(math.Round(float64(c.A) * f))
	return out
}

// Alpha returns the alpha channel in [0,1].
func (c Color) Alpha() float64 {
	return float64(c.A) / 255
}

func (c Color) String() string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: color must be a string", node.Line)
	}
	parsed, err := ParseColor(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*c = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (c Color) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

// Lerp blends two colors in RGB space, including alpha.
func Lerp(a, b color.NRGBA, t float64) color.NRGBA {
	ca := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
	cb := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
	r, g, bl := ca.BlendRgb(cb, t).Clamped().RGB255()
	alpha := float64(a.A) + (float64(b.A)-float64(a.A))*t
	return color.NRGBA{R: r, G: g, B: bl, A: uint8(math.Round(alpha))}
}
