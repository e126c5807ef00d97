// Package particle provides the value syntax used by sky variant
// configurations: fixed values, "[min max]" ranges sampled from a seeded
// generator, and keyframe curves evaluated over a particle's lifetime.
package particle

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/decker502/nightsky/pkg/utils"
)

// Keyframe represents a single keyframe in an animation curve.
type Keyframe struct {
	Time  float64 // Normalized time (0-1)
	Value float64 // Value at this keyframe
}

// Range is a closed interval that particle attributes are sampled from.
type Range struct {
	Min float64
	Max float64
}

// Fixed returns a range holding a single value.
func Fixed(v float64) Range {
	return Range{Min: v, Max: v}
}

// ParseRange parses a range string.
// Supports:
//   - Fixed value: "1500" → [1500 1500]
//   - Range: "[0.7 0.9]" → [0.7 0.9]
//   - Single bracketed value: "[3]" → [3 3]
//   - Multiples of pi: "[0 2pi]", "pi/4"
func ParseRange(s string) (Range, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Range{}, fmt.Errorf("empty range")
	}

	if strings.HasPrefix(s, "[") || strings.HasSuffix(s, "]") {
		if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
			return Range{}, fmt.Errorf("unbalanced brackets in range %q", s)
		}
		parts := strings.Fields(s[1 : len(s)-1])
		switch len(parts) {
		case 1:
			v, err := parseNumber(parts[0])
			if err != nil {
				return Range{}, fmt.Errorf("range %q: %w", s, err)
			}
			return Fixed(v), nil
		case 2:
			lo, err := parseNumber(parts[0])
			if err != nil {
				return Range{}, fmt.Errorf("range %q: %w", s, err)
			}
			hi, err := parseNumber(parts[1])
			if err != nil {
				return Range{}, fmt.Errorf("range %q: %w", s, err)
			}
			return Range{Min: lo, Max: hi}, nil
		default:
			return Range{}, fmt.Errorf("range %q must hold one or two values", s)
		}
	}

	v, err := parseNumber(s)
	if err != nil {
		return Range{}, err
	}
	return Fixed(v), nil
}

// parseNumber 解析数字，支持 "pi" 倍数写法（"2pi", "pi/4", "-pi"）
func parseNumber(s string) (float64, error) {
	if !strings.Contains(s, "pi") {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid number %q", s)
		}
		return v, nil
	}

	num, den := s, ""
	if i := strings.Index(s, "/"); i >= 0 {
		num, den = s[:i], s[i+1:]
	}

	coef := strings.TrimSuffix(num, "pi")
	factor := 1.0
	switch coef {
	case "":
	case "-":
		factor = -1
	default:
		v, err := strconv.ParseFloat(coef, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid number %q", s)
		}
		factor = v
	}

	value := factor * math.Pi
	if den != "" {
		d, err := strconv.ParseFloat(den, 64)
		if err != nil || d == 0 {
			return 0, fmt.Errorf("invalid divisor in %q", s)
		}
		value /= d
	}
	return value, nil
}

// Sample returns a uniformly distributed value in [Min, Max).
// A degenerate range returns Min without consuming randomness.
func (r Range) Sample(rng *rand.Rand) float64 {
	if r.Min >= r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Contains reports whether v lies inside the closed interval.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Valid reports whether Min <= Max.
func (r Range) Valid() bool {
	return r.Min <= r.Max
}

func (r Range) String() string {
	if r.Min == r.Max {
		return strconv.FormatFloat(r.Min, 'g', -1, 64)
	}
	return "[" + strconv.FormatFloat(r.Min, 'g', -1, 64) + " " + strconv.FormatFloat(r.Max, 'g', -1, 64) + "]"
}

// Interpolation keywords understood by curves.
const (
	InterpLinear        = "Linear"
	InterpEaseIn        = "EaseIn"
	InterpEaseOut       = "EaseOut"
	InterpFastInOutWeak = "FastInOutWeak"
)

// Curve is a keyframe curve over normalized time.
type Curve struct {
	Keyframes     []Keyframe
	Interpolation string
}

// ParseCurve parses a keyframe curve.
// Format: "time,value time,value ... [Interpolation]", e.g. "0,0.8 1,0 EaseOut".
// A bare number yields a constant curve.
func ParseCurve(s string) (Curve, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Curve{}, fmt.Errorf("empty curve")
	}

	var c Curve
	for _, part := range strings.Fields(s) {
		switch part {
		case InterpLinear, InterpEaseIn, InterpEaseOut, InterpFastInOutWeak:
			c.Interpolation = part
			continue
		}

		if !strings.Contains(part, ",") {
			v, err := strconv.ParseFloat(part, 64)
			if err != nil {
				return Curve{}, fmt.Errorf("curve %q: invalid value %q", s, part)
			}
			c.Keyframes = append(c.Keyframes, Keyframe{Time: 0, Value: v})
			continue
		}

		pair := strings.Split(part, ",")
		if len(pair) != 2 {
			return Curve{}, fmt.Errorf("curve %q: invalid keyframe %q", s, part)
		}
		tm, err1 := strconv.ParseFloat(pair[0], 64)
		val, err2 := strconv.ParseFloat(pair[1], 64)
		if err1 != nil || err2 != nil {
			return Curve{}, fmt.Errorf("curve %q: invalid keyframe %q", s, part)
		}
		// 时间 > 1 视为百分比
		if tm > 1 {
			tm /= 100
		}
		if n := len(c.Keyframes); n > 0 && tm < c.Keyframes[n-1].Time {
			return Curve{}, fmt.Errorf("curve %q: keyframes out of order", s)
		}
		c.Keyframes = append(c.Keyframes, Keyframe{Time: tm, Value: val})
	}

	if len(c.Keyframes) == 0 {
		return Curve{}, fmt.Errorf("curve %q has no keyframes", s)
	}
	return c, nil
}

// Evaluate returns the curve value at normalized time t.
func (c Curve) Evaluate(t float64) float64 {
	return EvaluateKeyframes(c.Keyframes, t, c.Interpolation)
}

// IsZero reports whether the curve has no keyframes.
func (c Curve) IsZero() bool {
	return len(c.Keyframes) == 0
}

func (c Curve) String() string {
	parts := make([]string, 0, len(c.Keyframes)+1)
	for _, k := range c.Keyframes {
		parts = append(parts, strconv.FormatFloat(k.Time, 'g', -1, 64)+","+strconv.FormatFloat(k.Value, 'g', -1, 64))
	}
	if c.Interpolation != "" {
		parts = append(parts, c.Interpolation)
	}
	return strings.Join(parts, " ")
}

// EvaluateKeyframes calculates the interpolated value at time t (0-1)
// using the provided keyframes and interpolation mode.
//
// Parameters:
//   - keyframes: Array of keyframes (must be sorted by Time)
//   - t: Normalized time (0-1)
//   - interpolation: Interpolation mode ("Linear", "EaseIn", etc.)
func EvaluateKeyframes(keyframes []Keyframe, t float64, interpolation string) float64 {
	if len(keyframes) == 0 {
		return 0
	}
	if len(keyframes) == 1 {
		return keyframes[0].Value
	}

	t = utils.Clamp(t, 0, 1)

	if t < keyframes[0].Time {
		return keyframes[0].Value
	}

	for i := 0; i < len(keyframes)-1; i++ {
		k0 := keyframes[i]
		k1 := keyframes[i+1]

		if t >= k0.Time && t <= k1.Time {
			duration := k1.Time - k0.Time
			if duration <= 0 {
				return k0.Value
			}
			ratio := (t - k0.Time) / duration

			switch interpolation {
			case InterpEaseIn:
				ratio = utils.EaseInQuad(ratio)
			case InterpEaseOut:
				ratio = utils.EaseOutQuad(ratio)
			case InterpFastInOutWeak:
				ratio = utils.SmoothStep(ratio)
			}
			return utils.Lerp(k0.Value, k1.Value, ratio)
		}
	}

	// t 超出最后一个关键帧
	return keyframes[len(keyframes)-1].Value
}
