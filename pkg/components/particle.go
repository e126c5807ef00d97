package components

// Kind identifies which update and render rules apply to a particle.
type Kind uint8

const (
	KindStar Kind = iota
	KindAsteroid
	KindShootingStar
	KindTrail
)

func (k Kind) String() string {
	switch k {
	case KindStar:
		return "star"
	case KindAsteroid:
		return "asteroid"
	case KindShootingStar:
		return "shooting-star"
	case KindTrail:
		return "trail"
	default:
		return "unknown"
	}
}

// Particle is the single record type shared by every sky variant.
// Optional attributes stay zero when a variant does not use them.
//
// Projected position and perspective-scaled size are derived at render
// time and never stored here.
//
// This is a pure data component - it contains no update logic.
type Particle struct {
	Kind  Kind
	Layer int // index of the owning layer in the variant config

	// Position (屏幕坐标；Z 为深度，仅透视变体使用)
	X, Y, Z float64

	Size  float64 // 基础半径（像素）
	Speed float64 // 每 tick 移动量，生命周期内不变

	// Heading 和 Length 仅用于流星
	Heading float64 // 弧度
	Length  float64

	// Opacity (透明度, 0-1)
	Opacity      float64
	BaseOpacity  float64 // 闪烁的中心值
	TwinkleRate  float64 // 弧度/秒，0 表示不闪烁
	TwinklePhase float64

	// Rotation (弧度)，仅小行星使用
	Rotation      float64
	RotationSpeed float64 // 弧度/tick

	Color int // 调色板索引

	// Lifecycle (秒)，仅光标轨迹点使用
	Age   float64
	TTL   float64
	Scale float64
}

// Alive reports whether the particle still satisfies opacity > 0.
func (p *Particle) Alive() bool {
	return p.Opacity > 0
}

// Twinkles reports whether the particle's opacity is time-modulated.
func (p *Particle) Twinkles() bool {
	return p.TwinkleRate != 0
}
