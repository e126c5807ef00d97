package systems

import (
	"math"

	"github.com/charmbracelet/harmonica"

	"github.com/decker502/nightsky/pkg/components"
	"github.com/decker502/nightsky/pkg/config"
	"github.com/decker502/nightsky/pkg/store"
)

// CursorSystem drives the cursor overlay: a ring following the pointer
// through a damped spring and a trail of fading points left behind it.
//
// 指针事件只记录目标位置；弹簧积分、轨迹点生成和衰减都在 Update 中完成，
// 保证粒子池只在 tick 内被修改。
type CursorSystem struct {
	store  *store.Store
	cfg    *config.CursorConfig
	cursor components.Cursor

	// spring 按最近一次的 dt 缓存，dt 变化时重建
	spring   harmonica.Spring
	springDT float64
}

// NewCursorSystem creates the cursor overlay for cfg.
func NewCursorSystem(st *store.Store, cfg *config.CursorConfig) *CursorSystem {
	return &CursorSystem{
		store:  st,
		cfg:    cfg,
		cursor: components.Cursor{Scale: 1},
	}
}

// springFor returns the spring coefficients for a step of dt seconds.
func (s *CursorSystem) springFor(dt float64) harmonica.Spring {
	if dt != s.springDT {
		s.spring = harmonica.NewSpring(dt, s.cfg.AngularFrequency(), s.cfg.DampingRatio())
		s.springDT = dt
	}
	return s.spring
}

// Cursor returns the current cursor state for rendering.
func (s *CursorSystem) Cursor() *components.Cursor {
	return &s.cursor
}

// PointerMove records a new pointer position. The first move after the
// pointer entered snaps the ring to the pointer.
func (s *CursorSystem) PointerMove(x, y float64) {
	c := &s.cursor
	c.Visible = true
	if !c.Placed {
		c.Placed = true
		c.X, c.Y = x, y
		c.VX, c.VY = 0, 0
	}
	c.TargetX, c.TargetY = x, y
}

// PointerPresence toggles cursor visibility on enter/leave. Trail points
// already spawned keep fading after leave.
func (s *CursorSystem) PointerPresence(inside bool) {
	s.cursor.Visible = inside
	if !inside {
		s.cursor.Placed = false
		s.cursor.HasTrail = false
	}
}

// Update runs one tick of dt seconds.
func (s *CursorSystem) Update(dt float64) {
	c := &s.cursor

	s.updateTrail(dt)

	if !c.Visible || !c.Placed {
		return
	}

	c.Hovering = s.hovering(c.TargetX, c.TargetY)
	targetScale := 1.0
	if c.Hovering {
		targetScale = s.cfg.HoverScale
	}

	if dt > 0 {
		sp := s.springFor(dt)
		c.X, c.VX = sp.Update(c.X, c.VX, c.TargetX)
		c.Y, c.VY = sp.Update(c.Y, c.VY, c.TargetY)
		c.Scale, c.VScale = sp.Update(c.Scale, c.VScale, targetScale)
	}

	if !c.HasTrail || math.Hypot(c.TargetX-c.LastTrailX, c.TargetY-c.LastTrailY) > s.cfg.TrailMinDistance {
		s.spawnTrail(c.TargetX, c.TargetY)
		c.LastTrailX, c.LastTrailY = c.TargetX, c.TargetY
		c.HasTrail = true
	}
}

// GlowAlpha returns the ring glow alpha for the current hover state.
func (s *CursorSystem) GlowAlpha() float64 {
	if s.cursor.Hovering {
		return s.cfg.HoverGlowAlpha
	}
	return s.cfg.GlowAlpha
}

func (s *CursorSystem) hovering(x, y float64) bool {
	for _, r := range s.cfg.Hotspots {
		if r.Contains(x, y) {
			return true
		}
	}
	return false
}

// updateTrail 轨迹点按年龄推进透明度和缩放曲线，到达寿命后透明度归零等待清理
func (s *CursorSystem) updateTrail(dt float64) {
	transient := s.store.Transient()
	for i := range transient {
		p := &transient[i]
		if p.Kind != components.KindTrail {
			continue
		}
		p.Age += dt
		if p.Age >= p.TTL {
			p.Opacity = 0
			continue
		}
		t := p.Age / p.TTL
		p.Opacity = s.cfg.TrailOpacity.Evaluate(t)
		p.Scale = s.cfg.TrailScale.Evaluate(t)
	}
}

func (s *CursorSystem) spawnTrail(x, y float64) {
	if s.cfg.TrailMax > 0 {
		s.dropOldestTrail()
	}
	scale := 1.0
	if !s.cfg.TrailScale.IsZero() {
		scale = s.cfg.TrailScale.Evaluate(0)
	}
	s.store.Spawn(components.Particle{
		Kind:        components.KindTrail,
		X:           x,
		Y:           y,
		Size:        s.cfg.TrailRadius,
		Opacity:     s.cfg.TrailOpacity.Evaluate(0),
		BaseOpacity: s.cfg.TrailOpacity.Evaluate(0),
		TTL:         s.cfg.TrailTTL,
		Scale:       scale,
	})
}

// dropOldestTrail 轨迹点达到上限时，将最旧的存活点标记为死亡
func (s *CursorSystem) dropOldestTrail() {
	transient := s.store.Transient()
	live := 0
	oldest := -1
	for i := range transient {
		if transient[i].Kind != components.KindTrail || !transient[i].Alive() {
			continue
		}
		if oldest < 0 {
			oldest = i
		}
		live++
	}
	if live >= s.cfg.TrailMax && oldest >= 0 {
		transient[oldest].Opacity = 0
	}
}
