package systems

import (
	"math"
	"slices"
	"testing"

	"github.com/decker502/nightsky/pkg/components"
	"github.com/decker502/nightsky/pkg/config"
	"github.com/decker502/nightsky/pkg/render"
)

func TestProject(t *testing.T) {
	tests := []struct {
		name      string
		x, y, z   float64
		wantScale float64
	}{
		{"at viewer plane", 100, 50, 0, 1},
		{"half depth", 100, 50, 500, 2},
		{"max depth", 1, 1, 999, 1000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sx, sy, scale := Project(tt.x, tt.y, tt.z)
			if math.Abs(scale-tt.wantScale) > 1e-9 {
				t.Errorf("scale = %v, want %v", scale, tt.wantScale)
			}
			if math.Abs(sx-tt.x*tt.wantScale) > 1e-6 || math.Abs(sy-tt.y*tt.wantScale) > 1e-6 {
				t.Errorf("projected (%v,%v), want (%v,%v)", sx, sy, tt.x*tt.wantScale, tt.y*tt.wantScale)
			}
		})
	}
}

// TestRenderSystem_DoesNotMutate 渲染是纯函数：不修改任何粒子
func TestRenderSystem_DoesNotMutate(t *testing.T) {
	rng := newRand()
	st, v := buildVariant(t, config.VariantDeepSpace, 1280, 720, rng)
	st.Spawn(components.Particle{Kind: components.KindShootingStar, X: 10, Y: 10, Length: 30, Opacity: 0.5})

	permanent := slices.Clone(st.Permanent())
	transient := slices.Clone(st.Transient())

	rs := NewRenderSystem(st, v, 1)
	rs.Draw(render.NewRecorder(1280, 720), 3.5, nil)

	if !slices.Equal(permanent, st.Permanent()) {
		t.Error("Draw mutated the permanent population")
	}
	if !slices.Equal(transient, st.Transient()) {
		t.Error("Draw mutated the transient pool")
	}
}

// TestRenderSystem_Order 背景 → 永久粒子 → 瞬态粒子
func TestRenderSystem_Order(t *testing.T) {
	rng := newRand()
	st, v := buildVariant(t, config.VariantStarfield, 800, 600, rng)
	st.Spawn(components.Particle{Kind: components.KindShootingStar, X: 100, Y: 100, Heading: 1, Length: 40, Opacity: 1})

	rec := render.NewRecorder(800, 600)
	NewRenderSystem(st, v, 1).Draw(rec, 0, nil)

	kinds := rec.Kinds()
	if kinds[0] != render.OpClear || kinds[1] != render.OpGradient {
		t.Fatalf("frame should start with clear + gradient, got %v", kinds[:2])
	}
	if kinds[len(kinds)-1] != render.OpFlush {
		t.Errorf("frame should end with flush, got %v", kinds[len(kinds)-1])
	}

	firstLine := slices.Index(kinds, render.OpLine)
	lastCircle := -1
	for i, k := range kinds {
		if k == render.OpCircle {
			lastCircle = i
		}
	}
	if firstLine < 0 {
		t.Fatal("shooting star not drawn")
	}
	if lastCircle > firstLine {
		t.Errorf("permanent star drawn at %d after the shooting star at %d", lastCircle, firstLine)
	}

	// 流星：光晕线 + 实线
	if got := rec.Count(render.OpLine); got != 2 {
		t.Errorf("line ops = %d, want 2", got)
	}
}

func TestRenderSystem_Backgrounds(t *testing.T) {
	tests := []struct {
		variant string
		want    render.OpKind
	}{
		{config.VariantStarfield, render.OpGradient},
		{config.VariantDeepSpace, render.OpFill},
	}
	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			st, v := buildVariant(t, tt.variant, 640, 480, newRand())
			rec := render.NewRecorder(640, 480)
			NewRenderSystem(st, v, 1).Draw(rec, 0, nil)
			if rec.Ops[1].Kind != tt.want {
				t.Errorf("background op = %v, want %v", rec.Ops[1].Kind, tt.want)
			}
		})
	}

	t.Run("cursor is transparent", func(t *testing.T) {
		st, v := buildVariant(t, config.VariantCursor, 640, 480, newRand())
		rec := render.NewRecorder(640, 480)
		NewRenderSystem(st, v, 1).Draw(rec, 0, nil)
		if rec.Count(render.OpFill) != 0 || rec.Count(render.OpGradient) != 0 {
			t.Errorf("transparent background painted: %v", rec.Kinds())
		}
	})
}

// TestRenderSystem_RecycledNeverOutOfBounds 回收的粒子在同一 tick 不会画到视口外
func TestRenderSystem_RecycledNeverOutOfBounds(t *testing.T) {
	rng := newRand()
	st, v := buildVariant(t, config.VariantDeepSpace, 1920, 1080, rng)
	for i := range st.Layer(0) {
		st.Layer(0)[i].Z = 0.0001
	}
	NewMotionSystem(st, v.Layers, rng).Update(0)

	rec := render.NewRecorder(1920, 1080)
	NewRenderSystem(st, v, 1).Draw(rec, 0, nil)

	for i, op := range rec.Ops {
		if op.Kind != render.OpGlow && op.Kind != render.OpCircle {
			continue
		}
		if !Visible(components.Bounds{Width: 1920, Height: 1080}, op.X, op.Y, op.R) {
			t.Fatalf("op %d (%v) at (%v,%v) r=%v lies outside the viewport", i, op.Kind, op.X, op.Y, op.R)
		}
	}
}

func TestRenderSystem_DeepSpaceStar(t *testing.T) {
	st, v := buildVariant(t, config.VariantDeepSpace, 800, 600, newRand())
	// 只保留一颗星，放在透视比例为 2 的深度
	for i := range st.Permanent() {
		st.Permanent()[i].Opacity = 0
	}
	p := &st.Layer(0)[0]
	p.X, p.Y, p.Z = 100, 100, 500
	p.Size = 2
	p.Opacity = 0.5

	rec := render.NewRecorder(800, 600)
	NewRenderSystem(st, v, 1).Draw(rec, 0, nil)

	if rec.Count(render.OpGlow) != 1 || rec.Count(render.OpCircle) != 1 {
		t.Fatalf("ops = %v, want one glow and one core", rec.Kinds())
	}
	glow := rec.Ops[2]
	if glow.X != 200 || glow.Y != 200 || glow.R != 12 {
		t.Errorf("glow at (%v,%v) r=%v, want (200,200) r=12", glow.X, glow.Y, glow.R)
	}
	// 色标透明度乘以粒子透明度
	if glow.Stops[0].Color.A != 128 || glow.Stops[1].Color.A != 77 || glow.Stops[2].Color.A != 0 {
		t.Errorf("glow stop alphas = %d/%d/%d, want 128/77/0",
			glow.Stops[0].Color.A, glow.Stops[1].Color.A, glow.Stops[2].Color.A)
	}
	core := rec.Ops[3]
	if core.R != 2 || core.Color.R != 255 || core.Color.A != 128 {
		t.Errorf("core r=%v color=%v, want r=2 white alpha 128", core.R, core.Color)
	}
}

func TestRenderSystem_DotUsesPalette(t *testing.T) {
	st, v := buildVariant(t, config.VariantStarfield, 800, 600, newRand())
	for i := range st.Permanent() {
		st.Permanent()[i].Opacity = 0
	}
	p := &st.Layer(0)[0]
	p.X, p.Y, p.Size, p.Opacity, p.Color = 50, 50, 1, 1, 1

	rec := render.NewRecorder(800, 600)
	NewRenderSystem(st, v, 1).Draw(rec, 0, nil)

	want := v.Layers[0].Palette[1].NRGBA()
	for _, op := range rec.Ops {
		switch op.Kind {
		case render.OpCircle:
			if op.Color != want {
				t.Errorf("core color = %v, want palette %v", op.Color, want)
			}
		case render.OpGlow:
			if c := op.Stops[0].Color; c.R != want.R || c.G != want.G || c.B != want.B {
				t.Errorf("glow tint = %v, want palette RGB %v", c, want)
			}
		}
	}
}

func TestPolygonPoints(t *testing.T) {
	poly := &config.PolygonConfig{Sides: 6, Base: 0.7, Amplitude: 0.3, Frequency: 3, TimeScale: 1}
	flat := func(a, t float64) float64 { return 0 }

	pts := PolygonPoints(nil, poly, 10, 20, 10, 0, 0, flat)
	if len(pts) != 6 {
		t.Fatalf("len = %d, want 6", len(pts))
	}
	for i, p := range pts {
		if d := math.Hypot(p.X-10, p.Y-20); math.Abs(d-7) > 1e-9 {
			t.Errorf("vertex %d radius = %v, want 7", i, d)
		}
	}
	if math.Abs(pts[0].X-17) > 1e-9 || math.Abs(pts[0].Y-20) > 1e-9 {
		t.Errorf("vertex 0 = %v, want (17,20)", pts[0])
	}

	// 旋转 π/2 后第一个顶点在正下方
	pts = PolygonPoints(pts, poly, 0, 0, 10, math.Pi/2, 0, flat)
	if math.Abs(pts[0].X) > 1e-9 || math.Abs(pts[0].Y-7) > 1e-9 {
		t.Errorf("rotated vertex 0 = %v, want (0,7)", pts[0])
	}
}

func TestRenderSystem_WobbleBounds(t *testing.T) {
	for _, wobble := range []string{config.WobbleSine, config.WobblePerlin} {
		t.Run(wobble, func(t *testing.T) {
			st, v := buildVariant(t, config.VariantDeepSpace, 800, 600, newRand())
			v.Layers[1].Polygon.Wobble = wobble
			rs := NewRenderSystem(st, v, 7)
			poly := &v.Layers[1].Polygon

			for idx := 0; idx < 20; idx++ {
				fn := rs.wobbleFunc(poly, idx)
				for _, tm := range []float64{0, 0.7, 12.3, 400} {
					pts := PolygonPoints(nil, poly, 0, 0, 1, 0, tm, fn)
					for _, p := range pts {
						r := math.Hypot(p.X, p.Y)
						if r < poly.Base-poly.Amplitude-1e-9 || r > poly.Base+poly.Amplitude+1e-9 {
							t.Fatalf("radius %v outside [%v, %v]", r, poly.Base-poly.Amplitude, poly.Base+poly.Amplitude)
						}
					}
				}
			}
		})
	}
}

func TestRenderSystem_Cursor(t *testing.T) {
	st, v := buildVariant(t, config.VariantCursor, 800, 600, newRand())
	cs := NewCursorSystem(st, v.Cursor)
	rs := NewRenderSystem(st, v, 1)

	rec := render.NewRecorder(800, 600)
	rs.Draw(rec, 0, cs)
	if rec.Count(render.OpRing) != 0 {
		t.Fatalf("hidden cursor drew %d rings", rec.Count(render.OpRing))
	}

	cs.PointerMove(400, 300)
	cs.Update(tick)
	rec.Reset()
	rs.Draw(rec, 0, cs)

	// 一个轨迹点（缩放为 0 时不绘制）+ 光标圆环
	if got := rec.Count(render.OpRing); got != 1 {
		t.Fatalf("rings = %d, want 1 (cursor only; new trail point has scale 0)", got)
	}
	kinds := rec.Kinds()
	if kinds[len(kinds)-2] != render.OpRing {
		t.Errorf("cursor ring should be the last shape, got %v", kinds)
	}

	for i := 0; i < 10; i++ {
		cs.Update(tick)
	}
	rec.Reset()
	rs.Draw(rec, 0, cs)
	if got := rec.Count(render.OpRing); got != 2 {
		t.Errorf("rings = %d, want trail point + cursor", got)
	}
}
