package ebitenrender

import (
	"image/color"
	"math"
	"testing"

	"github.com/decker502/nightsky/pkg/render"
)

func TestMesh_AppendCircle(t *testing.T) {
	var m Mesh
	c := color.NRGBA{255, 128, 0, 255}
	m.AppendCircle(10, 20, 5, c, 12)

	if got, want := m.Len(), RingVertices(12); got != want {
		t.Fatalf("Len() = %d, want %d", got, want)
	}
	if got, want := len(m.Indices), 12*6; got != want {
		t.Fatalf("len(Indices) = %d, want %d", got, want)
	}
	for i, v := range m.Vertices {
		d := math.Hypot(float64(v.DstX)-10, float64(v.DstY)-20)
		if d > 5.0001 {
			t.Fatalf("vertex %d at distance %.3f, outside radius", i, d)
		}
		if v.ColorR != 1 || v.ColorA != 1 || v.SrcX != 1 || v.SrcY != 1 {
			t.Fatalf("vertex %d = %+v, want white texel with circle color", i, v)
		}
	}
	for _, idx := range m.Indices {
		if int(idx) >= m.Len() {
			t.Fatalf("index %d out of range", idx)
		}
	}
}

func TestMesh_AppendRadial(t *testing.T) {
	stops := []render.Stop{
		{Offset: 0, Color: color.NRGBA{147, 197, 253, 255}},
		{Offset: 0.3, Color: color.NRGBA{96, 165, 250, 153}},
		{Offset: 1, Color: color.NRGBA{59, 130, 246, 0}},
	}

	tests := []struct {
		name  string
		stops []render.Stop
		rings int
	}{
		{"three stops ending at 1", stops, 2},
		{"inner offset above 0", []render.Stop{{Offset: 0.5, Color: color.NRGBA{A: 255}}, {Offset: 1}}, 2},
		{"last offset below 1", []render.Stop{{Offset: 0, Color: color.NRGBA{A: 255}}, {Offset: 0.5}}, 2},
		{"single stop", []render.Stop{{Offset: 0, Color: color.NRGBA{A: 255}}}, 1},
		{"no stops", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Mesh
			m.AppendRadial(0, 0, 10, tt.stops, 16)
			if got, want := m.Len(), tt.rings*RingVertices(16); got != want {
				t.Errorf("Len() = %d, want %d", got, want)
			}
			if m.Len() > RadialVertices(tt.stops, 16) {
				t.Errorf("Len() = %d exceeds RadialVertices estimate %d", m.Len(), RadialVertices(tt.stops, 16))
			}
		})
	}
}

func TestMesh_AppendRadial_OuterAlpha(t *testing.T) {
	var m Mesh
	stops := []render.Stop{
		{Offset: 0, Color: color.NRGBA{255, 255, 255, 255}},
		{Offset: 1, Color: color.NRGBA{255, 255, 255, 0}},
	}
	m.AppendRadial(0, 0, 10, stops, 12)
	for _, v := range m.Vertices {
		d := math.Hypot(float64(v.DstX), float64(v.DstY))
		if d > 9.99 && v.ColorA != 0 {
			t.Fatalf("outer vertex alpha = %v, want 0", v.ColorA)
		}
		if d < 0.01 && v.ColorA != 1 {
			t.Fatalf("center vertex alpha = %v, want 1", v.ColorA)
		}
	}
}

func TestMesh_AppendPolygon(t *testing.T) {
	var m Mesh
	pts := []render.Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	m.AppendPolygon(pts, color.NRGBA{A: 255})

	if m.Len() != 5 {
		t.Fatalf("Len() = %d, want 5 (center + 4)", m.Len())
	}
	if len(m.Indices) != 12 {
		t.Fatalf("len(Indices) = %d, want 12", len(m.Indices))
	}
	if c := m.Vertices[0]; c.DstX != 5 || c.DstY != 5 {
		t.Errorf("fan center = (%v,%v), want (5,5)", c.DstX, c.DstY)
	}

	m.Reset()
	m.AppendPolygon(pts[:2], color.NRGBA{A: 255})
	if m.Len() != 0 {
		t.Errorf("degenerate polygon should add nothing, got %d vertices", m.Len())
	}
}

func TestMesh_AppendVerticalGradient(t *testing.T) {
	var m Mesh
	stops := []render.Stop{
		{Offset: 0, Color: color.NRGBA{10, 10, 26, 255}},
		{Offset: 0.5, Color: color.NRGBA{26, 26, 46, 255}},
		{Offset: 1, Color: color.NRGBA{22, 33, 62, 255}},
	}
	m.AppendVerticalGradient(800, 600, stops)

	// 两段渐变，首尾色标正好在边缘时不追加延伸带
	if m.Len() != 8 {
		t.Fatalf("Len() = %d, want 8", m.Len())
	}
	if v := m.Vertices[0]; v.DstY != 0 || v.DstX != 0 {
		t.Errorf("first vertex = (%v,%v), want (0,0)", v.DstX, v.DstY)
	}
	if v := m.Vertices[m.Len()-1]; v.DstY != 600 || v.DstX != 800 {
		t.Errorf("last vertex = (%v,%v), want (800,600)", v.DstX, v.DstY)
	}
}

func TestMesh_Fits(t *testing.T) {
	var m Mesh
	if !m.Fits(maxMeshVertices) {
		t.Error("empty mesh should fit the maximum")
	}
	m.AppendCircle(0, 0, 1, color.NRGBA{}, 12)
	if m.Fits(maxMeshVertices) {
		t.Error("non-empty mesh should not fit the maximum again")
	}
}
