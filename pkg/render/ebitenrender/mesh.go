package ebitenrender

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/nightsky/pkg/render"
)

// maxMeshVertices uint16 索引上限
const maxMeshVertices = math.MaxUint16

// Mesh 纯色三角形网格（顶点颜色插值），配合 1x1 白色纹理提交
//
// 顶点和索引数组在 Reset 后保留容量，避免每帧分配。
type Mesh struct {
	Vertices []ebiten.Vertex
	Indices  []uint16
}

// Reset empties the mesh, keeping capacity.
func (m *Mesh) Reset() {
	m.Vertices = m.Vertices[:0]
	m.Indices = m.Indices[:0]
}

// Len returns the vertex count.
func (m *Mesh) Len() int {
	return len(m.Vertices)
}

// Fits reports whether n more vertices can be indexed.
func (m *Mesh) Fits(n int) bool {
	return len(m.Vertices)+n <= maxMeshVertices
}

func (m *Mesh) vertex(x, y float64, c color.NRGBA) uint16 {
	idx := uint16(len(m.Vertices))
	m.Vertices = append(m.Vertices, ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   1,
		SrcY:   1,
		ColorR: float32(c.R) / 255,
		ColorG: float32(c.G) / 255,
		ColorB: float32(c.B) / 255,
		ColorA: float32(c.A) / 255,
	})
	return idx
}

// RingVertices returns the vertex count AppendRing adds.
func RingVertices(segments int) int {
	return 2 * (segments + 1)
}

// AppendRing adds an annulus between r0 (color c0) and r1 (color c1).
// r0 == 0 degenerates to a disc.
func (m *Mesh) AppendRing(cx, cy, r0, r1 float64, c0, c1 color.NRGBA, segments int) {
	if segments < 3 {
		segments = 3
	}
	step := 2 * math.Pi / float64(segments)
	base := uint16(len(m.Vertices))
	for k := 0; k <= segments; k++ {
		sin, cos := math.Sincos(float64(k) * step)
		m.vertex(cx+cos*r0, cy+sin*r0, c0)
		m.vertex(cx+cos*r1, cy+sin*r1, c1)
	}
	for k := 0; k < segments; k++ {
		i := base + uint16(2*k)
		// 内0 外0 内1 / 外0 外1 内1
		m.Indices = append(m.Indices,
			i, i+1, i+2,
			i+1, i+3, i+2,
		)
	}
}

// AppendCircle adds a solid disc.
func (m *Mesh) AppendCircle(cx, cy, r float64, c color.NRGBA, segments int) {
	m.AppendRing(cx, cy, 0, r, c, c, segments)
}

// RadialVertices returns the vertex count AppendRadial adds for stops.
func RadialVertices(stops []render.Stop, segments int) int {
	if len(stops) == 0 {
		return 0
	}
	// 首段内圆 + 每对色标一环 + 末段外环
	return (len(stops) + 1) * RingVertices(segments)
}

// AppendRadial adds a radial gradient disc of radius r.
// Inside the first stop and outside the last stop the end colors extend.
func (m *Mesh) AppendRadial(cx, cy, r float64, stops []render.Stop, segments int) {
	if len(stops) == 0 || r <= 0 {
		return
	}
	first := stops[0]
	if first.Offset > 0 {
		m.AppendRing(cx, cy, 0, r*first.Offset, first.Color, first.Color, segments)
	}
	for i := 0; i < len(stops)-1; i++ {
		s0, s1 := stops[i], stops[i+1]
		if s1.Offset <= s0.Offset {
			continue
		}
		m.AppendRing(cx, cy, r*s0.Offset, r*s1.Offset, s0.Color, s1.Color, segments)
	}
	last := stops[len(stops)-1]
	if last.Offset < 1 {
		m.AppendRing(cx, cy, r*last.Offset, r, last.Color, last.Color, segments)
	}
}

// AppendVerticalGradient adds full-width bands between consecutive stops.
func (m *Mesh) AppendVerticalGradient(w, h float64, stops []render.Stop) {
	if len(stops) == 0 || w <= 0 || h <= 0 {
		return
	}
	band := func(y0, y1 float64, c0, c1 color.NRGBA) {
		if y1 <= y0 {
			return
		}
		i := m.vertex(0, y0, c0)
		m.vertex(w, y0, c0)
		m.vertex(0, y1, c1)
		m.vertex(w, y1, c1)
		m.Indices = append(m.Indices, i, i+1, i+2, i+1, i+3, i+2)
	}
	first, last := stops[0], stops[len(stops)-1]
	band(0, h*first.Offset, first.Color, first.Color)
	for i := 0; i < len(stops)-1; i++ {
		band(h*stops[i].Offset, h*stops[i+1].Offset, stops[i].Color, stops[i+1].Color)
	}
	band(h*last.Offset, h, last.Color, last.Color)
}

// AppendPolygon fans the polygon from its vertex centroid.
func (m *Mesh) AppendPolygon(pts []render.Point, c color.NRGBA) {
	if len(pts) < 3 {
		return
	}
	var cx, cy float64
	for _, p := range pts {
		cx += p.X
		cy += p.Y
	}
	cx /= float64(len(pts))
	cy /= float64(len(pts))

	center := m.vertex(cx, cy, c)
	for _, p := range pts {
		m.vertex(p.X, p.Y, c)
	}
	n := uint16(len(pts))
	for k := uint16(0); k < n; k++ {
		m.Indices = append(m.Indices, center, center+1+k, center+1+(k+1)%n)
	}
}
