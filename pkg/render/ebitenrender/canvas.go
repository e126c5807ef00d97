// Package ebitenrender implements render.Canvas on ebiten offscreen images.
//
// 与无窗口的光栅画布分开放置，只有窗口程序需要链接 ebiten。
package ebitenrender

import (
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/nightsky/pkg/render"
)

var (
	whiteOnce     sync.Once
	whiteSubImage *ebiten.Image
)

// white 返回 1x1 白色纹理（取自 3x3 图像中心，避免边缘采样）
func white() *ebiten.Image {
	whiteOnce.Do(func() {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteSubImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteSubImage
}

// Canvas 基于 ebiten 离屏图像的画布
//
// 填充类调用追加到同一个网格中，遇到 Fill/StrokeLine/Flush 或网格满时
// 一次性 DrawTriangles 提交，保证绘制顺序与调用顺序一致。
type Canvas struct {
	img  *ebiten.Image
	mesh Mesh
	op   ebiten.DrawTrianglesOptions
}

// NewCanvas creates an offscreen canvas. A non-positive size yields
// a canvas that ignores drawing until resized.
func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		mesh: Mesh{
			Vertices: make([]ebiten.Vertex, 0, 4096),
			Indices:  make([]uint16, 0, 8192),
		},
	}
	c.op.AntiAlias = true
	c.Resize(w, h)
	return c
}

// Image returns the backing image, nil while the canvas is empty.
func (c *Canvas) Image() *ebiten.Image {
	return c.img
}

func (c *Canvas) Size() (int, int) {
	if c.img == nil {
		return 0, 0
	}
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

func (c *Canvas) Resize(w, h int) {
	if cw, ch := c.Size(); c.img != nil && cw == w && ch == h {
		return
	}
	c.mesh.Reset()
	if c.img != nil {
		c.img.Deallocate()
		c.img = nil
	}
	if w <= 0 || h <= 0 {
		return
	}
	c.img = ebiten.NewImage(w, h)
}

// Dispose releases the backing image.
func (c *Canvas) Dispose() {
	c.Resize(0, 0)
}

func (c *Canvas) Clear() {
	c.mesh.Reset()
	if c.img != nil {
		c.img.Clear()
	}
}

func (c *Canvas) Fill(col color.NRGBA) {
	if c.img == nil {
		return
	}
	c.Flush()
	if col.A == 255 {
		c.img.Fill(col)
		return
	}
	w, h := c.Size()
	vector.DrawFilledRect(c.img, 0, 0, float32(w), float32(h), col, false)
}

func (c *Canvas) FillVerticalGradient(stops []render.Stop) {
	if c.img == nil {
		return
	}
	c.reserve(4 * (len(stops) + 1))
	w, h := c.Size()
	c.mesh.AppendVerticalGradient(float64(w), float64(h), stops)
}

func (c *Canvas) FillCircle(cx, cy, r float64, col color.NRGBA) {
	if c.img == nil || r <= 0 {
		return
	}
	seg := render.CircleSegments(r)
	c.reserve(RingVertices(seg))
	c.mesh.AppendCircle(cx, cy, r, col, seg)
}

func (c *Canvas) FillGlow(cx, cy, r float64, stops []render.Stop) {
	if c.img == nil || r <= 0 {
		return
	}
	seg := render.CircleSegments(r)
	c.reserve(RadialVertices(stops, seg))
	c.mesh.AppendRadial(cx, cy, r, stops, seg)
}

func (c *Canvas) FillPolygon(pts []render.Point, col color.NRGBA) {
	if c.img == nil {
		return
	}
	c.reserve(len(pts) + 1)
	c.mesh.AppendPolygon(pts, col)
}

func (c *Canvas) StrokeLine(x0, y0, x1, y1, width float64, col color.NRGBA) {
	if c.img == nil || width <= 0 {
		return
	}
	c.Flush()
	vector.StrokeLine(c.img, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), col, true)
}

func (c *Canvas) StrokeCircle(cx, cy, r, width float64, col color.NRGBA) {
	if c.img == nil || r <= 0 || width <= 0 {
		return
	}
	inner := math.Max(r-width/2, 0)
	seg := render.CircleSegments(r)
	c.reserve(RingVertices(seg))
	c.mesh.AppendRing(cx, cy, inner, r+width/2, col, col, seg)
}

// Flush submits the pending mesh.
func (c *Canvas) Flush() {
	if c.img == nil || c.mesh.Len() == 0 {
		c.mesh.Reset()
		return
	}
	c.img.DrawTriangles(c.mesh.Vertices, c.mesh.Indices, white(), &c.op)
	c.mesh.Reset()
}

func (c *Canvas) reserve(n int) {
	if !c.mesh.Fits(n) {
		c.Flush()
	}
}

var _ render.Canvas = (*Canvas)(nil)
