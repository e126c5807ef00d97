package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// RasterCanvas CPU 光栅画布（无 GPU、无窗口环境使用）
type RasterCanvas struct {
	img *image.RGBA
	z   vector.Rasterizer
}

// NewRasterCanvas creates a CPU canvas backed by an *image.RGBA.
func NewRasterCanvas(w, h int) *RasterCanvas {
	c := &RasterCanvas{}
	c.Resize(w, h)
	return c
}

// Image returns the backing image.
func (c *RasterCanvas) Image() *image.RGBA {
	return c.img
}

func (c *RasterCanvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

func (c *RasterCanvas) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	if c.img != nil {
		if cw, ch := c.Size(); cw == w && ch == h {
			return
		}
	}
	c.img = image.NewRGBA(image.Rect(0, 0, w, h))
}

func (c *RasterCanvas) Clear() {
	clear(c.img.Pix)
}

func (c *RasterCanvas) Fill(col color.NRGBA) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Over)
}

func (c *RasterCanvas) FillVerticalGradient(stops []Stop) {
	w, h := c.Size()
	if len(stops) == 0 || h == 0 {
		return
	}
	for y := 0; y < h; y++ {
		t := (float64(y) + 0.5) / float64(h)
		row := image.Rect(0, y, w, y+1)
		draw.Draw(c.img, row, image.NewUniform(SampleStops(stops, t)), image.Point{}, draw.Over)
	}
}

func (c *RasterCanvas) FillCircle(cx, cy, r float64, col color.NRGBA) {
	if r <= 0 || c.empty() {
		return
	}
	c.circlePath(cx, cy, r)
	c.z.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
}

func (c *RasterCanvas) FillGlow(cx, cy, r float64, stops []Stop) {
	if r <= 0 || len(stops) == 0 || c.empty() {
		return
	}
	c.circlePath(cx, cy, r)
	c.z.Draw(c.img, c.img.Bounds(), &radialSource{cx: cx, cy: cy, r: r, stops: stops, bounds: c.img.Bounds()}, image.Point{})
}

func (c *RasterCanvas) FillPolygon(pts []Point, col color.NRGBA) {
	if len(pts) < 3 || c.empty() {
		return
	}
	w, h := c.Size()
	c.z.Reset(w, h)
	c.z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		c.z.LineTo(float32(p.X), float32(p.Y))
	}
	c.z.ClosePath()
	c.z.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
}

func (c *RasterCanvas) StrokeLine(x0, y0, x1, y1, width float64, col color.NRGBA) {
	if width <= 0 || c.empty() {
		return
	}
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	// 线段法向量，半宽
	nx, ny := -dy/length*width/2, dx/length*width/2

	w, h := c.Size()
	c.z.Reset(w, h)
	c.z.MoveTo(float32(x0+nx), float32(y0+ny))
	c.z.LineTo(float32(x1+nx), float32(y1+ny))
	c.z.LineTo(float32(x1-nx), float32(y1-ny))
	c.z.LineTo(float32(x0-nx), float32(y0-ny))
	c.z.ClosePath()
	c.z.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
}

func (c *RasterCanvas) StrokeCircle(cx, cy, r, width float64, col color.NRGBA) {
	if r <= 0 || width <= 0 || c.empty() {
		return
	}
	outer := r + width/2
	inner := math.Max(r-width/2, 0)

	w, h := c.Size()
	c.z.Reset(w, h)
	seg := CircleSegments(outer)
	step := 2 * math.Pi / float64(seg)
	// 外圈顺时针、内圈逆时针，内圈抵消为空洞
	c.z.MoveTo(float32(cx+outer), float32(cy))
	for k := 1; k < seg; k++ {
		sin, cos := math.Sincos(float64(k) * step)
		c.z.LineTo(float32(cx+cos*outer), float32(cy+sin*outer))
	}
	c.z.ClosePath()
	if inner > 0 {
		c.z.MoveTo(float32(cx+inner), float32(cy))
		for k := seg - 1; k > 0; k-- {
			sin, cos := math.Sincos(float64(k) * step)
			c.z.LineTo(float32(cx+cos*inner), float32(cy+sin*inner))
		}
		c.z.ClosePath()
	}
	c.z.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
}

// Flush is a no-op; raster drawing is immediate.
func (c *RasterCanvas) Flush() {}

func (c *RasterCanvas) empty() bool {
	w, h := c.Size()
	return w == 0 || h == 0
}

func (c *RasterCanvas) circlePath(cx, cy, r float64) {
	w, h := c.Size()
	c.z.Reset(w, h)
	seg := CircleSegments(r)
	step := 2 * math.Pi / float64(seg)
	c.z.MoveTo(float32(cx+r), float32(cy))
	for k := 1; k < seg; k++ {
		sin, cos := math.Sincos(float64(k) * step)
		c.z.LineTo(float32(cx+cos*r), float32(cy+sin*r))
	}
	c.z.ClosePath()
}

// radialSource 径向渐变颜色源，按像素中心到圆心的距离取色
type radialSource struct {
	cx, cy, r float64
	stops     []Stop
	bounds    image.Rectangle
}

func (s *radialSource) ColorModel() color.Model { return color.NRGBAModel }

func (s *radialSource) Bounds() image.Rectangle { return s.bounds }

func (s *radialSource) At(x, y int) color.Color {
	d := math.Hypot(float64(x)+0.5-s.cx, float64(y)+0.5-s.cy)
	return SampleStops(s.stops, d/s.r)
}
