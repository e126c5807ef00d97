// Package render provides the 2D drawing surface the sky is painted on.
//
// Canvas implementations:
//   - ebitenrender.Canvas: GPU 离屏图像，形状以三角形网格批量提交（DrawTriangles），在子包中以免无窗口程序链接 ebiten
//   - RasterCanvas: CPU 光栅化到 image.RGBA（golang.org/x/image/vector），用于无窗口截图
//   - Recorder: 只记录绘制调用，用于测试
package render

import (
	"image/color"

	"github.com/decker502/nightsky/pkg/config"
)

// Point is a 2D point in surface pixels.
type Point struct {
	X, Y float64
}

// Stop is a gradient stop with a straight-alpha color.
type Stop struct {
	Offset float64
	Color  color.NRGBA
}

// Canvas 绘制表面
//
// 坐标原点在左上角，单位为像素。所有 Fill/Stroke 调用按调用顺序合成
// （后画的覆盖先画的）。实现可以缓冲绘制调用，Flush 保证缓冲内容落到表面上。
type Canvas interface {
	Size() (w, h int)
	// Resize changes the backing store. Contents are discarded.
	Resize(w, h int)
	// Clear makes every pixel fully transparent.
	Clear()

	Fill(c color.NRGBA)
	// FillVerticalGradient paints the whole surface, offset 0 at the top.
	FillVerticalGradient(stops []Stop)
	FillCircle(cx, cy, r float64, c color.NRGBA)
	// FillGlow paints a radial gradient disc of radius r; offset 0 is the center.
	FillGlow(cx, cy, r float64, stops []Stop)
	// FillPolygon fills a polygon that is star-shaped about its vertex centroid.
	FillPolygon(pts []Point, c color.NRGBA)
	StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA)
	// StrokeCircle draws a ring of the given width centered on radius r.
	StrokeCircle(cx, cy, r, width float64, c color.NRGBA)

	Flush()
}

// SampleStops returns the gradient color at offset t.
// Outside the first/last stop the end colors extend.
func SampleStops(stops []Stop, t float64) color.NRGBA {
	switch len(stops) {
	case 0:
		return color.NRGBA{}
	case 1:
		return stops[0].Color
	}
	if t <= stops[0].Offset {
		return stops[0].Color
	}
	for i := 0; i < len(stops)-1; i++ {
		s0, s1 := stops[i], stops[i+1]
		if t <= s1.Offset {
			span := s1.Offset - s0.Offset
			if span <= 0 {
				return s1.Color
			}
			return config.Lerp(s0.Color, s1.Color, (t-s0.Offset)/span)
		}
	}
	return stops[len(stops)-1].Color
}

// StopsFrom converts configured stops, scaling every alpha by alpha and,
// when tint is non-nil, replacing the RGB with the tint's. dst is reused.
func StopsFrom(dst []Stop, src []config.GradientStop, alpha float64, tint *color.NRGBA) []Stop {
	dst = dst[:0]
	for _, s := range src {
		c := s.Color.WithAlpha(alpha)
		if tint != nil {
			c.R, c.G, c.B = tint.R, tint.G, tint.B
		}
		dst = append(dst, Stop{Offset: s.Offset, Color: c})
	}
	return dst
}

// CircleSegments 圆周分段数：随半径增长，限制在 [12, 64]
func CircleSegments(r float64) int {
	n := int(r * 2)
	if n < 12 {
		return 12
	}
	if n > 64 {
		return 64
	}
	return n
}

var (
	_ Canvas = (*RasterCanvas)(nil)
	_ Canvas = (*Recorder)(nil)
)
