package render

import "image/color"

// OpKind names a recorded drawing call.
type OpKind string

const (
	OpClear    OpKind = "clear"
	OpFill     OpKind = "fill"
	OpGradient OpKind = "gradient"
	OpCircle   OpKind = "circle"
	OpGlow     OpKind = "glow"
	OpPolygon  OpKind = "polygon"
	OpLine     OpKind = "line"
	OpRing     OpKind = "ring"
	OpFlush    OpKind = "flush"
)

// Op 一次绘制调用的记录
type Op struct {
	Kind   OpKind
	X, Y   float64 // 圆心 / 线段起点
	X1, Y1 float64 // 线段终点；圆环时 X1 为线宽
	R      float64 // 半径 / 线宽
	Color  color.NRGBA
	Stops  []Stop
	Points []Point
}

// Recorder is a Canvas that records calls instead of drawing. It holds
// the calls of the current frame only.
type Recorder struct {
	W, H int
	Ops  []Op
}

// NewRecorder creates a recorder of the given size.
func NewRecorder(w, h int) *Recorder {
	return &Recorder{W: w, H: h}
}

// Reset drops recorded ops.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}

// Count returns how many ops of kind k were recorded.
func (r *Recorder) Count(k OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}

// Kinds returns the recorded op kinds in order.
func (r *Recorder) Kinds() []OpKind {
	out := make([]OpKind, len(r.Ops))
	for i, op := range r.Ops {
		out[i] = op.Kind
	}
	return out
}

func (r *Recorder) Size() (int, int) { return r.W, r.H }

func (r *Recorder) Resize(w, h int) {
	r.W, r.H = w, h
	r.Ops = r.Ops[:0]
}

// Clear starts a new frame: ops recorded before it are dropped.
func (r *Recorder) Clear() {
	r.Ops = append(r.Ops[:0], Op{Kind: OpClear})
}

func (r *Recorder) Fill(c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpFill, Color: c})
}

func (r *Recorder) FillVerticalGradient(stops []Stop) {
	r.Ops = append(r.Ops, Op{Kind: OpGradient, Stops: append([]Stop(nil), stops...)})
}

func (r *Recorder) FillCircle(cx, cy, radius float64, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpCircle, X: cx, Y: cy, R: radius, Color: c})
}

func (r *Recorder) FillGlow(cx, cy, radius float64, stops []Stop) {
	r.Ops = append(r.Ops, Op{Kind: OpGlow, X: cx, Y: cy, R: radius, Stops: append([]Stop(nil), stops...)})
}

func (r *Recorder) FillPolygon(pts []Point, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpPolygon, Color: c, Points: append([]Point(nil), pts...)})
}

func (r *Recorder) StrokeLine(x0, y0, x1, y1, width float64, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpLine, X: x0, Y: y0, X1: x1, Y1: y1, R: width, Color: c})
}

func (r *Recorder) StrokeCircle(cx, cy, radius, width float64, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpRing, X: cx, Y: cy, R: radius, X1: width, Color: c})
}

func (r *Recorder) Flush() {
	r.Ops = append(r.Ops, Op{Kind: OpFlush})
}
