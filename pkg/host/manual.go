package host

import (
	"github.com/decker502/nightsky/pkg/render"
)

// Manual is a host driven explicitly by the caller. Frames, resizes and
// pointer events happen only when the matching method is called, which
// makes engine lifecycles reproducible in tests.
//
// Surfaces are render.Recorder instances.
type Manual struct {
	Dispatcher
	w, h int

	// FailSurfaces makes NewSurface return ErrSurfaceUnavailable.
	FailSurfaces bool

	surfaces  []*render.Recorder
	requested []FrameFunc // 所有请求过的帧回调，包括已执行和已取消的
}

// NewManual creates a manual host with the given viewport.
func NewManual(w, h int) *Manual {
	return &Manual{w: w, h: h}
}

func (m *Manual) ViewportSize() (int, int) {
	return m.w, m.h
}

func (m *Manual) RequestFrame(fn FrameFunc) FrameHandle {
	m.requested = append(m.requested, fn)
	return m.Dispatcher.RequestFrame(fn)
}

func (m *Manual) NewSurface(w, h int) (render.Canvas, error) {
	if m.FailSurfaces {
		return nil, ErrSurfaceUnavailable
	}
	r := render.NewRecorder(w, h)
	m.surfaces = append(m.surfaces, r)
	return r, nil
}

func (m *Manual) ReleaseSurface(c render.Canvas) {
	for i, s := range m.surfaces {
		if render.Canvas(s) == c {
			m.surfaces = append(m.surfaces[:i], m.surfaces[i+1:]...)
			return
		}
	}
}

// Frame runs the pending frame callbacks with dt and reports how many ran.
func (m *Manual) Frame(dt float64) int {
	return m.RunFrames(dt)
}

// Frames runs n frames of dt each and returns the total callbacks run.
func (m *Manual) Frames(n int, dt float64) int {
	total := 0
	for i := 0; i < n; i++ {
		total += m.Frame(dt)
	}
	return total
}

// Resize changes the viewport and notifies resize listeners.
func (m *Manual) Resize(w, h int) {
	m.w, m.h = w, h
	m.EmitResize(w, h)
}

// MovePointer notifies pointer-move listeners.
func (m *Manual) MovePointer(x, y float64) {
	m.EmitPointerMove(x, y)
}

// SetPointerInside notifies presence listeners.
func (m *Manual) SetPointerInside(inside bool) {
	m.EmitPointerPresence(inside)
}

// Pending returns the number of frame callbacks waiting to run.
func (m *Manual) Pending() int {
	return m.PendingFrames()
}

// Listeners returns the number of registered resize, pointer-move and
// presence listeners combined.
func (m *Manual) Listeners() int {
	return m.ListenerCount()
}

// Requested returns every frame callback ever requested, in order.
// Invoking one directly simulates a host that fires a stale callback.
func (m *Manual) Requested() []FrameFunc {
	return m.requested
}

// Surfaces returns the surfaces currently allocated.
func (m *Manual) Surfaces() []*render.Recorder {
	return m.surfaces
}

var _ Host = (*Manual)(nil)
