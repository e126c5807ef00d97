package host

import (
	"context"
	"image"
	"image/draw"
	"time"

	"github.com/decker502/nightsky/pkg/render"
)

// DefaultInterval is the ticker period used for ~60 fps.
const DefaultInterval = 16 * time.Millisecond

// Ticker is a headless host. Frames are driven by a time.Ticker on the
// goroutine calling Run; surfaces are render.RasterCanvas images.
//
// interval 为 0 时不等待（自由运行），每帧的 dt 固定为 1/60 秒。
type Ticker struct {
	Dispatcher
	w, h     int
	interval time.Duration

	surfaces []*render.RasterCanvas
}

// NewTicker creates a headless host with the given viewport and frame
// interval.
func NewTicker(w, h int, interval time.Duration) *Ticker {
	return &Ticker{w: w, h: h, interval: interval}
}

func (t *Ticker) ViewportSize() (int, int) {
	return t.w, t.h
}

func (t *Ticker) NewSurface(w, h int) (render.Canvas, error) {
	c := render.NewRasterCanvas(w, h)
	t.surfaces = append(t.surfaces, c)
	return c, nil
}

func (t *Ticker) ReleaseSurface(c render.Canvas) {
	for i, s := range t.surfaces {
		if render.Canvas(s) == c {
			t.surfaces = append(t.surfaces[:i], t.surfaces[i+1:]...)
			return
		}
	}
}

// Run drives frames until ctx is done, maxFrames frames have run
// (maxFrames <= 0 means unlimited) or no frame is pending any more.
// after, if not nil, is called once per frame after the callbacks ran;
// a non-nil error stops the loop and is returned.
func (t *Ticker) Run(ctx context.Context, maxFrames int, after func(frame int) error) error {
	dt := 1.0 / 60
	var tick <-chan time.Time
	if t.interval > 0 {
		tk := time.NewTicker(t.interval)
		defer tk.Stop()
		tick = tk.C
		dt = t.interval.Seconds()
	}

	for frame := 0; maxFrames <= 0 || frame < maxFrames; frame++ {
		if t.PendingFrames() == 0 {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		}

		t.RunFrames(dt)
		if after != nil {
			if err := after(frame); err != nil {
				return err
			}
		}
	}
	return nil
}

// Resize changes the viewport and notifies resize listeners.
func (t *Ticker) Resize(w, h int) {
	t.w, t.h = w, h
	t.EmitResize(w, h)
}

// MovePointer notifies pointer-move listeners.
func (t *Ticker) MovePointer(x, y float64) {
	t.EmitPointerMove(x, y)
}

// SetPointerInside notifies presence listeners.
func (t *Ticker) SetPointerInside(inside bool) {
	t.EmitPointerPresence(inside)
}

// Composite draws every live surface, in allocation order, onto a new
// image of the viewport size.
func (t *Ticker) Composite() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, t.w, t.h))
	for _, s := range t.surfaces {
		if img := s.Image(); img != nil {
			draw.Draw(out, out.Bounds(), img, image.Point{}, draw.Over)
		}
	}
	return out
}

var _ Host = (*Ticker)(nil)
