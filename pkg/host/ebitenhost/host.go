// Package ebitenhost adapts the ebiten game loop to host.Host.
package ebitenhost

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/nightsky/pkg/host"
	"github.com/decker502/nightsky/pkg/render"
	"github.com/decker502/nightsky/pkg/render/ebitenrender"
)

// Host 由外层 ebiten.Game 在对应回调中转发调用：
//   - Layout：窗口尺寸变化时同步通知 resize 监听者
//   - Update：轮询指针（鼠标或第一个触点），然后执行待处理的帧回调
//   - Draw：按分配顺序合成所有表面
//
// ebiten 在同一个 goroutine 上调用这三个方法，因此无需加锁。
type Host struct {
	host.Dispatcher
	w, h int

	surfaces []*ebitenrender.Canvas

	pointerX, pointerY float64
	inside             bool
	touches            []ebiten.TouchID
}

// New creates the host with the initial logical viewport.
func New(w, h int) *Host {
	return &Host{w: w, h: h}
}

func (e *Host) ViewportSize() (int, int) {
	return e.w, e.h
}

func (e *Host) NewSurface(w, h int) (render.Canvas, error) {
	c := ebitenrender.NewCanvas(w, h)
	e.surfaces = append(e.surfaces, c)
	return c, nil
}

func (e *Host) ReleaseSurface(c render.Canvas) {
	for i, s := range e.surfaces {
		if render.Canvas(s) == c {
			s.Dispose()
			e.surfaces = append(e.surfaces[:i], e.surfaces[i+1:]...)
			return
		}
	}
}

// Layout tracks the outside size as the logical viewport.
func (e *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != e.w || outsideHeight != e.h {
		e.w, e.h = outsideWidth, outsideHeight
		e.EmitResize(outsideWidth, outsideHeight)
	}
	return e.w, e.h
}

// Update dispatches pointer events and runs the pending frames.
func (e *Host) Update() error {
	e.pollPointer()
	e.RunFrames(1 / float64(ebiten.TPS()))
	return nil
}

// Draw composites the surfaces onto screen.
func (e *Host) Draw(screen *ebiten.Image) {
	for _, s := range e.surfaces {
		if img := s.Image(); img != nil {
			screen.DrawImage(img, nil)
		}
	}
}

func (e *Host) pollPointer() {
	var x, y float64
	inside := false

	e.touches = ebiten.AppendTouchIDs(e.touches[:0])
	if len(e.touches) > 0 {
		tx, ty := ebiten.TouchPosition(e.touches[0])
		x, y = float64(tx), float64(ty)
		inside = true
	} else {
		cx, cy := ebiten.CursorPosition()
		x, y = float64(cx), float64(cy)
		inside = ebiten.IsFocused() && cx >= 0 && cy >= 0 && cx < e.w && cy < e.h
	}

	if inside != e.inside {
		e.inside = inside
		e.EmitPointerPresence(inside)
	}
	if inside && (x != e.pointerX || y != e.pointerY) {
		e.pointerX, e.pointerY = x, y
		e.EmitPointerMove(x, y)
	}
}

var _ host.Host = (*Host)(nil)
