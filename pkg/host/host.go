// Package host abstracts the environment a sky engine is mounted into:
// viewport size and resize notifications, pointer events, a per-frame
// callback clock and drawing surfaces.
//
// All callbacks of one host are dispatched on a single goroutine. A
// callback never runs concurrently with another callback of the same host.
package host

import (
	"errors"

	"github.com/decker502/nightsky/pkg/render"
)

// ErrSurfaceUnavailable is returned by NewSurface when the host cannot
// provide a drawing surface.
var ErrSurfaceUnavailable = errors.New("drawing surface unavailable")

// FrameFunc runs once before the next repaint. dt is the time since the
// previous frame in seconds.
type FrameFunc func(dt float64)

// FrameHandle identifies a pending frame request. The zero handle is never
// issued.
type FrameHandle uint64

// Host 宿主环境
//
// 订阅类方法返回取消订阅函数；RequestFrame 只调度一次回调，需要在回调中再次请求。
type Host interface {
	ViewportSize() (w, h int)

	OnResize(fn func(w, h int)) (unsubscribe func())
	OnPointerMove(fn func(x, y float64)) (unsubscribe func())
	// OnPointerPresence reports the pointer entering (true) or leaving
	// (false) the viewport.
	OnPointerPresence(fn func(inside bool)) (unsubscribe func())

	RequestFrame(fn FrameFunc) FrameHandle
	CancelFrame(h FrameHandle)

	NewSurface(w, h int) (render.Canvas, error)
	ReleaseSurface(c render.Canvas)
}
