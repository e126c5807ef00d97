package host

// Dispatcher implements the subscription half of Host: resize and pointer
// listeners plus the frame queue. Concrete hosts embed it and call the
// Emit methods and RunFrames from their own event loop.
//
// Dispatcher 不加锁，所有方法必须在同一个 goroutine 上调用。
type Dispatcher struct {
	resize   listeners[func(w, h int)]
	move     listeners[func(x, y float64)]
	presence listeners[func(inside bool)]
	frames   frameQueue
}

func (d *Dispatcher) OnResize(fn func(w, h int)) func() {
	return d.resize.add(fn)
}

func (d *Dispatcher) OnPointerMove(fn func(x, y float64)) func() {
	return d.move.add(fn)
}

func (d *Dispatcher) OnPointerPresence(fn func(inside bool)) func() {
	return d.presence.add(fn)
}

func (d *Dispatcher) RequestFrame(fn FrameFunc) FrameHandle {
	return d.frames.request(fn)
}

func (d *Dispatcher) CancelFrame(h FrameHandle) {
	d.frames.cancel(h)
}

// EmitResize notifies resize listeners in registration order.
func (d *Dispatcher) EmitResize(w, h int) {
	d.resize.each(func(fn func(w, h int)) { fn(w, h) })
}

// EmitPointerMove notifies pointer-move listeners.
func (d *Dispatcher) EmitPointerMove(x, y float64) {
	d.move.each(func(fn func(x, y float64)) { fn(x, y) })
}

// EmitPointerPresence notifies presence listeners.
func (d *Dispatcher) EmitPointerPresence(inside bool) {
	d.presence.each(func(fn func(bool)) { fn(inside) })
}

// RunFrames runs the frame callbacks pending at call time with dt and
// reports how many ran.
func (d *Dispatcher) RunFrames(dt float64) int {
	return d.frames.run(dt)
}

// PendingFrames returns the number of frame callbacks waiting to run.
func (d *Dispatcher) PendingFrames() int {
	return d.frames.len()
}

// ListenerCount returns the resize, pointer-move and presence listeners
// combined.
func (d *Dispatcher) ListenerCount() int {
	return d.resize.len() + d.move.len() + d.presence.len()
}
