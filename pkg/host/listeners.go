package host

import "sort"

// listeners 按注册顺序保存的回调集合
type listeners[F any] struct {
	next uint64
	fns  map[uint64]F
}

func (l *listeners[F]) add(fn F) func() {
	if l.fns == nil {
		l.fns = make(map[uint64]F)
	}
	l.next++
	id := l.next
	l.fns[id] = fn
	return func() { delete(l.fns, id) }
}

func (l *listeners[F]) len() int {
	return len(l.fns)
}

// each 按注册顺序调用；回调中取消订阅是安全的
func (l *listeners[F]) each(call func(F)) {
	if len(l.fns) == 0 {
		return
	}
	ids := make([]uint64, 0, len(l.fns))
	for id := range l.fns {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if fn, ok := l.fns[id]; ok {
			call(fn)
		}
	}
}

// frameQueue 待执行的帧回调
//
// run 只执行调用前已登记的回调；回调中再次请求的帧进入下一轮。
type frameQueue struct {
	next    uint64
	pending map[FrameHandle]FrameFunc
	order   []FrameHandle
}

func (q *frameQueue) request(fn FrameFunc) FrameHandle {
	if q.pending == nil {
		q.pending = make(map[FrameHandle]FrameFunc)
	}
	q.next++
	h := FrameHandle(q.next)
	q.pending[h] = fn
	q.order = append(q.order, h)
	return h
}

func (q *frameQueue) cancel(h FrameHandle) {
	delete(q.pending, h)
}

func (q *frameQueue) len() int {
	return len(q.pending)
}

// run executes the frames requested so far and reports how many ran.
func (q *frameQueue) run(dt float64) int {
	if len(q.order) == 0 {
		return 0
	}
	batch := q.order
	q.order = nil
	ran := 0
	for _, h := range batch {
		fn, ok := q.pending[h]
		if !ok {
			continue // 已取消
		}
		delete(q.pending, h)
		fn(dt)
		ran++
	}
	return ran
}
