// Package store holds the in-memory particle collections of one sky engine.
//
// The permanent population is a contiguous slice split into per-layer spans;
// it is sized once per rebuild and mutated in place every tick. Transient
// particles (shooting stars, trail points) live in a separate pool that grows
// by Spawn and shrinks by Sweep, which compacts the pool in place.
package store

import (
	"log"

	"github.com/decker502/nightsky/pkg/components"
)

// InitFunc fills in a freshly allocated permanent particle.
// layer is the index of the span the particle belongs to.
type InitFunc func(layer int, p *components.Particle)

// Store 管理一个引擎实例的全部粒子
type Store struct {
	bounds components.Bounds

	permanent []components.Particle
	spans     []span // 每层在 permanent 中的区间

	transient    []components.Particle
	transientCap int // 0 表示不限

	generation uint64 // 每次 Rebuild 递增
	spawned    uint64 // 累计生成的瞬态粒子数
}

type span struct {
	start, end int
}

// New creates an empty store. transientCap bounds the transient pool;
// 0 means unbounded.
func New(transientCap int) *Store {
	return &Store{
		permanent:    make([]components.Particle, 0),
		transient:    make([]components.Particle, 0, 16),
		transientCap: transientCap,
	}
}

// Rebuild discards the permanent population and allocates counts[i]
// particles for layer i, calling init on each one in order.
// Transient particles are kept; see ClearTransient.
func (s *Store) Rebuild(b components.Bounds, counts []int, init InitFunc) {
	total := 0
	for _, c := range counts {
		if c > 0 {
			total += c
		}
	}

	// 复用底层数组，避免每次 resize 都重新分配
	if cap(s.permanent) >= total {
		s.permanent = s.permanent[:total]
		clear(s.permanent)
	} else {
		s.permanent = make([]components.Particle, total)
	}

	s.spans = s.spans[:0]
	offset := 0
	for layer, c := range counts {
		if c < 0 {
			c = 0
		}
		s.spans = append(s.spans, span{start: offset, end: offset + c})
		for i := offset; i < offset+c; i++ {
			s.permanent[i].Layer = layer
			if init != nil {
				init(layer, &s.permanent[i])
			}
		}
		offset += c
	}

	s.bounds = b
	s.generation++
	log.Printf("[Store] Rebuilt population: bounds=%.0fx%.0f, layers=%v, total=%d", b.Width, b.Height, counts, total)
}

// Bounds returns the bounds of the last rebuild.
func (s *Store) Bounds() components.Bounds {
	return s.bounds
}

// Generation counts rebuilds.
func (s *Store) Generation() uint64 {
	return s.generation
}

// Permanent returns the whole permanent population for in-place mutation.
func (s *Store) Permanent() []components.Particle {
	return s.permanent
}

// Layer returns the span of layer i, or nil when out of range.
func (s *Store) Layer(i int) []components.Particle {
	if i < 0 || i >= len(s.spans) {
		return nil
	}
	sp := s.spans[i]
	return s.permanent[sp.start:sp.end]
}

// LayerCount returns the number of spans created by the last rebuild.
func (s *Store) LayerCount() int {
	return len(s.spans)
}

// Transient returns the live transient pool for in-place mutation.
func (s *Store) Transient() []components.Particle {
	return s.transient
}

// Spawn adds a transient particle. When the pool is at capacity the
// oldest particle is dropped first.
func (s *Store) Spawn(p components.Particle) {
	if s.transientCap > 0 && len(s.transient) >= s.transientCap {
		copy(s.transient, s.transient[1:])
		s.transient = s.transient[:len(s.transient)-1]
	}
	s.transient = append(s.transient, p)
	s.spawned++
}

// Spawned returns the number of transient particles ever spawned.
func (s *Store) Spawned() uint64 {
	return s.spawned
}

// Sweep removes every transient particle whose opacity is <= 0,
// preserving the order of the survivors. Returns the number removed.
func (s *Store) Sweep() int {
	alive := s.transient[:0]
	for i := range s.transient {
		if s.transient[i].Alive() {
			alive = append(alive, s.transient[i])
		}
	}
	removed := len(s.transient) - len(alive)
	// 清零尾部，避免残留数据
	clear(s.transient[len(alive):])
	s.transient = alive
	return removed
}

// Len returns permanent plus transient particle counts.
func (s *Store) Len() int {
	return len(s.permanent) + len(s.transient)
}

// ClearTransient drops every transient particle and keeps the permanent
// population.
func (s *Store) ClearTransient() {
	clear(s.transient)
	s.transient = s.transient[:0]
}

// Clear destroys both populations.
func (s *Store) Clear() {
	s.permanent = s.permanent[:0]
	s.spans = s.spans[:0]
	s.transient = s.transient[:0]
}
