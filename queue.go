// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mesh

import (
	"sync/atomic"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/lfq"
	"code.hybscloud.com/spin"
)

// segment is one bounded lock-free MPSC ring in an endpoint queue chain.
//
// A producer that finds the ring full seals it and links the next segment.
// active counts producers between their seal check and their enqueue, so the
// consumer can tell when a sealed segment will never receive another value.
type segment[T any] struct {
	q      lfq.Queue[T]
	next   atomic.Pointer[segment[T]]
	sealed atomix.Uint32
	active atomix.Uint32
}

func newSegment[T any](size int) *segment[T] {
	// Compact selects the CAS-based MPSC ring, which has no livelock
	// threshold: Dequeue only reports empty while a slot is truly unpublished.
	return &segment[T]{q: lfq.BuildMPSC[T](lfq.New(size).SingleConsumer().Compact())}
}

// endpointQueue is an unbounded multi-producer single-consumer FIFO.
// push is safe from any goroutine; tryPop and popOrSpin belong to the
// single consumer.
type endpointQueue[T any] struct {
	tail atomic.Pointer[segment[T]]
	head *segment[T] // consumer-owned
	size int
}

func (q *endpointQueue[T]) init(size int) {
	s := newSegment[T](size)
	q.size = size
	q.head = s
	q.tail.Store(s)
}

// push enqueues v. Never fails and never blocks; a full segment costs one
// segment allocation shared by all producers that raced on it.
func (q *endpointQueue[T]) push(v T) {
	for {
		s := q.tail.Load()
		s.active.Add(1)
		if s.sealed.Load() == 0 {
			if err := s.q.Enqueue(&v); err == nil {
				s.active.Add(^uint32(0))
				return
			}
			s.sealed.CompareAndSwap(0, 1)
		}
		s.active.Add(^uint32(0))
		q.grow(s)
	}
}

// grow links a successor to the sealed segment s and moves the tail past it.
func (q *endpointQueue[T]) grow(s *segment[T]) {
	next := s.next.Load()
	if next == nil {
		fresh := newSegment[T](q.size)
		if s.next.CompareAndSwap(nil, fresh) {
			next = fresh
		} else {
			next = s.next.Load()
		}
	}
	q.tail.CompareAndSwap(s, next)
}

// tryPop removes the oldest visible value.
// It reports false when nothing is visible yet, which includes the window
// between a producer's reservation and its publish.
func (q *endpointQueue[T]) tryPop() (T, bool) {
	for {
		s := q.head
		if v, err := s.q.Dequeue(); err == nil {
			return v, true
		}
		next := s.next.Load()
		if next == nil || s.active.Load() != 0 {
			var zero T
			return zero, false
		}
		// Sealed with no producer in flight: s is final. Drain lifts any
		// threshold so the remainder can be read before moving on.
		if d, ok := s.q.(lfq.Drainer); ok {
			d.Drain()
		}
		if v, err := s.q.Dequeue(); err == nil {
			return v, true
		}
		q.head = next
	}
}

// popOrSpin removes the oldest value, spinning until it is published.
// The caller must already own a counted value, otherwise popOrSpin never
// returns.
func (q *endpointQueue[T]) popOrSpin() T {
	var sw spin.Wait
	for {
		if v, ok := q.tryPop(); ok {
			return v
		}
		sw.Once()
	}
}
