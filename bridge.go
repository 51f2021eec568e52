// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mesh

import (
	"context"
	"iter"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
)

// Bridge adapts one endpoint queue into a value a cooperative consumer can
// poll. Any number of producers may Send; exactly one Receiver consumes.
//
// pending counts values sent but not yet received. It is incremented before
// the physical push completes, so at any instant it is at least the number
// of values resident in the queue.
type Bridge[T any] struct {
	pending atomix.Uint64
	claimed atomix.Uint32
	waiter  atomicWaker
	queue   endpointQueue[T]
	rx      Receiver[T]
}

// NewBridge creates a standalone bridge with no consumer attached yet.
func NewBridge[T any](opts ...Option) *Bridge[T] {
	return newBridge[T](newConfig(opts))
}

func newBridge[T any](c config) *Bridge[T] {
	b := &Bridge[T]{}
	b.queue.init(c.segmentSize)
	b.rx.b = b
	b.rx.sig = NewSignal()
	return b
}

// Send enqueues v and wakes the registered consumer, if any.
// Never fails and never blocks.
func (b *Bridge[T]) Send(v T) {
	b.pending.Add(1)
	b.queue.push(v)
	b.waiter.wake()
}

// Sender returns a producer handle for b.
func (b *Bridge[T]) Sender() Sender[T] {
	return Sender[T]{b: b}
}

// Receiver claims the bridge's consumer side.
// Only the first call succeeds; later calls return (nil, false).
func (b *Bridge[T]) Receiver() (*Receiver[T], bool) {
	if !b.claimed.CompareAndSwap(0, 1) {
		return nil, false
	}
	return &b.rx, true
}

// Pending returns a snapshot of the number of values sent but not yet received.
func (b *Bridge[T]) Pending() int {
	return int(b.pending.Load())
}

// Sender is a copyable producer handle to one bridge.
type Sender[T any] struct {
	b *Bridge[T]
}

// Send enqueues v on the target bridge. Never fails and never blocks.
func (s Sender[T]) Send(v T) {
	s.b.Send(v)
}

// Receiver is the single consumer side of a bridge.
// It is not safe for concurrent use; it belongs to one task.
type Receiver[T any] struct {
	b   *Bridge[T]
	sig *Signal
}

// Poll registers w as the bridge's waiter, then takes one value if any is
// pending. It returns iox.ErrWouldBlock when nothing is pending; w is woken
// by the next Send.
//
// Poll and Send form a store-then-load handshake: Poll publishes w, then
// reads pending; Send bumps pending, then takes w. At least one side must
// observe the other, so both the registration and the empty verdict use
// ordered read-modify-writes. A relaxed load alone could read a stale zero
// before w is visible, and that wake would be lost.
func (r *Receiver[T]) Poll(w Waker) (T, error) {
	r.b.waiter.register(w)
	for {
		if v, ok := r.take(); ok {
			return v, nil
		}
		if r.b.pending.CompareAndSwap(0, 0) {
			var zero T
			return zero, iox.ErrWouldBlock
		}
	}
}

// TryRecv takes one value if any is pending, without registering a waiter.
func (r *Receiver[T]) TryRecv() (T, bool) {
	return r.take()
}

func (r *Receiver[T]) take() (T, bool) {
	if r.b.pending.Load() == 0 {
		var zero T
		return zero, false
	}
	r.b.pending.Add(^uint64(0))
	// A racing Send may have counted its value before publishing it.
	return r.b.queue.popOrSpin(), true
}

// Recv blocks the calling goroutine until a value is ready or ctx is done.
func (r *Receiver[T]) Recv(ctx context.Context) (T, error) {
	for {
		v, err := r.Poll(r.sig)
		if err == nil {
			return v, nil
		}
		select {
		case <-r.sig.C():
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	}
}

// All returns the bridge's values as a lazy sequence.
// The sequence has no natural end; it stops when ctx is done or the
// caller breaks out of the loop.
func (r *Receiver[T]) All(ctx context.Context) iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, err := r.Recv(ctx)
			if err != nil || !yield(v) {
				return
			}
		}
	}
}

// Pending returns a snapshot of the number of values waiting for r.
func (r *Receiver[T]) Pending() int {
	return r.b.Pending()
}
