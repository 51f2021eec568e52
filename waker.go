// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mesh

import "sync/atomic"

// Waker resumes a task parked on a not-ready poll.
// Wake may be called from any goroutine, any number of times.
type Waker interface {
	Wake()
}

// WakerFunc adapts a plain function to a Waker.
type WakerFunc func()

// Wake calls f.
func (f WakerFunc) Wake() { f() }

// Signal is a channel-backed Waker for goroutines that block between polls.
// Wakes coalesce: any number of Wake calls before a Wait release it once.
type Signal struct {
	c chan struct{}
}

// NewSignal returns a ready-to-use Signal.
func NewSignal() *Signal {
	return &Signal{c: make(chan struct{}, 1)}
}

// Wake implements Waker. Never blocks.
func (s *Signal) Wake() {
	select {
	case s.c <- struct{}{}:
	default:
	}
}

// Wait blocks until the next Wake, or returns at once if one is pending.
func (s *Signal) Wait() {
	<-s.c
}

// C exposes the wake channel for use in select statements.
func (s *Signal) C() <-chan struct{} {
	return s.c
}

// wakerSlot boxes a Waker so the registration is a single pointer swap.
type wakerSlot struct {
	w Waker
}

// atomicWaker is a single-slot waiter registration.
// register overwrites any prior registration; wake takes the
// registration and wakes it, and is a no-op when the slot is empty.
type atomicWaker struct {
	slot atomic.Pointer[wakerSlot]
	last *wakerSlot // consumer-owned cache of the last boxed waker
}

// register is called only by the consumer. The slot is published with a
// Swap, a full read-modify-write, so the consumer's following read of the
// pending counter cannot be satisfied before the registration is visible.
func (a *atomicWaker) register(w Waker) {
	if w == nil {
		a.slot.Swap(nil)
		return
	}
	s := a.last
	if s == nil || !sameWaker(s.w, w) {
		s = &wakerSlot{w: w}
		a.last = s
	}
	a.slot.Swap(s)
}

func (a *atomicWaker) wake() {
	if s := a.slot.Swap(nil); s != nil {
		s.w.Wake()
	}
}

// sameWaker reports whether two wakers are the same pointer-shaped value.
// Only *Signal is compared; other dynamic types may be uncomparable.
func sameWaker(a, b Waker) bool {
	sa, ok := a.(*Signal)
	if !ok {
		return false
	}
	sb, ok := b.(*Signal)
	return ok && sa == sb
}
