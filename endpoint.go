// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mesh

import (
	"code.hybscloud.com/kont"
)

// shardPeer is the type-erased view of a shard used by effect dispatch.
// Operations carry their own message type; the peer checks it on send.
type shardPeer interface {
	self() int
	members() int
	sendAny(to int, v any, checked bool) bool
	pollAny(w Waker) (any, error)
}

// shardContext holds the mesh access for a single endpoint.
type shardContext struct {
	peer   shardPeer
	signal *Signal
}

// shardDispatcher is the structural interface for shard operations.
// DispatchShard is non-blocking: it returns iox.ErrWouldBlock when the
// endpoint's bridge has nothing pending.
type shardDispatcher interface {
	DispatchShard(ctx *shardContext) (kont.Resumed, error)
}

// shardHandler implements kont.Handler for shard effects.
// Parks on the endpoint signal across iox.ErrWouldBlock, converting
// non-blocking dispatch into blocking evaluation for Exec/ExecExpr.
// Value type: passed to evalFrames on the stack, avoiding heap allocation.
type shardHandler[R any] struct {
	ctx *shardContext
}

// Dispatch implements kont.Handler via structural interface assertion.
func (h shardHandler[R]) Dispatch(op kont.Operation) (kont.Resumed, bool) {
	sop, ok := op.(shardDispatcher)
	if !ok {
		panic("mesh: unhandled effect in shardHandler")
	}
	return dispatchWait(h.ctx, sop), true
}

// dispatchWait blocks until DispatchShard succeeds. A would-block Recv has
// registered ctx.signal on the bridge, so the next Send releases the wait.
func dispatchWait(ctx *shardContext, sop shardDispatcher) kont.Resumed {
	for {
		v, err := sop.DispatchShard(ctx)
		if err == nil {
			return v
		}
		ctx.signal.Wait()
	}
}

// Endpoint binds a joined shard and its receiver to effect evaluation.
type Endpoint struct {
	ctx    shardContext
	id     int
	serial Serial
}

// Attach takes s's receiver and returns an Endpoint that evaluates shard
// protocols on it. It fails with ErrReceiverTaken if the receiver is gone.
func Attach[T any](s *Shard[T]) (*Endpoint, error) {
	rx, ok := s.Receiver()
	if !ok {
		return nil, ErrReceiverTaken
	}
	return &Endpoint{
		ctx:    shardContext{peer: &endpointPeer[T]{s: s, rx: rx}, signal: NewSignal()},
		id:     s.ID(),
		serial: s.Serial(),
	}, nil
}

// ID returns the id of the attached shard.
func (ep *Endpoint) ID() int {
	return ep.id
}

// Serial returns the serial of the mesh the attached shard joined.
func (ep *Endpoint) Serial() Serial {
	return ep.serial
}

// endpointPeer adapts a typed shard and its receiver to shardPeer.
type endpointPeer[T any] struct {
	s  *Shard[T]
	rx *Receiver[T]
}

func (p *endpointPeer[T]) self() int { return p.s.ID() }

func (p *endpointPeer[T]) members() int { return p.s.Members() }

func (p *endpointPeer[T]) sendAny(to int, v any, checked bool) bool {
	x, ok := v.(T)
	if !ok && v != nil {
		panic(errTypeMismatch)
	}
	if !checked {
		p.s.SendToUnchecked(to, x)
		return true
	}
	return p.s.SendTo(to, x) == nil
}

func (p *endpointPeer[T]) pollAny(w Waker) (any, error) {
	v, err := p.rx.Poll(w)
	if err != nil {
		return nil, err
	}
	return v, nil
}
