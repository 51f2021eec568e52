// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mesh

import (
	"code.hybscloud.com/kont"
)

// errTypeMismatch is the panic message for an operation whose message type
// differs from the attached shard's.
const errTypeMismatch = "mesh: message type mismatch"

// Pre-boxed Resumed values for SendTo dispatch, avoiding a heap escape
// when boxing the delivery flag.
var (
	resumedDelivered kont.Resumed = true
	resumedDropped   kont.Resumed = false
)

// SendTo is the effect operation for a checked addressed send.
// Perform(SendTo[T]{To: id, Value: v}) resumes with true when v was
// delivered, false when id has not joined yet (ErrWrongShard).
type SendTo[T any] struct {
	kont.Phantom[bool]
	To    int
	Value T
}

// DispatchShard handles SendTo on the mesh. Never blocks.
func (s SendTo[T]) DispatchShard(ctx *shardContext) (kont.Resumed, error) {
	if ctx.peer.sendAny(s.To, s.Value, true) {
		return resumedDelivered, nil
	}
	return resumedDropped, nil
}

// SendToUnchecked is the effect operation for an unchecked addressed send.
// The target need not have joined; an id outside the mesh panics.
type SendToUnchecked[T any] struct {
	kont.Phantom[struct{}]
	To    int
	Value T
}

// DispatchShard handles SendToUnchecked on the mesh. Never blocks.
func (s SendToUnchecked[T]) DispatchShard(ctx *shardContext) (kont.Resumed, error) {
	ctx.peer.sendAny(s.To, s.Value, false)
	return struct{}{}, nil
}

// Recv is the effect operation for receiving the next value addressed to
// this shard.
type Recv[T any] struct {
	kont.Phantom[T]
}

// DispatchShard handles Recv on the endpoint's bridge.
// Non-blocking: returns iox.ErrWouldBlock if nothing is pending, after
// registering the endpoint signal as the bridge's waiter.
// It panics if the endpoint's shard carries a different message type.
func (Recv[T]) DispatchShard(ctx *shardContext) (kont.Resumed, error) {
	v, err := ctx.peer.pollAny(ctx.signal)
	if err != nil {
		return nil, err
	}
	if _, ok := v.(T); !ok && v != nil {
		panic(errTypeMismatch)
	}
	return v, nil
}

// Self is the effect operation for reading the shard's own id.
type Self struct {
	kont.Phantom[int]
}

// DispatchShard handles Self. Never blocks.
func (Self) DispatchShard(ctx *shardContext) (kont.Resumed, error) {
	return ctx.peer.self(), nil
}

// Members is the effect operation for reading the mesh's joined count.
type Members struct {
	kont.Phantom[int]
}

// DispatchShard handles Members. Never blocks.
func (Members) DispatchShard(ctx *shardContext) (kont.Resumed, error) {
	return ctx.peer.members(), nil
}
