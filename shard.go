// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mesh

import (
	"fmt"
	"sync/atomic"

	"code.hybscloud.com/atomix"
)

// Shard is one mesh member's local handle: the consumer side of its own
// bridge plus a producer handle to every bridge in the mesh.
//
// A Shard belongs to one execution context. Sending through it is cheap and
// lock-free; Receiver must not be called concurrently.
type Shard[T any] struct {
	id        int
	serial    Serial
	consumer  atomic.Pointer[Receiver[T]]
	producers []Sender[T]
	joined    *atomix.Uint32
}

// ID returns the id this shard joined with.
func (s *Shard[T]) ID() int {
	return s.id
}

// Serial returns the serial of the mesh this shard joined.
func (s *Shard[T]) Serial() Serial {
	return s.serial
}

// Members returns a snapshot of how many joins the mesh has seen.
func (s *Shard[T]) Members() int {
	return int(s.joined.Load())
}

// Receiver takes this shard's consumer side.
// The first call returns it; later calls return (nil, false). The result is
// also empty when another shard joined earlier with the same id.
func (s *Shard[T]) Receiver() (*Receiver[T], bool) {
	rx := s.consumer.Swap(nil)
	return rx, rx != nil
}

// SendTo sends v to shard id. It fails with ErrWrongShard, without
// delivering v, when id is not below the current member count.
func (s *Shard[T]) SendTo(id int, v T) error {
	if id < 0 || id >= s.Members() || id >= len(s.producers) {
		return ErrWrongShard
	}
	s.producers[id].Send(v)
	return nil
}

// SendToUnchecked sends v to shard id whether or not id has joined yet.
// Every bridge exists from mesh construction, so v waits for its consumer.
// It panics if id is outside the mesh's fixed range.
func (s *Shard[T]) SendToUnchecked(id int, v T) {
	if id < 0 || id >= len(s.producers) {
		panic(fmt.Sprintf("mesh: shard id %d out of range [0, %d)", id, len(s.producers)))
	}
	s.producers[id].Send(v)
}
