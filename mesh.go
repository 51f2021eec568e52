// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mesh

import (
	"fmt"
	"runtime"

	"code.hybscloud.com/atomix"
)

// Mesh is a fixed-size registry of bridges shared by every member.
// It is created once, before any member joins, and outlives every Shard.
type Mesh[T any] struct {
	bridges []*Bridge[T]
	joined  atomix.Uint32
	serial  Serial
}

// New creates a mesh with n bridges and no members.
func New[T any](n int, opts ...Option) (*Mesh[T], error) {
	if n < 1 {
		return nil, ErrInvalidCapacity
	}
	c := newConfig(opts)
	m := &Mesh[T]{
		bridges: make([]*Bridge[T], n),
		serial:  nextSerial(),
	}
	for i := range m.bridges {
		m.bridges[i] = newBridge[T](c)
	}
	return m, nil
}

// NewPerCPU creates a mesh with one bridge per schedulable CPU,
// as reported by runtime.GOMAXPROCS.
func NewPerCPU[T any](opts ...Option) (*Mesh[T], error) {
	return New[T](runtime.GOMAXPROCS(0), opts...)
}

// Capacity returns the fixed number of bridges.
func (m *Mesh[T]) Capacity() int {
	return len(m.bridges)
}

// Serial returns the mesh's serial number.
func (m *Mesh[T]) Serial() Serial {
	return m.serial
}

// Members returns a snapshot of the number of successful joins.
func (m *Mesh[T]) Members() int {
	return int(m.joined.Load())
}

// Join claims bridge id's consumer and returns a Shard with send access to
// every bridge. Addressing is by the caller-chosen id, not by join order.
//
// Join panics if id is outside [0, Capacity()): the topology is static and a
// bad id is a programming error. Joining twice with the same id returns a
// second Shard whose Receiver is empty.
func (m *Mesh[T]) Join(id int) *Shard[T] {
	m.joined.Add(1)
	if id < 0 || id >= len(m.bridges) {
		panic(fmt.Sprintf("mesh: join id %d out of range [0, %d)", id, len(m.bridges)))
	}
	s := &Shard[T]{
		id:        id,
		serial:    m.serial,
		producers: make([]Sender[T], len(m.bridges)),
		joined:    &m.joined,
	}
	for i, b := range m.bridges {
		s.producers[i] = b.Sender()
	}
	if rx, ok := m.bridges[id].Receiver(); ok {
		s.consumer.Store(rx)
	}
	return s
}

// SendTo sends v to bridge id without joining. It fails with ErrWrongShard
// only when id is outside [0, Capacity()); whether id has joined is irrelevant.
func (m *Mesh[T]) SendTo(id int, v T) error {
	if id < 0 || id >= len(m.bridges) {
		return ErrWrongShard
	}
	m.bridges[id].Send(v)
	return nil
}
