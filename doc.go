// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package mesh provides an addressable thread-per-core message mesh.
//
// A [Mesh] of capacity N owns N bridges. Each execution context joins the
// mesh once with a caller-chosen id, claiming that bridge's single consumer
// and receiving send access to every bridge. Delivery is addressed by id,
// never broadcast, and no lock is taken on the send or receive path.
//
// # Architecture
//
//   - Transport: Unbounded MPSC endpoint queues built from bounded lock-free
//     segments of [code.hybscloud.com/lfq].
//   - Readiness: A visibility counter per [Bridge] answers "is something ready"
//     with a single atomic read; the pop spins briefly via
//     [code.hybscloud.com/spin] when the counter got ahead of the physical push.
//   - Wake: A single-slot [Waker] registration per bridge, last registration wins.
//   - Non-blocking: [Receiver.Poll] returns [code.hybscloud.com/iox.ErrWouldBlock]
//     when nothing is pending.
//   - Effects: Shard protocols as algebraic effects on [code.hybscloud.com/kont],
//     evaluated with [Exec], [Run], or stepped with [Step] and [Advance].
//
// # API Topologies
//
//   - Mesh: [New], [NewPerCPU], [Mesh.Join], [Mesh.SendTo], [Mesh.Members].
//   - Shard: [Shard.Receiver], [Shard.SendTo], [Shard.SendToUnchecked].
//   - Receiver: [Receiver.Poll], [Receiver.TryRecv], [Receiver.Recv], [Receiver.All].
//   - Operations: [SendTo], [SendToUnchecked], [Recv], [Self], [Members].
//   - Bootstrap: [Spawn] runs one locked OS thread per mesh slot.
//
// # Ordering
//
// Values from one producer to one target arrive in send order. There is no
// ordering across producers, no fairness, and no capacity bound.
//
// # Example
//
//	m, _ := mesh.New[int](4)
//	err := mesh.Spawn(ctx, m, func(ctx context.Context, s *mesh.Shard[int]) error {
//		rx, _ := s.Receiver()
//		s.SendToUnchecked((s.ID()+1)%m.Capacity(), s.ID())
//		v, err := rx.Recv(ctx)
//		if err != nil {
//			return err
//		}
//		fmt.Println("shard", s.ID(), "got", v)
//		return nil
//	})
package mesh
