// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mesh_test

import (
	"context"
	"testing"

	"code.hybscloud.com/kont"
	"code.hybscloud.com/mesh"
)

// BenchmarkBridgeSendTryRecv measures one uncontended send/receive pair.
func BenchmarkBridgeSendTryRecv(b *testing.B) {
	skipRace(b)
	br := mesh.NewBridge[int]()
	rx, _ := br.Receiver()
	b.ReportAllocs()
	for b.Loop() {
		br.Send(1)
		rx.TryRecv()
	}
}

// BenchmarkBridgePoll measures a send followed by a registering poll.
func BenchmarkBridgePoll(b *testing.B) {
	skipRace(b)
	br := mesh.NewBridge[int]()
	rx, _ := br.Receiver()
	sig := mesh.NewSignal()
	b.ReportAllocs()
	for b.Loop() {
		br.Send(1)
		rx.Poll(sig)
	}
}

// BenchmarkShardSendTo measures a checked addressed send plus receive.
func BenchmarkShardSendTo(b *testing.B) {
	skipRace(b)
	m, _ := mesh.New[int](2)
	s0 := m.Join(0)
	rx1, _ := m.Join(1).Receiver()
	b.ReportAllocs()
	for b.Loop() {
		s0.SendTo(1, 1)
		rx1.TryRecv()
	}
}

// BenchmarkContendedSend measures parallel producers into one bridge,
// drained by a single consumer goroutine.
func BenchmarkContendedSend(b *testing.B) {
	skipRace(b)
	br := mesh.NewBridge[int](mesh.WithSegmentSize(4096))
	rx, _ := br.Receiver()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		for range rx.All(ctx) {
		}
	}()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			br.Send(1)
		}
	})
	cancel()
	<-done
}

// BenchmarkExecRecv measures one Recv effect through Exec.
func BenchmarkExecRecv(b *testing.B) {
	skipRace(b)
	m, _ := mesh.New[int](1)
	ep, _ := mesh.Attach(m.Join(0))
	b.ReportAllocs()
	for b.Loop() {
		m.SendTo(0, 1)
		mesh.Exec(ep, mesh.RecvBind(func(n int) kont.Eff[int] {
			return kont.Pure(n)
		}))
	}
}

// BenchmarkExprRecv measures one Recv effect through ExecExpr.
func BenchmarkExprRecv(b *testing.B) {
	skipRace(b)
	m, _ := mesh.New[int](1)
	ep, _ := mesh.Attach(m.Join(0))
	b.ReportAllocs()
	for b.Loop() {
		m.SendTo(0, 1)
		mesh.ExecExpr(ep, mesh.ExprRecvBind(func(n int) kont.Expr[int] {
			return kont.ExprReturn(n)
		}))
	}
}
