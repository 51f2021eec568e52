// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mesh_test

import (
	"errors"
	"testing"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
	"code.hybscloud.com/mesh"
)

func TestAttachTakesReceiver(t *testing.T) {
	m := mustMesh[int](t, 1)
	s := m.Join(0)
	ep, err := mesh.Attach(s)
	if err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if ep.ID() != 0 || ep.Serial() != m.Serial() {
		t.Fatalf("endpoint id=%d serial=%d", ep.ID(), ep.Serial())
	}
	if _, err := mesh.Attach(s); !errors.Is(err, mesh.ErrReceiverTaken) {
		t.Fatalf("second Attach got %v, want ErrReceiverTaken", err)
	}
	if _, ok := s.Receiver(); ok {
		t.Fatal("Receiver after Attach should be empty")
	}
}

func TestStepInspectOperations(t *testing.T) {
	m := mustMesh[int](t, 2)
	ep := joinAttach(t, m, 0)

	protocol := mesh.ExprSendUncheckedThen(1, 42, kont.ExprReturn("sent"))
	_, susp := mesh.Step[string](protocol)
	if susp == nil {
		t.Fatal("expected suspension for SendToUnchecked")
	}
	op, ok := susp.Op().(mesh.SendToUnchecked[int])
	if !ok {
		t.Fatalf("expected SendToUnchecked[int], got %T", susp.Op())
	}
	if op.To != 1 || op.Value != 42 {
		t.Fatalf("op got %+v", op)
	}

	result, susp, err := mesh.Advance(ep, susp)
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if susp != nil {
		t.Fatal("expected completion")
	}
	if result != "sent" {
		t.Fatalf("result got %q", result)
	}

	rx, _ := m.Join(1).Receiver()
	if v, ok := rx.TryRecv(); !ok || v != 42 {
		t.Fatalf("got (%d, %v), want (42, true)", v, ok)
	}
}

func TestAdvanceRecvWouldBlock(t *testing.T) {
	m := mustMesh[int](t, 1)
	ep := joinAttach(t, m, 0)

	protocol := mesh.ExprRecvBind(func(n int) kont.Expr[int] {
		return kont.ExprReturn(n * 2)
	})
	_, susp := mesh.Step[int](protocol)
	_, same, err := mesh.Advance(ep, susp)
	if !iox.IsWouldBlock(err) {
		t.Fatalf("Advance on empty got %v, want ErrWouldBlock", err)
	}
	if same != susp {
		t.Fatal("suspension must be returned unconsumed")
	}

	if err := m.SendTo(0, 21); err != nil {
		t.Fatalf("SendTo: %v", err)
	}
	select {
	case <-ep.Wake():
	default:
		t.Fatal("send should wake the endpoint")
	}

	result, next, err := mesh.Advance(ep, same)
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if next != nil || result != 42 {
		t.Fatalf("got (%d, %v), want (42, nil)", result, next)
	}
}

func TestStepSendToBindReportsDelivery(t *testing.T) {
	m := mustMesh[int](t, 3)
	ep := joinAttach(t, m, 0)

	protocol := mesh.ExprSendToBind(2, 7, func(ok bool) kont.Expr[bool] {
		return kont.ExprReturn(ok)
	})
	if delivered := execExpr(ep, protocol); delivered {
		t.Fatal("send to unjoined shard should not be delivered")
	}

	m.Join(1)
	m.Join(2)
	protocol = mesh.ExprSendToBind(2, 7, func(ok bool) kont.Expr[bool] {
		return kont.ExprReturn(ok)
	})
	if delivered := execExpr(ep, protocol); !delivered {
		t.Fatal("send to joined shard should be delivered")
	}
}

func TestStepSelfMembers(t *testing.T) {
	m := mustMesh[int](t, 4)
	m.Join(3)
	ep := joinAttach(t, m, 2)

	protocol := mesh.ExprSelfBind(func(id int) kont.Expr[[2]int] {
		return mesh.ExprMembersBind(func(n int) kont.Expr[[2]int] {
			return kont.ExprReturn([2]int{id, n})
		})
	})
	got := execExpr(ep, protocol)
	if got != [2]int{2, 2} {
		t.Fatalf("got %v, want [2 2]", got)
	}
}

func TestStepAdvanceAcrossGoroutines(t *testing.T) {
	skipRace(t)
	m := mustMesh[int](t, 2)
	ep0 := joinAttach(t, m, 0)
	ep1 := joinAttach(t, m, 1)

	// shard 0: send n to 1, wait for the reply.
	client := mesh.ExprSendUncheckedThen(1, 20,
		mesh.ExprRecvBind(func(n int) kont.Expr[int] {
			return kont.ExprReturn(n)
		}),
	)
	// shard 1: double what arrives and send it back.
	server := mesh.ExprRecvBind(func(n int) kont.Expr[int] {
		return mesh.ExprSendUncheckedThen(0, n*2, kont.ExprReturn(n))
	})

	var clientResult int
	done := make(chan struct{})
	go func() {
		clientResult = execExpr(ep0, client)
		close(done)
	}()
	serverResult := execExpr(ep1, server)
	<-done

	if clientResult != 40 || serverResult != 20 {
		t.Fatalf("client=%d server=%d, want 40 and 20", clientResult, serverResult)
	}
}

func TestAdvanceUnhandledPanics(t *testing.T) {
	type bogus struct{ kont.Phantom[int] }
	m := mustMesh[int](t, 1)
	ep := joinAttach(t, m, 0)

	defer func() {
		r := recover()
		msg, ok := r.(string)
		if !ok || msg != "mesh: unhandled effect in Advance" {
			t.Fatalf("unexpected panic: %v", r)
		}
	}()
	_, susp := mesh.Step[int](kont.ExprPerform(bogus{}))
	mesh.Advance(ep, susp)
}
