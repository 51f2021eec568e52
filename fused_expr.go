// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mesh

import (
	"code.hybscloud.com/kont"
)

// Pre-allocated erased operations and frames to eliminate heap escapes
// when boxing empty structs into any/kont.Frame during Expr-world execution.
var (
	exprReturnFrame kont.Frame  = kont.ReturnFrame{}
	exprSelf        kont.Erased = Self{}
	exprMembers     kont.Erased = Members{}
)

// identityResume is the identity resume function for EffectFrame construction.
func identityResume(v kont.Erased) kont.Erased { return v }

func sendToBindUnwind[B any](data, _, _ kont.Erased, current kont.Erased) (kont.Erased, kont.Frame) {
	f := data.(func(bool) kont.Expr[B])
	delivered, _ := current.(bool)
	result := f(delivered)
	return kont.Erased(result.Value), result.Frame
}

// ExprSendToBind sends v to shard to and passes the delivery flag to f.
// Fuses ExprPerform(SendTo[T]{To: to, Value: v}) + ExprBind.
func ExprSendToBind[T, B any](to int, v T, f func(bool) kont.Expr[B]) kont.Expr[B] {
	bf := kont.AcquireUnwindFrame()
	bf.Data1 = f
	bf.Unwind = sendToBindUnwind[B]
	ef := kont.AcquireEffectFrame()
	ef.Operation = SendTo[T]{To: to, Value: v}
	ef.Resume = identityResume
	ef.Next = bf
	return kont.ExprSuspend[B](ef)
}

// ExprSendUncheckedThen sends v to shard to, joined or not, then continues
// with next. Fuses ExprPerform(SendToUnchecked[T]{To: to, Value: v}) + ExprThen.
func ExprSendUncheckedThen[T, B any](to int, v T, next kont.Expr[B]) kont.Expr[B] {
	tf := kont.AcquireThenFrame()
	tf.Second = kont.Expr[kont.Erased]{Value: kont.Erased(next.Value), Frame: next.Frame}
	tf.Next = exprReturnFrame
	ef := kont.AcquireEffectFrame()
	ef.Operation = SendToUnchecked[T]{To: to, Value: v}
	ef.Resume = identityResume
	ef.Next = tf
	return kont.ExprSuspend[B](ef)
}

func recvBindUnwind[T, B any](data, _, _ kont.Erased, current kont.Erased) (kont.Erased, kont.Frame) {
	f := data.(func(T) kont.Expr[B])
	var v T
	if current != nil {
		v = current.(T)
	}
	result := f(v)
	return kont.Erased(result.Value), result.Frame
}

// ExprRecvBind receives the next value addressed to this shard and passes it to f.
// Fuses ExprPerform(Recv[T]{}) + ExprBind.
func ExprRecvBind[T, B any](f func(T) kont.Expr[B]) kont.Expr[B] {
	bf := kont.AcquireUnwindFrame()
	bf.Data1 = f
	bf.Unwind = recvBindUnwind[T, B]
	ef := kont.AcquireEffectFrame()
	ef.Operation = Recv[T]{}
	ef.Resume = identityResume
	ef.Next = bf
	return kont.ExprSuspend[B](ef)
}

func intBindUnwind[B any](data, _, _ kont.Erased, current kont.Erased) (kont.Erased, kont.Frame) {
	f := data.(func(int) kont.Expr[B])
	n, _ := current.(int)
	result := f(n)
	return kont.Erased(result.Value), result.Frame
}

// ExprSelfBind passes this shard's id to f.
func ExprSelfBind[B any](f func(int) kont.Expr[B]) kont.Expr[B] {
	return exprIntBind(exprSelf, f)
}

// ExprMembersBind passes the mesh's joined count to f.
func ExprMembersBind[B any](f func(int) kont.Expr[B]) kont.Expr[B] {
	return exprIntBind(exprMembers, f)
}

func exprIntBind[B any](op kont.Erased, f func(int) kont.Expr[B]) kont.Expr[B] {
	bf := kont.AcquireUnwindFrame()
	bf.Data1 = f
	bf.Unwind = intBindUnwind[B]
	ef := kont.AcquireEffectFrame()
	ef.Operation = op
	ef.Resume = identityResume
	ef.Next = bf
	return kont.ExprSuspend[B](ef)
}
