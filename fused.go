// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mesh

import (
	"code.hybscloud.com/kont"
)

// SendToBind sends v to shard to and passes the delivery flag to f.
// Fuses Perform(SendTo[T]{To: to, Value: v}) + Bind.
func SendToBind[T, B any](to int, v T, f func(bool) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(SendTo[T]{To: to, Value: v}), f)
}

// SendUncheckedThen sends v to shard to, joined or not, then continues
// with next. Fuses Perform(SendToUnchecked[T]{To: to, Value: v}) + Then.
func SendUncheckedThen[T, B any](to int, v T, next kont.Eff[B]) kont.Eff[B] {
	return kont.Then(kont.Perform(SendToUnchecked[T]{To: to, Value: v}), next)
}

// RecvBind receives the next value addressed to this shard and passes it to f.
// Fuses Perform(Recv[T]{}) + Bind.
func RecvBind[T, B any](f func(T) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Recv[T]{}), f)
}

// SelfBind passes this shard's id to f.
func SelfBind[B any](f func(int) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Self{}), f)
}

// MembersBind passes the mesh's joined count to f.
func MembersBind[B any](f func(int) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Members{}), f)
}
