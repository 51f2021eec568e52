// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mesh

import (
	"code.hybscloud.com/kont"
)

// Loop runs a recursive shard protocol (Cont-world), such as a serving loop.
// step returns Left(nextState) to continue or Right(result) to finish.
func Loop[S, A any](initial S, step func(S) kont.Eff[kont.Either[S, A]]) kont.Eff[A] {
	return kont.Bind(step(initial), func(e kont.Either[S, A]) kont.Eff[A] {
		if next, ok := e.GetLeft(); ok {
			return Loop(next, step)
		}
		result, _ := e.GetRight()
		return kont.Pure(result)
	})
}

// ExprLoop runs a recursive shard protocol (Expr-world).
// step returns Left(nextState) to continue or Right(result) to finish.
// Fuses ExprBind inline to avoid the type-erasing wrapper closure.
func ExprLoop[S, A any](initial S, step func(S) kont.Expr[kont.Either[S, A]]) kont.Expr[A] {
	m := step(initial)
	if _, ok := m.Frame.(kont.ReturnFrame); ok {
		if next, ok := m.Value.GetLeft(); ok {
			return ExprLoop(next, step)
		}
		result, _ := m.Value.GetRight()
		return kont.ExprReturn(result)
	}
	bf := kont.AcquireBindFrame()
	bf.F = func(a kont.Erased) kont.Expr[kont.Erased] {
		e := a.(kont.Either[S, A])
		if next, ok := e.GetLeft(); ok {
			result := ExprLoop(next, step)
			return kont.Expr[kont.Erased]{Value: kont.Erased(result.Value), Frame: result.Frame}
		}
		result, _ := e.GetRight()
		return kont.Expr[kont.Erased]{Value: kont.Erased(result), Frame: kont.ReturnFrame{}}
	}
	bf.Next = kont.ReturnFrame{}
	var zero A
	return kont.Expr[A]{
		Value: zero,
		Frame: kont.ChainFrames(m.Frame, bf),
	}
}

// RecvN receives exactly n values addressed to this shard, in arrival order.
func RecvN[T any](n int) kont.Eff[[]T] {
	return Loop(make([]T, 0, max(n, 0)), func(acc []T) kont.Eff[kont.Either[[]T, []T]] {
		if len(acc) >= n {
			return kont.Pure(kont.Right[[]T, []T](acc))
		}
		return RecvBind(func(v T) kont.Eff[kont.Either[[]T, []T]] {
			return kont.Pure(kont.Left[[]T, []T](append(acc, v)))
		})
	})
}

// ExprRecvN is RecvN for Expr-world protocols.
func ExprRecvN[T any](n int) kont.Expr[[]T] {
	return ExprLoop(make([]T, 0, max(n, 0)), func(acc []T) kont.Expr[kont.Either[[]T, []T]] {
		if len(acc) >= n {
			return kont.ExprReturn(kont.Right[[]T, []T](acc))
		}
		return ExprRecvBind(func(v T) kont.Expr[kont.Either[[]T, []T]] {
			return kont.ExprReturn(kont.Left[[]T, []T](append(acc, v)))
		})
	})
}
