// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mesh

import (
	"code.hybscloud.com/kont"
)

// Reify converts a Cont-world shard protocol to Expr-world, for stepping
// with Step and Advance or scheduling with RunExpr. Run uses it to put
// Cont-world protocols on the same cooperative loop. Shard operations keep
// their concrete types, so Suspension.Op still reports SendTo[T] or Recv[T]
// after conversion.
func Reify[A any](m kont.Eff[A]) kont.Expr[A] {
	return kont.Reify(m)
}

// Reflect converts an Expr-world shard protocol to Cont-world, for
// evaluation with Exec or ExecError on an attached endpoint.
func Reflect[A any](m kont.Expr[A]) kont.Eff[A] {
	return kont.Reflect(m)
}
