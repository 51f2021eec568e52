// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mesh

import (
	"code.hybscloud.com/kont"
)

// Exec runs a Cont-world shard protocol on an attached endpoint.
// A Recv with nothing pending parks the calling goroutine on the
// endpoint signal until the next Send to this shard; no other operation
// ever parks. A SendTo to a shard that has not joined resumes with false
// rather than failing the protocol, and a SendToUnchecked outside the
// mesh panics out of Exec.
//
// Exec occupies the goroutine for the whole protocol. To share one
// goroutine between several shards use Run, or drive each endpoint with
// Step and Advance from an event loop.
func Exec[R any](ep *Endpoint, protocol kont.Eff[R]) R {
	h := shardHandler[R]{ctx: &ep.ctx}
	return kont.Handle(protocol, h)
}

// ExecExpr runs an Expr-world shard protocol on an attached endpoint.
// Parking, delivery and panics follow Exec.
func ExecExpr[R any](ep *Endpoint, protocol kont.Expr[R]) R {
	h := shardHandler[R]{ctx: &ep.ctx}
	return kont.HandleExpr(protocol, h)
}
