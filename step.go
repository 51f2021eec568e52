// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mesh

import (
	"code.hybscloud.com/kont"
)

// Step evaluates a shard protocol until the first effect suspension.
// Returns (result, nil) on completion, or (zero, suspension) if pending.
// Step touches no endpoint: the suspended operation (SendTo, Recv, ...)
// can be inspected through Suspension.Op, then routed to any attached
// endpoint with Advance.
func Step[R any](protocol kont.Expr[R]) (R, *kont.Suspension[R]) {
	return kont.StepExpr(protocol)
}

// Advance dispatches the suspended shard operation on the endpoint.
// Only Recv can fail, with iox.ErrWouldBlock when nothing is pending;
// the endpoint signal is then registered and woken by the next Send.
//
// On success (nil error), the suspension is consumed and the protocol
// advances to the next effect or completion.
// On iox.ErrWouldBlock, the suspension is unconsumed and may be retried.
func Advance[R any](ep *Endpoint, susp *kont.Suspension[R]) (R, *kont.Suspension[R], error) {
	sop, ok := susp.Op().(shardDispatcher)
	if !ok {
		panic("mesh: unhandled effect in Advance")
	}
	v, err := sop.DispatchShard(&ep.ctx)
	if err != nil {
		var zero R
		return zero, susp, err
	}
	result, next := susp.Resume(v)
	return result, next, nil
}

// Wake returns the endpoint's signal channel. It becomes ready after a
// Send to a shard whose Advance last returned iox.ErrWouldBlock, so an
// event loop can select on it instead of spinning.
func (ep *Endpoint) Wake() <-chan struct{} {
	return ep.ctx.signal.C()
}
