// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mesh

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// Run evaluates one Cont-world protocol per endpoint and returns their
// results in order. All protocols are interleaved on the calling goroutine,
// a cooperative scheduler for shards sharing one thread. It backs off with
// iox.Backoff when no protocol can make progress.
//
// Run panics if len(eps) != len(protocols).
func Run[R any](eps []*Endpoint, protocols []kont.Eff[R]) []R {
	exprs := make([]kont.Expr[R], len(protocols))
	for i, p := range protocols {
		exprs[i] = Reify(p)
	}
	return RunExpr(eps, exprs)
}

// RunExpr is Run for Expr-world protocols.
func RunExpr[R any](eps []*Endpoint, protocols []kont.Expr[R]) []R {
	if len(eps) != len(protocols) {
		panic("mesh: Run needs one protocol per endpoint")
	}
	results := make([]R, len(protocols))
	susps := make([]*kont.Suspension[R], len(protocols))
	sops := make([]shardDispatcher, len(protocols))
	pending := 0
	for i, p := range protocols {
		results[i], susps[i] = Step[R](p)
		if susps[i] != nil {
			sops[i] = susps[i].Op().(shardDispatcher)
			pending++
		}
	}

	var bo iox.Backoff
	for pending > 0 {
		progress := false
		for i, susp := range susps {
			if susp == nil {
				continue
			}
			v, err := sops[i].DispatchShard(&eps[i].ctx)
			if err != nil {
				continue
			}
			results[i], susps[i] = susp.Resume(v)
			if susps[i] != nil {
				sops[i] = susps[i].Op().(shardDispatcher)
			} else {
				pending--
			}
			progress = true
		}
		if !progress {
			bo.Wait()
		} else {
			bo.Reset()
		}
	}
	return results
}
