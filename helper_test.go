// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mesh_test

import (
	"testing"

	"code.hybscloud.com/kont"
	"code.hybscloud.com/mesh"
)

// execExpr drives a protocol to completion on ep via Step+Advance loop.
// Waits on the endpoint wake channel on iox.ErrWouldBlock.
// Used by stepping tests to exercise the non-blocking path.
func execExpr[R any](ep *mesh.Endpoint, protocol kont.Expr[R]) R {
	result, susp := mesh.Step[R](protocol)
	for susp != nil {
		var err error
		result, susp, err = mesh.Advance(ep, susp)
		if err != nil {
			<-ep.Wake()
		}
	}
	return result
}

// joinAttach joins id on m and attaches an endpoint to the shard.
func joinAttach[T any](tb testing.TB, m *mesh.Mesh[T], id int) *mesh.Endpoint {
	tb.Helper()
	ep, err := mesh.Attach(m.Join(id))
	if err != nil {
		tb.Fatalf("Attach(%d): %v", id, err)
	}
	return ep
}

// mustMesh creates a mesh of n members or fails the test.
func mustMesh[T any](tb testing.TB, n int, opts ...mesh.Option) *mesh.Mesh[T] {
	tb.Helper()
	m, err := mesh.New[T](n, opts...)
	if err != nil {
		tb.Fatalf("New(%d): %v", n, err)
	}
	return m
}
