// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package mesh_test

import "testing"

// skipRace skips tests that share lfq MPSC segments across goroutines.
// Single-goroutine tests run under -race: program order orders every access.
// The race detector tracks per-variable happens-before and cannot
// see the rings' cross-variable memory ordering (store-release on data,
// load-acquire on sequence), producing false positives.
func skipRace(tb testing.TB) {
	tb.Helper()
	tb.Skip("skip: MPSC segments use cross-variable memory ordering")
}
