// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mesh

import (
	"context"
	"runtime"

	"github.com/sourcegraph/conc/pool"
)

// spawnConfig holds Spawn parameters.
type spawnConfig struct {
	pin bool
}

// SpawnOption configures Spawn.
type SpawnOption func(*spawnConfig)

// PinToCPU binds the OS thread of shard id to CPU id where the platform
// supports it. It is a no-op elsewhere.
func PinToCPU() SpawnOption {
	return func(c *spawnConfig) { c.pin = true }
}

// Spawn runs fn once per mesh slot, each on its own goroutine locked to an
// OS thread, with the shard joined under the slot's id. The first error
// cancels the context passed to every fn; Spawn waits for all of them and
// returns that error.
func Spawn[T any](ctx context.Context, m *Mesh[T], fn func(ctx context.Context, s *Shard[T]) error, opts ...SpawnOption) error {
	var c spawnConfig
	for _, opt := range opts {
		opt(&c)
	}
	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	for id := range m.Capacity() {
		p.Go(func(ctx context.Context) error {
			runtime.LockOSThread()
			defer runtime.UnlockOSThread()
			if c.pin {
				if err := pinThread(id); err != nil {
					return err
				}
			}
			return fn(ctx, m.Join(id))
		})
	}
	return p.Wait()
}
