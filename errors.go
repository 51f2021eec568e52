// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mesh

import "errors"

var (
	// ErrWrongShard is returned by an addressed send whose target is outside
	// the valid range: the joined count for checked shard sends, the
	// allocated capacity for mesh-level sends. The value is not delivered.
	ErrWrongShard = errors.New("mesh: can't send to a shard that doesn't exist")

	// ErrInvalidCapacity is returned when a mesh cannot be sized.
	ErrInvalidCapacity = errors.New("mesh: capacity must be at least 1")

	// ErrReceiverTaken is returned by Attach when the shard's receiver
	// has already been taken.
	ErrReceiverTaken = errors.New("mesh: receiver already taken")
)
