// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package mesh

// defaultSegmentSize is the capacity of one lock-free endpoint queue segment.
// A full segment is chained to a fresh one, so this bounds allocation
// granularity, not queue length.
const defaultSegmentSize = 256

// config holds construction parameters shared by bridges of one mesh.
type config struct {
	segmentSize int
}

func newConfig(opts []Option) config {
	c := config{segmentSize: defaultSegmentSize}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Option configures a Mesh or a standalone Bridge.
type Option func(*config)

// WithSegmentSize sets the capacity of each endpoint queue segment.
// lfq rounds it up to the next power of two; values below 2 are raised to 2.
func WithSegmentSize(n int) Option {
	return func(c *config) {
		if n < 2 {
			n = 2
		}
		c.segmentSize = n
	}
}
