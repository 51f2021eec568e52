// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux

package mesh

import "golang.org/x/sys/unix"

// maxCPU bounds the affinity mask scan.
const maxCPU = 1 << 14

// pinThread binds the calling OS thread to the cpu-th CPU of its current
// affinity mask, wrapping around when cpu exceeds the allowed count.
func pinThread(cpu int) error {
	var allowed unix.CPUSet
	if err := unix.SchedGetaffinity(0, &allowed); err != nil {
		return err
	}
	n := allowed.Count()
	if n == 0 {
		return nil
	}
	want := cpu % n
	for i := 0; i < maxCPU; i++ {
		if !allowed.IsSet(i) {
			continue
		}
		if want > 0 {
			want--
			continue
		}
		var set unix.CPUSet
		set.Set(i)
		return unix.SchedSetaffinity(0, &set)
	}
	return nil
}
