// Package runutil resolves runtime knobs shared by the CLI front ends.
package runutil

import "runtime"

// EffectiveThreads maps the user-facing thread count to a worker count:
// values below 1 mean "all CPUs".
func EffectiveThreads(n int) int {
	if n < 1 {
		return runtime.NumCPU()
	}
	return n
}
