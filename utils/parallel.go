package utils

import (
	"runtime"
)

// ParallelFactor controls the max level of parallelization. This might be useful
// to set in tests where too much parallelism actually slows tests down in
// aggregate.
var ParallelFactor = runtime.GOMAXPROCS(0)

func init() {
	if ParallelFactor <= 0 {
		ParallelFactor = 1
	}
	quarterProcs := float64(ParallelFactor) * .25
	if quarterProcs > 8 {
		ParallelFactor = int(quarterProcs)
	}
}

// ClampParallelism returns requested when it is positive, otherwise ParallelFactor.
func ClampParallelism(requested int) int {
	if requested <= 0 {
		return ParallelFactor
	}
	return requested
}
