// Copyright (c) 2026, NVIDIA CORPORATION. All rights reserved.
// This software is licensed under a 3-clause BSD license. Please consult the
// LICENSE.md file distributed with the sources of this project regarding your
// rights to use or distribute this software.

package perftest

import (
	"math"
	"time"
)

// DefaultIterations is the number of iterations of the computation loop
const DefaultIterations = 10000000

// Result gathers the outcome of a computation test
type Result struct {
	// Checksum is the value accumulated by the computation loop; it only
	// serves to compare runs and keep the loop from being optimized away
	Checksum float64

	// Elapsed is the wall-clock time the loop took
	Elapsed time.Duration
}

// Run accumulates the square roots of the integers in [0, iterations) and
// reports the elapsed wall-clock time. It is a crude throughput probe, not a
// precise benchmark.
func Run(iterations int) Result {
	var res Result
	start := time.Now()
	sum := 0.0
	for i := 0; i < iterations; i++ {
		sum += math.Sqrt(float64(i))
	}
	res.Elapsed = time.Since(start)
	res.Checksum = sum
	return res
}
