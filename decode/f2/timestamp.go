// Copyright 2024 The delila Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package f2

// computeTimestamp reconstructs the F2 event timestamp, in nanoseconds:
// coarse_ns = rawTs * timeStepNs; fine_ns = (fineTime/1024.0) * timeStepNs.
func computeTimestamp(rawTs uint64, fineTime uint16, timeStepNs uint32) float64 {
	coarseNs := float64(rawTs) * float64(timeStepNs)
	fineNs := (float64(fineTime) / 1024.0) * float64(timeStepNs)
	return coarseNs + fineNs
}
