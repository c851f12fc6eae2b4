// Copyright 2024 The delila Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package f1

// computeTimestamp reconstructs the 47-bit composite F1 timestamp, in
// nanoseconds.
//
// Composite time = (extendedTime << 31) + triggerTimeTag (both uint64);
// coarse_ns = composite * timeStepNs. Fine correction applies only when
// extras carry a fine-time field: fine_ns = (fineTime/1024.0) * timeStepNs.
// When extras are absent entirely, timestamp = triggerTimeTag * timeStepNs.
func computeTimestamp(triggerTimeTag uint32, hasExtras bool, x extrasInfo, timeStepNs uint32) float64 {
	if !hasExtras {
		return float64(triggerTimeTag) * float64(timeStepNs)
	}

	composite := (uint64(x.ExtendedTime) << 31) + uint64(triggerTimeTag)
	coarseNs := float64(composite) * float64(timeStepNs)

	if !x.HasFineTime {
		return coarseNs
	}

	fineNs := (float64(x.FineTime) / 1024.0) * float64(timeStepNs)
	return coarseNs + fineNs
}
