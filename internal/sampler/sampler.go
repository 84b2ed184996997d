// Package sampler selects which frame indices of two video sources are
// compared during a quality evaluation.
package sampler

// Plan is an ordered list of frame indices. Each index is pulled from both
// the reference and the candidate source, so entries always pair a frame
// with its counterpart at the same position.
type Plan []int

// Build computes a deterministic, evenly-spaced sample plan over the first
// n = min(refFrames, candFrames) frames.
//
// maxSamples caps the plan length; zero means no cap, so every frame up to n
// is planned. Indices are strictly increasing and all < n. The plan is empty
// only when n == 0, which callers must treat as an empty-source condition.
func Build(refFrames, candFrames, maxSamples int) Plan {
	n := min(refFrames, candFrames)
	if n <= 0 {
		return nil
	}

	samples := n
	if maxSamples > 0 && maxSamples < n {
		samples = maxSamples
	}

	stride := n / samples
	if stride < 1 {
		stride = 1
	}

	plan := make(Plan, 0, samples)
	for i := 0; i < n && len(plan) < samples; i += stride {
		plan = append(plan, i)
	}
	return plan
}

// Stride returns the spacing between consecutive plan entries, or 0 for
// plans with fewer than two entries.
func (p Plan) Stride() int {
	if len(p) < 2 {
		return 0
	}
	return p[1] - p[0]
}
