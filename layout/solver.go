package layout

import "math"

// MinWindowSize is the floor applied to every scroll-column size
// descriptor that doesn't supply its own minimum.
const MinWindowSize = 50.0

// SizeInput describes one scroll column (or one window within a column)
// to the constraint solver.
type SizeInput struct {
	Weight    float64
	MinSize   float64
	MaxSize   *float64
	FixedSize *float64
}

// SizeOutput is the solver's result for one SizeInput.
type SizeOutput struct {
	Size           float64
	WasConstrained bool
}

// SolveSizes distributes `available` length across windows, honoring each
// entry's weight, minimum, maximum, and fixed size, separated by `gap`
// between adjacent entries. Ported step-for-step from the constraint
// solver this spec is grounded on:
//  1. If there isn't enough usable room for every minimum, distribute by
//     weight and mark everything constrained.
//  2. Fix entries with a fixed size, or whose max is at or below their min.
//  3. Iteratively distribute the remainder among non-fixed entries by
//     weight, pinning any entry whose proposal drops below its minimum and
//     restarting; this converges in at most len(windows)+1 passes.
//  4. Clamp entries exceeding their maximum and redistribute the excess to
//     the still-unclamped entries by weight.
//  5. Floor every returned size at 1 unit.
func SolveSizes(windows []SizeInput, available, gap float64) []SizeOutput {
	count := len(windows)
	if count == 0 {
		return nil
	}

	usable := available - gap*math.Max(float64(count-1), 0)

	totalMin := 0.0
	for _, w := range windows {
		totalMin += w.MinSize
	}

	if usable <= 0 || usable < totalMin {
		weights := make([]float64, count)
		totalWeight := 0.0
		for i, w := range windows {
			weights[i] = math.Max(w.Weight, 0.1)
			totalWeight += weights[i]
		}
		out := make([]SizeOutput, count)
		for i := range windows {
			size := 1.0
			if totalWeight > 0 {
				size = math.Max(math.Max(usable, 0)*weights[i]/totalWeight, 1.0)
			}
			out[i] = SizeOutput{Size: size, WasConstrained: true}
		}
		return out
	}

	sizes := make([]float64, count)
	fixed := make([]bool, count)

	for i, w := range windows {
		if w.FixedSize != nil {
			max := math.MaxFloat64
			if w.MaxSize != nil {
				max = *w.MaxSize
			}
			sizes[i] = clamp(*w.FixedSize, w.MinSize, max)
			fixed[i] = true
		} else if w.MaxSize != nil && *w.MaxSize <= w.MinSize {
			sizes[i] = w.MinSize
			fixed[i] = true
		}
	}

	weights := make([]float64, count)
	for i, w := range windows {
		weights[i] = math.Max(w.Weight, 0.1)
	}

	for pass := 0; pass < count+1; pass++ {
		used := 0.0
		for i := range windows {
			if fixed[i] {
				used += sizes[i]
			}
		}
		remaining := usable - used
		totalWeight := 0.0
		for i := range windows {
			if !fixed[i] {
				totalWeight += weights[i]
			}
		}
		if totalWeight <= 0 {
			break
		}

		violated := false
		for i := range windows {
			if fixed[i] {
				continue
			}
			proposed := remaining * (weights[i] / totalWeight)
			if proposed < windows[i].MinSize {
				sizes[i] = windows[i].MinSize
				fixed[i] = true
				violated = true
				break
			}
		}
		if !violated {
			for i := range windows {
				if !fixed[i] {
					sizes[i] = remaining * (weights[i] / totalWeight)
				}
			}
			break
		}
	}

	excess := 0.0
	maxFixed := make([]bool, count)
	for i, w := range windows {
		if w.MaxSize != nil && sizes[i] > *w.MaxSize {
			excess += sizes[i] - *w.MaxSize
			sizes[i] = *w.MaxSize
			maxFixed[i] = true
		}
	}

	if excess > 0 {
		redistWeight := 0.0
		for i := range windows {
			if !maxFixed[i] && !fixed[i] {
				redistWeight += weights[i]
			}
		}
		if redistWeight > 0 {
			for i := range windows {
				if !maxFixed[i] && !fixed[i] {
					sizes[i] += excess * (weights[i] / redistWeight)
				}
			}
		}
	}

	for i := range sizes {
		sizes[i] = math.Max(sizes[i], 1.0)
	}

	out := make([]SizeOutput, count)
	for i, size := range sizes {
		w := windows[i]
		wasConstrained := fixed[i] &&
			((w.MaxSize != nil && size >= *w.MaxSize) || math.Abs(size-w.MinSize) < 1e-9)
		out[i] = SizeOutput{Size: size, WasConstrained: wasConstrained}
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
