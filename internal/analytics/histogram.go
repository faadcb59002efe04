package analytics

import "math"

// Bin is one histogram bucket. Lower is inclusive; Upper is exclusive
// except for the last bin.
type Bin struct {
	Lower float64
	Upper float64
	Count int
}

// Histogram splits values into bins equal-width buckets spanning
// [min, max]. When all values are equal the range is widened by 0.5 on each
// side. It returns nil for empty input or bins < 1.
func Histogram(values []int64, bins int) []Bin {
	if len(values) == 0 || bins < 1 {
		return nil
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	low, high := float64(lo), float64(hi)
	if lo == hi {
		low, high = low-0.5, high+0.5
	}
	width := (high - low) / float64(bins)

	out := make([]Bin, bins)
	for i := range out {
		out[i].Lower = low + float64(i)*width
		out[i].Upper = low + float64(i+1)*width
	}
	out[bins-1].Upper = high

	for _, v := range values {
		i := int(math.Floor((float64(v) - low) / width))
		if i >= bins {
			i = bins - 1
		}
		if i < 0 {
			i = 0
		}
		out[i].Count++
	}
	return out
}
