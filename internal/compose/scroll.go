package compose

import "math"

// Ratio returns a region's position as a fraction of its scrollable
// range. A region that cannot scroll maps to 0; there is no division
// by a zero or negative span.
func Ratio(r ScrollRegion) float64 {
	if r == nil {
		return 0
	}
	span := r.ScrollHeight() - r.ViewHeight()
	if span <= 0 {
		return 0
	}
	return float64(r.Top()) / float64(span)
}

// applyRatio positions a region at the given fraction of its own
// scrollable range. Proportional, not absolute: the two sides of a
// sync generally have different total heights.
func applyRatio(r ScrollRegion, ratio float64) {
	if r == nil {
		return
	}
	span := r.ScrollHeight() - r.ViewHeight()
	if span <= 0 {
		r.SetTop(0)
		return
	}
	r.SetTop(int(math.Round(ratio * float64(span))))
}
