package compose

// Pane split bounds, in percent of the container width given to the
// editing pane.
const (
	MinSplitPercent     = 25.0
	MaxSplitPercent     = 75.0
	DefaultSplitPercent = 50.0
)

func clampSplit(percent float64) float64 {
	if percent < MinSplitPercent {
		return MinSplitPercent
	}
	if percent > MaxSplitPercent {
		return MaxSplitPercent
	}
	return percent
}

// dragState is the divider's two-state machine: idle or dragging.
// None of it survives a session close; Open resets the split.
type dragState struct {
	dragging     bool
	startX       int
	startPercent float64
}

func (d *dragState) start(x int, percent float64) {
	d.dragging = true
	d.startX = x
	d.startPercent = percent
}

// move recomputes the split for the current pointer position. The
// second return is false while idle, so stray moves change nothing.
func (d *dragState) move(x, containerWidth int) (float64, bool) {
	if !d.dragging || containerWidth <= 0 {
		return 0, false
	}
	delta := float64(x - d.startX)
	return clampSplit(d.startPercent + 100*delta/float64(containerWidth)), true
}

func (d *dragState) end() {
	d.dragging = false
}
