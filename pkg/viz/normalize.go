package viz

// DynamicRange is the window of values compressed into the visible color
// scale. Max anchors the top of the window; Width is how far below Max a
// value may sit before it clamps to zero. For dB-scaled spectrograms a width
// of 80 means "show the top 80 dB".
type DynamicRange struct {
	Max   float64
	Width float64
}

// Normalize compresses value into [0,1] within the window. Values at or below
// Max-Width map to 0, values at Max map to 1. A zero-width window maps
// everything to 0 instead of dividing by zero. Pure: same inputs, same output.
func (r DynamicRange) Normalize(value float64) float64 {
	threshold := r.Max - r.Width
	if r.Max == threshold {
		return 0
	}
	if value < threshold {
		value = threshold
	}
	if value > r.Max {
		value = r.Max
	}
	return (value - threshold) / (r.Max - threshold)
}
