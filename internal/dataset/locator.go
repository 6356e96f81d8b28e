package dataset

// NearestIndex returns the index of the coordinate value closest to
// target. Coordinates must be monotonic, ascending or descending.
// When target lands exactly midway between two coordinates the later
// index wins; a target at or beyond either end clamps to that end. A
// single-element sequence always yields index 0.
func NearestIndex(coords []float64, target float64) int {
	n := len(coords)
	if n <= 1 {
		return 0
	}
	if coords[0] <= coords[n-1] {
		// ascending
		if target <= coords[0] {
			return 0
		}
		if target >= coords[n-1] {
			return n - 1
		}
		for i := 0; i+1 < n; i++ {
			if target <= coords[i+1] {
				if target-coords[i] < coords[i+1]-target {
					return i
				}
				return i + 1
			}
		}
	} else {
		// descending
		if target >= coords[0] {
			return 0
		}
		if target <= coords[n-1] {
			return n - 1
		}
		for i := 0; i+1 < n; i++ {
			if target >= coords[i+1] {
				if coords[i]-target < target-coords[i+1] {
					return i
				}
				return i + 1
			}
		}
	}
	return n - 1
}

// Nearest returns the index of the dimension coordinate closest to
// target.
func (d Dimension) Nearest(target float64) int {
	return NearestIndex(d.Coords, target)
}
