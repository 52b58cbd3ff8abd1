package common

// Approach moves v toward target by at most step and never overshoots.
func Approach(v, target, step float64) float64 {
	if v < target {
		v += step
		if v > target {
			return target
		}
		return v
	}
	if v > target {
		v -= step
		if v < target {
			return target
		}
	}
	return v
}
