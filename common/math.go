package common

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp restricts v to [lo, hi]. When hi < lo the upper bound wins.
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		v = lo
	}
	if v > hi {
		v = hi
	}
	return v
}

// StepToward moves n one unit toward zero.
func StepToward(n int) int {
	if n > 0 {
		return n - 1
	}
	return n
}
