package thermal

// FanPercent maps cur linearly from [low, high] to [0, 100] using integer
// arithmetic. Values at or below low map to 0, at or above high to 100.
func FanPercent(low int, high int, cur int) int {
	if cur <= low {
		return 0
	}
	if cur >= high {
		return 100
	}
	return 100 * (cur - low) / (high - low)
}
