package utils

// NextPowerOfTwoExp returns the smallest k with 2^k >= x. Callers use it to
// size the grid for a known number of rows.
func NextPowerOfTwoExp(x int) int {
	k := 0
	for x > (1 << k) {
		k++
	}
	return k
}
