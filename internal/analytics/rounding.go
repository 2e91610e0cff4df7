package analytics

import "math"

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Percent returns part/total as a percentage rounded to two decimals, or 0
// when total is zero.
func Percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return Round2(float64(part) / float64(total) * 100)
}

// ExclusivePercentages converts counts of mutually exclusive categories into
// percentages at two decimals that sum to exactly 100. Hundredths lost to
// truncation go to the largest remainders, earliest index first on ties.
// All zeros yields all zeros.
func ExclusivePercentages(counts []int) []float64 {
	out := make([]float64, len(counts))
	total := 0
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return out
	}

	const scale = 10000 // hundredths of a percent
	floors := make([]int, len(counts))
	remainders := make([]int, len(counts))
	assigned := 0
	for i, c := range counts {
		floors[i] = c * scale / total
		remainders[i] = c * scale % total
		assigned += floors[i]
	}

	for left := scale - assigned; left > 0; left-- {
		best := -1
		for i, r := range remainders {
			if r > 0 && (best < 0 || r > remainders[best]) {
				best = i
			}
		}
		if best < 0 {
			break
		}
		floors[best]++
		remainders[best] = 0
	}

	for i, f := range floors {
		out[i] = float64(f) / 100
	}
	return out
}
