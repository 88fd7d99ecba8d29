package game

// Scores counts, for each color in join order, the cells bearing it.
// Colors with no cells score zero.
func Scores(g Grid, colors []Color) []int {
	out := make([]int, len(colors))
	for _, cell := range g {
		if cell == Unclaimed {
			continue
		}
		for i, c := range colors {
			if c == cell {
				out[i]++
				break
			}
		}
	}
	return out
}

// Winner returns the index of the highest score. Ties go to the lowest
// index, i.e. the earliest joiner. It returns -1 for an empty slice.
func Winner(scores []int) int {
	best := -1
	for i, s := range scores {
		if best == -1 || s > scores[best] {
			best = i
		}
	}
	return best
}
