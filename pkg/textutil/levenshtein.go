package textutil

// Levenshtein returns the edit distance between a and b. Symmetric, and
// zero only for equal inputs.
func Levenshtein(a, b string) int {
	return levenshtein([]rune(a), []rune(b), -1)
}

// LevenshteinCapped is Levenshtein with an upper bound: as soon as no cell
// in the current row can stay within maxDist, it aborts and returns
// maxDist+1. A negative maxDist disables the cap.
func LevenshteinCapped(a, b string, maxDist int) int {
	return levenshtein([]rune(a), []rune(b), maxDist)
}

func levenshtein(a, b []rune, maxDist int) int {
	// Strip the common prefix, then the common suffix of the remainder.
	// The two strips never overlap.
	for len(a) > 0 && len(b) > 0 && a[0] == b[0] {
		a, b = a[1:], b[1:]
	}
	for len(a) > 0 && len(b) > 0 && a[len(a)-1] == b[len(b)-1] {
		a, b = a[:len(a)-1], b[:len(b)-1]
	}

	if len(a) == 0 {
		return capResult(len(b), maxDist)
	}
	if len(b) == 0 {
		return capResult(len(a), maxDist)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		rowMin := curr[0]
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = minOf(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
			if curr[j] < rowMin {
				rowMin = curr[j]
			}
		}
		if maxDist >= 0 && rowMin > maxDist {
			return maxDist + 1
		}
		prev, curr = curr, prev
	}

	return capResult(prev[len(b)], maxDist)
}

func capResult(d, maxDist int) int {
	if maxDist >= 0 && d > maxDist {
		return maxDist + 1
	}
	return d
}

// Similarity returns 1 - distance/max(len(a), len(b)), clamped to [0,1].
// Two empty strings are perfectly similar.
func Similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	if longest == 0 {
		return 1
	}
	sim := 1 - float64(levenshtein(ra, rb, -1))/float64(longest)
	if sim < 0 {
		return 0
	}
	if sim > 1 {
		return 1
	}
	return sim
}

func minOf(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
