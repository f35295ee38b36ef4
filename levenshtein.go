package rhymer

// Levenshtein returns the minimum number of single rune insertions, deletions
// or substitutions required to change a into b.
func Levenshtein(a, b string) int {
	return editDistance([]rune(a), []rune(b))
}

// PhonemeDistance is Levenshtein over phoneme tokens instead of runes.
func PhonemeDistance(a, b []string) int {
	return editDistance(a, b)
}

func editDistance[T comparable](a, b []T) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	if len(b) == 0 {
		return len(a)
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1]
				continue
			}
			curr[j] = 1 + min(prev[j], curr[j-1], prev[j-1])
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
