package rhymer

// StripStress returns p without its trailing stress digits, so "AE1" becomes "AE".
func StripStress(p string) string {
	return p[:stressIndex(p)]
}

// Stress returns the trailing stress digits of p and whether any were present.
func Stress(p string) (string, bool) {
	i := stressIndex(p)
	if i == len(p) {
		return "", false
	}
	return p[i:], true
}

// Reverse returns a reversed copy of seq.
func Reverse(seq []string) []string {
	out := make([]string, len(seq))
	for i, p := range seq {
		out[len(seq)-1-i] = p
	}
	return out
}

// stressIndex is the offset at which the trailing run of ASCII digits starts.
func stressIndex(p string) int {
	i := len(p)
	for i > 0 && p[i-1] >= '0' && p[i-1] <= '9' {
		i--
	}
	return i
}
