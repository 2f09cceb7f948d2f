// Package fuzzy provides string similarity scores on a 0–100 scale.
//
// Scores are based on the normalized Indel similarity (insertions and deletions
// only), computed from the longest common subsequence of the two strings.
// PartialRatio rewards a short query that appears nearly verbatim anywhere
// inside a longer candidate.
package fuzzy

// Ratio returns the normalized Indel similarity of a and b:
// 100 * 2 * LCS(a, b) / (len(a) + len(b)), measured in runes.
// Two empty strings are identical and score 100.
func Ratio(a, b string) float64 {
	return ratio([]rune(a), []rune(b))
}

// PartialRatio returns the best Ratio between the shorter string and every
// alignment of it against the longer one.
//
// With s the shorter string (n runes) and l the longer (m runes), the
// alignments are the prefixes of l of length 1..n-1, every substring of l of
// length n, and the suffixes of l of length n-1..1. When n == m the roles are
// also swapped. An empty string scores 0 against a non-empty one; two empty
// strings score 100.
func PartialRatio(a, b string) float64 {
	s, l := []rune(a), []rune(b)
	if len(s) > len(l) {
		s, l = l, s
	}

	if len(s) == 0 {
		if len(l) == 0 {
			return 100
		}
		return 0
	}

	best := partial(s, l)
	if len(s) == len(l) && best < 100 {
		best = max(best, partial(l, s))
	}
	return best
}

func partial(s, l []rune) float64 {
	n, m := len(s), len(l)
	best := 0.0

	consider := func(window []rune) bool {
		if r := ratio(s, window); r > best {
			best = r
		}
		return best == 100
	}

	for i := 1; i < n; i++ {
		if consider(l[:i]) {
			return best
		}
	}

	for i := 0; i <= m-n; i++ {
		if consider(l[i : i+n]) {
			return best
		}
	}

	for i := m - n + 1; i < m; i++ {
		if consider(l[i:]) {
			return best
		}
	}

	return best
}

func ratio(a, b []rune) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 100
	}
	return 100 * float64(2*lcs(a, b)) / float64(total)
}

// lcs returns the length of the longest common subsequence of a and b.
func lcs(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				curr[j] = prev[j-1] + 1
			case prev[j] >= curr[j-1]:
				curr[j] = prev[j]
			default:
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
