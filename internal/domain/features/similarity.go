package features

import (
	"github.com/stoik/url-guard/internal/domain/trust"
)

// suspiciousDistance is the exclusive upper bound of normalized edit distance
// under which a non-whitelisted domain is considered a lookalike
const suspiciousDistance = 0.3

// MinDistance returns the smallest normalized edit distance between domain
// and any entry of legitimate. An empty domain returns 1.0.
func MinDistance(domain string, legitimate []string) float64 {
	clean := []rune(trust.Normalize(domain))
	if len(clean) == 0 {
		return 1.0
	}

	minDistance := 1.0
	for _, entry := range legitimate {
		known := []rune(entry)
		distance := levenshteinDistance(clean, known)
		normalized := float64(distance) / float64(max(len(clean), len(known)))
		if normalized < minDistance {
			minDistance = normalized
		}
		if minDistance == 0 {
			break
		}
	}

	return minDistance
}

// IsSuspiciousSimilarity reports a lookalike domain: close to a known brand
// but not equal to it. Whitelisted domains are never suspicious.
func IsSuspiciousSimilarity(whitelisted bool, minDistance float64) bool {
	if whitelisted {
		return false
	}
	return minDistance > 0 && minDistance < suspiciousDistance
}

// levenshteinDistance calculates the edit distance between two rune slices
func levenshteinDistance(s1, s2 []rune) int {
	// Base cases: if either string is empty, distance is the other string's length
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	// Two rolling rows of the DP table: prev[j] = distance between s1[0:i-1] and s2[0:j]
	prev := make([]int, len(s2)+1)
	curr := make([]int, len(s2)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(s1); i++ {
		curr[0] = i
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}

			curr[j] = min(
				prev[j]+1,      // Deletion
				curr[j-1]+1,    // Insertion
				prev[j-1]+cost, // Substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(s2)]
}
