// Package entropy scores candidate secrets by character-distribution
// randomness and prunes likely placeholders.
package entropy

import (
	"math"

	"github.com/keysweep/keysweep/internal/types"
)

// DefaultThreshold keeps random tokens (base62 keys score well above 4)
// while dropping repeated-character and word-like placeholders.
const DefaultThreshold = 3.5

// Shannon returns the Shannon entropy of s over its character distribution,
// in bits per character.
func Shannon(s string) float64 {
	if s == "" {
		return 0
	}
	count := map[rune]int{}
	n := 0
	for _, r := range s {
		count[r]++
		n++
	}
	h := 0.0
	for _, c := range count {
		p := float64(c) / float64(n)
		h += -p * math.Log2(p)
	}
	return h
}

// Filter retains findings whose secret scores above threshold. Findings from
// high-confidence patterns (per highConf) bypass the gate entirely: a
// structured key format is already strong evidence on its own.
func Filter(findings []types.Finding, threshold float64, highConf func(pattern string) bool) []types.Finding {
	var out []types.Finding
	for _, f := range findings {
		if highConf != nil && highConf(f.Pattern) {
			out = append(out, f)
			continue
		}
		if Shannon(f.Secret) > threshold {
			out = append(out, f)
		}
	}
	return out
}
