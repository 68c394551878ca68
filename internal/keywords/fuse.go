package keywords

import (
	"sort"
	"strings"

	"github.com/spacesedan/docscore/internal/models"
)

// InjectedWeight is the mid-range weight given to known phrases found verbatim.
const InjectedWeight = 0.5

// Fuse merges two ranked signals. Keywords present in both get the mean weight,
// keywords present in one keep that weight.
func Fuse(a, b []models.KeywordScore) map[string]float64 {
	fused := make(map[string]float64, len(a)+len(b))
	for _, k := range a {
		fused[k.Keyword] = k.Weight
	}
	for _, k := range b {
		if w, ok := fused[k.Keyword]; ok {
			fused[k.Keyword] = (w + k.Weight) / 2
		} else {
			fused[k.Keyword] = k.Weight
		}
	}
	return fused
}

// Inject adds every phrase that occurs verbatim in text and is not already scored.
func Inject(scores map[string]float64, text string, phrases []string, weight float64) int {
	added := 0
	for _, p := range phrases {
		if p == "" {
			continue
		}
		if _, ok := scores[p]; ok {
			continue
		}
		if strings.Contains(text, p) {
			scores[p] = weight
			added++
		}
	}
	return added
}

// Rank sorts by weight descending, ties by keyword, and keeps the first n (all when n <= 0).
func Rank(scores map[string]float64, n int) []models.KeywordScore {
	ranked := make([]models.KeywordScore, 0, len(scores))
	for k, w := range scores {
		ranked = append(ranked, models.KeywordScore{Keyword: k, Weight: w})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Weight != ranked[j].Weight {
			return ranked[i].Weight > ranked[j].Weight
		}
		return ranked[i].Keyword < ranked[j].Keyword
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
