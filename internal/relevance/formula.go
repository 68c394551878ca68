package relevance

import (
	"math"
	"strings"

	"github.com/spacesedan/docscore/internal/models"
)

const (
	MaxScore    = 10.0
	DirectShare = 0.7
	TopicShare  = 0.3
	FloorScore  = 5.0

	phrasePoints  = 2.0
	keywordPoints = 1.0
)

// ExtendedKeywords is the set's keywords followed by the key phrases, without duplicates.
func ExtendedKeywords(set models.TargetKeywordSet) []string {
	phrases := models.KeyPhrases()
	seen := make(map[string]struct{}, len(set.Keywords)+len(phrases))
	out := make([]string, 0, len(set.Keywords)+len(phrases))
	for _, list := range [][]string{set.Keywords, phrases} {
		for _, k := range list {
			if _, ok := seen[k]; ok || k == "" {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, k)
		}
	}
	return out
}

// Intersect returns the members of extended that appear in candidates, in extended order.
func Intersect(extended, candidates []string) []string {
	have := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		have[c] = struct{}{}
	}
	var out []string
	for _, k := range extended {
		if _, ok := have[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

// ContentMatches returns the extended keywords that occur as substrings of text.
func ContentMatches(text string, extended []string) []string {
	var out []string
	for _, k := range extended {
		if strings.Contains(text, k) {
			out = append(out, k)
		}
	}
	return out
}

// DirectScore awards one point per matched keyword and two per matched key phrase, scaled
// by the number of target keywords and capped at MaxScore.
func DirectScore(matches []string, set models.TargetKeywordSet) float64 {
	if len(set.Keywords) == 0 {
		return 0
	}
	keyPhrases := models.KeyPhrases()
	phrases := make(map[string]struct{}, len(keyPhrases))
	for _, p := range keyPhrases {
		phrases[p] = struct{}{}
	}
	points := 0.0
	for _, m := range matches {
		if _, ok := phrases[m]; ok {
			points += phrasePoints
		} else {
			points += keywordPoints
		}
	}
	return math.Min(MaxScore, MaxScore*points/float64(len(set.Keywords)))
}

// TopicScore is the best per-topic match ratio, scaled like DirectScore. No topics
// means no topic signal and scores 0.
func TopicScore(topics [][]string, extended []string, targetCount int) float64 {
	if targetCount <= 0 {
		return 0
	}
	best := 0.0
	for _, words := range topics {
		matched := len(Intersect(extended, words))
		best = math.Max(best, math.Min(MaxScore, MaxScore*float64(matched)/float64(targetCount)))
	}
	return best
}

func Combine(direct, topic float64) float64 {
	return DirectShare*direct + TopicShare*topic
}

// ApplyFloor lifts score to FloorScore when text mentions both floor terms, whatever
// the target topic.
func ApplyFloor(text string, score float64) (float64, bool) {
	if score >= FloorScore {
		return score, false
	}
	if strings.Contains(text, models.FloorPrimary) && strings.Contains(text, models.FloorSecondary) {
		return FloorScore, true
	}
	return score, false
}

// Round rounds half to even and clamps to [0, MaxScore].
func Round(score float64) int {
	r := math.RoundToEven(score)
	return int(math.Max(0, math.Min(MaxScore, r)))
}
