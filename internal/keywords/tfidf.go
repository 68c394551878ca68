package keywords

import (
	"math"
	"strings"

	"github.com/spacesedan/docscore/internal/models"
	"github.com/spacesedan/docscore/internal/wordseg"
)

// dictionaryTotal is the order of magnitude of the summed word frequencies in the
// bundled Chinese dictionary; it anchors the IDF scale.
const dictionaryTotal = 6e7

type IDFSource interface {
	IDF(word string) float64
}

type frequencyLookup interface {
	Frequency(word string) (float64, bool)
}

// DictionaryIDF derives inverse document frequency from dictionary word frequencies.
// Words missing from the dictionary get the largest IDF.
type DictionaryIDF struct {
	Dict  frequencyLookup
	Total float64
}

func (d DictionaryIDF) IDF(word string) float64 {
	total := d.Total
	if total <= 0 {
		total = dictionaryTotal
	}
	if d.Dict != nil {
		if freq, ok := d.Dict.Frequency(word); ok && freq < total {
			return math.Log(total / (1 + freq))
		}
	}
	return math.Log(total)
}

// TFIDF scores words by (count / total kept words) × IDF and returns the n best.
func TFIDF(words []string, isStop func(string) bool, idf IDFSource, n int) []models.KeywordScore {
	counts := make(map[string]float64)
	total := 0.0
	for _, w := range words {
		w = strings.TrimSpace(w)
		if !wordseg.Keep(w) || (isStop != nil && isStop(w)) {
			continue
		}
		counts[w]++
		total++
	}
	if total == 0 {
		return nil
	}

	scores := make(map[string]float64, len(counts))
	for w, c := range counts {
		scores[w] = c / total * idf.IDF(w)
	}
	return Rank(scores, n)
}
