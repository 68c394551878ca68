package keywords

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/docscore/internal/models"
	"github.com/spacesedan/docscore/internal/wordseg"
)

// spaceTokenizer treats space separated fields as words, all tagged as nouns.
type spaceTokenizer struct {
	freq map[string]float64
}

func (s spaceTokenizer) Cut(text string) []string { return strings.Fields(text) }

func (s spaceTokenizer) Tag(text string) []wordseg.Tagged {
	var out []wordseg.Tagged
	for _, f := range strings.Fields(text) {
		out = append(out, wordseg.Tagged{Word: f, Pos: "n"})
	}
	return out
}

func (s spaceTokenizer) Frequency(word string) (float64, bool) {
	f, ok := s.freq[word]
	return f, ok
}

func (s spaceTokenizer) IsStop(word string) bool { return wordseg.IsStopWord(word) }

type flatIDF struct{}

func (flatIDF) IDF(string) float64 { return 1 }

func TestFuseAveragesSharedKeywords(t *testing.T) {
	a := []models.KeywordScore{{Keyword: "民营", Weight: 0.8}, {Keyword: "经济", Weight: 0.4}}
	b := []models.KeywordScore{{Keyword: "民营", Weight: 0.2}, {Keyword: "市场", Weight: 0.6}}

	fused := Fuse(a, b)
	assert.Len(t, fused, 3)
	assert.InDelta(t, 0.5, fused["民营"], 1e-12)
	assert.InDelta(t, 0.4, fused["经济"], 1e-12)
	assert.InDelta(t, 0.6, fused["市场"], 1e-12)
}

func TestInjectOnlyAddsMissingVerbatimPhrases(t *testing.T) {
	scores := map[string]float64{"发展": 0.9}
	added := Inject(scores, "民营经济持续发展", []string{"民营经济", "发展", "高质量发展", ""}, InjectedWeight)

	assert.Equal(t, 1, added)
	assert.Equal(t, 0.9, scores["发展"])
	assert.Equal(t, InjectedWeight, scores["民营经济"])
	assert.NotContains(t, scores, "高质量发展")
}

func TestRankOrdersByWeightThenKeyword(t *testing.T) {
	ranked := Rank(map[string]float64{"b": 0.5, "a": 0.5, "c": 0.9, "d": 0.1}, 3)
	require.Len(t, ranked, 3)
	assert.Equal(t, "c", ranked[0].Keyword)
	assert.Equal(t, "a", ranked[1].Keyword)
	assert.Equal(t, "b", ranked[2].Keyword)

	assert.Len(t, Rank(map[string]float64{"x": 1, "y": 2}, 0), 2)
}

func TestTFIDFCountsKeptWordsOnly(t *testing.T) {
	words := []string{"民营", "民营", "经济", "的", "，", "x"}
	got := TFIDF(words, wordseg.IsStopWord, flatIDF{}, 10)
	require.Len(t, got, 2)
	assert.Equal(t, "民营", got[0].Keyword)
	assert.InDelta(t, 2.0/3.0, got[0].Weight, 1e-12)
	assert.InDelta(t, 1.0/3.0, got[1].Weight, 1e-12)

	assert.Nil(t, TFIDF([]string{"的", "了"}, wordseg.IsStopWord, flatIDF{}, 10))
}

func TestDictionaryIDF(t *testing.T) {
	idf := DictionaryIDF{Dict: spaceTokenizer{freq: map[string]float64{"经济": 999}}, Total: 1e6}
	assert.InDelta(t, math.Log(1e6/1000), idf.IDF("经济"), 1e-12)
	assert.InDelta(t, math.Log(1e6), idf.IDF("新词"), 1e-12)
	assert.Greater(t, idf.IDF("新词"), idf.IDF("经济"))
}

func TestTextRankFavoursCentralWords(t *testing.T) {
	tok := spaceTokenizer{}
	text := "经济 发展 经济 市场 经济 改革 经济 政策 孤立"
	ranked := TextRank(tok.Tag(text), tok.IsStop, 10)
	require.NotEmpty(t, ranked)
	assert.Equal(t, "经济", ranked[0].Keyword)
	assert.InDelta(t, 1.0, ranked[0].Weight, 1e-9)
	for _, k := range ranked {
		assert.Greater(t, k.Weight, 0.0)
		assert.LessOrEqual(t, k.Weight, 1.0+1e-9)
	}
}

func TestTextRankIgnoresDisallowedPOS(t *testing.T) {
	tagged := []wordseg.Tagged{{Word: "经济", Pos: "n"}, {Word: "非常", Pos: "d"}, {Word: "快速", Pos: "ad"}}
	assert.Nil(t, TextRank(tagged, nil, 5))
}

func TestExtractorFusesAndInjects(t *testing.T) {
	tok := spaceTokenizer{}
	ex := NewExtractor(tok, true).WithIDF(flatIDF{})

	text := "民营 经济 发展 民营 企业 创新 支持 民营经济"
	got := ex.Extract(text, 5, []string{"高质量发展", "民营经济", "创新"})
	require.Len(t, got, 5)
	assert.Equal(t, "民营", got[0])
	assert.NotContains(t, got, "高质量发展")
}

func TestExtractorInjectsPhraseMissedBySignals(t *testing.T) {
	tok := spaceTokenizer{}
	ex := NewExtractor(tok, false).WithIDF(flatIDF{})

	// "民营经济" only appears as a substring of a longer token
	scores := ex.Scores("促进民营经济壮大 政策", 10, []string{"民营经济"})
	var found bool
	for _, s := range scores {
		if s.Keyword == "民营经济" {
			found = true
			assert.Equal(t, InjectedWeight, s.Weight)
		}
	}
	assert.True(t, found)
}

func TestExtractorDeterministic(t *testing.T) {
	tok := spaceTokenizer{}
	ex := NewExtractor(tok, true).WithIDF(flatIDF{})
	text := "科技 创新 研发 技术 人才 科技 突破 数字 智能 创新 核心"
	first := ex.Extract(text, 6, nil)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, ex.Extract(text, 6, nil))
	}
}
