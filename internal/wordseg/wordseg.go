// Package wordseg wraps the gse Chinese word segmenter with the stop-word and length
// filtering shared by keyword extraction and topic modelling.
package wordseg

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-ego/gse"
)

var ErrDictionary = errors.New("failed to load segmentation dictionary")

// phraseFrequency is high enough for registered phrases to win over their parts.
const phraseFrequency = 100000

// chineseStopWords are always filtered, whether or not gse's own stop list is loaded.
var chineseStopWords = map[string]struct{}{
	"的": {}, "了": {}, "在": {}, "是": {}, "我": {}, "有": {}, "和": {}, "就": {},
	"不": {}, "人": {}, "都": {}, "一": {}, "一个": {}, "上": {}, "也": {}, "很": {},
	"到": {}, "说": {}, "要": {}, "去": {}, "你": {}, "会": {}, "着": {}, "没有": {},
	"看": {}, "好": {}, "自己": {}, "这": {}, "中": {}, "或": {}, "与": {}, "以": {},
	"及": {}, "等": {}, "为": {}, "对": {}, "由": {}, "从": {},
}

// Tagged is a word with its part-of-speech tag.
type Tagged struct {
	Word string
	Pos  string
}

type Tokenizer struct {
	seg gse.Segmenter
}

// New loads the default gse dictionary and stop list, then registers phrases as
// dictionary words so they survive segmentation intact.
func New(phrases ...string) (*Tokenizer, error) {
	seg, err := gse.New()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDictionary, err)
	}
	if err := seg.LoadStop(); err != nil {
		slog.Warn("[WordSeg] Failed to load gse stop words, using built-in list only",
			slog.String("error", err.Error()))
	}

	t := &Tokenizer{seg: seg}
	for _, phrase := range phrases {
		if err := t.seg.AddToken(phrase, phraseFrequency, "n"); err != nil {
			slog.Warn("[WordSeg] Failed to register phrase",
				slog.String("phrase", phrase),
				slog.String("error", err.Error()))
		}
	}

	slog.Debug("[WordSeg] Segmenter ready", slog.Int("phrases", len(phrases)))
	return t, nil
}

// Cut segments text in accurate mode with HMM for unknown words.
func (t *Tokenizer) Cut(text string) []string {
	return t.seg.Cut(text, true)
}

func (t *Tokenizer) Tag(text string) []Tagged {
	pos := t.seg.Pos(text, false)
	tagged := make([]Tagged, 0, len(pos))
	for _, p := range pos {
		tagged = append(tagged, Tagged{Word: p.Text, Pos: p.Pos})
	}
	return tagged
}

// Frequency reports the dictionary frequency of word.
func (t *Tokenizer) Frequency(word string) (float64, bool) {
	freq, _, ok := t.seg.Find(word)
	return freq, ok && freq > 0
}

func (t *Tokenizer) IsStop(word string) bool {
	if IsStopWord(word) {
		return true
	}
	return t.seg.IsStop(word)
}

// Tokens is Cut followed by stop-word and Keep filtering.
func (t *Tokenizer) Tokens(text string) []string {
	return filter(t.Cut(text), t.IsStop)
}

// IsStopWord checks the built-in stop list only.
func IsStopWord(word string) bool {
	_, ok := chineseStopWords[word]
	return ok
}

// Keep reports whether a token is long enough and carries a letter or digit.
func Keep(word string) bool {
	word = strings.TrimSpace(word)
	if utf8.RuneCountInString(word) < 2 {
		return false
	}
	return strings.IndexFunc(word, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsNumber(r)
	}) >= 0
}

func filter(words []string, isStop func(string) bool) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if !Keep(w) || isStop(w) {
			continue
		}
		out = append(out, w)
	}
	return out
}
