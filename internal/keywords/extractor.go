// Package keywords extracts ranked keywords by fusing a TF-IDF signal with a TextRank
// signal computed over the same text.
package keywords

import (
	"log/slog"

	"github.com/spacesedan/docscore/internal/models"
	"github.com/spacesedan/docscore/internal/wordseg"
)

type Tokenizer interface {
	Cut(text string) []string
	Tag(text string) []wordseg.Tagged
	Frequency(word string) (float64, bool)
	IsStop(word string) bool
}

type Extractor struct {
	tok Tokenizer
	idf IDFSource
	// extended asks each signal for twice the requested number of keywords before fusion.
	extended bool
}

func NewExtractor(tok Tokenizer, extended bool) *Extractor {
	return &Extractor{
		tok:      tok,
		idf:      DictionaryIDF{Dict: tok},
		extended: extended,
	}
}

// WithIDF swaps the IDF table, mainly for tests.
func (e *Extractor) WithIDF(idf IDFSource) *Extractor {
	e.idf = idf
	return e
}

// Scores returns up to topK fused keywords with their weights. Phrases found verbatim
// in text are added at InjectedWeight when neither signal produced them.
func (e *Extractor) Scores(text string, topK int, phrases []string) []models.KeywordScore {
	if topK <= 0 {
		topK = 20
	}
	perSignal := topK
	if e.extended {
		perSignal = 2 * topK
	}

	tfidf := TFIDF(e.tok.Cut(text), e.tok.IsStop, e.idf, perSignal)
	rank := TextRank(e.tok.Tag(text), e.tok.IsStop, perSignal)

	fused := Fuse(tfidf, rank)
	injected := Inject(fused, text, phrases, InjectedWeight)

	ranked := Rank(fused, topK)
	slog.Debug("[KeywordExtractor] Keywords extracted",
		slog.Int("tfidf", len(tfidf)),
		slog.Int("textrank", len(rank)),
		slog.Int("injected", injected),
		slog.Int("returned", len(ranked)))
	return ranked
}

// Extract returns the keywords only, most relevant first.
func (e *Extractor) Extract(text string, topK int, phrases []string) []string {
	scores := e.Scores(text, topK, phrases)
	out := make([]string, len(scores))
	for i, s := range scores {
		out[i] = s.Keyword
	}
	return out
}
