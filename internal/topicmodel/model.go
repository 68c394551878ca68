// Package topicmodel fits a latent topic decomposition over document segments and
// exposes the top keywords of each topic.
package topicmodel

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/spacesedan/docscore/internal/models"
)

type Tokenizer interface {
	Tokens(text string) []string
}

// Model is a fitted decomposition. A nil *Model means no topic signal is available.
type Model struct {
	Vocabulary []string
	Components *mat.Dense
}

func (m *Model) Topics() int {
	if m == nil || m.Components == nil {
		return 0
	}
	r, _ := m.Components.Dims()
	return r
}

// TopKeywords returns, per topic, the n terms with the largest component weight.
func (m *Model) TopKeywords(n int) [][]string {
	if m.Topics() == 0 {
		return nil
	}
	topics := make([][]string, m.Topics())
	for t := range topics {
		weights := m.Components.RawRowView(t)
		idx := make([]int, len(weights))
		for i := range idx {
			idx[i] = i
		}
		sort.SliceStable(idx, func(a, b int) bool { return weights[idx[a]] > weights[idx[b]] })
		if n > 0 && len(idx) > n {
			idx = idx[:n]
		}
		words := make([]string, len(idx))
		for i, j := range idx {
			words[i] = m.Vocabulary[j]
		}
		topics[t] = words
	}
	return topics
}

type Fitter struct {
	tok         Tokenizer
	decomposer  Decomposer
	topics      int
	maxFeatures int
}

func NewFitter(tok Tokenizer, decomposer Decomposer, topics, maxFeatures int) *Fitter {
	return &Fitter{
		tok:         tok,
		decomposer:  decomposer,
		topics:      topics,
		maxFeatures: maxFeatures,
	}
}

// Fit tokenizes each segment, vectorizes and decomposes. The topic count is clamped to
// min(configured, segments, vocabulary). Any failure returns nil.
func (f *Fitter) Fit(segments []models.Segment) *Model {
	if len(segments) == 0 {
		return nil
	}

	docs := make([][]string, len(segments))
	for i, s := range segments {
		docs[i] = f.tok.Tokens(s.Text)
	}

	m, err := Vectorize(docs, f.maxFeatures)
	if err != nil {
		if errors.Is(err, ErrEmptyVocabulary) {
			slog.Warn("[TopicModel] TF-IDF vocabulary is empty, no topic signal",
				slog.Int("segments", len(segments)))
		} else {
			slog.Warn("[TopicModel] Vectorization failed",
				slog.String("error", err.Error()))
		}
		return nil
	}

	k := min(f.topics, len(segments), len(m.Vocabulary))
	if k < 1 {
		return nil
	}

	components, err := f.decompose(m.X, k)
	if err != nil {
		slog.Warn("[TopicModel] Decomposition failed, no topic signal",
			slog.Int("topics", k),
			slog.String("error", err.Error()))
		return nil
	}

	slog.Debug("[TopicModel] Topic model fitted",
		slog.Int("topics", k),
		slog.Int("vocabulary", len(m.Vocabulary)),
		slog.Int("segments", len(segments)))
	return &Model{Vocabulary: m.Vocabulary, Components: components}
}

func (f *Fitter) decompose(x *mat.Dense, k int) (components *mat.Dense, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("decomposition panicked: %v", r)
		}
	}()
	return f.decomposer.Decompose(x, k)
}
