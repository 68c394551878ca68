package topicmodel

import (
	"errors"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"
)

var ErrEmptyVocabulary = errors.New("empty vocabulary")

// Matrix is a document × term TF-IDF matrix with its column vocabulary.
type Matrix struct {
	X          *mat.Dense
	Vocabulary []string
}

// Vectorize turns tokenized documents into an l2-normalised TF-IDF matrix. The
// vocabulary keeps the maxFeatures most frequent terms across the corpus (ties broken
// alphabetically) and columns are ordered alphabetically. idf = ln((1+n)/(1+df)) + 1.
func Vectorize(docs [][]string, maxFeatures int) (*Matrix, error) {
	termFreq := make(map[string]float64)
	for _, doc := range docs {
		for _, tok := range doc {
			termFreq[strings.ToLower(tok)]++
		}
	}
	if len(termFreq) == 0 {
		return nil, ErrEmptyVocabulary
	}

	vocab := make([]string, 0, len(termFreq))
	for term := range termFreq {
		vocab = append(vocab, term)
	}
	sort.Strings(vocab)
	if maxFeatures > 0 && len(vocab) > maxFeatures {
		sort.SliceStable(vocab, func(i, j int) bool {
			return termFreq[vocab[i]] > termFreq[vocab[j]]
		})
		vocab = vocab[:maxFeatures]
		sort.Strings(vocab)
	}

	column := make(map[string]int, len(vocab))
	for i, term := range vocab {
		column[term] = i
	}

	nDocs := len(docs)
	x := mat.NewDense(nDocs, len(vocab), nil)
	docFreq := make([]float64, len(vocab))
	for d, doc := range docs {
		seen := make(map[int]bool)
		for _, tok := range doc {
			c, ok := column[strings.ToLower(tok)]
			if !ok {
				continue
			}
			x.Set(d, c, x.At(d, c)+1)
			if !seen[c] {
				seen[c] = true
				docFreq[c]++
			}
		}
	}

	for c := range vocab {
		idf := math.Log(float64(1+nDocs)/(1+docFreq[c])) + 1
		for d := 0; d < nDocs; d++ {
			if v := x.At(d, c); v != 0 {
				x.Set(d, c, v*idf)
			}
		}
	}

	for d := 0; d < nDocs; d++ {
		row := x.RowView(d)
		norm := mat.Norm(row, 2)
		if norm == 0 {
			continue
		}
		for c := range vocab {
			x.Set(d, c, x.At(d, c)/norm)
		}
	}

	return &Matrix{X: x, Vocabulary: vocab}, nil
}
