package topicmodel

import (
	"errors"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/mathext"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	ldaEpsilon         = 1e-10
	ldaDocUpdateIter   = 100
	ldaMeanChangeTol   = 1e-3
	ldaGammaShapeScale = 100.0
)

// Decomposer fits k latent components to a document × term matrix and returns the
// k × term component weights.
type Decomposer interface {
	Decompose(x *mat.Dense, k int) (*mat.Dense, error)
}

// LDA is latent Dirichlet allocation fitted with batch variational Bayes. Document and
// topic priors are 1/k. The same Seed always yields the same components.
type LDA struct {
	MaxIter int
	Seed    uint64
}

func (l LDA) Decompose(x *mat.Dense, k int) (*mat.Dense, error) {
	if x == nil {
		return nil, errors.New("lda: nil matrix")
	}
	nDocs, nTerms := x.Dims()
	if k < 1 || nDocs == 0 || nTerms == 0 {
		return nil, errors.New("lda: nothing to decompose")
	}
	maxIter := l.MaxIter
	if maxIter <= 0 {
		maxIter = 10
	}

	prior := 1 / float64(k)
	gamma := distuv.Gamma{
		Alpha: ldaGammaShapeScale,
		Beta:  ldaGammaShapeScale,
		Src:   rand.NewSource(l.Seed),
	}

	components := mat.NewDense(k, nTerms, nil)
	for t := 0; t < k; t++ {
		for w := 0; w < nTerms; w++ {
			components.Set(t, w, gamma.Rand())
		}
	}

	// non-zero entries per document
	ids := make([][]int, nDocs)
	cnts := make([][]float64, nDocs)
	for d := 0; d < nDocs; d++ {
		for w := 0; w < nTerms; w++ {
			if v := x.At(d, w); v != 0 {
				ids[d] = append(ids[d], w)
				cnts[d] = append(cnts[d], v)
			}
		}
	}

	for iter := 0; iter < maxIter; iter++ {
		expTopicWord := expDirichletExpectation(components)
		suff := mat.NewDense(k, nTerms, nil)

		for d := 0; d < nDocs; d++ {
			if len(ids[d]) == 0 {
				continue
			}
			docTopic := make([]float64, k)
			for t := range docTopic {
				docTopic[t] = gamma.Rand()
			}
			expDocTopic := expDirichletExpectation1D(docTopic)

			normPhi := make([]float64, len(ids[d]))
			computeNorm := func() {
				for j, w := range ids[d] {
					s := 0.0
					for t := 0; t < k; t++ {
						s += expDocTopic[t] * expTopicWord.At(t, w)
					}
					normPhi[j] = s + ldaEpsilon
				}
			}

			for inner := 0; inner < ldaDocUpdateIter; inner++ {
				last := append([]float64(nil), docTopic...)
				computeNorm()
				for t := 0; t < k; t++ {
					s := 0.0
					for j, w := range ids[d] {
						s += cnts[d][j] / normPhi[j] * expTopicWord.At(t, w)
					}
					docTopic[t] = expDocTopic[t]*s + prior
				}
				expDocTopic = expDirichletExpectation1D(docTopic)
				if meanChange(last, docTopic) < ldaMeanChangeTol {
					break
				}
			}

			computeNorm()
			for t := 0; t < k; t++ {
				for j, w := range ids[d] {
					suff.Set(t, w, suff.At(t, w)+expDocTopic[t]*cnts[d][j]/normPhi[j])
				}
			}
		}

		suff.MulElem(suff, expTopicWord)
		for t := 0; t < k; t++ {
			for w := 0; w < nTerms; w++ {
				components.Set(t, w, prior+suff.At(t, w))
			}
		}
	}

	for t := 0; t < k; t++ {
		for w := 0; w < nTerms; w++ {
			if v := components.At(t, w); math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, errors.New("lda: components diverged")
			}
		}
	}
	return components, nil
}

// expDirichletExpectation returns exp(E[log x]) row-wise for Dirichlet parameters m.
func expDirichletExpectation(m *mat.Dense) *mat.Dense {
	r, c := m.Dims()
	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		row := expDirichletExpectation1D(m.RawRowView(i))
		out.SetRow(i, row)
	}
	return out
}

func expDirichletExpectation1D(alpha []float64) []float64 {
	sum := 0.0
	for _, a := range alpha {
		sum += a
	}
	psiSum := mathext.Digamma(sum)
	out := make([]float64, len(alpha))
	for i, a := range alpha {
		out[i] = math.Exp(mathext.Digamma(a) - psiSum)
	}
	return out
}

func meanChange(a, b []float64) float64 {
	total := 0.0
	for i := range a {
		total += math.Abs(a[i] - b[i])
	}
	return total / float64(len(a))
}
