package keywords

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/spacesedan/docscore/internal/models"
	"github.com/spacesedan/docscore/internal/wordseg"
)

const (
	textRankWindow  = 5
	textRankDamping = 0.85
	textRankTol     = 1e-8
)

var textRankPOS = map[string]struct{}{"n": {}, "ns": {}, "vn": {}, "v": {}}

func allowedForRank(t wordseg.Tagged, isStop func(string) bool) bool {
	if _, ok := textRankPOS[t.Pos]; !ok {
		return false
	}
	w := strings.TrimSpace(t.Word)
	if !wordseg.Keep(w) {
		return false
	}
	return isStop == nil || !isStop(strings.ToLower(w))
}

// TextRank ranks words by centrality in their co-occurrence graph. Two candidate words
// are linked when they appear within textRankWindow tokens of each other; the edge
// weight is the number of such co-occurrences.
func TextRank(tagged []wordseg.Tagged, isStop func(string) bool, n int) []models.KeywordScore {
	type pair struct{ a, b string }
	cooccur := make(map[pair]float64)
	ids := make(map[string]int64)
	var order []string

	nodeID := func(w string) int64 {
		if id, ok := ids[w]; ok {
			return id
		}
		id := int64(len(order))
		ids[w] = id
		order = append(order, w)
		return id
	}

	for i, t := range tagged {
		if !allowedForRank(t, isStop) {
			continue
		}
		for j := i + 1; j < i+textRankWindow && j < len(tagged); j++ {
			if !allowedForRank(tagged[j], isStop) {
				continue
			}
			a, b := strings.TrimSpace(t.Word), strings.TrimSpace(tagged[j].Word)
			if a == b {
				continue
			}
			if b < a {
				a, b = b, a
			}
			cooccur[pair{a, b}]++
		}
	}
	if len(cooccur) == 0 {
		return nil
	}

	g := simple.NewWeightedDirectedGraph(0, 0)
	for p, w := range cooccur {
		from, to := simple.Node(nodeID(p.a)), simple.Node(nodeID(p.b))
		if g.Node(from.ID()) == nil {
			g.AddNode(from)
		}
		if g.Node(to.ID()) == nil {
			g.AddNode(to)
		}
		g.SetWeightedEdge(g.NewWeightedEdge(from, to, w))
		g.SetWeightedEdge(g.NewWeightedEdge(to, from, w))
	}

	ranks := network.PageRank(g, textRankDamping, textRankTol)

	minRank, maxRank := math.Inf(1), math.Inf(-1)
	for _, r := range ranks {
		minRank = math.Min(minRank, r)
		maxRank = math.Max(maxRank, r)
	}

	scores := make(map[string]float64, len(ranks))
	for id, r := range ranks {
		w := 1.0
		if denom := maxRank - minRank/10; denom > 0 {
			w = (r - minRank/10) / denom
		}
		// PageRank converges to tol; round so equal ranks compare equal across runs
		scores[order[id]] = math.Round(w*1e6) / 1e6
	}
	return Rank(scores, n)
}
