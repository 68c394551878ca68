// Package sentiment scores documents in [-1, 1] as the length-weighted average of
// per-segment classifier results.
package sentiment

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"gonum.org/v1/gonum/floats"

	"github.com/spacesedan/docscore/internal/models"
	"github.com/spacesedan/docscore/internal/segmenter"
)

// EmptyPolicy decides the answer for documents with nothing to score.
type EmptyPolicy string

const (
	// EmptyZero answers a bare 0, as the in-process backends do.
	EmptyZero EmptyPolicy = "zero"
	// EmptyNeutral answers {neutral, 0.0}, as the remote backends do.
	EmptyNeutral EmptyPolicy = "neutral"
)

func (p EmptyPolicy) Result() models.DocumentSentiment {
	if p == EmptyNeutral {
		return models.DocumentSentiment{Label: models.LabelNeutral, Score: 0}
	}
	return models.DocumentSentiment{Score: 0}
}

// SignedValue maps a result onto [-1, 1]: 2p-1 for positive, -(2p-1) for negative.
func SignedValue(r models.SentimentResult) float64 {
	v := r.Probability*2 - 1
	if r.Label == models.LabelPositive {
		return v
	}
	return -v
}

// Weights gives each segment its share of the total character (rune) length.
func Weights(segments []models.Segment) []float64 {
	weights := make([]float64, len(segments))
	total := 0
	for _, s := range segments {
		total += utf8.RuneCountInString(s.Text)
	}
	for i, s := range segments {
		if total == 0 {
			weights[i] = 1 / float64(len(segments))
			continue
		}
		weights[i] = float64(utf8.RuneCountInString(s.Text)) / float64(total)
	}
	return weights
}

func labelFor(score float64) string {
	switch {
	case score > 0:
		return models.LabelPositive
	case score < 0:
		return models.LabelNegative
	default:
		return models.LabelNeutral
	}
}

type Aggregator struct {
	classifier Classifier
	maxBytes   int
	policy     EmptyPolicy
}

func NewAggregator(classifier Classifier, maxBytes int, policy EmptyPolicy) *Aggregator {
	if policy != EmptyNeutral {
		policy = EmptyZero
	}
	return &Aggregator{classifier: classifier, maxBytes: maxBytes, policy: policy}
}

func (a *Aggregator) Policy() EmptyPolicy {
	return a.policy
}

// Score segments text, classifies every segment and combines the signed values with
// length weights. Segments whose classification fails are skipped and the weights are
// taken over the remaining segments. With nothing scored the empty policy answers.
func (a *Aggregator) Score(ctx context.Context, text string) models.DocumentSentiment {
	if strings.TrimSpace(text) == "" {
		return a.policy.Result()
	}

	segments := segmenter.Split(text, a.maxBytes)
	if len(segments) == 0 {
		return a.policy.Result()
	}

	scored := make([]models.Segment, 0, len(segments))
	results := make([]models.SentimentResult, 0, len(segments))
	skipped := 0
	for i, seg := range segments {
		if err := ctx.Err(); err != nil {
			slog.Warn("[Sentiment] Context done, skipping remaining segments",
				slog.Int("remaining", len(segments)-i),
				slog.String("error", err.Error()))
			skipped += len(segments) - i
			break
		}

		res, err := a.classifier.Classify(ctx, seg.Text)
		if err != nil {
			slog.Warn("[Sentiment] Segment classification failed, skipping segment",
				slog.Int("segment", i),
				slog.Int("bytes", seg.Bytes),
				slog.String("error", err.Error()))
			skipped++
			continue
		}
		scored = append(scored, seg)
		results = append(results, res)
	}

	if len(scored) == 0 {
		slog.Warn("[Sentiment] No segment could be scored",
			slog.Int("segments", len(segments)))
		out := a.policy.Result()
		out.Skipped = skipped
		return out
	}

	weights := Weights(scored)
	signed := make([]float64, len(results))
	details := make([]models.SegmentSentiment, len(results))
	for i, r := range results {
		signed[i] = SignedValue(r)
		details[i] = models.SegmentSentiment{
			Segment:         scored[i],
			SentimentResult: r,
			Signed:          signed[i],
			Weight:          weights[i],
		}
	}

	score := floats.Dot(signed, weights)
	slog.Debug("[Sentiment] Document scored",
		slog.Int("segments", len(scored)),
		slog.Int("skipped", skipped),
		slog.Float64("score", score))

	return models.DocumentSentiment{
		Label:    labelFor(score),
		Score:    score,
		Segments: details,
		Skipped:  skipped,
	}
}
