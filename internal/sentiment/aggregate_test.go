package sentiment

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/docscore/internal/models"
)

// stubClassifier answers by segment content and counts calls.
type stubClassifier struct {
	answers map[string]models.SentimentResult
	fail    map[string]bool
	calls   int
}

func (s *stubClassifier) Classify(_ context.Context, text string) (models.SentimentResult, error) {
	s.calls++
	if s.fail[text] {
		return models.SentimentResult{}, errors.New("backend unavailable")
	}
	if r, ok := s.answers[text]; ok {
		return r, nil
	}
	return models.SentimentResult{Label: models.LabelPositive, Probability: 0.5}, nil
}

func TestAggregatorWeightedScore(t *testing.T) {
	// 6 runes against 4 runes gives weights 0.6 and 0.4.
	a, b := "好好好好好。", "坏坏坏。"
	stub := &stubClassifier{answers: map[string]models.SentimentResult{
		a: {Label: models.LabelPositive, Probability: 0.9},
		b: {Label: models.LabelNegative, Probability: 0.9},
	}}

	agg := NewAggregator(stub, len(a), EmptyZero)
	got := agg.Score(context.Background(), a+b)

	require.Len(t, got.Segments, 2)
	assert.InDelta(t, 0.16, got.Score, 1e-9)
	assert.Equal(t, models.LabelPositive, got.Label)
	assert.InDelta(t, 0.6, got.Segments[0].Weight, 1e-9)
	assert.InDelta(t, -0.8, got.Segments[1].Signed, 1e-9)
	assert.Zero(t, got.Skipped)
}

func TestAggregatorEmptyPolicies(t *testing.T) {
	stub := &stubClassifier{}

	zero := NewAggregator(stub, 512, EmptyZero).Score(context.Background(), "  \n ")
	assert.Equal(t, models.DocumentSentiment{}, zero)

	neutral := NewAggregator(stub, 512, EmptyNeutral).Score(context.Background(), "")
	assert.Equal(t, models.LabelNeutral, neutral.Label)
	assert.Zero(t, neutral.Score)

	assert.Zero(t, stub.calls)
}

func TestAggregatorUnknownPolicyFallsBackToZero(t *testing.T) {
	agg := NewAggregator(&stubClassifier{}, 512, EmptyPolicy("other"))
	assert.Equal(t, EmptyZero, agg.Policy())
}

func TestAggregatorSkipsFailedSegments(t *testing.T) {
	a, b := "好好好好好。", "坏坏坏。"
	stub := &stubClassifier{
		answers: map[string]models.SentimentResult{a: {Label: models.LabelPositive, Probability: 0.9}},
		fail:    map[string]bool{b: true},
	}

	got := NewAggregator(stub, len(a), EmptyZero).Score(context.Background(), a+b)

	assert.Equal(t, 1, got.Skipped)
	require.Len(t, got.Segments, 1)
	assert.InDelta(t, 0.8, got.Score, 1e-9)
	assert.InDelta(t, 1.0, got.Segments[0].Weight, 1e-9)
}

func TestAggregatorAllSegmentsFail(t *testing.T) {
	text := "今天下雨。"
	stub := &stubClassifier{fail: map[string]bool{text: true}}

	got := NewAggregator(stub, 512, EmptyNeutral).Score(context.Background(), text)

	assert.Equal(t, models.LabelNeutral, got.Label)
	assert.Zero(t, got.Score)
	assert.Equal(t, 1, got.Skipped)
}

func TestAggregatorScoreStaysInRange(t *testing.T) {
	stub := &stubClassifier{answers: map[string]models.SentimentResult{
		"好。": {Label: models.LabelPositive, Probability: 1},
	}}
	text := strings.Repeat("好。", 50)

	got := NewAggregator(stub, 6, EmptyZero).Score(context.Background(), text)

	assert.InDelta(t, 1.0, got.Score, 1e-9)
	assert.LessOrEqual(t, got.Score, 1.0)
}

func TestAggregatorStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	stub := &stubClassifier{}

	got := NewAggregator(stub, 512, EmptyZero).Score(ctx, "今天下雨。明天晴天。")

	assert.Zero(t, stub.calls)
	assert.Equal(t, 1, got.Skipped)
	assert.Zero(t, got.Score)
}

func TestWeightsSumToOne(t *testing.T) {
	segments := []models.Segment{{Text: "一二三"}, {Text: "abc def"}, {Text: "四"}}
	weights := Weights(segments)

	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-12)
	assert.InDelta(t, 3.0/11.0, weights[0], 1e-12)
}

func TestSignedValue(t *testing.T) {
	assert.InDelta(t, 0.8, SignedValue(models.SentimentResult{Label: models.LabelPositive, Probability: 0.9}), 1e-12)
	assert.InDelta(t, -0.8, SignedValue(models.SentimentResult{Label: models.LabelNegative, Probability: 0.9}), 1e-12)
	assert.InDelta(t, 0.0, SignedValue(models.SentimentResult{Label: models.LabelNegative, Probability: 0.5}), 1e-12)
}
