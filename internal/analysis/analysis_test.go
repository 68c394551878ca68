package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/docscore/config"
	"github.com/spacesedan/docscore/internal/models"
	"github.com/spacesedan/docscore/internal/topicmodel"
)

type wordsExtractor struct{}

// Extract returns the space separated words of text.
func (wordsExtractor) Extract(text string, topK int, _ []string) []string {
	words := strings.Fields(text)
	if len(words) > topK {
		words = words[:topK]
	}
	return words
}

type absentFitter struct{}

func (absentFitter) Fit([]models.Segment) *topicmodel.Model { return nil }

type constClassifier struct {
	result models.SentimentResult
	err    error
}

func (c constClassifier) Classify(context.Context, string) (models.SentimentResult, error) {
	return c.result, c.err
}

func testConfig() config.Config {
	return config.Config{
		SegmentMaxBytes:      512,
		KeywordTopK:          40,
		TopicTopWords:        10,
		SentimentEmptyPolicy: config.EmptyPolicyZero,
		TargetTopic:          models.DefaultTopic,
	}
}

func TestAnalyzeBothScores(t *testing.T) {
	closed := false
	a := NewWithComponents(testConfig(), Components{
		Classifier: constClassifier{result: models.SentimentResult{Label: models.LabelPositive, Probability: 0.9}},
		Extractor:  wordsExtractor{},
		Fitter:     absentFitter{},
		Closer:     func() { closed = true },
	})

	report := a.Analyze(context.Background(), "民营经济 持续 发展 创新 政策。", "")

	require.NotNil(t, report.Sentiment)
	assert.InDelta(t, 0.8, report.Sentiment.Score, 1e-9)
	assert.Empty(t, report.Errors)
	assert.GreaterOrEqual(t, report.Relevance.RelevanceScore, 5)
	assert.False(t, report.Relevance.TopicModelPresent)

	a.Close()
	assert.True(t, closed)
}

func TestAnalyzeWithoutClassifierStillScoresRelevance(t *testing.T) {
	a := NewWithComponents(testConfig(), Components{
		Extractor: wordsExtractor{},
		Fitter:    absentFitter{},
	})

	report := a.Analyze(context.Background(), "民营经济 发展。", models.DefaultTopic)

	assert.Nil(t, report.Sentiment)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], ErrSentimentUnavailable.Error())
	assert.Equal(t, 5, report.Relevance.RelevanceScore)

	_, err := a.Sentiment(context.Background(), "民营经济 发展。")
	assert.ErrorIs(t, err, ErrSentimentUnavailable)
}

func TestAnalyzeEmptyText(t *testing.T) {
	cfg := testConfig()
	cfg.SentimentEmptyPolicy = config.EmptyPolicyNeutral
	a := NewWithComponents(cfg, Components{
		Classifier: constClassifier{err: errors.New("must not be called")},
		Extractor:  wordsExtractor{},
		Fitter:     absentFitter{},
	})

	report := a.Analyze(context.Background(), "", "")

	require.NotNil(t, report.Sentiment)
	assert.Equal(t, models.LabelNeutral, report.Sentiment.Label)
	assert.Zero(t, report.Sentiment.Score)
	assert.Zero(t, report.Relevance.RelevanceScore)
	assert.Empty(t, report.Errors)
}

func TestAnalyzeReportsSkippedSegments(t *testing.T) {
	a := NewWithComponents(testConfig(), Components{
		Classifier: constClassifier{err: errors.New("timeout")},
		Extractor:  wordsExtractor{},
		Fitter:     absentFitter{},
	})

	report := a.Analyze(context.Background(), "市场 改革。", "")

	require.NotNil(t, report.Sentiment)
	assert.Equal(t, 1, report.Sentiment.Skipped)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "could not be classified")
}

func TestKeywordsFromPlainExtractor(t *testing.T) {
	a := NewWithComponents(testConfig(), Components{
		Extractor: wordsExtractor{},
		Fitter:    absentFitter{},
	})

	got := a.Keywords("创新 发展 市场", 2)
	assert.Equal(t, []models.KeywordScore{{Keyword: "创新"}, {Keyword: "发展"}}, got)
	assert.Nil(t, a.Topics("创新 发展 市场"))
}

func TestNewClassifierBackends(t *testing.T) {
	cfg := testConfig()

	cfg.SentimentBackend = config.BackendVader
	c, closer, err := NewClassifier(cfg)
	require.NoError(t, err)
	assert.NotNil(t, c)
	assert.NotNil(t, closer)

	cfg.SentimentBackend = config.BackendRemote
	cfg.RemoteEndpoint = "http://localhost:1/classify"
	c, _, err = NewClassifier(cfg)
	require.NoError(t, err)
	assert.NotNil(t, c)

	cfg.SentimentBackend = config.BackendOpenAI
	cfg.OpenAIAPIKey = ""
	_, _, err = NewClassifier(cfg)
	assert.Error(t, err)

	cfg.SentimentBackend = "bert"
	_, _, err = NewClassifier(cfg)
	assert.ErrorIs(t, err, config.ErrUnknownBackend)
}
