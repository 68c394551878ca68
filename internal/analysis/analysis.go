// Package analysis wires segmentation, keyword extraction, topic modelling and
// sentiment classification into the two document scores.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spacesedan/docscore/config"
	"github.com/spacesedan/docscore/internal/clients"
	"github.com/spacesedan/docscore/internal/keywords"
	"github.com/spacesedan/docscore/internal/models"
	"github.com/spacesedan/docscore/internal/relevance"
	"github.com/spacesedan/docscore/internal/segmenter"
	"github.com/spacesedan/docscore/internal/sentiment"
	"github.com/spacesedan/docscore/internal/topicmodel"
	"github.com/spacesedan/docscore/internal/wordseg"
)

var ErrSentimentUnavailable = errors.New("sentiment backend unavailable")

type Report struct {
	Sentiment *models.DocumentSentiment `json:"sentiment,omitempty"`
	Relevance models.RelevanceReport    `json:"relevance"`
	Errors    []string                  `json:"errors,omitempty"`
}

// Components are the pieces an Analyzer runs. Classifier may be nil, in which case
// only relevance is answered.
type Components struct {
	Classifier sentiment.Classifier
	Extractor  relevance.KeywordExtractor
	Fitter     relevance.TopicFitter
	Closer     func()
}

type Analyzer struct {
	cfg          config.Config
	extractor    relevance.KeywordExtractor
	fitter       relevance.TopicFitter
	aggregator   *sentiment.Aggregator
	scorer       *relevance.Scorer
	sentimentErr error
	closer       func()
}

// New builds the analyzer described by cfg. A sentiment backend that cannot be set up
// is logged and remembered; the analyzer still answers relevance.
func New(cfg config.Config) (*Analyzer, error) {
	return build(cfg, true)
}

// NewRelevanceOnly skips the sentiment backend entirely.
func NewRelevanceOnly(cfg config.Config) (*Analyzer, error) {
	return build(cfg, false)
}

func build(cfg config.Config, withSentiment bool) (*Analyzer, error) {
	tok, err := wordseg.New(models.KeyPhrases()...)
	if err != nil {
		slog.Error("[Analyzer] Failed to load word segmenter",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("load word segmenter: %w", err)
	}

	comps := Components{
		Extractor: keywords.NewExtractor(tok, cfg.KeywordExtended),
		Fitter: topicmodel.NewFitter(tok,
			topicmodel.LDA{MaxIter: cfg.TopicMaxIter, Seed: cfg.TopicSeed},
			cfg.TopicCount, cfg.TopicMaxFeatures),
	}
	if !withSentiment {
		return NewWithComponents(cfg, comps), nil
	}

	classifier, closer, err := NewClassifier(cfg)
	if err != nil {
		slog.Error("[Analyzer] Sentiment backend unavailable, continuing with relevance only",
			slog.String("backend", cfg.SentimentBackend),
			slog.String("error", err.Error()))
		a := NewWithComponents(cfg, comps)
		a.sentimentErr = fmt.Errorf("%w: %w", ErrSentimentUnavailable, err)
		return a, nil
	}
	comps.Classifier = classifier
	comps.Closer = closer
	return NewWithComponents(cfg, comps), nil
}

func NewWithComponents(cfg config.Config, comps Components) *Analyzer {
	a := &Analyzer{
		cfg:       cfg,
		extractor: comps.Extractor,
		fitter:    comps.Fitter,
		closer:    comps.Closer,
		scorer: relevance.NewScorer(comps.Extractor, comps.Fitter, relevance.Options{
			MaxBytes:      cfg.SegmentMaxBytes,
			KeywordTopK:   cfg.KeywordTopK,
			TopicTopWords: cfg.TopicTopWords,
		}),
	}
	if comps.Classifier != nil {
		a.aggregator = sentiment.NewAggregator(comps.Classifier, cfg.SegmentMaxBytes,
			sentiment.EmptyPolicy(cfg.SentimentEmptyPolicy))
	} else {
		a.sentimentErr = ErrSentimentUnavailable
	}
	return a
}

// NewClassifier builds the sentiment backend named by cfg.SentimentBackend. The
// returned closer releases backend resources and is never nil.
func NewClassifier(cfg config.Config) (sentiment.Classifier, func(), error) {
	noop := func() {}
	switch cfg.SentimentBackend {
	case config.BackendLocal:
		h, err := sentiment.NewHugotClassifier(cfg.SentimentModelName, cfg.SentimentModelDir)
		if err != nil {
			return nil, noop, err
		}
		return h, h.Close, nil
	case config.BackendVader:
		return sentiment.NewVaderClassifier(), noop, nil
	case config.BackendOpenAI:
		client, err := clients.GetOpenAIClient(cfg.OpenAIAPIKey, cfg.RequestTimeout)
		if err != nil {
			return nil, noop, err
		}
		return sentiment.NewOpenAIClassifier(client, cfg.OpenAIModel), noop, nil
	case config.BackendRemote:
		client := clients.NewSentimentServiceClient(cfg.RemoteEndpoint, cfg.RequestTimeout)
		return sentiment.NewRemoteClassifier(client), noop, nil
	}
	return nil, noop, fmt.Errorf("%w: %s", config.ErrUnknownBackend, cfg.SentimentBackend)
}

func (a *Analyzer) Close() {
	if a.closer != nil {
		a.closer()
	}
}

func (a *Analyzer) topic(name string) string {
	if strings.TrimSpace(name) == "" {
		return a.cfg.TargetTopic
	}
	return name
}

// Sentiment scores text in [-1, 1].
func (a *Analyzer) Sentiment(ctx context.Context, text string) (models.DocumentSentiment, error) {
	if a.aggregator == nil {
		return models.DocumentSentiment{}, a.sentimentErr
	}
	return a.aggregator.Score(ctx, text), nil
}

// Relevance scores text against the named topic, the configured one when name is blank.
func (a *Analyzer) Relevance(text, topic string) models.RelevanceReport {
	return a.scorer.Analyze(text, a.topic(topic))
}

// Keywords returns the fused keyword ranking used for direct matching.
func (a *Analyzer) Keywords(text string, topK int) []models.KeywordScore {
	if topK <= 0 {
		topK = a.cfg.KeywordTopK
	}
	phrases := models.InjectedPhrases()
	if e, ok := a.extractor.(*keywords.Extractor); ok {
		return e.Scores(text, topK, phrases)
	}
	words := a.extractor.Extract(text, topK, phrases)
	out := make([]models.KeywordScore, len(words))
	for i, w := range words {
		out[i] = models.KeywordScore{Keyword: w}
	}
	return out
}

// Topics fits the topic model over text and returns each topic's top words. An absent
// model yields nil.
func (a *Analyzer) Topics(text string) [][]string {
	model := a.fitter.Fit(segmenter.Split(text, a.cfg.SegmentMaxBytes))
	return model.TopKeywords(a.cfg.TopicTopWords)
}

// Analyze runs both scores. Neither failure stops the other.
func (a *Analyzer) Analyze(ctx context.Context, text, topic string) Report {
	var report Report

	doc, err := a.Sentiment(ctx, text)
	if err != nil {
		report.Errors = append(report.Errors, err.Error())
	} else {
		report.Sentiment = &doc
		if doc.Skipped > 0 {
			report.Errors = append(report.Errors,
				fmt.Sprintf("%d segment(s) could not be classified", doc.Skipped))
		}
	}

	report.Relevance = a.Relevance(text, topic)

	slog.Info("[Analyzer] Document analyzed",
		slog.Int("relevance", report.Relevance.RelevanceScore),
		slog.Bool("sentiment", report.Sentiment != nil),
		slog.Int("errors", len(report.Errors)))
	return report
}
