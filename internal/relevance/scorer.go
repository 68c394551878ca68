// Package relevance scores how closely a document matches a target topic on a 0-10
// scale, combining direct keyword matches with latent topic matches.
package relevance

import (
	"log/slog"
	"strings"

	"github.com/spacesedan/docscore/internal/models"
	"github.com/spacesedan/docscore/internal/segmenter"
	"github.com/spacesedan/docscore/internal/topicmodel"
)

type KeywordExtractor interface {
	Extract(text string, topK int, phrases []string) []string
}

type TopicFitter interface {
	Fit(segments []models.Segment) *topicmodel.Model
}

type Options struct {
	MaxBytes      int
	KeywordTopK   int
	TopicTopWords int
}

type Scorer struct {
	extractor KeywordExtractor
	fitter    TopicFitter
	opts      Options
}

func NewScorer(extractor KeywordExtractor, fitter TopicFitter, opts Options) *Scorer {
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = segmenter.DefaultMaxBytes
	}
	if opts.KeywordTopK <= 0 {
		opts.KeywordTopK = 40
	}
	if opts.TopicTopWords <= 0 {
		opts.TopicTopWords = 10
	}
	return &Scorer{extractor: extractor, fitter: fitter, opts: opts}
}

// Analyze resolves the topic by name and scores text against it. Empty or blank text
// scores 0 without any further work.
func (s *Scorer) Analyze(text, topic string) models.RelevanceReport {
	if strings.TrimSpace(text) == "" {
		slog.Warn("[Relevance] Input text is empty")
		return models.RelevanceReport{RelevanceScore: 0}
	}

	set, err := models.LookupTopic(topic)
	if err != nil {
		slog.Warn("[Relevance] Unknown target topic, using default",
			slog.String("topic", topic),
			slog.String("default", set.Name))
	}
	return s.Score(text, set)
}

// Score computes the relevance report of text for set.
func (s *Scorer) Score(text string, set models.TargetKeywordSet) models.RelevanceReport {
	if len(set.Keywords) == 0 {
		def, _ := models.LookupTopic(models.DefaultTopic)
		slog.Warn("[Relevance] Target keyword set is empty, using default keywords",
			slog.String("topic", set.Name))
		set.Keywords = def.Keywords
	}

	extended := ExtendedKeywords(set)
	content := ContentMatches(text, extended)

	segments := segmenter.Split(text, s.opts.MaxBytes)
	if len(segments) == 0 {
		slog.Warn("[Relevance] Text produced no segments")
		return models.RelevanceReport{RelevanceScore: 0}
	}

	keywords := s.extractor.Extract(text, s.opts.KeywordTopK, models.InjectedPhrases())

	var topicKeywords [][]string
	model := s.fitter.Fit(segments)
	if model != nil {
		topicKeywords = model.TopKeywords(s.opts.TopicTopWords)
	}

	report := models.RelevanceReport{
		ContentMatches:    content,
		TopicModelPresent: model != nil,
		Keywords:          keywords,
		TopicKeywords:     topicKeywords,
	}

	report.DirectMatches = Intersect(extended, keywords)
	if len(report.DirectMatches) == 0 && len(content) > 0 {
		slog.Info("[Relevance] No extracted keyword matched, using literal content matches",
			slog.Int("matches", len(content)))
		report.DirectMatches = content
		report.ContentFallback = true
	}

	report.Direct = DirectScore(report.DirectMatches, set)
	report.Topic = TopicScore(topicKeywords, extended, len(set.Keywords))
	report.Raw = Combine(report.Direct, report.Topic)

	final, floored := ApplyFloor(text, report.Raw)
	if floored {
		slog.Info("[Relevance] Floor terms present, raising score",
			slog.String("primary", models.FloorPrimary),
			slog.String("secondary", models.FloorSecondary),
			slog.Float64("raw", report.Raw))
	}
	report.FloorApplied = floored
	report.RelevanceScore = Round(final)

	slog.Debug("[Relevance] Scored document",
		slog.String("topic", set.Name),
		slog.Float64("direct", report.Direct),
		slog.Float64("topic_score", report.Topic),
		slog.Int("relevance", report.RelevanceScore))
	return report
}
