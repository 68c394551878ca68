package sentiment

import (
	"context"

	"github.com/jonreiter/govader"

	"github.com/spacesedan/docscore/internal/models"
	"github.com/spacesedan/docscore/internal/textutil"
)

// VaderClassifier is a lexicon classifier suited to English segments. The compound
// score c becomes positive with probability (1+c)/2 or negative with (1-c)/2, so the
// signed value equals c.
type VaderClassifier struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVaderClassifier() *VaderClassifier {
	return &VaderClassifier{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func (v *VaderClassifier) Classify(ctx context.Context, text string) (models.SentimentResult, error) {
	if err := ctx.Err(); err != nil {
		return models.SentimentResult{}, err
	}
	plainText := textutil.ConvertMarkdownToText(text)
	score := v.analyzer.PolarityScores(plainText).Compound

	if score >= 0 {
		return models.SentimentResult{Label: models.LabelPositive, Probability: (1 + score) / 2}, nil
	}
	return models.SentimentResult{Label: models.LabelNegative, Probability: (1 - score) / 2}, nil
}
