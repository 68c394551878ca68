package sentiment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spacesedan/docscore/internal/models"
)

var ErrUnknownLabel = errors.New("unknown sentiment label")

// Classifier labels a single segment. Implementations may run in process or call a
// remote service; the aggregation does not depend on which.
type Classifier interface {
	Classify(ctx context.Context, text string) (models.SentimentResult, error)
}

// NormalizeLabel maps backend specific labels ("POSITIVE", "negative (stars 1, 2 and 3)",
// "LABEL_1", ...) onto positive or negative.
func NormalizeLabel(label string) (string, error) {
	l := strings.ToLower(strings.TrimSpace(label))
	switch {
	case strings.HasPrefix(l, "pos"), l == "label_1":
		return models.LabelPositive, nil
	case strings.HasPrefix(l, "neg"), l == "label_0":
		return models.LabelNegative, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLabel, label)
}

func newResult(label string, probability float64) (models.SentimentResult, error) {
	normalized, err := NormalizeLabel(label)
	if err != nil {
		return models.SentimentResult{}, err
	}
	if math.IsNaN(probability) {
		return models.SentimentResult{}, fmt.Errorf("probability is NaN for label %q", label)
	}
	return models.SentimentResult{
		Label:       normalized,
		Probability: math.Max(0, math.Min(1, probability)),
	}, nil
}
