package models

const (
	LabelPositive = "positive"
	LabelNegative = "negative"
	LabelNeutral  = "neutral"
)

// SentimentResult is what a classifier says about a single segment. Probability is
// the classifier's confidence in Label.
type SentimentResult struct {
	Label       string  `json:"label"`
	Probability float64 `json:"probability"`
}

type SegmentSentiment struct {
	Segment
	SentimentResult
	Signed float64 `json:"signed"`
	Weight float64 `json:"weight"`
}

type DocumentSentiment struct {
	// Label is empty for the zero policy on empty input.
	Label    string             `json:"label,omitempty"`
	Score    float64            `json:"score"`
	Segments []SegmentSentiment `json:"segments,omitempty"`
	Skipped  int                `json:"skipped"`
}
