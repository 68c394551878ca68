package models

type KeywordScore struct {
	Keyword string  `json:"keyword"`
	Weight  float64 `json:"weight"`
}

type RelevanceReport struct {
	RelevanceScore    int        `json:"relevance_score"`
	Direct            float64    `json:"direct_score"`
	Topic             float64    `json:"topic_score"`
	Raw               float64    `json:"raw_score"`
	DirectMatches     []string   `json:"direct_matches,omitempty"`
	ContentMatches    []string   `json:"content_matches,omitempty"`
	ContentFallback   bool       `json:"content_fallback"`
	FloorApplied      bool       `json:"floor_applied"`
	TopicModelPresent bool       `json:"topic_model_present"`
	Keywords          []string   `json:"keywords,omitempty"`
	TopicKeywords     [][]string `json:"topic_keywords,omitempty"`
}
