package models

type (
	ClassifyRequest struct {
		Text string `json:"text"`
	}

	ClassifyResponse struct {
		Label string  `json:"label"`
		Score float64 `json:"score"`
	}
)
