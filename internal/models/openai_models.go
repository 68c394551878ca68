package models

type OpenAIClassification struct {
	Label       string  `json:"label"`
	Probability float64 `json:"probability"`
}
