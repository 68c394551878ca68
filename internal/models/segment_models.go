package models

// Segment is one byte-bounded, sentence-aligned piece of a document.
type Segment struct {
	Text  string `json:"text"`
	Bytes int    `json:"bytes"`
	// Forced marks segments cut into fixed byte windows instead of at sentence boundaries.
	Forced bool `json:"forced,omitempty"`
}
