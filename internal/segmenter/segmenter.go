// Package segmenter splits documents into sentence-aligned chunks bounded by a UTF-8
// byte budget.
package segmenter

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/spacesedan/docscore/internal/models"
)

const DefaultMaxBytes = 512

func isTerminator(r rune) bool {
	switch r {
	case '。', '！', '？', '；', '.', '!', '?', ';':
		return true
	}
	return false
}

// Sentences cuts text after every terminator; the terminator stays with the sentence
// it ends. Whatever follows the last terminator is returned as a final sentence.
func Sentences(text string) []string {
	var sentences []string
	start := 0
	for i, r := range text {
		if isTerminator(r) {
			end := i + utf8.RuneLen(r)
			sentences = append(sentences, text[start:end])
			start = end
		}
	}
	if start < len(text) {
		sentences = append(sentences, text[start:])
	}
	return sentences
}

// Split greedily packs sentences into chunks of at most maxBytes bytes. Sentences that
// alone exceed the budget, and inputs that yield no chunk at all, are cut into forced
// byte windows. Empty input yields no segments.
func Split(text string, maxBytes int) []models.Segment {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	var segments []models.Segment
	current := ""
	flush := func() {
		chunk := strings.TrimSpace(current)
		if chunk != "" {
			segments = append(segments, models.Segment{Text: chunk, Bytes: len(chunk)})
		}
		current = ""
	}

	for _, sentence := range Sentences(text) {
		trimmed := strings.TrimSpace(sentence)
		if trimmed == "" {
			continue
		}
		if len(current)+len(sentence) <= maxBytes {
			current += sentence
			continue
		}

		flush()
		if len(trimmed) > maxBytes {
			slog.Debug("[Segmenter] Sentence exceeds byte budget, cutting into windows",
				slog.Int("bytes", len(trimmed)),
				slog.Int("max_bytes", maxBytes))
			segments = append(segments, Windows(trimmed, maxBytes)...)
			continue
		}
		current = sentence
	}
	flush()

	if len(segments) == 0 && text != "" {
		slog.Debug("[Segmenter] No sentence chunk produced, forcing fixed windows",
			slog.Int("bytes", len(text)))
		return Windows(text, maxBytes)
	}

	return segments
}

// Windows cuts s into consecutive pieces of at most maxBytes bytes without splitting a
// UTF-8 sequence. Single-byte text yields exact maxBytes windows except the last.
func Windows(s string, maxBytes int) []models.Segment {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	var windows []models.Segment
	for start := 0; start < len(s); {
		end := start + maxBytes
		if end >= len(s) {
			end = len(s)
		} else {
			for end > start && !utf8.RuneStart(s[end]) {
				end--
			}
			if end == start {
				// a single rune wider than the budget
				_, size := utf8.DecodeRuneInString(s[start:])
				end = start + size
			}
		}
		windows = append(windows, models.Segment{Text: s[start:end], Bytes: end - start, Forced: true})
		start = end
	}
	return windows
}
