package clients

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/spacesedan/docscore/internal/models"
)

// SentimentServiceClient talks to a JSON sentiment classification service. Requests
// are not retried; a failed call is reported to the caller as is.
type SentimentServiceClient struct {
	client   *resty.Client
	endpoint string
}

func NewSentimentServiceClient(endpoint string, timeout time.Duration) *SentimentServiceClient {
	if timeout <= 0 {
		timeout = DEFAULT_TIMEOUT
	}
	slog.Info("[SentimentServiceClient] Initializing Client",
		slog.String("endpoint", endpoint),
		slog.Duration("timeout", timeout))

	return &SentimentServiceClient{
		client: resty.New().
			SetTimeout(timeout).
			SetHeader("Content-Type", "application/json").
			SetHeader("Accept", "application/json").
			SetHeader("User-Agent", USER_AGENT),
		endpoint: endpoint,
	}
}

func (s *SentimentServiceClient) Classify(ctx context.Context, text string) (models.ClassifyResponse, error) {
	var result models.ClassifyResponse
	start := time.Now()

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(models.ClassifyRequest{Text: text}).
		SetResult(&result).
		Post(s.endpoint)
	if err != nil {
		slog.Error("[SentimentServiceClient] Request failed",
			slog.String("endpoint", s.endpoint),
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", err.Error()))
		return result, fmt.Errorf("sentiment request failed: %w", err)
	}

	if resp.IsError() {
		slog.Error("[SentimentServiceClient] Service returned an error",
			slog.String("endpoint", s.endpoint),
			slog.Int("status", resp.StatusCode()),
			getPreview(resp.Body()))
		return result, fmt.Errorf("sentiment service returned status %d", resp.StatusCode())
	}

	slog.Debug("[SentimentServiceClient] Sentiment request successful",
		slog.Duration("elapsed", time.Since(start)))
	return result, nil
}

func getPreview(respBody []byte) slog.Attr {
	raw := []rune(string(respBody))
	if len(raw) > 50 {
		raw = raw[:50]
	}
	return slog.String("raw_response", string(raw))
}
