package sentiment

import (
	"context"

	"github.com/spacesedan/docscore/internal/clients"
	"github.com/spacesedan/docscore/internal/models"
)

// RemoteClassifier delegates to a sentiment service over HTTP.
type RemoteClassifier struct {
	client *clients.SentimentServiceClient
}

func NewRemoteClassifier(client *clients.SentimentServiceClient) *RemoteClassifier {
	return &RemoteClassifier{client: client}
}

func (r *RemoteClassifier) Classify(ctx context.Context, text string) (models.SentimentResult, error) {
	resp, err := r.client.Classify(ctx, text)
	if err != nil {
		return models.SentimentResult{}, err
	}
	return newResult(resp.Label, resp.Score)
}
