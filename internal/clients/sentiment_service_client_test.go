package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacesedan/docscore/internal/models"
)

func TestSentimentServiceClientClassify(t *testing.T) {
	var got models.ClassifyRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, USER_AGENT, r.Header.Get("User-Agent"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"label":"positive","score":0.9}`))
	}))
	defer srv.Close()

	c := NewSentimentServiceClient(srv.URL, time.Second)
	resp, err := c.Classify(context.Background(), "政策支持民营企业。")
	require.NoError(t, err)
	assert.Equal(t, "政策支持民营企业。", got.Text)
	assert.Equal(t, "positive", resp.Label)
	assert.InDelta(t, 0.9, resp.Score, 1e-12)
}

func TestSentimentServiceClientDoesNotRetry(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewSentimentServiceClient(srv.URL, time.Second)
	_, err := c.Classify(context.Background(), "text")
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestGetOpenAIClientRequiresKey(t *testing.T) {
	_, err := GetOpenAIClient("", time.Second)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}
