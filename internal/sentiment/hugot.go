package sentiment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"

	"github.com/spacesedan/docscore/internal/models"
)

var ErrEmptyPipelineOutput = errors.New("classification pipeline returned no output")

// HugotClassifier runs a pretrained text classification model in process through
// ONNX Runtime.
type HugotClassifier struct {
	session  *hugot.Session
	pipeline *pipelines.TextClassificationPipeline
	// pipelines are not safe for concurrent runs
	mu sync.Mutex
}

// modelPath is where a model name is stored under dir, "org/name" becoming "org_name".
func modelPath(dir, name string) string {
	return filepath.Join(dir, strings.ReplaceAll(name, "/", "_"))
}

// NewHugotClassifier loads modelName from modelDir, downloading it first when it is
// not there yet.
func NewHugotClassifier(modelName, modelDir string) (*HugotClassifier, error) {
	if err := os.MkdirAll(modelDir, os.ModePerm); err != nil {
		slog.Error("[HugotClassifier] Failed to create model directory",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("create model directory: %w", err)
	}

	path := modelPath(modelDir, modelName)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Info("[HugotClassifier] Model not found, downloading...",
			slog.String("model", modelName))
		downloaded, err := hugot.DownloadModel(modelName, modelDir, hugot.NewDownloadOptions())
		if err != nil {
			slog.Error("[HugotClassifier] Failed to download model",
				slog.String("error", err.Error()))
			return nil, fmt.Errorf("download model %s: %w", modelName, err)
		}
		path = downloaded
		slog.Info("[HugotClassifier] Model downloaded successfully", slog.String("path", path))
	} else {
		slog.Info("[HugotClassifier] Using existing model", slog.String("path", path))
	}

	session, err := hugot.NewORTSession()
	if err != nil {
		slog.Error("[HugotClassifier] Failed to initialize Hugot session",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("init hugot session: %w", err)
	}

	config := hugot.TextClassificationConfig{
		ModelPath: path,
		Name:      "documentSentimentPipeline",
	}
	pipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		session.Destroy()
		slog.Error("[HugotClassifier] Failed to initialize pipeline",
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("init classification pipeline: %w", err)
	}

	return &HugotClassifier{session: session, pipeline: pipeline}, nil
}

func (h *HugotClassifier) Classify(ctx context.Context, text string) (models.SentimentResult, error) {
	if err := ctx.Err(); err != nil {
		return models.SentimentResult{}, err
	}

	h.mu.Lock()
	output, err := h.pipeline.RunPipeline([]string{text})
	h.mu.Unlock()
	if err != nil {
		return models.SentimentResult{}, fmt.Errorf("run classification pipeline: %w", err)
	}
	if len(output.ClassificationOutputs) == 0 || len(output.ClassificationOutputs[0]) == 0 {
		return models.SentimentResult{}, ErrEmptyPipelineOutput
	}

	top := output.ClassificationOutputs[0][0]
	return newResult(top.Label, float64(top.Score))
}

// Close releases the ONNX Runtime session.
func (h *HugotClassifier) Close() {
	h.session.Destroy()
}
