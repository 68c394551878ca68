package sentiment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"

	"github.com/spacesedan/docscore/internal/clients"
	"github.com/spacesedan/docscore/internal/models"
)

var ErrEmptyCompletion = errors.New("openai returned an empty completion")

const openAIPrompt = `You classify the sentiment of a Chinese text segment.
Answer with **exactly one** label, either "positive" or "negative", and the probability
(between 0 and 1) that the label is correct.

### **STRICT OUTPUT FORMAT**
You MUST return only **valid JSON**, formatted exactly as follows:
{"label": "positive", "probability": 0.87}

### **REQUIREMENTS**
- **No Markdown formatting** (no triple backticks, no explanations).
- **No extra text before or after the JSON output**.
`

// OpenAIClassifier asks a chat completion model for a label and its probability.
type OpenAIClassifier struct {
	client *clients.OpenAIClient
	model  string
}

func NewOpenAIClassifier(client *clients.OpenAIClient, model string) *OpenAIClassifier {
	if model == "" {
		model = string(openai.ChatModelGPT3_5Turbo)
	}
	return &OpenAIClassifier{client: client, model: model}
}

func (o *OpenAIClassifier) Classify(ctx context.Context, text string) (models.SentimentResult, error) {
	chatCompletion, err := o.client.Client.Chat.Completions.New(ctx,
		openai.ChatCompletionNewParams{
			Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(openAIPrompt),
				openai.UserMessage(text),
			}),
			Model:       openai.F(openai.ChatModel(o.model)),
			Temperature: openai.Float(0),
		})
	if err != nil {
		return models.SentimentResult{}, fmt.Errorf("openai completion: %w", err)
	}
	if len(chatCompletion.Choices) == 0 || strings.TrimSpace(chatCompletion.Choices[0].Message.Content) == "" {
		return models.SentimentResult{}, ErrEmptyCompletion
	}
	return parseClassification(chatCompletion.Choices[0].Message.Content)
}

func parseClassification(content string) (models.SentimentResult, error) {
	var parsed models.OpenAIClassification
	if err := json.Unmarshal([]byte(cleanOpenAIResponse(content)), &parsed); err != nil {
		return models.SentimentResult{}, fmt.Errorf("parse classification: %w", err)
	}
	return newResult(parsed.Label, parsed.Probability)
}

func cleanOpenAIResponse(response string) string {
	response = strings.TrimSpace(response)

	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")

	response = strings.ReplaceAll(response, "“", `"`)
	response = strings.ReplaceAll(response, "”", `"`)

	return strings.TrimSpace(response)
}
