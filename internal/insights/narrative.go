package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

const narrativePrompt = `You are an expert public finance analyst for the UK Cabinet Office. ` +
	`Prepare a concise briefing for HM Treasury using only the structured statistics provided. ` +
	`Highlight significant spending trends, departmental movements, supplier concentration, ` +
	`and the most pressing anomalies or risks. Respond with clear headings and short paragraphs ` +
	`suitable for decision-makers.`

// NarrativeClient generates the analyst briefing from a stats payload via the
// Gemini API. Narrative generation is a collaborator concern: its failure
// never affects the data outputs of a run.
type NarrativeClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
	logger *logrus.Logger
}

// NewNarrativeClient builds a client for the given model. The API key is
// required; callers decide whether a missing key skips the narrative or
// fails the command.
func NewNarrativeClient(ctx context.Context, apiKey, modelName string, maxTokens int32, temperature float32, logger *logrus.Logger) (*NarrativeClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("narrative generation requires GEMINI_API_KEY to be set")
	}
	if logger == nil {
		logger = logrus.New()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetMaxOutputTokens(maxTokens)
	model.SetTemperature(temperature)

	return &NarrativeClient{client: client, model: model, logger: logger}, nil
}

// Close releases the underlying API client.
func (c *NarrativeClient) Close() error {
	return c.client.Close()
}

// Generate produces the briefing text for the given stats.
func (c *NarrativeClient) Generate(ctx context.Context, stats *Stats) (string, error) {
	payload, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode stats payload: %w", err)
	}

	prompt := fmt.Sprintf("%s\n\nStructured statistics:\n%s", narrativePrompt, payload)
	c.logger.WithField("bytes", len(payload)).Info("Requesting generated narrative")

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("narrative generation failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("narrative generation returned no content")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return strings.TrimSpace(b.String()), nil
}
