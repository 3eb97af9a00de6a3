package utils

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiTextGenerator implements TextGeneratorInterface using Google's
// Gemini models; selected with GENAI_PROVIDER=gemini.
type GeminiTextGenerator struct {
	client *genai.Client
	model  string
}

func NewGeminiTextGenerator(apiKey, model string) (TextGeneratorInterface, error) {
	if model == "" {
		model = "gemini-1.5-flash"
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiTextGenerator{
		client: client,
		model:  model,
	}, nil
}

func (g *GeminiTextGenerator) GenerateDescription(ctx context.Context, input DescriptionInput) (string, error) {
	if strings.TrimSpace(input.Name) == "" {
		return "", fmt.Errorf("name is required")
	}

	m := g.client.GenerativeModel(g.model)
	m.SetTemperature(0.4)
	m.SetTopP(0.8)
	m.SetMaxOutputTokens(256)

	prompt := fmt.Sprintf(`Write a short, factual listing description for a local business directory.
Two to three sentences. No superlatives you cannot back up, no emojis. Plain text only.

%s`, buildDescriptionPrompt(input))

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: no content")
	}

	content := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	return strings.TrimSpace(content), nil
}
