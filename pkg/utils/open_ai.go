package utils

import (
	"context"
	"fmt"
	"strings"

	"github.com/pgvector/pgvector-go"
	openai "github.com/sashabaranov/go-openai"
)

// EmbeddingModelName is recorded next to every stored vector so that rows
// embedded with a different model can be told apart.
const EmbeddingModelName = "text-embedding-3-small"

type EmbeddingClientInterface interface {
	EmbedText(ctx context.Context, text string) (pgvector.Vector, error)
}

// DescriptionInput carries the facts a generator turns into listing copy.
type DescriptionInput struct {
	Name     string
	Category string
	Tags     []string
	Notes    string
}

type TextGeneratorInterface interface {
	GenerateDescription(ctx context.Context, input DescriptionInput) (string, error)
}

type OpenAIClient struct {
	client *openai.Client
}

func NewOpenAIClient(apiKey string) *OpenAIClient {
	return &OpenAIClient{client: openai.NewClient(apiKey)}
}

func (c *OpenAIClient) EmbedText(ctx context.Context, text string) (pgvector.Vector, error) {
	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.SmallEmbedding3, // "text-embedding-3-small"
	})
	if err != nil {
		return pgvector.Vector{}, fmt.Errorf("openai embeddings: %w", err)
	}
	if len(resp.Data) == 0 {
		return pgvector.Vector{}, fmt.Errorf("openai embeddings: empty response")
	}
	return pgvector.NewVector(resp.Data[0].Embedding), nil
}

func (c *OpenAIClient) GenerateDescription(ctx context.Context, input DescriptionInput) (string, error) {
	if strings.TrimSpace(input.Name) == "" {
		return "", fmt.Errorf("name is required")
	}

	prompt := buildDescriptionPrompt(input)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT4oMini,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You write short, factual listing descriptions for a local business directory. Two to three sentences, no superlatives you cannot back up, no emojis.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: 0.4,
		MaxTokens:   220,
	})
	if err != nil {
		return "", fmt.Errorf("openai chat: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai chat: empty response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func buildDescriptionPrompt(input DescriptionInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", input.Name)
	if input.Category != "" {
		fmt.Fprintf(&b, "Category: %s\n", input.Category)
	}
	if len(input.Tags) > 0 {
		fmt.Fprintf(&b, "Tags: %s\n", strings.Join(input.Tags, ", "))
	}
	if input.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", input.Notes)
	}
	b.WriteString("Write the description now.")
	return b.String()
}
