package genai_fx

import (
	"fmt"
	"log"
	"strings"

	"go.uber.org/fx"

	"bizlens/internal/config"
	"bizlens/internal/repositories"
	"bizlens/internal/services"
	"bizlens/pkg/utils"
)

var Module = fx.Provide(
	provideTextGenerator,
	provideGenerationService)

// provideTextGenerator creates the text generation client based on
// GENAI_PROVIDER. Embeddings always use OpenAI; only drafting switches.
func provideTextGenerator(cfg config.Config, openAI *utils.OpenAIClient) (utils.TextGeneratorInterface, error) {
	provider := strings.ToLower(cfg.GenAIProvider)
	log.Printf("Initializing %s text generation client", provider)

	switch provider {
	case "openai":
		return openAI, nil
	case "gemini":
		client, err := utils.NewGeminiTextGenerator(cfg.GeminiKey, cfg.GeminiModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported generation provider: %s. Use 'openai' or 'gemini'", cfg.GenAIProvider)
	}
}

func provideGenerationService(
	cfg config.Config,
	generator utils.TextGeneratorInterface,
	offeringRepo repositories.OfferingRepository,
	businessRepo repositories.BusinessRepository,
) services.GenerationServiceInterface {
	return services.NewGenerationService(generator, strings.ToLower(cfg.GenAIProvider), offeringRepo, businessRepo)
}
