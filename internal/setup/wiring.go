package setup

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/povarna/generative-ai-agents/coach-agent/internal/coach"
	"github.com/povarna/generative-ai-agents/coach-agent/internal/config"
	"github.com/povarna/generative-ai-agents/coach-agent/internal/llm"
	"github.com/povarna/generative-ai-agents/coach-agent/internal/llm/bedrock"
	"github.com/povarna/generative-ai-agents/coach-agent/internal/llm/gemini"
	"github.com/povarna/generative-ai-agents/coach-agent/internal/llm/gpt"
	"github.com/rs/zerolog"
)

const (
	ProviderGroq    = "groq"
	ProviderOpenAI  = "openai"
	ProviderBedrock = "bedrock"
	ProviderGemini  = "gemini"

	DefaultModelID = "openai/gpt-oss-20b"
)

type Config struct {
	Port          int
	LogLevel      string
	Provider      string
	GroqAPIKey    string
	GroqBaseURL   string
	ModelID       string
	OpenAIKey     string
	OpenAIModelID string
	AWSRegion     string
	ClaudeModelID string
	GeminiAPIKey  string
	GeminiModelID string
}

type Dependencies struct {
	Coach  *coach.Service
	Logger *zerolog.Logger
}

func LoadConfig() *Config {
	return &Config{
		Port:          getEnvInt("PORT", 3000),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		Provider:      getEnv("LLM_PROVIDER", ProviderGroq),
		GroqAPIKey:    getEnv("GROQ_API_KEY", ""),
		GroqBaseURL:   getEnv("GROQ_BASE_URL", gpt.GroqBaseURL),
		ModelID:       getEnv("MODEL_ID", DefaultModelID),
		OpenAIKey:     getEnv("OPEN_AI_KEY", ""),
		OpenAIModelID: getEnv("OPEN_AI_MODEL_ID", ""),
		AWSRegion:     getEnv("AWS_REGION", "us-east-1"),
		ClaudeModelID: getEnv("CLAUDE_MODEL_ID", ""),
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModelID: getEnv("GEMINI_MODEL_ID", gemini.DefaultModel),
	}
}

// Wire builds the LLM client once and hands it to the coach service.
func Wire(ctx context.Context, cfg *Config, logger *zerolog.Logger) (*Dependencies, error) {
	llmClient, err := createLLMClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.Provider, err)
	}

	coachConfig, err := config.LoadCoachConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load coach config: %w", err)
	}

	logger.Info().
		Str("provider", cfg.Provider).
		Msg("LLM client ready")

	return &Dependencies{
		Coach:  coach.NewService(llmClient, coachConfig, logger),
		Logger: logger,
	}, nil
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil || value <= 0 {
		value = defaultValue
	}

	return value
}

func createLLMClient(ctx context.Context, cfg *Config) (llm.LLMClient, error) {
	switch cfg.Provider {
	case ProviderGroq:
		return gpt.NewClient(cfg.GroqAPIKey, cfg.ModelID, cfg.GroqBaseURL)
	case ProviderOpenAI:
		modelID := cfg.OpenAIModelID
		if modelID == "" {
			modelID = cfg.ModelID
		}
		return gpt.NewClient(cfg.OpenAIKey, modelID, "")
	case ProviderBedrock:
		return bedrock.NewClient(ctx, cfg.AWSRegion, cfg.ClaudeModelID)
	case ProviderGemini:
		return gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModelID)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
}
