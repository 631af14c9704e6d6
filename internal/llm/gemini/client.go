package gemini

import (
	"context"
	"fmt"

	"github.com/povarna/generative-ai-agents/coach-agent/internal/llm"
	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.5-flash"

type Client struct {
	Client  *genai.Client
	ModelID string
}

func NewClient(ctx context.Context, apiKey string, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to create gemini client: %w", err)
	}

	return &Client{
		Client:  client,
		ModelID: model,
	}, nil
}

func (c *Client) InvokeModel(ctx context.Context, request llm.LLMRequest) (*llm.LLMResponse, error) {
	resp, err := c.Client.Models.GenerateContent(ctx, c.ModelID, genai.Text(request.Prompt), newGenerateConfig(request))
	if err != nil {
		return nil, fmt.Errorf("unable to invoke gemini model %s: %w", c.ModelID, err)
	}

	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("no candidates in response")
	}

	return &llm.LLMResponse{
		Content:    resp.Text(),
		StopReason: string(resp.Candidates[0].FinishReason),
	}, nil
}

func newGenerateConfig(request llm.LLMRequest) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(request.Temperature)),
	}
	if request.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(request.MaxTokens)
	}
	if request.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(request.System, genai.RoleUser)
	}

	return cfg
}
