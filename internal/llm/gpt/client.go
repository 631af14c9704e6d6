package gpt

import (
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// GroqBaseURL is Groq's OpenAI-compatible endpoint.
const GroqBaseURL = "https://api.groq.com/openai/v1"

type Client struct {
	Client  openai.Client
	ModelID string
}

// NewClient creates a chat completions client. An empty baseURL targets the
// OpenAI API; any OpenAI-compatible endpoint (Groq included) can be used.
func NewClient(apiKey string, model string, baseURL string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		return nil, fmt.Errorf("model ID is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		// one request, one response
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &Client{
		Client:  openai.NewClient(opts...),
		ModelID: model,
	}, nil
}
