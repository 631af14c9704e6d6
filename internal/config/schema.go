package config

import "github.com/povarna/generative-ai-agents/coach-agent/internal/prompts"

// Config represents the complete coach configuration
type Config struct {
	Coach CoachConfig `yaml:"coach"`
}

// CoachConfig holds model parameters shared by all operations and the
// per-operation overrides, keyed by prompt template id.
type CoachConfig struct {
	SystemPrompt string                      `yaml:"system_prompt"`
	MaxTokens    int                         `yaml:"max_tokens"`
	Operations   map[prompts.ID]*ModelConfig `yaml:"operations"`
}

// ModelConfig contains LLM parameters for one operation. A zero MaxTokens
// leaves the limit to the provider.
type ModelConfig struct {
	MaxTokens   int      `yaml:"max_tokens"`
	Temperature *float64 `yaml:"temperature"`
}

// ModelParams are the resolved parameters for a single completion call.
type ModelParams struct {
	SystemPrompt string
	MaxTokens    int
	Temperature  float64
}
