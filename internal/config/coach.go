package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/povarna/generative-ai-agents/coach-agent/internal/prompts"
	"gopkg.in/yaml.v3"
)

const defaultConfigPath = "configs/coach.yaml"

var defaultTemperatures = map[prompts.ID]float64{
	prompts.Evaluate:              0.2,
	prompts.Question:              0.4,
	prompts.MCQQuestion:           0.4,
	prompts.Explain:               0.3,
	prompts.QuizTopic:             0.4,
	prompts.ExplainWrong:          0.3,
	prompts.FollowUp:              0.3,
	prompts.MockInterviewStart:    0.4,
	prompts.MockInterviewEvaluate: 0.2,
}

// Default returns the built-in configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// LoadCoachConfig reads the file named by COACH_CONFIG_PATH, falling back to
// configs/coach.yaml. Only a missing default file is tolerated.
func LoadCoachConfig() (*Config, error) {
	path := os.Getenv("COACH_CONFIG_PATH")
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read coach config %s: %w", path, err)
	}

	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse coach config: %w", err)
	}

	// unknown operations are rejected before defaults fill the map
	for id := range cfg.Coach.Operations {
		if _, ok := defaultTemperatures[id]; !ok {
			return nil, fmt.Errorf("unknown operation %q", id)
		}
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Coach.Operations == nil {
		cfg.Coach.Operations = make(map[prompts.ID]*ModelConfig, len(defaultTemperatures))
	}

	for id, temperature := range defaultTemperatures {
		op := cfg.Coach.Operations[id]
		if op == nil {
			op = &ModelConfig{}
			cfg.Coach.Operations[id] = op
		}
		if op.MaxTokens == 0 {
			op.MaxTokens = cfg.Coach.MaxTokens
		}
		if op.Temperature == nil {
			t := temperature
			op.Temperature = &t
		}
	}
}

func (c *Config) Validate() error {
	if c.Coach.MaxTokens < 0 {
		return fmt.Errorf("max_tokens must not be negative, got %d", c.Coach.MaxTokens)
	}

	for id, op := range c.Coach.Operations {
		if op.MaxTokens < 0 {
			return fmt.Errorf("operation %s: max_tokens must not be negative, got %d", id, op.MaxTokens)
		}
		if op.Temperature != nil && (*op.Temperature < 0 || *op.Temperature > 1) {
			return fmt.Errorf("operation %s: invalid temperature %.2f, must be within [0, 1]", id, *op.Temperature)
		}
	}

	return nil
}

// Params resolves the model parameters for an operation.
func (c *Config) Params(id prompts.ID) ModelParams {
	params := ModelParams{
		SystemPrompt: c.Coach.SystemPrompt,
		MaxTokens:    c.Coach.MaxTokens,
		Temperature:  defaultTemperatures[id],
	}

	if op := c.Coach.Operations[id]; op != nil {
		params.MaxTokens = op.MaxTokens
		if op.Temperature != nil {
			params.Temperature = *op.Temperature
		}
	}

	return params
}
