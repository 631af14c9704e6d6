package coach

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/povarna/generative-ai-agents/coach-agent/internal/config"
	"github.com/povarna/generative-ai-agents/coach-agent/internal/llm"
	"github.com/povarna/generative-ai-agents/coach-agent/internal/models"
	"github.com/povarna/generative-ai-agents/coach-agent/internal/prompts"
	"github.com/rs/zerolog"
)

// Service renders a prompt per operation, makes exactly one completion call
// and interprets the result. It holds no per-request state.
type Service struct {
	llmClient llm.LLMClient
	config    *config.Config
	logger    *zerolog.Logger
}

func NewService(llmClient llm.LLMClient, cfg *config.Config, logger *zerolog.Logger) *Service {
	if cfg == nil {
		cfg = config.Default()
	}

	return &Service{
		llmClient: llmClient,
		config:    cfg,
		logger:    logger,
	}
}

func (s *Service) Evaluate(ctx context.Context, req models.EvaluateRequest) (*models.EvaluateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	prompt, err := prompts.RenderEvaluate(req)
	if err != nil {
		return nil, err
	}

	content, err := s.complete(ctx, prompts.Evaluate, prompt)
	if err != nil {
		return nil, err
	}

	result, err := parseEvaluation(content)
	if err != nil {
		s.logSchemaViolation(prompts.Evaluate, content, err)
		return nil, err
	}

	return result, nil
}

func (s *Service) Question(ctx context.Context, req models.QuestionRequest) (*models.QuestionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	prompt, err := prompts.RenderQuestion(req)
	if err != nil {
		return nil, err
	}

	content, err := s.complete(ctx, prompts.Question, prompt)
	if err != nil {
		return nil, err
	}

	result, err := parseQuestion(content)
	if err != nil {
		s.logSchemaViolation(prompts.Question, content, err)
		return nil, err
	}

	return result, nil
}

func (s *Service) MCQQuestion(ctx context.Context, req models.QuestionRequest) (*models.MCQItem, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	prompt, err := prompts.RenderMCQQuestion(req)
	if err != nil {
		return nil, err
	}

	content, err := s.complete(ctx, prompts.MCQQuestion, prompt)
	if err != nil {
		return nil, err
	}

	result, err := parseMCQ(content)
	if err != nil {
		s.logSchemaViolation(prompts.MCQQuestion, content, err)
		return nil, err
	}

	return result, nil
}

func (s *Service) Explain(ctx context.Context, req models.ExplainRequest) (*models.ExplainResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	prompt, err := prompts.RenderExplain(req)
	if err != nil {
		return nil, err
	}

	content, err := s.complete(ctx, prompts.Explain, prompt)
	if err != nil {
		return nil, err
	}

	return &models.ExplainResponse{
		Topic:       req.Topic,
		Explanation: plainText(content),
	}, nil
}

func (s *Service) QuizTopic(ctx context.Context, req models.QuizTopicRequest) (*models.QuizResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	prompt, err := prompts.RenderQuizTopic(req)
	if err != nil {
		return nil, err
	}

	content, err := s.complete(ctx, prompts.QuizTopic, prompt)
	if err != nil {
		return nil, err
	}

	questions, err := parseQuestionList(content, false)
	if err != nil {
		s.logSchemaViolation(prompts.QuizTopic, content, err)
		return nil, err
	}

	if len(questions) != models.QuizSize {
		s.logger.Warn().
			Str("operation", string(prompts.QuizTopic)).
			Int("expected", models.QuizSize).
			Int("actual", len(questions)).
			Msg("model returned unexpected number of questions")
	}

	return &models.QuizResponse{Questions: questions}, nil
}

func (s *Service) ExplainWrong(ctx context.Context, req models.ExplainWrongRequest) (*models.ExplainWrongResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	prompt, err := prompts.RenderExplainWrong(req)
	if err != nil {
		return nil, err
	}

	content, err := s.complete(ctx, prompts.ExplainWrong, prompt)
	if err != nil {
		return nil, err
	}

	return &models.ExplainWrongResponse{Explanation: plainText(content)}, nil
}

func (s *Service) FollowUp(ctx context.Context, req models.FollowUpRequest) (*models.FollowUpResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	prompt, err := prompts.RenderFollowUp(req)
	if err != nil {
		return nil, err
	}

	content, err := s.complete(ctx, prompts.FollowUp, prompt)
	if err != nil {
		return nil, err
	}

	return &models.FollowUpResponse{Reply: plainText(content)}, nil
}

func (s *Service) MockInterviewStart(ctx context.Context, req models.MockInterviewStartRequest) (*models.QuizResponse, error) {
	req.SetDefaults()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	prompt, err := prompts.RenderMockInterviewStart(req)
	if err != nil {
		return nil, err
	}

	content, err := s.complete(ctx, prompts.MockInterviewStart, prompt)
	if err != nil {
		return nil, err
	}

	questions, err := parseQuestionList(content, true)
	if err != nil {
		s.logSchemaViolation(prompts.MockInterviewStart, content, err)
		return nil, err
	}

	if len(questions) != req.Count {
		s.logger.Warn().
			Str("operation", string(prompts.MockInterviewStart)).
			Int("expected", req.Count).
			Int("actual", len(questions)).
			Msg("model returned unexpected number of questions")
	}

	return &models.QuizResponse{Questions: questions}, nil
}

func (s *Service) MockInterviewEvaluate(ctx context.Context, req models.MockInterviewEvaluateRequest) (*models.MockInterviewEvaluateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	prompt, err := prompts.RenderMockInterviewEvaluate(req)
	if err != nil {
		return nil, err
	}

	content, err := s.complete(ctx, prompts.MockInterviewEvaluate, prompt)
	if err != nil {
		return nil, err
	}

	result, err := parseMockEvaluation(content)
	if err != nil {
		s.logSchemaViolation(prompts.MockInterviewEvaluate, content, err)
		return nil, err
	}

	return result, nil
}

// complete sends a rendered prompt with the parameters configured for id and
// returns the trimmed completion text.
func (s *Service) complete(ctx context.Context, id prompts.ID, prompt string) (string, error) {
	params := s.config.Params(id)
	start := time.Now()

	resp, err := s.llmClient.InvokeModel(ctx, llm.LLMRequest{
		System:      params.SystemPrompt,
		Prompt:      prompt,
		MaxTokens:   params.MaxTokens,
		Temperature: params.Temperature,
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("operation", string(id)).
			Dur("duration", time.Since(start)).
			Msg("LLM call failed")
		return "", fmt.Errorf("%s: %w", id, err)
	}
	if resp == nil {
		return "", fmt.Errorf("%s: empty response from LLM", id)
	}

	s.logger.Debug().
		Str("operation", string(id)).
		Str("stop_reason", resp.StopReason).
		Dur("duration", time.Since(start)).
		Msg("LLM call complete")

	return strings.TrimSpace(resp.Content), nil
}

func (s *Service) logSchemaViolation(id prompts.ID, content string, err error) {
	s.logger.Error().
		Err(err).
		Str("operation", string(id)).
		Str("content", content).
		Msg("unexpected AI response")
}
