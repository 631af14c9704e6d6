package api

import (
	"errors"
	"net/http"

	"github.com/emicklei/go-restful/v3"
	"github.com/povarna/generative-ai-agents/coach-agent/internal/api/middleware"
	"github.com/povarna/generative-ai-agents/coach-agent/internal/coach"
	"github.com/povarna/generative-ai-agents/coach-agent/internal/models"
	"github.com/povarna/generative-ai-agents/coach-agent/internal/prompts"
	"github.com/rs/zerolog"
)

// Generic messages returned when the completion call itself fails.
var failureMessages = map[prompts.ID]string{
	prompts.Evaluate:              "AI evaluation failed",
	prompts.Question:              "AI question generation failed",
	prompts.MCQQuestion:           "MCQ generation failed",
	prompts.Explain:               "Explain failed",
	prompts.QuizTopic:             "Quiz generation failed",
	prompts.ExplainWrong:          "Explain wrong answer failed",
	prompts.FollowUp:              "Follow-up failed",
	prompts.MockInterviewStart:    "Mock interview generation failed",
	prompts.MockInterviewEvaluate: "Mock interview evaluation failed",
}

type Handler struct {
	coach  *coach.Service
	logger *zerolog.Logger
}

func NewHandler(svc *coach.Service, logger *zerolog.Logger) *Handler {
	return &Handler{
		coach:  svc,
		logger: logger,
	}
}

// GET /health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	resp.WriteHeaderAndEntity(http.StatusOK, HealthResponse{Status: "ok"})
}

// POST /ai/evaluate
func (h *Handler) Evaluate(req *restful.Request, resp *restful.Response) {
	var body models.EvaluateRequest
	if !h.readBody(req, resp, &body) {
		return
	}

	h.logger.Info().Str("role", body.Role).Msg("Start answer evaluation")

	result, err := h.coach.Evaluate(req.Request.Context(), body)
	if err != nil {
		h.handleError(resp, prompts.Evaluate, err)
		return
	}

	h.logger.Info().Str("topic", result.Topic).Float64("score", result.Score).Msg("Evaluation complete")
	resp.WriteHeaderAndEntity(http.StatusOK, result)
}

// POST /ai/question
func (h *Handler) Question(req *restful.Request, resp *restful.Response) {
	var body models.QuestionRequest
	if !h.readBody(req, resp, &body) {
		return
	}

	h.logger.Info().
		Str("role", body.Role).
		Str("difficulty", body.Difficulty).
		Str("topic", body.Topic).
		Msg("Start question generation")

	result, err := h.coach.Question(req.Request.Context(), body)
	if err != nil {
		h.handleError(resp, prompts.Question, err)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, result)
}

// POST /ai/mcq-question
func (h *Handler) MCQQuestion(req *restful.Request, resp *restful.Response) {
	var body models.QuestionRequest
	if !h.readBody(req, resp, &body) {
		return
	}

	h.logger.Info().
		Str("role", body.Role).
		Str("difficulty", body.Difficulty).
		Str("topic", body.Topic).
		Msg("Start MCQ generation")

	result, err := h.coach.MCQQuestion(req.Request.Context(), body)
	if err != nil {
		h.handleError(resp, prompts.MCQQuestion, err)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, result)
}

// POST /ai/explain
func (h *Handler) Explain(req *restful.Request, resp *restful.Response) {
	var body models.ExplainRequest
	if !h.readBody(req, resp, &body) {
		return
	}

	h.logger.Info().Str("role", body.Role).Str("topic", body.Topic).Msg("Start topic explanation")

	result, err := h.coach.Explain(req.Request.Context(), body)
	if err != nil {
		h.handleError(resp, prompts.Explain, err)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, result)
}

// POST /ai/quiz-topic
func (h *Handler) QuizTopic(req *restful.Request, resp *restful.Response) {
	var body models.QuizTopicRequest
	if !h.readBody(req, resp, &body) {
		return
	}

	h.logger.Info().Str("role", body.Role).Str("topic", body.Topic).Msg("Start quiz generation")

	result, err := h.coach.QuizTopic(req.Request.Context(), body)
	if err != nil {
		h.handleError(resp, prompts.QuizTopic, err)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, result)
}

// POST /ai/explain-wrong
func (h *Handler) ExplainWrong(req *restful.Request, resp *restful.Response) {
	var body models.ExplainWrongRequest
	if !h.readBody(req, resp, &body) {
		return
	}

	h.logger.Info().Str("role", body.Role).Int("options", len(body.Options)).Msg("Start wrong answer explanation")

	result, err := h.coach.ExplainWrong(req.Request.Context(), body)
	if err != nil {
		h.handleError(resp, prompts.ExplainWrong, err)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, result)
}

// POST /ai/followup
func (h *Handler) FollowUp(req *restful.Request, resp *restful.Response) {
	var body models.FollowUpRequest
	if !h.readBody(req, resp, &body) {
		return
	}

	h.logger.Info().Str("role", body.Role).Msg("Start follow-up")

	result, err := h.coach.FollowUp(req.Request.Context(), body)
	if err != nil {
		h.handleError(resp, prompts.FollowUp, err)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, result)
}

// POST /ai/mock-interview/start
func (h *Handler) MockInterviewStart(req *restful.Request, resp *restful.Response) {
	var body models.MockInterviewStartRequest
	if !h.readBody(req, resp, &body) {
		return
	}

	h.logger.Info().
		Str("role", body.Role).
		Str("difficulty", body.Difficulty).
		Int("count", body.Count).
		Msg("Start mock interview")

	result, err := h.coach.MockInterviewStart(req.Request.Context(), body)
	if err != nil {
		h.handleError(resp, prompts.MockInterviewStart, err)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, result)
}

// POST /ai/mock-interview/evaluate
func (h *Handler) MockInterviewEvaluate(req *restful.Request, resp *restful.Response) {
	var body models.MockInterviewEvaluateRequest
	if !h.readBody(req, resp, &body) {
		return
	}

	h.logger.Info().Str("role", body.Role).Int("answers", len(body.Answers)).Msg("Start mock interview evaluation")

	result, err := h.coach.MockInterviewEvaluate(req.Request.Context(), body)
	if err != nil {
		h.handleError(resp, prompts.MockInterviewEvaluate, err)
		return
	}

	h.logger.Info().Float64("score", result.Score).Msg("Mock interview evaluation complete")
	resp.WriteHeaderAndEntity(http.StatusOK, result)
}

func (h *Handler) readBody(req *restful.Request, resp *restful.Response, body any) bool {
	if err := req.ReadEntity(body); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return false
	}
	return true
}

// handleError maps service errors to a status and a stable message.
func (h *Handler) handleError(resp *restful.Response, id prompts.ID, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidRequest):
		middleware.HandleError(resp, err, http.StatusBadRequest)
	case coach.IsSchemaViolation(err):
		middleware.HandleError(resp, coach.SchemaViolation(err), http.StatusInternalServerError)
	default:
		h.logger.Error().Err(err).Str("operation", string(id)).Msg("AI request failed")
		middleware.WriteError(resp, http.StatusInternalServerError, failureMessages[id])
	}
}
