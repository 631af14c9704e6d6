package models

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// QuizSize is the number of questions generated for a topic quiz.
	QuizSize = 5
	// OptionCount is the number of options in every multiple-choice item.
	OptionCount = 4

	DefaultMockQuestionCount = 5
	MaxMockQuestionCount     = 20
)

var ErrInvalidRequest = errors.New("invalid request")

// Requests

type EvaluateRequest struct {
	Role       string `json:"role" jsonschema:"developer role, e.g. backend or frontend"`
	Question   string `json:"question" jsonschema:"interview question that was asked"`
	UserAnswer string `json:"userAnswer" jsonschema:"candidate's answer to evaluate"`
}

type QuestionRequest struct {
	Role       string `json:"role" jsonschema:"developer role"`
	Difficulty string `json:"difficulty" jsonschema:"difficulty level, e.g. easy, medium or hard"`
	Topic      string `json:"topic,omitempty" jsonschema:"optional topic the question must come from"`
}

type ExplainRequest struct {
	Topic string `json:"topic" jsonschema:"topic to explain"`
	Role  string `json:"role" jsonschema:"developer role"`
}

type QuizTopicRequest struct {
	Topic string `json:"topic" jsonschema:"quiz topic"`
	Role  string `json:"role" jsonschema:"developer role"`
}

type ExplainWrongRequest struct {
	Question      string   `json:"question" jsonschema:"multiple-choice question"`
	Options       []string `json:"options" jsonschema:"answer options shown to the candidate"`
	CorrectAnswer string   `json:"correctAnswer" jsonschema:"text of the correct option"`
	UserAnswer    string   `json:"userAnswer" jsonschema:"text of the option the candidate picked"`
	Role          string   `json:"role" jsonschema:"developer role"`
}

type FollowUpRequest struct {
	Question  string `json:"question" jsonschema:"interview question under discussion"`
	Context   string `json:"context" jsonschema:"previous explanation or feedback"`
	UserQuery string `json:"userQuery" jsonschema:"candidate's follow-up question"`
	Role      string `json:"role" jsonschema:"developer role"`
}

type MockInterviewStartRequest struct {
	Role       string `json:"role" jsonschema:"developer role"`
	Difficulty string `json:"difficulty" jsonschema:"difficulty level"`
	Count      int    `json:"count,omitempty" jsonschema:"number of questions (1-20, default 5)"`
}

type MockAnswer struct {
	Question string `json:"question" jsonschema:"question that was asked"`
	Answer   string `json:"answer" jsonschema:"candidate's answer"`
}

type MockInterviewEvaluateRequest struct {
	Role    string       `json:"role" jsonschema:"developer role"`
	Answers []MockAnswer `json:"answers" jsonschema:"question and answer pairs from the mock interview"`
}

// Responses

type EvaluateResponse struct {
	Feedback       string  `json:"feedback"`
	ImprovedAnswer string  `json:"improvedAnswer"`
	Explanation    string  `json:"explanation"`
	Score          float64 `json:"score"`
	Topic          string  `json:"topic"`
}

type QuestionResponse struct {
	Question string `json:"question"`
	Topic    string `json:"topic"`
}

// MCQItem is a multiple-choice question. Explanation is omitted by quiz-topic.
type MCQItem struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Topic        string   `json:"topic"`
	Explanation  string   `json:"explanation,omitempty"`
}

type ExplainResponse struct {
	Topic       string `json:"topic"`
	Explanation string `json:"explanation"`
}

type QuizResponse struct {
	Questions []MCQItem `json:"questions"`
}

type ExplainWrongResponse struct {
	Explanation string `json:"explanation"`
}

type FollowUpResponse struct {
	Reply string `json:"reply"`
}

type MockInterviewEvaluateResponse struct {
	Score     float64  `json:"score"`
	Strengths []string `json:"strengths"`
	WeakAreas []string `json:"weakAreas"`
	Feedback  string   `json:"feedback"`
}

// Validation

func (r *EvaluateRequest) Validate() error {
	return requireFields(
		field{"role", r.Role},
		field{"question", r.Question},
		field{"userAnswer", r.UserAnswer},
	)
}

func (r *QuestionRequest) Validate() error {
	return requireFields(
		field{"role", r.Role},
		field{"difficulty", r.Difficulty},
	)
}

func (r *ExplainRequest) Validate() error {
	return requireFields(
		field{"topic", r.Topic},
		field{"role", r.Role},
	)
}

func (r *QuizTopicRequest) Validate() error {
	return requireFields(
		field{"topic", r.Topic},
		field{"role", r.Role},
	)
}

func (r *ExplainWrongRequest) Validate() error {
	if err := requireFields(
		field{"question", r.Question},
		field{"correctAnswer", r.CorrectAnswer},
		field{"userAnswer", r.UserAnswer},
		field{"role", r.Role},
	); err != nil {
		return err
	}

	if len(r.Options) == 0 {
		return fmt.Errorf("%w: options must not be empty", ErrInvalidRequest)
	}
	return nil
}

func (r *FollowUpRequest) Validate() error {
	return requireFields(
		field{"question", r.Question},
		field{"context", r.Context},
		field{"userQuery", r.UserQuery},
		field{"role", r.Role},
	)
}

func (r *MockInterviewStartRequest) Validate() error {
	if err := requireFields(
		field{"role", r.Role},
		field{"difficulty", r.Difficulty},
	); err != nil {
		return err
	}

	if r.Count < 1 || r.Count > MaxMockQuestionCount {
		return fmt.Errorf("%w: count must be between 1 and %d", ErrInvalidRequest, MaxMockQuestionCount)
	}
	return nil
}

func (r *MockInterviewStartRequest) SetDefaults() {
	if r.Count == 0 {
		r.Count = DefaultMockQuestionCount
	}
}

func (r *MockInterviewEvaluateRequest) Validate() error {
	if err := requireFields(field{"role", r.Role}); err != nil {
		return err
	}

	if len(r.Answers) == 0 {
		return fmt.Errorf("%w: answers must not be empty", ErrInvalidRequest)
	}
	for i, a := range r.Answers {
		if strings.TrimSpace(a.Question) == "" {
			return fmt.Errorf("%w: answers[%d].question is required", ErrInvalidRequest, i)
		}
	}
	return nil
}

type field struct {
	name  string
	value string
}

func requireFields(fields ...field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidRequest, f.name)
		}
	}
	return nil
}
