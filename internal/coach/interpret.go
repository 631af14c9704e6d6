package coach

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/povarna/generative-ai-agents/coach-agent/internal/models"
)

type mcqCompletion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Topic         string   `json:"topic"`
	Explanation   string   `json:"explanation"`
}

// questionCompletion is one item of a question list. The model may state the
// answer as an index, as option text, or both; the index wins.
type questionCompletion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectIndex  *int     `json:"correctIndex"`
	CorrectAnswer string   `json:"correctAnswer"`
	Topic         string   `json:"topic"`
	Explanation   string   `json:"explanation"`
}

// decodeJSON trims the completion, drops a surrounding markdown fence and
// decodes the remaining text into v. Well-formed JSON with a field of the
// wrong type is a shape error, not a syntax error.
func decodeJSON(content string, v any) error {
	text := stripMarkdownCodeBlock(content)
	if err := json.Unmarshal([]byte(text), v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return fmt.Errorf("%w: %v", ErrInvalidShape, err)
		}
		return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return nil
}

func stripMarkdownCodeBlock(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}

	firstNewline := strings.Index(content, "\n")
	if firstNewline == -1 {
		return content
	}

	closing := strings.LastIndex(content, "```")
	if closing <= firstNewline {
		return content
	}

	return strings.TrimSpace(content[firstNewline+1 : closing])
}

func parseEvaluation(content string) (*models.EvaluateResponse, error) {
	var result models.EvaluateResponse
	if err := decodeJSON(content, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func parseQuestion(content string) (*models.QuestionResponse, error) {
	var result models.QuestionResponse
	if err := decodeJSON(content, &result); err != nil {
		return nil, err
	}
	if strings.TrimSpace(result.Question) == "" {
		return nil, fmt.Errorf("%w: question is empty", ErrInvalidShape)
	}
	return &result, nil
}

// parseMCQ resolves the model's correctAnswer text to its index in options.
func parseMCQ(content string) (*models.MCQItem, error) {
	var raw mcqCompletion
	if err := decodeJSON(content, &raw); err != nil {
		return nil, err
	}

	if strings.TrimSpace(raw.Question) == "" {
		return nil, fmt.Errorf("%w: question is empty", ErrInvalidShape)
	}
	if len(raw.Options) != models.OptionCount {
		return nil, fmt.Errorf("%w: expected %d options, got %d", ErrInvalidShape, models.OptionCount, len(raw.Options))
	}

	correctIndex := ResolveCorrectIndex(raw.Options, raw.CorrectAnswer)
	if correctIndex == -1 {
		return nil, fmt.Errorf("%w: %q is not one of the options", ErrAnswerMismatch, raw.CorrectAnswer)
	}

	explanation := raw.Explanation
	if explanation == "" {
		explanation = DefaultExplanation(raw.CorrectAnswer)
	}

	return &models.MCQItem{
		Question:     raw.Question,
		Options:      raw.Options,
		CorrectIndex: correctIndex,
		Topic:        raw.Topic,
		Explanation:  explanation,
	}, nil
}

// ResolveCorrectIndex returns the index of the option equal to answer after
// trimming both, or -1. Matching is case sensitive.
func ResolveCorrectIndex(options []string, answer string) int {
	answer = strings.TrimSpace(answer)
	for i, opt := range options {
		if strings.TrimSpace(opt) == answer {
			return i
		}
	}
	return -1
}

func DefaultExplanation(correctAnswer string) string {
	return `The correct answer is "` + correctAnswer + `".`
}

// parseQuestionList accepts either a bare JSON array of items or an object
// wrapping it under "questions". Items keep their order.
func parseQuestionList(content string, withExplanation bool) ([]models.MCQItem, error) {
	text := stripMarkdownCodeBlock(content)

	var raw []questionCompletion
	if strings.HasPrefix(text, "[") {
		if err := decodeJSON(text, &raw); err != nil {
			return nil, err
		}
	} else {
		var wrapped struct {
			Questions *[]questionCompletion `json:"questions"`
		}
		if err := decodeJSON(text, &wrapped); err != nil {
			return nil, err
		}
		if wrapped.Questions == nil {
			return nil, fmt.Errorf("%w: missing questions", ErrInvalidShape)
		}
		raw = *wrapped.Questions
	}

	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: no questions returned", ErrInvalidShape)
	}

	items := make([]models.MCQItem, 0, len(raw))
	for i, r := range raw {
		item, err := toItem(r)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
		if !withExplanation {
			item.Explanation = ""
		}
		items = append(items, item)
	}

	return items, nil
}

func toItem(r questionCompletion) (models.MCQItem, error) {
	if strings.TrimSpace(r.Question) == "" {
		return models.MCQItem{}, fmt.Errorf("%w: question is empty", ErrInvalidShape)
	}
	if len(r.Options) != models.OptionCount {
		return models.MCQItem{}, fmt.Errorf("%w: expected %d options, got %d", ErrInvalidShape, models.OptionCount, len(r.Options))
	}

	var correctIndex int
	switch {
	case r.CorrectIndex != nil:
		correctIndex = *r.CorrectIndex
		if correctIndex < 0 || correctIndex >= len(r.Options) {
			return models.MCQItem{}, fmt.Errorf("%w: correctIndex %d out of range", ErrInvalidShape, correctIndex)
		}
	case strings.TrimSpace(r.CorrectAnswer) != "":
		correctIndex = ResolveCorrectIndex(r.Options, r.CorrectAnswer)
		if correctIndex == -1 {
			return models.MCQItem{}, fmt.Errorf("%w: %q is not one of the options", ErrAnswerMismatch, r.CorrectAnswer)
		}
	default:
		return models.MCQItem{}, fmt.Errorf("%w: missing correctIndex", ErrInvalidShape)
	}

	return models.MCQItem{
		Question:     r.Question,
		Options:      r.Options,
		CorrectIndex: correctIndex,
		Topic:        r.Topic,
		Explanation:  r.Explanation,
	}, nil
}

func parseMockEvaluation(content string) (*models.MockInterviewEvaluateResponse, error) {
	var raw struct {
		Score     *float64 `json:"score"`
		Strengths []string `json:"strengths"`
		WeakAreas []string `json:"weakAreas"`
		Feedback  string   `json:"feedback"`
	}
	if err := decodeJSON(content, &raw); err != nil {
		return nil, err
	}

	if raw.Score == nil {
		return nil, fmt.Errorf("%w: missing score", ErrInvalidShape)
	}
	if *raw.Score < 0 || *raw.Score > 10 {
		return nil, fmt.Errorf("%w: score %.1f outside 0-10", ErrInvalidShape, *raw.Score)
	}

	result := &models.MockInterviewEvaluateResponse{
		Score:     *raw.Score,
		Strengths: raw.Strengths,
		WeakAreas: raw.WeakAreas,
		Feedback:  raw.Feedback,
	}
	// always serialize as arrays
	if result.Strengths == nil {
		result.Strengths = []string{}
	}
	if result.WeakAreas == nil {
		result.WeakAreas = []string{}
	}

	return result, nil
}

// plainText is used by free-text operations; the completion is never parsed.
func plainText(content string) string {
	return strings.TrimSpace(content)
}
