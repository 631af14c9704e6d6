// Package prompts renders the coaching prompts sent to the completion service.
// Values are interpolated as-is, without escaping.
package prompts

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/povarna/generative-ai-agents/coach-agent/internal/models"
)

type ID string

const (
	Evaluate              ID = "evaluate"
	Question              ID = "question"
	MCQQuestion           ID = "mcq_question"
	Explain               ID = "explain"
	QuizTopic             ID = "quiz_topic"
	ExplainWrong          ID = "explain_wrong"
	FollowUp              ID = "followup"
	MockInterviewStart    ID = "mock_interview_start"
	MockInterviewEvaluate ID = "mock_interview_evaluate"
)

var funcs = template.FuncMap{
	"inc":      func(i int) int { return i + 1 },
	"quizSize": func() int { return models.QuizSize },
}

var templates = map[ID]*template.Template{
	Evaluate:              parse(Evaluate, evaluateTemplate),
	Question:              parse(Question, questionTemplate),
	MCQQuestion:           parse(MCQQuestion, mcqQuestionTemplate),
	Explain:               parse(Explain, explainTemplate),
	QuizTopic:             parse(QuizTopic, quizTopicTemplate),
	ExplainWrong:          parse(ExplainWrong, explainWrongTemplate),
	FollowUp:              parse(FollowUp, followUpTemplate),
	MockInterviewStart:    parse(MockInterviewStart, mockInterviewStartTemplate),
	MockInterviewEvaluate: parse(MockInterviewEvaluate, mockInterviewEvaluateTemplate),
}

func parse(id ID, text string) *template.Template {
	return template.Must(template.New(string(id)).Funcs(funcs).Parse(text))
}

// IDs returns every known template id.
func IDs() []ID {
	return []ID{
		Evaluate, Question, MCQQuestion, Explain, QuizTopic,
		ExplainWrong, FollowUp, MockInterviewStart, MockInterviewEvaluate,
	}
}

// Render executes the template registered under id with data.
func Render(id ID, data any) (string, error) {
	tmpl, ok := templates[id]
	if !ok {
		return "", fmt.Errorf("unknown prompt template %q", id)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render prompt %s: %w", id, err)
	}

	return buf.String(), nil
}

func RenderEvaluate(req models.EvaluateRequest) (string, error) {
	return Render(Evaluate, req)
}

func RenderQuestion(req models.QuestionRequest) (string, error) {
	return Render(Question, req)
}

func RenderMCQQuestion(req models.QuestionRequest) (string, error) {
	return Render(MCQQuestion, req)
}

func RenderExplain(req models.ExplainRequest) (string, error) {
	return Render(Explain, req)
}

func RenderQuizTopic(req models.QuizTopicRequest) (string, error) {
	return Render(QuizTopic, req)
}

func RenderExplainWrong(req models.ExplainWrongRequest) (string, error) {
	return Render(ExplainWrong, req)
}

func RenderFollowUp(req models.FollowUpRequest) (string, error) {
	return Render(FollowUp, req)
}

func RenderMockInterviewStart(req models.MockInterviewStartRequest) (string, error) {
	return Render(MockInterviewStart, req)
}

func RenderMockInterviewEvaluate(req models.MockInterviewEvaluateRequest) (string, error) {
	return Render(MockInterviewEvaluate, req)
}
