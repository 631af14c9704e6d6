package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/emicklei/go-restful/v3"
	"github.com/povarna/generative-ai-agents/coach-agent/internal/api"
	"github.com/povarna/generative-ai-agents/coach-agent/internal/api/middleware"
	"github.com/povarna/generative-ai-agents/coach-agent/internal/coach"
	"github.com/povarna/generative-ai-agents/coach-agent/internal/config"
	"github.com/povarna/generative-ai-agents/coach-agent/internal/llm"
	"github.com/povarna/generative-ai-agents/coach-agent/internal/llm/mocks"
	"github.com/povarna/generative-ai-agents/coach-agent/internal/models"
	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"
)

func setupTestAPI(t *testing.T) (*restful.Container, *mocks.MockLLMClient) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockLLM := mocks.NewMockLLMClient(ctrl)

	logger := zerolog.Nop()
	service := coach.NewService(mockLLM, config.Default(), &logger)

	container := restful.NewContainer()
	container.Filter(middleware.Logger)
	container.Filter(middleware.RecoverPanic)
	api.RegisterRoutes(container, api.NewHandler(service, &logger))
	api.RegisterOpenAPI(container)

	return container, mockLLM
}

func post(t *testing.T, container *restful.Container, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, req)
	return recorder
}

func completion(content string) *llm.LLMResponse {
	return &llm.LLMResponse{Content: content, StopReason: "stop"}
}

func decode[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.Unmarshal(recorder.Body.Bytes(), &v); err != nil {
		t.Fatalf("Failed to parse response %q: %v", recorder.Body.String(), err)
	}
	return v
}

func expectError(t *testing.T, recorder *httptest.ResponseRecorder, status int, message string) {
	t.Helper()

	if recorder.Code != status {
		t.Fatalf("Expected status %d, got %d. Body: %s", status, recorder.Code, recorder.Body.String())
	}
	body := decode[middleware.ErrorResponse](t, recorder)
	if message != "" && body.Error != message {
		t.Errorf("Expected error %q, got %q", message, body.Error)
	}
	if body.Error == "" {
		t.Error("Expected error field to be set")
	}
}

func TestAPI_Health(t *testing.T) {
	// No EXPECT on the mock: health must not call the completion service
	container, _ := setupTestAPI(t)

	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", recorder.Code)
	}

	var raw map[string]any
	if err := json.Unmarshal(recorder.Body.Bytes(), &raw); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(raw) != 1 || raw["status"] != "ok" {
		t.Errorf(`Expected {"status":"ok"}, got %v`, raw)
	}
}

func TestAPI_Evaluate(t *testing.T) {
	container, mockLLM := setupTestAPI(t)
	mockLLM.EXPECT().InvokeModel(gomock.Any(), gomock.Any()).Return(completion(`
{"feedback":"Mostly right","improvedAnswer":"Goroutines are multiplexed onto OS threads.","explanation":"...","score":7,"topic":"concurrency"}
`), nil)

	recorder := post(t, container, "/ai/evaluate", models.EvaluateRequest{
		Role: "backend", Question: "What is a goroutine?", UserAnswer: "A thread.",
	})
	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", recorder.Code, recorder.Body.String())
	}

	result := decode[models.EvaluateResponse](t, recorder)
	if result.Score != 7 || result.Topic != "concurrency" || result.Feedback != "Mostly right" {
		t.Errorf("Unexpected result: %+v", result)
	}
}

func TestAPI_InvalidJSON_ThenRecovers(t *testing.T) {
	container, mockLLM := setupTestAPI(t)
	body := models.QuestionRequest{Role: "backend", Difficulty: "easy"}

	gomock.InOrder(
		mockLLM.EXPECT().InvokeModel(gomock.Any(), gomock.Any()).Return(completion("Here's a question: what is Go?"), nil),
		mockLLM.EXPECT().InvokeModel(gomock.Any(), gomock.Any()).Return(completion(`{"question":"What is Go?","topic":"basics"}`), nil),
	)

	expectError(t, post(t, container, "/ai/question", body), http.StatusInternalServerError, "AI returned invalid JSON")

	recorder := post(t, container, "/ai/question", body)
	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected subsequent request to succeed, got %d", recorder.Code)
	}
	if result := decode[models.QuestionResponse](t, recorder); result.Question != "What is Go?" {
		t.Errorf("Unexpected result: %+v", result)
	}
}

func TestAPI_InvalidJSON_AllJSONRoutes(t *testing.T) {
	tests := []struct {
		path string
		body any
	}{
		{"/ai/evaluate", models.EvaluateRequest{Role: "r", Question: "q", UserAnswer: "a"}},
		{"/ai/question", models.QuestionRequest{Role: "r", Difficulty: "easy"}},
		{"/ai/mcq-question", models.QuestionRequest{Role: "r", Difficulty: "easy"}},
		{"/ai/quiz-topic", models.QuizTopicRequest{Role: "r", Topic: "t"}},
		{"/ai/mock-interview/start", models.MockInterviewStartRequest{Role: "r", Difficulty: "easy", Count: 3}},
		{"/ai/mock-interview/evaluate", models.MockInterviewEvaluateRequest{Role: "r", Answers: []models.MockAnswer{{Question: "q", Answer: "a"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			container, mockLLM := setupTestAPI(t)
			mockLLM.EXPECT().InvokeModel(gomock.Any(), gomock.Any()).Return(completion("not json at all"), nil)

			expectError(t, post(t, container, tt.path, tt.body), http.StatusInternalServerError, "AI returned invalid JSON")
		})
	}
}

func TestAPI_MCQQuestion(t *testing.T) {
	container, mockLLM := setupTestAPI(t)
	mockLLM.EXPECT().InvokeModel(gomock.Any(), gomock.Any()).Return(completion(
		`{"question":"Which statement waits on multiple channels?","options":["switch","select","for","defer"],"correctAnswer":"select","topic":"channels","explanation":"select blocks until a case can run."}`,
	), nil)

	recorder := post(t, container, "/ai/mcq-question", models.QuestionRequest{Role: "backend", Difficulty: "easy", Topic: "channels"})
	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", recorder.Code, recorder.Body.String())
	}

	result := decode[models.MCQItem](t, recorder)
	if len(result.Options) != 4 {
		t.Errorf("Expected 4 options, got %d", len(result.Options))
	}
	if result.CorrectIndex != 1 {
		t.Errorf("Expected correctIndex 1, got %d", result.CorrectIndex)
	}
	if result.Explanation != "select blocks until a case can run." {
		t.Errorf("Unexpected explanation %q", result.Explanation)
	}
}

func TestAPI_MCQQuestion_AnswerMismatch(t *testing.T) {
	container, mockLLM := setupTestAPI(t)
	mockLLM.EXPECT().InvokeModel(gomock.Any(), gomock.Any()).Return(completion(
		`{"question":"Q","options":["a","b","c","d"],"correctAnswer":"B","topic":"t"}`,
	), nil)

	recorder := post(t, container, "/ai/mcq-question", models.QuestionRequest{Role: "backend", Difficulty: "easy"})
	expectError(t, recorder, http.StatusInternalServerError, "Correct answer mismatch")
}

func TestAPI_Evaluate_WrongFieldType(t *testing.T) {
	container, mockLLM := setupTestAPI(t)
	mockLLM.EXPECT().InvokeModel(gomock.Any(), gomock.Any()).Return(completion(
		`{"feedback":"ok","improvedAnswer":"b","explanation":"e","score":"7","topic":"go"}`,
	), nil)

	recorder := post(t, container, "/ai/evaluate", models.EvaluateRequest{Role: "r", Question: "q", UserAnswer: "a"})
	expectError(t, recorder, http.StatusInternalServerError, "AI returned an unexpected response shape")
}

func TestAPI_QuizTopic_CorrectAnswerText(t *testing.T) {
	item := `{"question":"Which join keeps only matching rows?","options":["GROUP","INNER","ORDER","LIMIT"],"correctAnswer":"INNER","topic":"sql"}`
	items := make([]string, models.QuizSize)
	for i := range items {
		items[i] = item
	}

	container, mockLLM := setupTestAPI(t)
	mockLLM.EXPECT().InvokeModel(gomock.Any(), gomock.Any()).Return(completion("["+strings.Join(items, ",")+"]"), nil)

	recorder := post(t, container, "/ai/quiz-topic", models.QuizTopicRequest{Topic: "sql", Role: "backend"})
	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", recorder.Code, recorder.Body.String())
	}

	result := decode[models.QuizResponse](t, recorder)
	if len(result.Questions) != models.QuizSize {
		t.Fatalf("Expected %d questions, got %d", models.QuizSize, len(result.Questions))
	}
	for i, q := range result.Questions {
		if q.CorrectIndex != 1 {
			t.Errorf("question %d: expected correctIndex 1, got %d", i, q.CorrectIndex)
		}
	}
}

func TestAPI_MockInterviewStart_MissingCorrectIndex(t *testing.T) {
	container, mockLLM := setupTestAPI(t)
	mockLLM.EXPECT().InvokeModel(gomock.Any(), gomock.Any()).Return(completion(
		`{"questions":[{"question":"Q","options":["a","b","c","d"],"topic":"t","explanation":"e"}]}`,
	), nil)

	recorder := post(t, container, "/ai/mock-interview/start", models.MockInterviewStartRequest{Role: "r", Difficulty: "easy", Count: 1})
	expectError(t, recorder, http.StatusInternalServerError, "AI returned an unexpected response shape")
}

func TestAPI_ProviderFailureMessages(t *testing.T) {
	tests := []struct {
		path    string
		body    any
		message string
	}{
		{"/ai/evaluate", models.EvaluateRequest{Role: "r", Question: "q", UserAnswer: "a"}, "AI evaluation failed"},
		{"/ai/question", models.QuestionRequest{Role: "r", Difficulty: "easy"}, "AI question generation failed"},
		{"/ai/mcq-question", models.QuestionRequest{Role: "r", Difficulty: "easy"}, "MCQ generation failed"},
		{"/ai/explain", models.ExplainRequest{Topic: "t", Role: "r"}, "Explain failed"},
		{"/ai/quiz-topic", models.QuizTopicRequest{Topic: "t", Role: "r"}, "Quiz generation failed"},
		{"/ai/explain-wrong", models.ExplainWrongRequest{Question: "q", Options: []string{"a"}, CorrectAnswer: "a", UserAnswer: "b", Role: "r"}, "Explain wrong answer failed"},
		{"/ai/followup", models.FollowUpRequest{Question: "q", Context: "c", UserQuery: "u", Role: "r"}, "Follow-up failed"},
		{"/ai/mock-interview/start", models.MockInterviewStartRequest{Role: "r", Difficulty: "easy"}, "Mock interview generation failed"},
		{"/ai/mock-interview/evaluate", models.MockInterviewEvaluateRequest{Role: "r", Answers: []models.MockAnswer{{Question: "q"}}}, "Mock interview evaluation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			container, mockLLM := setupTestAPI(t)
			mockLLM.EXPECT().InvokeModel(gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("rate limit exceeded"))

			expectError(t, post(t, container, tt.path, tt.body), http.StatusInternalServerError, tt.message)
		})
	}
}

func TestAPI_FreeTextRoutesReturnVerbatim(t *testing.T) {
	jsonLooking := `{"reply": "not parsed", "score": 3}`

	tests := []struct {
		path  string
		body  any
		field string
	}{
		{"/ai/explain", models.ExplainRequest{Topic: "interfaces", Role: "backend"}, "explanation"},
		{"/ai/explain-wrong", models.ExplainWrongRequest{Question: "q", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "a", UserAnswer: "b", Role: "r"}, "explanation"},
		{"/ai/followup", models.FollowUpRequest{Question: "q", Context: "c", UserQuery: "u", Role: "r"}, "reply"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			container, mockLLM := setupTestAPI(t)
			mockLLM.EXPECT().InvokeModel(gomock.Any(), gomock.Any()).Return(completion("\n\t"+jsonLooking+"  \n"), nil)

			recorder := post(t, container, tt.path, tt.body)
			if recorder.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d. Body: %s", recorder.Code, recorder.Body.String())
			}

			raw := decode[map[string]any](t, recorder)
			if raw[tt.field] != jsonLooking {
				t.Errorf("Expected %s=%q, got %v", tt.field, jsonLooking, raw[tt.field])
			}
		})
	}
}

func TestAPI_Explain_EchoesTopic(t *testing.T) {
	container, mockLLM := setupTestAPI(t)
	mockLLM.EXPECT().InvokeModel(gomock.Any(), gomock.Any()).Return(completion("Interfaces are implicit."), nil)

	recorder := post(t, container, "/ai/explain", models.ExplainRequest{Topic: "interfaces", Role: "backend"})
	result := decode[models.ExplainResponse](t, recorder)
	if result.Topic != "interfaces" || result.Explanation != "Interfaces are implicit." {
		t.Errorf("Unexpected result: %+v", result)
	}
}

func mcqItems(n int, withExplanation bool) string {
	items := make([]string, n)
	for i := range items {
		explanation := ""
		if withExplanation {
			explanation = fmt.Sprintf(`,"explanation":"because %d"`, i)
		}
		items[i] = fmt.Sprintf(`{"question":"question %d","options":["a","b","c","d"],"correctIndex":%d,"topic":"topic %d"%s}`, i, i%4, i, explanation)
	}
	return "[" + strings.Join(items, ",") + "]"
}

func TestAPI_QuestionListsKeepOrder(t *testing.T) {
	tests := []struct {
		name            string
		path            string
		body            any
		n               int
		withExplanation bool
	}{
		{"quiz-topic", "/ai/quiz-topic", models.QuizTopicRequest{Topic: "sql", Role: "backend"}, 5, false},
		{"mock start", "/ai/mock-interview/start", models.MockInterviewStartRequest{Role: "backend", Difficulty: "hard", Count: 8}, 8, true},
		{"mock start fewer than requested", "/ai/mock-interview/start", models.MockInterviewStartRequest{Role: "backend", Difficulty: "hard", Count: 8}, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			container, mockLLM := setupTestAPI(t)
			mockLLM.EXPECT().InvokeModel(gomock.Any(), gomock.Any()).Return(completion(`{"questions":`+mcqItems(tt.n, tt.withExplanation)+`}`), nil)

			recorder := post(t, container, tt.path, tt.body)
			if recorder.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d. Body: %s", recorder.Code, recorder.Body.String())
			}

			result := decode[models.QuizResponse](t, recorder)
			if len(result.Questions) != tt.n {
				t.Fatalf("Expected %d questions, got %d", tt.n, len(result.Questions))
			}
			for i, q := range result.Questions {
				if q.Question != fmt.Sprintf("question %d", i) || q.CorrectIndex != i%4 || q.Topic != fmt.Sprintf("topic %d", i) {
					t.Errorf("Item %d changed or out of order: %+v", i, q)
				}
				if len(q.Options) != 4 {
					t.Errorf("Item %d: expected 4 options, got %d", i, len(q.Options))
				}
				if tt.withExplanation && q.Explanation != fmt.Sprintf("because %d", i) {
					t.Errorf("Item %d: unexpected explanation %q", i, q.Explanation)
				}
			}
		})
	}
}

func TestAPI_MockInterviewEvaluate(t *testing.T) {
	container, mockLLM := setupTestAPI(t)
	mockLLM.EXPECT().InvokeModel(gomock.Any(), gomock.Any()).Return(completion(
		`{"score":8,"strengths":["clear communication"],"weakAreas":["indexes"],"feedback":"Solid"}`,
	), nil)

	recorder := post(t, container, "/ai/mock-interview/evaluate", models.MockInterviewEvaluateRequest{
		Role:    "backend",
		Answers: []models.MockAnswer{{Question: "What is an index?", Answer: "A lookup structure."}},
	})
	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d. Body: %s", recorder.Code, recorder.Body.String())
	}

	result := decode[models.MockInterviewEvaluateResponse](t, recorder)
	if result.Score != 8 || result.Feedback != "Solid" || len(result.Strengths) != 1 || len(result.WeakAreas) != 1 {
		t.Errorf("Unexpected result: %+v", result)
	}
}

func TestAPI_BadRequests(t *testing.T) {
	container, _ := setupTestAPI(t)

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/ai/evaluate", strings.NewReader("{not json"))
		req.Header.Set("Content-Type", "application/json")

		recorder := httptest.NewRecorder()
		container.ServeHTTP(recorder, req)

		expectError(t, recorder, http.StatusBadRequest, "")
	})

	t.Run("missing field", func(t *testing.T) {
		recorder := post(t, container, "/ai/evaluate", models.EvaluateRequest{Role: "backend", Question: "q"})
		expectError(t, recorder, http.StatusBadRequest, "invalid request: userAnswer is required")
	})

	t.Run("count out of range", func(t *testing.T) {
		recorder := post(t, container, "/ai/mock-interview/start", models.MockInterviewStartRequest{Role: "r", Difficulty: "easy", Count: 21})
		expectError(t, recorder, http.StatusBadRequest, "")
	})
}

func TestAPI_ConcurrentEvaluateCorrelation(t *testing.T) {
	container, mockLLM := setupTestAPI(t)

	// The fake model echoes the question back as the topic
	mockLLM.EXPECT().
		InvokeModel(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req llm.LLMRequest) (*llm.LLMResponse, error) {
			start := strings.Index(req.Prompt, "Question:\n") + len("Question:\n")
			end := strings.Index(req.Prompt, "\n\nUser Answer:")
			question := req.Prompt[start:end]
			return completion(fmt.Sprintf(`{"feedback":"f","improvedAnswer":"i","explanation":"e","score":1,"topic":%q}`, question)), nil
		}).
		Times(20)

	var wg sync.WaitGroup
	errs := make(chan string, 20)

	for i := range 20 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			question := fmt.Sprintf("question-%d", i)
			recorder := post(t, container, "/ai/evaluate", models.EvaluateRequest{Role: "backend", Question: question, UserAnswer: "answer"})
			if recorder.Code != http.StatusOK {
				errs <- fmt.Sprintf("request %d: status %d", i, recorder.Code)
				return
			}

			var result models.EvaluateResponse
			if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
				errs <- fmt.Sprintf("request %d: %v", i, err)
				return
			}
			if result.Topic != question {
				errs <- fmt.Sprintf("request %d: got response for %q", i, result.Topic)
			}
		}(i)
	}

	wg.Wait()
	close(errs)
	for msg := range errs {
		t.Error(msg)
	}
}

func TestAPI_OpenAPIDocument(t *testing.T) {
	container, _ := setupTestAPI(t)

	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, api.OpenAPIPath, nil))
	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", recorder.Code)
	}

	var doc struct {
		Paths map[string]any `json:"paths"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &doc); err != nil {
		t.Fatalf("Failed to parse OpenAPI document: %v", err)
	}
	for _, path := range []string{"/health", "/ai/evaluate", "/ai/mcq-question", "/ai/mock-interview/evaluate"} {
		if _, ok := doc.Paths[path]; !ok {
			t.Errorf("Expected path %s in OpenAPI document", path)
		}
	}
}
