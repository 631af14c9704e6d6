package api

import (
	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
	"github.com/go-openapi/spec"
	"github.com/povarna/generative-ai-agents/coach-agent/internal/api/middleware"
	"github.com/povarna/generative-ai-agents/coach-agent/internal/models"
)

const OpenAPIPath = "/openapi.json"

func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)

	ws.
		Path("/").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	// Health endpoint
	ws.
		Route(ws.GET("/health").
			To(handler.Health).
			Doc("Health check").
			Metadata(restfulspec.KeyOpenAPITags, []string{"health"}).
			Writes(HealthResponse{}).
			Returns(200, "OK", HealthResponse{}))

	ws.Route(aiRoute(ws.POST("/ai/evaluate"), handler.Evaluate, "Evaluate a candidate's answer", "evaluate").
		Reads(models.EvaluateRequest{}).
		Writes(models.EvaluateResponse{}).
		Returns(200, "OK", models.EvaluateResponse{}))

	ws.Route(aiRoute(ws.POST("/ai/question"), handler.Question, "Generate an interview question", "questions").
		Reads(models.QuestionRequest{}).
		Writes(models.QuestionResponse{}).
		Returns(200, "OK", models.QuestionResponse{}))

	ws.Route(aiRoute(ws.POST("/ai/mcq-question"), handler.MCQQuestion, "Generate a multiple-choice question", "questions").
		Reads(models.QuestionRequest{}).
		Writes(models.MCQItem{}).
		Returns(200, "OK", models.MCQItem{}))

	ws.Route(aiRoute(ws.POST("/ai/explain"), handler.Explain, "Explain a topic", "explain").
		Reads(models.ExplainRequest{}).
		Writes(models.ExplainResponse{}).
		Returns(200, "OK", models.ExplainResponse{}))

	ws.Route(aiRoute(ws.POST("/ai/quiz-topic"), handler.QuizTopic, "Generate a five question quiz on a topic", "questions").
		Reads(models.QuizTopicRequest{}).
		Writes(models.QuizResponse{}).
		Returns(200, "OK", models.QuizResponse{}))

	ws.Route(aiRoute(ws.POST("/ai/explain-wrong"), handler.ExplainWrong, "Explain why a chosen option is wrong", "explain").
		Reads(models.ExplainWrongRequest{}).
		Writes(models.ExplainWrongResponse{}).
		Returns(200, "OK", models.ExplainWrongResponse{}))

	ws.Route(aiRoute(ws.POST("/ai/followup"), handler.FollowUp, "Answer a follow-up question", "explain").
		Reads(models.FollowUpRequest{}).
		Writes(models.FollowUpResponse{}).
		Returns(200, "OK", models.FollowUpResponse{}))

	ws.Route(aiRoute(ws.POST("/ai/mock-interview/start"), handler.MockInterviewStart, "Start a mock interview", "mock-interview").
		Reads(models.MockInterviewStartRequest{}).
		Writes(models.QuizResponse{}).
		Returns(200, "OK", models.QuizResponse{}))

	ws.Route(aiRoute(ws.POST("/ai/mock-interview/evaluate"), handler.MockInterviewEvaluate, "Evaluate a mock interview", "mock-interview").
		Reads(models.MockInterviewEvaluateRequest{}).
		Writes(models.MockInterviewEvaluateResponse{}).
		Returns(200, "OK", models.MockInterviewEvaluateResponse{}))

	container.Add(ws)
}

func aiRoute(rb *restful.RouteBuilder, fn restful.RouteFunction, doc string, tag string) *restful.RouteBuilder {
	return rb.
		To(fn).
		Doc(doc).
		Metadata(restfulspec.KeyOpenAPITags, []string{tag}).
		Returns(400, "Bad Request", middleware.ErrorResponse{}).
		Returns(500, "Internal Server Error", middleware.ErrorResponse{})
}

// RegisterOpenAPI serves the OpenAPI document for every web service already
// added to the container.
func RegisterOpenAPI(container *restful.Container) {
	config := restfulspec.Config{
		WebServices:                   container.RegisteredWebServices(),
		APIPath:                       OpenAPIPath,
		PostBuildSwaggerObjectHandler: enrichSwaggerObject,
	}

	container.Add(restfulspec.NewOpenAPIService(config))
}

func enrichSwaggerObject(swo *spec.Swagger) {
	swo.Info = &spec.Info{
		InfoProps: spec.InfoProps{
			Title:       "Coach Agent API",
			Description: "Interview coaching backed by an LLM",
			Version:     "1.0.0",
		},
	}
	swo.Tags = []spec.Tag{
		{TagProps: spec.TagProps{Name: "health", Description: "Health checks"}},
		{TagProps: spec.TagProps{Name: "evaluate", Description: "Answer evaluation"}},
		{TagProps: spec.TagProps{Name: "questions", Description: "Question and quiz generation"}},
		{TagProps: spec.TagProps{Name: "explain", Description: "Free text explanations"}},
		{TagProps: spec.TagProps{Name: "mock-interview", Description: "Mock interviews"}},
	}
}
