package mcpadapter

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/povarna/generative-ai-agents/coach-agent/internal/coach"
)

// RegisterTools exposes every coach operation as an MCP tool. Tool inputs use
// the same field names as the HTTP API.
func RegisterTools(server *mcp.Server, svc *coach.Service) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "evaluate_answer",
		Description: "Evaluate a candidate's interview answer and suggest an improved one",
	}, newToolHandler(svc.Evaluate))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_question",
		Description: "Generate one open interview question for a role and difficulty, optionally from a topic",
	}, newToolHandler(svc.Question))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_mcq_question",
		Description: "Generate one multiple-choice interview question with four options",
	}, newToolHandler(svc.MCQQuestion))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "explain_topic",
		Description: "Explain an interview topic in plain text",
	}, newToolHandler(svc.Explain))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_quiz",
		Description: "Generate a five question multiple-choice quiz on a topic",
	}, newToolHandler(svc.QuizTopic))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "explain_wrong_answer",
		Description: "Explain why the chosen option of a multiple-choice question is wrong",
	}, newToolHandler(svc.ExplainWrong))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "follow_up",
		Description: "Answer a candidate's follow-up question about an interview question",
	}, newToolHandler(svc.FollowUp))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "start_mock_interview",
		Description: "Generate the multiple-choice questions of a mock interview (1-20, default 5)",
	}, newToolHandler(svc.MockInterviewStart))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "evaluate_mock_interview",
		Description: "Score a finished mock interview and list strengths and weak areas",
	}, newToolHandler(svc.MockInterviewEvaluate))
}

// newToolHandler adapts a coach operation to a typed tool handler. Errors are
// reported to the client as tool errors.
func newToolHandler[In, Out any](run func(context.Context, In) (*Out, error)) mcp.ToolHandlerFor[In, Out] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input In) (*mcp.CallToolResult, Out, error) {
		result, err := run(ctx, input)
		if err != nil {
			var zero Out
			return nil, zero, err
		}
		return nil, *result, nil
	}
}
