package llm

// LLMRequest is a single completion call. System is optional and is sent
// as a separate system message by providers that support one.
type LLMRequest struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

type LLMResponse struct {
	Content    string
	StopReason string
}
