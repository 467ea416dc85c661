package llm

import "context"

// Provider answers free-form learner questions with plain text.
type Provider interface {
	// Complete sends the conversation to the model and returns its reply.
	Complete(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// System sets the tutor persona and answer constraints.
	System string

	// Messages is the conversation so far. The assistant sends a single
	// user turn; the TUI screen keeps prior turns for follow-ups.
	Messages []Message

	MaxTokens int

	// Temperature controls randomness. Zero means provider default.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Ask builds a single-turn request.
func Ask(system, question string, maxTokens int) Request {
	return Request{
		System:    system,
		Messages:  []Message{{Role: RoleUser, Content: question}},
		MaxTokens: maxTokens,
	}
}

// Response holds the model's reply.
type Response struct {
	Text  string
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
