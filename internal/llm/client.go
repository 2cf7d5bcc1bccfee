package llm

import "context"

type Message struct {
	Role    string
	Content string
}

type Response struct {
	Content          string
	Model            string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Client abstracts a text-completion provider. Implementations must
// return an error on any transport/auth failure; callers own fallback.
type Client interface {
	Generate(ctx context.Context, messages []Message) (Response, error)
}
