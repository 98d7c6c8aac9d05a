package llm

import "context"

// ChatModel is a minimal abstraction for chat-based LLMs used by the domain.
// Suggestion generation and CV enhancement depend only on this interface.
type ChatModel interface {
	Ask(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
