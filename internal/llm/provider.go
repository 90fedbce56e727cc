package llm

import "context"

// Provider is a hosted language model that completes a conversation in a
// single shot. The BOM generator needs whole responses, not streams.
type Provider interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// Message is a single chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
