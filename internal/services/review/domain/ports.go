package domain

import "context"

// ServicePort defines the service contract for review
type ServicePort interface {
	Runs(ctx context.Context, in RunsInput) ([]Run, error)
	Conversations(ctx context.Context, in ConversationsInput) ([]Conversation, int, error)
	Messages(ctx context.Context, in MessagesInput) ([]Message, error)
	Findings(ctx context.Context, in FindingsInput) ([]Finding, error)
}
