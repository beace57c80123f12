package module

import (
	"context"

	reviewdom "exhume/internal/services/review/domain"
	reviewsvc "exhume/internal/services/review/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptReviewPort adapts the review service to the domain port interface
type adaptReviewPort struct{ svc reviewsvc.Service }

// Runs implements the domain ServicePort interface
func (a adaptReviewPort) Runs(ctx context.Context, in reviewdom.RunsInput) ([]reviewdom.Run, error) {
	return a.svc.Runs(ctx, in)
}

// Conversations implements the domain ServicePort interface
func (a adaptReviewPort) Conversations(ctx context.Context, in reviewdom.ConversationsInput) ([]reviewdom.Conversation, int, error) {
	return a.svc.Conversations(ctx, in)
}

// Messages implements the domain ServicePort interface
func (a adaptReviewPort) Messages(ctx context.Context, in reviewdom.MessagesInput) ([]reviewdom.Message, error) {
	return a.svc.Messages(ctx, in)
}

// Findings implements the domain ServicePort interface
func (a adaptReviewPort) Findings(ctx context.Context, in reviewdom.FindingsInput) ([]reviewdom.Finding, error) {
	return a.svc.Findings(ctx, in)
}
