package ports

import (
	"context"

	"github.com/karinemajda/delivery-email-app/internal/core/domain"
)

// Completer is the external text-completion capability. The prompt format
// and endpoint wire details belong to the implementing adapter.
type Completer interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// DeliveryStore persists extracted delivery records append-only.
type DeliveryStore interface {
	EnsureSchema(ctx context.Context) error
	Insert(ctx context.Context, record *domain.DeliveryRecord) error
	History(ctx context.Context) ([]domain.DeliveryRecord, error)
}

// MessageQueue publishes/consumes email submissions for the worker path.
type MessageQueue interface {
	PublishSubmission(ctx context.Context, submission domain.Submission) error
	SubscribeSubmissions(ctx context.Context, handler func(context.Context, domain.Submission) error) error
}
