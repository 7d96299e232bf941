package ports

import (
	"context"

	"github.com/karinemajda/delivery-email-app/internal/core/domain"
)

// EmailAnalyzer is the inbound contract for one pipeline run over an email body.
type EmailAnalyzer interface {
	Analyze(ctx context.Context, emailBody string) (*domain.AnalyzeResult, error)
}

// DeliveryReader is the inbound read model for history and statistics.
// Degraded reads return an empty snapshot, never an error.
type DeliveryReader interface {
	History(ctx context.Context) (records []domain.DeliveryRecord, degraded bool)
	Stats(ctx context.Context) (summary domain.StatsSummary, degraded bool)
}
