package usecase

import (
	"context"
	"log/slog"

	"github.com/karinemajda/delivery-email-app/internal/core/domain"
	"github.com/karinemajda/delivery-email-app/internal/core/ports"
)

type DeliveryHistoryUseCase struct {
	store  ports.DeliveryStore
	logger *slog.Logger
}

func NewDeliveryHistoryUseCase(store ports.DeliveryStore, logger *slog.Logger) *DeliveryHistoryUseCase {
	return &DeliveryHistoryUseCase{store: store, logger: logger}
}

// History returns stored records newest first. A read failure degrades to an
// empty snapshot with degraded=true; history display is best-effort and must
// never block the rest of the surface.
func (uc *DeliveryHistoryUseCase) History(ctx context.Context) ([]domain.DeliveryRecord, bool) {
	records, err := uc.store.History(ctx)
	if err != nil {
		uc.logger.Warn("history_unavailable", "error", err)
		return []domain.DeliveryRecord{}, true
	}
	return records, false
}

func (uc *DeliveryHistoryUseCase) Stats(ctx context.Context) (domain.StatsSummary, bool) {
	records, degraded := uc.History(ctx)
	return Summarize(records), degraded
}
