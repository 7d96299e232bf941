package usecase

import "github.com/karinemajda/delivery-email-app/internal/core/domain"

// Summarize aggregates a snapshot of records into summary metrics.
// Pure function; an empty snapshot yields all zeroes.
func Summarize(records []domain.DeliveryRecord) domain.StatsSummary {
	summary := domain.StatsSummary{Total: len(records)}

	for _, record := range records {
		if record.Delivery == domain.DeliveryConfirmed {
			summary.Confirmed++
		}
		summary.TotalSpent += record.PriceNum
	}

	if summary.Total > 0 {
		summary.ConfirmedPct = float64(summary.Confirmed) / float64(summary.Total) * 100
	}
	return summary
}
