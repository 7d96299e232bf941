package usecase

import (
	"testing"

	"github.com/karinemajda/delivery-email-app/internal/core/domain"
)

func TestSummarizeEmptySnapshot(t *testing.T) {
	summary := Summarize(nil)
	if summary.Total != 0 || summary.Confirmed != 0 || summary.ConfirmedPct != 0 || summary.TotalSpent != 0 {
		t.Fatalf("expected zero summary, got %+v", summary)
	}
}

func TestSummarizeSingleUnconfirmedRecord(t *testing.T) {
	summary := Summarize([]domain.DeliveryRecord{
		{Delivery: domain.DeliveryNotConfirmed, PriceNum: 9.99},
	})
	if summary.Total != 1 || summary.Confirmed != 0 {
		t.Fatalf("unexpected counts: %+v", summary)
	}
	if summary.ConfirmedPct != 0 {
		t.Fatalf("expected 0%%, got %v", summary.ConfirmedPct)
	}
	if summary.TotalSpent != 9.99 {
		t.Fatalf("spend counts confirmed or not, got %v", summary.TotalSpent)
	}
}

func TestSummarizeMixedRecords(t *testing.T) {
	summary := Summarize([]domain.DeliveryRecord{
		{Delivery: domain.DeliveryConfirmed, PriceNum: 10},
		{Delivery: domain.DeliveryConfirmed, PriceNum: 20},
		{Delivery: domain.DeliveryNotConfirmed, PriceNum: 5},
		{Delivery: domain.DeliveryNotConfirmed},
	})
	if summary.Total != 4 || summary.Confirmed != 2 {
		t.Fatalf("unexpected counts: %+v", summary)
	}
	if summary.ConfirmedPct != 50 {
		t.Fatalf("expected 50%%, got %v", summary.ConfirmedPct)
	}
	if summary.TotalSpent != 35 {
		t.Fatalf("expected 35, got %v", summary.TotalSpent)
	}
}
