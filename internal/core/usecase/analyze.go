package usecase

import (
	"context"
	"encoding/json"

	"github.com/karinemajda/delivery-email-app/internal/core/domain"
	"github.com/karinemajda/delivery-email-app/internal/core/extract"
	"github.com/karinemajda/delivery-email-app/internal/core/ports"
)

type AnalyzeEmailUseCase struct {
	completer ports.Completer
	store     ports.DeliveryStore
	maxTokens int
}

func NewAnalyzeEmailUseCase(completer ports.Completer, store ports.DeliveryStore, maxTokens int) *AnalyzeEmailUseCase {
	return &AnalyzeEmailUseCase{
		completer: completer,
		store:     store,
		maxTokens: maxTokens,
	}
}

// Analyze runs the full pipeline for one email body: prompt, completion,
// normalization, validation, insert. A completion or parse failure aborts
// the run; a failed insert is reported through a typed error while the
// validated record is still returned, so the caller keeps the extracted data.
func (uc *AnalyzeEmailUseCase) Analyze(ctx context.Context, emailBody string) (*domain.AnalyzeResult, error) {
	request := extract.BuildRequest(emailBody, uc.maxTokens)

	completion, err := uc.completer.Complete(ctx, request.Prompt, request.MaxTokens)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCompletion, "complete extraction", err)
	}

	normalized := extract.NormalizeJSON(completion)

	var parsed map[string]any
	if err := json.Unmarshal([]byte(normalized), &parsed); err != nil {
		// Keep the normalized text so the caller can show what the model said.
		return &domain.AnalyzeResult{RawOutput: normalized},
			domain.WrapError(domain.ErrMalformedResponse, "parse extraction json", err)
	}

	record, defaulted := extract.ValidateRecord(parsed)
	result := &domain.AnalyzeResult{
		Record:    record,
		Defaulted: defaulted,
		RawOutput: normalized,
	}

	if err := uc.store.Insert(ctx, &result.Record); err != nil {
		return result, domain.WrapError(domain.ErrStore, "insert delivery record", err)
	}
	result.Saved = true
	return result, nil
}
