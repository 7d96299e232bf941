package domain

import (
	"errors"
	"fmt"
)

var (
	ErrCompletion         = errors.New("completion failed")
	ErrMalformedResponse  = errors.New("completion is not valid json")
	ErrStore              = errors.New("store operation failed")
	ErrHistoryUnavailable = errors.New("history unavailable")
	ErrInvalidInput       = errors.New("invalid input")
	ErrTemporary          = errors.New("temporary failure")
)

// WrapError preserves typed semantic errors with operation context.
func WrapError(kind error, operation string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", operation, kind, err)
}

func IsKind(err error, kind error) bool {
	return errors.Is(err, kind)
}
