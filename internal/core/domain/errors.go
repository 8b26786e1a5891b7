package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSourceURL = errors.New("invalid source url")
	ErrFetch            = errors.New("fetch failed")
	ErrStore            = errors.New("image store failed")
	ErrAnalysis         = errors.New("analysis failed")
	ErrPersist          = errors.New("persist failed")
	ErrValidation       = errors.New("validation failed")
	ErrNotFound         = errors.New("not found")
	ErrConfig           = errors.New("invalid configuration")
	ErrTemporary        = errors.New("temporary failure")
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
