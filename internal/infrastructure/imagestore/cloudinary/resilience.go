package cloudinary

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/haonguyen/perfume-catalog/internal/infrastructure/resilience"
)

type UploadStatusError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *UploadStatusError) Error() string {
	if e == nil {
		return "cloudinary status error"
	}
	if e.Message == "" {
		return fmt.Sprintf("cloudinary upload status: %s", e.Status)
	}
	return fmt.Sprintf("cloudinary upload status: %s: %s", e.Status, e.Message)
}

func classifyUploadError(err error) resilience.ErrorClassification {
	if err == nil {
		return resilience.ErrorClassification{}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.ErrorClassification{Retryable: false, RecordFailure: false}
	}
	if resilience.IsCircuitOpen(err) {
		return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
	}

	var statusErr *UploadStatusError
	if errors.As(err, &statusErr) {
		switch statusErr.StatusCode {
		case http.StatusRequestTimeout,
			http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
		default:
			return resilience.ErrorClassification{Retryable: false, RecordFailure: false}
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
	}

	return resilience.ErrorClassification{Retryable: false, RecordFailure: true}
}
