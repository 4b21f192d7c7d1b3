// Package gwerr maps gateway failures onto the transfer error taxonomy.
package gwerr

import (
	"errors"
	"fmt"
	"net/http"

	domain_transfer "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/transfer"
	port_banking "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/ports/gateway/banking"
)

// Classify turns a gateway error into ErrSessionExpired, a RejectedError
// carrying the backend message, or an UpstreamError. Only 4xx answers count as
// rejections; server errors are upstream failures.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, domain_transfer.ErrSessionExpired) {
		return err
	}

	if errors.Is(err, port_banking.ErrSessionExpired) {
		return fmt.Errorf("%w: %w", domain_transfer.ErrSessionExpired, err)
	}

	var apiErr *port_banking.Error
	if errors.As(err, &apiErr) {
		if apiErr.Status >= http.StatusInternalServerError {
			return &domain_transfer.UpstreamError{Op: op, Err: err, Message: apiErr.Message}
		}
		msg := apiErr.Message
		if msg == "" {
			msg = domain_transfer.GenericFailureMessage
		}
		return &domain_transfer.RejectedError{Message: msg}
	}

	return &domain_transfer.UpstreamError{Op: op, Err: err}
}

// Label is the metrics label for a classified error.
func Label(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain_transfer.ErrSessionExpired):
		return "session_expired"
	case errors.Is(err, domain_transfer.ErrCommitRejected):
		return "rejected"
	default:
		return "upstream"
	}
}
