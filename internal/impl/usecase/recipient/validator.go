package impl_recipient

import (
	"context"
	"errors"
	"log/slog"

	domain_account "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/account"
	domain_transfer "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/transfer"
	"github.com/PedroCamargo-dev/core-bank-transfers-client/internal/impl/usecase/gwerr"
	port_banking "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/ports/gateway/banking"
	"github.com/PedroCamargo-dev/core-bank-transfers-client/internal/telemetry"
)

type Validator struct {
	gateway port_banking.RecipientGateway
	logger  *slog.Logger
}

func NewValidator(gateway port_banking.RecipientGateway, logger *slog.Logger) *Validator {
	if logger == nil {
		logger = telemetry.Discard()
	}
	return &Validator{gateway: gateway, logger: logger}
}

// Validate resolves a third-party account number. Numbers shorter than
// MinAccountNumberLength are rejected without calling the backend.
func (v *Validator) Validate(ctx context.Context, accountNumber string) (domain_transfer.RecipientProfile, error) {
	number, err := domain_transfer.NormalizeAccountNumber(accountNumber)
	if err != nil {
		telemetry.RecipientValidationsTotal.WithLabelValues("invalid").Inc()
		return domain_transfer.RecipientProfile{}, err
	}

	profile, err := v.gateway.LookupRecipient(ctx, number)
	if err != nil {
		err = classify(err)
		telemetry.RecipientValidationsTotal.WithLabelValues(resultLabel(err)).Inc()
		v.logger.InfoContext(ctx, "recipient validation failed", slog.String("account", mask(number)), slog.Any("error", err))
		return domain_transfer.RecipientProfile{}, err
	}

	if profile.Status == domain_account.StatusInactive {
		telemetry.RecipientValidationsTotal.WithLabelValues("inactive").Inc()
		return domain_transfer.RecipientProfile{}, domain_transfer.ErrRecipientInactive
	}

	if profile.AccountNumber == "" {
		profile.AccountNumber = number
	}

	telemetry.RecipientValidationsTotal.WithLabelValues("verified").Inc()
	return profile, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, port_banking.ErrNotFound):
		return domain_transfer.ErrRecipientNotFound
	case errors.Is(err, port_banking.ErrConflict):
		return domain_transfer.ErrRecipientInactive
	default:
		return gwerr.Classify("validate recipient", err)
	}
}

func resultLabel(err error) string {
	switch {
	case errors.Is(err, domain_transfer.ErrRecipientNotFound):
		return "not_found"
	case errors.Is(err, domain_transfer.ErrRecipientInactive):
		return "inactive"
	default:
		return gwerr.Label(err)
	}
}

func mask(number string) string {
	if len(number) <= 4 {
		return number
	}
	return "****" + number[len(number)-4:]
}
