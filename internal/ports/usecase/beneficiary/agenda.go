package port_beneficiary

import (
	"context"

	domain_beneficiary "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/beneficiary"
	domain_transfer "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/transfer"
)

// Agenda lists and saves beneficiaries. Save only accepts a profile that came
// out of a successful recipient validation.
type Agenda interface {
	List(ctx context.Context) ([]domain_beneficiary.Beneficiary, error)
	Save(ctx context.Context, alias string, profile *domain_transfer.RecipientProfile) (domain_beneficiary.Beneficiary, error)
}
