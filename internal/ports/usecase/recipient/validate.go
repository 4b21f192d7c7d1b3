package port_recipient

import (
	"context"

	domain_transfer "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/transfer"
)

type RecipientValidator interface {
	Validate(ctx context.Context, accountNumber string) (domain_transfer.RecipientProfile, error)
}
