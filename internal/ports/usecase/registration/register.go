package port_registration

import (
	"context"

	domain_customer "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/customer"
)

type RegisterOutput struct {
	Username string
	Message  string
}

type Registrar interface {
	Register(ctx context.Context, in domain_customer.NewParams) (RegisterOutput, error)
}
