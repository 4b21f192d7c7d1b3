package port_accountrequest

import (
	"context"

	domain_account "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/account"
)

type RequestAccountOutput struct {
	Message string
	Pending []domain_account.Account
}

type AccountRequester interface {
	Request(ctx context.Context, accountType domain_account.Type) (RequestAccountOutput, error)
}
