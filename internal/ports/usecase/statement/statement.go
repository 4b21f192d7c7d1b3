package port_statement

import (
	"context"

	domain_account "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/account"
)

type StatementLoader interface {
	Load(ctx context.Context, accountNumber string, f domain_account.StatementFilter) (domain_account.Statement, error)
}
