package port_account

import (
	"context"
	"time"

	domain_account "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/account"
)

// AccountSnapshot is the caller's latest known account list. Only Refresh
// mutates it; readers always get copies.
type AccountSnapshot interface {
	Refresh(ctx context.Context) ([]domain_account.Account, error)
	Accounts() []domain_account.Account
	ActiveAccounts() []domain_account.Account
	PendingAccounts() []domain_account.Account
	OwnDestinations(source string) []domain_account.Account
	Find(number string) (domain_account.Account, error)
	RefreshedAt() time.Time
}
