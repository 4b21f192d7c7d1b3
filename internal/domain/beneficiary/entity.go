package domain_beneficiary

import (
	"strings"

	domain_account "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/account"
)

const minAccountNumberLength = 5

// Beneficiary is a saved shortcut to a third-party account. The backend owns
// its lifecycle; the client only creates and lists them.
type Beneficiary struct {
	ID            int64
	Alias         string
	AccountNumber string
	HolderName    string
	AccountType   domain_account.Type
}

type NewParams struct {
	Alias         string
	AccountNumber string
	HolderName    string
	AccountType   domain_account.Type
}

func New(p NewParams) (Beneficiary, error) {
	alias := strings.TrimSpace(p.Alias)
	if alias == "" {
		return Beneficiary{}, ErrMissingAlias
	}

	number := strings.TrimSpace(p.AccountNumber)
	if len(number) < minAccountNumberLength {
		return Beneficiary{}, ErrInvalidAccountNumber
	}

	holder := strings.TrimSpace(p.HolderName)
	if holder == "" {
		return Beneficiary{}, ErrMissingHolderName
	}

	return Beneficiary{
		Alias:         alias,
		AccountNumber: number,
		HolderName:    holder,
		AccountType:   p.AccountType,
	}, nil
}
