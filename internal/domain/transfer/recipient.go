package domain_transfer

import (
	"strings"

	domain_account "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/account"
)

// MinAccountNumberLength is a plausibility guard, not a checksum.
const MinAccountNumberLength = 5

// RecipientProfile is the verified identity behind a third-party account
// number. It only lives for one transfer attempt.
type RecipientProfile struct {
	AccountNumber     string
	HolderName        string
	PartialNationalID string
	AccountType       domain_account.Type
	Status            domain_account.Status
}

func NormalizeAccountNumber(raw string) (string, error) {
	n := strings.TrimSpace(raw)
	if len(n) < MinAccountNumberLength {
		return "", ErrInvalidAccountNumber
	}
	return n, nil
}

// Matches reports whether the profile was resolved for the destination value
// currently shown.
func (p *RecipientProfile) Matches(destination string) bool {
	return p != nil && p.AccountNumber == strings.TrimSpace(destination)
}
