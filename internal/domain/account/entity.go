package domain_account

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Account is a read-only view of one of the caller's accounts as reported by
// the backend. Balances are never mutated client-side.
type Account struct {
	ID      int64
	Number  string
	Balance decimal.Decimal
	Status  Status
	Type    Type
}

func (a Account) IsActive() bool { return a.Status.IsActive() }

func (a Account) Last4() string {
	if len(a.Number) <= 4 {
		return a.Number
	}
	return a.Number[len(a.Number)-4:]
}

func (a Account) Label() string {
	return fmt.Sprintf("%s •••• %s", a.Type.Label(), a.Last4())
}

// FilterActive keeps accounts with StatusActive, preserving order.
func FilterActive(accounts []Account) []Account {
	out := make([]Account, 0, len(accounts))
	for _, a := range accounts {
		if a.IsActive() {
			out = append(out, a)
		}
	}
	return out
}

func FilterPending(accounts []Account) []Account {
	out := make([]Account, 0)
	for _, a := range accounts {
		if a.Status == StatusInactive {
			out = append(out, a)
		}
	}
	return out
}

func TotalBalance(accounts []Account) decimal.Decimal {
	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(a.Balance)
	}
	return total
}
