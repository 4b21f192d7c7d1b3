package impl_sandbox

import (
	"time"

	domain_account "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/account"
	"github.com/shopspring/decimal"
)

// Seed loads the demo fixtures: a user with two active accounts, a third
// party with one active and one inactive account, and a user with a single
// account.
func Seed(b *Bank) {
	b.AddUser(User{Username: "demo", Password: "demo123", FullName: "Daniela Ortiz", NationalID: "1712345678"})
	b.AddUser(User{Username: "maria", Password: "maria123", FullName: "Maria Lopez", NationalID: "0923456789"})
	b.AddUser(User{Username: "solo", Password: "solo123", FullName: "Santiago Vera", NationalID: "0101010101"})

	savings := b.OpenAccount("demo", "2200000001", domain_account.TypeSavings, decimal.NewFromInt(100), true)
	b.OpenAccount("demo", "2200000002", domain_account.TypeChecking, decimal.NewFromInt(50), true)
	b.OpenAccount("maria", "3300000007", domain_account.TypeSavings, decimal.NewFromInt(250), true)
	b.OpenAccount("maria", "3300000008", domain_account.TypeChecking, decimal.Zero, false)
	b.OpenAccount("solo", "4400000001", domain_account.TypeSavings, decimal.NewFromInt(20), true)

	// History for the statement view, ending at the seeded balance.
	start := b.now().Add(-20 * 24 * time.Hour).Truncate(time.Hour)
	history := []struct {
		offset time.Duration
		kind   domain_account.MovementKind
		amount int64
		after  int64
	}{
		{0, domain_account.MovementCredit, 150, 150},
		{3 * 24 * time.Hour, domain_account.MovementDebit, 20, 130},
		{9 * 24 * time.Hour, domain_account.MovementDebit, 45, 85},
		{16 * 24 * time.Hour, domain_account.MovementCredit, 15, 100},
	}
	for _, h := range history {
		_ = b.AddMovement(savings, domain_account.Movement{
			At:           start.Add(h.offset),
			Kind:         h.kind,
			Amount:       decimal.NewFromInt(h.amount),
			BalanceAfter: decimal.NewFromInt(h.after),
		})
	}
}
