package impl_statement_test

import (
	"context"
	"errors"
	"testing"
	"time"

	domain_account "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/account"
	"github.com/PedroCamargo-dev/core-bank-transfers-client/internal/impl/platform/platformtest"
	impl_snapshot "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/impl/usecase/snapshot"
	impl_statement "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/impl/usecase/statement"
	gwmocks "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/ports/gateway/mocks"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

// Thursday.
var now = time.Date(2025, 11, 20, 12, 0, 0, 0, time.UTC)

func movement(daysAgo int, kind domain_account.MovementKind, amount int64) domain_account.Movement {
	return domain_account.Movement{
		At:     now.AddDate(0, 0, -daysAgo),
		Kind:   kind,
		Amount: decimal.NewFromInt(amount),
	}
}

func setup(t *testing.T) (*impl_statement.Service, *gwmocks.MockMovementGateway) {
	ctrl := gomock.NewController(t)
	accounts := gwmocks.NewMockAccountGateway(ctrl)
	movements := gwmocks.NewMockMovementGateway(ctrl)
	clock := platformtest.NewManualClock(now)

	store := impl_snapshot.NewStore(accounts, clock, nil)
	accounts.EXPECT().ListAccounts(gomock.Any()).Return([]domain_account.Account{
		{Number: "2200000001", Status: domain_account.StatusActive, Type: domain_account.TypeSavings},
	}, nil)
	if _, err := store.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	return impl_statement.NewService(store, movements, clock, nil), movements
}

func TestService_Load(t *testing.T) {
	history := []domain_account.Movement{
		movement(0, domain_account.MovementCredit, 100),
		movement(2, domain_account.MovementDebit, 30),
		movement(10, domain_account.MovementDebit, 5),
		movement(40, domain_account.MovementCredit, 1000),
	}

	t.Run("last week debits", func(t *testing.T) {
		svc, gw := setup(t)
		gw.EXPECT().ListMovements(gomock.Any(), "2200000001").Return(history, nil)

		st, err := svc.Load(context.Background(), "2200000001", domain_account.StatementFilter{
			Kind:   domain_account.KindDebits,
			Period: domain_account.PeriodLastWeek,
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(st.Movements) != 1 || !st.Debits.Equal(decimal.NewFromInt(30)) {
			t.Errorf("expected one debit of 30, got %v (debits %s)", st.Movements, st.Debits)
		}
	})

	t.Run("everything grouped by week", func(t *testing.T) {
		svc, gw := setup(t)
		gw.EXPECT().ListMovements(gomock.Any(), "2200000001").Return(history, nil)

		st, err := svc.Load(context.Background(), "2200000001", domain_account.StatementFilter{})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(st.Weeks) != 3 {
			t.Fatalf("expected 3 weeks, got %d", len(st.Weeks))
		}
		if st.Weeks[0].Title != "Mon 17 Nov - Sun 23 Nov" {
			t.Errorf("unexpected newest week title %q", st.Weeks[0].Title)
		}
		if !st.Credits.Equal(decimal.NewFromInt(1100)) {
			t.Errorf("expected credits 1100, got %s", st.Credits)
		}
	})

	t.Run("only own accounts", func(t *testing.T) {
		svc, gw := setup(t)
		gw.EXPECT().ListMovements(gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.Load(context.Background(), "9999999999", domain_account.StatementFilter{})
		if !errors.Is(err, domain_account.ErrAccountNotFound) {
			t.Fatalf("expected ErrAccountNotFound, got %v", err)
		}
	})
}
