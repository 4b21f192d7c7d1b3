package impl_dashboard

import (
	"context"
	"log/slog"

	domain_account "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/account"
	domain_beneficiary "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/beneficiary"
	port_account "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/ports/usecase/account"
	port_beneficiary "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/ports/usecase/beneficiary"
	port_dashboard "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/ports/usecase/dashboard"
	"github.com/PedroCamargo-dev/core-bank-transfers-client/internal/telemetry"
	"golang.org/x/sync/errgroup"
)

type Service struct {
	accounts      port_account.AccountSnapshot
	beneficiaries port_beneficiary.Agenda
	logger        *slog.Logger
}

func NewService(accounts port_account.AccountSnapshot, beneficiaries port_beneficiary.Agenda, logger *slog.Logger) *Service {
	if logger == nil {
		logger = telemetry.Discard()
	}
	return &Service{accounts: accounts, beneficiaries: beneficiaries, logger: logger}
}

var _ port_dashboard.OverviewLoader = (*Service)(nil)

// Overview loads accounts and beneficiaries concurrently. Either failure
// fails the whole overview.
func (s *Service) Overview(ctx context.Context) (port_dashboard.Overview, error) {
	g, gctx := errgroup.WithContext(ctx)

	var beneficiaries []domain_beneficiary.Beneficiary
	g.Go(func() error {
		_, err := s.accounts.Refresh(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		beneficiaries, err = s.beneficiaries.List(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		s.logger.WarnContext(ctx, "dashboard load failed", slog.Any("error", err))
		return port_dashboard.Overview{}, err
	}

	active := s.accounts.ActiveAccounts()
	return port_dashboard.Overview{
		Active:        active,
		Pending:       s.accounts.PendingAccounts(),
		TotalBalance:  domain_account.TotalBalance(active),
		Beneficiaries: beneficiaries,
		RefreshedAt:   s.accounts.RefreshedAt(),
	}, nil
}
