package impl_accountrequest

import (
	"context"
	"log/slog"

	domain_account "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/account"
	"github.com/PedroCamargo-dev/core-bank-transfers-client/internal/impl/usecase/gwerr"
	port_banking "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/ports/gateway/banking"
	port_account "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/ports/usecase/account"
	port_accountrequest "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/ports/usecase/accountrequest"
	"github.com/PedroCamargo-dev/core-bank-transfers-client/internal/telemetry"
)

type Service struct {
	accounts port_account.AccountSnapshot
	gateway  port_banking.AccountRequestGateway
	logger   *slog.Logger
}

func NewService(accounts port_account.AccountSnapshot, gateway port_banking.AccountRequestGateway, logger *slog.Logger) *Service {
	if logger == nil {
		logger = telemetry.Discard()
	}
	return &Service{accounts: accounts, gateway: gateway, logger: logger}
}

var _ port_accountrequest.AccountRequester = (*Service)(nil)

// Request asks the backend for a new account. Only one request may wait for
// approval at a time, so the snapshot is refreshed before checking.
func (s *Service) Request(ctx context.Context, accountType domain_account.Type) (port_accountrequest.RequestAccountOutput, error) {
	if !accountType.IsKnown() {
		return port_accountrequest.RequestAccountOutput{}, domain_account.ErrInvalidType
	}

	if _, err := s.accounts.Refresh(ctx); err != nil {
		return port_accountrequest.RequestAccountOutput{}, err
	}
	if pending := s.accounts.PendingAccounts(); len(pending) > 0 {
		return port_accountrequest.RequestAccountOutput{Pending: pending}, ErrPendingRequest
	}

	msg, err := s.gateway.RequestAccount(ctx, accountType)
	if err != nil {
		return port_accountrequest.RequestAccountOutput{}, gwerr.Classify("request account", err)
	}

	if _, err := s.accounts.Refresh(ctx); err != nil {
		s.logger.WarnContext(ctx, "refresh after account request failed", slog.Any("error", err))
	}

	s.logger.InfoContext(ctx, "account requested", slog.String("type", string(accountType)))
	return port_accountrequest.RequestAccountOutput{
		Message: msg,
		Pending: s.accounts.PendingAccounts(),
	}, nil
}
