package impl_statement

import (
	"context"
	"time"

	domain_account "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/account"
	"github.com/PedroCamargo-dev/core-bank-transfers-client/internal/impl/usecase/gwerr"
	port_banking "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/ports/gateway/banking"
	port_platform "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/ports/gateway/platform"
	port_account "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/ports/usecase/account"
	port_statement "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/ports/usecase/statement"
)

type Service struct {
	accounts port_account.AccountSnapshot
	gateway  port_banking.MovementGateway
	clock    port_platform.Clock
	loc      *time.Location
}

// NewService groups weeks in loc; nil means UTC.
func NewService(accounts port_account.AccountSnapshot, gateway port_banking.MovementGateway, clock port_platform.Clock, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{accounts: accounts, gateway: gateway, clock: clock, loc: loc}
}

var _ port_statement.StatementLoader = (*Service)(nil)

func (s *Service) Load(ctx context.Context, accountNumber string, f domain_account.StatementFilter) (domain_account.Statement, error) {
	if _, err := s.accounts.Find(accountNumber); err != nil {
		return domain_account.Statement{}, err
	}

	movements, err := s.gateway.ListMovements(ctx, accountNumber)
	if err != nil {
		return domain_account.Statement{}, gwerr.Classify("list movements", err)
	}

	return domain_account.NewStatement(accountNumber, movements, f, s.clock.Now(), s.loc), nil
}
