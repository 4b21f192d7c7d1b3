package impl_snapshot

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	domain_account "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/account"
	"github.com/PedroCamargo-dev/core-bank-transfers-client/internal/impl/usecase/gwerr"
	port_banking "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/ports/gateway/banking"
	port_platform "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/ports/gateway/platform"
	"github.com/PedroCamargo-dev/core-bank-transfers-client/internal/telemetry"
	"golang.org/x/sync/singleflight"
)

// Store holds the latest account list. A failed refresh keeps the previous
// snapshot; concurrent refreshes share one backend call.
type Store struct {
	gateway port_banking.AccountGateway
	clock   port_platform.Clock
	logger  *slog.Logger

	group singleflight.Group

	mu          sync.RWMutex
	accounts    []domain_account.Account
	refreshedAt time.Time
}

func NewStore(gateway port_banking.AccountGateway, clock port_platform.Clock, logger *slog.Logger) *Store {
	if logger == nil {
		logger = telemetry.Discard()
	}
	return &Store{
		gateway: gateway,
		clock:   clock,
		logger:  logger,
	}
}

func (s *Store) Refresh(ctx context.Context) ([]domain_account.Account, error) {
	v, err, _ := s.group.Do("accounts", func() (any, error) {
		accounts, err := s.gateway.ListAccounts(ctx)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.accounts = slices.Clone(accounts)
		s.refreshedAt = s.clock.Now()
		s.mu.Unlock()

		return accounts, nil
	})
	if err != nil {
		err = gwerr.Classify("refresh accounts", err)
		telemetry.SnapshotRefreshTotal.WithLabelValues(gwerr.Label(err)).Inc()
		s.logger.WarnContext(ctx, "account snapshot refresh failed, keeping previous snapshot", slog.Any("error", err))
		return nil, err
	}

	telemetry.SnapshotRefreshTotal.WithLabelValues("ok").Inc()
	accounts := v.([]domain_account.Account)
	s.logger.DebugContext(ctx, "account snapshot refreshed", slog.Int("accounts", len(accounts)))
	return slices.Clone(accounts), nil
}

func (s *Store) Accounts() []domain_account.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.accounts)
}

func (s *Store) ActiveAccounts() []domain_account.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain_account.FilterActive(s.accounts)
}

func (s *Store) PendingAccounts() []domain_account.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain_account.FilterPending(s.accounts)
}

// OwnDestinations is the active pool minus source.
func (s *Store) OwnDestinations(source string) []domain_account.Account {
	active := s.ActiveAccounts()
	out := make([]domain_account.Account, 0, len(active))
	for _, a := range active {
		if a.Number != source {
			out = append(out, a)
		}
	}
	return out
}

func (s *Store) Find(number string) (domain_account.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.accounts {
		if a.Number == number {
			return a, nil
		}
	}
	return domain_account.Account{}, domain_account.ErrAccountNotFound
}

func (s *Store) RefreshedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshedAt
}
