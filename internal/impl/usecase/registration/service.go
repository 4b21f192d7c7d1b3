package impl_registration

import (
	"context"
	"log/slog"

	domain_customer "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/customer"
	"github.com/PedroCamargo-dev/core-bank-transfers-client/internal/impl/usecase/gwerr"
	port_banking "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/ports/gateway/banking"
	port_registration "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/ports/usecase/registration"
	"github.com/PedroCamargo-dev/core-bank-transfers-client/internal/telemetry"
)

type Service struct {
	gateway port_banking.AuthGateway
	logger  *slog.Logger
}

func NewService(gateway port_banking.AuthGateway, logger *slog.Logger) *Service {
	if logger == nil {
		logger = telemetry.Discard()
	}
	return &Service{gateway: gateway, logger: logger}
}

var _ port_registration.Registrar = (*Service)(nil)

// Register validates the sign-up form locally before it reaches the backend.
// The session is left untouched; the new user signs in separately.
func (s *Service) Register(ctx context.Context, in domain_customer.NewParams) (port_registration.RegisterOutput, error) {
	reg, err := domain_customer.New(in)
	if err != nil {
		return port_registration.RegisterOutput{}, err
	}

	msg, err := s.gateway.Register(ctx, reg)
	if err != nil {
		return port_registration.RegisterOutput{}, gwerr.Classify("register user", err)
	}

	s.logger.InfoContext(ctx, "user registered", slog.String("username", reg.Username))
	return port_registration.RegisterOutput{Username: reg.Username, Message: msg}, nil
}
