package impl_beneficiary

import (
	"context"
	"log/slog"

	domain_beneficiary "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/beneficiary"
	domain_transfer "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/transfer"
	"github.com/PedroCamargo-dev/core-bank-transfers-client/internal/impl/usecase/gwerr"
	port_banking "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/ports/gateway/banking"
	port_beneficiary "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/ports/usecase/beneficiary"
	"github.com/PedroCamargo-dev/core-bank-transfers-client/internal/telemetry"
)

type Service struct {
	gateway port_banking.BeneficiaryGateway
	logger  *slog.Logger
}

func NewService(gateway port_banking.BeneficiaryGateway, logger *slog.Logger) *Service {
	if logger == nil {
		logger = telemetry.Discard()
	}
	return &Service{gateway: gateway, logger: logger}
}

var _ port_beneficiary.Agenda = (*Service)(nil)

func (s *Service) List(ctx context.Context) ([]domain_beneficiary.Beneficiary, error) {
	list, err := s.gateway.ListBeneficiaries(ctx)
	if err != nil {
		return nil, gwerr.Classify("list beneficiaries", err)
	}
	return list, nil
}

func (s *Service) Save(ctx context.Context, alias string, profile *domain_transfer.RecipientProfile) (domain_beneficiary.Beneficiary, error) {
	if profile == nil {
		return domain_beneficiary.Beneficiary{}, domain_transfer.ErrUnvalidatedRecipient
	}

	b, err := domain_beneficiary.New(domain_beneficiary.NewParams{
		Alias:         alias,
		AccountNumber: profile.AccountNumber,
		HolderName:    profile.HolderName,
		AccountType:   profile.AccountType,
	})
	if err != nil {
		return domain_beneficiary.Beneficiary{}, err
	}

	if err := s.gateway.RegisterBeneficiary(ctx, b); err != nil {
		return domain_beneficiary.Beneficiary{}, gwerr.Classify("register beneficiary", err)
	}

	s.logger.InfoContext(ctx, "beneficiary saved", slog.String("alias", b.Alias))
	return b, nil
}
