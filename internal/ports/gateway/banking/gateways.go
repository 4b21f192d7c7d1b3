package port_banking

import (
	"context"
	"time"

	domain_account "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/account"
	domain_beneficiary "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/beneficiary"
	domain_customer "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/customer"
	domain_transfer "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/transfer"
	"github.com/shopspring/decimal"
)

type AccountGateway interface {
	ListAccounts(ctx context.Context) ([]domain_account.Account, error)
}

type RecipientGateway interface {
	LookupRecipient(ctx context.Context, accountNumber string) (domain_transfer.RecipientProfile, error)
}

type CommitRequest struct {
	SourceNumber      string
	DestinationNumber string
	Amount            decimal.Decimal
	Memo              string
	IdempotencyKey    string
}

type CommitReceipt struct {
	Reference string
	At        time.Time
	Balances  map[string]decimal.Decimal
}

type TransferGateway interface {
	CommitTransfer(ctx context.Context, req CommitRequest) (CommitReceipt, error)
}

type BeneficiaryGateway interface {
	ListBeneficiaries(ctx context.Context) ([]domain_beneficiary.Beneficiary, error)
	RegisterBeneficiary(ctx context.Context, b domain_beneficiary.Beneficiary) error
}

type AccountRequestGateway interface {
	RequestAccount(ctx context.Context, accountType domain_account.Type) (string, error)
}

type MovementGateway interface {
	ListMovements(ctx context.Context, accountNumber string) ([]domain_account.Movement, error)
}

type AuthGateway interface {
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, r domain_customer.Registration) (string, error)
}
