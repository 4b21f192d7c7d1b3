package port_dashboard

import (
	"context"
	"time"

	domain_account "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/account"
	domain_beneficiary "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/beneficiary"
	"github.com/shopspring/decimal"
)

type Overview struct {
	Active        []domain_account.Account
	Pending       []domain_account.Account
	TotalBalance  decimal.Decimal
	Beneficiaries []domain_beneficiary.Beneficiary
	RefreshedAt   time.Time
}

type OverviewLoader interface {
	Overview(ctx context.Context) (Overview, error)
}
