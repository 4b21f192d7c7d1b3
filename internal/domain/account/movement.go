package domain_account

import (
	"time"

	"github.com/shopspring/decimal"
)

type MovementKind string

const (
	MovementCredit MovementKind = "C"
	MovementDebit  MovementKind = "D"
)

type Movement struct {
	At           time.Time
	Kind         MovementKind
	Amount       decimal.Decimal
	BalanceAfter decimal.Decimal
}

func (m Movement) IsCredit() bool { return m.Kind == MovementCredit }
