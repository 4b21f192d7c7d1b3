package domain_transfer

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DomainEvent interface {
	EventName() string
	OccurredAt() time.Time
	AggregateID() uuid.UUID
}

type RecipientValidated struct {
	At            time.Time
	AttemptID     uuid.UUID
	AccountNumber string
	HolderName    string
}

func (e RecipientValidated) EventName() string { return "recipient.validated" }

func (e RecipientValidated) OccurredAt() time.Time { return e.At }

func (e RecipientValidated) AggregateID() uuid.UUID { return e.AttemptID }

type TransferSubmitted struct {
	At                time.Time
	AttemptID         uuid.UUID
	SourceNumber      string
	DestinationNumber string
	Amount            decimal.Decimal
	Window            int
}

func (e TransferSubmitted) EventName() string { return "transfer.submitted" }

func (e TransferSubmitted) OccurredAt() time.Time { return e.At }

func (e TransferSubmitted) AggregateID() uuid.UUID { return e.AttemptID }

type TransferCancelled struct {
	At        time.Time
	AttemptID uuid.UUID
}

func (e TransferCancelled) EventName() string { return "transfer.cancelled" }

func (e TransferCancelled) OccurredAt() time.Time { return e.At }

func (e TransferCancelled) AggregateID() uuid.UUID { return e.AttemptID }

type ConfirmationExpired struct {
	At        time.Time
	AttemptID uuid.UUID
}

func (e ConfirmationExpired) EventName() string { return "transfer.expired" }

func (e ConfirmationExpired) OccurredAt() time.Time { return e.At }

func (e ConfirmationExpired) AggregateID() uuid.UUID { return e.AttemptID }

type TransferCommitted struct {
	At        time.Time
	AttemptID uuid.UUID
	Reference string
}

func (e TransferCommitted) EventName() string { return "transfer.committed" }

func (e TransferCommitted) OccurredAt() time.Time { return e.At }

func (e TransferCommitted) AggregateID() uuid.UUID { return e.AttemptID }

type TransferFailed struct {
	At        time.Time
	AttemptID uuid.UUID
	Reason    string
	Terminal  bool
}

func (e TransferFailed) EventName() string { return "transfer.failed" }

func (e TransferFailed) OccurredAt() time.Time { return e.At }

func (e TransferFailed) AggregateID() uuid.UUID { return e.AttemptID }
