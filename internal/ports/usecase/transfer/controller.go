package port_transfer

import (
	"context"

	domain_account "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/account"
	domain_beneficiary "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/beneficiary"
	domain_transfer "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/transfer"
)

// Event is a user action fed to the controller.
type Event interface {
	eventName() string
}

type SelectMode struct{ Mode domain_transfer.Mode }

type SelectSource struct{ Number string }

type SelectOwnDestination struct{ Number string }

type EditDestination struct{ Value string }

type EditAmount struct{ Value string }

type EditMemo struct{ Value string }

type UseBeneficiary struct{ Beneficiary domain_beneficiary.Beneficiary }

type ValidateRecipient struct{}

type Submit struct{}

type Confirm struct{}

type Cancel struct{}

// Reset leaves a finished attempt (succeeded, failed or expired) and starts
// composing again.
type Reset struct{}

func (SelectMode) eventName() string           { return "select_mode" }
func (SelectSource) eventName() string         { return "select_source" }
func (SelectOwnDestination) eventName() string { return "select_own_destination" }
func (EditDestination) eventName() string      { return "edit_destination" }
func (EditAmount) eventName() string           { return "edit_amount" }
func (EditMemo) eventName() string             { return "edit_memo" }
func (UseBeneficiary) eventName() string       { return "use_beneficiary" }
func (ValidateRecipient) eventName() string    { return "validate_recipient" }
func (Submit) eventName() string               { return "submit" }
func (Confirm) eventName() string              { return "confirm" }
func (Cancel) eventName() string               { return "cancel" }
func (Reset) eventName() string                { return "reset" }

func EventName(ev Event) string {
	if ev == nil {
		return ""
	}
	return ev.eventName()
}

// View is a copy of the controller state safe to hand to any rendering layer.
type View struct {
	State                domain_transfer.State
	Form                 domain_transfer.Form
	Recipient            *domain_transfer.RecipientProfile
	Validating           bool
	Remaining            int
	Intent               *domain_transfer.Intent
	Outcome              *domain_transfer.Outcome
	Err                  error
	Sources              []domain_account.Account
	OwnDestinations      []domain_account.Account
	OwnTransferAvailable bool
	SessionExpired       bool
}

func (v View) Message() string {
	return domain_transfer.UserMessage(v.Err)
}

type Controller interface {
	Load(ctx context.Context) (View, error)
	Dispatch(ctx context.Context, ev Event) (View, error)
	View() View
	Close()
}
