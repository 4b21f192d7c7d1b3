package impl_transfer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	domain_account "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/account"
	domain_beneficiary "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/beneficiary"
	domain_transfer "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/transfer"
	"github.com/PedroCamargo-dev/core-bank-transfers-client/internal/impl/platform/platformtest"
	impl_recipient "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/impl/usecase/recipient"
	impl_snapshot "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/impl/usecase/snapshot"
	impl_transfer "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/impl/usecase/transfer"
	port_banking "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/ports/gateway/banking"
	gwmocks "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/ports/gateway/mocks"
	port_transfer "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/ports/usecase/transfer"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

const (
	numberA     = "2200000001"
	numberB     = "2200000002"
	thirdParty  = "3300000007"
	otherNumber = "4400000009"
)

var testNow = time.Date(2025, 11, 20, 10, 0, 0, 0, time.UTC)

func account(number string, balance int64, status domain_account.Status) domain_account.Account {
	return domain_account.Account{
		Number:  number,
		Balance: decimal.NewFromInt(balance),
		Status:  status,
		Type:    domain_account.TypeSavings,
	}
}

func twoActive() []domain_account.Account {
	return []domain_account.Account{
		account(numberA, 100, domain_account.StatusActive),
		account(numberB, 50, domain_account.StatusActive),
	}
}

func oneActive() []domain_account.Account {
	return []domain_account.Account{
		account(numberA, 100, domain_account.StatusActive),
		account(numberB, 0, domain_account.StatusInactive),
	}
}

func maria() domain_transfer.RecipientProfile {
	return domain_transfer.RecipientProfile{
		AccountNumber:     thirdParty,
		HolderName:        "Maria Lopez",
		PartialNationalID: "17****890",
		AccountType:       domain_account.TypeSavings,
		Status:            domain_account.StatusActive,
	}
}

type fixture struct {
	accounts   *gwmocks.MockAccountGateway
	recipients *gwmocks.MockRecipientGateway
	transfers  *gwmocks.MockTransferGateway
	sched      *platformtest.ManualScheduler
	clock      *platformtest.ManualClock
	c          *impl_transfer.Controller
}

func newFixture(t *testing.T, accounts []domain_account.Account, opts ...impl_transfer.Option) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		accounts:   gwmocks.NewMockAccountGateway(ctrl),
		recipients: gwmocks.NewMockRecipientGateway(ctrl),
		transfers:  gwmocks.NewMockTransferGateway(ctrl),
		sched:      platformtest.NewManualScheduler(),
		clock:      platformtest.NewManualClock(testNow),
	}

	store := impl_snapshot.NewStore(f.accounts, f.clock, nil)
	validator := impl_recipient.NewValidator(f.recipients, nil)
	f.c = impl_transfer.NewController(
		store, validator, f.transfers, f.sched, f.clock, &platformtest.SequentialIDs{},
		impl_transfer.Config{ConfirmWindow: 30, TickInterval: time.Second},
		opts...,
	)

	f.accounts.EXPECT().ListAccounts(gomock.Any()).Return(accounts, nil)
	if _, err := f.c.Load(context.Background()); err != nil {
		t.Fatalf("load: expected no error, got %v", err)
	}
	t.Cleanup(f.c.Close)
	return f
}

func (f *fixture) dispatch(t *testing.T, ev port_transfer.Event) port_transfer.View {
	t.Helper()
	v, err := f.c.Dispatch(context.Background(), ev)
	if err != nil {
		t.Fatalf("%s: expected no error, got %v", port_transfer.EventName(ev), err)
	}
	return v
}

// validated brings a third-party form to a validated recipient with amount set.
func (f *fixture) validated(t *testing.T, amount string) {
	t.Helper()
	f.recipients.EXPECT().LookupRecipient(gomock.Any(), thirdParty).Return(maria(), nil)

	f.dispatch(t, port_transfer.SelectMode{Mode: domain_transfer.ModeThirdParty})
	f.dispatch(t, port_transfer.EditDestination{Value: thirdParty})
	f.dispatch(t, port_transfer.ValidateRecipient{})
	f.dispatch(t, port_transfer.EditAmount{Value: amount})
}

func TestController_DispatchBeforeLoad(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := impl_transfer.NewController(
		impl_snapshot.NewStore(gwmocks.NewMockAccountGateway(ctrl), platformtest.NewManualClock(testNow), nil),
		impl_recipient.NewValidator(gwmocks.NewMockRecipientGateway(ctrl), nil),
		gwmocks.NewMockTransferGateway(ctrl),
		platformtest.NewManualScheduler(),
		platformtest.NewManualClock(testNow),
		&platformtest.SequentialIDs{},
		impl_transfer.Config{},
	)

	if _, err := c.Dispatch(context.Background(), port_transfer.Submit{}); !errors.Is(err, impl_transfer.ErrNotLoaded) {
		t.Fatalf("expected ErrNotLoaded, got %v", err)
	}
}

func TestController_LoadDefaults(t *testing.T) {
	t.Run("two active accounts start in own-accounts mode", func(t *testing.T) {
		f := newFixture(t, twoActive())
		v := f.c.View()

		if v.State != domain_transfer.StateComposing {
			t.Fatalf("expected COMPOSING, got %s", v.State)
		}
		if v.Form.Mode != domain_transfer.ModeOwnAccounts {
			t.Errorf("expected OWN_ACCOUNTS, got %s", v.Form.Mode)
		}
		if v.Form.Source != numberA || v.Form.OwnDestination != numberB {
			t.Errorf("expected %s -> %s, got %s -> %s", numberA, numberB, v.Form.Source, v.Form.OwnDestination)
		}
		if !v.OwnTransferAvailable {
			t.Errorf("expected own transfers to be available")
		}
	})

	t.Run("single active account disables own-accounts mode", func(t *testing.T) {
		f := newFixture(t, oneActive())
		v := f.c.View()

		if v.Form.Mode != domain_transfer.ModeThirdParty {
			t.Errorf("expected THIRD_PARTY, got %s", v.Form.Mode)
		}
		if v.OwnTransferAvailable {
			t.Errorf("expected own transfers to be unavailable")
		}
		if len(v.OwnDestinations) != 0 {
			t.Errorf("expected no own destinations, got %v", v.OwnDestinations)
		}
		if len(v.Sources) != 1 || v.Sources[0].Number != numberA {
			t.Errorf("expected only the active account as source, got %v", v.Sources)
		}

		_, err := f.c.Dispatch(context.Background(), port_transfer.SelectMode{Mode: domain_transfer.ModeOwnAccounts})
		if !errors.Is(err, domain_transfer.ErrOwnTransferUnavailable) {
			t.Fatalf("expected ErrOwnTransferUnavailable, got %v", err)
		}
	})

	t.Run("pending accounts are never selectable", func(t *testing.T) {
		f := newFixture(t, oneActive())

		if _, err := f.c.Dispatch(context.Background(), port_transfer.SelectSource{Number: numberB}); !errors.Is(err, domain_transfer.ErrNoSourceAccount) {
			t.Errorf("expected ErrNoSourceAccount, got %v", err)
		}
	})

	t.Run("failed refresh keeps controller usable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gw := gwmocks.NewMockAccountGateway(ctrl)
		clock := platformtest.NewManualClock(testNow)
		c := impl_transfer.NewController(
			impl_snapshot.NewStore(gw, clock, nil),
			impl_recipient.NewValidator(gwmocks.NewMockRecipientGateway(ctrl), nil),
			gwmocks.NewMockTransferGateway(ctrl),
			platformtest.NewManualScheduler(), clock, &platformtest.SequentialIDs{},
			impl_transfer.Config{},
		)

		gw.EXPECT().ListAccounts(gomock.Any()).Return(nil, errors.New("connection refused"))

		v, err := c.Load(context.Background())
		if !errors.Is(err, domain_transfer.ErrUpstream) {
			t.Fatalf("expected ErrUpstream, got %v", err)
		}
		if v.State != domain_transfer.StateComposing || v.SessionExpired {
			t.Errorf("expected usable composing controller, got %s", v.State)
		}
		if _, err := c.Dispatch(context.Background(), port_transfer.EditAmount{Value: "10"}); err != nil {
			t.Errorf("expected events to be accepted, got %v", err)
		}
	})
}

func TestController_SubmitRejectsInvalidAmount(t *testing.T) {
	for _, amount := range []string{"0", "-5", "-0.01", "abc", "", "   "} {
		t.Run(amount, func(t *testing.T) {
			f := newFixture(t, twoActive())
			f.dispatch(t, port_transfer.EditAmount{Value: amount})

			v, err := f.c.Dispatch(context.Background(), port_transfer.Submit{})
			if !errors.Is(err, domain_transfer.ErrInvalidAmount) {
				t.Fatalf("expected ErrInvalidAmount, got %v", err)
			}
			if v.State != domain_transfer.StateComposing {
				t.Errorf("expected COMPOSING, got %s", v.State)
			}
			if f.sched.Active() != 0 {
				t.Errorf("expected no countdown, got %d tickers", f.sched.Active())
			}
			if v.Message() != "Enter a valid amount." {
				t.Errorf("unexpected message %q", v.Message())
			}
		})
	}
}

func TestController_ThirdPartyRequiresValidation(t *testing.T) {
	t.Run("short number never reaches the backend", func(t *testing.T) {
		f := newFixture(t, twoActive())
		f.recipients.EXPECT().LookupRecipient(gomock.Any(), gomock.Any()).Times(0)

		f.dispatch(t, port_transfer.SelectMode{Mode: domain_transfer.ModeThirdParty})
		f.dispatch(t, port_transfer.EditDestination{Value: "999"})
		f.dispatch(t, port_transfer.EditAmount{Value: "10"})

		if _, err := f.c.Dispatch(context.Background(), port_transfer.ValidateRecipient{}); !errors.Is(err, domain_transfer.ErrInvalidAccountNumber) {
			t.Fatalf("expected ErrInvalidAccountNumber, got %v", err)
		}
		if _, err := f.c.Dispatch(context.Background(), port_transfer.Submit{}); !errors.Is(err, domain_transfer.ErrUnvalidatedRecipient) {
			t.Fatalf("expected ErrUnvalidatedRecipient, got %v", err)
		}
	})

	t.Run("submit without validation", func(t *testing.T) {
		f := newFixture(t, twoActive())
		f.dispatch(t, port_transfer.SelectMode{Mode: domain_transfer.ModeThirdParty})
		f.dispatch(t, port_transfer.EditDestination{Value: thirdParty})
		f.dispatch(t, port_transfer.EditAmount{Value: "10"})

		if _, err := f.c.Dispatch(context.Background(), port_transfer.Submit{}); !errors.Is(err, domain_transfer.ErrUnvalidatedRecipient) {
			t.Fatalf("expected ErrUnvalidatedRecipient, got %v", err)
		}
	})

	t.Run("changing destination clears the profile", func(t *testing.T) {
		f := newFixture(t, twoActive())
		f.validated(t, "10")

		if v := f.c.View(); v.Recipient == nil || v.Recipient.HolderName != "Maria Lopez" {
			t.Fatalf("expected validated profile, got %+v", v.Recipient)
		}

		v := f.dispatch(t, port_transfer.EditDestination{Value: thirdParty + "1"})
		if v.Recipient != nil {
			t.Fatalf("expected profile to be cleared, got %+v", v.Recipient)
		}

		f.dispatch(t, port_transfer.EditDestination{Value: thirdParty})
		if _, err := f.c.Dispatch(context.Background(), port_transfer.Submit{}); !errors.Is(err, domain_transfer.ErrUnvalidatedRecipient) {
			t.Fatalf("expected re-validation to be required, got %v", err)
		}
	})

	t.Run("not found and inactive are distinct", func(t *testing.T) {
		f := newFixture(t, twoActive())
		f.dispatch(t, port_transfer.SelectMode{Mode: domain_transfer.ModeThirdParty})
		f.dispatch(t, port_transfer.EditDestination{Value: thirdParty})

		f.recipients.EXPECT().
			LookupRecipient(gomock.Any(), thirdParty).
			Return(domain_transfer.RecipientProfile{}, &port_banking.Error{Status: 404})
		v, err := f.c.Dispatch(context.Background(), port_transfer.ValidateRecipient{})
		if !errors.Is(err, domain_transfer.ErrRecipientNotFound) {
			t.Fatalf("expected ErrRecipientNotFound, got %v", err)
		}
		notFound := v.Message()

		f.recipients.EXPECT().
			LookupRecipient(gomock.Any(), thirdParty).
			Return(domain_transfer.RecipientProfile{}, &port_banking.Error{Status: 409})
		v, err = f.c.Dispatch(context.Background(), port_transfer.ValidateRecipient{})
		if !errors.Is(err, domain_transfer.ErrRecipientInactive) {
			t.Fatalf("expected ErrRecipientInactive, got %v", err)
		}
		if v.Message() == notFound {
			t.Errorf("expected distinct messages, both were %q", notFound)
		}
		if v.Recipient != nil || v.Validating {
			t.Errorf("expected no profile after failed validation")
		}
	})

	t.Run("validation in own-accounts mode", func(t *testing.T) {
		f := newFixture(t, twoActive())
		if _, err := f.c.Dispatch(context.Background(), port_transfer.ValidateRecipient{}); !errors.Is(err, domain_transfer.ErrInvalidMode) {
			t.Fatalf("expected ErrInvalidMode, got %v", err)
		}
	})

	t.Run("stale validation response is discarded", func(t *testing.T) {
		f := newFixture(t, twoActive())
		f.dispatch(t, port_transfer.SelectMode{Mode: domain_transfer.ModeThirdParty})
		f.dispatch(t, port_transfer.EditDestination{Value: thirdParty})

		f.recipients.EXPECT().
			LookupRecipient(gomock.Any(), thirdParty).
			DoAndReturn(func(ctx context.Context, _ string) (domain_transfer.RecipientProfile, error) {
				v := f.dispatch(t, port_transfer.EditDestination{Value: otherNumber})
				if v.Validating {
					t.Errorf("expected edit to cancel the pending validation")
				}
				return maria(), nil
			})

		v, err := f.c.Dispatch(context.Background(), port_transfer.ValidateRecipient{})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if v.Recipient != nil {
			t.Fatalf("expected stale profile to be discarded, got %+v", v.Recipient)
		}
		if v.Form.ThirdPartyDestination != otherNumber {
			t.Errorf("expected destination %s, got %s", otherNumber, v.Form.ThirdPartyDestination)
		}
	})
}

func TestController_OwnAccountRules(t *testing.T) {
	t.Run("same account", func(t *testing.T) {
		f := newFixture(t, twoActive())
		f.dispatch(t, port_transfer.SelectOwnDestination{Number: numberA})
		f.dispatch(t, port_transfer.EditAmount{Value: "10"})

		if _, err := f.c.Dispatch(context.Background(), port_transfer.Submit{}); !errors.Is(err, domain_transfer.ErrSameAccount) {
			t.Fatalf("expected ErrSameAccount, got %v", err)
		}
	})

	t.Run("unknown destination", func(t *testing.T) {
		f := newFixture(t, twoActive())
		if _, err := f.c.Dispatch(context.Background(), port_transfer.SelectOwnDestination{Number: thirdParty}); !errors.Is(err, domain_transfer.ErrUnknownDestination) {
			t.Fatalf("expected ErrUnknownDestination, got %v", err)
		}
	})

	t.Run("insufficient funds", func(t *testing.T) {
		f := newFixture(t, twoActive())
		f.dispatch(t, port_transfer.EditAmount{Value: "100.01"})

		if _, err := f.c.Dispatch(context.Background(), port_transfer.Submit{}); !errors.Is(err, domain_transfer.ErrInsufficientFunds) {
			t.Fatalf("expected ErrInsufficientFunds, got %v", err)
		}
	})

	t.Run("selecting the destination as source picks another destination", func(t *testing.T) {
		f := newFixture(t, twoActive())
		v := f.dispatch(t, port_transfer.SelectSource{Number: numberB})

		if v.Form.OwnDestination != numberA {
			t.Errorf("expected own destination %s, got %s", numberA, v.Form.OwnDestination)
		}
		if len(v.OwnDestinations) != 1 || v.OwnDestinations[0].Number != numberA {
			t.Errorf("expected own destinations to exclude the source, got %v", v.OwnDestinations)
		}
	})
}

func TestController_Countdown(t *testing.T) {
	t.Run("decreases by one per tick and expires at zero", func(t *testing.T) {
		f := newFixture(t, twoActive())
		f.transfers.EXPECT().CommitTransfer(gomock.Any(), gomock.Any()).Times(0)

		f.dispatch(t, port_transfer.EditAmount{Value: "30"})
		v := f.dispatch(t, port_transfer.Submit{})
		if v.State != domain_transfer.StateAwaitingConfirmation || v.Remaining != 30 {
			t.Fatalf("expected AWAITING_CONFIRMATION with 30 left, got %s with %d", v.State, v.Remaining)
		}

		for want := 29; want >= 1; want-- {
			f.sched.Advance(1)
			v = f.c.View()
			if v.State != domain_transfer.StateAwaitingConfirmation {
				t.Fatalf("expected AWAITING_CONFIRMATION at %d, got %s", want, v.State)
			}
			if v.Remaining != want {
				t.Fatalf("expected %d left, got %d", want, v.Remaining)
			}
		}

		f.sched.Advance(1)
		v = f.c.View()
		if v.State != domain_transfer.StateExpired {
			t.Fatalf("expected EXPIRED, got %s", v.State)
		}
		if !errors.Is(v.Err, domain_transfer.ErrConfirmationTimeout) {
			t.Errorf("expected ErrConfirmationTimeout, got %v", v.Err)
		}
		if v.Intent != nil {
			t.Errorf("expected intent to be discarded")
		}
		if f.sched.Active() != 0 {
			t.Errorf("expected countdown to be stopped, got %d tickers", f.sched.Active())
		}

		if _, err := f.c.Dispatch(context.Background(), port_transfer.Confirm{}); !errors.Is(err, domain_transfer.ErrConfirmationTimeout) {
			t.Errorf("expected confirm after expiry to fail with ErrConfirmationTimeout, got %v", err)
		}
	})

	t.Run("next event after expiry composes again", func(t *testing.T) {
		f := newFixture(t, twoActive())
		f.dispatch(t, port_transfer.EditAmount{Value: "30"})
		f.dispatch(t, port_transfer.Submit{})
		f.sched.Advance(30)

		v := f.dispatch(t, port_transfer.EditMemo{Value: "rent"})
		if v.State != domain_transfer.StateComposing {
			t.Fatalf("expected COMPOSING, got %s", v.State)
		}
		if v.Intent != nil || v.Remaining != 0 || v.Err != nil || v.Outcome != nil {
			t.Errorf("expected no stale confirmation state, got %+v", v)
		}
		if v.Form.Amount != "30" {
			t.Errorf("expected amount to survive expiry, got %q", v.Form.Amount)
		}

		v = f.dispatch(t, port_transfer.Submit{})
		if v.Remaining != 30 {
			t.Errorf("expected a fresh countdown, got %d", v.Remaining)
		}
	})

	t.Run("expiry drops the third-party profile", func(t *testing.T) {
		f := newFixture(t, twoActive())
		f.validated(t, "10")
		f.dispatch(t, port_transfer.Submit{})
		f.sched.Advance(30)

		v := f.dispatch(t, port_transfer.Reset{})
		if v.Recipient != nil {
			t.Fatalf("expected profile to be dropped")
		}
		if _, err := f.c.Dispatch(context.Background(), port_transfer.Submit{}); !errors.Is(err, domain_transfer.ErrUnvalidatedRecipient) {
			t.Fatalf("expected ErrUnvalidatedRecipient, got %v", err)
		}
	})

	t.Run("cancel stops the countdown and keeps the form", func(t *testing.T) {
		f := newFixture(t, twoActive())
		f.dispatch(t, port_transfer.EditAmount{Value: "30"})
		f.dispatch(t, port_transfer.Submit{})
		f.sched.Advance(5)

		v := f.dispatch(t, port_transfer.Cancel{})
		if v.State != domain_transfer.StateComposing || v.Intent != nil {
			t.Fatalf("expected COMPOSING without intent, got %s", v.State)
		}
		if v.Form.Amount != "30" {
			t.Errorf("expected amount to be kept, got %q", v.Form.Amount)
		}
		if f.sched.Active() != 0 {
			t.Fatalf("expected countdown to be stopped, got %d tickers", f.sched.Active())
		}

		f.sched.Advance(60)
		if s := f.c.View().State; s != domain_transfer.StateComposing {
			t.Errorf("expected no expiry after cancel, got %s", s)
		}
	})

	t.Run("resubmitting runs a single countdown", func(t *testing.T) {
		f := newFixture(t, twoActive())
		f.dispatch(t, port_transfer.EditAmount{Value: "30"})
		f.dispatch(t, port_transfer.Submit{})
		f.sched.Advance(10)
		f.dispatch(t, port_transfer.Cancel{})
		f.dispatch(t, port_transfer.Submit{})

		f.sched.Advance(1)
		if f.sched.Active() != 1 {
			t.Fatalf("expected one running countdown, got %d", f.sched.Active())
		}
		if r := f.c.View().Remaining; r != 29 {
			t.Errorf("expected 29 left, got %d", r)
		}
	})

	t.Run("edits are rejected while awaiting confirmation", func(t *testing.T) {
		f := newFixture(t, twoActive())
		f.dispatch(t, port_transfer.EditAmount{Value: "30"})
		f.dispatch(t, port_transfer.Submit{})

		v, err := f.c.Dispatch(context.Background(), port_transfer.EditAmount{Value: "50"})
		if !errors.Is(err, domain_transfer.ErrInvalidStateTransition) {
			t.Fatalf("expected ErrInvalidStateTransition, got %v", err)
		}
		if v.Intent == nil || !v.Intent.Amount.Equal(decimal.NewFromInt(30)) {
			t.Errorf("expected intent to be untouched, got %+v", v.Intent)
		}
	})

	t.Run("observer sees countdown updates", func(t *testing.T) {
		var seen []port_transfer.View
		f := newFixture(t, twoActive(), impl_transfer.WithObserver(func(v port_transfer.View) {
			seen = append(seen, v)
		}))
		f.dispatch(t, port_transfer.EditAmount{Value: "30"})
		f.dispatch(t, port_transfer.Submit{})
		f.sched.Advance(30)

		if len(seen) != 30 {
			t.Fatalf("expected 30 notifications, got %d", len(seen))
		}
		if seen[0].Remaining != 29 || seen[29].State != domain_transfer.StateExpired {
			t.Errorf("unexpected notifications: first %d, last %s", seen[0].Remaining, seen[29].State)
		}
	})

	t.Run("close stops the countdown", func(t *testing.T) {
		f := newFixture(t, twoActive())
		f.dispatch(t, port_transfer.EditAmount{Value: "30"})
		f.dispatch(t, port_transfer.Submit{})

		f.c.Close()
		if f.sched.Active() != 0 {
			t.Fatalf("expected countdown to be stopped, got %d tickers", f.sched.Active())
		}

		f.sched.Advance(60)
		if s := f.c.View().State; s != domain_transfer.StateAwaitingConfirmation {
			t.Errorf("expected no transition after close, got %s", s)
		}
		if _, err := f.c.Dispatch(context.Background(), port_transfer.Confirm{}); !errors.Is(err, domain_transfer.ErrControllerClosed) {
			t.Errorf("expected ErrControllerClosed, got %v", err)
		}
	})
}

func TestController_Commit(t *testing.T) {
	t.Run("own transfer succeeds and reconciles balances", func(t *testing.T) {
		f := newFixture(t, twoActive())

		f.transfers.EXPECT().
			CommitTransfer(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req port_banking.CommitRequest) (port_banking.CommitReceipt, error) {
				if req.SourceNumber != numberA || req.DestinationNumber != numberB {
					t.Errorf("unexpected route %s -> %s", req.SourceNumber, req.DestinationNumber)
				}
				if !req.Amount.Equal(decimal.NewFromInt(30)) {
					t.Errorf("expected amount 30, got %s", req.Amount)
				}
				if req.Memo != domain_transfer.DefaultMemo {
					t.Errorf("expected default memo, got %q", req.Memo)
				}
				if req.IdempotencyKey == "" {
					t.Errorf("expected idempotency key")
				}
				return port_banking.CommitReceipt{Reference: "TRX-1"}, nil
			})
		f.accounts.EXPECT().ListAccounts(gomock.Any()).Return([]domain_account.Account{
			account(numberA, 70, domain_account.StatusActive),
			account(numberB, 80, domain_account.StatusActive),
		}, nil)

		f.dispatch(t, port_transfer.EditAmount{Value: "30"})
		f.dispatch(t, port_transfer.Submit{})
		v := f.dispatch(t, port_transfer.Confirm{})

		if v.State != domain_transfer.StateSucceeded {
			t.Fatalf("expected SUCCEEDED, got %s", v.State)
		}
		if v.Outcome == nil || !v.Outcome.Success || v.Outcome.Reference != "TRX-1" {
			t.Fatalf("unexpected outcome %+v", v.Outcome)
		}
		if !v.Outcome.Balances[numberA].Equal(decimal.NewFromInt(70)) || !v.Outcome.Balances[numberB].Equal(decimal.NewFromInt(80)) {
			t.Errorf("expected balances A=70 B=80, got %v", v.Outcome.Balances)
		}
		if !v.Outcome.At.Equal(testNow) {
			t.Errorf("expected outcome time %v, got %v", testNow, v.Outcome.At)
		}
		if !v.Sources[0].Balance.Equal(decimal.NewFromInt(70)) {
			t.Errorf("expected refreshed snapshot, got %s", v.Sources[0].Balance)
		}
		if v.Intent != nil {
			t.Errorf("expected intent to be cleared")
		}
	})

	t.Run("no expiry once committing", func(t *testing.T) {
		f := newFixture(t, twoActive())

		f.transfers.EXPECT().
			CommitTransfer(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, port_banking.CommitRequest) (port_banking.CommitReceipt, error) {
				if f.sched.Active() != 0 {
					t.Errorf("expected countdown to be stopped before commit, got %d tickers", f.sched.Active())
				}
				f.sched.Advance(60)
				if s := f.c.View().State; s != domain_transfer.StateCommitting {
					t.Errorf("expected COMMITTING during commit, got %s", s)
				}
				return port_banking.CommitReceipt{Reference: "TRX-2"}, nil
			})
		f.accounts.EXPECT().ListAccounts(gomock.Any()).Return(twoActive(), nil)

		f.dispatch(t, port_transfer.EditAmount{Value: "30"})
		f.dispatch(t, port_transfer.Submit{})
		f.sched.Advance(29)
		v := f.dispatch(t, port_transfer.Confirm{})

		if v.State != domain_transfer.StateSucceeded {
			t.Fatalf("expected SUCCEEDED, got %s", v.State)
		}
	})

	t.Run("second confirm while committing is rejected", func(t *testing.T) {
		f := newFixture(t, twoActive())

		f.transfers.EXPECT().
			CommitTransfer(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, port_banking.CommitRequest) (port_banking.CommitReceipt, error) {
				if _, err := f.c.Dispatch(context.Background(), port_transfer.Confirm{}); !errors.Is(err, domain_transfer.ErrCommitInProgress) {
					t.Errorf("expected ErrCommitInProgress, got %v", err)
				}
				if _, err := f.c.Dispatch(context.Background(), port_transfer.Cancel{}); !errors.Is(err, domain_transfer.ErrCommitInProgress) {
					t.Errorf("expected cancel to be refused while committing, got %v", err)
				}
				if _, err := f.c.Dispatch(context.Background(), port_transfer.EditAmount{Value: "1"}); !errors.Is(err, domain_transfer.ErrCommitInProgress) {
					t.Errorf("expected edits to be refused while committing, got %v", err)
				}
				return port_banking.CommitReceipt{Reference: "TRX-3"}, nil
			}).
			Times(1)
		f.accounts.EXPECT().ListAccounts(gomock.Any()).Return(twoActive(), nil)

		f.dispatch(t, port_transfer.EditAmount{Value: "30"})
		f.dispatch(t, port_transfer.Submit{})
		f.dispatch(t, port_transfer.Confirm{})
	})

	t.Run("rejection returns to composing with the backend message", func(t *testing.T) {
		f := newFixture(t, twoActive())
		f.validated(t, "40")
		f.dispatch(t, port_transfer.EditMemo{Value: "rent"})

		f.transfers.EXPECT().
			CommitTransfer(gomock.Any(), gomock.Any()).
			Return(port_banking.CommitReceipt{}, &port_banking.Error{Status: 400, Message: "Saldo insuficiente"})
		f.accounts.EXPECT().ListAccounts(gomock.Any()).Return(twoActive(), nil)

		f.dispatch(t, port_transfer.Submit{})
		v, err := f.c.Dispatch(context.Background(), port_transfer.Confirm{})
		if !errors.Is(err, domain_transfer.ErrCommitRejected) {
			t.Fatalf("expected ErrCommitRejected, got %v", err)
		}
		if v.State != domain_transfer.StateComposing {
			t.Fatalf("expected COMPOSING, got %s", v.State)
		}
		if v.Message() != "Saldo insuficiente" {
			t.Errorf("expected backend message verbatim, got %q", v.Message())
		}
		if v.Form.Amount != "40" || v.Form.Memo != "rent" || v.Form.ThirdPartyDestination != thirdParty {
			t.Errorf("expected form to be preserved, got %+v", v.Form)
		}
		if v.Recipient != nil {
			t.Errorf("expected profile to require re-validation")
		}
		if v.Outcome == nil || v.Outcome.Success {
			t.Errorf("expected failed outcome, got %+v", v.Outcome)
		}

		var failed *domain_transfer.TransferFailed
		for _, ev := range f.c.PullEvents() {
			if e, ok := ev.(domain_transfer.TransferFailed); ok {
				failed = &e
			}
		}
		if failed == nil || failed.Terminal || failed.Reason != "Saldo insuficiente" {
			t.Errorf("expected non-terminal transfer.failed event, got %+v", failed)
		}
	})

	t.Run("network failure uses the generic message", func(t *testing.T) {
		f := newFixture(t, twoActive())
		f.transfers.EXPECT().
			CommitTransfer(gomock.Any(), gomock.Any()).
			Return(port_banking.CommitReceipt{}, errors.New("read: connection reset"))
		f.accounts.EXPECT().ListAccounts(gomock.Any()).Return(twoActive(), nil)

		f.dispatch(t, port_transfer.EditAmount{Value: "30"})
		f.dispatch(t, port_transfer.Submit{})
		v, err := f.c.Dispatch(context.Background(), port_transfer.Confirm{})
		if !errors.Is(err, domain_transfer.ErrUpstream) {
			t.Fatalf("expected ErrUpstream, got %v", err)
		}
		if v.Message() != domain_transfer.GenericFailureMessage {
			t.Errorf("expected generic message, got %q", v.Message())
		}
		if v.State != domain_transfer.StateComposing {
			t.Errorf("expected COMPOSING, got %s", v.State)
		}
	})

	t.Run("retry after failure reuses the idempotency key", func(t *testing.T) {
		f := newFixture(t, twoActive())

		var keys []string
		f.transfers.EXPECT().
			CommitTransfer(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req port_banking.CommitRequest) (port_banking.CommitReceipt, error) {
				keys = append(keys, req.IdempotencyKey)
				if len(keys) == 1 {
					return port_banking.CommitReceipt{}, errors.New("timeout")
				}
				return port_banking.CommitReceipt{Reference: "TRX-4"}, nil
			}).
			Times(3)
		f.accounts.EXPECT().ListAccounts(gomock.Any()).Return(twoActive(), nil).Times(3)

		f.dispatch(t, port_transfer.EditAmount{Value: "30"})
		f.dispatch(t, port_transfer.Submit{})
		f.c.Dispatch(context.Background(), port_transfer.Confirm{})
		f.dispatch(t, port_transfer.Submit{})
		f.dispatch(t, port_transfer.Confirm{})

		f.dispatch(t, port_transfer.Reset{})
		f.dispatch(t, port_transfer.EditAmount{Value: "30"})
		f.dispatch(t, port_transfer.Submit{})
		f.dispatch(t, port_transfer.Confirm{})

		if keys[0] != keys[1] {
			t.Errorf("expected retry to reuse the key")
		}
		if keys[1] == keys[2] {
			t.Errorf("expected a new attempt to use a new key")
		}
	})

	t.Run("session expiry is terminal", func(t *testing.T) {
		f := newFixture(t, twoActive())
		f.transfers.EXPECT().
			CommitTransfer(gomock.Any(), gomock.Any()).
			Return(port_banking.CommitReceipt{}, port_banking.ErrSessionExpired)

		f.dispatch(t, port_transfer.EditAmount{Value: "30"})
		f.dispatch(t, port_transfer.Submit{})
		v, err := f.c.Dispatch(context.Background(), port_transfer.Confirm{})
		if !errors.Is(err, domain_transfer.ErrSessionExpired) {
			t.Fatalf("expected ErrSessionExpired, got %v", err)
		}
		if v.State != domain_transfer.StateFailed || !v.SessionExpired {
			t.Fatalf("expected terminal FAILED, got %s", v.State)
		}

		for _, ev := range []port_transfer.Event{port_transfer.Reset{}, port_transfer.EditAmount{Value: "1"}, port_transfer.Confirm{}} {
			if _, err := f.c.Dispatch(context.Background(), ev); !errors.Is(err, domain_transfer.ErrSessionExpired) {
				t.Errorf("%s: expected ErrSessionExpired, got %v", port_transfer.EventName(ev), err)
			}
		}
	})

	t.Run("succeeded clears the form on the next compose", func(t *testing.T) {
		f := newFixture(t, twoActive())
		f.transfers.EXPECT().
			CommitTransfer(gomock.Any(), gomock.Any()).
			Return(port_banking.CommitReceipt{Reference: "TRX-5"}, nil)
		f.accounts.EXPECT().ListAccounts(gomock.Any()).Return(twoActive(), nil)

		f.validated(t, "30")
		f.dispatch(t, port_transfer.EditMemo{Value: "rent"})
		f.dispatch(t, port_transfer.Submit{})
		f.dispatch(t, port_transfer.Confirm{})

		v := f.dispatch(t, port_transfer.Reset{})
		if v.State != domain_transfer.StateComposing || v.Outcome != nil {
			t.Fatalf("expected clean COMPOSING, got %s", v.State)
		}
		if v.Form.Amount != "" || v.Form.Memo != "" || v.Form.ThirdPartyDestination != "" {
			t.Errorf("expected cleared fields, got %+v", v.Form)
		}
		if v.Form.Mode != domain_transfer.ModeThirdParty || v.Form.Source != numberA {
			t.Errorf("expected mode and source to be kept, got %+v", v.Form)
		}
	})
}

func TestController_UseBeneficiary(t *testing.T) {
	f := newFixture(t, twoActive())

	v := f.dispatch(t, port_transfer.UseBeneficiary{Beneficiary: domain_beneficiary.Beneficiary{
		Alias:         "Mom",
		AccountNumber: thirdParty,
		HolderName:    "Maria Lopez",
	}})
	if v.Form.Mode != domain_transfer.ModeThirdParty || v.Form.ThirdPartyDestination != thirdParty {
		t.Fatalf("expected third-party form for %s, got %+v", thirdParty, v.Form)
	}

	f.dispatch(t, port_transfer.EditAmount{Value: "10"})
	if _, err := f.c.Dispatch(context.Background(), port_transfer.Submit{}); !errors.Is(err, domain_transfer.ErrUnvalidatedRecipient) {
		t.Fatalf("expected saved beneficiaries to still require validation, got %v", err)
	}
}

func TestController_Events(t *testing.T) {
	f := newFixture(t, twoActive())
	f.validated(t, "10")
	f.dispatch(t, port_transfer.Submit{})
	f.dispatch(t, port_transfer.Cancel{})
	f.dispatch(t, port_transfer.Submit{})
	f.sched.Advance(30)

	var names []string
	for _, ev := range f.c.PullEvents() {
		names = append(names, ev.EventName())
	}
	want := []string{"recipient.validated", "transfer.submitted", "transfer.cancelled", "transfer.submitted", "transfer.expired"}
	if len(names) != len(want) {
		t.Fatalf("expected events %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("event %d: expected %s, got %s", i, want[i], names[i])
		}
	}

	if rest := f.c.PullEvents(); len(rest) != 0 {
		t.Errorf("expected events to be drained, got %d", len(rest))
	}
}

func TestController_TickerLifecycle(t *testing.T) {
	setup := func(t *testing.T) (*impl_transfer.Controller, *gwmocks.MockScheduler, *gwmocks.MockTransferGateway, *gwmocks.MockAccountGateway) {
		ctrl := gomock.NewController(t)
		accounts := gwmocks.NewMockAccountGateway(ctrl)
		transfers := gwmocks.NewMockTransferGateway(ctrl)
		sched := gwmocks.NewMockScheduler(ctrl)
		clock := gwmocks.NewMockClock(ctrl)
		ids := gwmocks.NewMockIDGenerator(ctrl)

		clock.EXPECT().Now().Return(testNow).AnyTimes()
		ids.EXPECT().NewUUID().Return(uuid.MustParse("5f0c2a8e-0000-4000-8000-000000000001")).Times(1)

		c := impl_transfer.NewController(
			impl_snapshot.NewStore(accounts, clock, nil),
			impl_recipient.NewValidator(gwmocks.NewMockRecipientGateway(ctrl), nil),
			transfers, sched, clock, ids,
			impl_transfer.Config{ConfirmWindow: 30, TickInterval: time.Second},
		)
		t.Cleanup(c.Close)

		accounts.EXPECT().ListAccounts(gomock.Any()).Return(twoActive(), nil)
		if _, err := c.Load(context.Background()); err != nil {
			t.Fatalf("load: expected no error, got %v", err)
		}
		return c, sched, transfers, accounts
	}

	t.Run("confirm stops the ticker exactly once", func(t *testing.T) {
		c, sched, transfers, accounts := setup(t)

		ticker := gwmocks.NewMockTicker(gomock.NewController(t))
		sched.EXPECT().Every(time.Second, gomock.Any()).Return(ticker).Times(1)
		ticker.EXPECT().Stop().Times(1)
		transfers.EXPECT().
			CommitTransfer(gomock.Any(), gomock.Any()).
			Return(port_banking.CommitReceipt{Reference: "TRX-1"}, nil)
		accounts.EXPECT().ListAccounts(gomock.Any()).Return(twoActive(), nil)

		if _, err := c.Dispatch(context.Background(), port_transfer.EditAmount{Value: "30"}); err != nil {
			t.Fatalf("amount: %v", err)
		}
		if _, err := c.Dispatch(context.Background(), port_transfer.Submit{}); err != nil {
			t.Fatalf("submit: %v", err)
		}
		v, err := c.Dispatch(context.Background(), port_transfer.Confirm{})
		if err != nil {
			t.Fatalf("confirm: %v", err)
		}
		if v.State != domain_transfer.StateSucceeded {
			t.Errorf("expected SUCCEEDED, got %s", v.State)
		}
	})

	t.Run("each submit owns one ticker", func(t *testing.T) {
		c, sched, _, _ := setup(t)

		ctrl := gomock.NewController(t)
		first, second := gwmocks.NewMockTicker(ctrl), gwmocks.NewMockTicker(ctrl)
		gomock.InOrder(
			sched.EXPECT().Every(time.Second, gomock.Any()).Return(first),
			first.EXPECT().Stop(),
			sched.EXPECT().Every(time.Second, gomock.Any()).Return(second),
			second.EXPECT().Stop(),
		)

		for _, ev := range []port_transfer.Event{
			port_transfer.EditAmount{Value: "30"},
			port_transfer.Submit{},
			port_transfer.Cancel{},
			port_transfer.Submit{},
		} {
			if _, err := c.Dispatch(context.Background(), ev); err != nil {
				t.Fatalf("%s: %v", port_transfer.EventName(ev), err)
			}
		}
		c.Close()
	})
}

func TestController_CommitOutlivesCaller(t *testing.T) {
	t.Run("caller cancellation does not skip the reconciling refresh", func(t *testing.T) {
		f := newFixture(t, twoActive())
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		after := []domain_account.Account{
			account(numberA, 70, domain_account.StatusActive),
			account(numberB, 80, domain_account.StatusActive),
		}
		f.transfers.EXPECT().
			CommitTransfer(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, port_banking.CommitRequest) (port_banking.CommitReceipt, error) {
				cancel()
				return port_banking.CommitReceipt{Reference: "TRX-3"}, nil
			})
		f.accounts.EXPECT().
			ListAccounts(gomock.Any()).
			DoAndReturn(func(ctx context.Context) ([]domain_account.Account, error) {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				return after, nil
			})

		f.dispatch(t, port_transfer.EditAmount{Value: "30"})
		f.dispatch(t, port_transfer.Submit{})
		v, err := f.c.Dispatch(ctx, port_transfer.Confirm{})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !v.Sources[0].Balance.Equal(decimal.NewFromInt(70)) {
			t.Errorf("expected refreshed balance 70, got %s", v.Sources[0].Balance)
		}
	})

	t.Run("close during commit keeps state and events", func(t *testing.T) {
		f := newFixture(t, twoActive())

		f.transfers.EXPECT().
			CommitTransfer(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, port_banking.CommitRequest) (port_banking.CommitReceipt, error) {
				f.c.Close()
				return port_banking.CommitReceipt{Reference: "TRX-4"}, nil
			})
		f.accounts.EXPECT().ListAccounts(gomock.Any()).Return(twoActive(), nil)

		f.dispatch(t, port_transfer.EditAmount{Value: "30"})
		f.dispatch(t, port_transfer.Submit{})
		f.c.PullEvents()

		v, err := f.c.Dispatch(context.Background(), port_transfer.Confirm{})
		if err != nil {
			t.Fatalf("expected the commit result, got %v", err)
		}
		if v.State != domain_transfer.StateCommitting {
			t.Errorf("expected state left untouched, got %s", v.State)
		}
		if v.Outcome == nil || !v.Outcome.Success || v.Outcome.Reference != "TRX-4" {
			t.Errorf("expected recorded outcome, got %+v", v.Outcome)
		}
		if evs := f.c.PullEvents(); len(evs) != 0 {
			t.Errorf("expected no events after close, got %v", evs)
		}
		if _, err := f.c.Dispatch(context.Background(), port_transfer.Reset{}); !errors.Is(err, domain_transfer.ErrControllerClosed) {
			t.Errorf("expected ErrControllerClosed, got %v", err)
		}
	})
}
