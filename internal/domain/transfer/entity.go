package domain_transfer

import (
	"strings"
	"time"

	domain_account "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/account"
	"github.com/shopspring/decimal"
)

const DefaultMemo = "Transferencia EcuSol"

// Form holds the raw values being edited while composing. Amount stays a
// string until submit so non-numeric input can be reported as ErrInvalidAmount.
type Form struct {
	Mode                  Mode
	Source                string
	OwnDestination        string
	ThirdPartyDestination string
	Amount                string
	Memo                  string
}

func (f Form) Destination() string {
	if f.Mode == ModeOwnAccounts {
		return f.OwnDestination
	}
	return strings.TrimSpace(f.ThirdPartyDestination)
}

// Intent is a validated, not yet committed money movement.
type Intent struct {
	SourceNumber      string
	DestinationNumber string
	Mode              Mode
	Amount            decimal.Decimal
	Memo              string
	Recipient         *RecipientProfile
}

type IntentParams struct {
	Form        Form
	Recipient   *RecipientProfile
	Active      []domain_account.Account
	DefaultMemo string
}

// NewIntent applies the composing rules in order: amount, source, destination,
// then the advisory balance check.
func NewIntent(p IntentParams) (Intent, error) {
	amount, err := ParseAmount(p.Form.Amount)
	if err != nil {
		return Intent{}, err
	}

	source, ok := findAccount(p.Active, p.Form.Source)
	if !ok {
		return Intent{}, ErrNoSourceAccount
	}

	in := Intent{
		SourceNumber: source.Number,
		Mode:         p.Form.Mode,
		Amount:       amount,
		Memo:         strings.TrimSpace(p.Form.Memo),
	}

	switch p.Form.Mode {
	case ModeThirdParty:
		if !p.Recipient.Matches(p.Form.ThirdPartyDestination) {
			return Intent{}, ErrUnvalidatedRecipient
		}
		profile := *p.Recipient
		in.DestinationNumber = profile.AccountNumber
		in.Recipient = &profile
	case ModeOwnAccounts:
		if len(p.Active) < 2 {
			return Intent{}, ErrOwnTransferUnavailable
		}
		if p.Form.OwnDestination == source.Number {
			return Intent{}, ErrSameAccount
		}
		dest, ok := findAccount(p.Active, p.Form.OwnDestination)
		if !ok {
			return Intent{}, ErrUnknownDestination
		}
		in.DestinationNumber = dest.Number
	default:
		return Intent{}, ErrInvalidMode
	}

	if amount.GreaterThan(source.Balance) {
		return Intent{}, ErrInsufficientFunds
	}

	if in.Memo == "" {
		in.Memo = p.DefaultMemo
		if in.Memo == "" {
			in.Memo = DefaultMemo
		}
	}

	return in, nil
}

func ParseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if !amount.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	return amount, nil
}

func findAccount(accounts []domain_account.Account, number string) (domain_account.Account, bool) {
	for _, a := range accounts {
		if a.Number == number {
			return a, true
		}
	}
	return domain_account.Account{}, false
}

// Outcome is the result of one commit attempt.
type Outcome struct {
	Success   bool
	Reference string
	At        time.Time
	Balances  map[string]decimal.Decimal
	Err       error
}

func (o Outcome) Message() string {
	if o.Success {
		return ""
	}
	return UserMessage(o.Err)
}

const DefaultConfirmWindow = 30

// Countdown is the confirmation window budget, decremented one unit per tick.
type Countdown struct {
	remaining int
}

func NewCountdown(budget int) Countdown {
	if budget <= 0 {
		budget = DefaultConfirmWindow
	}
	return Countdown{remaining: budget}
}

// Tick consumes one unit and reports whether the window has elapsed.
func (c *Countdown) Tick() bool {
	if c.remaining > 0 {
		c.remaining--
	}
	return c.remaining == 0
}

func (c Countdown) Remaining() int { return c.remaining }

func (c Countdown) Elapsed() bool { return c.remaining == 0 }
