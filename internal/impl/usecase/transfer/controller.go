package impl_transfer

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"strings"
	"sync"
	"time"

	domain_account "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/account"
	domain_transfer "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/transfer"
	"github.com/PedroCamargo-dev/core-bank-transfers-client/internal/impl/usecase/gwerr"
	port_banking "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/ports/gateway/banking"
	port_platform "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/ports/gateway/platform"
	port_account "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/ports/usecase/account"
	port_recipient "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/ports/usecase/recipient"
	port_transfer "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/ports/usecase/transfer"
	"github.com/PedroCamargo-dev/core-bank-transfers-client/internal/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Config struct {
	ConfirmWindow int
	TickInterval  time.Duration
	DefaultMemo   string
}

type Option func(*Controller)

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithObserver registers fn to receive a fresh View whenever the countdown
// changes the controller outside of Dispatch.
func WithObserver(fn func(port_transfer.View)) Option {
	return func(c *Controller) { c.observer = fn }
}

// Controller drives one user's transfer attempts. The mutex is released
// while the validator or the transfer gateway is in flight; the Committing
// state is what blocks a second confirm.
type Controller struct {
	accounts   port_account.AccountSnapshot
	recipients port_recipient.RecipientValidator
	gateway    port_banking.TransferGateway
	scheduler  port_platform.Scheduler
	clock      port_platform.Clock
	ids        port_platform.IDGenerator
	cfg        Config
	logger     *slog.Logger
	observer   func(port_transfer.View)

	mu             sync.Mutex
	loaded         bool
	closed         bool
	sessionExpired bool
	state          domain_transfer.State
	form           domain_transfer.Form
	recipient      *domain_transfer.RecipientProfile
	validating     bool
	validationSeq  uint64
	attemptID      uuid.UUID
	intent         *domain_transfer.Intent
	countdown      domain_transfer.Countdown
	ticker         port_platform.Ticker
	tickGen        uint64
	outcome        *domain_transfer.Outcome
	err            error
	events         []domain_transfer.DomainEvent
}

func NewController(
	accounts port_account.AccountSnapshot,
	recipients port_recipient.RecipientValidator,
	gateway port_banking.TransferGateway,
	scheduler port_platform.Scheduler,
	clock port_platform.Clock,
	ids port_platform.IDGenerator,
	cfg Config,
	opts ...Option,
) *Controller {
	if cfg.ConfirmWindow <= 0 {
		cfg.ConfirmWindow = domain_transfer.DefaultConfirmWindow
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Second
	}
	if strings.TrimSpace(cfg.DefaultMemo) == "" {
		cfg.DefaultMemo = domain_transfer.DefaultMemo
	}

	c := &Controller{
		accounts:   accounts,
		recipients: recipients,
		gateway:    gateway,
		scheduler:  scheduler,
		clock:      clock,
		ids:        ids,
		cfg:        cfg,
		logger:     telemetry.Discard(),
		state:      domain_transfer.StateComposing,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ port_transfer.Controller = (*Controller)(nil)

// Load refreshes the account snapshot and fills the form defaults. A failed
// refresh still leaves the controller usable on the previous snapshot.
func (c *Controller) Load(ctx context.Context) (port_transfer.View, error) {
	c.mu.Lock()
	if err := c.guardLocked(); err != nil && !errors.Is(err, ErrNotLoaded) {
		v := c.viewLocked()
		c.mu.Unlock()
		return v, err
	}
	c.mu.Unlock()

	_, err := c.accounts.Refresh(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return c.viewLocked(), domain_transfer.ErrControllerClosed
	}
	if errors.Is(err, domain_transfer.ErrSessionExpired) {
		c.expireSessionLocked(err)
		return c.viewLocked(), err
	}

	c.loaded = true
	if c.attemptID == uuid.Nil {
		c.attemptID = c.ids.NewUUID()
	}
	if c.state == domain_transfer.StateComposing {
		c.applyDefaultsLocked()
	}
	c.err = err
	return c.viewLocked(), err
}

func (c *Controller) Dispatch(ctx context.Context, ev port_transfer.Event) (port_transfer.View, error) {
	switch ev.(type) {
	case port_transfer.ValidateRecipient:
		return c.validateRecipient(ctx)
	case port_transfer.Confirm:
		return c.confirm(ctx)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.guardLocked(); err != nil {
		return c.viewLocked(), err
	}

	err := c.handleLocked(ev)
	c.err = err
	if err != nil {
		c.logger.DebugContext(ctx, "transfer event rejected",
			slog.String("event", port_transfer.EventName(ev)),
			slog.String("state", string(c.state)),
			slog.Any("error", err),
		)
	}
	return c.viewLocked(), err
}

func (c *Controller) View() port_transfer.View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

// Close stops the countdown. Every later event fails with ErrControllerClosed.
// A commit already in flight still completes and records its outcome.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.stopTickerLocked()
}

// PullEvents drains the domain events raised since the last call.
func (c *Controller) PullEvents() []domain_transfer.DomainEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.events
	c.events = nil
	return out
}

func (c *Controller) guardLocked() error {
	switch {
	case c.closed:
		return domain_transfer.ErrControllerClosed
	case c.sessionExpired:
		return domain_transfer.ErrSessionExpired
	case !c.loaded:
		return ErrNotLoaded
	default:
		return nil
	}
}

func (c *Controller) handleLocked(ev port_transfer.Event) error {
	switch e := ev.(type) {
	case port_transfer.Cancel:
		return c.cancelLocked()
	case port_transfer.Reset:
		return c.resetLocked()
	case port_transfer.SelectMode:
		if err := c.enterComposingLocked(); err != nil {
			return err
		}
		return c.selectModeLocked(e.Mode)
	case port_transfer.SelectSource:
		if err := c.enterComposingLocked(); err != nil {
			return err
		}
		return c.selectSourceLocked(e.Number)
	case port_transfer.SelectOwnDestination:
		if err := c.enterComposingLocked(); err != nil {
			return err
		}
		return c.selectOwnDestinationLocked(e.Number)
	case port_transfer.EditDestination:
		if err := c.enterComposingLocked(); err != nil {
			return err
		}
		c.setThirdPartyDestinationLocked(e.Value)
		return nil
	case port_transfer.EditAmount:
		if err := c.enterComposingLocked(); err != nil {
			return err
		}
		c.form.Amount = e.Value
		return nil
	case port_transfer.EditMemo:
		if err := c.enterComposingLocked(); err != nil {
			return err
		}
		c.form.Memo = e.Value
		return nil
	case port_transfer.UseBeneficiary:
		if err := c.enterComposingLocked(); err != nil {
			return err
		}
		if c.form.Mode != domain_transfer.ModeThirdParty {
			c.form.Mode = domain_transfer.ModeThirdParty
			c.clearRecipientLocked()
		}
		c.setThirdPartyDestinationLocked(e.Beneficiary.AccountNumber)
		return nil
	case port_transfer.Submit:
		if err := c.enterComposingLocked(); err != nil {
			return err
		}
		return c.submitLocked()
	default:
		return ErrUnknownEvent
	}
}

// enterComposingLocked makes the controller ready for a composing event.
// Finished attempts are left implicitly; in-flight ones reject the event.
func (c *Controller) enterComposingLocked() error {
	switch c.state {
	case domain_transfer.StateComposing:
		c.outcome = nil
		return nil
	case domain_transfer.StateAwaitingConfirmation:
		return domain_transfer.ErrInvalidStateTransition
	case domain_transfer.StateCommitting:
		return domain_transfer.ErrCommitInProgress
	default:
		c.leaveFinalLocked()
		return nil
	}
}

func (c *Controller) leaveFinalLocked() {
	if c.state == domain_transfer.StateSucceeded {
		c.form.Amount = ""
		c.form.Memo = ""
		c.form.ThirdPartyDestination = ""
		c.clearRecipientLocked()
		c.attemptID = c.ids.NewUUID()
	}
	c.outcome = nil
	c.intent = nil
	c.setStateLocked(domain_transfer.StateComposing)
	c.applyDefaultsLocked()
}

func (c *Controller) resetLocked() error {
	switch c.state {
	case domain_transfer.StateAwaitingConfirmation:
		return domain_transfer.ErrInvalidStateTransition
	case domain_transfer.StateCommitting:
		return domain_transfer.ErrCommitInProgress
	case domain_transfer.StateComposing:
		c.outcome = nil
		return nil
	default:
		c.leaveFinalLocked()
		return nil
	}
}

func (c *Controller) cancelLocked() error {
	switch c.state {
	case domain_transfer.StateAwaitingConfirmation:
	case domain_transfer.StateCommitting:
		return domain_transfer.ErrCommitInProgress
	default:
		return domain_transfer.ErrInvalidStateTransition
	}

	c.stopTickerLocked()
	c.intent = nil
	c.setStateLocked(domain_transfer.StateComposing)
	c.raiseLocked(domain_transfer.TransferCancelled{At: c.clock.Now(), AttemptID: c.attemptID})
	return nil
}

func (c *Controller) selectModeLocked(mode domain_transfer.Mode) error {
	if !mode.IsValid() {
		return domain_transfer.ErrInvalidMode
	}
	if mode == c.form.Mode {
		return nil
	}
	if mode == domain_transfer.ModeOwnAccounts && len(c.accounts.ActiveAccounts()) < 2 {
		return domain_transfer.ErrOwnTransferUnavailable
	}

	c.form.Mode = mode
	c.clearRecipientLocked()
	c.applyDefaultsLocked()
	return nil
}

func (c *Controller) selectSourceLocked(number string) error {
	if !containsAccount(c.accounts.ActiveAccounts(), number) {
		return domain_transfer.ErrNoSourceAccount
	}
	c.form.Source = number
	if c.form.OwnDestination == number {
		c.form.OwnDestination = ""
	}
	c.applyDefaultsLocked()
	return nil
}

// selectOwnDestinationLocked accepts the source itself so submit can report
// ErrSameAccount; any other value must be an active account.
func (c *Controller) selectOwnDestinationLocked(number string) error {
	if number != c.form.Source && !containsAccount(c.accounts.ActiveAccounts(), number) {
		return domain_transfer.ErrUnknownDestination
	}
	c.form.OwnDestination = number
	return nil
}

func (c *Controller) setThirdPartyDestinationLocked(value string) {
	if value != c.form.ThirdPartyDestination {
		c.clearRecipientLocked()
	}
	c.form.ThirdPartyDestination = value
}

func (c *Controller) clearRecipientLocked() {
	c.recipient = nil
	c.validating = false
	c.validationSeq++
}

// applyDefaultsLocked points the form at accounts that still exist in the
// snapshot: first active account as source, next one as own destination.
func (c *Controller) applyDefaultsLocked() {
	active := c.accounts.ActiveAccounts()

	if !containsAccount(active, c.form.Source) {
		c.form.Source = ""
		if len(active) > 0 {
			c.form.Source = active[0].Number
		}
	}

	switch {
	case len(active) < 2:
		c.form.Mode = domain_transfer.ModeThirdParty
	case c.form.Mode == "":
		c.form.Mode = domain_transfer.ModeOwnAccounts
	}

	if c.form.OwnDestination != c.form.Source && containsAccount(active, c.form.OwnDestination) {
		return
	}
	c.form.OwnDestination = ""
	if own := c.accounts.OwnDestinations(c.form.Source); len(own) > 0 {
		c.form.OwnDestination = own[0].Number
	}
}

func (c *Controller) submitLocked() error {
	intent, err := domain_transfer.NewIntent(domain_transfer.IntentParams{
		Form:        c.form,
		Recipient:   c.recipient,
		Active:      c.accounts.ActiveAccounts(),
		DefaultMemo: c.cfg.DefaultMemo,
	})
	if err != nil {
		return err
	}

	c.intent = &intent
	c.countdown = domain_transfer.NewCountdown(c.cfg.ConfirmWindow)
	c.startTickerLocked()
	c.setStateLocked(domain_transfer.StateAwaitingConfirmation)
	c.raiseLocked(domain_transfer.TransferSubmitted{
		At:                c.clock.Now(),
		AttemptID:         c.attemptID,
		SourceNumber:      intent.SourceNumber,
		DestinationNumber: intent.DestinationNumber,
		Amount:            intent.Amount,
		Window:            c.countdown.Remaining(),
	})
	return nil
}

func (c *Controller) startTickerLocked() {
	c.stopTickerLocked()
	gen := c.tickGen
	c.ticker = c.scheduler.Every(c.cfg.TickInterval, func() { c.onTick(gen) })
}

// stopTickerLocked also bumps the generation so a callback already past the
// scheduler cannot act on a newer countdown.
func (c *Controller) stopTickerLocked() {
	c.tickGen++
	if c.ticker != nil {
		c.ticker.Stop()
		c.ticker = nil
	}
}

func (c *Controller) onTick(gen uint64) {
	c.mu.Lock()
	if c.closed || gen != c.tickGen || c.state != domain_transfer.StateAwaitingConfirmation {
		c.mu.Unlock()
		return
	}

	if !c.countdown.Tick() {
		v := c.viewLocked()
		c.mu.Unlock()
		c.notify(v)
		return
	}

	c.stopTickerLocked()
	c.intent = nil
	c.clearRecipientLocked()
	c.err = domain_transfer.ErrConfirmationTimeout
	c.setStateLocked(domain_transfer.StateExpired)
	c.raiseLocked(domain_transfer.ConfirmationExpired{At: c.clock.Now(), AttemptID: c.attemptID})
	c.logger.Info("transfer confirmation expired", slog.String("attempt_id", c.attemptID.String()))

	v := c.viewLocked()
	c.mu.Unlock()
	c.notify(v)
}

func (c *Controller) notify(v port_transfer.View) {
	if c.observer != nil {
		c.observer(v)
	}
}

func (c *Controller) validateRecipient(ctx context.Context) (port_transfer.View, error) {
	c.mu.Lock()
	if err := c.guardLocked(); err != nil {
		v := c.viewLocked()
		c.mu.Unlock()
		return v, err
	}
	err := c.enterComposingLocked()
	if err == nil && c.form.Mode != domain_transfer.ModeThirdParty {
		err = domain_transfer.ErrInvalidMode
	}
	if err != nil {
		c.err = err
		v := c.viewLocked()
		c.mu.Unlock()
		return v, err
	}

	dest := strings.TrimSpace(c.form.ThirdPartyDestination)
	c.clearRecipientLocked()
	seq := c.validationSeq
	c.validating = true
	c.err = nil
	c.mu.Unlock()

	profile, err := c.recipients.Validate(ctx, dest)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return c.viewLocked(), domain_transfer.ErrControllerClosed
	}
	if seq != c.validationSeq ||
		c.state != domain_transfer.StateComposing ||
		c.form.Mode != domain_transfer.ModeThirdParty ||
		strings.TrimSpace(c.form.ThirdPartyDestination) != dest {
		c.logger.DebugContext(ctx, "discarding stale recipient validation")
		return c.viewLocked(), nil
	}

	c.validating = false
	if err != nil {
		if errors.Is(err, domain_transfer.ErrSessionExpired) {
			c.expireSessionLocked(err)
		} else {
			c.err = err
		}
		return c.viewLocked(), err
	}

	profile.AccountNumber = dest
	c.recipient = &profile
	c.raiseLocked(domain_transfer.RecipientValidated{
		At:            c.clock.Now(),
		AttemptID:     c.attemptID,
		AccountNumber: profile.AccountNumber,
		HolderName:    profile.HolderName,
	})
	return c.viewLocked(), nil
}

func (c *Controller) confirm(ctx context.Context) (port_transfer.View, error) {
	c.mu.Lock()
	if err := c.guardLocked(); err != nil {
		v := c.viewLocked()
		c.mu.Unlock()
		return v, err
	}

	var err error
	switch c.state {
	case domain_transfer.StateAwaitingConfirmation:
	case domain_transfer.StateCommitting:
		err = domain_transfer.ErrCommitInProgress
	case domain_transfer.StateExpired:
		err = domain_transfer.ErrConfirmationTimeout
	default:
		err = domain_transfer.ErrInvalidStateTransition
	}
	if err != nil {
		v := c.viewLocked()
		c.mu.Unlock()
		return v, err
	}

	c.stopTickerLocked()
	c.setStateLocked(domain_transfer.StateCommitting)
	c.err = nil

	intent := *c.intent
	attemptID := c.attemptID
	req := port_banking.CommitRequest{
		SourceNumber:      intent.SourceNumber,
		DestinationNumber: intent.DestinationNumber,
		Amount:            intent.Amount,
		Memo:              intent.Memo,
		IdempotencyKey:    IdempotencyKey(attemptID, intent),
	}
	c.mu.Unlock()

	logger := c.logger.With(slog.String("attempt_id", attemptID.String()))
	logger.InfoContext(ctx, "committing transfer",
		slog.String("source", intent.SourceNumber),
		slog.String("destination", intent.DestinationNumber),
		slog.String("amount", intent.Amount.String()),
	)

	// In-flight commits cannot be aborted, so the caller's cancellation is
	// dropped for the commit and the reconciling refresh alike.
	commitCtx := context.WithoutCancel(ctx)
	start := time.Now()
	receipt, err := c.gateway.CommitTransfer(commitCtx, req)
	telemetry.TransferCommitDuration.Observe(time.Since(start).Seconds())
	err = gwerr.Classify("commit transfer", err)

	if !errors.Is(err, domain_transfer.ErrSessionExpired) {
		if _, rerr := c.accounts.Refresh(commitCtx); rerr != nil {
			logger.WarnContext(ctx, "refresh after commit failed", slog.Any("error", rerr))
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Closed while committing: the result is still readable from the view,
	// but the state and event log stay as Close left them.
	if c.closed {
		if err != nil {
			c.outcome = &domain_transfer.Outcome{Err: err}
		} else {
			c.outcome = c.successOutcomeLocked(intent, receipt)
		}
		logger.InfoContext(ctx, "transfer commit finished after close", slog.Any("error", err))
		return c.viewLocked(), err
	}

	if err != nil {
		telemetry.TransferCommitsTotal.WithLabelValues(gwerr.Label(err)).Inc()
		logger.WarnContext(ctx, "transfer commit failed", slog.Any("error", err))
		c.commitFailedLocked(err)
		return c.viewLocked(), err
	}

	telemetry.TransferCommitsTotal.WithLabelValues("succeeded").Inc()
	logger.InfoContext(ctx, "transfer committed", slog.String("reference", receipt.Reference))
	c.commitSucceededLocked(intent, receipt)
	return c.viewLocked(), nil
}

func (c *Controller) commitSucceededLocked(intent domain_transfer.Intent, receipt port_banking.CommitReceipt) {
	c.outcome = c.successOutcomeLocked(intent, receipt)
	c.intent = nil
	c.setStateLocked(domain_transfer.StateSucceeded)
	c.raiseLocked(domain_transfer.TransferCommitted{At: c.outcome.At, AttemptID: c.attemptID, Reference: receipt.Reference})
}

func (c *Controller) successOutcomeLocked(intent domain_transfer.Intent, receipt port_banking.CommitReceipt) *domain_transfer.Outcome {
	at := receipt.At
	if at.IsZero() {
		at = c.clock.Now()
	}

	balances := maps.Clone(receipt.Balances)
	if len(balances) == 0 {
		balances = make(map[string]decimal.Decimal)
		for _, number := range []string{intent.SourceNumber, intent.DestinationNumber} {
			if a, err := c.accounts.Find(number); err == nil {
				balances[number] = a.Balance
			}
		}
	}

	return &domain_transfer.Outcome{
		Success:   true,
		Reference: receipt.Reference,
		At:        at,
		Balances:  balances,
	}
}

// commitFailedLocked records the failure and returns to Composing with the
// form intact. Session expiry is the exception: it stays in Failed for good.
func (c *Controller) commitFailedLocked(err error) {
	if errors.Is(err, domain_transfer.ErrSessionExpired) {
		c.expireSessionLocked(err)
		return
	}

	c.outcome = &domain_transfer.Outcome{Err: err}
	c.intent = nil
	c.setStateLocked(domain_transfer.StateFailed)
	c.raiseLocked(domain_transfer.TransferFailed{
		At:        c.clock.Now(),
		AttemptID: c.attemptID,
		Reason:    domain_transfer.UserMessage(err),
	})

	c.clearRecipientLocked()
	c.err = err
	c.setStateLocked(domain_transfer.StateComposing)
	c.applyDefaultsLocked()
}

func (c *Controller) expireSessionLocked(err error) {
	c.stopTickerLocked()
	c.sessionExpired = true
	c.intent = nil
	c.clearRecipientLocked()
	c.outcome = &domain_transfer.Outcome{Err: err}
	c.err = err
	c.setStateLocked(domain_transfer.StateFailed)
	c.raiseLocked(domain_transfer.TransferFailed{
		At:        c.clock.Now(),
		AttemptID: c.attemptID,
		Reason:    domain_transfer.UserMessage(err),
		Terminal:  true,
	})
	c.logger.Warn("session expired, transfer controller stopped")
}

func (c *Controller) setStateLocked(s domain_transfer.State) {
	if c.state == s {
		return
	}
	c.logger.Debug("transfer state changed",
		slog.String("from", string(c.state)),
		slog.String("to", string(s)),
	)
	c.state = s
	telemetry.TransferTransitionsTotal.WithLabelValues(string(s)).Inc()
}

func (c *Controller) raiseLocked(ev domain_transfer.DomainEvent) {
	c.events = append(c.events, ev)
}

func (c *Controller) viewLocked() port_transfer.View {
	active := c.accounts.ActiveAccounts()

	v := port_transfer.View{
		State:                c.state,
		Form:                 c.form,
		Validating:           c.validating,
		Err:                  c.err,
		Sources:              active,
		OwnDestinations:      c.accounts.OwnDestinations(c.form.Source),
		OwnTransferAvailable: len(active) >= 2,
		SessionExpired:       c.sessionExpired,
	}
	if c.recipient != nil {
		p := *c.recipient
		v.Recipient = &p
	}
	if c.intent != nil {
		in := *c.intent
		if in.Recipient != nil {
			p := *in.Recipient
			in.Recipient = &p
		}
		v.Intent = &in
	}
	if c.outcome != nil {
		o := *c.outcome
		o.Balances = maps.Clone(o.Balances)
		v.Outcome = &o
	}
	if c.state == domain_transfer.StateAwaitingConfirmation {
		v.Remaining = c.countdown.Remaining()
	}
	return v
}

func containsAccount(accounts []domain_account.Account, number string) bool {
	if number == "" {
		return false
	}
	for _, a := range accounts {
		if a.Number == number {
			return true
		}
	}
	return false
}
