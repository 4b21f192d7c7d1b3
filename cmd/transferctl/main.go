// Command transferctl is an interactive terminal client for the banking API:
// it lists accounts, composes and confirms transfers, manages beneficiaries
// and shows statements. "transferctl register" signs a new user up.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/PedroCamargo-dev/core-bank-transfers-client/internal/config"
	domain_account "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/account"
	domain_beneficiary "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/beneficiary"
	domain_customer "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/customer"
	domain_transfer "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/transfer"
	impl_httpapi "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/impl/gateway/httpapi"
	impl_journal "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/impl/gateway/journal"
	impl_platform "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/impl/platform"
	impl_accountrequest "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/impl/usecase/accountrequest"
	impl_activity "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/impl/usecase/activity"
	impl_beneficiary "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/impl/usecase/beneficiary"
	impl_dashboard "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/impl/usecase/dashboard"
	impl_recipient "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/impl/usecase/recipient"
	impl_registration "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/impl/usecase/registration"
	impl_snapshot "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/impl/usecase/snapshot"
	impl_statement "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/impl/usecase/statement"
	impl_transfer "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/impl/usecase/transfer"
	port_transfer "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/ports/usecase/transfer"
	"github.com/PedroCamargo-dev/core-bank-transfers-client/internal/session"
	"github.com/PedroCamargo-dev/core-bank-transfers-client/internal/telemetry"
)

type app struct {
	out           io.Writer
	controller    *impl_transfer.Controller
	dashboard     *impl_dashboard.Service
	beneficiaries *impl_beneficiary.Service
	requests      *impl_accountrequest.Service
	statements    *impl_statement.Service
	journal       *impl_activity.Relay
}

func main() {
	cfg := config.Load()

	baseURL := flag.String("api", cfg.API.BaseURL, "banking API base URL")
	user := flag.String("user", os.Getenv("BANK_USER"), "username")
	password := flag.String("password", os.Getenv("BANK_PASSWORD"), "password")
	flag.StringVar(&cfg.Transfer.JournalPath, "journal", cfg.Transfer.JournalPath, "append transfer activity as JSON lines to this file")
	flag.Parse()

	logger := telemetry.NewLogger("transferctl", cfg.LogLevel, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if flag.Arg(0) == "register" {
		if err := register(ctx, cfg, *baseURL, logger, os.Stdin, os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, "transferctl:", err)
			os.Exit(1)
		}
		return
	}

	if err := run(ctx, cfg, *baseURL, *user, *password, logger); err != nil {
		fmt.Fprintln(os.Stderr, "transferctl:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, baseURL, user, password string, logger *slog.Logger) error {
	if user == "" || password == "" {
		return errors.New("-user and -password are required")
	}

	sess := session.Anonymous()
	client := impl_httpapi.NewClient(baseURL, sess,
		impl_httpapi.WithTimeout(cfg.API.Timeout),
		impl_httpapi.WithLogger(logger),
	)
	if _, err := client.Login(ctx, user, password); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	clock := impl_platform.SystemClock{}
	store := impl_snapshot.NewStore(client, clock, logger)
	benefs := impl_beneficiary.NewService(client, logger)

	a := &app{
		out:           os.Stdout,
		dashboard:     impl_dashboard.NewService(store, benefs, logger),
		beneficiaries: benefs,
		requests:      impl_accountrequest.NewService(store, client, logger),
		statements:    impl_statement.NewService(store, client, clock, time.Local),
	}
	a.controller = impl_transfer.NewController(
		store,
		impl_recipient.NewValidator(client, logger),
		client,
		impl_platform.WallScheduler{},
		clock,
		impl_platform.UUIDGenerator{},
		impl_transfer.Config{
			ConfirmWindow: cfg.Transfer.ConfirmWindow,
			TickInterval:  cfg.Transfer.TickInterval,
			DefaultMemo:   cfg.Transfer.DefaultMemo,
		},
		impl_transfer.WithLogger(logger),
		impl_transfer.WithObserver(a.onTick),
	)
	defer a.controller.Close()

	if path := cfg.Transfer.JournalPath; path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("open journal: %w", err)
		}
		defer f.Close()
		a.journal = impl_activity.NewRelay(a.controller, impl_journal.NewMemoryOutbox(), impl_journal.NewLinePublisher(f), impl_platform.UUIDGenerator{}, logger)
		defer a.journal.Sync(context.WithoutCancel(ctx))
	}

	v, err := a.controller.Load(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "could not load accounts:", v.Message())
	}
	a.overview(ctx)
	a.printView(v)

	return a.repl(ctx, os.Stdin)
}

// register signs a new user up from answers read on in. It runs without a
// session and exits; the user then starts transferctl with -user.
func register(ctx context.Context, cfg *config.Config, baseURL string, logger *slog.Logger, in io.Reader, out io.Writer) error {
	client := impl_httpapi.NewClient(baseURL, session.Anonymous(),
		impl_httpapi.WithTimeout(cfg.API.Timeout),
		impl_httpapi.WithLogger(logger),
	)

	sc := bufio.NewScanner(in)
	ask := func(label string) string {
		fmt.Fprintf(out, "%s: ", label)
		if !sc.Scan() {
			return ""
		}
		return strings.TrimSpace(sc.Text())
	}

	p := domain_customer.NewParams{
		NationalID: ask("national id"),
		GivenNames: ask("given names"),
		Surnames:   ask("surnames"),
		Email:      ask("email"),
		Username:   ask("username"),
		Password:   ask("password"),
	}
	p.ConfirmPassword = ask("confirm password")
	p.Phone = ask("phone")
	p.Address = ask("address")

	res, err := impl_registration.NewService(client, logger).Register(ctx, p)
	if err != nil {
		return errors.New(registrationMessage(err))
	}
	fmt.Fprintln(out, res.Message)
	fmt.Fprintf(out, "sign in with -user %s\n", res.Username)
	return nil
}

func registrationMessage(err error) string {
	switch {
	case errors.Is(err, domain_customer.ErrGivenNames):
		return "enter both given names"
	case errors.Is(err, domain_customer.ErrSurnames):
		return "enter both surnames"
	case errors.Is(err, domain_customer.ErrPasswordMismatch):
		return "passwords do not match"
	case errors.Is(err, domain_customer.ErrNationalID):
		return "the national id must have 10 digits"
	case errors.Is(err, domain_customer.ErrMissingPassword),
		errors.Is(err, domain_customer.ErrMissingUsername),
		errors.Is(err, domain_customer.ErrMissingContact):
		return "all fields are required"
	default:
		return domain_transfer.UserMessage(err)
	}
}

// onTick runs on the scheduler goroutine.
func (a *app) onTick(v port_transfer.View) {
	switch {
	case v.State == domain_transfer.StateExpired:
		fmt.Fprintln(a.out, "\nconfirmation window elapsed, transfer cancelled")
	case v.State == domain_transfer.StateAwaitingConfirmation && (v.Remaining%10 == 0 || v.Remaining <= 5):
		fmt.Fprintf(a.out, "\n%ds left to confirm\n", v.Remaining)
	}
}

func (a *app) repl(ctx context.Context, in io.Reader) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			lines <- sc.Text()
		}
	}()

	for {
		fmt.Fprint(a.out, "> ")
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			quit := a.exec(ctx, strings.Fields(line))
			if a.journal != nil {
				a.journal.Sync(ctx)
			}
			if quit {
				return nil
			}
		}
	}
}

func (a *app) exec(ctx context.Context, args []string) (quit bool) {
	if len(args) == 0 {
		return false
	}
	cmd, rest := args[0], args[1:]
	arg := strings.Join(rest, " ")

	switch cmd {
	case "quit", "exit":
		return true
	case "help":
		a.help()
	case "accounts":
		a.overview(ctx)
	case "view":
		a.printView(a.controller.View())
	case "mode":
		mode := domain_transfer.ModeThirdParty
		if arg == "own" {
			mode = domain_transfer.ModeOwnAccounts
		}
		a.dispatch(ctx, port_transfer.SelectMode{Mode: mode})
	case "source":
		a.dispatch(ctx, port_transfer.SelectSource{Number: arg})
	case "dest":
		if a.controller.View().Form.Mode == domain_transfer.ModeOwnAccounts {
			a.dispatch(ctx, port_transfer.SelectOwnDestination{Number: arg})
		} else {
			a.dispatch(ctx, port_transfer.EditDestination{Value: arg})
		}
	case "validate":
		a.dispatch(ctx, port_transfer.ValidateRecipient{})
	case "amount":
		a.dispatch(ctx, port_transfer.EditAmount{Value: arg})
	case "memo":
		a.dispatch(ctx, port_transfer.EditMemo{Value: arg})
	case "submit":
		a.dispatch(ctx, port_transfer.Submit{})
	case "confirm":
		a.dispatch(ctx, port_transfer.Confirm{})
	case "cancel":
		a.dispatch(ctx, port_transfer.Cancel{})
	case "reset":
		a.dispatch(ctx, port_transfer.Reset{})
	case "beneficiaries":
		a.listBeneficiaries(ctx)
	case "save":
		a.saveBeneficiary(ctx, arg)
	case "use":
		a.useBeneficiary(ctx, arg)
	case "request":
		a.requestAccount(ctx, arg)
	case "statement":
		a.statement(ctx, rest)
	default:
		fmt.Fprintf(a.out, "unknown command %q, try help\n", cmd)
	}
	return false
}

func (a *app) dispatch(ctx context.Context, ev port_transfer.Event) {
	v, err := a.controller.Dispatch(ctx, ev)
	if err != nil && v.Err == nil {
		fmt.Fprintln(a.out, "!", domain_transfer.UserMessage(err))
	}
	a.printView(v)
}

func (a *app) printView(v port_transfer.View) {
	w := a.out
	fmt.Fprintf(w, "[%s] mode=%s source=%s dest=%s amount=%q memo=%q\n",
		v.State, v.Form.Mode, v.Form.Source, v.Form.Destination(), v.Form.Amount, v.Form.Memo)

	if v.Validating {
		fmt.Fprintln(w, "  validating recipient...")
	}
	if v.Recipient != nil {
		fmt.Fprintf(w, "  recipient: %s (%s) %s\n", v.Recipient.HolderName, v.Recipient.PartialNationalID, v.Recipient.AccountType.Label())
	}
	if v.Intent != nil && v.State == domain_transfer.StateAwaitingConfirmation {
		fmt.Fprintf(w, "  send %s from %s to %s (%s). confirm within %ds\n",
			v.Intent.Amount.StringFixed(2), v.Intent.SourceNumber, v.Intent.DestinationNumber, v.Intent.Memo, v.Remaining)
	}
	if v.Outcome != nil && v.Outcome.Success {
		fmt.Fprintf(w, "  done, reference %s\n", v.Outcome.Reference)
		for number, balance := range v.Outcome.Balances {
			fmt.Fprintf(w, "    %s balance %s\n", number, balance.StringFixed(2))
		}
	}
	if msg := v.Message(); msg != "" {
		fmt.Fprintln(w, "  !", msg)
	}
	if v.SessionExpired {
		fmt.Fprintln(w, "  session expired, restart transferctl to sign in again")
	}
}

func (a *app) overview(ctx context.Context) {
	o, err := a.dashboard.Overview(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "!", domain_transfer.UserMessage(err))
		return
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ACCOUNT\tTYPE\tBALANCE\tSTATUS")
	for _, acc := range o.Active {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", acc.Number, acc.Type.Label(), acc.Balance.StringFixed(2), "active")
	}
	for _, acc := range o.Pending {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", acc.Number, acc.Type.Label(), "-", "pending approval")
	}
	_ = tw.Flush()
	fmt.Fprintf(a.out, "total %s, %d saved beneficiaries\n", o.TotalBalance.StringFixed(2), len(o.Beneficiaries))
}

func (a *app) listBeneficiaries(ctx context.Context) {
	list, err := a.beneficiaries.List(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "!", domain_transfer.UserMessage(err))
		return
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "no beneficiaries saved")
		return
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ALIAS\tACCOUNT\tHOLDER")
	for _, b := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", b.Alias, b.AccountNumber, b.HolderName)
	}
	_ = tw.Flush()
}

func (a *app) saveBeneficiary(ctx context.Context, alias string) {
	saved, err := a.beneficiaries.Save(ctx, alias, a.controller.View().Recipient)
	if err != nil {
		fmt.Fprintln(a.out, "!", beneficiaryMessage(err))
		return
	}
	fmt.Fprintf(a.out, "saved %s as %q\n", saved.AccountNumber, saved.Alias)
}

func (a *app) useBeneficiary(ctx context.Context, alias string) {
	list, err := a.beneficiaries.List(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "!", domain_transfer.UserMessage(err))
		return
	}
	for _, b := range list {
		if strings.EqualFold(b.Alias, alias) {
			a.dispatch(ctx, port_transfer.UseBeneficiary{Beneficiary: b})
			return
		}
	}
	fmt.Fprintf(a.out, "no beneficiary named %q\n", alias)
}

func (a *app) requestAccount(ctx context.Context, kind string) {
	out, err := a.requests.Request(ctx, domain_account.ParseType(kind))
	switch {
	case errors.Is(err, impl_accountrequest.ErrPendingRequest):
		fmt.Fprintf(a.out, "a request is already pending (%d account(s) awaiting approval)\n", len(out.Pending))
	case errors.Is(err, domain_account.ErrInvalidType):
		fmt.Fprintln(a.out, "account type must be savings or checking")
	case err != nil:
		fmt.Fprintln(a.out, "!", domain_transfer.UserMessage(err))
	default:
		fmt.Fprintln(a.out, out.Message)
	}
}

func (a *app) statement(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "usage: statement <account> [credits|debits] [week|month]")
		return
	}
	var f domain_account.StatementFilter
	for _, opt := range args[1:] {
		switch opt {
		case "credits":
			f.Kind = domain_account.KindCredits
		case "debits":
			f.Kind = domain_account.KindDebits
		case "week":
			f.Period = domain_account.PeriodLastWeek
		case "month":
			f.Period = domain_account.PeriodLastMonth
		}
	}

	st, err := a.statements.Load(ctx, args[0], f)
	if err != nil {
		fmt.Fprintln(a.out, "!", domain_transfer.UserMessage(err))
		return
	}
	for _, week := range st.Weeks {
		fmt.Fprintln(a.out, week.Title)
		for _, m := range week.Movements {
			sign := "-"
			if m.IsCredit() {
				sign = "+"
			}
			fmt.Fprintf(a.out, "  %s  %s%s  balance %s\n",
				m.At.In(time.Local).Format("Mon 02 Jan 15:04"), sign, m.Amount.StringFixed(2), m.BalanceAfter.StringFixed(2))
		}
	}
	fmt.Fprintf(a.out, "credits %s, debits %s\n", st.Credits.StringFixed(2), st.Debits.StringFixed(2))
}

func beneficiaryMessage(err error) string {
	switch {
	case errors.Is(err, domain_transfer.ErrUnvalidatedRecipient):
		return "validate a third-party destination before saving it"
	case errors.Is(err, domain_beneficiary.ErrMissingAlias):
		return "usage: save <alias>"
	}
	return domain_transfer.UserMessage(err)
}

func (a *app) help() {
	fmt.Fprint(a.out, `commands:
  accounts                       balances and pending accounts
  mode own|third                 choose destination kind
  source <account>               pick the debit account
  dest <account>                 pick or type the destination
  validate                       look up a third-party destination
  amount <value>                 set the amount
  memo <text>                    set the description
  submit | confirm | cancel      drive the confirmation step
  reset                          start over
  beneficiaries                  list saved beneficiaries
  save <alias>                   save the validated recipient
  use <alias>                    fill the form from a beneficiary
  request savings|checking       ask for a new account
  statement <account> [credits|debits] [week|month]
  view | help | quit
`)
}
