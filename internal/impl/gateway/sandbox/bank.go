package impl_sandbox

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	domain_account "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/account"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Wire status strings, as the production backend spells them.
const (
	statusActive   = "ACTIVA"
	statusInactive = "INACTIVA"
)

type Account struct {
	ID        int64
	Number    string
	Owner     string
	Balance   decimal.Decimal
	Status    string
	Type      domain_account.Type
	Movements []domain_account.Movement
}

type User struct {
	Username   string
	Password   string
	FullName   string
	NationalID string
	Email      string
	Phone      string
	Address    string
}

type SavedBeneficiary struct {
	ID          int64
	Alias       string
	Number      string
	HolderName  string
	AccountType domain_account.Type
}

type Receipt struct {
	Reference string
	At        time.Time
	Balances  map[string]decimal.Decimal
}

type TransferInput struct {
	Source         string
	Destination    string
	Amount         decimal.Decimal
	Memo           string
	IdempotencyKey string
}

// Bank is the in-memory ledger behind the sandbox API. All methods are safe
// for concurrent use.
type Bank struct {
	now func() time.Time

	mu            sync.Mutex
	users         map[string]*User
	tokens        map[string]string
	accounts      map[string]*Account
	order         []string
	beneficiaries map[string][]SavedBeneficiary
	receipts      map[string]Receipt
	nextAccountID int64
	nextNumber    int64
	nextBenefID   int64
}

func NewBank(now func() time.Time) *Bank {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Bank{
		now:           now,
		users:         make(map[string]*User),
		tokens:        make(map[string]string),
		accounts:      make(map[string]*Account),
		beneficiaries: make(map[string][]SavedBeneficiary),
		receipts:      make(map[string]Receipt),
		nextNumber:    5500000001,
	}
}

func (b *Bank) AddUser(u User) {
	b.mu.Lock()
	defer b.mu.Unlock()
	cp := u
	b.users[u.Username] = &cp
}

// Register adds a self-service user. Usernames and national ids are unique.
func (b *Bank) Register(u User) error {
	if u.Username == "" || u.Password == "" || u.FullName == "" || u.NationalID == "" {
		return ErrInvalidRegistration
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.users[u.Username]; ok {
		return ErrUserExists
	}
	for _, other := range b.users {
		if other.NationalID == u.NationalID {
			return ErrNationalIDTaken
		}
	}
	cp := u
	b.users[u.Username] = &cp
	return nil
}

// OpenAccount creates an account for owner. An empty number is generated.
func (b *Bank) OpenAccount(owner, number string, t domain_account.Type, balance decimal.Decimal, active bool) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.openLocked(owner, number, t, balance, active)
}

func (b *Bank) openLocked(owner, number string, t domain_account.Type, balance decimal.Decimal, active bool) string {
	if number == "" {
		number = fmt.Sprintf("%010d", b.nextNumber)
		b.nextNumber++
	}
	status := statusInactive
	if active {
		status = statusActive
	}
	b.nextAccountID++
	b.accounts[number] = &Account{
		ID:      b.nextAccountID,
		Number:  number,
		Owner:   owner,
		Balance: balance,
		Status:  status,
		Type:    t,
	}
	b.order = append(b.order, number)
	return number
}

// Approve activates a pending account.
func (b *Bank) Approve(number string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	a, ok := b.accounts[number]
	if !ok {
		return ErrAccountNotFound
	}
	a.Status = statusActive
	return nil
}

func (b *Bank) Deactivate(number string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	a, ok := b.accounts[number]
	if !ok {
		return ErrAccountNotFound
	}
	a.Status = statusInactive
	return nil
}

func (b *Bank) Login(username, password string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	u, ok := b.users[username]
	if !ok || u.Password != password {
		return "", ErrBadCredentials
	}
	token := uuid.NewString()
	b.tokens[token] = username
	return token, nil
}

func (b *Bank) Authenticate(token string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	user, ok := b.tokens[token]
	if !ok {
		return "", ErrUnauthorized
	}
	return user, nil
}

// Revoke invalidates a token, the way a backend session timeout would.
func (b *Bank) Revoke(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.tokens, token)
}

func (b *Bank) Accounts(owner string) []Account {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []Account
	for _, n := range b.order {
		if a := b.accounts[n]; a.Owner == owner {
			out = append(out, copyAccount(a))
		}
	}
	return out
}

func (b *Bank) Account(number string) (Account, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	a, ok := b.accounts[number]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	return copyAccount(a), nil
}

// Recipient resolves a destination account and its holder.
func (b *Bank) Recipient(number string) (Account, User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	a, ok := b.accounts[number]
	if !ok {
		return Account{}, User{}, ErrAccountNotFound
	}
	if a.Status != statusActive {
		return Account{}, User{}, ErrAccountInactive
	}
	var holder User
	if u, ok := b.users[a.Owner]; ok {
		holder = *u
	}
	return copyAccount(a), holder, nil
}

// Transfer moves money between two active accounts. A repeated idempotency
// key from the same user returns the first receipt without moving money again.
func (b *Bank) Transfer(owner string, in TransferInput) (Receipt, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	key := ""
	if in.IdempotencyKey != "" {
		key = owner + "|" + in.IdempotencyKey
		if r, ok := b.receipts[key]; ok {
			return r, nil
		}
	}

	if !in.Amount.IsPositive() {
		return Receipt{}, ErrInvalidAmount
	}
	src, ok := b.accounts[in.Source]
	if !ok || src.Owner != owner {
		return Receipt{}, ErrSourceNotOwned
	}
	if src.Status != statusActive {
		return Receipt{}, ErrSourceInactive
	}
	if in.Source == in.Destination {
		return Receipt{}, ErrSameAccount
	}
	dst, ok := b.accounts[in.Destination]
	if !ok {
		return Receipt{}, ErrAccountNotFound
	}
	if dst.Status != statusActive {
		return Receipt{}, ErrAccountInactive
	}
	if in.Amount.GreaterThan(src.Balance) {
		return Receipt{}, ErrInsufficientFunds
	}

	at := b.now()
	src.Balance = src.Balance.Sub(in.Amount)
	dst.Balance = dst.Balance.Add(in.Amount)
	src.Movements = append(src.Movements, domain_account.Movement{
		At: at, Kind: domain_account.MovementDebit, Amount: in.Amount, BalanceAfter: src.Balance,
	})
	dst.Movements = append(dst.Movements, domain_account.Movement{
		At: at, Kind: domain_account.MovementCredit, Amount: in.Amount, BalanceAfter: dst.Balance,
	})

	r := Receipt{
		Reference: "TRX-" + strings.ToUpper(uuid.NewString()[:8]),
		At:        at,
		Balances:  map[string]decimal.Decimal{src.Number: src.Balance},
	}
	if dst.Owner == owner {
		r.Balances[dst.Number] = dst.Balance
	}
	if key != "" {
		b.receipts[key] = r
	}
	return r, nil
}

func (b *Bank) Movements(owner, number string) ([]domain_account.Movement, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	a, ok := b.accounts[number]
	if !ok || a.Owner != owner {
		return nil, ErrAccountNotFound
	}
	return slices.Clone(a.Movements), nil
}

// AddMovement records history without touching the balance; used by seeds.
func (b *Bank) AddMovement(number string, m domain_account.Movement) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	a, ok := b.accounts[number]
	if !ok {
		return ErrAccountNotFound
	}
	a.Movements = append(a.Movements, m)
	return nil
}

// RequestAccount opens a pending account. Only one may be pending per user.
func (b *Bank) RequestAccount(owner string, t domain_account.Type) (string, error) {
	if !t.IsKnown() {
		return "", ErrInvalidAccountType
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, a := range b.accounts {
		if a.Owner == owner && a.Status == statusInactive {
			return "", ErrPendingRequest
		}
	}
	return b.openLocked(owner, "", t, decimal.Zero, false), nil
}

func (b *Bank) Beneficiaries(owner string) []SavedBeneficiary {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.beneficiaries[owner])
}

func (b *Bank) AddBeneficiary(owner string, sb SavedBeneficiary) (SavedBeneficiary, error) {
	sb.Alias = strings.TrimSpace(sb.Alias)
	sb.Number = strings.TrimSpace(sb.Number)
	if sb.Alias == "" || sb.Number == "" || strings.TrimSpace(sb.HolderName) == "" {
		return SavedBeneficiary{}, ErrInvalidBeneficiary
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.accounts[sb.Number]; !ok {
		return SavedBeneficiary{}, ErrAccountNotFound
	}
	for _, existing := range b.beneficiaries[owner] {
		if existing.Number == sb.Number {
			return SavedBeneficiary{}, ErrDuplicateBeneficiary
		}
	}
	b.nextBenefID++
	sb.ID = b.nextBenefID
	b.beneficiaries[owner] = append(b.beneficiaries[owner], sb)
	return sb, nil
}

func copyAccount(a *Account) Account {
	cp := *a
	cp.Movements = slices.Clone(a.Movements)
	return cp
}
