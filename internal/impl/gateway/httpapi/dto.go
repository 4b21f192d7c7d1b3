package impl_httpapi

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	domain_account "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/account"
	domain_beneficiary "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/beneficiary"
	domain_customer "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/customer"
	domain_transfer "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/transfer"
	port_banking "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/ports/gateway/banking"
	"github.com/shopspring/decimal"
)

type loginRequest struct {
	Username string `json:"usuario"`
	Password string `json:"password"`
}

type registerRequest struct {
	NationalID string `json:"cedula"`
	GivenNames string `json:"nombres"`
	Surnames   string `json:"apellidos"`
	Email      string `json:"email"`
	Username   string `json:"usuario"`
	Password   string `json:"password"`
	Phone      string `json:"telefono"`
	Address    string `json:"direccion"`
}

func newRegisterRequest(r domain_customer.Registration) registerRequest {
	return registerRequest{
		NationalID: r.NationalID,
		GivenNames: r.GivenNames,
		Surnames:   r.Surnames,
		Email:      r.Email,
		Username:   r.Username,
		Password:   r.Password,
		Phone:      r.Phone,
		Address:    r.Address,
	}
}

type loginResponse struct {
	Token string `json:"token"`
}

type accountDTO struct {
	ID          int64           `json:"cuentaId"`
	Number      string          `json:"numeroCuenta"`
	Balance     decimal.Decimal `json:"saldo"`
	Status      string          `json:"estado"`
	AccountType accountType     `json:"tipoCuentaId"`
}

func (d accountDTO) toDomain() domain_account.Account {
	return domain_account.Account{
		ID:      d.ID,
		Number:  d.Number,
		Balance: d.Balance,
		Status:  domain_account.ParseStatus(d.Status),
		Type:    d.AccountType.domain(),
	}
}

type recipientDTO struct {
	Number            string      `json:"numeroCuenta"`
	HolderName        string      `json:"nombreTitular"`
	PartialNationalID string      `json:"cedulaParcial"`
	AccountType       accountType `json:"tipoCuenta"`
	Status            string      `json:"estado"`
}

// toDomain treats a missing estado as active: the endpoint only resolves
// accounts that can receive money and answers 409 otherwise.
func (d recipientDTO) toDomain() domain_transfer.RecipientProfile {
	status := domain_account.StatusActive
	if strings.TrimSpace(d.Status) != "" {
		status = domain_account.ParseStatus(d.Status)
	}
	return domain_transfer.RecipientProfile{
		AccountNumber:     d.Number,
		HolderName:        d.HolderName,
		PartialNationalID: d.PartialNationalID,
		AccountType:       d.AccountType.domain(),
		Status:            status,
	}
}

type transferRequest struct {
	Source      string      `json:"cuentaOrigen"`
	Destination string      `json:"cuentaDestino"`
	Amount      json.Number `json:"monto"`
	Memo        string      `json:"descripcion"`
}

// transferReceipt accepts the current receipt shape and the older one that
// reported a transaction code and the two available balances.
type transferReceipt struct {
	Reference string                     `json:"referencia"`
	Date      string                     `json:"fecha"`
	Balances  map[string]decimal.Decimal `json:"saldos"`

	LegacyCode               string           `json:"codigoTransaccion"`
	LegacySourceBalance      *decimal.Decimal `json:"saldoDisponibleOrigen"`
	LegacyDestinationBalance *decimal.Decimal `json:"saldoDisponibleDestino"`
}

func (r transferReceipt) toPort(req port_banking.CommitRequest) (port_banking.CommitReceipt, error) {
	out := port_banking.CommitReceipt{
		Reference: r.Reference,
		Balances:  r.Balances,
	}
	if out.Reference == "" {
		out.Reference = r.LegacyCode
	}
	if len(out.Balances) == 0 && (r.LegacySourceBalance != nil || r.LegacyDestinationBalance != nil) {
		out.Balances = make(map[string]decimal.Decimal, 2)
		if r.LegacySourceBalance != nil {
			out.Balances[req.SourceNumber] = *r.LegacySourceBalance
		}
		if r.LegacyDestinationBalance != nil {
			out.Balances[req.DestinationNumber] = *r.LegacyDestinationBalance
		}
	}
	if r.Date != "" {
		at, err := parseTime(r.Date)
		if err != nil {
			return port_banking.CommitReceipt{}, err
		}
		out.At = at
	}
	return out, nil
}

type movementDTO struct {
	Date         string          `json:"fecha"`
	Kind         string          `json:"tipo"`
	Amount       decimal.Decimal `json:"monto"`
	BalanceAfter decimal.Decimal `json:"saldoNuevo"`
}

func (d movementDTO) toDomain() (domain_account.Movement, error) {
	at, err := parseTime(d.Date)
	if err != nil {
		return domain_account.Movement{}, err
	}

	kind := domain_account.MovementKind(strings.ToUpper(strings.TrimSpace(d.Kind)))
	if kind != domain_account.MovementCredit && kind != domain_account.MovementDebit {
		return domain_account.Movement{}, fmt.Errorf("movement kind %q", d.Kind)
	}

	return domain_account.Movement{
		At:           at,
		Kind:         kind,
		Amount:       d.Amount,
		BalanceAfter: d.BalanceAfter,
	}, nil
}

type beneficiaryDTO struct {
	ID          int64       `json:"id,omitempty"`
	Number      string      `json:"numeroCuenta"`
	HolderName  string      `json:"nombreTitular"`
	Alias       string      `json:"alias"`
	AccountType accountType `json:"tipoCuenta"`
}

func beneficiaryFromDomain(b domain_beneficiary.Beneficiary) beneficiaryDTO {
	return beneficiaryDTO{
		ID:          b.ID,
		Number:      b.AccountNumber,
		HolderName:  b.HolderName,
		Alias:       b.Alias,
		AccountType: accountType(b.AccountType),
	}
}

func (d beneficiaryDTO) toDomain() domain_beneficiary.Beneficiary {
	return domain_beneficiary.Beneficiary{
		ID:            d.ID,
		Alias:         d.Alias,
		AccountNumber: d.Number,
		HolderName:    d.HolderName,
		AccountType:   d.AccountType.domain(),
	}
}

// accountType decodes the backend's account type, sent either as a numeric
// id (1 savings, 2 checking) or as a name, and encodes it as the numeric id.
type accountType domain_account.Type

func (t *accountType) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" || raw == "" {
		*t = ""
		return nil
	}

	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = accountType(domain_account.ParseType(s))
		return nil
	}

	code, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("account type %s: %w", raw, err)
	}
	*t = accountType(domain_account.TypeFromCode(code))
	return nil
}

func (t accountType) domain() domain_account.Type {
	if t == "" {
		return domain_account.TypeUnknown
	}
	return domain_account.Type(t)
}

func (t accountType) MarshalJSON() ([]byte, error) {
	code := domain_account.Type(t).Code()
	if code == 0 {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(code)), nil
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseTime reads backend timestamps. Values without a zone are UTC.
func parseTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}
