package impl_sandbox

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	domain_account "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/account"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type ctxKey struct{}

type Server struct {
	bank   *Bank
	logger *slog.Logger
}

func NewServer(bank *Bank, logger *slog.Logger) *Server {
	return &Server{bank: bank, logger: logger}
}

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

type accountBody struct {
	ID      int64           `json:"cuentaId"`
	Number  string          `json:"numeroCuenta"`
	Balance decimal.Decimal `json:"saldo"`
	Status  string          `json:"estado"`
	Type    int             `json:"tipoCuentaId"`
}

type recipientBody struct {
	Number            string `json:"numeroCuenta"`
	HolderName        string `json:"nombreTitular"`
	PartialNationalID string `json:"cedulaParcial"`
	Type              int    `json:"tipoCuenta"`
	Status            string `json:"estado"`
}

type transferBody struct {
	Source      string          `json:"cuentaOrigen"`
	Destination string          `json:"cuentaDestino"`
	Amount      decimal.Decimal `json:"monto"`
	Memo        string          `json:"descripcion"`
}

type receiptBody struct {
	Reference string                     `json:"referencia"`
	Date      string                     `json:"fecha"`
	Balances  map[string]decimal.Decimal `json:"saldos"`
}

type movementBody struct {
	Date         string          `json:"fecha"`
	Kind         string          `json:"tipo"`
	Amount       decimal.Decimal `json:"monto"`
	BalanceAfter decimal.Decimal `json:"saldoNuevo"`
}

type beneficiaryBody struct {
	ID         int64  `json:"id,omitempty"`
	Number     string `json:"numeroCuenta"`
	HolderName string `json:"nombreTitular"`
	Alias      string `json:"alias"`
	Type       *int   `json:"tipoCuenta"`
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Solicitud inválida")
		return
	}
	token, err := s.bank.Login(strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Solicitud inválida")
		return
	}
	u := User{
		Username:   strings.TrimSpace(req.Username),
		Password:   req.Password,
		FullName:   strings.TrimSpace(strings.TrimSpace(req.GivenNames) + " " + strings.TrimSpace(req.Surnames)),
		NationalID: strings.TrimSpace(req.NationalID),
		Email:      strings.TrimSpace(req.Email),
		Phone:      strings.TrimSpace(req.Phone),
		Address:    strings.TrimSpace(req.Address),
	}
	if err := s.bank.Register(u); err != nil {
		writeErr(w, err)
		return
	}
	s.logger.InfoContext(r.Context(), "user registered", slog.String("username", u.Username))
	writeText(w, http.StatusCreated, "Usuario registrado exitosamente")
}

// authenticate resolves the bearer token into the calling user.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			writeErr(w, ErrUnauthorized)
			return
		}
		user, err := s.bank.Authenticate(token)
		if err != nil {
			writeErr(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, user)))
	})
}

func userFrom(r *http.Request) string {
	user, _ := r.Context().Value(ctxKey{}).(string)
	return user
}

func (s *Server) accounts(w http.ResponseWriter, r *http.Request) {
	accounts := s.bank.Accounts(userFrom(r))
	out := make([]accountBody, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, accountBody{
			ID:      a.ID,
			Number:  a.Number,
			Balance: a.Balance,
			Status:  a.Status,
			Type:    a.Type.Code(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) validateRecipient(w http.ResponseWriter, r *http.Request) {
	a, holder, err := s.bank.Recipient(chi.URLParam(r, "numero"))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recipientBody{
		Number:            a.Number,
		HolderName:        holder.FullName,
		PartialNationalID: partialID(holder.NationalID),
		Type:              a.Type.Code(),
		Status:            a.Status,
	})
}

func (s *Server) transfer(w http.ResponseWriter, r *http.Request) {
	var req transferBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Solicitud inválida")
		return
	}

	user := userFrom(r)
	receipt, err := s.bank.Transfer(user, TransferInput{
		Source:         strings.TrimSpace(req.Source),
		Destination:    strings.TrimSpace(req.Destination),
		Amount:         req.Amount,
		Memo:           req.Memo,
		IdempotencyKey: r.Header.Get("Idempotency-Key"),
	})
	if err != nil {
		s.logger.InfoContext(r.Context(), "transfer rejected",
			slog.String("user", user),
			slog.String("reason", err.Error()),
		)
		writeErr(w, err)
		return
	}

	s.logger.InfoContext(r.Context(), "transfer committed",
		slog.String("user", user),
		slog.String("reference", receipt.Reference),
		slog.String("amount", req.Amount.String()),
	)
	writeJSON(w, http.StatusOK, receiptBody{
		Reference: receipt.Reference,
		Date:      receipt.At.Format(time.RFC3339),
		Balances:  receipt.Balances,
	})
}

func (s *Server) movements(w http.ResponseWriter, r *http.Request) {
	movements, err := s.bank.Movements(userFrom(r), chi.URLParam(r, "numero"))
	if err != nil {
		writeErr(w, err)
		return
	}
	out := make([]movementBody, 0, len(movements))
	for _, m := range movements {
		out = append(out, movementBody{
			Date:         m.At.Format(time.RFC3339),
			Kind:         string(m.Kind),
			Amount:       m.Amount,
			BalanceAfter: m.BalanceAfter,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) requestAccount(w http.ResponseWriter, r *http.Request) {
	code, err := strconv.Atoi(r.URL.Query().Get("tipoCuentaId"))
	if err != nil {
		writeErr(w, ErrInvalidAccountType)
		return
	}
	number, err := s.bank.RequestAccount(userFrom(r), domain_account.TypeFromCode(code))
	if err != nil {
		writeErr(w, err)
		return
	}
	writeText(w, http.StatusOK, "Solicitud registrada. Cuenta "+number+" pendiente de aprobación")
}

func (s *Server) beneficiaries(w http.ResponseWriter, r *http.Request) {
	saved := s.bank.Beneficiaries(userFrom(r))
	out := make([]beneficiaryBody, 0, len(saved))
	for _, b := range saved {
		out = append(out, beneficiaryBody{
			ID:         b.ID,
			Number:     b.Number,
			HolderName: b.HolderName,
			Alias:      b.Alias,
			Type:       typeCode(b.AccountType),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) addBeneficiary(w http.ResponseWriter, r *http.Request) {
	var req beneficiaryBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "Solicitud inválida")
		return
	}
	t := domain_account.TypeUnknown
	if req.Type != nil {
		t = domain_account.TypeFromCode(*req.Type)
	}
	saved, err := s.bank.AddBeneficiary(userFrom(r), SavedBeneficiary{
		Alias:       req.Alias,
		Number:      req.Number,
		HolderName:  req.HolderName,
		AccountType: t,
	})
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, beneficiaryBody{
		ID:         saved.ID,
		Number:     saved.Number,
		HolderName: saved.HolderName,
		Alias:      saved.Alias,
		Type:       typeCode(saved.AccountType),
	})
}

func (s *Server) approve(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "numero")
	if err := s.bank.Approve(number); err != nil {
		writeErr(w, err)
		return
	}
	s.logger.InfoContext(r.Context(), "account approved", slog.String("account", number))
	writeText(w, http.StatusOK, "Cuenta "+number+" aprobada")
}

func typeCode(t domain_account.Type) *int {
	code := t.Code()
	if code == 0 {
		return nil
	}
	return &code
}

// partialID keeps the last four digits of a national id.
func partialID(id string) string {
	if len(id) <= 4 {
		return id
	}
	return strings.Repeat("*", len(id)-4) + id[len(id)-4:]
}
