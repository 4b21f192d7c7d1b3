package impl_httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	domain_account "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/account"
	domain_beneficiary "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/beneficiary"
	domain_customer "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/customer"
	domain_transfer "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/domain/transfer"
	port_banking "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/ports/gateway/banking"
)

// Login exchanges credentials for a token and signs the session in.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	resp, err := c.do(ctx, call{
		method: http.MethodPost,
		path:   loginRoute,
		route:  loginRoute,
		body:   loginRequest{Username: username, Password: password},
	})
	if err != nil {
		return "", err
	}

	var out loginResponse
	if err := resp.decode(&out); err != nil {
		return "", err
	}
	if out.Token == "" {
		return "", fmt.Errorf("login: empty token")
	}

	c.session.SignIn(username, out.Token)
	return out.Token, nil
}

// Register signs a new user up. The backend answers with a plain-text
// acknowledgement; the session is not signed in.
func (c *Client) Register(ctx context.Context, r domain_customer.Registration) (string, error) {
	resp, err := c.do(ctx, call{
		method: http.MethodPost,
		path:   registerRoute,
		route:  registerRoute,
		body:   newRegisterRequest(r),
	})
	if err != nil {
		return "", err
	}
	return ackText(resp), nil
}

func (c *Client) ListAccounts(ctx context.Context) ([]domain_account.Account, error) {
	resp, err := c.do(ctx, call{method: http.MethodGet, path: "/web/cuentas", route: "/web/cuentas"})
	if err != nil {
		return nil, err
	}

	var dtos []accountDTO
	if err := resp.decode(&dtos); err != nil {
		return nil, err
	}

	out := make([]domain_account.Account, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (c *Client) LookupRecipient(ctx context.Context, accountNumber string) (domain_transfer.RecipientProfile, error) {
	resp, err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/web/validar-destinatario/" + url.PathEscape(accountNumber),
		route:  "/web/validar-destinatario/{numero}",
	})
	if err != nil {
		return domain_transfer.RecipientProfile{}, err
	}

	var dto recipientDTO
	if err := resp.decode(&dto); err != nil {
		return domain_transfer.RecipientProfile{}, err
	}
	return dto.toDomain(), nil
}

// CommitTransfer posts the transfer. A plain-text acknowledgement is used as
// the reference.
func (c *Client) CommitTransfer(ctx context.Context, req port_banking.CommitRequest) (port_banking.CommitReceipt, error) {
	cl := call{
		method: http.MethodPost,
		path:   "/web/transferir",
		route:  "/web/transferir",
		body: transferRequest{
			Source:      req.SourceNumber,
			Destination: req.DestinationNumber,
			Amount:      json.Number(req.Amount.String()),
			Memo:        req.Memo,
		},
	}
	if req.IdempotencyKey != "" {
		cl.headers = map[string]string{headerIdempotencyKey: req.IdempotencyKey}
	}

	resp, err := c.do(ctx, cl)
	if err != nil {
		return port_banking.CommitReceipt{}, err
	}

	if !resp.isJSON {
		return port_banking.CommitReceipt{Reference: resp.text()}, nil
	}

	var receipt transferReceipt
	if err := resp.decode(&receipt); err != nil {
		return port_banking.CommitReceipt{}, err
	}
	return receipt.toPort(req)
}

func (c *Client) ListMovements(ctx context.Context, accountNumber string) ([]domain_account.Movement, error) {
	resp, err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/web/movimientos/" + url.PathEscape(accountNumber),
		route:  "/web/movimientos/{numero}",
	})
	if err != nil {
		return nil, err
	}

	var dtos []movementDTO
	if err := resp.decode(&dtos); err != nil {
		return nil, err
	}

	out := make([]domain_account.Movement, 0, len(dtos))
	for _, d := range dtos {
		m, err := d.toDomain()
		if err != nil {
			return nil, fmt.Errorf("decode movement: %w", err)
		}
		out = append(out, m)
	}
	return out, nil
}

func (c *Client) RequestAccount(ctx context.Context, accountType domain_account.Type) (string, error) {
	q := url.Values{}
	q.Set("tipoCuentaId", strconv.Itoa(accountType.Code()))

	resp, err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/web/solicitar-cuenta?" + q.Encode(),
		route:  "/web/solicitar-cuenta",
	})
	if err != nil {
		return "", err
	}
	return ackText(resp), nil
}

func (c *Client) ListBeneficiaries(ctx context.Context) ([]domain_beneficiary.Beneficiary, error) {
	resp, err := c.do(ctx, call{method: http.MethodGet, path: "/web/beneficiarios", route: "/web/beneficiarios"})
	if err != nil {
		return nil, err
	}

	var dtos []beneficiaryDTO
	if err := resp.decode(&dtos); err != nil {
		return nil, err
	}

	out := make([]domain_beneficiary.Beneficiary, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (c *Client) RegisterBeneficiary(ctx context.Context, b domain_beneficiary.Beneficiary) error {
	_, err := c.do(ctx, call{
		method: http.MethodPost,
		path:   "/web/beneficiarios",
		route:  "/web/beneficiarios",
		body:   beneficiaryFromDomain(b),
	})
	return err
}

// ackText reads an acknowledgement that may come as text or as a JSON string
// or {message} object.
func ackText(resp response) string {
	if !resp.isJSON {
		return resp.text()
	}

	var s string
	if err := json.Unmarshal(resp.body, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.body, &obj); err == nil && obj.Message != "" {
		return obj.Message
	}
	return resp.text()
}
