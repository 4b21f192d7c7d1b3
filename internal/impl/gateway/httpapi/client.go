package impl_httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	port_banking "github.com/PedroCamargo-dev/core-bank-transfers-client/internal/ports/gateway/banking"
	"github.com/PedroCamargo-dev/core-bank-transfers-client/internal/session"
	"github.com/PedroCamargo-dev/core-bank-transfers-client/internal/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	loginRoute    = "/auth/login/web"
	registerRoute = "/auth/register"

	headerRequestID      = "X-Request-ID"
	headerIdempotencyKey = "Idempotency-Key"

	maxErrorBody = 64 << 10
)

var tracer = otel.Tracer("bank-api-client")

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// Client talks to the banking REST API on behalf of one session. It
// implements every gateway in port_banking.
type Client struct {
	baseURL string
	session *session.Session
	http    *http.Client
	logger  *slog.Logger
}

func NewClient(baseURL string, sess *session.Session, opts ...Option) *Client {
	if sess == nil {
		sess = session.Anonymous()
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		session: sess,
		http:    &http.Client{Timeout: 10 * time.Second},
		logger:  telemetry.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var (
	_ port_banking.AccountGateway        = (*Client)(nil)
	_ port_banking.RecipientGateway      = (*Client)(nil)
	_ port_banking.TransferGateway       = (*Client)(nil)
	_ port_banking.BeneficiaryGateway    = (*Client)(nil)
	_ port_banking.AccountRequestGateway = (*Client)(nil)
	_ port_banking.MovementGateway       = (*Client)(nil)
	_ port_banking.AuthGateway           = (*Client)(nil)
)

type call struct {
	method  string
	path    string
	route   string // low-cardinality name for spans and metrics
	body    any
	headers map[string]string
}

type response struct {
	body   []byte
	isJSON bool
}

func (r response) decode(out any) error {
	if err := json.Unmarshal(r.body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (r response) text() string {
	return strings.TrimSpace(string(r.body))
}

func (c *Client) do(ctx context.Context, cl call) (resp response, err error) {
	ctx, span := tracer.Start(ctx, "bankapi "+cl.method+" "+cl.route,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", cl.method),
			attribute.String("http.route", cl.route),
		),
	)
	defer span.End()

	start := time.Now()
	status := "error"
	defer func() {
		telemetry.APIRequestDuration.WithLabelValues(cl.route, status).Observe(time.Since(start).Seconds())
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	var body io.Reader
	if cl.body != nil {
		b, err := json.Marshal(cl.body)
		if err != nil {
			return response{}, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, body)
	if err != nil {
		return response{}, err
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json, text/plain")
	req.Header.Set(headerRequestID, requestID)
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range cl.headers {
		req.Header.Set(k, v)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	res, err := c.http.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "bank api request failed",
			slog.String("route", cl.route),
			slog.String("request_id", requestID),
			slog.Any("error", err),
		)
		return response{}, fmt.Errorf("%s %s: %w", cl.method, cl.route, err)
	}
	defer res.Body.Close()

	status = strconv.Itoa(res.StatusCode)
	span.SetAttributes(attribute.Int("http.status_code", res.StatusCode))

	if (res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden) && !publicRoute(cl.route) {
		c.session.Expire()
		c.logger.WarnContext(ctx, "session rejected by bank api",
			slog.String("route", cl.route),
			slog.Int("status", res.StatusCode),
		)
		return response{}, port_banking.ErrSessionExpired
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		apiErr := &port_banking.Error{Status: res.StatusCode, Message: errorMessage(raw)}
		c.logger.DebugContext(ctx, "bank api returned an error",
			slog.String("route", cl.route),
			slog.String("request_id", requestID),
			slog.Int("status", res.StatusCode),
		)
		return response{}, apiErr
	}

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return response{}, fmt.Errorf("%s %s: read body: %w", cl.method, cl.route, err)
	}

	return response{
		body:   raw,
		isJSON: isJSON(res.Header.Get("Content-Type")),
	}, nil
}

// errorMessage extracts the user-facing text of an error body: the message
// field of a JSON body, otherwise the raw text. A JSON body without a
// message yields "".
func errorMessage(raw []byte) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ""
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(trimmed, &body); err == nil {
		return strings.TrimSpace(body.Message)
	}

	if !json.Valid(trimmed) {
		return string(trimmed)
	}
	return ""
}

func isJSON(contentType string) bool {
	if contentType == "" {
		return true
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

// publicRoute reports whether route is served without a session, so an auth
// failure there says nothing about the current token.
func publicRoute(route string) bool {
	return route == loginRoute || route == registerRoute
}
