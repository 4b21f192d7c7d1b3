package impl_sandbox

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/PedroCamargo-dev/core-bank-transfers-client/internal/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter exposes bank under /api with the same routes and wire format as
// the production banking backend.
func NewRouter(bank *Bank, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = telemetry.Discard()
	}
	s := NewServer(bank, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(metrics)

	r.Get("/healthz", s.health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login/web", s.login)
		r.Post("/auth/register", s.register)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)
			r.Get("/web/cuentas", s.accounts)
			r.Get("/web/validar-destinatario/{numero}", s.validateRecipient)
			r.Post("/web/transferir", s.transfer)
			r.Get("/web/movimientos/{numero}", s.movements)
			r.Post("/web/solicitar-cuenta", s.requestAccount)
			r.Get("/web/beneficiarios", s.beneficiaries)
			r.Post("/web/beneficiarios", s.addBeneficiary)
		})

		r.Post("/admin/cuentas/{numero}/aprobar", s.approve)
	})

	return r
}

func metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		telemetry.SandboxRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
	})
}
