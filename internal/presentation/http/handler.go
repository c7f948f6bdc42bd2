package httppresentation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Zhima-Mochi/minishop-pos/internal/application"
	appShop "github.com/Zhima-Mochi/minishop-pos/internal/application/shop"
	domainCart "github.com/Zhima-Mochi/minishop-pos/internal/domain/cart"
	"github.com/Zhima-Mochi/minishop-pos/internal/observability"
	"github.com/Zhima-Mochi/minishop-pos/internal/observability/logctx"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

type Handler struct {
	shopService    *appShop.Service
	changeQuantity application.UseCase[appShop.ChangeQuantityCommand, *appShop.Snapshot]
	log            observability.Logger
	tel            observability.Observability
}

const (
	componentHTTPHandler = "http_server"
	headerRequestID      = "X-Request-ID"
	headerTenantID       = "X-Tenant-ID"
	tracerName           = "minishop-pos.http"
)

func NewHandler(
	shopSvc *appShop.Service,
	changeQuantity application.UseCase[appShop.ChangeQuantityCommand, *appShop.Snapshot],
	tel observability.Observability,
) *Handler {
	if tel == nil {
		tel = observability.Nop()
	}
	return &Handler{
		shopService:    shopSvc,
		changeQuantity: changeQuantity,
		log:            tel.Logger().With(observability.F("component", componentHTTPHandler)),
		tel:            tel,
	}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	// Trace → request logger + HTTP metrics → access log → handler
	h.handle(r, http.MethodPost, "/carts", h.handleOpenCart)
	h.handle(r, http.MethodGet, "/carts/{cartID}", h.handleGetCart)
	h.handle(r, http.MethodDelete, "/carts/{cartID}", h.handleCloseCart)
	h.handle(r, http.MethodPost, "/carts/{cartID}/items/{code}/{action}", h.handleChangeQuantity)
	h.handle(r, http.MethodGet, "/deals/{code}", h.handleDeals)
	h.handle(r, http.MethodGet, "/promotions", h.handlePromotions)
	h.handle(r, http.MethodGet, "/health", h.handleHealth)

	return r
}

func (h *Handler) handle(r chi.Router, method, route string, handler http.HandlerFunc) {
	wrapped := h.withTrace(
		ObservabilityMiddleware(
			h.log,
			func(r *http.Request) string { return r.Header.Get(headerRequestID) },
			func(r *http.Request) string { return r.Header.Get(headerTenantID) },
			h.tel,
		)(
			h.withAccessLog(handler),
		),
	)
	template := method + " " + route
	r.Method(method, route, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		wrapped.ServeHTTP(w, req.WithContext(contextWithRoute(req.Context(), template)))
	}))
}

type openCartResponse struct {
	CartID string `json:"cart_id"`
}

func (h *Handler) handleOpenCart(w http.ResponseWriter, r *http.Request) {
	id, err := h.shopService.OpenCart(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, openCartResponse{CartID: id})
}

func (h *Handler) handleGetCart(w http.ResponseWriter, r *http.Request) {
	snap, err := h.shopService.Snapshot(r.Context(), chi.URLParam(r, "cartID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newCartResponse(snap))
}

func (h *Handler) handleCloseCart(w http.ResponseWriter, r *http.Request) {
	if err := h.shopService.CloseCart(r.Context(), chi.URLParam(r, "cartID")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleChangeQuantity(w http.ResponseWriter, r *http.Request) {
	action, err := domainCart.ParseAction(chi.URLParam(r, "action"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	snap, err := h.changeQuantity.Execute(r.Context(), appShop.ChangeQuantityCommand{
		CartID: chi.URLParam(r, "cartID"),
		Code:   chi.URLParam(r, "code"),
		Action: action,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newCartResponse(snap))
}

type dealsResponse struct {
	Code  string   `json:"code"`
	Deals []string `json:"deals"`
}

func (h *Handler) handleDeals(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	deals := h.shopService.Deals(code)
	if deals == nil {
		deals = []string{}
	}
	writeJSON(w, http.StatusOK, dealsResponse{Code: code, Deals: deals})
}

func (h *Handler) handlePromotions(w http.ResponseWriter, _ *http.Request) {
	rules := h.shopService.Promotions()
	out := make([]promotionResponse, 0, len(rules))
	for _, r := range rules {
		out = append(out, newPromotionResponse(r))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// withAccessLog writes a single access log after the handler completes.
// It relies on the request-scoped logger already injected by ObservabilityMiddleware.
func (h *Handler) withAccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lrw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(lrw, r)

		logctx.FromOr(r.Context(), h.log).Info("http_access",
			observability.F("method", r.Method),
			observability.F("route", routeFromContext(r.Context())),
			observability.F("path", r.URL.Path),
			observability.F("status", lrw.status),
			observability.F("latency_ms", time.Since(start).Milliseconds()),
		)
	})
}

// withTrace creates a server span for the request using OTel and W3C propagation.
func (h *Handler) withTrace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parentCtx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

		route := routeFromContext(parentCtx)
		spanName := route
		if spanName == "unknown" {
			spanName = r.Method + " " + r.URL.Path
		}

		ctxWithSpan, span := otel.Tracer(tracerName).Start(parentCtx,
			spanName,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.route", route),
				attribute.String("http.target", r.URL.Path),
				attribute.String("http.user_agent", r.UserAgent()),
			),
		)
		defer span.End()

		next.ServeHTTP(w, r.WithContext(ctxWithSpan))
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, appShop.ErrCartNotFound),
		errors.Is(err, appShop.ErrUnknownProduct):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, domainCart.ErrInvalidAction):
		writeError(w, http.StatusBadRequest, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

type routeKey struct{}

// contextWithRoute stores the stable route template in the context so downstream
// metrics/logging can rely on low-cardinality values.
func contextWithRoute(ctx context.Context, route string) context.Context {
	if route == "" {
		return ctx
	}
	return context.WithValue(ctx, routeKey{}, route)
}

func routeFromContext(ctx context.Context) string {
	if ctx == nil {
		return "unknown"
	}
	if route, ok := ctx.Value(routeKey{}).(string); ok && route != "" {
		return route
	}
	return "unknown"
}
