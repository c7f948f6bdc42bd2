package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Zhima-Mochi/minishop-pos/internal/domain/product"
	"github.com/Zhima-Mochi/minishop-pos/internal/observability"
	"github.com/Zhima-Mochi/minishop-pos/internal/observability/logctx"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	productsPath    = "/Products.json"
	remotePeer      = "catalog"
	endpointList    = "products.list"
	defaultTimeout  = 5 * time.Second
	maxResponseSize = 1 << 20
)

type productListResponse struct {
	Products []product.Product `json:"products"`
}

// RemoteSource fetches the product list from an HTTP endpoint serving
// {"products":[{"code":..,"name":..,"price":..}]}.
type RemoteSource struct {
	baseURL string
	client  *http.Client
	log     observability.Logger
	tracer  observability.Tracer
	extReq  observability.Counter
	extDur  observability.Histogram
}

func NewRemoteSource(baseURL string, timeout time.Duration, tel observability.Observability) *RemoteSource {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if tel == nil {
		tel = observability.Nop()
	}
	return &RemoteSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		log:     tel.Logger().With(observability.F("component", "catalog_client")),
		tracer:  tel.Tracer(),
		extReq:  tel.Metrics().Counter(observability.MExternalRequests),
		extDur:  tel.Metrics().Histogram(observability.MExternalRequestDuration),
	}
}

func (s *RemoteSource) Products(ctx context.Context) (_ []product.Product, err error) {
	url := s.baseURL + productsPath
	ctx, span := s.tracer.Start(ctx, "HTTP GET "+endpointList,
		attribute.String("peer.service", remotePeer),
		attribute.String("http.url", url),
	)
	start := time.Now()
	defer func() {
		outcome := "success"
		if err != nil {
			outcome = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, "CATALOG_FETCH_FAILED")
		} else {
			span.SetStatus(codes.Ok, "OK")
		}
		span.End()
		s.extReq.Add(1,
			observability.L("peer", remotePeer),
			observability.L("endpoint", endpointList),
			observability.L("outcome", outcome),
		)
		s.extDur.Observe(time.Since(start).Seconds(),
			observability.L("peer", remotePeer),
			observability.L("endpoint", endpointList),
		)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: fetch: %w", err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("catalog: unexpected status %d", resp.StatusCode)
	}

	var body productListResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&body); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}

	logger := logctx.FromOr(ctx, s.log)
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		logger = logger.With(observability.F("trace_id", sc.TraceID().String()))
	}
	logger.Debug("catalog_fetched",
		observability.F("products", len(body.Products)),
		observability.F("latency_ms", time.Since(start).Milliseconds()),
	)
	return body.Products, nil
}
