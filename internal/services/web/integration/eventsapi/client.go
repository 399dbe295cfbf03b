// Package eventsapi is the REST client for the events backend. It attaches the
// caller's bearer token, maps HTTP failures onto typed web errors and decodes
// every payload into one canonical shape.
package eventsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/meninasdigitais/eventos/internal/platform/timeouts"
	"github.com/meninasdigitais/eventos/internal/services/shared/authctx"
	apperrors "github.com/meninasdigitais/eventos/internal/services/web/platform/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	tracerName      = "github.com/meninasdigitais/eventos/internal/services/web/integration/eventsapi"
	defaultMaxPages = 20
)

// Options configures a Client.
type Options struct {
	BaseURL string
	Timeout time.Duration
	// Location is the zone of legacy wall-clock date and time fields.
	Location   *time.Location
	HTTPClient *http.Client
	MaxPages   int
}

// Client calls the events backend.
type Client struct {
	http     *resty.Client
	decode   decoder
	tracer   trace.Tracer
	maxPages int
}

// New builds a Client for the backend at opts.BaseURL.
func New(opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("backend base url is required")
	}
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		return nil, fmt.Errorf("backend base url %q must be http or https", opts.BaseURL)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = timeouts.BackendRequest
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	maxPages := opts.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}
	rc := resty.NewWithClient(hc).
		SetBaseURL(base).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &Client{
		http:     rc,
		decode:   newDecoder(opts.Location),
		tracer:   otel.Tracer(tracerName),
		maxPages: maxPages,
	}, nil
}

// call describes one backend request. Route is the templated path used as
// the span name; Path is the concrete path or absolute URL.
type call struct {
	method string
	route  string
	path   string
	build  func(*resty.Request)
}

func (c *Client) do(ctx context.Context, in call) (*resty.Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := c.tracer.Start(ctx, in.method+" "+in.route,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(semconv.HTTPRequestMethodKey.String(in.method)),
	)
	defer span.End()

	req := c.http.R().SetContext(ctx)
	if token, ok := authctx.AccessToken(ctx); ok {
		req.SetAuthToken(token)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
	if in.build != nil {
		in.build(req)
	}

	resp, err := req.Execute(in.method, in.path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "transport failure")
		return nil, apperrors.Wrap(apperrors.KindUnavailable, "errors.backend_unavailable", in.method+" "+in.route, err)
	}
	span.SetAttributes(semconv.HTTPResponseStatusCode(resp.StatusCode()))
	if resp.StatusCode() >= http.StatusBadRequest {
		span.SetStatus(codes.Error, http.StatusText(resp.StatusCode()))
		return resp, statusError(in, resp)
	}
	return resp, nil
}

func statusError(in call, resp *resty.Response) error {
	status := resp.StatusCode()
	detail := problemDetail(resp.Body())
	message := fmt.Sprintf("%s %s: status %d", in.method, in.route, status)
	if detail != "" {
		message = detail
	}
	switch {
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return apperrors.EK(apperrors.KindInvalidInput, "errors.backend_rejected", message)
	case status == http.StatusUnauthorized:
		return apperrors.EK(apperrors.KindUnauthorized, "errors.session_expired", message)
	case status == http.StatusForbidden:
		return apperrors.EK(apperrors.KindForbidden, "errors.forbidden", message)
	case status == http.StatusNotFound:
		return apperrors.EK(apperrors.KindNotFound, "errors.not_found", message)
	case status == http.StatusConflict:
		return apperrors.EK(apperrors.KindConflict, "errors.conflict", message)
	case status == http.StatusTooManyRequests:
		return apperrors.EK(apperrors.KindTooManyRequests, "errors.too_many_requests", message)
	case status >= http.StatusInternalServerError:
		return apperrors.EK(apperrors.KindUnavailable, "errors.backend_unavailable", message)
	}
	return apperrors.E(apperrors.KindUnknown, message)
}

// problemDetail extracts FastAPI style {"detail": ...} text. Validation
// failures carry a list of {"msg": ...} entries.
func problemDetail(body []byte) string {
	var problem wireProblem
	if err := json.Unmarshal(body, &problem); err != nil || len(problem.Detail) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(problem.Detail, &text); err == nil {
		return strings.TrimSpace(text)
	}
	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(problem.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, item := range items {
			if msg := strings.TrimSpace(item.Msg); msg != "" {
				msgs = append(msgs, msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}

func decodeBody[W any](resp *resty.Response, what string) (W, error) {
	var wire W
	if err := json.Unmarshal(resp.Body(), &wire); err != nil {
		return wire, apperrors.Wrap(apperrors.KindUnavailable, "errors.backend_unavailable", "decode "+what, err)
	}
	return wire, nil
}

// decodeList accepts a bare JSON array or an {"items": [...]} envelope.
func decodeList[W any](resp *resty.Response, what string) ([]W, error) {
	body := resp.Body()
	var list []W
	if err := json.Unmarshal(body, &list); err == nil {
		return list, nil
	}
	var envelope struct {
		Items []W `json:"items"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, apperrors.Wrap(apperrors.KindUnavailable, "errors.backend_unavailable", "decode "+what+" list", err)
	}
	return envelope.Items, nil
}
