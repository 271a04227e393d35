// Package vehicle is the outbound client for the vehicle information service.
//
// Every failure is returned as a *ProviderError so callers can log the
// category and carry on without vehicle data.
package vehicle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"

	"insurance/internal/insurance/models"
	"insurance/internal/platform/config"
	"insurance/pkg/platform/circuit"
)

const (
	DefaultTimeout = 5 * time.Second
	DefaultPath    = "/api/v1/vehicles/"

	maxBodyBytes = 1 << 20
)

var tracer = otel.Tracer("insurance/vehicle")

// Client fetches vehicle information by registration number.
type Client struct {
	baseURL string
	path    string
	http    *http.Client
	limiter *rate.Limiter
	breaker *circuit.Breaker
	logger  *slog.Logger
	metrics *Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for breaker transitions.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithMetrics enables call metrics.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithBreaker replaces the default circuit breaker.
func WithBreaker(b *circuit.Breaker) Option {
	return func(c *Client) {
		c.breaker = b
	}
}

// WithTransport sets the base transport underneath the Basic auth layer.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.http.Transport = rt
	}
}

// New builds a client from cfg. Credentials are attached by the transport
// and never pass through callers.
func New(cfg config.VehicleConfig, opts ...Option) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("vehicle service base URL is required")
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("parse vehicle service base URL: %w", err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	path := cfg.Path
	if path == "" {
		path = DefaultPath
	}
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}

	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		path:    path,
		http:    &http.Client{Timeout: timeout},
		breaker: circuit.New("vehicle-service"),
		logger:  slog.Default(),
	}
	if cfg.RatePerSecond > 0 {
		burst := int(cfg.RatePerSecond)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), burst)
	}
	for _, opt := range opts {
		opt(c)
	}
	c.http.Transport = newTransport(cfg.Username, cfg.Password, c.http.Transport)
	return c, nil
}

// Fetch returns the vehicle registered under registrationNumber.
func (c *Client) Fetch(ctx context.Context, registrationNumber string) (*models.VehicleInfo, error) {
	ctx, span := tracer.Start(ctx, "vehicle.Fetch")
	defer span.End()
	span.SetAttributes(attribute.String("vehicle.registration_number", registrationNumber))

	start := time.Now()
	info, err := c.fetch(ctx, registrationNumber)
	result := "ok"
	if err != nil {
		result = string(GetCategory(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, result)
	}
	c.metrics.observeCall(result, start)
	return info, err
}

func (c *Client) fetch(ctx context.Context, registrationNumber string) (*models.VehicleInfo, error) {
	if !c.breaker.Allow() {
		return nil, NewProviderError(ErrorProviderOutage, "vehicle service circuit is open", ErrCircuitOpen)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, NewProviderError(ErrorRateLimited, "wait for rate limiter", err)
		}
	}

	info, err := c.do(ctx, registrationNumber)
	c.record(err)
	return info, err
}

func (c *Client) do(ctx context.Context, registrationNumber string) (*models.VehicleInfo, error) {
	endpoint := c.baseURL + c.path + url.PathEscape(registrationNumber)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, NewProviderError(ErrorInternal, "create request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, NewProviderError(transportCategory(err), "send request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		pe := NewProviderError(categoryForStatus(resp.StatusCode), fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
		pe.StatusCode = resp.StatusCode
		return nil, pe
	}

	var info *models.VehicleInfo
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&info); err != nil {
		return nil, NewProviderError(ErrorBadData, "decode response", err)
	}
	if info == nil {
		return nil, NewProviderError(ErrorBadData, "empty vehicle response", nil)
	}
	return info, nil
}

// record feeds the call result to the breaker. Only retryable failures count
// against it; a 404 proves the service is healthy.
func (c *Client) record(err error) {
	var change circuit.Change
	if err != nil && IsRetryable(err) {
		_, change = c.breaker.RecordFailure()
	} else {
		_, change = c.breaker.RecordSuccess()
	}
	switch {
	case change.Opened:
		c.logger.Warn("vehicle service circuit opened", "breaker", c.breaker.Name(), "error", err)
		c.metrics.setCircuitOpen(true)
	case change.Closed:
		c.logger.Info("vehicle service circuit closed", "breaker", c.breaker.Name())
		c.metrics.setCircuitOpen(false)
	}
}

func transportCategory(err error) ErrorCategory {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrorTimeout
	}
	return ErrorProviderOutage
}
