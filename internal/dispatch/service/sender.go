package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"

	dispatchDomain "github.com/allisson/webhooks/internal/dispatch/domain"
	"github.com/allisson/webhooks/internal/metrics"
)

// errInvalidRequest marks failures that happen before anything is sent and will not improve on retry.
var errInvalidRequest = errors.New("invalid request")

// maxDrainBytes bounds how much of a response body is read to allow connection reuse.
const maxDrainBytes = 64 << 10

// HTTPSenderConfig holds the retry and timeout policy of an HTTPSender.
type HTTPSenderConfig struct {
	MaxRetries     int           // Total attempts per target, values below 1 mean a single attempt
	BaseDelay      time.Duration // Wait after the first failure, doubled after each further failure
	MaxDelay       time.Duration // Cap on a single wait, zero means uncapped
	RequestTimeout time.Duration // Bound on a single attempt, zero means unbounded
	UserAgent      string
}

// DefaultHTTPSenderConfig returns five attempts with a 500ms doubling backoff.
func DefaultHTTPSenderConfig() HTTPSenderConfig {
	return HTTPSenderConfig{
		MaxRetries:     5,
		BaseDelay:      500 * time.Millisecond,
		MaxDelay:       30 * time.Second,
		RequestTimeout: 10 * time.Second,
		UserAgent:      "webhooks-dispatcher",
	}
}

// HTTPSender POSTs the event payload as JSON and retries failed attempts with exponential backoff.
// It holds no per-send state and is safe for concurrent use.
type HTTPSender struct {
	client  *http.Client
	config  HTTPSenderConfig
	metrics metrics.DeliveryMetrics
	logger  *slog.Logger
	now     func() time.Time
}

// NewHTTPSender creates an HTTPSender. A nil client falls back to a client without a global timeout,
// attempts are bounded by RequestTimeout instead.
func NewHTTPSender(
	client *http.Client,
	config HTTPSenderConfig,
	deliveryMetrics metrics.DeliveryMetrics,
	logger *slog.Logger,
) *HTTPSender {
	if client == nil {
		client = &http.Client{}
	}
	if deliveryMetrics == nil {
		deliveryMetrics = metrics.NewNoOpDeliveryMetrics()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &HTTPSender{
		client:  client,
		config:  config,
		metrics: deliveryMetrics,
		logger:  logger,
		now:     time.Now,
	}
}

// Send delivers event to target and reports what happened.
func (s *HTTPSender) Send(
	ctx context.Context,
	target dispatchDomain.Target,
	event dispatchDomain.EventData,
) dispatchDomain.DeliveryOutcome {
	start := time.Now()
	outcome := dispatchDomain.DeliveryOutcome{
		SubscriptionID: target.SubscriptionID,
		TargetURL:      target.URL,
	}
	defer func() {
		s.metrics.RecordDelivery(ctx, outcome.Success, outcome.Attempts, outcome.Duration)
	}()

	body, err := json.Marshal(dispatchDomain.NewPayload(event, s.now()))
	if err != nil {
		outcome.Error = fmt.Sprintf("failed to encode payload: %v", err)
		outcome.Duration = time.Since(start)
		return outcome
	}

	err = retry.Do(ctx, s.backoff(), func(ctx context.Context) error {
		outcome.Attempts++

		statusCode, err := s.attempt(ctx, target.URL, body)
		outcome.StatusCode = statusCode
		if err != nil {
			outcome.Error = err.Error()
			if errors.Is(err, errInvalidRequest) {
				return err
			}
			s.logger.Debug("webhook attempt failed",
				slog.String("target_url", target.URL),
				slog.Int("attempt", outcome.Attempts),
				slog.Int("status_code", statusCode),
				slog.Any("error", err),
			)
			return retry.RetryableError(err)
		}

		outcome.Error = ""
		return nil
	})

	outcome.Success = err == nil
	outcome.Cancelled = !outcome.Success &&
		ctx.Err() != nil &&
		outcome.Attempts < s.maxAttempts() &&
		!errors.Is(err, errInvalidRequest)
	if outcome.Attempts == 0 {
		outcome.Error = dispatchDomain.CancelledError
	}
	outcome.Duration = time.Since(start)
	return outcome
}

// backoff builds a fresh backoff per send because go-retry backoffs count attempts internally.
func (s *HTTPSender) backoff() retry.Backoff {
	var b retry.Backoff
	if s.config.BaseDelay > 0 {
		b = retry.NewExponential(s.config.BaseDelay)
	} else {
		b = retry.BackoffFunc(func() (time.Duration, bool) {
			return 0, false
		})
	}
	if s.config.MaxDelay > 0 {
		b = retry.WithCappedDuration(s.config.MaxDelay, b)
	}

	return retry.WithMaxRetries(uint64(s.maxAttempts()-1), b)
}

// maxAttempts is the attempt budget per target, at least one.
func (s *HTTPSender) maxAttempts() int {
	return max(s.config.MaxRetries, 1)
}

// attempt performs one POST and returns the response status. Any non-2xx status is an error.
// The request is detached from caller cancellation so an attempt already on the wire settles
// on its own, bounded by RequestTimeout.
func (s *HTTPSender) attempt(ctx context.Context, url string, body []byte) (int, error) {
	reqCtx := context.WithoutCancel(ctx)
	if s.config.RequestTimeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(reqCtx, s.config.RequestTimeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", errInvalidRequest, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.config.UserAgent != "" {
		req.Header.Set("User-Agent", s.config.UserAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBytes))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return resp.StatusCode, fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}
	return resp.StatusCode, nil
}
