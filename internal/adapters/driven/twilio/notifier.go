// Package twilio delivers alert messages as SMS through the Twilio REST API.
package twilio

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/custodia-labs/ecobin-cli/internal/core/domain"
	"github.com/custodia-labs/ecobin-cli/internal/core/ports/driven"
)

// Ensure Notifier implements the interface.
var _ driven.Notifier = (*Notifier)(nil)

// DefaultTimeout bounds a single send request.
const DefaultTimeout = 15 * time.Second

const messagesPath = "/2010-04-01/Accounts/{sid}/Messages.json"

// Notifier sends SMS messages from one number to one recipient.
type Notifier struct {
	client  *resty.Client
	cfg     domain.TwilioSettings
	limiter *RateLimiter
	now     func() time.Time
}

// NewNotifier creates a Twilio notifier.
func NewNotifier(cfg domain.TwilioSettings) *Notifier {
	base := cfg.BaseURL
	if base == "" {
		base = domain.DefaultTwilioURL
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(base, "/")).
		SetTimeout(DefaultTimeout).
		SetHeader("Accept", "application/json")

	return &Notifier{
		client:  client,
		cfg:     cfg,
		limiter: NewRateLimiter(DefaultRateLimit),
		now:     time.Now,
	}
}

// Name returns the notifier name.
func (n *Notifier) Name() string {
	return "twilio"
}

type messageResponse struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Send posts the message body and returns the message SID.
func (n *Notifier) Send(ctx context.Context, body string) (*domain.Receipt, error) {
	if !n.cfg.IsConfigured() {
		return nil, fmt.Errorf("twilio credentials incomplete: %w", domain.ErrNotifierUnavailable)
	}

	if err := n.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := n.client.R().
		SetContext(ctx).
		SetBasicAuth(n.cfg.AccountSID, n.cfg.AuthToken).
		SetPathParam("sid", n.cfg.AccountSID).
		SetFormData(map[string]string{
			"Body": body,
			"From": n.cfg.From,
			"To":   n.cfg.To,
		}).
		SetResult(&messageResponse{}).
		SetError(&errorResponse{}).
		Post(messagesPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNotifierUnavailable, err)
	}

	switch {
	case resp.StatusCode() == http.StatusTooManyRequests:
		n.limiter.RecordRateLimitError(retryAfter(resp.Header().Get("Retry-After")))
		return nil, domain.ErrRateLimited
	case resp.StatusCode() >= http.StatusInternalServerError:
		return nil, fmt.Errorf("%w: status %d", domain.ErrNotifierUnavailable, resp.StatusCode())
	case resp.IsError():
		msg := http.StatusText(resp.StatusCode())
		if apiErr, ok := resp.Error().(*errorResponse); ok && apiErr.Message != "" {
			msg = fmt.Sprintf("%s (code %d)", apiErr.Message, apiErr.Code)
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrNotifierRejected, msg)
	}

	msg, ok := resp.Result().(*messageResponse)
	if !ok || msg == nil || msg.SID == "" {
		return nil, fmt.Errorf("%w: response carried no message sid", domain.ErrNotifierRejected)
	}

	return &domain.Receipt{MessageID: msg.SID, SentAt: n.now()}, nil
}

// retryAfter parses a Retry-After header given in seconds.
func retryAfter(header string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(header))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
