// Package console provides a notifier that prints alerts instead of sending them.
package console

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/ecobin-cli/internal/core/domain"
	"github.com/custodia-labs/ecobin-cli/internal/core/ports/driven"
)

// Ensure Notifier implements the interface.
var _ driven.Notifier = (*Notifier)(nil)

const frameWidth = 60

// Notifier writes each message to a writer in a framed block.
type Notifier struct {
	mu  sync.Mutex
	w   io.Writer
	to  string
	now func() time.Time
}

// NewNotifier creates a console notifier. The recipient is shown in the
// frame header and may be empty.
func NewNotifier(w io.Writer, to string) *Notifier {
	return &Notifier{w: w, to: to, now: time.Now}
}

// Name returns the notifier name.
func (n *Notifier) Name() string {
	return "console"
}

// Send prints the message and returns a synthetic message SID.
func (n *Notifier) Send(ctx context.Context, body string) (*domain.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	now := n.now()
	sid := fmt.Sprintf("SM%d", now.Unix())

	to := n.to
	if to == "" {
		to = "(not configured)"
	}

	rule := strings.Repeat("=", frameWidth)
	_, err := fmt.Fprintf(n.w, "\n%s\nSIMULATED SMS SEND\n%s\nTo: %s\nTime: %s\n%s\n%s\n%s\nMessage sent. SID: %s\n",
		rule, rule, to, now.Format(time.DateTime), strings.Repeat("-", frameWidth), body, rule, sid)
	if err != nil {
		return nil, fmt.Errorf("writing message: %w", err)
	}

	return &domain.Receipt{MessageID: sid, SentAt: now}, nil
}
