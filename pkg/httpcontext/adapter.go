package httpcontext

import (
	"context"
	"time"

	"github.com/google/uuid"

	appLogger "github.com/fastygo/trucar/pkg/logger"
)

// Adapter derives per-request contexts for outgoing API calls: a deadline and a
// request ID that is both logged and sent to the backend.
type Adapter struct {
	timeout time.Duration
}

// NewAdapter constructs a new Adapter using the provided timeout.
func NewAdapter(timeout time.Duration) *Adapter {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Adapter{
		timeout: timeout,
	}
}

// Timeout returns the per-request timeout.
func (a *Adapter) Timeout() time.Duration {
	return a.timeout
}

// Attach returns a child of parent bounded by the adapter timeout and carrying
// a request ID. An ID already present on parent is kept. A deadline on parent
// that is earlier than the adapter timeout wins.
func (a *Adapter) Attach(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}

	stdCtx, cancel := context.WithTimeout(parent, a.timeout)

	if appLogger.RequestID(stdCtx) == "" {
		stdCtx = appLogger.ContextWithRequestID(stdCtx, uuid.NewString())
	}

	return stdCtx, cancel
}

// Deadline returns the effective deadline of ctx, falling back to now+timeout.
func (a *Adapter) Deadline(ctx context.Context) time.Time {
	if ctx != nil {
		if deadline, ok := ctx.Deadline(); ok {
			return deadline
		}
	}
	return time.Now().Add(a.timeout)
}
