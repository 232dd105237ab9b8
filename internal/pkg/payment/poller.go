package payment

import (
	"context"
	"fmt"
	"time"
)

const (
	// DefaultPollInterval is how often the backend is re-queried while a
	// payment is still pending. Webhook-driven verification usually lands
	// within a few seconds.
	DefaultPollInterval = 5 * time.Second

	// DefaultMaxConsecutiveFailures is how many transport failures in a row
	// the poller tolerates before giving up. Individual failures are
	// transient (the webhook may simply not have landed yet and the network
	// may flap), but half a minute of nothing but errors means the buyer
	// should be told instead of spinning forever.
	DefaultMaxConsecutiveFailures = 6
)

// StatusClient fetches the current payment outcome for an order.
// Implemented by the backend API client.
type StatusClient interface {
	PaymentStatus(ctx context.Context, orderID string) (Outcome, error)
}

// Tick is one observation of an order's payment state. Either Outcome is
// set, or Err carries a transport-level failure for this tick. A transport
// failure is never a FAILED payment: the two are distinct outcomes.
type Tick struct {
	Outcome Outcome
	Err     error
}

// Poller re-queries the backend for an order's payment status on a fixed
// interval until a terminal status is observed or the watcher is cancelled.
type Poller struct {
	Client StatusClient

	// Interval between ticks; DefaultPollInterval when zero.
	Interval time.Duration
	// MaxConsecutiveFailures before the poller emits an ErrTooManyFailures
	// tick and stops; DefaultMaxConsecutiveFailures when zero.
	MaxConsecutiveFailures int
}

func NewPoller(client StatusClient) *Poller {
	return &Poller{
		Client:                 client,
		Interval:               DefaultPollInterval,
		MaxConsecutiveFailures: DefaultMaxConsecutiveFailures,
	}
}

func (p *Poller) interval() time.Duration {
	if p.Interval > 0 {
		return p.Interval
	}
	return DefaultPollInterval
}

func (p *Poller) maxFailures() int {
	if p.MaxConsecutiveFailures > 0 {
		return p.MaxConsecutiveFailures
	}
	return DefaultMaxConsecutiveFailures
}

// Watch polls the order's payment status and delivers one Tick per
// observation on the returned channel. The first tick is issued
// immediately, later ones on the poll interval. Requests are strictly
// serialized: a new request is never issued while one is in flight.
//
// The channel is closed — and the timer stopped — once a terminal status
// has been delivered, after MaxConsecutiveFailures transport errors in a
// row (the last tick then carries ErrTooManyFailures), or when ctx is
// cancelled. After cancellation no further tick is delivered, even if an
// in-flight request resolves later.
//
// A malformed order id fails fast with ErrInvalidRequest; no polling
// starts.
func (p *Poller) Watch(ctx context.Context, orderID string) (<-chan Tick, error) {
	if !ValidOrderID(orderID) {
		return nil, fmt.Errorf("%w: bad order id %q", ErrInvalidRequest, orderID)
	}

	ticks := make(chan Tick)
	go func() {
		defer close(ticks)

		ticker := time.NewTicker(p.interval())
		defer ticker.Stop()

		failures := 0
		for {
			outcome, err := p.Client.PaymentStatus(ctx, orderID)
			if ctx.Err() != nil {
				// Cancelled while the request was in flight; the response,
				// if any, must not be delivered.
				return
			}

			var tick Tick
			final := false
			if err != nil {
				failures++
				if failures >= p.maxFailures() {
					tick = Tick{Err: fmt.Errorf("%w: %v", ErrTooManyFailures, err)}
					final = true
				} else {
					tick = Tick{Err: fmt.Errorf("%w: %v", ErrTransport, err)}
				}
			} else {
				failures = 0
				tick = Tick{Outcome: outcome}
				final = outcome.Status.Terminal()
			}

			select {
			case ticks <- tick:
			case <-ctx.Done():
				return
			}
			if final {
				return
			}

			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ticks, nil
}
