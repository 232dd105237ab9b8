package payment

import (
	"errors"
	"fmt"
)

// Failure taxonomy for the purchase flow. Every error here is scoped to the
// current purchase attempt and maps to a distinct user-displayable message;
// none is fatal to the application.
var (
	// ErrValidation: bad local input, caught before any network call.
	ErrValidation = errors.New("invalid buyer input")
	// ErrSessionUnavailable: backend answered but without a usable session token.
	ErrSessionUnavailable = errors.New("payment session unavailable")
	// ErrGatewayRejected: the backend surfaced a rejection reason from the
	// payment provider.
	ErrGatewayRejected = errors.New("payment gateway rejected the session")
	// ErrGatewayUnavailable: the checkout launcher is not usable; checked
	// before minting a session so a single-use token is never burned.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	// ErrTransport: network-level failure or an unexplained non-2xx response.
	ErrTransport = errors.New("payment service unreachable")
	// ErrInvalidRequest: absent or malformed order id; the purchase flow has
	// to be restarted.
	ErrInvalidRequest = errors.New("invalid payment request")
	// ErrTooManyFailures: polling gave up after too many consecutive
	// transport failures.
	ErrTooManyFailures = errors.New("payment status checks kept failing")
)

// RejectionError carries the provider's reason text for a rejected session.
// It matches ErrGatewayRejected via errors.Is.
type RejectionError struct {
	Reason string
}

func (e *RejectionError) Error() string {
	if e.Reason == "" {
		return ErrGatewayRejected.Error()
	}
	return fmt.Sprintf("%s: %s", ErrGatewayRejected.Error(), e.Reason)
}

func (e *RejectionError) Unwrap() error {
	return ErrGatewayRejected
}

// UserMessage maps a purchase-flow error onto the message shown to the
// buyer. A gateway rejection surfaces the provider's reason when present,
// otherwise a generic retry prompt.
func UserMessage(err error) string {
	var rej *RejectionError
	if errors.As(err, &rej) && rej.Reason != "" {
		return rej.Reason
	}

	switch {
	case errors.Is(err, ErrValidation):
		return "Please enter a valid email address."
	case errors.Is(err, ErrSessionUnavailable):
		return "We could not start your payment. Please try again."
	case errors.Is(err, ErrGatewayRejected):
		return "The payment was declined. Please try again."
	case errors.Is(err, ErrGatewayUnavailable):
		return "Payment gateway not loaded. Please reload the page and try again."
	case errors.Is(err, ErrTooManyFailures):
		return "We could not verify your payment right now. Please check back later or contact support."
	case errors.Is(err, ErrTransport):
		return "We could not reach the payment service. Please check your connection and try again."
	case errors.Is(err, ErrInvalidRequest):
		return "Invalid payment request."
	default:
		return "Something went wrong. Please try again."
	}
}
