package payment

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want Status
	}{
		{in: "SUCCESS", want: StatusSuccess},
		{in: "success", want: StatusSuccess},
		{in: " FAILED ", want: StatusFailed},
		{in: "PENDING", want: StatusPending},
		{in: "", want: StatusPending},
		{in: "REFUNDED", want: StatusPending},
		{in: "garbage", want: StatusPending},
	}

	for _, tt := range tests {
		if got := ParseStatus(tt.in); got != tt.want {
			t.Fatalf("ParseStatus(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPresentSuccess(t *testing.T) {
	state := Present(Tick{Outcome: Outcome{OrderID: "ord_9", Status: StatusSuccess}})
	assert.Equal(t, DisplaySucceeded, state.Kind)
	assert.True(t, state.Done())
}

func TestPresentFailedCarriesRetryTemplate(t *testing.T) {
	state := Present(Tick{Outcome: Outcome{Status: StatusFailed, RetryTemplateID: "42"}})
	assert.Equal(t, DisplayFailed, state.Kind)
	assert.Equal(t, "42", state.RetryTemplateID)
	assert.True(t, state.Done())
}

func TestPresentFailedWithoutRetryTemplate(t *testing.T) {
	state := Present(Tick{Outcome: Outcome{Status: StatusFailed}})
	assert.Equal(t, DisplayFailed, state.Kind)
	assert.Empty(t, state.RetryTemplateID)
}

func TestPresentUnrecognizedStatusIsPendingNeverSucceeded(t *testing.T) {
	state := Present(Tick{Outcome: Outcome{Status: ParseStatus("REFUNDED")}})
	assert.Equal(t, DisplayPending, state.Kind)
	assert.False(t, state.Done())
}

func TestPresentTransientTransportErrorIsPending(t *testing.T) {
	state := Present(Tick{Err: fmt.Errorf("%w: connection reset", ErrTransport)})
	assert.Equal(t, DisplayPending, state.Kind)
	assert.False(t, state.Done())
}

func TestPresentGiveUpIsError(t *testing.T) {
	state := Present(Tick{Err: fmt.Errorf("%w: connection reset", ErrTooManyFailures)})
	assert.Equal(t, DisplayError, state.Kind)
	assert.True(t, state.Done())
	assert.NotEmpty(t, state.Message)
}

func TestPresentErrorTaxonomyMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: fmt.Errorf("%w: bad email", ErrValidation), want: "Please enter a valid email address."},
		{err: ErrGatewayUnavailable, want: "Payment gateway not loaded. Please reload the page and try again."},
		{err: fmt.Errorf("%w: no token", ErrSessionUnavailable), want: "We could not start your payment. Please try again."},
		{err: &RejectionError{Reason: "insufficient funds"}, want: "insufficient funds"},
		{err: &RejectionError{}, want: "The payment was declined. Please try again."},
		{err: fmt.Errorf("%w: dial tcp", ErrTransport), want: "We could not reach the payment service. Please check your connection and try again."},
		{err: fmt.Errorf("%w: bad id", ErrInvalidRequest), want: "Invalid payment request."},
	}

	for _, tt := range tests {
		state := PresentError(tt.err)
		require.Equal(t, DisplayError, state.Kind)
		assert.Equal(t, tt.want, state.Message)
	}
}
