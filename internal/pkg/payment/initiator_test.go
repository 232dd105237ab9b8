package payment

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessionClient struct {
	calls   int32
	token   string
	orderID string
	err     error
}

func (f *fakeSessionClient) InitiatePayment(ctx context.Context, templateID, email, phone string) (string, string, error) {
	atomic.AddInt32(&f.calls, 1)
	return f.token, f.orderID, f.err
}

type fakeLauncher struct {
	available bool
	launches  []string // redirect URLs handed out
	lastURL   string
}

func (f *fakeLauncher) Available() bool { return f.available }

func (f *fakeLauncher) Launch(session *Session, returnURL string) (string, error) {
	if !f.available {
		return "", ErrGatewayUnavailable
	}
	url := "https://checkout.example/" + session.SessionToken + "?return_url=" + returnURL
	f.launches = append(f.launches, url)
	f.lastURL = url
	return url, nil
}

type rejectedError struct{ reason string }

func (e *rejectedError) Error() string         { return "backend: session rejected" }
func (e *rejectedError) GatewayReason() string { return e.reason }

func TestInitiateMalformedEmailNoNetworkCall(t *testing.T) {
	tests := []string{"", "   ", "not-an-email", "a@", "@b.com", "a b@c.com"}

	for _, email := range tests {
		client := &fakeSessionClient{token: "tok", orderID: "ord"}
		init := NewInitiator(client, &fakeLauncher{available: true})

		_, err := init.Initiate(context.Background(), "tpl_1", email, "")
		require.Error(t, err, "email %q", email)
		assert.True(t, errors.Is(err, ErrValidation), "email %q: got %v", email, err)
		assert.EqualValues(t, 0, atomic.LoadInt32(&client.calls), "email %q must not hit the network", email)
	}
}

func TestInitiateLauncherUnavailableBeforeNetwork(t *testing.T) {
	client := &fakeSessionClient{token: "tok", orderID: "ord"}
	init := NewInitiator(client, &fakeLauncher{available: false})

	_, err := init.Initiate(context.Background(), "tpl_1", "a@b.com", "")
	require.ErrorIs(t, err, ErrGatewayUnavailable)
	assert.EqualValues(t, 0, atomic.LoadInt32(&client.calls))
}

func TestInitiateSuccess(t *testing.T) {
	client := &fakeSessionClient{token: "sess_abc", orderID: "ord_9"}
	init := NewInitiator(client, &fakeLauncher{available: true})

	session, err := init.Initiate(context.Background(), "tpl_1", "a@b.com", "+91 9999999999")
	require.NoError(t, err)
	assert.Equal(t, "tpl_1", session.TemplateID)
	assert.Equal(t, "a@b.com", session.BuyerEmail)
	assert.Equal(t, "+91 9999999999", session.BuyerPhone)
	assert.Equal(t, "sess_abc", session.SessionToken)
	assert.Equal(t, "ord_9", session.OrderID)
	assert.EqualValues(t, 1, atomic.LoadInt32(&client.calls))
}

func TestInitiateGatewayRejectedSurfacesReason(t *testing.T) {
	client := &fakeSessionClient{err: &rejectedError{reason: "card country not supported"}}
	init := NewInitiator(client, &fakeLauncher{available: true})

	_, err := init.Initiate(context.Background(), "tpl_1", "a@b.com", "")
	require.ErrorIs(t, err, ErrGatewayRejected)
	assert.Equal(t, "card country not supported", UserMessage(err))
}

func TestInitiateRejectionWithoutReasonIsTransport(t *testing.T) {
	client := &fakeSessionClient{err: &rejectedError{reason: ""}}
	init := NewInitiator(client, &fakeLauncher{available: true})

	_, err := init.Initiate(context.Background(), "tpl_1", "a@b.com", "")
	require.ErrorIs(t, err, ErrTransport)
}

func TestInitiateNetworkErrorIsTransport(t *testing.T) {
	client := &fakeSessionClient{err: errors.New("dial tcp: connection refused")}
	init := NewInitiator(client, &fakeLauncher{available: true})

	_, err := init.Initiate(context.Background(), "tpl_1", "a@b.com", "")
	require.ErrorIs(t, err, ErrTransport)
	assert.NotErrorIs(t, err, ErrGatewayRejected)
}

func TestInitiateEmptyTokenIsSessionUnavailable(t *testing.T) {
	client := &fakeSessionClient{token: "", orderID: "ord_9"}
	init := NewInitiator(client, &fakeLauncher{available: true})

	_, err := init.Initiate(context.Background(), "tpl_1", "a@b.com", "")
	require.ErrorIs(t, err, ErrSessionUnavailable)
}

func TestInitiateEmptyOrderIDIsSessionUnavailable(t *testing.T) {
	client := &fakeSessionClient{token: "sess_abc", orderID: ""}
	init := NewInitiator(client, &fakeLauncher{available: true})

	_, err := init.Initiate(context.Background(), "tpl_1", "a@b.com", "")
	require.ErrorIs(t, err, ErrSessionUnavailable)
}
