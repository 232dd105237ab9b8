package payment

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Full purchase flow: initiate a session, hand it to the launcher exactly
// once, recover the order id from the return URL as the redirect would, and
// poll until the payment succeeds.
func TestPurchaseFlowEndToEnd(t *testing.T) {
	sessions := &fakeSessionClient{token: "sess_abc", orderID: "ord_9"}
	launcher := &fakeLauncher{available: true}
	init := NewInitiator(sessions, launcher)

	session, err := init.Initiate(context.Background(), "tpl_1", "a@b.com", "")
	require.NoError(t, err)

	redirect, err := launcher.Launch(session, ReturnURL("https://gradfolio.example", session.OrderID))
	require.NoError(t, err)
	require.Len(t, launcher.launches, 1, "the single-use token may be launched exactly once")

	// Simulate the hosted checkout redirecting back: the order id in the
	// return URL is the only state that survives.
	u, err := url.Parse(redirect)
	require.NoError(t, err)
	back, err := url.Parse(u.Query().Get("return_url"))
	require.NoError(t, err)
	orderID := back.Query().Get("order_id")
	require.Equal(t, "ord_9", orderID)

	statuses := &scriptedStatusClient{responses: []statusResponse{
		{outcome: Outcome{OrderID: orderID, Status: StatusPending}},
		{outcome: Outcome{OrderID: orderID, Status: StatusSuccess}},
	}}
	poller := &Poller{Client: statuses, Interval: time.Millisecond}

	ticks, err := poller.Watch(context.Background(), orderID)
	require.NoError(t, err)

	var last DisplayState
	for tick := range ticks {
		last = Present(tick)
	}
	assert.Equal(t, DisplaySucceeded, last.Kind)
}
