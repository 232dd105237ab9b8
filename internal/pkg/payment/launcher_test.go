package payment

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReturnURLEmbedsOrderID(t *testing.T) {
	got := ReturnURL("https://gradfolio.example/", "ord_1_1746426398")
	assert.Equal(t, "https://gradfolio.example/payment-status?order_id=ord_1_1746426398", got)

	// Hostile order ids must stay inside the query value.
	got = ReturnURL("https://gradfolio.example", "a&b=c")
	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "a&b=c", u.Query().Get("order_id"))
}

func TestCashfreeLauncherLaunch(t *testing.T) {
	launcher := &CashfreeLauncher{
		Mode:        "sandbox",
		CheckoutURL: "https://payments-test.cashfree.com/pg/view/sessions/checkout/web",
	}
	require.True(t, launcher.Available())

	session := &Session{SessionToken: "sess_abc", OrderID: "ord_9"}
	redirect, err := launcher.Launch(session, ReturnURL("https://gradfolio.example", "ord_9"))
	require.NoError(t, err)

	u, err := url.Parse(redirect)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(u.Path, "/sess_abc"))
	assert.Contains(t, u.Query().Get("return_url"), "order_id=ord_9")
}

func TestCashfreeLauncherMissingToken(t *testing.T) {
	launcher := &CashfreeLauncher{Mode: "sandbox", CheckoutURL: "https://payments-test.cashfree.com/pg"}

	_, err := launcher.Launch(&Session{}, "https://gradfolio.example/payment-status?order_id=x")
	require.ErrorIs(t, err, ErrSessionUnavailable)
}

func TestCashfreeLauncherUnavailable(t *testing.T) {
	tests := []CashfreeLauncher{
		{Mode: "live", CheckoutURL: "https://payments.cashfree.com/pg"},
		{Mode: "sandbox", CheckoutURL: ""},
		{Mode: "sandbox", CheckoutURL: "://bad"},
	}

	for _, launcher := range tests {
		l := launcher
		assert.False(t, l.Available(), "%+v", l)
		_, err := l.Launch(&Session{SessionToken: "sess"}, "https://x/payment-status?order_id=1")
		assert.ErrorIs(t, err, ErrGatewayUnavailable)
	}
}

func TestNewCashfreeLauncherFromEnvDefaults(t *testing.T) {
	t.Setenv("CASHFREE_MODE", "")
	t.Setenv("CASHFREE_CHECKOUT_URL", "")

	launcher := NewCashfreeLauncherFromEnv()
	assert.Equal(t, "sandbox", launcher.Mode)
	assert.Equal(t, defaultCashfreeSandboxURL, launcher.CheckoutURL)
	assert.True(t, launcher.Available())

	t.Setenv("CASHFREE_MODE", "production")
	launcher = NewCashfreeLauncherFromEnv()
	assert.Equal(t, defaultCashfreeProductionURL, launcher.CheckoutURL)
}
