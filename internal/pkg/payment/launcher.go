package payment

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gradfolio/storefront/internal/pkg/env"
)

const (
	defaultCashfreeSandboxURL    = "https://payments-test.cashfree.com/pg/view/sessions/checkout/web"
	defaultCashfreeProductionURL = "https://payments.cashfree.com/pg/view/sessions/checkout/web"
)

// CheckoutLauncher hands a freshly minted session off to the external
// hosted-checkout page. It is a capability injected into the checkout flow
// so tests can substitute a fake instead of probing a global gateway object.
type CheckoutLauncher interface {
	// Available reports whether the launcher is usable at all. The
	// initiator checks this before minting a session.
	Available() bool
	// Launch consumes the session's single-use token and returns the URL of
	// the hosted payment page. The return URL must carry the order id, since
	// no other client state survives the redirect.
	Launch(session *Session, returnURL string) (string, error)
}

// CashfreeLauncher builds redirect URLs for Cashfree's hosted checkout.
type CashfreeLauncher struct {
	Mode        string // "sandbox" or "production"
	CheckoutURL string
}

func NewCashfreeLauncherFromEnv() *CashfreeLauncher {
	mode := strings.ToLower(strings.TrimSpace(env.GetEnv("CASHFREE_MODE", "sandbox")))
	checkoutURL := strings.TrimSpace(env.GetEnv("CASHFREE_CHECKOUT_URL", ""))
	if checkoutURL == "" {
		if mode == "production" {
			checkoutURL = defaultCashfreeProductionURL
		} else {
			checkoutURL = defaultCashfreeSandboxURL
		}
	}
	return &CashfreeLauncher{
		Mode:        mode,
		CheckoutURL: checkoutURL,
	}
}

func (l *CashfreeLauncher) Available() bool {
	if l.Mode != "sandbox" && l.Mode != "production" {
		return false
	}
	u, err := url.Parse(l.CheckoutURL)
	return err == nil && u.Scheme != "" && u.Host != ""
}

func (l *CashfreeLauncher) Launch(session *Session, returnURL string) (string, error) {
	if !l.Available() {
		return "", ErrGatewayUnavailable
	}
	if session == nil || strings.TrimSpace(session.SessionToken) == "" {
		return "", fmt.Errorf("%w: missing session token", ErrSessionUnavailable)
	}

	u, err := url.Parse(strings.TrimRight(l.CheckoutURL, "/") + "/" + url.PathEscape(session.SessionToken))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	q := u.Query()
	q.Set("return_url", returnURL)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ReturnURL builds the post-payment redirect target. The order id embedded
// in the query string is the only datum the status page can recover after
// the hosted checkout navigates away.
func ReturnURL(publicBase, orderID string) string {
	return strings.TrimRight(publicBase, "/") + "/payment-status?order_id=" + url.QueryEscape(orderID)
}
