package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// SessionClient mints a hosted-checkout session at the backend. Implemented
// by the backend API client.
type SessionClient interface {
	InitiatePayment(ctx context.Context, templateID, email, phone string) (sessionToken string, orderID string, err error)
}

// gatewayReasoner is implemented by backend errors that carry a rejection
// reason from the payment provider.
type gatewayReasoner interface {
	GatewayReason() string
}

// Initiator collects buyer contact info and requests a payment session for
// a template. It performs no retries itself: a session token is single-use,
// so every retry has to go through Initiate again.
type Initiator struct {
	Client   SessionClient
	Launcher CheckoutLauncher

	validate *validator.Validate
}

func NewInitiator(client SessionClient, launcher CheckoutLauncher) *Initiator {
	return &Initiator{
		Client:   client,
		Launcher: launcher,
		validate: validator.New(),
	}
}

// Initiate validates the buyer's email, checks that the checkout launcher
// is usable, and requests a session from the backend. Validation failures
// return ErrValidation before any network call is made. The returned
// session must immediately be handed to the launcher or discarded.
func (i *Initiator) Initiate(ctx context.Context, templateID, email, phone string) (*Session, error) {
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)

	if templateID = strings.TrimSpace(templateID); templateID == "" {
		return nil, fmt.Errorf("%w: missing template id", ErrValidation)
	}
	if err := i.validate.Var(email, "required,email"); err != nil {
		return nil, fmt.Errorf("%w: malformed email %q", ErrValidation, email)
	}

	// Check launcher availability before minting a session so we never burn
	// a single-use token against an unusable gateway.
	if i.Launcher == nil || !i.Launcher.Available() {
		return nil, ErrGatewayUnavailable
	}

	token, orderID, err := i.Client.InitiatePayment(ctx, templateID, email, phone)
	if err != nil {
		var gw gatewayReasoner
		if errors.As(err, &gw) {
			if reason := strings.TrimSpace(gw.GatewayReason()); reason != "" {
				return nil, &RejectionError{Reason: reason}
			}
		}
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("%w: backend returned no session token", ErrSessionUnavailable)
	}
	if strings.TrimSpace(orderID) == "" {
		return nil, fmt.Errorf("%w: backend returned no order id", ErrSessionUnavailable)
	}

	return &Session{
		TemplateID:   templateID,
		BuyerEmail:   email,
		BuyerPhone:   phone,
		SessionToken: token,
		OrderID:      orderID,
	}, nil
}
