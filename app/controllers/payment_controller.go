package controllers

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/gradfolio/storefront/internal/pkg/cache"
	"github.com/gradfolio/storefront/internal/pkg/constants"
	"github.com/gradfolio/storefront/internal/pkg/env"
	"github.com/gradfolio/storefront/internal/pkg/payment"
	"github.com/gradfolio/storefront/internal/pkg/session"
)

const (
	lastStatusKeyPrefix = "payment:last_state:"
	lastStatusTTL       = time.Hour

	// How long the /wait endpoint holds the request open before answering
	// with the latest non-terminal state.
	waitDeadline = 25 * time.Second
)

// HandleCheckout handles the "Buy Now" form submit: it validates the
// buyer's contact details, mints a payment session and redirects the
// browser to the hosted checkout page. Every failure redirects back to the
// template page with a flash message; a retry always mints a fresh session.
func HandleCheckout(c *fiber.Ctx) error {
	templateID := c.Params("id")
	templatePath := constants.TemplateRoute + "/" + templateID

	email := strings.TrimSpace(c.FormValue("email"))
	phone := strings.TrimSpace(c.FormValue("phone"))

	// Keep the typed contact details so the form is prefilled on retry.
	_ = session.SetSessionValue(c, SessionKeyBuyerEmail, email)
	_ = session.SetSessionValue(c, SessionKeyBuyerPhone, phone)

	ctx, cancel := requestContext()
	defer cancel()

	checkoutSession, err := initiator.Initiate(ctx, templateID, email, phone)
	if err != nil {
		log.Printf("payment initiation failed for template %s: %v", templateID, err)
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": payment.UserMessage(err),
		}).Redirect(templatePath, fiber.StatusSeeOther)
	}

	returnURL := payment.ReturnURL(publicBaseURL(c), checkoutSession.OrderID)
	redirect, err := launcher.Launch(checkoutSession, returnURL)
	if err != nil {
		// The session token is lost with this attempt; the retry goes
		// through Initiate again for a fresh one.
		log.Printf("checkout launch failed for order %s: %v", checkoutSession.OrderID, err)
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": payment.UserMessage(err),
		}).Redirect(templatePath, fiber.StatusSeeOther)
	}

	_ = session.SetSessionValue(c, SessionKeyLastOrderID, checkoutSession.OrderID)

	return c.Redirect(redirect, fiber.StatusSeeOther)
}

// HandlePaymentStatus renders the post-payment status page. The order id
// arrives via the hosted checkout's return URL and is the only state that
// survived the redirect. While the outcome is not terminal the page
// refreshes itself on the poll interval.
func HandlePaymentStatus(c *fiber.Ctx) error {
	orderID := strings.TrimSpace(c.Query("order_id"))

	var state payment.DisplayState
	if !payment.ValidOrderID(orderID) {
		state = payment.PresentError(payment.ErrInvalidRequest)
	} else {
		state = snapshotDisplayState(orderID)
	}

	return c.Render("payment_status", fiber.Map{
		"Page":            "payment-status",
		"Title":           "Payment Status - Gradfolio",
		"Msg":             flash.Get(c),
		"OrderID":         orderID,
		"State":           state.Kind,
		"Message":         state.Message,
		"RetryTemplateID": state.RetryTemplateID,
		"Refresh":         payment.ValidOrderID(orderID) && !state.Done(),
		"RefreshSeconds":  int(payment.DefaultPollInterval / time.Second),
	}, "layouts/main")
}

// HandlePaymentStatusAPI returns a single status snapshot as JSON.
func HandlePaymentStatusAPI(c *fiber.Ctx) error {
	orderID := c.Params("orderID")
	if !payment.ValidOrderID(orderID) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_request",
			"message": payment.UserMessage(payment.ErrInvalidRequest),
		})
	}
	return c.JSON(displayStateJSON(snapshotDisplayState(orderID)))
}

// HandlePaymentWait long-polls the payment status: it watches the order
// until a terminal state arrives or the wait deadline passes, then answers
// with the latest display state. Cancelling the request (client gone,
// deadline) deterministically stops the watcher.
func HandlePaymentWait(c *fiber.Ctx) error {
	orderID := c.Params("orderID")

	ctx, cancel := context.WithTimeout(c.UserContext(), waitDeadline)
	defer cancel()

	ticks, err := poller.Watch(ctx, orderID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_request",
			"message": payment.UserMessage(err),
		})
	}

	state := payment.Processing()
	for tick := range ticks {
		state = payment.Present(tick)
		rememberDisplayState(orderID, state)
		if state.Done() {
			break
		}
	}
	return c.JSON(displayStateJSON(state))
}

// snapshotDisplayState fetches one status observation and maps it for
// display. On a transport error the last successfully displayed state is
// restored from the cache for continuity — a network problem on our side
// must never look like a failed (or successful) payment.
func snapshotDisplayState(orderID string) payment.DisplayState {
	ctx, cancel := requestContext()
	defer cancel()

	outcome, err := apiClient.PaymentStatus(ctx, orderID)
	if err != nil {
		log.Printf("payment status fetch failed for order %s: %v", orderID, err)
		if last, ok := lastDisplayState(orderID); ok {
			return last
		}
		return payment.Present(payment.Tick{Err: err})
	}

	state := payment.Present(payment.Tick{Outcome: outcome})
	rememberDisplayState(orderID, state)
	return state
}

func rememberDisplayState(orderID string, state payment.DisplayState) {
	raw, err := json.Marshal(state)
	if err != nil {
		return
	}
	_ = cache.Set(lastStatusKeyPrefix+orderID, string(raw), lastStatusTTL)
}

func lastDisplayState(orderID string) (payment.DisplayState, bool) {
	raw, err := cache.Get(lastStatusKeyPrefix + orderID)
	if err != nil || raw == "" {
		return payment.DisplayState{}, false
	}
	var state payment.DisplayState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return payment.DisplayState{}, false
	}
	return state, true
}

func displayStateJSON(state payment.DisplayState) fiber.Map {
	return fiber.Map{
		"state":             state.Kind,
		"message":           state.Message,
		"retry_template_id": state.RetryTemplateID,
	}
}

// publicBaseURL is where the hosted checkout sends the buyer back to.
func publicBaseURL(c *fiber.Ctx) string {
	if base := env.GetEnv("PUBLIC_DOMAIN", ""); base != "" {
		return base
	}
	return c.Protocol() + "://" + c.Hostname()
}
