package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/gradfolio/storefront/internal/pkg/backend"
	"github.com/gradfolio/storefront/internal/pkg/cache"
	"github.com/gradfolio/storefront/internal/pkg/payment"
)

// Session keys for prefilling the checkout form across attempts.
const (
	SessionKeyBuyerEmail  = "buyer_email"
	SessionKeyBuyerPhone  = "buyer_phone"
	SessionKeyLastOrderID = "last_order_id"
)

const (
	catalogCacheKey = "catalog:templates"
	catalogCacheTTL = 60 * time.Second

	backendTimeout = 15 * time.Second
)

var (
	apiClient *backend.Client
	launcher  payment.CheckoutLauncher
	initiator *payment.Initiator
	poller    *payment.Poller

	validate = validator.New()
)

// Initialize wires the controllers to the backend API and the checkout
// gateway. Called once by the router during startup.
func Initialize() {
	apiClient = backend.NewClientFromEnv()
	launcher = payment.NewCashfreeLauncherFromEnv()
	initiator = payment.NewInitiator(apiClient, launcher)
	poller = payment.NewPoller(apiClient)
}

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), backendTimeout)
}

// cachedTemplates returns the catalog, served from the short-lived Redis
// cache when possible so every page view does not hammer the backend.
func cachedTemplates(ctx context.Context) ([]backend.Template, error) {
	if raw, err := cache.Get(catalogCacheKey); err == nil && raw != "" {
		var templates []backend.Template
		if err := json.Unmarshal([]byte(raw), &templates); err == nil {
			return templates, nil
		}
	}

	templates, err := apiClient.ListTemplates(ctx, "")
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(templates); err == nil {
		_ = cache.Set(catalogCacheKey, string(raw), catalogCacheTTL)
	}
	return templates, nil
}

// backendErrorMessage turns a backend call failure into something a page
// can show.
func backendErrorMessage(err error) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == fiber.StatusNotFound {
			return "Not found."
		}
		if msg := apiErr.Message(); msg != "" {
			return msg
		}
	}
	return "Something went wrong. Please try again."
}

// csrfToken returns the token minted by the csrf middleware for embedding
// in form pages.
func csrfToken(c *fiber.Ctx) string {
	token, _ := c.Locals("csrf").(string)
	return token
}

func isNotFound(err error) bool {
	var apiErr *backend.APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == fiber.StatusNotFound
}
