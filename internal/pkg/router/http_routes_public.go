package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gradfolio/storefront/app/controllers"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	// Catalog browsing
	app.Get("/templates", controllers.HandleTemplateIndex)
	app.Get("/category/:id", controllers.HandleCategory)

	// Post-payment pages. /payment-status is the hosted checkout's return
	// target; the order id in the query string is the whole hand-off.
	app.Get("/payment-status", controllers.HandlePaymentStatus)
	app.Get("/thank-you", controllers.HandleThankYou)
}
