package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/gradfolio/storefront/app/controllers"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	// Payment status polling for the status page script
	api.Get("/payments/:orderID/status", controllers.HandlePaymentStatusAPI)
	api.Get("/payments/:orderID/wait", controllers.HandlePaymentWait)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
