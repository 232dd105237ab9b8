package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gradfolio/storefront/app/controllers"
	"github.com/gradfolio/storefront/internal/pkg/session"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// Wire controllers to the backend API and the checkout gateway
	controllers.Initialize()

	h.registerPublicRoutes(app)
	h.registerCSRFProtectedRoutes(app)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
