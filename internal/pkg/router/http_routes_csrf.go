package router

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"

	"github.com/gradfolio/storefront/app/controllers"
	"github.com/gradfolio/storefront/internal/pkg/env"
)

func (h HttpRouter) registerCSRFProtectedRoutes(app *fiber.App) {
	csrfConf := csrf.Config{
		KeyLookup:      "form:_csrf",
		ContextKey:     "csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Expiration:     1 * time.Hour,
		CookieSecure:   !env.IsDev(),
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/")
		},
	}

	group := app.Group("", cors.New(), csrf.New(csrfConf))
	group.Get("/", controllers.HandleHome)

	// Detail page carries the buy and review forms, so it sits in the
	// group and gets a token minted on GET.
	group.Get("/template/:id", controllers.HandleTemplateShow)

	// Purchase flow
	group.Post("/template/:id/checkout", controllers.HandleCheckout)

	// Reviews
	group.Post("/template/:id/reviews", controllers.HandleReviewSubmit)

	// Support
	group.Get("/support", controllers.HandleSupportForm)
	group.Post("/support", controllers.HandleSupportSubmit)
	group.Get("/support/track", controllers.HandleSupportTrackForm)
	group.Post("/support/track", controllers.HandleSupportTrack)
}
