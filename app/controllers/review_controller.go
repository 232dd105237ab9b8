package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/gradfolio/storefront/internal/pkg/backend"
	"github.com/gradfolio/storefront/internal/pkg/cache"
	"github.com/gradfolio/storefront/internal/pkg/constants"
)

type reviewForm struct {
	User    string `form:"user" validate:"required,max=100"`
	Rating  int    `form:"rating" validate:"required,min=1,max=5"`
	Comment string `form:"comment" validate:"required,max=2000"`
}

// HandleReviewSubmit handles the review form on the template detail page.
func HandleReviewSubmit(c *fiber.Ctx) error {
	templateID := c.Params("id")
	templatePath := constants.TemplateRoute + "/" + templateID

	var form reviewForm
	if err := c.BodyParser(&form); err != nil {
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "Invalid review form.",
		}).Redirect(templatePath, fiber.StatusSeeOther)
	}
	if err := validate.Struct(&form); err != nil {
		msg := "Please fill in your name, a rating between 1 and 5, and a comment."
		if form.Rating == 0 {
			msg = "Please select a rating."
		}
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": msg,
		}).Redirect(templatePath, fiber.StatusSeeOther)
	}

	ctx, cancel := requestContext()
	defer cancel()

	_, err := apiClient.SubmitReview(ctx, backend.ReviewInput{
		TemplateID: templateID,
		User:       form.User,
		Rating:     form.Rating,
		Comment:    form.Comment,
	})
	if err != nil {
		log.Printf("review submit failed for template %s: %v", templateID, err)
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": backendErrorMessage(err),
		}).Redirect(templatePath, fiber.StatusSeeOther)
	}

	// The catalog cache now carries a stale average rating; drop it.
	_ = cache.Delete(catalogCacheKey)

	return flash.WithSuccess(c, fiber.Map{
		"type":    "success",
		"message": "Review submitted successfully!",
	}).Redirect(templatePath, fiber.StatusSeeOther)
}
