package controllers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/gradfolio/storefront/internal/pkg/backend"
	"github.com/gradfolio/storefront/internal/pkg/constants"
)

type supportForm struct {
	Email       string `form:"email" validate:"required,email"`
	InquiryType string `form:"inquiry_type" validate:"required,oneof=PAYMENT_FAILURE PAYMENT_STATUS TEMPLATE_DOWNLOAD GENERAL"`
	Description string `form:"description" validate:"required,max=5000"`
	OrderID     string `form:"order_id" validate:"omitempty,max=128"`
}

type trackForm struct {
	InquiryID string `form:"inquiry_id" validate:"required,max=64"`
	Email     string `form:"email" validate:"required,email"`
}

// HandleSupportForm renders the support inquiry form.
func HandleSupportForm(c *fiber.Ctx) error {
	return c.Render("support", fiber.Map{
		"Page":      "support",
		"Title":     "Contact Support - Gradfolio",
		"Msg":       flash.Get(c),
		"Form":      supportForm{InquiryType: backend.InquiryGeneral},
		"CSRFToken": csrfToken(c),
	}, "layouts/main")
}

// HandleSupportSubmit submits an inquiry to the backend and flashes the
// tracking id on success.
func HandleSupportSubmit(c *fiber.Ctx) error {
	var form supportForm
	if err := c.BodyParser(&form); err != nil {
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "Invalid support form.",
		}).Redirect(constants.SupportRoute, fiber.StatusSeeOther)
	}
	if err := validate.Struct(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).Render("support", fiber.Map{
			"Page":      "support",
			"Title":     "Contact Support - Gradfolio",
			"Msg":       fiber.Map{"type": "error", "message": "Please provide a valid email, an inquiry type and a description."},
			"Form":      form,
			"CSRFToken": csrfToken(c),
		}, "layouts/main")
	}

	ctx, cancel := requestContext()
	defer cancel()

	inquiryID, err := apiClient.SubmitInquiry(ctx, backend.InquiryInput{
		Email:       form.Email,
		InquiryType: form.InquiryType,
		Description: form.Description,
		OrderID:     form.OrderID,
	})
	if err != nil {
		log.Printf("support inquiry submit failed: %v", err)
		return c.Status(fiber.StatusBadGateway).Render("support", fiber.Map{
			"Page":      "support",
			"Title":     "Contact Support - Gradfolio",
			"Msg":       fiber.Map{"type": "error", "message": backendErrorMessage(err)},
			"Form":      form,
			"CSRFToken": csrfToken(c),
		}, "layouts/main")
	}

	return flash.WithSuccess(c, fiber.Map{
		"type":       "success",
		"message":    "Inquiry submitted! Your tracking ID is " + inquiryID + ".",
		"inquiry_id": inquiryID,
	}).Redirect(constants.SupportTrackRoute, fiber.StatusSeeOther)
}

// HandleSupportTrackForm renders the inquiry tracking form.
func HandleSupportTrackForm(c *fiber.Ctx) error {
	return c.Render("support_track", fiber.Map{
		"Page":      "support-track",
		"Title":     "Track Support Inquiry - Gradfolio",
		"Msg":       flash.Get(c),
		"Form":      trackForm{},
		"CSRFToken": csrfToken(c),
	}, "layouts/main")
}

// HandleSupportTrack looks an inquiry up and renders it in place.
func HandleSupportTrack(c *fiber.Ctx) error {
	var form trackForm
	if err := c.BodyParser(&form); err != nil || validate.Struct(&form) != nil {
		return c.Status(fiber.StatusBadRequest).Render("support_track", fiber.Map{
			"Page":      "support-track",
			"Title":     "Track Support Inquiry - Gradfolio",
			"Msg":       fiber.Map{"type": "error", "message": "Please provide your inquiry ID and the email you used."},
			"Form":      form,
			"CSRFToken": csrfToken(c),
		}, "layouts/main")
	}

	ctx, cancel := requestContext()
	defer cancel()

	inquiry, err := apiClient.TrackInquiry(ctx, form.InquiryID, form.Email)
	if err != nil {
		log.Printf("support inquiry lookup failed for %s: %v", form.InquiryID, err)
		msg := backendErrorMessage(err)
		status := fiber.StatusBadGateway
		if isNotFound(err) {
			msg = "No inquiry found for that ID and email."
			status = fiber.StatusNotFound
		}
		return c.Status(status).Render("support_track", fiber.Map{
			"Page":      "support-track",
			"Title":     "Track Support Inquiry - Gradfolio",
			"Msg":       fiber.Map{"type": "error", "message": msg},
			"Form":      form,
			"CSRFToken": csrfToken(c),
		}, "layouts/main")
	}

	return c.Render("support_track", fiber.Map{
		"Page":      "support-track",
		"Title":     "Track Support Inquiry - Gradfolio",
		"Msg":       flash.Get(c),
		"Form":      form,
		"Inquiry":   inquiry,
		"CSRFToken": csrfToken(c),
	}, "layouts/main")
}
