package controllers

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/gradfolio/storefront/internal/pkg/backend"
	"github.com/gradfolio/storefront/internal/pkg/metrics/counter"
	"github.com/gradfolio/storefront/internal/pkg/session"
	"github.com/gradfolio/storefront/internal/pkg/viewmodel"
)

// HandleTemplateIndex renders the full catalog, optionally filtered by the
// ?category= query parameter.
func HandleTemplateIndex(c *fiber.Ctx) error {
	return renderCatalog(c, c.Query("category"))
}

// HandleCategory renders the catalog filtered to one category.
func HandleCategory(c *fiber.Ctx) error {
	return renderCatalog(c, c.Params("id"))
}

func renderCatalog(c *fiber.Ctx, categoryID string) error {
	ctx, cancel := requestContext()
	defer cancel()

	var templates []backend.Template
	var err error
	if categoryID == "" {
		templates, err = cachedTemplates(ctx)
	} else {
		templates, err = apiClient.ListTemplates(ctx, categoryID)
	}
	if err != nil {
		log.Printf("catalog fetch failed: %v", err)
		return c.Status(fiber.StatusBadGateway).Render("catalog", fiber.Map{
			"Page":      "templates",
			"Title":     "Templates - Gradfolio",
			"Msg":       flash.Get(c),
			"LoadError": "Failed to load templates. Please try again.",
		}, "layouts/main")
	}

	categories, err := apiClient.ListCategories(ctx)
	if err != nil {
		// The filter bar is optional; the page still works without it.
		log.Printf("categories fetch failed: %v", err)
	}

	cards := make([]viewmodel.TemplateCard, 0, len(templates))
	for _, t := range templates {
		cards = append(cards, viewmodel.NewTemplateCard(t))
	}

	return c.Render("catalog", fiber.Map{
		"Page":       "templates",
		"Title":      "Templates - Gradfolio",
		"Msg":        flash.Get(c),
		"Templates":  cards,
		"Categories": categories,
		"CategoryID": categoryID,
	}, "layouts/main")
}

// HandleTemplateShow renders a template's detail page with reviews, related
// templates and the buy form.
func HandleTemplateShow(c *fiber.Ctx) error {
	id := c.Params("id")
	if _, err := strconv.Atoi(id); err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Template not found.")
	}

	ctx, cancel := requestContext()
	defer cancel()

	tpl, err := apiClient.GetTemplate(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return c.Status(fiber.StatusNotFound).SendString("Template not found.")
		}
		log.Printf("template fetch failed: %v", err)
		return c.Status(fiber.StatusBadGateway).SendString("Failed to load template details.")
	}

	if err := counter.AddTemplateView(id); err != nil {
		log.Printf("view counter failed for template %s: %v", id, err)
	}
	views, _ := counter.TemplateViews(id)

	related := relatedTemplates(tpl)

	return c.Render("template_detail", fiber.Map{
		"Page":         "template",
		"Title":        tpl.Title + " - Gradfolio",
		"Msg":          flash.Get(c),
		"Template":     viewmodel.NewTemplateDetail(*tpl, views),
		"Related":      related,
		"PrefillEmail": session.GetSessionValue(c, SessionKeyBuyerEmail),
		"PrefillPhone": session.GetSessionValue(c, SessionKeyBuyerPhone),
		"CSRFToken":    csrfToken(c),
	}, "layouts/main")
}

// relatedTemplates returns up to three other templates from the same
// category. Failures are tolerated: the section is simply omitted.
func relatedTemplates(tpl *backend.Template) []viewmodel.TemplateCard {
	if tpl.Category == nil {
		return nil
	}

	ctx, cancel := requestContext()
	defer cancel()

	templates, err := apiClient.ListTemplates(ctx, strconv.Itoa(tpl.Category.ID))
	if err != nil {
		log.Printf("related templates fetch failed: %v", err)
		return nil
	}

	var cards []viewmodel.TemplateCard
	for _, t := range templates {
		if t.ID == tpl.ID {
			continue
		}
		cards = append(cards, viewmodel.NewTemplateCard(t))
		if len(cards) == 3 {
			break
		}
	}
	return cards
}
