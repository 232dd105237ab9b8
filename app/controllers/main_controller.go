package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"

	"github.com/gradfolio/storefront/internal/pkg/viewmodel"
)

type testimonial struct {
	Name   string
	Role   string
	Quote  string
	Rating int
}

type faqEntry struct {
	Question string
	Answer   string
}

var homeTestimonials = []testimonial{
	{Name: "Aisha K.", Role: "Computer Science Student", Quote: "This template helped me land my first internship!", Rating: 5},
	{Name: "Liam M.", Role: "Graphic Design Major", Quote: "Finally, a template that doesn't look like everyone else's.", Rating: 4},
}

var homeFAQs = []faqEntry{
	{Question: "Can I edit the templates?", Answer: "Yes! Our templates are designed to be easily editable."},
	{Question: "Are these templates affordable?", Answer: "Absolutely. We offer student-friendly pricing."},
	{Question: "Will my portfolio stand out?", Answer: "Unlike generic templates, ours are crafted for students."},
}

// HandleHome renders the landing page with the first three catalog
// templates as featured cards.
func HandleHome(c *fiber.Ctx) error {
	ctx, cancel := requestContext()
	defer cancel()

	var cards []viewmodel.TemplateCard
	loadError := ""
	templates, err := cachedTemplates(ctx)
	if err != nil {
		loadError = "Failed to load templates. Please try again."
	} else {
		if len(templates) > 3 {
			templates = templates[:3]
		}
		for _, t := range templates {
			cards = append(cards, viewmodel.NewTemplateCard(t))
		}
	}

	return c.Render("home", fiber.Map{
		"Page":         "home",
		"Title":        "Gradfolio - Portfolio & Resume Templates for Students",
		"Msg":          flash.Get(c),
		"Featured":     cards,
		"LoadError":    loadError,
		"Testimonials": homeTestimonials,
		"FAQs":         homeFAQs,
	}, "layouts/main")
}

// HandleThankYou renders the post-purchase landing page.
func HandleThankYou(c *fiber.Ctx) error {
	return c.Render("thank_you", fiber.Map{
		"Page":  "thank-you",
		"Title": "Thank You - Gradfolio",
		"Msg":   flash.Get(c),
	}, "layouts/main")
}
