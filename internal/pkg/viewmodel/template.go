package viewmodel

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/gradfolio/storefront/internal/pkg/backend"
)

// TemplateCard is the catalog-card projection of a backend template.
type TemplateCard struct {
	ID            int
	Title         string
	Description   string
	PriceDisplay  string
	Image         string
	CategoryName  string
	AverageRating float64
	Stars         int
}

// TemplateDetail is the full template page projection.
type TemplateDetail struct {
	TemplateCard
	AdditionalImages []string
	LivePreviewURL   string
	Features         []string
	TechStack        []string
	TopReviews       []backend.Review
	Views            int64
}

// NewTemplateCard maps a backend template onto its card projection.
func NewTemplateCard(t backend.Template) TemplateCard {
	card := TemplateCard{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		PriceDisplay:  FormatPrice(t.Price.String()),
		Image:         t.Image,
		AverageRating: t.AverageRating,
		Stars:         int(t.AverageRating + 0.5),
	}
	if t.Category != nil {
		card.CategoryName = t.Category.Name
	}
	return card
}

// NewTemplateDetail maps a backend template onto the detail page
// projection. Reviews are ordered best-rated first, newest breaking ties,
// and capped at five.
func NewTemplateDetail(t backend.Template, views int64) TemplateDetail {
	detail := TemplateDetail{
		TemplateCard:     NewTemplateCard(t),
		AdditionalImages: t.AdditionalImages,
		LivePreviewURL:   t.LivePreviewURL,
		Features:         t.Features,
		TechStack:        t.TechStack,
		TopReviews:       TopReviews(t.Reviews, 5),
		Views:            views,
	}
	return detail
}

// TopReviews returns the best reviews: highest rating first, newest first
// within the same rating (ISO dates sort lexicographically).
func TopReviews(reviews []backend.Review, limit int) []backend.Review {
	sorted := make([]backend.Review, len(reviews))
	copy(sorted, reviews)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Rating != sorted[j].Rating {
			return sorted[i].Rating > sorted[j].Rating
		}
		return sorted[i].Date > sorted[j].Date
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// FormatPrice renders a backend price value as a rupee amount with two
// decimals. Unparseable values fall back to zero rather than breaking the
// page.
func FormatPrice(raw string) string {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		v = 0
	}
	return fmt.Sprintf("₹%.2f", v)
}
