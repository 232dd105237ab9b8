package viewmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gradfolio/storefront/internal/pkg/backend"
)

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "₹499.00", FormatPrice("499"))
	assert.Equal(t, "₹499.50", FormatPrice("499.5"))
	assert.Equal(t, "₹0.00", FormatPrice("not-a-price"))
	assert.Equal(t, "₹0.00", FormatPrice(""))
}

func TestTopReviewsOrderingAndCap(t *testing.T) {
	reviews := []backend.Review{
		{User: "a", Rating: 3, Date: "2024-01-01"},
		{User: "b", Rating: 5, Date: "2024-01-02"},
		{User: "c", Rating: 5, Date: "2024-03-01"},
		{User: "d", Rating: 4, Date: "2024-02-01"},
		{User: "e", Rating: 1, Date: "2024-04-01"},
		{User: "f", Rating: 2, Date: "2024-05-01"},
	}

	top := TopReviews(reviews, 5)
	assert.Len(t, top, 5)
	// Best rating first, newest first within the same rating.
	assert.Equal(t, "c", top[0].User)
	assert.Equal(t, "b", top[1].User)
	assert.Equal(t, "d", top[2].User)
	assert.Equal(t, "a", top[3].User)

	// The input slice must not be reordered.
	assert.Equal(t, "a", reviews[0].User)
}

func TestNewTemplateCard(t *testing.T) {
	card := NewTemplateCard(backend.Template{
		ID:            7,
		Title:         "Minimal Resume",
		Price:         "499.00",
		AverageRating: 4.4,
		Category:      &backend.Category{ID: 2, Name: "Resumes"},
	})
	assert.Equal(t, "₹499.00", card.PriceDisplay)
	assert.Equal(t, "Resumes", card.CategoryName)
	assert.Equal(t, 4, card.Stars)

	uncategorized := NewTemplateCard(backend.Template{ID: 8, Title: "X", Price: "1"})
	assert.Empty(t, uncategorized.CategoryName)
}
