package backend

import "encoding/json"

// Category groups templates in the catalog.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Template is a catalog item as served by the backend API. Price is kept as
// json.Number because the backend serializes its decimal field as a string.
type Template struct {
	ID               int         `json:"id"`
	Title            string      `json:"title"`
	Description      string      `json:"description"`
	Price            json.Number `json:"price"`
	Image            string      `json:"image"`
	AdditionalImages []string    `json:"additional_images"`
	LivePreviewURL   string      `json:"live_preview_url"`
	Features         []string    `json:"features"`
	TechStack        []string    `json:"tech_stack"`
	Category         *Category   `json:"category"`
	AverageRating    float64     `json:"average_rating"`
	Reviews          []Review    `json:"reviews"`
}

// Review is a customer review attached to a template. Date stays an ISO
// string; it is only displayed and sorted, never computed with.
type Review struct {
	User    string `json:"user"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
	Date    string `json:"date"`
}

// ReviewInput is the payload for submitting a new review.
type ReviewInput struct {
	TemplateID string `json:"template"`
	User       string `json:"user"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
}

// Support inquiry types understood by the backend.
const (
	InquiryPaymentFailure   = "PAYMENT_FAILURE"
	InquiryPaymentStatus    = "PAYMENT_STATUS"
	InquiryTemplateDownload = "TEMPLATE_DOWNLOAD"
	InquiryGeneral          = "GENERAL"
)

// InquiryInput is the payload for opening a support inquiry.
type InquiryInput struct {
	Email       string `json:"email"`
	InquiryType string `json:"inquiry_type"`
	Description string `json:"description"`
	OrderID     string `json:"order_id,omitempty"`
}

// Inquiry is a stored support inquiry as returned by the tracking endpoint.
type Inquiry struct {
	InquiryID   string `json:"inquiry_id"`
	Email       string `json:"email"`
	InquiryType string `json:"inquiry_type"`
	Description string `json:"description"`
	OrderID     string `json:"order_id"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}
