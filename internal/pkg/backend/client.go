package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gradfolio/storefront/internal/pkg/env"
	"github.com/gradfolio/storefront/internal/pkg/payment"
)

const defaultBaseURL = "http://localhost:8000"

// Client talks to the backend API that owns all business logic of record:
// catalog, pricing, payment sessions, payment verification, reviews and
// support inquiries. The storefront never decides any of that locally.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClientFromEnv() *Client {
	return &Client{
		BaseURL: strings.TrimRight(env.GetEnv("BACKEND_API_URL", defaultBaseURL), "/"),
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// APIError is a non-2xx response from the backend. The backend reports
// problems in a handful of payload shapes ({error}, {cashfree_error},
// {detail}); all are captured here.
type APIError struct {
	StatusCode    int
	ErrorMsg      string `json:"error"`
	CashfreeError string `json:"cashfree_error"`
	Detail        string `json:"detail"`
}

func (e *APIError) Error() string {
	msg := e.Message()
	if msg == "" {
		return fmt.Sprintf("backend request failed: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("backend request failed: status=%d message=%s", e.StatusCode, msg)
}

// Message returns the most specific message the backend provided.
func (e *APIError) Message() string {
	for _, m := range []string{e.CashfreeError, e.ErrorMsg, e.Detail} {
		if strings.TrimSpace(m) != "" {
			return strings.TrimSpace(m)
		}
	}
	return ""
}

// GatewayReason exposes the payment provider's rejection reason, when the
// backend surfaced one. The checkout initiator uses this to distinguish a
// gateway rejection from a plain transport failure.
func (e *APIError) GatewayReason() string {
	if strings.TrimSpace(e.CashfreeError) != "" {
		return strings.TrimSpace(e.CashfreeError)
	}
	return strings.TrimSpace(e.ErrorMsg)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any, out any) error {
	u, err := url.Parse(c.BaseURL + path)
	if err != nil {
		return fmt.Errorf("invalid backend URL: %w", err)
	}
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.Unmarshal(raw, apiErr)
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("malformed backend response: %w", err)
	}
	return nil
}

// ListTemplates fetches the catalog, optionally filtered by category id.
func (c *Client) ListTemplates(ctx context.Context, categoryID string) ([]Template, error) {
	var query url.Values
	if strings.TrimSpace(categoryID) != "" {
		query = url.Values{"category": {categoryID}}
	}
	var out []Template
	if err := c.do(ctx, http.MethodGet, "/api/templates/", query, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetTemplate fetches a single template with its reviews.
func (c *Client) GetTemplate(ctx context.Context, id string) (*Template, error) {
	var out Template
	if err := c.do(ctx, http.MethodGet, "/api/templates/"+url.PathEscape(id)+"/", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListCategories fetches all catalog categories.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := c.do(ctx, http.MethodGet, "/api/categories/", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// InitiatePayment asks the backend to mint a hosted-checkout session for
// the template. Implements payment.SessionClient.
func (c *Client) InitiatePayment(ctx context.Context, templateID, email, phone string) (string, string, error) {
	payload := map[string]string{"email": email}
	if strings.TrimSpace(phone) != "" {
		payload["phone"] = phone
	}

	var out struct {
		PaymentSessionID string `json:"payment_session_id"`
		OrderID          string `json:"order_id"`
	}
	path := "/api/templates/" + url.PathEscape(templateID) + "/initiate-payment/"
	if err := c.do(ctx, http.MethodPost, path, nil, payload, &out); err != nil {
		return "", "", err
	}
	return out.PaymentSessionID, out.OrderID, nil
}

// PaymentStatus fetches the current payment outcome for an order.
// Implements payment.StatusClient. Unrecognized status values map to
// PENDING, never to SUCCESS.
func (c *Client) PaymentStatus(ctx context.Context, orderID string) (payment.Outcome, error) {
	var out struct {
		Status   string `json:"status"`
		Template *struct {
			ID int `json:"id"`
		} `json:"template"`
	}
	path := "/api/payments/" + url.PathEscape(orderID) + "/"
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return payment.Outcome{}, err
	}

	outcome := payment.Outcome{
		OrderID: orderID,
		Status:  payment.ParseStatus(out.Status),
	}
	if out.Template != nil && out.Template.ID != 0 {
		outcome.RetryTemplateID = fmt.Sprintf("%d", out.Template.ID)
	}
	return outcome, nil
}

// SubmitReview posts a new review and returns the refreshed template.
func (c *Client) SubmitReview(ctx context.Context, input ReviewInput) (*Template, error) {
	var out struct {
		Template *Template `json:"template"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/reviews/submit/", nil, input, &out); err != nil {
		return nil, err
	}
	return out.Template, nil
}

// SubmitInquiry opens a support inquiry and returns its tracking id.
func (c *Client) SubmitInquiry(ctx context.Context, input InquiryInput) (string, error) {
	var out struct {
		InquiryID string `json:"inquiry_id"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/support/", nil, input, &out); err != nil {
		return "", err
	}
	return out.InquiryID, nil
}

// TrackInquiry looks up an inquiry by id; the email must match the one the
// inquiry was opened with.
func (c *Client) TrackInquiry(ctx context.Context, inquiryID, email string) (*Inquiry, error) {
	payload := map[string]string{"inquiry_id": inquiryID, "email": email}
	var out Inquiry
	if err := c.do(ctx, http.MethodPost, "/api/support/track/", nil, payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
