package payment

import (
	"regexp"
	"strings"
)

// Status is the backend's payment status vocabulary. It is a closed
// enumeration: anything the backend sends that we do not recognize is
// treated as still pending, never as paid.
type Status string

const (
	StatusPending Status = "PENDING"
	StatusSuccess Status = "SUCCESS"
	StatusFailed  Status = "FAILED"
)

// ParseStatus maps a raw wire value onto the closed status set.
// Unknown values (e.g. "REFUNDED") fall back to PENDING.
func ParseStatus(raw string) Status {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case string(StatusSuccess):
		return StatusSuccess
	case string(StatusFailed):
		return StatusFailed
	default:
		return StatusPending
	}
}

// Terminal reports whether no further status change is expected.
func (s Status) Terminal() bool {
	return s == StatusSuccess || s == StatusFailed
}

// Session is an ephemeral purchase attempt. The session token is issued by
// the backend, is single-use, and must never be reused across retries; a
// retry mints a fresh session. Only the order id survives the redirect to
// the hosted payment page.
type Session struct {
	TemplateID   string
	BuyerEmail   string
	BuyerPhone   string
	SessionToken string
	OrderID      string
}

// Outcome is a read-only projection of the backend's payment state for one
// order. RetryTemplateID is optional and only used to offer a retry link
// back to the originating template after a failure.
type Outcome struct {
	OrderID         string
	Status          Status
	RetryTemplateID string
}

// Order ids come back to us via an attacker-controllable query parameter,
// so they are shape-checked before being used as a lookup key.
var orderIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

// ValidOrderID reports whether the given order id has an acceptable shape.
func ValidOrderID(orderID string) bool {
	return orderIDPattern.MatchString(orderID)
}
