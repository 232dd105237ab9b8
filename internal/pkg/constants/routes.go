package constants

// Static route constants
const (
	HomeRoute          = "/"
	TemplatesRoute     = "/templates"
	TemplateRoute      = "/template"
	PaymentStatusRoute = "/payment-status"
	ThankYouRoute      = "/thank-you"
	SupportRoute       = "/support"
	SupportTrackRoute  = "/support/track"
)
