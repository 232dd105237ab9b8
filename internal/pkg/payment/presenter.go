package payment

import "errors"

// DisplayState is what the status page actually shows. Closed set.
const (
	DisplayProcessing = "processing"
	DisplaySucceeded  = "succeeded"
	DisplayFailed     = "failed"
	DisplayPending    = "pending"
	DisplayError      = "error"
)

// DisplayState maps a payment outcome or purchase-flow error onto one of
// the fixed user-facing states.
type DisplayState struct {
	Kind    string
	Message string
	// RetryTemplateID deep-links the retry button back to the originating
	// template after a failure. Empty means a generic "try again".
	RetryTemplateID string
}

// Done reports whether the state is terminal for the status page, i.e.
// polling should stop.
func (d DisplayState) Done() bool {
	return d.Kind == DisplaySucceeded || d.Kind == DisplayFailed || d.Kind == DisplayError
}

// Processing is the initial state shown before the first poll result.
func Processing() DisplayState {
	return DisplayState{
		Kind:    DisplayProcessing,
		Message: "Please wait while we verify your payment.",
	}
}

// Present maps one poll tick onto a display state. A transport error on a
// single tick degrades to pending — never to failed — because a network
// problem on our side says nothing about the payment itself. Only the
// poller's give-up tick becomes a hard error.
func Present(t Tick) DisplayState {
	if t.Err != nil {
		if errors.Is(t.Err, ErrTooManyFailures) {
			return DisplayState{Kind: DisplayError, Message: UserMessage(t.Err)}
		}
		return DisplayState{
			Kind:    DisplayPending,
			Message: "We are still verifying your payment. Please wait...",
		}
	}

	switch t.Outcome.Status {
	case StatusSuccess:
		return DisplayState{
			Kind:    DisplaySucceeded,
			Message: "Thank you for your purchase. A download link for your template has been sent to your email.",
		}
	case StatusFailed:
		return DisplayState{
			Kind:            DisplayFailed,
			Message:         "Something went wrong with your payment. Please try again.",
			RetryTemplateID: t.Outcome.RetryTemplateID,
		}
	default:
		return DisplayState{
			Kind:    DisplayPending,
			Message: "We are still verifying your payment. Please wait...",
		}
	}
}

// PresentError maps an initiation or request error onto a display state.
// Errors are never silently swallowed.
func PresentError(err error) DisplayState {
	return DisplayState{Kind: DisplayError, Message: UserMessage(err)}
}
