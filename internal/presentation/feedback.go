// Package presentation maps registry results and items into what the TUI
// and CLI show the user.
package presentation

import (
	"github.com/zjrosen/recipebox/internal/recipe"
)

// Feedback messages shown after a submission.
const (
	MsgBlank     = "Please enter both the recipe name and the image URL"
	MsgDuplicate = "The recipe already exists"
)

// Severity tells the renderer how to style a feedback message.
type Severity int

const (
	SeveritySuccess Severity = iota
	SeverityWarn
	SeverityError
)

// Feedback is the user-facing message for one submission.
type Feedback struct {
	Message  string
	Severity Severity
}

// FeedbackFor selects the message for result.
func FeedbackFor(result recipe.SubmissionResult) Feedback {
	switch result.Outcome {
	case recipe.OutcomeRejectedBlank:
		return Feedback{Message: MsgBlank, Severity: SeverityWarn}
	case recipe.OutcomeRejectedDuplicate:
		return Feedback{Message: MsgDuplicate, Severity: SeverityError}
	default:
		return Feedback{Message: "Added " + result.Item.Label(), Severity: SeveritySuccess}
	}
}
