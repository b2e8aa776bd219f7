package recipe

import (
	"errors"
	"fmt"
)

// Submission rejection errors, returned only by SubmissionResult.Err.
var (
	ErrBlank     = errors.New("recipe name and image reference are required")
	ErrDuplicate = errors.New("recipe already exists")
)

// Outcome identifies which branch a submission took.
type Outcome int

const (
	OutcomeAccepted Outcome = iota
	OutcomeRejectedBlank
	OutcomeRejectedDuplicate
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAccepted:
		return "accepted"
	case OutcomeRejectedBlank:
		return "blank"
	case OutcomeRejectedDuplicate:
		return "duplicate"
	default:
		return "unknown"
	}
}

// SubmissionResult is the outcome of a single Registry.Submit call.
//
// Item is set only for OutcomeAccepted. ExistingLabel is set only for
// OutcomeRejectedDuplicate and holds the stored spelling of the colliding
// label, which may differ in case from what was submitted.
type SubmissionResult struct {
	Outcome       Outcome
	Item          Item
	ExistingLabel string
}

// Accepted reports whether the submission added an item.
func (r SubmissionResult) Accepted() bool {
	return r.Outcome == OutcomeAccepted
}

// Err converts a rejection into an error wrapping ErrBlank or ErrDuplicate.
// It returns nil for accepted submissions.
func (r SubmissionResult) Err() error {
	switch r.Outcome {
	case OutcomeRejectedBlank:
		return ErrBlank
	case OutcomeRejectedDuplicate:
		return fmt.Errorf("%w: %q", ErrDuplicate, r.ExistingLabel)
	default:
		return nil
	}
}

func accepted(item Item) SubmissionResult {
	return SubmissionResult{Outcome: OutcomeAccepted, Item: item}
}

func rejectedBlank() SubmissionResult {
	return SubmissionResult{Outcome: OutcomeRejectedBlank}
}

func rejectedDuplicate(existing string) SubmissionResult {
	return SubmissionResult{Outcome: OutcomeRejectedDuplicate, ExistingLabel: existing}
}
