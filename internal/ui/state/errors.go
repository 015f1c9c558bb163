package state

import "errors"

// RejectionError marks a request the engine refused without touching its
// state. The message is suitable for a transient user notice.
type RejectionError struct {
	Reason string
}

func (e *RejectionError) Error() string {
	return e.Reason
}

var (
	ErrEmptyTerm        = &RejectionError{Reason: "enter a search term"}
	ErrSearchDisabled   = &RejectionError{Reason: "search is unavailable for this list"}
	ErrFutileRefinement = &RejectionError{Reason: "no matches for a shorter search; refine differently"}
	ErrFilterNotAllowed = &RejectionError{Reason: "filter option is not available"}
	ErrNothingToFilter  = &RejectionError{Reason: "nothing to filter"}
	ErrUnknownSection   = &RejectionError{Reason: "unknown section"}
)

// IsRejection reports whether err is a validation rejection.
func IsRejection(err error) bool {
	var rejection *RejectionError
	return errors.As(err, &rejection)
}
