package services

import "errors"

// Error kinds returned by the workflow, ledger and negotiation services.
// Controllers map these to HTTP status codes with errors.Is; none of them are
// retried internally and a failed transition leaves state unchanged.
var (
	// ErrInvalidTransition: the operation is not allowed from the subject's
	// current state (e.g. submitting an approved venture, renegotiating a
	// closed deal).
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrDuplicateActiveRequest: a second submitted/pending record would
	// violate the at-most-one-active invariant.
	ErrDuplicateActiveRequest = errors.New("an active request already exists")

	// ErrAlreadyDecided: the request or commitment has already reached a
	// terminal response.
	ErrAlreadyDecided = errors.New("already decided")

	// ErrMissingRequiredArtifact: submission requires an attached document
	// that does not exist.
	ErrMissingRequiredArtifact = errors.New("required document is missing")

	// ErrAccessDenied: the actor lacks the capability for this operation.
	ErrAccessDenied = errors.New("access denied")

	// ErrNotFound: the referenced entity does not exist or is outside the
	// actor's visible set.
	ErrNotFound = errors.New("not found")

	// ErrValidation: malformed input, such as a blank renegotiation message
	// or a non-positive commitment amount.
	ErrValidation = errors.New("validation failed")
)
