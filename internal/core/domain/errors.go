package domain

import "errors"

var (
	ErrTransport         = errors.New("signup api unreachable")
	ErrUnexpectedStatus  = errors.New("signup api returned unexpected status")
	ErrMalformedResponse = errors.New("signup api returned malformed response")
	ErrInvalidSubmission = errors.New("invalid submission body")
)

// GenericErrorMessage is shown under FormLevelKey whenever the remote call
// fails before producing a verdict.
const GenericErrorMessage = "Unexpected error in processing the request. Please try again after some time."
