package domain

import "sort"

// FormLevelKey marks an error that belongs to the whole form rather than a field.
const FormLevelKey = "*"

const (
	FieldName    = "name"
	FieldPhone   = "phone"
	FieldEmail   = "email"
	FieldVoterID = "voterid"
	FieldAddress = "address"
	FieldWard    = "ward"
)

// SubmittedFields holds the values posted by the user for a single request.
type SubmittedFields map[string]string

// Get returns the value for name, or "" when absent.
func (f SubmittedFields) Get(name string) string {
	if f == nil {
		return ""
	}
	return f[name]
}

// ErrorMap maps a field name (or FormLevelKey) to a human readable message.
type ErrorMap map[string]string

func (e ErrorMap) Has(name string) bool {
	_, ok := e[name]
	return ok
}

// FormError returns the form-level message, if any.
func (e ErrorMap) FormError() (string, bool) {
	msg, ok := e[FormLevelKey]
	return msg, ok
}

// Fields returns the sorted keys that refer to individual fields.
func (e ErrorMap) Fields() []string {
	var out []string
	for k := range e {
		if k != FormLevelKey {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeValidationError
	OutcomeTransportError
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeValidationError:
		return "validation_error"
	case OutcomeTransportError:
		return "transport_error"
	default:
		return "unknown"
	}
}

// Outcome is the result of relaying one submission to the signup API.
// Err is only set for OutcomeTransportError and is meant for logs.
type Outcome struct {
	Kind   OutcomeKind
	Errors ErrorMap
	Err    error
}

func Success() Outcome {
	return Outcome{Kind: OutcomeSuccess}
}

func ValidationFailed(errs ErrorMap) Outcome {
	return Outcome{Kind: OutcomeValidationError, Errors: errs}
}

func TransportFailed(err error) Outcome {
	return Outcome{
		Kind:   OutcomeTransportError,
		Errors: ErrorMap{FormLevelKey: GenericErrorMessage},
		Err:    err,
	}
}
