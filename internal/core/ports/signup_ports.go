package ports

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/signup/internal/core/domain"
)

// SignupResponse is the decoded body of a 200 reply from the signup API.
type SignupResponse struct {
	Status string
	Errors domain.ErrorMap
}

func (r *SignupResponse) OK() bool {
	return r.Status == "ok"
}

type SignupRequest struct {
	ID     uuid.UUID
	Fields domain.SubmittedFields
}

// SignupAPI performs exactly one call to the remote signup endpoint.
type SignupAPI interface {
	Signup(ctx context.Context, req SignupRequest) (*SignupResponse, error)
}

type SignupService interface {
	Submit(ctx context.Context, id uuid.UUID, fields domain.SubmittedFields) domain.Outcome
}

// PageRenderer produces the HTML views of the signup page.
type PageRenderer interface {
	Form(w io.Writer, errs domain.ErrorMap, values domain.SubmittedFields) error
	ThankYou(w io.Writer) error
}
