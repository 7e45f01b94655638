package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/signup/internal/core/domain"
	"github.com/vncsmyrnk/signup/internal/core/ports"
)

type signupService struct {
	api ports.SignupAPI
}

func NewSignupService(api ports.SignupAPI) ports.SignupService {
	return &signupService{
		api: api,
	}
}

// Submit relays fields to the signup API once and classifies the reply.
// It never returns a raw error: transport problems become a form-level message.
func (s *signupService) Submit(ctx context.Context, id uuid.UUID, fields domain.SubmittedFields) domain.Outcome {
	if fields == nil {
		fields = domain.SubmittedFields{}
	}

	resp, err := s.api.Signup(ctx, ports.SignupRequest{ID: id, Fields: fields})
	if err != nil {
		return domain.TransportFailed(err)
	}

	if resp.OK() {
		return domain.Success()
	}

	errs := make(domain.ErrorMap, len(resp.Errors))
	for k, v := range resp.Errors {
		errs[k] = v
	}
	// A rejection without any message would otherwise render an unchanged form.
	if len(errs) == 0 {
		errs[domain.FormLevelKey] = domain.GenericErrorMessage
	}

	return domain.ValidationFailed(errs)
}
