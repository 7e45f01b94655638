package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/vncsmyrnk/signup/internal/core/domain"
	"github.com/vncsmyrnk/signup/internal/core/ports"
)

const maxFormBytes = 64 << 10

type SignupHandler struct {
	service  ports.SignupService
	renderer ports.PageRenderer
}

func NewSignupHandler(service ports.SignupService, renderer ports.PageRenderer) *SignupHandler {
	return &SignupHandler{
		service:  service,
		renderer: renderer,
	}
}

func (h *SignupHandler) ShowForm(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, nil, nil)
}

func (h *SignupHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		log.Printf("signup: %v: %v", domain.ErrInvalidSubmission, err)
		h.renderForm(w, domain.ErrorMap{domain.FormLevelKey: domain.GenericErrorMessage}, nil)
		return
	}

	fields := submittedFields(r)
	id := uuid.New()

	outcome := h.service.Submit(r.Context(), id, fields)
	logOutcome(id, outcome)

	switch outcome.Kind {
	case domain.OutcomeSuccess:
		h.renderThankYou(w)
	default:
		h.renderForm(w, outcome.Errors, fields)
	}
}

func (h *SignupHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func (h *SignupHandler) renderForm(w http.ResponseWriter, errs domain.ErrorMap, values domain.SubmittedFields) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Form(w, errs, values); err != nil {
		log.Printf("signup: render form: %v", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}

func (h *SignupHandler) renderThankYou(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.ThankYou(w); err != nil {
		log.Printf("signup: render thank you: %v", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}

// submittedFields keeps the first value of every posted key. Query string
// parameters are ignored.
func submittedFields(r *http.Request) domain.SubmittedFields {
	fields := make(domain.SubmittedFields, len(r.PostForm))
	for k, vs := range r.PostForm {
		if len(vs) == 0 {
			continue
		}
		fields[k] = vs[0]
	}
	return fields
}

// logOutcome records what happened to a submission. Field values are never logged.
func logOutcome(id uuid.UUID, outcome domain.Outcome) {
	switch outcome.Kind {
	case domain.OutcomeTransportError:
		var gerr *goerr.Error
		if errors.As(outcome.Err, &gerr) {
			log.Printf("signup %s: %s: %v %v", id, outcome.Kind, outcome.Err, gerr.Values())
			return
		}
		log.Printf("signup %s: %s: %v", id, outcome.Kind, outcome.Err)
	case domain.OutcomeValidationError:
		log.Printf("signup %s: %s: fields=%v", id, outcome.Kind, outcome.Errors.Fields())
	default:
		log.Printf("signup %s: %s", id, outcome.Kind)
	}
}
