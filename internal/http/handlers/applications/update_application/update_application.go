package updateapplication

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	c "cvmatch/internal/core/domain/common"
	e "cvmatch/internal/core/domain/errors"
	"cvmatch/internal/core/domain/job"
	"cvmatch/internal/core/domain/user"
	"cvmatch/internal/core/services"
	service "cvmatch/internal/core/services/update_application"
	"cvmatch/internal/http/handlers/response"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
)

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(service services.Service[service.Input, service.Result]) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Status *string `json:"status"`
	Note   *string `json:"note"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Status, validation.Length(1, 32)),
		validation.Field(&i.Note, validation.Length(0, 4096)),
	)
}

type Result struct {
	Application response.Application `json:"application"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	rawApplicationID := chi.URLParam(r, "applicationID")
	applicationID, err := strconv.ParseInt(rawApplicationID, 10, 64)
	if err != nil {
		response.RenderError(rw, "invalid application ID", http.StatusBadRequest)
		return
	}

	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	status := c.Optional[job.ApplicationStatus]{}
	if input.Status != nil {
		status = c.NewOptional(job.ApplicationStatus(*input.Status), true)
	}
	note := c.Optional[string]{}
	if input.Note != nil {
		note = c.NewOptional(*input.Note, true)
	}

	result, err := h.service.Run(
		r.Context(),
		service.Input{
			ApplicationID: job.ApplicationID(applicationID),
			Status:        status,
			Note:          note,
		},
	)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		case errors.Is(err, job.ErrInvalidApplicationStatus):
			response.RenderError(rw, "invalid application status", http.StatusUnprocessableEntity)
		case errors.Is(err, job.ErrApplicationDoesNotExist):
			response.RenderError(rw, "application does not exist", http.StatusNotFound)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	respApplication := response.Application{}
	respApplication.FromDomainApplication(result.Application)
	response.Render(rw, Result{Application: respApplication}, http.StatusOK)
}
