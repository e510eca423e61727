package createjob

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	c "cvmatch/internal/core/domain/common"
	e "cvmatch/internal/core/domain/errors"
	"cvmatch/internal/core/domain/user"
	"cvmatch/internal/core/services"
	service "cvmatch/internal/core/services/create_job"
	"cvmatch/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
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
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Title, validation.Required, validation.Length(0, 256)),
		validation.Field(&i.Company, validation.Required, validation.Length(0, 256)),
		validation.Field(&i.Location, validation.Length(0, 256)),
		validation.Field(&i.Description, validation.Required, validation.Length(0, 65536)),
		validation.Field(&i.URL, is.URL, validation.Length(0, 2048)),
	)
}

type Result struct {
	Job response.Job `json:"job"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.Render(rw, err, http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(
		r.Context(),
		service.Input{
			Title:       input.Title,
			Company:     input.Company,
			Location:    c.NewOptional(input.Location, input.Location != ""),
			Description: input.Description,
			URL:         c.NewOptional(input.URL, input.URL != ""),
		},
	)
	if err != nil {
		if errors.Is(err, user.ErrUserDoesNotExist) {
			response.RenderUnauthorized(rw)
			return
		}
		response.RenderInternalError(rw)
		return
	}

	respJob := response.Job{}
	respJob.FromDomainJob(result.Job)
	response.Render(rw, Result{Job: respJob}, http.StatusCreated)
}
