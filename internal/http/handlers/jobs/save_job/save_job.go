package savejob

import (
	"errors"
	"net/http"
	"strconv"

	e "cvmatch/internal/core/domain/errors"
	"cvmatch/internal/core/domain/job"
	"cvmatch/internal/core/domain/user"
	"cvmatch/internal/core/services"
	service "cvmatch/internal/core/services/save_job"
	"cvmatch/internal/http/handlers/response"

	"github.com/go-chi/chi/v5"
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

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	rawJobID := chi.URLParam(r, "jobID")
	jobID, err := strconv.ParseInt(rawJobID, 10, 64)
	if err != nil {
		response.RenderError(rw, "invalid job ID", http.StatusBadRequest)
		return
	}

	_, err = h.service.Run(r.Context(), service.Input{JobID: job.ID(jobID)})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		case errors.Is(err, job.ErrJobDoesNotExist):
			response.RenderError(rw, "job does not exist", http.StatusNotFound)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	response.Render(rw, struct{}{}, http.StatusOK)
}
