package withdrawapplication

import (
	"errors"
	"net/http"
	"strconv"

	e "cvmatch/internal/core/domain/errors"
	"cvmatch/internal/core/domain/job"
	"cvmatch/internal/core/domain/user"
	"cvmatch/internal/core/services"
	service "cvmatch/internal/core/services/withdraw_application"
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
	rawApplicationID := chi.URLParam(r, "applicationID")
	applicationID, err := strconv.ParseInt(rawApplicationID, 10, 64)
	if err != nil {
		response.RenderError(rw, "invalid application ID", http.StatusBadRequest)
		return
	}

	_, err = h.service.Run(
		r.Context(),
		service.Input{ApplicationID: job.ApplicationID(applicationID)},
	)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		case errors.Is(err, job.ErrApplicationDoesNotExist):
			response.RenderError(rw, "application does not exist", http.StatusNotFound)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	response.Render(rw, struct{}{}, http.StatusOK)
}
