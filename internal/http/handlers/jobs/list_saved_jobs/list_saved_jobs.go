package listsavedjobs

import (
	"errors"
	"net/http"

	e "cvmatch/internal/core/domain/errors"
	"cvmatch/internal/core/domain/user"
	"cvmatch/internal/core/services"
	service "cvmatch/internal/core/services/list_saved_jobs"
	"cvmatch/internal/http/handlers/response"
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

type Result struct {
	Jobs []response.Job `json:"jobs"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	result, err := h.service.Run(r.Context(), service.Input{})
	if err != nil {
		if errors.Is(err, user.ErrUserDoesNotExist) {
			response.RenderUnauthorized(rw)
			return
		}
		response.RenderInternalError(rw)
		return
	}

	respJobs := make([]response.Job, 0, len(result.Jobs))
	for _, domainJob := range result.Jobs {
		respJob := response.Job{}
		respJob.FromDomainJob(domainJob)
		respJobs = append(respJobs, respJob)
	}
	response.Render(rw, Result{Jobs: respJobs}, http.StatusOK)
}
