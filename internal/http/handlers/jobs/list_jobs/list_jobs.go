package listjobs

import (
	"net/http"

	e "cvmatch/internal/core/domain/errors"
	"cvmatch/internal/core/services"
	service "cvmatch/internal/core/services/list_jobs"
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
		response.RenderInternalError(rw)
		return
	}

	jobs := make([]response.Job, 0, len(result.Jobs))
	for _, dj := range result.Jobs {
		respJob := response.Job{}
		respJob.FromDomainJob(dj)
		jobs = append(jobs, respJob)
	}
	response.Render(rw, Result{Jobs: jobs}, http.StatusOK)
}
