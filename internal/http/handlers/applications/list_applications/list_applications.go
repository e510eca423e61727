package listapplications

import (
	"errors"
	"net/http"

	e "cvmatch/internal/core/domain/errors"
	"cvmatch/internal/core/domain/user"
	"cvmatch/internal/core/services"
	service "cvmatch/internal/core/services/list_applications"
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
	Applications []response.Application `json:"applications"`
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

	respApplications := make([]response.Application, 0, len(result.Applications))
	for _, domainApplication := range result.Applications {
		respApplication := response.Application{}
		respApplication.FromDomainApplication(domainApplication)
		respApplications = append(respApplications, respApplication)
	}
	response.Render(rw, Result{Applications: respApplications}, http.StatusOK)
}
