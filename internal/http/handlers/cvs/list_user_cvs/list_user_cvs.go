package listusercvs

import (
	"errors"
	"net/http"

	e "cvmatch/internal/core/domain/errors"
	"cvmatch/internal/core/domain/user"
	"cvmatch/internal/core/services"
	service "cvmatch/internal/core/services/list_user_cvs"
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
	CVs []response.CV `json:"cvs"`
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

	cvs := make([]response.CV, 0, len(result.CVs))
	for _, dc := range result.CVs {
		respCV := response.CV{}
		respCV.FromDomainCV(dc)
		cvs = append(cvs, respCV)
	}
	response.Render(rw, Result{CVs: cvs}, http.StatusOK)
}
