package listcvmatches

import (
	"errors"
	"net/http"
	"strconv"

	"cvmatch/internal/core/domain/cv"
	e "cvmatch/internal/core/domain/errors"
	"cvmatch/internal/core/domain/user"
	"cvmatch/internal/core/services"
	service "cvmatch/internal/core/services/list_cv_matches"
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

type Result struct {
	Matches []response.Match `json:"matches"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	rawCVID := chi.URLParam(r, "cvID")
	cvID, err := strconv.ParseInt(rawCVID, 10, 64)
	if err != nil {
		response.RenderError(rw, "invalid CV ID", http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(r.Context(), service.Input{CVID: cv.ID(cvID)})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		case errors.Is(err, cv.ErrCVDoesNotExist):
			response.RenderError(rw, "CV does not exist", http.StatusNotFound)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	matches := make([]response.Match, 0, len(result.Matches))
	for _, dm := range result.Matches {
		respMatch := response.Match{}
		respMatch.FromDomainMatch(dm)
		matches = append(matches, respMatch)
	}
	response.Render(rw, Result{Matches: matches}, http.StatusOK)
}
