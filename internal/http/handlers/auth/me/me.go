package me

import (
	"errors"
	"net/http"

	e "cvmatch/internal/core/domain/errors"
	"cvmatch/internal/core/domain/user"
	"cvmatch/internal/core/services"
	domainAuth "cvmatch/internal/core/services/auth"
	service "cvmatch/internal/core/services/get_user_by_session_token"
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
	User response.User `json:"user"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	token, ok := r.Context().Value(domainAuth.CONTEXT_AUTH_TOKEN_KEY).(user.SessionToken)
	if !ok {
		response.RenderUnauthorized(rw)
		return
	}

	result, err := h.service.Run(r.Context(), service.Input{Token: token})
	if errors.Is(err, user.ErrUserDoesNotExist) {
		response.RenderUnauthorized(rw)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	respUser := response.User{}
	respUser.FromDomainUser(result.User)
	response.Render(rw, Result{User: respUser}, http.StatusOK)
}
