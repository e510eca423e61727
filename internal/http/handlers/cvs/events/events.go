package events

import (
	"errors"
	"fmt"
	"net/http"

	e "cvmatch/internal/core/domain/errors"
	"cvmatch/internal/core/domain/logging"
	"cvmatch/internal/core/domain/user"
	"cvmatch/internal/core/services"
	domainAuth "cvmatch/internal/core/services/auth"
	s "cvmatch/internal/core/services/get_user_by_session_token"
	"cvmatch/internal/http/handlers/response"

	"github.com/r3labs/sse/v2"
)

// Handler subscribes an authenticated client to its own analysis event
// stream.
type Handler struct {
	log       logging.Logger
	service   services.Service[s.Input, s.Result]
	sseServer *sse.Server
}

func New(
	log logging.Logger,
	sseServer *sse.Server,
	service services.Service[s.Input, s.Result],
) *Handler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sseServer == nil {
		panic(e.NewNilArgumentError("sseServer"))
	}
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{log: log, sseServer: sseServer, service: service}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	token, ok := r.Context().Value(domainAuth.CONTEXT_AUTH_TOKEN_KEY).(user.SessionToken)
	if !ok {
		response.RenderUnauthorized(rw)
		return
	}

	result, err := h.service.Run(r.Context(), s.Input{Token: token})
	if err != nil {
		if errors.Is(err, user.ErrUserDoesNotExist) {
			response.RenderUnauthorized(rw)
			return
		}
		response.RenderInternalError(rw)
		return
	}

	// Clients may only listen to their own stream.
	streamID := fmt.Sprintf("%d", result.User.ID)
	if got := r.URL.Query().Get("stream"); got != streamID {
		response.RenderError(rw, "invalid stream", http.StatusBadRequest)
		return
	}

	go func() {
		<-r.Context().Done()
		h.log.Info(
			r.Context(),
			"Unsubscribed from CV events.",
			logging.Entry("userID", result.User.ID),
		)
		h.sseServer.RemoveStream(streamID)
	}()

	h.log.Info(
		r.Context(),
		"Subscribed to CV events.",
		logging.Entry("userID", result.User.ID),
		logging.Entry("streamID", streamID),
	)
	h.sseServer.ServeHTTP(rw, r)
}
