package uploadcv

import (
	"errors"
	"io"
	"net/http"

	"cvmatch/internal/core/domain/cv"
	e "cvmatch/internal/core/domain/errors"
	"cvmatch/internal/core/domain/user"
	"cvmatch/internal/core/services"
	service "cvmatch/internal/core/services/upload_cv"
	"cvmatch/internal/http/handlers/response"
)

const maxFileSizeBytes = 10 << 20

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
	CV response.CV `json:"cv"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(rw, r.Body, maxFileSizeBytes)
	if err := r.ParseMultipartForm(maxFileSizeBytes); err != nil {
		response.RenderError(rw, "invalid multipart request", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		response.RenderError(rw, "file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.RenderError(rw, "could not read file", http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(
		r.Context(),
		service.Input{
			FileName:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        data,
		},
	)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		case errors.Is(err, cv.ErrUnsupportedFileType):
			response.RenderError(rw, "unsupported file type", http.StatusBadRequest)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	respCV := response.CV{}
	respCV.FromDomainCV(result.CV)
	response.Render(rw, Result{CV: respCV}, http.StatusCreated)
}
