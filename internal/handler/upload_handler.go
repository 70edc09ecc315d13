package handler

import (
	"errors"
	"io"
	"net/http"

	"roots-catalog/internal/model"
	"roots-catalog/internal/service"

	"github.com/rs/zerolog"
)

// multipartOverhead is the allowance for multipart headers on top of the image itself.
const multipartOverhead = 64 << 10

// UploadHandler handles product image uploads.
type UploadHandler struct {
	service  service.UploadService
	maxBytes int64
	logger   zerolog.Logger
}

// NewUploadHandler creates a new upload handler accepting images up to maxBytes.
func NewUploadHandler(service service.UploadService, maxBytes int64, logger zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		service:  service,
		maxBytes: maxBytes,
		logger:   logger.With().Str("handler", "upload").Logger(),
	}
}

// Upload handles POST /api/upload requests carrying a multipart "image" field.
// The response body is the stored image reference as a JSON string.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+multipartOverhead)

	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeServiceError(w, r, model.ErrImageTooLarge, h.logger)
			return
		}
		writeServiceError(w, r, model.ErrNoImage, h.logger)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("image")
	if err != nil {
		writeServiceError(w, r, model.ErrNoImage, h.logger)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, h.maxBytes+1))
	if err != nil {
		h.logger.Error().Err(err).Str("filename", header.Filename).Msg("failed to read uploaded image")
		writeError(w, r, http.StatusBadRequest, model.ErrCodeNoImage, "failed to read uploaded image", h.logger)
		return
	}

	ref, err := h.service.Upload(r.Context(), header.Filename, data)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, ref)
}
