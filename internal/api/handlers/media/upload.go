package media

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"Hearth/internal/api/handlers"
	"Hearth/internal/api/middleware"
	"Hearth/internal/core/identity"
	"Hearth/internal/core/media"
)

const formFile = "file"

// Uploader is the action the handler calls
type Uploader interface {
	UploadImage(ctx context.Context, session *identity.Session, r io.Reader, filename, mimeType string) (*media.Upload, error)
}

// UploadHandler accepts a multipart image and returns its hosted URL
type UploadHandler struct {
	actions Uploader
}

func NewUploadHandler(a Uploader) *UploadHandler {
	return &UploadHandler{actions: a}
}

// HandleUpload handles POST /api/media
// The image goes in the multipart field "file".
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, media.MaxImageSize+64*1024)

	file, header, err := r.FormFile(formFile)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			handlers.WriteError(w, http.StatusRequestEntityTooLarge, "FileTooLarge", "Image exceeds 4MB")
			return
		}
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Missing file field")
		return
	}
	defer file.Close()

	upload, err := h.actions.UploadImage(r.Context(), middleware.GetSession(r), file, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		switch {
		case errors.Is(err, media.ErrFileTooLarge):
			handlers.WriteError(w, http.StatusRequestEntityTooLarge, "FileTooLarge", handlers.Detail(err))
		case media.IsValidationError(err):
			handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", handlers.Detail(err))
		default:
			var uploadErr *media.UploadError
			if errors.As(err, &uploadErr) {
				slog.Error("media CDN rejected upload", "error", err, "status", uploadErr.StatusCode)
				handlers.WriteError(w, http.StatusBadGateway, "UpstreamError", handlers.Describe(err, "Failed to upload image"))
				return
			}
			slog.Error("unexpected error in media handler", "error", err)
			handlers.WriteError(w, http.StatusInternalServerError, "InternalServerError", handlers.Describe(err, "Failed to upload image"))
		}
		return
	}
	if upload == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	handlers.WriteJSON(w, http.StatusCreated, upload)
}
