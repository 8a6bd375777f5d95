package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/tripvault/tripvault/internal/domain"
	"github.com/tripvault/tripvault/internal/service"
)

// UploadHandler handles photo uploads and retrieval.
type UploadHandler struct {
	uploads *service.UploadService
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(uploads *service.UploadService) *UploadHandler {
	return &UploadHandler{uploads: uploads}
}

// HandleUpload processes a multipart upload of up to 5 files under the
// "photos" field and returns their URLs.
// POST /api/upload
// Response: 200 ["url", ...]
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	// 64MB form limit: up to five 10MB files plus overhead.
	if err := r.ParseMultipartForm(64 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	headers := r.MultipartForm.File["photos"]
	files := make([]service.UploadFile, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			slog.Error("open upload", "error", err)
			writeError(w, http.StatusInternalServerError, "Server error")
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			slog.Error("read upload", "error", err)
			writeError(w, http.StatusInternalServerError, "Server error")
			return
		}
		files = append(files, service.UploadFile{Name: header.Filename, Data: data})
	}

	urls, err := h.uploads.SavePhotos(r.Context(), files)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("save photos", "error", err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, urls)
}

// HandlePhoto streams a stored photo.
// GET /uploads/{key}
func (h *UploadHandler) HandlePhoto(w http.ResponseWriter, r *http.Request) {
	contentType, data, err := h.uploads.GetPhoto(r.Context(), r.PathValue("key"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		slog.Error("get photo", "error", err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		slog.Error("write photo", "error", err)
	}
}
