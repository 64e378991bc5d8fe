package handler

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/openshop-kr/journey-api/internal/storage"
	"go.uber.org/zap"
)

// FileHandler serves stored chat images when storage runs in local mode.
// Object names are random UUIDs, so the route is public like a blob URL.
type FileHandler struct {
	storage storage.Storage
	logger  *zap.Logger
}

func NewFileHandler(store storage.Storage, logger *zap.Logger) *FileHandler {
	return &FileHandler{
		storage: store,
		logger:  logger,
	}
}

// Download godoc
// @Summary Download a stored image
// @Tags Files
// @Produce image/jpeg,image/png,image/gif,image/webp
// @Param path path string true "Storage path"
// @Success 200
// @Failure 404 {object} domain.APIError
// @Router /files/{path} [get]
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	storagePath := strings.TrimPrefix(chi.URLParam(r, "*"), "/")
	if storagePath == "" {
		respondWithError(w, http.StatusNotFound, "File not found")
		return
	}

	reader, err := h.storage.Download(r.Context(), storagePath)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "File not found")
			return
		}
		h.logger.Error("failed to download file", zap.Error(err), zap.String("path", storagePath))
		respondWithError(w, http.StatusInternalServerError, "Failed to download file")
		return
	}
	defer reader.Close()

	contentType := mime.TypeByExtension(path.Ext(storagePath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "private, max-age=86400")

	_, _ = io.Copy(w, reader)
}
