package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/winnow-hq/winnow-api/internal/apperror"
	middleware "github.com/winnow-hq/winnow-api/internal/api/middlewares"
	"github.com/winnow-hq/winnow-api/internal/core"
	"github.com/winnow-hq/winnow-api/internal/models"
)

const maxAttachmentSize = 10 << 20 // 10 MiB

type AttachmentHandler struct {
	jds     core.JDStore
	storage core.ObjectClient
	log     *zap.Logger
}

// NewAttachmentHandler accepts a nil storage client: without a configured
// bucket the endpoint reports the problem per request.
func NewAttachmentHandler(jds core.JDStore, storage core.ObjectClient, log *zap.Logger) *AttachmentHandler {
	return &AttachmentHandler{jds: jds, storage: storage, log: log}
}

// Upload stores a file against a JD. Owner-only: the ownership check runs
// before the upload so a forbidden caller never writes to the bucket.
func (h *AttachmentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, h.log, apperror.Unauthorized("Invalid authentication"))
		return
	}

	if h.storage == nil {
		writeError(w, h.log, errors.New("storage bucket is not configured"))
		return
	}

	id := chi.URLParam(r, "id")
	jd, err := h.jds.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if owner, _ := jd["userId"].(string); owner != claims.UID {
		writeError(w, h.log, apperror.Forbidden("Not authorized"))
		return
	}

	if err := r.ParseMultipartForm(maxAttachmentSize); err != nil {
		writeError(w, h.log, apperror.Invalid("invalid multipart body"))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, h.log, apperror.Invalid("missing file field"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxAttachmentSize))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	key := fmt.Sprintf("jds/%s/attachments/%s_%s", id, uuid.NewString(), objectName(header.Filename))
	url, err := h.storage.UploadFile(r.Context(), key, data, header.Header.Get("Content-Type"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	att := models.Attachment{Name: header.Filename, URL: url, UploadedBy: claims.UID}
	if err := h.jds.AddAttachment(r.Context(), id, claims.UID, att); err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"url":     url,
		"message": "Attachment uploaded successfully",
	})
}

func objectName(filename string) string {
	return strings.ReplaceAll(strings.TrimSpace(filename), " ", "_")
}
