package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/winnow-hq/winnow-api/internal/apperror"
	middleware "github.com/winnow-hq/winnow-api/internal/api/middlewares"
	"github.com/winnow-hq/winnow-api/internal/core"
	"github.com/winnow-hq/winnow-api/internal/models"
)

type JDHandler struct {
	jds core.JDStore
	log *zap.Logger
}

func NewJDHandler(jds core.JDStore, log *zap.Logger) *JDHandler {
	return &JDHandler{jds: jds, log: log}
}

func (h *JDHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, h.log, apperror.Unauthorized("Invalid authentication"))
		return
	}

	var jd models.JobDescription
	if err := json.NewDecoder(r.Body).Decode(&jd); err != nil {
		writeError(w, h.log, apperror.Invalid("invalid body"))
		return
	}

	id, err := h.jds.Create(r.Context(), claims.UID, &jd)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"id":      id,
		"message": "JD created successfully",
	})
}

// List returns every JD visible to the caller, each tagged with an injected
// id and _role field.
func (h *JDHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, h.log, apperror.Unauthorized("Invalid authentication"))
		return
	}

	jds, err := h.jds.ListVisible(r.Context(), claims.UID, claims.Email)
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	if jds == nil {
		jds = []map[string]interface{}{}
	}
	writeJSON(w, http.StatusOK, jds)
}

// Get is deliberately unauthenticated: a JD is fetchable by anyone holding
// its id, which is how share links work.
func (h *JDHandler) Get(w http.ResponseWriter, r *http.Request) {
	data, err := h.jds.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (h *JDHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, h.log, apperror.Unauthorized("Invalid authentication"))
		return
	}

	var patch models.JDPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, h.log, apperror.Invalid("invalid body"))
		return
	}

	if err := h.jds.Update(r.Context(), chi.URLParam(r, "id"), claims.UID, &patch); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "JD updated successfully"})
}

func (h *JDHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, h.log, apperror.Unauthorized("Invalid authentication"))
		return
	}

	if err := h.jds.Delete(r.Context(), chi.URLParam(r, "id"), claims.UID); err != nil {
		writeError(w, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "JD deleted successfully"})
}
