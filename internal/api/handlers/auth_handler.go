package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/winnow-hq/winnow-api/internal/apperror"
	middleware "github.com/winnow-hq/winnow-api/internal/api/middlewares"
	"github.com/winnow-hq/winnow-api/internal/core"
	"github.com/winnow-hq/winnow-api/internal/models"
)

type AuthHandler struct {
	auth     core.AuthClient
	users    core.UserStore
	log      *zap.Logger
	validate *validator.Validate
}

func NewAuthHandler(auth core.AuthClient, users core.UserStore, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		users:    users,
		log:      log,
		validate: validator.New(),
	}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Nickname string `json:"nickname" validate:"omitempty,max=64"`
}

// Register creates the auth-provider account first, then the matching users
// document. A duplicate email fails at the provider and comes back as 400.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.log, apperror.Invalid("invalid body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, h.log, apperror.Invalid(err.Error()))
		return
	}

	nickname := req.Nickname
	if nickname == "" {
		nickname = models.EmailLocalPart(req.Email)
	}

	uid, err := h.auth.CreateAccount(r.Context(), req.Email, req.Password, nickname)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	if err := h.users.Create(r.Context(), uid, req.Email, nickname); err != nil {
		writeError(w, h.log, apperror.Invalid(err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"uid":     uid,
		"email":   req.Email,
		"message": "User registered successfully",
	})
}

// GoogleLogin syncs the users document for an externally authenticated
// caller: created on first sign-in, lightly touched on every later one.
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, h.log, apperror.Unauthorized("Invalid authentication"))
		return
	}

	if err := h.users.SyncExternalLogin(r.Context(), claims); err != nil {
		writeError(w, h.log, apperror.Invalid(err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"uid":      claims.UID,
		"email":    claims.Email,
		"nickname": models.DisplayName(claims),
		"message":  "Google login synced successfully",
	})
}

// Me returns the caller's user document. A missing document degrades to the
// bare token identity instead of an error.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, h.log, apperror.Unauthorized("Invalid authentication"))
		return
	}

	data, err := h.users.Get(r.Context(), claims.UID)
	if err != nil {
		writeError(w, h.log, err)
		return
	}

	resp := map[string]interface{}{"uid": claims.UID}
	if data == nil {
		resp["email"] = claims.Email
	} else {
		for k, v := range data {
			resp[k] = v
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
