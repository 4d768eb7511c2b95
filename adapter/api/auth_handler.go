package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taskflow/taskflow/internal/identity/application/auth"
	identityDomain "github.com/taskflow/taskflow/internal/identity/domain"
	"github.com/taskflow/taskflow/pkg/observability"
)

// AuthHandler handles registration, login and request authentication.
type AuthHandler struct {
	service *auth.Service
	logger  *slog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(service *auth.Service, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{service: service, logger: logger}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	result, err := h.service.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.respondAuthError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, tokenResponse{Token: result.Token})
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	result, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.respondAuthError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: result.Token})
}

// RequireAuth wraps a handler with bearer token authentication. The
// authenticated user's id is placed in the request context.
func (h *AuthHandler) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "Bearer token required")
			return
		}

		ownerID, err := h.service.VerifyToken(r.Context(), token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		ctx := withOwnerID(r.Context(), ownerID)
		ctx = observability.WithUserID(ctx, ownerID.String())
		next(w, r.WithContext(ctx))
	}
}

func (h *AuthHandler) respondAuthError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, identityDomain.ErrNameTooShort),
		errors.Is(err, identityDomain.ErrNameTooLong),
		errors.Is(err, identityDomain.ErrInvalidEmail),
		errors.Is(err, identityDomain.ErrWeakPassword):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, identityDomain.ErrEmailTaken):
		writeError(w, http.StatusConflict, "Email already registered")
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
	default:
		h.logger.ErrorContext(r.Context(), "auth request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
