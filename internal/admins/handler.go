package admins

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"luxorient-backend/internal/auth"
	"luxorient-backend/internal/httpx"
	"luxorient-backend/internal/middleware"
	"luxorient-backend/internal/transport"
	"luxorient-backend/internal/validation"
)

type Handler struct {
	service *Service
	auth    *auth.Manager
	val     *validation.Validator
	log     *slog.Logger
}

func NewHandler(service *Service, manager *auth.Manager, val *validation.Validator, log *slog.Logger) *Handler {
	return &Handler{
		service: service,
		auth:    manager,
		val:     val,
		log:     log,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req LoginRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("admin login: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	if err := h.val.Struct(req); err != nil {
		log.Warn("admin login: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	if h.auth == nil || len(h.auth.Secret) == 0 {
		log.Warn("admin login: not configured")
		transport.WriteError(w, http.StatusServiceUnavailable, "admin auth not configured", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := h.service.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			log.Warn("admin login: invalid credentials", slog.String("username", req.Username))
			transport.WriteError(w, http.StatusUnauthorized, "invalid credentials", nil)
			return
		}
		log.Error("admin login: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	tokens, err := h.issueTokens(user)
	if err != nil {
		log.Error("admin login: token error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "token error", nil)
		return
	}

	log.Info("admin login: ok", slog.String("username", user.Username))
	transport.WriteJSON(w, http.StatusOK, tokens)
}

// Refresh exchanges a valid refresh token for a fresh pair. The refresh
// token travels in the body, not the Authorization header.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req RefreshRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("admin refresh: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	if err := h.val.Struct(req); err != nil {
		log.Warn("admin refresh: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	claims, err := h.auth.Parse(req.RefreshToken)
	if err != nil || claims.Kind != auth.KindRefresh || claims.Role != "admin" {
		log.Warn("admin refresh: invalid refresh token")
		transport.WriteError(w, http.StatusUnauthorized, "invalid refresh token", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// The account must still exist; a deleted admin cannot keep rotating
	// tokens.
	user, err := h.service.GetByUsername(ctx, claims.Username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("admin refresh: unknown account", slog.String("username", claims.Username))
			transport.WriteError(w, http.StatusUnauthorized, "invalid refresh token", nil)
			return
		}
		log.Error("admin refresh: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	tokens, err := h.issueTokens(user)
	if err != nil {
		log.Error("admin refresh: token error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "token error", nil)
		return
	}

	log.Info("admin refresh: ok", slog.String("username", user.Username))
	transport.WriteJSON(w, http.StatusOK, tokens)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		transport.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := h.service.GetByUsername(ctx, claims.Username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			transport.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
			return
		}
		log.Error("admin me: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	transport.WriteJSON(w, http.StatusOK, user)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req RegisterRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("admin register: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	if err := h.val.Struct(req); err != nil {
		log.Warn("admin register: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	user, err := h.service.Register(ctx, req.Username, req.Password, strings.TrimSpace(r.Header.Get("X-Setup-Key")))
	if err != nil {
		if errors.Is(err, ErrSetupClosed) {
			log.Warn("admin register: closed", slog.String("username", req.Username))
			transport.WriteError(w, http.StatusForbidden, "registration closed", nil)
			return
		}
		if errors.Is(err, ErrUsernameTaken) {
			log.Warn("admin register: username taken", slog.String("username", req.Username))
			transport.WriteError(w, http.StatusConflict, "username already taken", nil)
			return
		}
		log.Error("admin register: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("admin register: ok", slog.String("username", user.Username))
	transport.WriteJSON(w, http.StatusCreated, user)
}

func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		transport.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req ChangePasswordRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("admin password: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	if err := h.val.Struct(req); err != nil {
		log.Warn("admin password: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", httpx.ValidationDetails(h.val.ValidationErrors(err)))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	if err := h.service.ChangePassword(ctx, claims.Username, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			log.Warn("admin password: invalid credentials", slog.String("username", claims.Username))
			transport.WriteError(w, http.StatusUnauthorized, "invalid credentials", nil)
			return
		}
		log.Error("admin password: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("admin password: ok", slog.String("username", claims.Username))
	transport.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) issueTokens(user AdminUser) (TokenResponse, error) {
	access, err := h.auth.NewAccessToken(user.Username, user.Role)
	if err != nil {
		return TokenResponse{}, err
	}
	refresh, err := h.auth.NewRefreshToken(user.Username, user.Role)
	if err != nil {
		return TokenResponse{}, err
	}
	return TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int(h.auth.AccessTTL.Seconds()),
	}, nil
}

func (h *Handler) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return h.log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return h.log.With(slog.String("request_id", id))
	}
	return h.log
}
