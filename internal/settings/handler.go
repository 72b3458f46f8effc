package settings

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"luxorient-backend/internal/cache"
	"luxorient-backend/internal/httpx"
	"luxorient-backend/internal/middleware"
	"luxorient-backend/internal/transport"
	"luxorient-backend/internal/validation"
)

type Handler struct {
	service *Service
	val     *validation.Validator
	log     *slog.Logger
	cache   cache.Cache
	ttl     time.Duration
}

func NewHandler(service *Service, val *validation.Validator, log *slog.Logger, store cache.Cache, ttl time.Duration) *Handler {
	return &Handler{
		service: service,
		val:     val,
		log:     log,
		cache:   store,
		ttl:     ttl,
	}
}

func (h *Handler) PublicGet(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	if h.cache != nil {
		if cached, ok, err := h.cache.Get(r.Context(), cacheKey); err == nil && ok {
			log.Info("settings public get: cache hit")
			transport.WriteCachedJSON(w, http.StatusOK, cached)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	item, err := h.service.Get(ctx)
	if err != nil {
		log.Error("settings public get: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	if h.cache != nil {
		if payload, err := json.Marshal(item); err == nil {
			_ = h.cache.Set(r.Context(), cacheKey, payload, h.ttl)
		}
	}

	log.Info("settings public get: ok")
	transport.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) AdminGet(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	item, err := h.service.Get(ctx)
	if err != nil {
		log.Error("admin settings get: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("admin settings get: ok")
	transport.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) AdminSave(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req Form
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("admin settings save: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	if errs := req.Validate(h.val); len(errs) > 0 {
		log.Warn("admin settings save: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", errs)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	item, err := h.service.Save(ctx, req)
	if err != nil {
		log.Error("admin settings save: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("admin settings save: ok")
	transport.WriteJSON(w, http.StatusOK, item)
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
