package hotels

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"luxorient-backend/internal/cache"
	"luxorient-backend/internal/httpx"
	"luxorient-backend/internal/middleware"
	"luxorient-backend/internal/transport"
	"luxorient-backend/internal/validation"

	"github.com/go-chi/chi/v5"
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

func (h *Handler) PublicList(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	search := strings.TrimSpace(r.URL.Query().Get("q"))
	featuredOnly := r.URL.Query().Get("featured") == "true"

	cacheKey := ""
	if search == "" {
		cacheKey = listKey
		if featuredOnly {
			cacheKey = featuredKey
		}
		if h.cache != nil {
			if cached, ok, err := h.cache.Get(r.Context(), cacheKey); err == nil && ok {
				log.Info("hotels public list: cache hit")
				transport.WriteCachedJSON(w, http.StatusOK, cached)
				return
			}
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, err := h.service.ListPublished(ctx, search, featuredOnly)
	if err != nil {
		log.Error("hotels public list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	response := map[string]interface{}{"hotels": items}
	if cacheKey != "" && h.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			_ = h.cache.Set(r.Context(), cacheKey, payload, h.ttl)
		}
	}

	log.Info("hotels public list: ok", slog.Int("count", len(items)))
	transport.WriteJSON(w, http.StatusOK, response)
}

func (h *Handler) PublicGetBySlug(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	slug := strings.TrimSpace(chi.URLParam(r, "slug"))
	if slug == "" {
		log.Warn("hotels public get: missing slug")
		transport.WriteError(w, http.StatusBadRequest, "missing slug", nil)
		return
	}

	cacheKey := detailPrefix + slug
	if h.cache != nil {
		if cached, ok, err := h.cache.Get(r.Context(), cacheKey); err == nil && ok {
			log.Info("hotels public get: cache hit", slog.String("slug", slug))
			transport.WriteCachedJSON(w, http.StatusOK, cached)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	item, err := h.service.GetPublishedBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("hotels public get: not found", slog.String("slug", slug))
			transport.WriteError(w, http.StatusNotFound, "hotel not found", nil)
			return
		}
		log.Error("hotels public get: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	if h.cache != nil {
		if payload, err := json.Marshal(item); err == nil {
			_ = h.cache.Set(r.Context(), cacheKey, payload, h.ttl)
		}
	}

	log.Info("hotels public get: ok", slog.String("slug", slug))
	transport.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	limit, offset, err := httpx.ParseLimitOffset(r.URL.Query(), 50, 200)
	if err != nil {
		log.Warn("admin hotels list: invalid query", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}
	search := strings.TrimSpace(r.URL.Query().Get("q"))

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	items, total, err := h.service.ListAdmin(ctx, search, limit, offset)
	if err != nil {
		log.Error("admin hotels list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("admin hotels list: ok", slog.Int("count", len(items)))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"hotels": items,
		"limit":  limit,
		"offset": offset,
		"total":  total,
	})
}

func (h *Handler) AdminCreate(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req Form
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("admin hotels create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	if errs := req.Validate(h.val); len(errs) > 0 {
		log.Warn("admin hotels create: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", errs)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	item, err := h.service.Create(ctx, req)
	if err != nil {
		if errors.Is(err, ErrSlugExists) {
			log.Warn("admin hotels create: slug exists")
			transport.WriteError(w, http.StatusConflict, "slug already exists", nil)
			return
		}
		if errors.Is(err, ErrInvalidSlug) {
			transport.WriteError(w, http.StatusBadRequest, "validation error", map[string]string{"slug": "is invalid"})
			return
		}
		log.Error("admin hotels create: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("admin hotels create: ok", slog.String("hotel_id", item.ID), slog.String("slug", item.Slug))
	transport.WriteJSON(w, http.StatusCreated, item)
}

func (h *Handler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		log.Warn("admin hotels update: missing id")
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	var req Form
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("admin hotels update: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	if errs := req.Validate(h.val); len(errs) > 0 {
		log.Warn("admin hotels update: validation error")
		transport.WriteError(w, http.StatusBadRequest, "validation error", errs)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	item, err := h.service.Update(ctx, id, req)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("admin hotels update: not found", slog.String("hotel_id", id))
			transport.WriteError(w, http.StatusNotFound, "hotel not found", nil)
			return
		}
		if errors.Is(err, ErrSlugExists) {
			log.Warn("admin hotels update: slug exists")
			transport.WriteError(w, http.StatusConflict, "slug already exists", nil)
			return
		}
		log.Error("admin hotels update: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("admin hotels update: ok", slog.String("hotel_id", id), slog.String("slug", item.Slug))
	transport.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" {
		log.Warn("admin hotels delete: missing id")
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.service.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("admin hotels delete: not found", slog.String("hotel_id", id))
			transport.WriteError(w, http.StatusNotFound, "hotel not found", nil)
			return
		}
		log.Error("admin hotels delete: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("admin hotels delete: ok", slog.String("hotel_id", id))
	transport.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
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
