// Package stats serves the CMS dashboard counters. Counts are cheap but
// hit every collection, so the response is cached and invalidated by the
// entity services whenever content or inquiries change.
package stats

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"luxorient-backend/internal/cache"
	"luxorient-backend/internal/db"
	"luxorient-backend/internal/middleware"
	"luxorient-backend/internal/transport"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const cacheKey = "cms:stats"

type Overview struct {
	Tours          int64 `json:"tours"`
	PublishedTours int64 `json:"published_tours"`
	Hotels         int64 `json:"hotels"`
	Destinations   int64 `json:"destinations"`
	Posts          int64 `json:"posts"`
	Inquiries      int64 `json:"inquiries"`
	NewInquiries   int64 `json:"new_inquiries"`
}

type Handler struct {
	cols  *db.Collections
	cache cache.Cache
	log   *slog.Logger
	ttl   time.Duration
}

func NewHandler(cols *db.Collections, store cache.Cache, log *slog.Logger, ttl time.Duration) *Handler {
	return &Handler{
		cols:  cols,
		cache: store,
		log:   log,
		ttl:   ttl,
	}
}

func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	if h.cache != nil {
		if cached, ok, err := h.cache.Get(r.Context(), cacheKey); err == nil && ok {
			log.Info("cms stats: cache hit")
			transport.WriteCachedJSON(w, http.StatusOK, cached)
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	out := Overview{}
	counts := []struct {
		dst   *int64
		col   *mongo.Collection
		query bson.M
	}{
		{&out.Tours, h.cols.Tours, bson.M{}},
		{&out.PublishedTours, h.cols.Tours, bson.M{"published": true}},
		{&out.Hotels, h.cols.Hotels, bson.M{}},
		{&out.Destinations, h.cols.Destinations, bson.M{}},
		{&out.Posts, h.cols.Posts, bson.M{}},
		{&out.Inquiries, h.cols.Inquiries, bson.M{}},
		{&out.NewInquiries, h.cols.Inquiries, bson.M{"status": "new"}},
	}
	for _, c := range counts {
		n, err := c.col.CountDocuments(ctx, c.query)
		if err != nil {
			log.Error("cms stats: database error", slog.String("error", err.Error()))
			transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
			return
		}
		*c.dst = n
	}

	if h.cache != nil {
		if payload, err := json.Marshal(out); err == nil {
			_ = h.cache.Set(r.Context(), cacheKey, payload, h.ttl)
		}
	}

	log.Info("cms stats: ok")
	transport.WriteJSON(w, http.StatusOK, out)
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
