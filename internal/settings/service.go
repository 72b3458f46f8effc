package settings

import (
	"context"
	"errors"
	"strings"
	"time"

	"luxorient-backend/internal/cache"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var ErrNotFound = errors.New("settings not found")

const cacheKey = "settings:site"

type Repository interface {
	Upsert(ctx context.Context, query bson.M, set bson.M) (SiteSettings, error)
	FindOne(ctx context.Context, query bson.M) (SiteSettings, error)
}

type Service struct {
	repo     Repository
	cache    cache.Cache
	location *time.Location
}

func NewService(repo Repository, store cache.Cache, location *time.Location) *Service {
	return &Service{
		repo:     repo,
		cache:    store,
		location: location,
	}
}

// Get returns the stored settings, or sensible defaults when the site has
// never been configured.
func (s *Service) Get(ctx context.Context) (SiteSettings, error) {
	item, err := s.repo.FindOne(ctx, bson.M{"_id": DocumentID})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Defaults(), nil
		}
		return SiteSettings{}, err
	}
	if item.Social == nil {
		item.Social = map[string]string{}
	}
	return item, nil
}

// Save upserts the singleton document. The first save creates it.
func (s *Service) Save(ctx context.Context, req Form) (SiteSettings, error) {
	social := req.Social
	if social == nil {
		social = map[string]string{}
	}

	set := bson.M{
		"site_name":     strings.TrimSpace(req.SiteName),
		"tagline":       strings.TrimSpace(req.Tagline),
		"contact_email": strings.TrimSpace(req.ContactEmail),
		"phone":         strings.TrimSpace(req.Phone),
		"address":       strings.TrimSpace(req.Address),
		"social":        social,
		"hero_image":    strings.TrimSpace(req.HeroImage),
		"updated_at":    time.Now().In(s.location),
	}

	updated, err := s.repo.Upsert(ctx, bson.M{"_id": DocumentID}, set)
	if err != nil {
		return SiteSettings{}, err
	}

	if s.cache != nil {
		_ = s.cache.Delete(ctx, cacheKey)
	}
	return updated, nil
}

// Defaults are served until an admin saves settings for the first time.
func Defaults() SiteSettings {
	return SiteSettings{
		ID:       DocumentID,
		SiteName: "LuxOrient Travel",
		Tagline:  "Tailor-made journeys through Egypt",
		Social:   map[string]string{},
	}
}
