package tours

import (
	"context"
	"errors"
	"strings"
	"time"

	"luxorient-backend/internal/cache"
	"luxorient-backend/internal/forms"
	"luxorient-backend/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound    = errors.New("tour not found")
	ErrSlugExists  = errors.New("slug already exists")
	ErrInvalidSlug = errors.New("invalid slug")
)

const (
	listKey      = "tours:list"
	featuredKey  = "tours:featured"
	detailPrefix = "tours:detail:"
	statsKey     = "cms:stats"
)

type Repository interface {
	Insert(ctx context.Context, item Tour) error
	Update(ctx context.Context, id string, set bson.M) (Tour, error)
	Delete(ctx context.Context, id string) (bool, error)
	FindOne(ctx context.Context, query bson.M) (Tour, error)
	List(ctx context.Context, query bson.M, sort bson.D, limit, offset int64) ([]Tour, error)
	Count(ctx context.Context, query bson.M) (int64, error)
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

func (s *Service) Create(ctx context.Context, req Form) (Tour, error) {
	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = utils.Slugify(req.Title)
	}
	if slug == "" {
		return Tour{}, ErrInvalidSlug
	}

	now := time.Now().In(s.location)
	item := Tour{
		ID:           primitive.NewObjectID().Hex(),
		Slug:         slug,
		Title:        strings.TrimSpace(req.Title),
		Summary:      strings.TrimSpace(req.Summary),
		Description:  strings.TrimSpace(req.Description),
		Region:       strings.TrimSpace(req.Region),
		DurationDays: req.DurationDays.Int(),
		Price:        req.Price.Value(),
		HeroImage:    strings.TrimSpace(req.HeroImage),
		Gallery:      req.Gallery.Values(),
		Highlights:   req.Highlights.Values(),
		Itinerary:    req.Itinerary.Renumber(),
		Featured:     boolValue(req.Featured),
		Published:    boolValue(req.Published),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, item); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return Tour{}, ErrSlugExists
		}
		return Tour{}, err
	}

	s.invalidate(ctx)
	return item, nil
}

func (s *Service) Update(ctx context.Context, id string, req Form) (Tour, error) {
	id = strings.TrimSpace(id)

	set := bson.M{
		"title":         strings.TrimSpace(req.Title),
		"summary":       strings.TrimSpace(req.Summary),
		"description":   strings.TrimSpace(req.Description),
		"region":        strings.TrimSpace(req.Region),
		"duration_days": req.DurationDays.Int(),
		"price":         req.Price.Value(),
		"hero_image":    strings.TrimSpace(req.HeroImage),
		"gallery":       req.Gallery.Values(),
		"highlights":    req.Highlights.Values(),
		"itinerary":     req.Itinerary.Renumber(),
		"featured":      boolValue(req.Featured),
		"published":     boolValue(req.Published),
		"updated_at":    time.Now().In(s.location),
	}

	// An empty slug keeps the stored one; a title edit never re-derives it.
	if slug := strings.TrimSpace(req.Slug); slug != "" {
		set["slug"] = utils.Slugify(slug)
	}

	updated, err := s.repo.Update(ctx, id, set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Tour{}, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return Tour{}, ErrSlugExists
		}
		return Tour{}, err
	}

	s.invalidate(ctx)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}

	s.invalidate(ctx)
	return nil
}

// ListPublished returns visitor-visible tours in fetch order, optionally
// narrowed by a case-insensitive substring search over title, region and
// slug. The filter runs in memory over the fetched collection.
func (s *Service) ListPublished(ctx context.Context, search string, featuredOnly bool) ([]Tour, error) {
	query := bson.M{"published": true}
	if featuredOnly {
		query["featured"] = true
	}

	items, err := s.repo.List(ctx, query, bson.D{{Key: "created_at", Value: -1}}, 0, 0)
	if err != nil {
		return nil, err
	}
	return filterTours(items, search), nil
}

func (s *Service) GetPublishedBySlug(ctx context.Context, slug string) (Tour, error) {
	item, err := s.repo.FindOne(ctx, bson.M{"slug": strings.TrimSpace(slug), "published": true})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Tour{}, ErrNotFound
		}
		return Tour{}, err
	}
	return item, nil
}

func (s *Service) ListAdmin(ctx context.Context, search string, limit, offset int64) ([]Tour, int64, error) {
	items, err := s.repo.List(ctx, bson.M{}, bson.D{{Key: "created_at", Value: -1}}, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}
	return filterTours(items, search), total, nil
}

func filterTours(items []Tour, search string) []Tour {
	if strings.TrimSpace(search) == "" {
		return items
	}
	out := make([]Tour, 0, len(items))
	for _, t := range items {
		if forms.MatchesSearch(search, t.Title, t.Region, t.Slug) {
			out = append(out, t)
		}
	}
	return out
}

// invalidate marks every cached view this entity type can appear in as
// stale. Only successful mutations call it.
func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Delete(ctx, listKey, featuredKey, statsKey)
	_ = s.cache.DeletePrefix(ctx, detailPrefix)
}

func boolValue(b *bool) bool {
	return b != nil && *b
}
