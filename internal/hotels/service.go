package hotels

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
	ErrNotFound    = errors.New("hotel not found")
	ErrSlugExists  = errors.New("slug already exists")
	ErrInvalidSlug = errors.New("invalid slug")
)

const (
	listKey      = "hotels:list"
	featuredKey  = "hotels:featured"
	detailPrefix = "hotels:detail:"
	statsKey     = "cms:stats"
)

type Repository interface {
	Insert(ctx context.Context, item Hotel) error
	Update(ctx context.Context, id string, set bson.M) (Hotel, error)
	Delete(ctx context.Context, id string) (bool, error)
	FindOne(ctx context.Context, query bson.M) (Hotel, error)
	List(ctx context.Context, query bson.M, sort bson.D, limit, offset int64) ([]Hotel, error)
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

func (s *Service) Create(ctx context.Context, req Form) (Hotel, error) {
	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = utils.Slugify(req.Name)
	}
	if slug == "" {
		return Hotel{}, ErrInvalidSlug
	}

	now := time.Now().In(s.location)
	item := Hotel{
		ID:          primitive.NewObjectID().Hex(),
		Slug:        slug,
		Name:        strings.TrimSpace(req.Name),
		Region:      strings.TrimSpace(req.Region),
		Summary:     strings.TrimSpace(req.Summary),
		Description: strings.TrimSpace(req.Description),
		HeroImage:   strings.TrimSpace(req.HeroImage),
		Gallery:     req.Gallery.Values(),
		Amenities:   req.Amenities.Values(),
		Stars:       req.Stars.Int(),
		Featured:    boolValue(req.Featured),
		Published:   boolValue(req.Published),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, item); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return Hotel{}, ErrSlugExists
		}
		return Hotel{}, err
	}

	s.invalidate(ctx)
	return item, nil
}

func (s *Service) Update(ctx context.Context, id string, req Form) (Hotel, error) {
	id = strings.TrimSpace(id)

	set := bson.M{
		"name":        strings.TrimSpace(req.Name),
		"region":      strings.TrimSpace(req.Region),
		"summary":     strings.TrimSpace(req.Summary),
		"description": strings.TrimSpace(req.Description),
		"hero_image":  strings.TrimSpace(req.HeroImage),
		"gallery":     req.Gallery.Values(),
		"amenities":   req.Amenities.Values(),
		"stars":       req.Stars.Int(),
		"featured":    boolValue(req.Featured),
		"published":   boolValue(req.Published),
		"updated_at":  time.Now().In(s.location),
	}
	if slug := strings.TrimSpace(req.Slug); slug != "" {
		set["slug"] = utils.Slugify(slug)
	}

	updated, err := s.repo.Update(ctx, id, set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Hotel{}, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return Hotel{}, ErrSlugExists
		}
		return Hotel{}, err
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

func (s *Service) ListPublished(ctx context.Context, search string, featuredOnly bool) ([]Hotel, error) {
	query := bson.M{"published": true}
	if featuredOnly {
		query["featured"] = true
	}

	items, err := s.repo.List(ctx, query, bson.D{{Key: "created_at", Value: -1}}, 0, 0)
	if err != nil {
		return nil, err
	}
	return filterHotels(items, search), nil
}

func (s *Service) GetPublishedBySlug(ctx context.Context, slug string) (Hotel, error) {
	item, err := s.repo.FindOne(ctx, bson.M{"slug": strings.TrimSpace(slug), "published": true})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Hotel{}, ErrNotFound
		}
		return Hotel{}, err
	}
	return item, nil
}

func (s *Service) ListAdmin(ctx context.Context, search string, limit, offset int64) ([]Hotel, int64, error) {
	items, err := s.repo.List(ctx, bson.M{}, bson.D{{Key: "created_at", Value: -1}}, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}
	return filterHotels(items, search), total, nil
}

func filterHotels(items []Hotel, search string) []Hotel {
	if strings.TrimSpace(search) == "" {
		return items
	}
	out := make([]Hotel, 0, len(items))
	for _, h := range items {
		if forms.MatchesSearch(search, h.Name, h.Region, h.Slug) {
			out = append(out, h)
		}
	}
	return out
}

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
