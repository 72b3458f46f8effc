package destinations

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
	ErrNotFound    = errors.New("destination not found")
	ErrSlugExists  = errors.New("slug already exists")
	ErrInvalidSlug = errors.New("invalid slug")
)

const (
	listKey      = "destinations:list"
	featuredKey  = "destinations:featured"
	detailPrefix = "destinations:detail:"
	statsKey     = "cms:stats"
)

type Repository interface {
	Insert(ctx context.Context, item Destination) error
	Update(ctx context.Context, id string, set bson.M) (Destination, error)
	Delete(ctx context.Context, id string) (bool, error)
	FindOne(ctx context.Context, query bson.M) (Destination, error)
	List(ctx context.Context, query bson.M, sort bson.D, limit, offset int64) ([]Destination, error)
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

func (s *Service) Create(ctx context.Context, req Form) (Destination, error) {
	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = utils.Slugify(req.Name)
	}
	if slug == "" {
		return Destination{}, ErrInvalidSlug
	}

	now := time.Now().In(s.location)
	item := Destination{
		ID:          primitive.NewObjectID().Hex(),
		Slug:        slug,
		Name:        strings.TrimSpace(req.Name),
		Region:      strings.TrimSpace(req.Region),
		Summary:     strings.TrimSpace(req.Summary),
		Description: strings.TrimSpace(req.Description),
		HeroImage:   strings.TrimSpace(req.HeroImage),
		Gallery:     req.Gallery.Values(),
		Highlights:  req.Highlights.Values(),
		Featured:    boolValue(req.Featured),
		Published:   boolValue(req.Published),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, item); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return Destination{}, ErrSlugExists
		}
		return Destination{}, err
	}

	s.invalidate(ctx)
	return item, nil
}

func (s *Service) Update(ctx context.Context, id string, req Form) (Destination, error) {
	id = strings.TrimSpace(id)

	set := bson.M{
		"name":        strings.TrimSpace(req.Name),
		"region":      strings.TrimSpace(req.Region),
		"summary":     strings.TrimSpace(req.Summary),
		"description": strings.TrimSpace(req.Description),
		"hero_image":  strings.TrimSpace(req.HeroImage),
		"gallery":     req.Gallery.Values(),
		"highlights":  req.Highlights.Values(),
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
			return Destination{}, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return Destination{}, ErrSlugExists
		}
		return Destination{}, err
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

func (s *Service) ListPublished(ctx context.Context, search string, featuredOnly bool) ([]Destination, error) {
	query := bson.M{"published": true}
	if featuredOnly {
		query["featured"] = true
	}

	items, err := s.repo.List(ctx, query, bson.D{{Key: "created_at", Value: -1}}, 0, 0)
	if err != nil {
		return nil, err
	}
	return filterDestinations(items, search), nil
}

func (s *Service) GetPublishedBySlug(ctx context.Context, slug string) (Destination, error) {
	item, err := s.repo.FindOne(ctx, bson.M{"slug": strings.TrimSpace(slug), "published": true})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Destination{}, ErrNotFound
		}
		return Destination{}, err
	}
	return item, nil
}

func (s *Service) ListAdmin(ctx context.Context, search string, limit, offset int64) ([]Destination, int64, error) {
	items, err := s.repo.List(ctx, bson.M{}, bson.D{{Key: "created_at", Value: -1}}, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}
	return filterDestinations(items, search), total, nil
}

func filterDestinations(items []Destination, search string) []Destination {
	if strings.TrimSpace(search) == "" {
		return items
	}
	out := make([]Destination, 0, len(items))
	for _, d := range items {
		if forms.MatchesSearch(search, d.Name, d.Region, d.Slug) {
			out = append(out, d)
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
