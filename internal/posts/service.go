package posts

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
	ErrNotFound    = errors.New("post not found")
	ErrSlugExists  = errors.New("slug already exists")
	ErrInvalidSlug = errors.New("invalid slug")
)

const (
	listKey      = "posts:list"
	featuredKey  = "posts:featured"
	detailPrefix = "posts:detail:"
	statsKey     = "cms:stats"
)

type Repository interface {
	Insert(ctx context.Context, item Post) error
	Update(ctx context.Context, id string, set bson.M) (Post, error)
	Delete(ctx context.Context, id string) (bool, error)
	FindOne(ctx context.Context, query bson.M) (Post, error)
	List(ctx context.Context, query bson.M, sort bson.D, limit, offset int64) ([]Post, error)
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

func (s *Service) Create(ctx context.Context, req Form) (Post, error) {
	slug := strings.TrimSpace(req.Slug)
	if slug == "" {
		slug = utils.Slugify(req.Title)
	}
	if slug == "" {
		return Post{}, ErrInvalidSlug
	}

	now := time.Now().In(s.location)
	item := Post{
		ID:        primitive.NewObjectID().Hex(),
		Slug:      slug,
		Title:     strings.TrimSpace(req.Title),
		Author:    strings.TrimSpace(req.Author),
		Excerpt:   strings.TrimSpace(req.Excerpt),
		Body:      req.Body,
		HeroImage: strings.TrimSpace(req.HeroImage),
		Tags:      req.Tags.Values(),
		Featured:  boolValue(req.Featured),
		Published: boolValue(req.Published),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Insert(ctx, item); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return Post{}, ErrSlugExists
		}
		return Post{}, err
	}

	s.invalidate(ctx)
	return item, nil
}

func (s *Service) Update(ctx context.Context, id string, req Form) (Post, error) {
	id = strings.TrimSpace(id)

	set := bson.M{
		"title":      strings.TrimSpace(req.Title),
		"author":     strings.TrimSpace(req.Author),
		"excerpt":    strings.TrimSpace(req.Excerpt),
		"body":       req.Body,
		"hero_image": strings.TrimSpace(req.HeroImage),
		"tags":       req.Tags.Values(),
		"featured":   boolValue(req.Featured),
		"published":  boolValue(req.Published),
		"updated_at": time.Now().In(s.location),
	}
	if slug := strings.TrimSpace(req.Slug); slug != "" {
		set["slug"] = utils.Slugify(slug)
	}

	updated, err := s.repo.Update(ctx, id, set)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Post{}, ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return Post{}, ErrSlugExists
		}
		return Post{}, err
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

func (s *Service) ListPublished(ctx context.Context, search string, featuredOnly bool) ([]Post, error) {
	query := bson.M{"published": true}
	if featuredOnly {
		query["featured"] = true
	}

	items, err := s.repo.List(ctx, query, bson.D{{Key: "created_at", Value: -1}}, 0, 0)
	if err != nil {
		return nil, err
	}
	return filterPosts(items, search), nil
}

func (s *Service) GetPublishedBySlug(ctx context.Context, slug string) (Post, error) {
	item, err := s.repo.FindOne(ctx, bson.M{"slug": strings.TrimSpace(slug), "published": true})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Post{}, ErrNotFound
		}
		return Post{}, err
	}
	return item, nil
}

func (s *Service) ListAdmin(ctx context.Context, search string, limit, offset int64) ([]Post, int64, error) {
	items, err := s.repo.List(ctx, bson.M{}, bson.D{{Key: "created_at", Value: -1}}, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}
	return filterPosts(items, search), total, nil
}

func filterPosts(items []Post, search string) []Post {
	if strings.TrimSpace(search) == "" {
		return items
	}
	out := make([]Post, 0, len(items))
	for _, p := range items {
		if forms.MatchesSearch(search, p.Title, p.Author, p.Slug) {
			out = append(out, p)
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
