package inquiries

import (
	"context"
	"errors"
	"strings"
	"time"

	"luxorient-backend/internal/cache"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrInvalidStatus = errors.New("invalid status")
	ErrNotFound      = errors.New("inquiry not found")
)

const statsKey = "cms:stats"

type Repository interface {
	Insert(ctx context.Context, item Inquiry) error
	Update(ctx context.Context, id string, set bson.M) (Inquiry, error)
	Delete(ctx context.Context, id string) (bool, error)
	FindOne(ctx context.Context, query bson.M) (Inquiry, error)
	List(ctx context.Context, query bson.M, sort bson.D, limit, offset int64) ([]Inquiry, error)
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

func (s *Service) Create(ctx context.Context, req CreateRequest) (Inquiry, error) {
	now := time.Now().In(s.location)
	item := Inquiry{
		ID:             primitive.NewObjectID().Hex(),
		Name:           strings.TrimSpace(req.Name),
		Email:          strings.TrimSpace(req.Email),
		Phone:          strings.TrimSpace(req.Phone),
		Destination:    strings.TrimSpace(req.Destination),
		TourSlug:       strings.TrimSpace(req.TourSlug),
		PreferredDates: strings.TrimSpace(req.PreferredDates),
		PartySize:      req.PartySize,
		Message:        strings.TrimSpace(req.Message),
		Status:         StatusNew,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Insert(ctx, item); err != nil {
		return Inquiry{}, err
	}

	s.invalidateStats(ctx)
	return item, nil
}

func (s *Service) ListAdmin(ctx context.Context, filter ListFilter, limit, offset int64) ([]Inquiry, int64, error) {
	filter.Status = strings.ToLower(strings.TrimSpace(filter.Status))
	if filter.Status != "" && !IsValidStatus(filter.Status) {
		return nil, 0, ErrInvalidStatus
	}

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	items, err := s.repo.List(ctx, query, bson.D{{Key: "created_at", Value: -1}}, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, query)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Service) GetAdminByID(ctx context.Context, id string) (Inquiry, error) {
	item, err := s.repo.FindOne(ctx, bson.M{"_id": strings.TrimSpace(id)})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Inquiry{}, ErrNotFound
		}
		return Inquiry{}, err
	}
	return item, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id, status string) (Inquiry, error) {
	id = strings.TrimSpace(id)
	status = strings.ToLower(strings.TrimSpace(status))
	if !IsValidStatus(status) {
		return Inquiry{}, ErrInvalidStatus
	}

	updated, err := s.repo.Update(ctx, id, bson.M{
		"status":     status,
		"updated_at": time.Now().In(s.location),
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Inquiry{}, ErrNotFound
		}
		return Inquiry{}, err
	}

	s.invalidateStats(ctx)
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

	s.invalidateStats(ctx)
	return nil
}

func (s *Service) invalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Delete(ctx, statsKey)
}
