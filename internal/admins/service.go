package admins

import (
	"context"
	"errors"
	"strings"
	"time"

	"luxorient-backend/internal/auth"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrSetupClosed        = errors.New("registration closed")
	ErrNotFound           = errors.New("admin not found")
)

type Repository interface {
	Insert(ctx context.Context, item AdminUser) error
	Update(ctx context.Context, id string, set bson.M) (AdminUser, error)
	FindOne(ctx context.Context, query bson.M) (AdminUser, error)
	Count(ctx context.Context, query bson.M) (int64, error)
}

type Service struct {
	repo     Repository
	setupKey string
	location *time.Location
}

func NewService(repo Repository, setupKey string, location *time.Location) *Service {
	return &Service{
		repo:     repo,
		setupKey: setupKey,
		location: location,
	}
}

func (s *Service) Authenticate(ctx context.Context, username, password string) (AdminUser, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	user, err := s.repo.FindOne(ctx, bson.M{"username": username})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return AdminUser{}, ErrInvalidCredentials
		}
		return AdminUser{}, err
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return AdminUser{}, ErrInvalidCredentials
	}
	return user, nil
}

// Register creates an admin account. The first account can always be
// created; after that a matching setup key is required.
func (s *Service) Register(ctx context.Context, username, password, setupKey string) (AdminUser, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	count, err := s.repo.Count(ctx, bson.M{})
	if err != nil {
		return AdminUser{}, err
	}
	if count > 0 {
		if s.setupKey == "" || setupKey != s.setupKey {
			return AdminUser{}, ErrSetupClosed
		}
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return AdminUser{}, err
	}

	now := time.Now().In(s.location)
	user := AdminUser{
		ID:           primitive.NewObjectID().Hex(),
		Username:     username,
		PasswordHash: hash,
		Role:         "admin",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Insert(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return AdminUser{}, ErrUsernameTaken
		}
		return AdminUser{}, err
	}
	return user, nil
}

func (s *Service) GetByUsername(ctx context.Context, username string) (AdminUser, error) {
	user, err := s.repo.FindOne(ctx, bson.M{"username": strings.ToLower(strings.TrimSpace(username))})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return AdminUser{}, ErrNotFound
		}
		return AdminUser{}, err
	}
	return user, nil
}

func (s *Service) ChangePassword(ctx context.Context, username, current, next string) error {
	user, err := s.Authenticate(ctx, username, current)
	if err != nil {
		return err
	}

	hash, err := auth.HashPassword(next)
	if err != nil {
		return err
	}

	_, err = s.repo.Update(ctx, user.ID, bson.M{
		"password_hash": hash,
		"updated_at":    time.Now().In(s.location),
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
