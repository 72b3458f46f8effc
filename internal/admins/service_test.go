package admins

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeRepo struct {
	items map[string]AdminUser
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: map[string]AdminUser{}}
}

func (r *fakeRepo) Insert(ctx context.Context, item AdminUser) error {
	for _, existing := range r.items {
		if existing.Username == item.Username {
			return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
		}
	}
	r.items[item.ID] = item
	return nil
}

func (r *fakeRepo) Update(ctx context.Context, id string, set bson.M) (AdminUser, error) {
	item, ok := r.items[id]
	if !ok {
		return AdminUser{}, mongo.ErrNoDocuments
	}
	for key, value := range set {
		switch key {
		case "password_hash":
			item.PasswordHash = value.(string)
		case "updated_at":
			item.UpdatedAt = value.(time.Time)
		}
	}
	r.items[id] = item
	return item, nil
}

func (r *fakeRepo) FindOne(ctx context.Context, query bson.M) (AdminUser, error) {
	username, _ := query["username"].(string)
	for _, item := range r.items {
		if item.Username == username {
			return item, nil
		}
	}
	return AdminUser{}, mongo.ErrNoDocuments
}

func (r *fakeRepo) Count(ctx context.Context, query bson.M) (int64, error) {
	return int64(len(r.items)), nil
}

func TestRegisterFirstAdminIsOpen(t *testing.T) {
	svc := NewService(newFakeRepo(), "", time.UTC)

	user, err := svc.Register(context.Background(), "Admin", "a-long-password", "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Username != "admin" {
		t.Fatalf("expected lowercased username, got %q", user.Username)
	}
	if user.Role != "admin" {
		t.Fatalf("expected admin role, got %q", user.Role)
	}
	if user.PasswordHash == "" || user.PasswordHash == "a-long-password" {
		t.Fatalf("expected hashed password")
	}
}

func TestRegisterSecondAdminNeedsSetupKey(t *testing.T) {
	svc := NewService(newFakeRepo(), "setup-key", time.UTC)

	if _, err := svc.Register(context.Background(), "first", "a-long-password", ""); err != nil {
		t.Fatalf("register first: %v", err)
	}

	if _, err := svc.Register(context.Background(), "second", "a-long-password", "wrong"); !errors.Is(err, ErrSetupClosed) {
		t.Fatalf("expected ErrSetupClosed, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "second", "a-long-password", "setup-key"); err != nil {
		t.Fatalf("register with key: %v", err)
	}
}

func TestRegisterClosedWithoutSetupKey(t *testing.T) {
	svc := NewService(newFakeRepo(), "", time.UTC)

	if _, err := svc.Register(context.Background(), "first", "a-long-password", ""); err != nil {
		t.Fatalf("register first: %v", err)
	}
	if _, err := svc.Register(context.Background(), "second", "a-long-password", ""); !errors.Is(err, ErrSetupClosed) {
		t.Fatalf("expected ErrSetupClosed, got %v", err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := NewService(newFakeRepo(), "setup-key", time.UTC)

	if _, err := svc.Register(context.Background(), "admin", "a-long-password", ""); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(context.Background(), "Admin", "a-long-password", "setup-key"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	svc := NewService(newFakeRepo(), "", time.UTC)

	if _, err := svc.Register(context.Background(), "admin", "a-long-password", ""); err != nil {
		t.Fatalf("register: %v", err)
	}

	user, err := svc.Authenticate(context.Background(), " Admin ", "a-long-password")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user.Username != "admin" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := svc.Authenticate(context.Background(), "admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "ghost", "a-long-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	svc := NewService(newFakeRepo(), "", time.UTC)

	if _, err := svc.Register(context.Background(), "admin", "a-long-password", ""); err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.ChangePassword(context.Background(), "admin", "wrong", "another-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	if err := svc.ChangePassword(context.Background(), "admin", "a-long-password", "another-password"); err != nil {
		t.Fatalf("change password: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "admin", "another-password"); err != nil {
		t.Fatalf("authenticate with new password: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), "admin", "a-long-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password must stop working")
	}
}
