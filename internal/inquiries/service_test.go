package inquiries

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeRepo struct {
	items map[string]Inquiry
	order []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: map[string]Inquiry{}}
}

func (r *fakeRepo) Insert(ctx context.Context, item Inquiry) error {
	r.items[item.ID] = item
	r.order = append(r.order, item.ID)
	return nil
}

func (r *fakeRepo) Update(ctx context.Context, id string, set bson.M) (Inquiry, error) {
	item, ok := r.items[id]
	if !ok {
		return Inquiry{}, mongo.ErrNoDocuments
	}
	for key, value := range set {
		switch key {
		case "status":
			item.Status = value.(string)
		case "updated_at":
			item.UpdatedAt = value.(time.Time)
		}
	}
	r.items[id] = item
	return item, nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := r.items[id]; !ok {
		return false, nil
	}
	delete(r.items, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (r *fakeRepo) FindOne(ctx context.Context, query bson.M) (Inquiry, error) {
	for _, id := range r.order {
		if r.matches(r.items[id], query) {
			return r.items[id], nil
		}
	}
	return Inquiry{}, mongo.ErrNoDocuments
}

func (r *fakeRepo) List(ctx context.Context, query bson.M, sort bson.D, limit, offset int64) ([]Inquiry, error) {
	out := make([]Inquiry, 0)
	for _, id := range r.order {
		if r.matches(r.items[id], query) {
			out = append(out, r.items[id])
		}
	}
	return out, nil
}

func (r *fakeRepo) Count(ctx context.Context, query bson.M) (int64, error) {
	items, _ := r.List(ctx, query, nil, 0, 0)
	return int64(len(items)), nil
}

func (r *fakeRepo) matches(item Inquiry, query bson.M) bool {
	for key, value := range query {
		switch key {
		case "_id":
			if item.ID != value.(string) {
				return false
			}
		case "status":
			if item.Status != value.(string) {
				return false
			}
		}
	}
	return true
}

type fakeCache struct {
	deleted []string
}

func (c *fakeCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, keys ...string) error {
	c.deleted = append(c.deleted, keys...)
	return nil
}

func (c *fakeCache) DeletePrefix(ctx context.Context, prefix string) error {
	return nil
}

func newTestService() (*Service, *fakeRepo, *fakeCache) {
	repo := newFakeRepo()
	store := &fakeCache{}
	return NewService(repo, store, time.UTC), repo, store
}

func TestInquiryCreateDefaults(t *testing.T) {
	svc, _, store := newTestService()

	item, err := svc.Create(context.Background(), CreateRequest{
		Name:    "  Nadia Hassan  ",
		Email:   "nadia@example.com",
		Message: "Looking at a Nile cruise in October.",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if item.Status != StatusNew {
		t.Fatalf("expected status new, got %q", item.Status)
	}
	if item.Name != "Nadia Hassan" {
		t.Fatalf("expected trimmed name, got %q", item.Name)
	}
	if item.ID == "" || item.CreatedAt.IsZero() {
		t.Fatalf("expected server-assigned identity: %+v", item)
	}
	if len(store.deleted) == 0 || store.deleted[0] != statsKey {
		t.Fatalf("expected stats invalidation, got %v", store.deleted)
	}
}

func TestInquiryStatusTransitions(t *testing.T) {
	svc, _, store := newTestService()

	item, err := svc.Create(context.Background(), CreateRequest{
		Name: "Nadia", Email: "nadia@example.com", Message: "hello",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	store.deleted = nil

	updated, err := svc.UpdateStatus(context.Background(), item.ID, "Contacted")
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if updated.Status != StatusContacted {
		t.Fatalf("expected contacted, got %q", updated.Status)
	}
	if len(store.deleted) == 0 {
		t.Fatalf("expected stats invalidation after status change")
	}

	if _, err := svc.UpdateStatus(context.Background(), item.ID, "archived"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), "missing", StatusClosed); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestInquiryListStatusFilter(t *testing.T) {
	svc, _, _ := newTestService()

	first, _ := svc.Create(context.Background(), CreateRequest{Name: "A", Email: "a@example.com", Message: "m"})
	if _, err := svc.Create(context.Background(), CreateRequest{Name: "B", Email: "b@example.com", Message: "m"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), first.ID, StatusClosed); err != nil {
		t.Fatalf("update status: %v", err)
	}

	items, total, err := svc.ListAdmin(context.Background(), ListFilter{Status: "closed"}, 20, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].ID != first.ID {
		t.Fatalf("unexpected filtered list: total=%d items=%+v", total, items)
	}

	if _, _, err := svc.ListAdmin(context.Background(), ListFilter{Status: "spam"}, 20, 0); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestInquiryDelete(t *testing.T) {
	svc, repo, _ := newTestService()

	item, err := svc.Create(context.Background(), CreateRequest{Name: "A", Email: "a@example.com", Message: "m"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(context.Background(), item.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := repo.items[item.ID]; ok {
		t.Fatalf("expected inquiry to be gone")
	}
	if err := svc.Delete(context.Background(), item.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
