package destinations

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeRepo struct {
	items map[string]Destination
	order []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: map[string]Destination{}}
}

func (r *fakeRepo) Insert(ctx context.Context, item Destination) error {
	for _, existing := range r.items {
		if existing.Slug == item.Slug {
			return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
		}
	}
	r.items[item.ID] = item
	r.order = append(r.order, item.ID)
	return nil
}

func (r *fakeRepo) Update(ctx context.Context, id string, set bson.M) (Destination, error) {
	item, ok := r.items[id]
	if !ok {
		return Destination{}, mongo.ErrNoDocuments
	}
	for key, value := range set {
		switch key {
		case "slug":
			item.Slug = value.(string)
		case "name":
			item.Name = value.(string)
		case "region":
			item.Region = value.(string)
		case "summary":
			item.Summary = value.(string)
		case "description":
			item.Description = value.(string)
		case "hero_image":
			item.HeroImage = value.(string)
		case "gallery":
			item.Gallery = value.([]string)
		case "highlights":
			item.Highlights = value.([]string)
		case "featured":
			item.Featured = value.(bool)
		case "published":
			item.Published = value.(bool)
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

func (r *fakeRepo) FindOne(ctx context.Context, query bson.M) (Destination, error) {
	for _, id := range r.order {
		item := r.items[id]
		if r.matches(item, query) {
			return item, nil
		}
	}
	return Destination{}, mongo.ErrNoDocuments
}

func (r *fakeRepo) List(ctx context.Context, query bson.M, sort bson.D, limit, offset int64) ([]Destination, error) {
	out := make([]Destination, 0)
	for _, id := range r.order {
		item := r.items[id]
		if r.matches(item, query) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *fakeRepo) Count(ctx context.Context, query bson.M) (int64, error) {
	items, _ := r.List(ctx, query, nil, 0, 0)
	return int64(len(items)), nil
}

func (r *fakeRepo) matches(item Destination, query bson.M) bool {
	for key, value := range query {
		switch key {
		case "slug":
			if item.Slug != value.(string) {
				return false
			}
		case "published":
			if item.Published != value.(bool) {
				return false
			}
		case "featured":
			if item.Featured != value.(bool) {
				return false
			}
		}
	}
	return true
}

type fakeCache struct {
	deleted  []string
	prefixes []string
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
	c.prefixes = append(c.prefixes, prefix)
	return nil
}

func validForm(name string) Form {
	yes := true
	return Form{
		Name:      name,
		Region:    "Western Desert",
		Summary:   "Remote oasis of salt lakes and palm groves",
		HeroImage: "https://cdn.example.com/siwa.jpg",
		Published: &yes,
	}
}

// Full lifecycle: create without a slug, rename without touching the slug,
// then delete and check both the collection and the cached views.
func TestDestinationLifecycle(t *testing.T) {
	repo := newFakeRepo()
	store := &fakeCache{}
	svc := NewService(repo, store, time.UTC)
	ctx := context.Background()

	created, err := svc.Create(ctx, validForm("Siwa"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Slug != "siwa" {
		t.Fatalf("expected derived slug siwa, got %q", created.Slug)
	}

	renamed := validForm("Siwa Oasis!")
	updated, err := svc.Update(ctx, created.ID, renamed)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Slug != "siwa" {
		t.Fatalf("slug must not be re-derived on rename, got %q", updated.Slug)
	}
	if updated.Name != "Siwa Oasis!" {
		t.Fatalf("expected renamed destination, got %q", updated.Name)
	}

	store.deleted = nil
	store.prefixes = nil
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	items, err := svc.ListPublished(ctx, "", false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, d := range items {
		if d.ID == created.ID {
			t.Fatalf("deleted destination still listed")
		}
	}

	// the stale list view was invalidated so the next read refetches
	found := false
	for _, k := range store.deleted {
		if k == listKey {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected %s invalidation, got %v", listKey, store.deleted)
	}

	if _, err := svc.GetPublishedBySlug(ctx, "siwa"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestDestinationCreateInvalidSlug(t *testing.T) {
	svc := NewService(newFakeRepo(), &fakeCache{}, time.UTC)
	form := validForm("???")
	if _, err := svc.Create(context.Background(), form); !errors.Is(err, ErrInvalidSlug) {
		t.Fatalf("expected ErrInvalidSlug, got %v", err)
	}
}
