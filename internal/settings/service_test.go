package settings

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type fakeRepo struct {
	stored *SiteSettings
}

func (r *fakeRepo) Upsert(ctx context.Context, query bson.M, set bson.M) (SiteSettings, error) {
	item := SiteSettings{ID: DocumentID}
	if r.stored != nil {
		item = *r.stored
	}
	for key, value := range set {
		switch key {
		case "site_name":
			item.SiteName = value.(string)
		case "tagline":
			item.Tagline = value.(string)
		case "contact_email":
			item.ContactEmail = value.(string)
		case "phone":
			item.Phone = value.(string)
		case "address":
			item.Address = value.(string)
		case "social":
			item.Social = value.(map[string]string)
		case "hero_image":
			item.HeroImage = value.(string)
		case "updated_at":
			item.UpdatedAt = value.(time.Time)
		}
	}
	r.stored = &item
	return item, nil
}

func (r *fakeRepo) FindOne(ctx context.Context, query bson.M) (SiteSettings, error) {
	if r.stored == nil {
		return SiteSettings{}, mongo.ErrNoDocuments
	}
	return *r.stored, nil
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

func TestGetReturnsDefaultsWhenUnset(t *testing.T) {
	svc := NewService(&fakeRepo{}, &fakeCache{}, time.UTC)

	item, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if item.SiteName == "" {
		t.Fatalf("expected default site name, got %+v", item)
	}
	if item.Social == nil {
		t.Fatalf("social map must never be nil")
	}
}

func TestSaveCreatesThenUpdates(t *testing.T) {
	store := &fakeCache{}
	svc := NewService(&fakeRepo{}, store, time.UTC)

	first, err := svc.Save(context.Background(), Form{
		SiteName:     "  LuxOrient Travel  ",
		ContactEmail: "hello@luxorient.example",
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if first.SiteName != "LuxOrient Travel" {
		t.Fatalf("expected trimmed site name, got %q", first.SiteName)
	}
	if len(store.deleted) == 0 || store.deleted[0] != cacheKey {
		t.Fatalf("expected cache invalidation, got %v", store.deleted)
	}

	second, err := svc.Save(context.Background(), Form{
		SiteName:     "LuxOrient",
		Tagline:      "Egypt, unhurried",
		ContactEmail: "hello@luxorient.example",
	})
	if err != nil {
		t.Fatalf("save again: %v", err)
	}
	if second.SiteName != "LuxOrient" || second.Tagline != "Egypt, unhurried" {
		t.Fatalf("unexpected settings after update: %+v", second)
	}

	got, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.SiteName != "LuxOrient" {
		t.Fatalf("expected persisted settings, got %+v", got)
	}
}
