// Seed fills an empty database with the launch content and the first
// admin account. Re-running is safe: documents are upserted by slug and
// only inserted when missing.
package main

import (
	"context"
	"log"
	"os"
	"time"

	"luxorient-backend/internal/auth"
	"luxorient-backend/internal/config"
	"luxorient-backend/internal/db"
	"luxorient-backend/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type seedDestination struct {
	Name       string
	Region     string
	Summary    string
	Highlights []string
	Featured   bool
}

type seedHotel struct {
	Name      string
	Region    string
	Summary   string
	Stars     int
	Amenities []string
	Featured  bool
}

type seedTour struct {
	Title        string
	Region       string
	Summary      string
	DurationDays int
	Price        float64
	Highlights   []string
	Featured     bool
	Itinerary    []bson.M
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		log.Fatal(err)
	}

	now := time.Now().In(cfg.Timezone)

	dests := []seedDestination{
		{Name: "Cairo & Giza", Region: "Lower Egypt", Summary: "The pyramids, the Sphinx and the Grand Egyptian Museum.", Highlights: []string{"Pyramids of Giza", "Khan el-Khalili", "Grand Egyptian Museum"}, Featured: true},
		{Name: "Luxor", Region: "Upper Egypt", Summary: "The world's greatest open-air museum on the banks of the Nile.", Highlights: []string{"Karnak Temple", "Valley of the Kings", "Hot-air balloon at dawn"}, Featured: true},
		{Name: "Aswan", Region: "Upper Egypt", Summary: "Nubian culture, felucca sunsets and the temples of Philae.", Highlights: []string{"Philae Temple", "Nubian villages", "Abu Simbel day trip"}, Featured: false},
		{Name: "Siwa Oasis", Region: "Western Desert", Summary: "Salt lakes, date palms and the Oracle of Amun.", Highlights: []string{"Salt pools", "Shali fortress", "Great Sand Sea"}, Featured: false},
		{Name: "Red Sea Riviera", Region: "Red Sea", Summary: "Coral reefs and year-round sunshine from El Gouna to Marsa Alam.", Highlights: []string{"Diving and snorkelling", "Desert stargazing"}, Featured: false},
	}
	for _, d := range dests {
		slug := utils.Slugify(d.Name)
		if err := upsertBySlug(ctx, cols.Destinations, slug, bson.M{
			"_id":         primitive.NewObjectID().Hex(),
			"slug":        slug,
			"name":        d.Name,
			"region":      d.Region,
			"summary":     d.Summary,
			"description": "",
			"hero_image":  "",
			"gallery":     []string{},
			"highlights":  d.Highlights,
			"featured":    d.Featured,
			"published":   true,
			"created_at":  now,
			"updated_at":  now,
		}); err != nil {
			log.Fatalf("seed destination %s: %v", d.Name, err)
		}
	}

	hotels := []seedHotel{
		{Name: "Marriott Mena House", Region: "Giza", Summary: "A palace hotel in the shadow of the Great Pyramid.", Stars: 5, Amenities: []string{"Pyramid-view rooms", "Gardens", "Pool"}, Featured: true},
		{Name: "Sofitel Legend Old Cataract", Region: "Aswan", Summary: "Agatha Christie's Nile-side grande dame.", Stars: 5, Amenities: []string{"Nile terrace", "Spa", "Heritage wing"}, Featured: true},
		{Name: "Al Moudira", Region: "Luxor", Summary: "A hand-built boutique hideaway on the West Bank.", Stars: 4, Amenities: []string{"Courtyard suites", "Pool", "Gardens"}, Featured: false},
		{Name: "Adrere Amellal", Region: "Siwa Oasis", Summary: "A candle-lit ecolodge of salt rock and palm wood.", Stars: 4, Amenities: []string{"No electricity", "Organic kitchen", "Desert excursions"}, Featured: false},
	}
	for _, h := range hotels {
		slug := utils.Slugify(h.Name)
		if err := upsertBySlug(ctx, cols.Hotels, slug, bson.M{
			"_id":         primitive.NewObjectID().Hex(),
			"slug":        slug,
			"name":        h.Name,
			"region":      h.Region,
			"summary":     h.Summary,
			"description": "",
			"stars":       h.Stars,
			"hero_image":  "",
			"gallery":     []string{},
			"amenities":   h.Amenities,
			"featured":    h.Featured,
			"published":   true,
			"created_at":  now,
			"updated_at":  now,
		}); err != nil {
			log.Fatalf("seed hotel %s: %v", h.Name, err)
		}
	}

	tours := []seedTour{
		{
			Title:        "Classic Nile Odyssey",
			Region:       "Upper Egypt",
			Summary:      "Cairo, Luxor and Aswan with a four-night Nile cruise.",
			DurationDays: 8,
			Price:        3450,
			Highlights:   []string{"Private egyptologist", "Abu Simbel by air", "Dahabiya sailing"},
			Featured:     true,
			Itinerary: []bson.M{
				{"day": 1, "title": "Arrival in Cairo", "description": "Private transfer and a welcome dinner overlooking the Nile.", "activities": []string{"Airport meet and greet", "Welcome dinner"}},
				{"day": 2, "title": "Pyramids of Giza", "description": "Sunrise access to the plateau and the Grand Egyptian Museum.", "activities": []string{"Giza plateau", "Grand Egyptian Museum"}},
				{"day": 3, "title": "Fly to Luxor", "description": "Karnak and Luxor temples with an evening sound-and-light show.", "activities": []string{"Karnak Temple", "Luxor Temple"}},
				{"day": 4, "title": "Valley of the Kings", "description": "West Bank tombs and embarkation on the cruise.", "activities": []string{"Valley of the Kings", "Embark cruise"}},
				{"day": 5, "title": "Edfu & Kom Ombo", "description": "Temple calls while sailing south.", "activities": []string{"Edfu Temple", "Kom Ombo Temple"}},
				{"day": 6, "title": "Aswan", "description": "Philae Temple and a felucca sail at sunset.", "activities": []string{"Philae Temple", "Felucca sail"}},
				{"day": 7, "title": "Abu Simbel", "description": "Morning flight to the great temples of Ramses II.", "activities": []string{"Abu Simbel"}},
				{"day": 8, "title": "Departure", "description": "Fly back to Cairo for onward connections.", "activities": []string{}},
			},
		},
		{
			Title:        "Siwa Desert Retreat",
			Region:       "Western Desert",
			Summary:      "Five slow days of salt lakes, springs and Great Sand Sea dunes.",
			DurationDays: 5,
			Price:        1890,
			Highlights:   []string{"Ecolodge stay", "Great Sand Sea safari", "Cleopatra's spring"},
			Featured:     false,
			Itinerary: []bson.M{
				{"day": 1, "title": "Road to Siwa", "description": "Scenic drive from Cairo along the Mediterranean coast.", "activities": []string{"Private transfer"}},
				{"day": 2, "title": "Shali & the Oracle", "description": "The mud-brick fortress and the Temple of the Oracle.", "activities": []string{"Shali fortress", "Oracle of Amun"}},
				{"day": 3, "title": "Salt lakes", "description": "Float in the salt pools and lunch in a palm grove.", "activities": []string{"Salt pools", "Palm grove lunch"}},
				{"day": 4, "title": "Great Sand Sea", "description": "Dune driving, sandboarding and a desert sunset.", "activities": []string{"Dune safari", "Sandboarding"}},
				{"day": 5, "title": "Return", "description": "Morning at leisure and the drive back to Cairo.", "activities": []string{}},
			},
		},
	}
	for _, t := range tours {
		slug := utils.Slugify(t.Title)
		if err := upsertBySlug(ctx, cols.Tours, slug, bson.M{
			"_id":           primitive.NewObjectID().Hex(),
			"slug":          slug,
			"title":         t.Title,
			"summary":       t.Summary,
			"description":   "",
			"region":        t.Region,
			"duration_days": t.DurationDays,
			"price":         t.Price,
			"hero_image":    "",
			"gallery":       []string{},
			"highlights":    t.Highlights,
			"itinerary":     t.Itinerary,
			"featured":      t.Featured,
			"published":     true,
			"created_at":    now,
			"updated_at":    now,
		}); err != nil {
			log.Fatalf("seed tour %s: %v", t.Title, err)
		}
	}

	if err := seedSettings(ctx, cols, now); err != nil {
		log.Fatalf("seed settings: %v", err)
	}

	username := envOrDefault("ADMIN_USER", "admin")
	if password := os.Getenv("ADMIN_PASSWORD"); password != "" {
		if err := seedAdminUser(ctx, cols, username, password, now); err != nil {
			log.Fatalf("seed admin %s: %v", username, err)
		}
	} else {
		log.Printf("seed admin: ADMIN_PASSWORD missing, skipping %s", username)
	}

	log.Println("seed completed")
}

func upsertBySlug(ctx context.Context, col *mongo.Collection, slug string, doc bson.M) error {
	filter := bson.M{"slug": slug}
	update := bson.M{"$setOnInsert": doc}
	_, err := col.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func seedSettings(ctx context.Context, cols *db.Collections, now time.Time) error {
	update := bson.M{"$setOnInsert": bson.M{
		"site_name":     "LuxOrient Travel",
		"tagline":       "Tailor-made journeys through Egypt",
		"contact_email": "hello@luxorient.example",
		"phone":         "+20 2 2792 0000",
		"address":       "Zamalek, Cairo",
		"social":        map[string]string{},
		"hero_image":    "",
		"updated_at":    now,
	}}
	_, err := cols.Settings.UpdateOne(ctx, bson.M{"_id": "site"}, update, options.Update().SetUpsert(true))
	return err
}

func seedAdminUser(ctx context.Context, cols *db.Collections, username, password string, now time.Time) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	filter := bson.M{"username": username}
	update := bson.M{
		"$set": bson.M{
			"password_hash": hash,
			"role":          "admin",
			"updated_at":    now,
		},
		"$setOnInsert": bson.M{
			"_id":        primitive.NewObjectID().Hex(),
			"username":   username,
			"created_at": now,
		},
	}
	_, err = cols.AdminUsers.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
