package tours

import (
	"encoding/json"
	"errors"
	"testing"

	"luxorient-backend/internal/forms"
	"luxorient-backend/internal/validation"
)

func TestItineraryRenumberAfterRemove(t *testing.T) {
	it := Itinerary{
		{Day: 1, Title: "Cairo", Description: "Arrival"},
		{Day: 2, Title: "Giza", Description: "Pyramids"},
		{Day: 3, Title: "Saqqara", Description: "Step pyramid"},
		{Day: 4, Title: "Memphis", Description: "Open-air museum"},
	}

	got, err := it.Remove(1)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 days, got %d", len(got))
	}
	wantTitles := []string{"Cairo", "Saqqara", "Memphis"}
	for i, day := range got {
		if day.Day != i+1 {
			t.Fatalf("day %d numbered %d, expected %d", i, day.Day, i+1)
		}
		if day.Title != wantTitles[i] {
			t.Fatalf("day %d title %q, expected %q", i, day.Title, wantTitles[i])
		}
	}
}

func TestItineraryRemoveBadIndex(t *testing.T) {
	it := Itinerary{{Day: 1, Title: "Cairo", Description: "Arrival"}}
	if _, err := it.Remove(1); !errors.Is(err, forms.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	if _, err := it.Remove(-1); !errors.Is(err, forms.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
	if len(it) != 1 || it[0].Title != "Cairo" {
		t.Fatalf("itinerary must be untouched: %v", it)
	}
}

func TestItineraryRenumberNormalizesActivities(t *testing.T) {
	it := Itinerary{{Day: 9, Title: " Luxor ", Description: " Temples "}}
	got := it.Renumber()
	if got[0].Day != 1 {
		t.Fatalf("expected day 1, got %d", got[0].Day)
	}
	if got[0].Activities == nil {
		t.Fatalf("activities must default to an empty list")
	}
	if got[0].Title != "Luxor" || got[0].Description != "Temples" {
		t.Fatalf("expected trimmed fields, got %+v", got[0])
	}
}

func TestFormAddRemoveItineraryDay(t *testing.T) {
	var f Form
	f.AddItineraryDay()
	f.AddItineraryDay()
	f.AddItineraryDay()
	if len(f.Itinerary) != 3 || f.Itinerary[2].Day != 3 {
		t.Fatalf("unexpected itinerary: %+v", f.Itinerary)
	}

	if err := f.RemoveItineraryDay(0); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(f.Itinerary) != 2 || f.Itinerary[0].Day != 1 || f.Itinerary[1].Day != 2 {
		t.Fatalf("expected contiguous renumbering, got %+v", f.Itinerary)
	}

	if err := f.RemoveItineraryDay(7); !errors.Is(err, forms.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestFormValidateReportsAllErrorsAtOnce(t *testing.T) {
	v := validation.New()

	// missing title, negative price, empty itinerary: all three reported in
	// a single pass
	payload := `{
		"summary": "Ten days on the Nile",
		"region": "Upper Egypt",
		"hero_image": "https://cdn.example.com/nile.jpg",
		"price": -100,
		"itinerary": []
	}`
	var f Form
	if err := json.Unmarshal([]byte(payload), &f); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	errs := f.Validate(v)
	for _, field := range []string{"title", "price", "itinerary"} {
		if _, ok := errs[field]; !ok {
			t.Fatalf("expected %s error, got %v", field, errs)
		}
	}
}

func TestFormValidateNumericStringPrice(t *testing.T) {
	v := validation.New()
	payload := `{
		"title": "Nile Cruise",
		"summary": "Ten days on the Nile",
		"region": "Upper Egypt",
		"hero_image": "https://cdn.example.com/nile.jpg",
		"price": "2450",
		"duration_days": "10",
		"highlights": "Karnak, Valley of the Kings, , Philae ",
		"itinerary": [{"title": "Luxor", "description": "East bank"}]
	}`
	var f Form
	if err := json.Unmarshal([]byte(payload), &f); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if errs := f.Validate(v); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if f.Price.Value() != 2450 {
		t.Fatalf("expected coerced price, got %v", f.Price.Value())
	}
	if f.DurationDays.Int() != 10 {
		t.Fatalf("expected coerced duration, got %v", f.DurationDays.Int())
	}
	want := []string{"Karnak", "Valley of the Kings", "Philae"}
	got := f.Highlights.Values()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestFormValidateNonNumericPrice(t *testing.T) {
	v := validation.New()
	payload := `{
		"title": "Nile Cruise",
		"summary": "Ten days on the Nile",
		"region": "Upper Egypt",
		"hero_image": "https://cdn.example.com/nile.jpg",
		"price": "a lot",
		"itinerary": [{"title": "Luxor", "description": "East bank"}]
	}`
	var f Form
	if err := json.Unmarshal([]byte(payload), &f); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	errs := f.Validate(v)
	if errs["price"] != "must be a number" {
		t.Fatalf("expected price error, got %v", errs)
	}
}

func TestFormValidateRejectsEmptyDay(t *testing.T) {
	v := validation.New()
	payload := `{
		"title": "Nile Cruise",
		"summary": "Ten days on the Nile",
		"region": "Upper Egypt",
		"hero_image": "https://cdn.example.com/nile.jpg",
		"price": 2450,
		"itinerary": [{"title": "Luxor", "description": "East bank"}, {"title": "", "description": "West bank"}]
	}`
	var f Form
	if err := json.Unmarshal([]byte(payload), &f); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if errs := f.Validate(v); errs["itinerary"] == "" {
		t.Fatalf("expected itinerary error, got %v", errs)
	}
}
