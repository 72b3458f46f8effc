package hotels

import (
	"encoding/json"
	"testing"

	"luxorient-backend/internal/validation"
)

func TestFormValidateAmenitiesFromCommaString(t *testing.T) {
	v := validation.New()
	payload := `{
		"name": "Mena House",
		"region": "Cairo & Giza",
		"summary": "Palace hotel at the foot of the pyramids",
		"hero_image": "https://cdn.example.com/mena.jpg",
		"amenities": "Pool, Spa, , Private garden "
	}`
	var f Form
	if err := json.Unmarshal([]byte(payload), &f); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if errs := f.Validate(v); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
	want := []string{"Pool", "Spa", "Private garden"}
	got := f.Amenities.Values()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestFormValidateStarsRange(t *testing.T) {
	v := validation.New()
	for _, raw := range []string{`0`, `6`, `"nine"`} {
		payload := `{
			"name": "Mena House",
			"region": "Cairo & Giza",
			"summary": "Palace hotel",
			"hero_image": "https://cdn.example.com/mena.jpg",
			"stars": ` + raw + `
		}`
		var f Form
		if err := json.Unmarshal([]byte(payload), &f); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		if errs := f.Validate(v); errs["stars"] == "" {
			t.Fatalf("expected stars error for %s, got %v", raw, errs)
		}
	}

	payload := `{
		"name": "Mena House",
		"region": "Cairo & Giza",
		"summary": "Palace hotel",
		"hero_image": "https://cdn.example.com/mena.jpg",
		"stars": "5"
	}`
	var f Form
	if err := json.Unmarshal([]byte(payload), &f); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if errs := f.Validate(v); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if f.Stars.Int() != 5 {
		t.Fatalf("expected coerced stars, got %d", f.Stars.Int())
	}
}

func TestFormValidateMissingFields(t *testing.T) {
	v := validation.New()
	var f Form
	errs := f.Validate(v)
	for _, field := range []string{"name", "region", "summary", "hero_image"} {
		if _, ok := errs[field]; !ok {
			t.Fatalf("expected %s error, got %v", field, errs)
		}
	}
}
