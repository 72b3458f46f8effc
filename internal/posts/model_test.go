package posts

import (
	"encoding/json"
	"testing"

	"luxorient-backend/internal/validation"
)

func TestFormValidateTagsFromCommaString(t *testing.T) {
	v := validation.New()
	payload := `{
		"title": "A Week on the Nile",
		"author": "Layla Hassan",
		"excerpt": "Slow travel between Luxor and Aswan",
		"body": "Full article body",
		"tags": "nile, luxury travel, ,cruise"
	}`
	var f Form
	if err := json.Unmarshal([]byte(payload), &f); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if errs := f.Validate(v); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
	want := []string{"nile", "luxury travel", "cruise"}
	got := f.Tags.Values()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestFormValidateMissingFields(t *testing.T) {
	v := validation.New()
	var f Form
	errs := f.Validate(v)
	for _, field := range []string{"title", "author", "excerpt", "body"} {
		if _, ok := errs[field]; !ok {
			t.Fatalf("expected %s error, got %v", field, errs)
		}
	}
}
