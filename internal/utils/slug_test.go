package utils

import (
	"strings"
	"testing"
)

func TestSlugifyBasic(t *testing.T) {
	if got := Slugify("Siwa"); got != "siwa" {
		t.Fatalf("expected siwa, got %q", got)
	}
	if got := Slugify("Siwa Oasis!"); got != "siwa-oasis" {
		t.Fatalf("expected siwa-oasis, got %q", got)
	}
	if got := Slugify("  Cairo & Giza  "); got != "cairo-and-giza" {
		t.Fatalf("expected cairo-and-giza, got %q", got)
	}
	if got := Slugify("Nile -- Cruise"); got != "nile-cruise" {
		t.Fatalf("expected nile-cruise, got %q", got)
	}
}

func TestSlugifyCharset(t *testing.T) {
	inputs := []string{
		"Mena House",
		"Old Cataract, Aswan",
		"L'Égypte éternelle",
		"!!!",
		"Red Sea / Sinai",
		"10 Days & 9 Nights",
	}
	for _, in := range inputs {
		got := Slugify(in)
		if got != strings.ToLower(got) {
			t.Fatalf("Slugify(%q) not lowercase: %q", in, got)
		}
		if strings.HasPrefix(got, "-") || strings.HasSuffix(got, "-") {
			t.Fatalf("Slugify(%q) has edge hyphen: %q", in, got)
		}
		for _, r := range got {
			if !(r == '-' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')) {
				t.Fatalf("Slugify(%q) contains %q", in, r)
			}
		}
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{"Siwa Oasis!", "Cairo & Giza", "Abu Simbel Sun Festival 2026"}
	for _, in := range inputs {
		once := Slugify(in)
		twice := Slugify(once)
		if once != twice {
			t.Fatalf("Slugify not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestSlugifyEmpty(t *testing.T) {
	if got := Slugify("   "); got != "" {
		t.Fatalf("expected empty slug, got %q", got)
	}
	if got := Slugify("???"); got != "" {
		t.Fatalf("expected empty slug, got %q", got)
	}
}
