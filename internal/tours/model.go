package tours

import (
	"strconv"
	"strings"
	"time"

	"luxorient-backend/internal/forms"
	"luxorient-backend/internal/httpx"
	"luxorient-backend/internal/validation"
)

type ItineraryDay struct {
	Day         int      `bson:"day" json:"day"`
	Title       string   `bson:"title" json:"title"`
	Description string   `bson:"description" json:"description"`
	Activities  []string `bson:"activities" json:"activities"`
}

// Itinerary is the ordered day-by-day schedule. Day numbers are positional,
// not stable identifiers: any structural change renumbers to a contiguous
// 1..N.
type Itinerary []ItineraryDay

func (i Itinerary) Renumber() Itinerary {
	out := make(Itinerary, len(i))
	for idx, day := range i {
		day.Day = idx + 1
		day.Title = strings.TrimSpace(day.Title)
		day.Description = strings.TrimSpace(day.Description)
		if day.Activities == nil {
			day.Activities = []string{}
		}
		out[idx] = day
	}
	return out
}

func (i Itinerary) Remove(index int) (Itinerary, error) {
	if index < 0 || index >= len(i) {
		return i, forms.ErrIndexOutOfRange
	}
	out := make(Itinerary, 0, len(i)-1)
	out = append(out, i[:index]...)
	out = append(out, i[index+1:]...)
	return out.Renumber(), nil
}

func (i Itinerary) Append(day ItineraryDay) Itinerary {
	return append(append(Itinerary{}, i...), day).Renumber()
}

type Tour struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Slug         string    `bson:"slug" json:"slug"`
	Title        string    `bson:"title" json:"title"`
	Summary      string    `bson:"summary" json:"summary"`
	Description  string    `bson:"description" json:"description"`
	Region       string    `bson:"region" json:"region"`
	DurationDays int       `bson:"duration_days" json:"duration_days"`
	Price        float64   `bson:"price" json:"price"`
	HeroImage    string    `bson:"hero_image" json:"hero_image"`
	Gallery      []string  `bson:"gallery" json:"gallery"`
	Highlights   []string  `bson:"highlights" json:"highlights"`
	Itinerary    Itinerary `bson:"itinerary" json:"itinerary"`
	Featured     bool      `bson:"featured" json:"featured"`
	Published    bool      `bson:"published" json:"published"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}

// Form is the editable representation of a tour. List fields accept either
// an array or a comma-separated string; numeric fields accept a number or a
// numeric string.
type Form struct {
	Slug         string           `json:"slug" validate:"omitempty,slug"`
	Title        string           `json:"title" validate:"required"`
	Summary      string           `json:"summary" validate:"required"`
	Description  string           `json:"description"`
	Region       string           `json:"region" validate:"required"`
	DurationDays forms.Number     `json:"duration_days"`
	Price        forms.Number     `json:"price"`
	HeroImage    string           `json:"hero_image" validate:"required,imageurl"`
	Gallery      forms.StringList `json:"gallery"`
	Highlights   forms.StringList `json:"highlights"`
	Itinerary    Itinerary        `json:"itinerary"`
	Featured     *bool            `json:"featured"`
	Published    *bool            `json:"published"`
}

// AddItineraryDay appends a blank day numbered N+1.
func (f *Form) AddItineraryDay() {
	f.Itinerary = f.Itinerary.Append(ItineraryDay{Activities: []string{}})
}

// RemoveItineraryDay removes the day at index and renumbers the rest. A bad
// index refuses the mutation and leaves the itinerary unchanged.
func (f *Form) RemoveItineraryDay(index int) error {
	next, err := f.Itinerary.Remove(index)
	if err != nil {
		return err
	}
	f.Itinerary = next
	return nil
}

// Validate reports every failing field in one pass.
func (f *Form) Validate(v *validation.Validator) forms.FieldErrors {
	errs := forms.FieldErrors{}
	if err := v.Struct(f); err != nil {
		errs.Merge(forms.FieldErrors(httpx.ValidationDetails(v.ValidationErrors(err))))
	}

	if f.Price.Invalid() {
		errs.Add("price", "must be a number")
	} else if !f.Price.Set() {
		errs.Add("price", "is required")
	} else if f.Price.Value() < 0 {
		errs.Add("price", "must be at least 0")
	}

	if f.DurationDays.Invalid() {
		errs.Add("duration_days", "must be a number")
	} else if f.DurationDays.Set() && f.DurationDays.Int() < 1 {
		errs.Add("duration_days", "must be at least 1")
	}

	if f.Gallery.Invalid() {
		errs.Add("gallery", "must be a list of strings")
	}
	if f.Highlights.Invalid() {
		errs.Add("highlights", "must be a list of strings")
	}

	if len(f.Itinerary) == 0 {
		errs.Add("itinerary", "at least one day is required")
	} else {
		for idx, day := range f.Itinerary {
			if strings.TrimSpace(day.Title) == "" || strings.TrimSpace(day.Description) == "" {
				errs.Add("itinerary", "every day needs a title and a description (check day "+strconv.Itoa(idx+1)+")")
				break
			}
		}
	}

	return errs
}
