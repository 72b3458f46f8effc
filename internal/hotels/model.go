package hotels

import (
	"time"

	"luxorient-backend/internal/forms"
	"luxorient-backend/internal/httpx"
	"luxorient-backend/internal/validation"
)

type Hotel struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Slug        string    `bson:"slug" json:"slug"`
	Name        string    `bson:"name" json:"name"`
	Region      string    `bson:"region" json:"region"`
	Summary     string    `bson:"summary" json:"summary"`
	Description string    `bson:"description" json:"description"`
	HeroImage   string    `bson:"hero_image" json:"hero_image"`
	Gallery     []string  `bson:"gallery" json:"gallery"`
	Amenities   []string  `bson:"amenities" json:"amenities"`
	Stars       int       `bson:"stars,omitempty" json:"stars,omitempty"`
	Featured    bool      `bson:"featured" json:"featured"`
	Published   bool      `bson:"published" json:"published"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

type Form struct {
	Slug        string           `json:"slug" validate:"omitempty,slug"`
	Name        string           `json:"name" validate:"required"`
	Region      string           `json:"region" validate:"required"`
	Summary     string           `json:"summary" validate:"required"`
	Description string           `json:"description"`
	HeroImage   string           `json:"hero_image" validate:"required,imageurl"`
	Gallery     forms.StringList `json:"gallery"`
	Amenities   forms.StringList `json:"amenities"`
	Stars       forms.Number     `json:"stars"`
	Featured    *bool            `json:"featured"`
	Published   *bool            `json:"published"`
}

func (f *Form) Validate(v *validation.Validator) forms.FieldErrors {
	errs := forms.FieldErrors{}
	if err := v.Struct(f); err != nil {
		errs.Merge(forms.FieldErrors(httpx.ValidationDetails(v.ValidationErrors(err))))
	}

	if f.Stars.Invalid() {
		errs.Add("stars", "must be a number")
	} else if f.Stars.Set() && (f.Stars.Int() < 1 || f.Stars.Int() > 5) {
		errs.Add("stars", "must be between 1 and 5")
	}

	if f.Gallery.Invalid() {
		errs.Add("gallery", "must be a list of strings")
	}
	if f.Amenities.Invalid() {
		errs.Add("amenities", "must be a list of strings")
	}

	return errs
}
