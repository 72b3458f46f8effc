package destinations

import (
	"time"

	"luxorient-backend/internal/forms"
	"luxorient-backend/internal/httpx"
	"luxorient-backend/internal/validation"
)

type Destination struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Slug        string    `bson:"slug" json:"slug"`
	Name        string    `bson:"name" json:"name"`
	Region      string    `bson:"region" json:"region"`
	Summary     string    `bson:"summary" json:"summary"`
	Description string    `bson:"description" json:"description"`
	HeroImage   string    `bson:"hero_image" json:"hero_image"`
	Gallery     []string  `bson:"gallery" json:"gallery"`
	Highlights  []string  `bson:"highlights" json:"highlights"`
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
	Highlights  forms.StringList `json:"highlights"`
	Featured    *bool            `json:"featured"`
	Published   *bool            `json:"published"`
}

func (f *Form) Validate(v *validation.Validator) forms.FieldErrors {
	errs := forms.FieldErrors{}
	if err := v.Struct(f); err != nil {
		errs.Merge(forms.FieldErrors(httpx.ValidationDetails(v.ValidationErrors(err))))
	}
	if f.Gallery.Invalid() {
		errs.Add("gallery", "must be a list of strings")
	}
	if f.Highlights.Invalid() {
		errs.Add("highlights", "must be a list of strings")
	}
	return errs
}
