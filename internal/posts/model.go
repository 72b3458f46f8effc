package posts

import (
	"time"

	"luxorient-backend/internal/forms"
	"luxorient-backend/internal/httpx"
	"luxorient-backend/internal/validation"
)

type Post struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Slug      string    `bson:"slug" json:"slug"`
	Title     string    `bson:"title" json:"title"`
	Author    string    `bson:"author" json:"author"`
	Excerpt   string    `bson:"excerpt" json:"excerpt"`
	Body      string    `bson:"body" json:"body"`
	HeroImage string    `bson:"hero_image" json:"hero_image"`
	Tags      []string  `bson:"tags" json:"tags"`
	Featured  bool      `bson:"featured" json:"featured"`
	Published bool      `bson:"published" json:"published"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

type Form struct {
	Slug      string           `json:"slug" validate:"omitempty,slug"`
	Title     string           `json:"title" validate:"required"`
	Author    string           `json:"author" validate:"required"`
	Excerpt   string           `json:"excerpt" validate:"required"`
	Body      string           `json:"body" validate:"required"`
	HeroImage string           `json:"hero_image" validate:"omitempty,imageurl"`
	Tags      forms.StringList `json:"tags"`
	Featured  *bool            `json:"featured"`
	Published *bool            `json:"published"`
}

func (f *Form) Validate(v *validation.Validator) forms.FieldErrors {
	errs := forms.FieldErrors{}
	if err := v.Struct(f); err != nil {
		errs.Merge(forms.FieldErrors(httpx.ValidationDetails(v.ValidationErrors(err))))
	}
	if f.Tags.Invalid() {
		errs.Add("tags", "must be a list of strings")
	}
	return errs
}
