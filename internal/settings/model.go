package settings

import (
	"time"

	"luxorient-backend/internal/forms"
	"luxorient-backend/internal/httpx"
	"luxorient-backend/internal/validation"
)

// SiteSettings is a singleton document keyed by a fixed id.
const DocumentID = "site"

type SiteSettings struct {
	ID           string            `bson:"_id" json:"-"`
	SiteName     string            `bson:"site_name" json:"site_name"`
	Tagline      string            `bson:"tagline" json:"tagline"`
	ContactEmail string            `bson:"contact_email" json:"contact_email"`
	Phone        string            `bson:"phone" json:"phone"`
	Address      string            `bson:"address" json:"address"`
	Social       map[string]string `bson:"social" json:"social"`
	HeroImage    string            `bson:"hero_image" json:"hero_image"`
	UpdatedAt    time.Time         `bson:"updated_at" json:"updated_at"`
}

type Form struct {
	SiteName     string            `json:"site_name" validate:"required"`
	Tagline      string            `json:"tagline"`
	ContactEmail string            `json:"contact_email" validate:"required,email"`
	Phone        string            `json:"phone" validate:"omitempty,phone"`
	Address      string            `json:"address"`
	Social       map[string]string `json:"social"`
	HeroImage    string            `json:"hero_image" validate:"omitempty,imageurl"`
}

func (f *Form) Validate(v *validation.Validator) forms.FieldErrors {
	errs := forms.FieldErrors{}
	if err := v.Struct(f); err != nil {
		errs.Merge(forms.FieldErrors(httpx.ValidationDetails(v.ValidationErrors(err))))
	}
	return errs
}
