package inquiries

import "time"

const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusClosed    = "closed"
)

var validStatuses = map[string]struct{}{
	StatusNew:       {},
	StatusContacted: {},
	StatusClosed:    {},
}

func IsValidStatus(value string) bool {
	_, ok := validStatuses[value]
	return ok
}

type Inquiry struct {
	ID             string    `bson:"_id,omitempty" json:"id"`
	Name           string    `bson:"name" json:"name"`
	Email          string    `bson:"email" json:"email"`
	Phone          string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Destination    string    `bson:"destination,omitempty" json:"destination,omitempty"`
	TourSlug       string    `bson:"tour_slug,omitempty" json:"tour_slug,omitempty"`
	PreferredDates string    `bson:"preferred_dates,omitempty" json:"preferred_dates,omitempty"`
	PartySize      int       `bson:"party_size,omitempty" json:"party_size,omitempty"`
	Message        string    `bson:"message" json:"message"`
	Status         string    `bson:"status" json:"status"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
}

type CreateRequest struct {
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"omitempty,phone"`
	Destination    string `json:"destination"`
	TourSlug       string `json:"tour_slug" validate:"omitempty,slug"`
	PreferredDates string `json:"preferred_dates"`
	PartySize      int    `json:"party_size" validate:"omitempty,gte=1,lte=40"`
	Message        string `json:"message" validate:"required"`
}

type AdminStatusUpdateRequest struct {
	Status string `json:"status" validate:"required,oneof=new contacted closed"`
}

type ListFilter struct {
	Status string
}
