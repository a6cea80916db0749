package model

import (
	"encoding/json"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrPlacesNotStrings is returned when "places" holds anything but strings.
var ErrPlacesNotStrings = &ValidationError{Message: "'places' must be an array of strings."}

// Places is the ordered list of stops in a package. On input it accepts either a
// JSON array of strings or one comma-separated string.
type Places []string

// UnmarshalJSON normalizes both accepted shapes into trimmed strings. An empty
// string decodes to nil so that `required` validation rejects it.
func (p *Places) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = nil
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if strings.TrimSpace(single) == "" {
			*p = nil
			return nil
		}
		parts := strings.Split(single, ",")
		out := make(Places, 0, len(parts))
		for _, part := range parts {
			out = append(out, strings.TrimSpace(part))
		}
		*p = out
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return ErrPlacesNotStrings
	}
	if len(raw) == 0 {
		*p = nil
		return nil
	}
	out := make(Places, 0, len(raw))
	for _, item := range raw {
		var s string
		if err := json.Unmarshal(item, &s); err != nil {
			return ErrPlacesNotStrings
		}
		out = append(out, strings.TrimSpace(s))
	}
	*p = out
	return nil
}

// TourPackage is a bookable multi-day bundled tour
type TourPackage struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Image       string             `json:"image" bson:"image"`
	Description string             `json:"description" bson:"description"`
	Days        int                `json:"days" bson:"days"`
	PlacesCount int                `json:"placesCount" bson:"placesCount"`
	Places      []string           `json:"places" bson:"places"`
	Cost        float64            `json:"cost" bson:"cost"`
	Phone       string             `json:"phone" bson:"phone"`
}

// CreatePackageRequest is used for creating a new package
type CreatePackageRequest struct {
	Name        string  `json:"name" binding:"required"`
	Image       string  `json:"image" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Days        Count   `json:"days" binding:"required,gt=0"`
	PlacesCount Count   `json:"placesCount" binding:"required,gt=0"`
	Places      Places  `json:"places" binding:"required"`
	Cost        Number  `json:"cost" binding:"required,gt=0"`
	Phone       string  `json:"phone" binding:"required"`
}

// ToPackage builds the record to persist; the id is assigned by the repository.
func (r CreatePackageRequest) ToPackage() *TourPackage {
	return &TourPackage{
		Name:        r.Name,
		Image:       r.Image,
		Description: r.Description,
		Days:        int(r.Days),
		PlacesCount: int(r.PlacesCount),
		Places:      []string(r.Places),
		Cost:        float64(r.Cost),
		Phone:       r.Phone,
	}
}
