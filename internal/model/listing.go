package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Listing is a bookable hotel or destination
type Listing struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	Image       string             `json:"image" bson:"image"`
	State       string             `json:"state" bson:"state"`
	District    string             `json:"district" bson:"district"`
	Price       float64            `json:"price" bson:"price"`
	Contact     string             `json:"contact" bson:"contact"`
}

// CreateListingRequest is used for creating a new listing
type CreateListingRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description" binding:"required"`
	Image       string  `json:"image" binding:"required"`
	State       string  `json:"state" binding:"required"`
	District    string  `json:"district" binding:"required"`
	Price       Number  `json:"price" binding:"required,gt=0"`
	Contact     string  `json:"contact" binding:"required"`
}

// ToListing builds the record to persist; the id is assigned by the repository.
func (r CreateListingRequest) ToListing() *Listing {
	return &Listing{
		Name:        r.Name,
		Description: r.Description,
		Image:       r.Image,
		State:       r.State,
		District:    r.District,
		Price:       float64(r.Price),
		Contact:     r.Contact,
	}
}
