package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderType string

const (
	OrderTypeListing OrderType = "listing"
	OrderTypePackage OrderType = "package"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusCompleted OrderStatus = "Completed"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether an order in status s may move to next.
// Only pending orders can change, and only to a terminal status.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	return s == OrderStatusPending && (next == OrderStatusCompleted || next == OrderStatusCancelled)
}

// Booking is the type-specific part of an order: either a ListingBooking or a
// PackageBooking.
type Booking interface {
	OrderType() OrderType
	isBooking()
}

// ListingBooking is the payload of an order for a listing.
type ListingBooking struct {
	ListingID   primitive.ObjectID
	ListingName string
	CheckInDate *time.Time
}

func (ListingBooking) OrderType() OrderType { return OrderTypeListing }
func (ListingBooking) isBooking()           {}

// PackageBooking is the payload of an order for a package.
type PackageBooking struct {
	PackageID   primitive.ObjectID
	PackageName string
}

func (PackageBooking) OrderType() OrderType { return OrderTypePackage }
func (PackageBooking) isBooking()           {}

// Order is one user's booking of exactly one listing or package.
type Order struct {
	ID        primitive.ObjectID
	UserID    primitive.ObjectID
	Booking   Booking
	Amount    float64
	Status    OrderStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Type returns the discriminator derived from the booking payload.
func (o *Order) Type() OrderType {
	if o.Booking == nil {
		return ""
	}
	return o.Booking.OrderType()
}

// OrderRecord is the flat shape of an order used on the wire and in storage.
// Only the id/name pair matching Type is set.
type OrderRecord struct {
	ID          primitive.ObjectID  `json:"_id" bson:"_id,omitempty"`
	UserID      primitive.ObjectID  `json:"userId" bson:"userId"`
	Type        OrderType           `json:"type" bson:"type"`
	ListingID   *primitive.ObjectID `json:"listingId,omitempty" bson:"listingId,omitempty"`
	ListingName string              `json:"listingName,omitempty" bson:"listingName,omitempty"`
	PackageID   *primitive.ObjectID `json:"packageId,omitempty" bson:"packageId,omitempty"`
	PackageName string              `json:"packageName,omitempty" bson:"packageName,omitempty"`
	Amount      float64             `json:"amount" bson:"amount"`
	Status      OrderStatus         `json:"status" bson:"status"`
	CheckInDate *time.Time          `json:"checkInDate,omitempty" bson:"checkInDate,omitempty"`
	CreatedAt   time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt" bson:"updatedAt"`
}

// Record flattens o.
func (o *Order) Record() OrderRecord {
	rec := OrderRecord{
		ID:        o.ID,
		UserID:    o.UserID,
		Type:      o.Type(),
		Amount:    o.Amount,
		Status:    o.Status,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
	switch b := o.Booking.(type) {
	case ListingBooking:
		id := b.ListingID
		rec.ListingID = &id
		rec.ListingName = b.ListingName
		rec.CheckInDate = b.CheckInDate
	case PackageBooking:
		id := b.PackageID
		rec.PackageID = &id
		rec.PackageName = b.PackageName
	}
	return rec
}

// Order rebuilds the typed order, failing when the populated fields do not
// match the discriminator.
func (r OrderRecord) Order() (*Order, error) {
	o := &Order{
		ID:        r.ID,
		UserID:    r.UserID,
		Amount:    r.Amount,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	switch r.Type {
	case OrderTypeListing:
		if r.ListingID == nil || r.PackageID != nil {
			return nil, fmt.Errorf("order %s: listing order with mismatched booking fields", r.ID.Hex())
		}
		o.Booking = ListingBooking{ListingID: *r.ListingID, ListingName: r.ListingName, CheckInDate: r.CheckInDate}
	case OrderTypePackage:
		if r.PackageID == nil || r.ListingID != nil {
			return nil, fmt.Errorf("order %s: package order with mismatched booking fields", r.ID.Hex())
		}
		o.Booking = PackageBooking{PackageID: *r.PackageID, PackageName: r.PackageName}
	default:
		return nil, fmt.Errorf("order %s: unknown type %q", r.ID.Hex(), r.Type)
	}
	return o, nil
}

func (o Order) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.Record())
}

func (o *Order) UnmarshalJSON(data []byte) error {
	var rec OrderRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	decoded, err := rec.Order()
	if err != nil {
		return err
	}
	*o = *decoded
	return nil
}

func (o Order) MarshalBSON() ([]byte, error) {
	return bson.Marshal(o.Record())
}

func (o *Order) UnmarshalBSON(data []byte) error {
	var rec OrderRecord
	if err := bson.Unmarshal(data, &rec); err != nil {
		return err
	}
	decoded, err := rec.Order()
	if err != nil {
		return err
	}
	*o = *decoded
	return nil
}

// BookingDate accepts the YYYY-MM-DD value of a date input as well as RFC 3339.
type BookingDate struct {
	time.Time
}

func (d *BookingDate) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		if string(data) == "null" {
			return nil
		}
		return NewValidationError("checkInDate must be a date string.")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t.UTC()
			return nil
		}
	}
	return NewValidationError(fmt.Sprintf("Invalid checkInDate %q.", s))
}

// CreateOrderRequest is the body of POST /orders. The caller never supplies the
// owning user; it comes from the verified token.
type CreateOrderRequest struct {
	Type        OrderType    `json:"type" binding:"required"`
	Amount      Number       `json:"amount" binding:"required,gt=0"`
	ListingID   string       `json:"listingId"`
	ListingName string       `json:"listingName"`
	PackageID   string       `json:"packageId"`
	PackageName string       `json:"packageName"`
	CheckInDate *BookingDate `json:"checkInDate"`
}

// Booking validates the type-specific fields and builds the matching payload.
// Fields that belong to the other variant are ignored.
func (r CreateOrderRequest) Booking() (Booking, error) {
	switch r.Type {
	case OrderTypeListing:
		if r.ListingID == "" || r.ListingName == "" {
			return nil, NewValidationError("listingId and listingName are required for listing orders.")
		}
		id, err := primitive.ObjectIDFromHex(r.ListingID)
		if err != nil {
			return nil, NewValidationError("Invalid listingId format.")
		}
		b := ListingBooking{ListingID: id, ListingName: r.ListingName}
		if r.CheckInDate != nil && !r.CheckInDate.IsZero() {
			t := r.CheckInDate.Time
			b.CheckInDate = &t
		}
		return b, nil
	case OrderTypePackage:
		if r.PackageID == "" || r.PackageName == "" {
			return nil, NewValidationError("packageId and packageName are required for package orders.")
		}
		id, err := primitive.ObjectIDFromHex(r.PackageID)
		if err != nil {
			return nil, NewValidationError("Invalid packageId format.")
		}
		return PackageBooking{PackageID: id, PackageName: r.PackageName}, nil
	default:
		return nil, NewValidationError(fmt.Sprintf("`%s` is not a valid order type, expected listing or package.", r.Type))
	}
}

// UpdateOrderStatusRequest is the body of PATCH /orders/:id/status
type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" binding:"required"`
}
