package model

import (
	"hotel/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID        = "id"
	FieldNumber    = "number"
	FieldType      = "type"
	FieldPrice     = "price"
	FieldCapacity  = "capacity"
	FieldAmenities = "amenities"
	FieldStatus    = "status"
	FieldImage     = "image"
)

const (
	TypeSingle = "single"
	TypeDouble = "double"
	TypeSuite  = "suite"
	TypeDeluxe = "deluxe"
)

const (
	StatusAvailable   = "available"
	StatusBooked      = "booked"
	StatusMaintenance = "maintenance"
)

// Creation defaults of the admin room form.
const (
	DefaultType     = TypeSingle
	DefaultPrice    = 99
	DefaultCapacity = 1
	DefaultStatus   = StatusAvailable
)

// NotFoundLabel replaces room number and type on projections whose room was deleted.
const NotFoundLabel = "Room not found"

var Types = []string{TypeSingle, TypeDouble, TypeSuite, TypeDeluxe}

type Room struct {
	ID        string         `db:"id"`
	Number    string         `db:"number"`
	Type      string         `db:"type"`
	Price     float64        `db:"price"`
	Capacity  int            `db:"capacity"`
	Amenities pq.StringArray `db:"amenities"`
	Status    string         `db:"status"`
	Image     string         `db:"image"`
	model.Metadata
}

func (r Room) IsAvailable() bool {
	return r.Status == StatusAvailable
}
