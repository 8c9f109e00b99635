package model

import (
	"time"

	"hotel/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID            = "id"
	FieldRoomID        = "room_id"
	FieldCustomerName  = "customer_name"
	FieldCustomerEmail = "customer_email"
	FieldCustomerPhone = "customer_phone"
	FieldCheckInDate   = "check_in_date"
	FieldCheckOutDate  = "check_out_date"
	FieldTotalPrice    = "total_price"
	FieldStatus        = "status"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// ActiveStatuses hold their room.
var ActiveStatuses = []string{StatusPending, StatusConfirmed}

type Booking struct {
	ID            string    `db:"id"`
	RoomID        string    `db:"room_id"`
	CustomerName  string    `db:"customer_name"`
	CustomerEmail string    `db:"customer_email"`
	CustomerPhone string    `db:"customer_phone"`
	CheckInDate   time.Time `db:"check_in_date"`
	CheckOutDate  time.Time `db:"check_out_date"`
	TotalPrice    float64   `db:"total_price"`
	Status        string    `db:"status"`
	model.Metadata
}

func (b Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}
