package dto

import (
	"time"

	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/policy"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

const (
	fieldCheckInDate  = "check_in_date"
	fieldCheckOutDate = "check_out_date"

	msgCheckOutAfterCheckIn = "Check-out must be after check-in"
)

type CreateBookingRequest struct {
	RoomID        string `json:"room_id"        validate:"notblank,uuid"`
	CustomerName  string `json:"customer_name"  validate:"notblank,max=100"`
	CustomerEmail string `json:"customer_email" validate:"notblank,email,max=100"`
	CustomerPhone string `json:"customer_phone" validate:"notblank,max=20"`
	CheckInDate   string `json:"check_in_date"  validate:"notblank,datetime=2006-01-02"`
	CheckOutDate  string `json:"check_out_date" validate:"notblank,datetime=2006-01-02"`
}

func (c *CreateBookingRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"room_id.notblank":        "Please select a room",
		"room_id.uuid":            "Please select a room",
		"customer_name.notblank":  "Name is required",
		"customer_email.notblank": "Email is required",
		"customer_email.email":    "Please enter a valid email",
		"customer_phone.notblank": "Phone is required",
		"check_in_date.notblank":  "Check-in date is required",
		"check_out_date.notblank": "Check-out date is required",
	}
}

// Dates parses the stay range. The check-out must fall after the check-in.
func (c *CreateBookingRequest) Dates() (checkIn, checkOut time.Time, err error) {
	checkIn, err = timezone.ParseDate(c.CheckInDate)
	if err != nil {
		return checkIn, checkOut, failure.Validation(fieldCheckInDate, "Check-in date is invalid")
	}

	checkOut, err = timezone.ParseDate(c.CheckOutDate)
	if err != nil {
		return checkIn, checkOut, failure.Validation(fieldCheckOutDate, "Check-out date is invalid")
	}

	if !checkOut.After(checkIn) {
		return checkIn, checkOut, failure.Validation(fieldCheckOutDate, msgCheckOutAfterCheckIn)
	}

	return checkIn, checkOut, nil
}

// ToModel builds a pending booking once the range has been priced.
func (c *CreateBookingRequest) ToModel(user string, checkIn, checkOut time.Time, totalPrice float64) model.Booking {
	return model.Booking{
		ID:            uuid.NewString(),
		RoomID:        c.RoomID,
		CustomerName:  c.CustomerName,
		CustomerEmail: c.CustomerEmail,
		CustomerPhone: c.CustomerPhone,
		CheckInDate:   checkIn,
		CheckOutDate:  checkOut,
		TotalPrice:    totalPrice,
		Status:        model.StatusPending,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled completed"`
}

// BookingFilter holds the admin list query.
type BookingFilter struct {
	Status string `json:"status"  validate:"omitempty,oneof=all pending confirmed cancelled completed"`
	Date   string `json:"date"    validate:"omitempty,oneof=all upcoming past today"`
	RoomID string `json:"room_id" validate:"omitempty,uuid"`
}

func (f *BookingFilter) ToFilterGroup(today time.Time) gDto.FilterGroup {
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd, Filters: []any{}}

	if filter, ok := policy.StatusFilter(f.Status); ok {
		group.Filters = append(group.Filters, filter)
	}

	if filter, ok := policy.DateFilter(f.Date, today); ok {
		group.Filters = append(group.Filters, filter)
	}

	if f.RoomID != constant.Empty {
		group.Filters = append(group.Filters, gDto.Filter{
			Field: model.FieldRoomID, Value: f.RoomID, Operator: gDto.FilterOperatorEq, Table: model.TableName,
		})
	}

	return group
}

type BookingResponse struct {
	ID            string  `json:"id"`
	RoomID        string  `json:"room_id"`
	RoomNumber    string  `json:"room_number"`
	RoomType      string  `json:"room_type"`
	CustomerName  string  `json:"customer_name"`
	CustomerEmail string  `json:"customer_email"`
	CustomerPhone string  `json:"customer_phone"`
	CheckInDate   string  `json:"check_in_date"`
	CheckOutDate  string  `json:"check_out_date"`
	Nights        int     `json:"nights"`
	TotalPrice    float64 `json:"total_price"`
	Status        string  `json:"status"`
	gDto.Metadata
}

// FromModel projects a booking. A missing room (deleted after booking) degrades to a
// placeholder label.
func (r *BookingResponse) FromModel(model model.Booking, room *roomModel.Room) {
	r.ID = model.ID
	r.RoomID = model.RoomID
	r.RoomNumber = roomModel.NotFoundLabel
	r.RoomType = roomModel.NotFoundLabel

	if room != nil {
		r.RoomNumber = room.Number
		r.RoomType = room.Type
	}

	r.CustomerName = model.CustomerName
	r.CustomerEmail = model.CustomerEmail
	r.CustomerPhone = model.CustomerPhone
	r.CheckInDate = model.CheckInDate.Format(constant.DateOnlyFormat)
	r.CheckOutDate = model.CheckOutDate.Format(constant.DateOnlyFormat)
	r.Nights = policy.Nights(model.CheckInDate, model.CheckOutDate)
	r.TotalPrice = model.TotalPrice
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

// FromModels projects bookings, resolving rooms by id.
func (r *GetBookingsResponse) FromModels(models []model.Booking, rooms map[string]roomModel.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod, RoomOf(rooms, mod.RoomID))
	}
}

// RoomOf returns the room with id, or nil when it no longer exists.
func RoomOf(rooms map[string]roomModel.Room, id string) *roomModel.Room {
	room, ok := rooms[id]
	if !ok {
		return nil
	}

	return &room
}
