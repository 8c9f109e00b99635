// Package policy holds the booking rules: availability, pricing, status transitions
// and the admin list criteria. Everything here is pure.
package policy

import (
	"errors"
	"math"
	"time"

	"hotel/internal/domains/booking/model"
	roomModel "hotel/internal/domains/room/model"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
)

const (
	DateUpcoming = "upcoming"
	DatePast     = "past"
	DateToday    = "today"
)

var (
	ErrInvalidRange      = errors.New("check-out must be after check-in")
	ErrStayTooLong       = errors.New("stay exceeds the maximum number of nights")
	ErrRoomUnavailable   = errors.New("room is not available")
	ErrOverlap           = errors.New("room is already booked for the selected dates")
	ErrInvalidTransition = errors.New("booking status transition is not allowed")
)

var transitions = map[string][]string{
	model.StatusPending:   {model.StatusConfirmed, model.StatusCancelled},
	model.StatusConfirmed: {model.StatusCancelled, model.StatusCompleted},
}

type Quote struct {
	Nights     int
	TotalPrice float64
}

// Nights counts started days between the two dates.
func Nights(checkIn, checkOut time.Time) int {
	return int(math.Ceil(checkOut.Sub(checkIn).Hours() / constant.HoursPerDay))
}

// Price quotes a stay. maxNights <= 0 disables the length limit.
func Price(nightly float64, checkIn, checkOut time.Time, maxNights int) (Quote, error) {
	if !checkOut.After(checkIn) {
		return Quote{}, ErrInvalidRange
	}

	nights := max(Nights(checkIn, checkOut), 1)
	if maxNights > 0 && nights > maxNights {
		return Quote{}, ErrStayTooLong
	}

	return Quote{Nights: nights, TotalPrice: nightly * float64(nights)}, nil
}

// Overlaps reports whether [aIn, aOut) and [bIn, bOut) intersect.
func Overlaps(aIn, aOut, bIn, bOut time.Time) bool {
	return aIn.Before(bOut) && bIn.Before(aOut)
}

// Check decides whether room can take a new booking for the range, given the
// bookings already recorded against it.
func Check(room roomModel.Room, checkIn, checkOut time.Time, existing []model.Booking, maxNights int) (Quote, error) {
	quote, err := Price(room.Price, checkIn, checkOut, maxNights)
	if err != nil {
		return Quote{}, err
	}

	if !room.IsAvailable() {
		return quote, ErrRoomUnavailable
	}

	if Conflicting(room.ID, checkIn, checkOut, existing) {
		return quote, ErrOverlap
	}

	return quote, nil
}

// Conflicting reports whether an active booking of roomID overlaps the range.
func Conflicting(roomID string, checkIn, checkOut time.Time, existing []model.Booking) bool {
	for _, booking := range existing {
		if booking.RoomID != roomID || !booking.IsActive() {
			continue
		}

		if Overlaps(checkIn, checkOut, booking.CheckInDate, booking.CheckOutDate) {
			return true
		}
	}

	return false
}

func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}

	return false
}

// ReleasesRoom reports whether the move takes the booking out of the active set.
func ReleasesRoom(from, to string) bool {
	return isActive(from) && !isActive(to)
}

// HoldsRoom reports whether any other active booking still references roomID and has
// not checked out before today.
func HoldsRoom(roomID, exceptID string, bookings []model.Booking, today time.Time) bool {
	for _, booking := range bookings {
		if booking.ID == exceptID || booking.RoomID != roomID || !booking.IsActive() {
			continue
		}

		if !booking.CheckOutDate.Before(today) {
			return true
		}
	}

	return false
}

func isActive(status string) bool {
	return status == model.StatusPending || status == model.StatusConfirmed
}

// ActiveOnRoom selects the bookings that can collide with a new one on roomID.
func ActiveOnRoom(roomID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldRoomID, Value: roomID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, Value: model.ActiveStatuses, Operator: gDto.FilterOperatorIn, Table: model.TableName},
		},
	}
}

// StatusFilter matches status exactly; empty or "all" yields no filter.
func StatusFilter(status string) (gDto.Filter, bool) {
	if status == constant.Empty || status == constant.All {
		return gDto.Filter{}, false
	}

	return gDto.Filter{Field: model.FieldStatus, Value: status, Operator: gDto.FilterOperatorEq, Table: model.TableName}, true
}

// DateFilter expresses the upcoming/past/today views relative to today. Unknown values,
// empty and "all" yield no filter.
func DateFilter(date string, today time.Time) (gDto.FilterGroup, bool) {
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	switch date {
	case DateUpcoming:
		group.Filters = []any{
			gDto.Filter{Field: model.FieldCheckInDate, Value: today, Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName},
		}
	case DatePast:
		group.Filters = []any{
			gDto.Filter{Field: model.FieldCheckOutDate, Value: today, Operator: gDto.FilterOperatorLess, Table: model.TableName},
		}
	case DateToday:
		group.Filters = []any{
			gDto.Filter{Field: model.FieldCheckInDate, Value: today, Operator: gDto.FilterOperatorLessEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldCheckOutDate, Value: today, Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName},
		}
	default:
		return group, false
	}

	return group, true
}
