package service

import (
	"math"
	"slices"
	"time"

	bookingModel "hotel/internal/domains/booking/model"
	roomModel "hotel/internal/domains/room/model"
)

type TypeCount struct {
	Type       string
	Count      int
	Percentage int
}

// Summary is the aggregate behind the dashboard. Booking lists are ordered by check-in.
type Summary struct {
	TotalRooms       int
	AvailableRooms   int
	BookedRooms      int
	MaintenanceRooms int
	OccupancyRate    int
	Revenue          float64
	TotalBookings    int
	RoomTypes        []TypeCount
	Upcoming         []bookingModel.Booking
	CheckIns         []bookingModel.Booking
	CheckOuts        []bookingModel.Booking
}

// Percent rounds part/total to a whole percentage, 0 when total is 0.
func Percent(part, total int) int {
	if total == 0 {
		return 0
	}

	return int(math.Round(float64(part) / float64(total) * 100))
}

// Summarize aggregates rooms and bookings as of the calendar day today. Check-ins and
// check-outs list every booking dated today, whatever its status.
func Summarize(rooms []roomModel.Room, bookings []bookingModel.Booking, today time.Time) Summary {
	summary := Summary{
		TotalRooms:    len(rooms),
		TotalBookings: len(bookings),
		RoomTypes:     make([]TypeCount, 0, len(roomModel.Types)),
		Upcoming:      []bookingModel.Booking{},
		CheckIns:      []bookingModel.Booking{},
		CheckOuts:     []bookingModel.Booking{},
	}

	types := map[string]int{}

	for _, room := range rooms {
		switch room.Status {
		case roomModel.StatusAvailable:
			summary.AvailableRooms++
		case roomModel.StatusBooked:
			summary.BookedRooms++
		case roomModel.StatusMaintenance:
			summary.MaintenanceRooms++
		}

		types[room.Type]++
	}

	summary.OccupancyRate = Percent(summary.BookedRooms, summary.TotalRooms)

	for _, typ := range roomModel.Types {
		summary.RoomTypes = append(summary.RoomTypes, TypeCount{
			Type:       typ,
			Count:      types[typ],
			Percentage: Percent(types[typ], summary.TotalRooms),
		})
	}

	for _, booking := range bookings {
		if booking.Status != bookingModel.StatusCancelled {
			summary.Revenue += booking.TotalPrice
		}

		if booking.Status == bookingModel.StatusConfirmed && booking.CheckInDate.After(today) {
			summary.Upcoming = append(summary.Upcoming, booking)
		}

		if booking.CheckInDate.Equal(today) {
			summary.CheckIns = append(summary.CheckIns, booking)
		}

		if booking.CheckOutDate.Equal(today) {
			summary.CheckOuts = append(summary.CheckOuts, booking)
		}
	}

	byCheckIn := func(left, right bookingModel.Booking) int {
		return left.CheckInDate.Compare(right.CheckInDate)
	}

	slices.SortStableFunc(summary.Upcoming, byCheckIn)
	slices.SortStableFunc(summary.CheckIns, byCheckIn)
	slices.SortStableFunc(summary.CheckOuts, byCheckIn)

	return summary
}
