package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"hotel/infras/metrics"
	"hotel/infras/otel"
	bookingModel "hotel/internal/domains/booking/model"
	bookingDto "hotel/internal/domains/booking/model/dto"
	bookingRepo "hotel/internal/domains/booking/repository"
	"hotel/internal/domains/dashboard/model/dto"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	staffRepo "hotel/internal/domains/staff/repository"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Dashboard interface {
	Get(ctx context.Context) (dto.DashboardResponse, error)
}

type serviceImpl struct {
	rooms    roomRepo.Room
	bookings bookingRepo.Booking
	staff    staffRepo.Staff
	otel     otel.Otel
}

func New(rooms roomRepo.Room, bookings bookingRepo.Booking, staff staffRepo.Staff, otel otel.Otel) Dashboard {
	return &serviceImpl{
		rooms:    rooms,
		bookings: bookings,
		staff:    staff,
		otel:     otel,
	}
}

// Get is computed on every call; the numbers move with each booking.
func (s *serviceImpl) Get(ctx context.Context) (res dto.DashboardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Dashboard.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	rooms, err := s.rooms.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	bookings, err := s.bookings.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	staffCount, err := s.staff.Count(ctx, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to count staff")

		return res, fmt.Errorf("failed to count staff: %w", err)
	}

	summary := Summarize(rooms, bookings, timezone.Today())

	metrics.OccupancyRate.Set(float64(summary.OccupancyRate))

	byID := make(map[string]roomModel.Room, len(rooms))
	for _, room := range rooms {
		byID[room.ID] = room
	}

	res.TotalRooms = summary.TotalRooms
	res.AvailableRooms = summary.AvailableRooms
	res.BookedRooms = summary.BookedRooms
	res.MaintenanceRooms = summary.MaintenanceRooms
	res.OccupancyRate = summary.OccupancyRate
	res.Revenue = summary.Revenue
	res.TotalBookings = summary.TotalBookings
	res.StaffCount = staffCount

	res.RoomTypes = make([]dto.RoomTypeShare, len(summary.RoomTypes))
	for i, share := range summary.RoomTypes {
		res.RoomTypes[i] = dto.RoomTypeShare{Type: share.Type, Count: share.Count, Percentage: share.Percentage}
	}

	res.UpcomingBookings = project(summary.Upcoming, byID)
	res.TodayCheckIns = project(summary.CheckIns, byID)
	res.TodayCheckOuts = project(summary.CheckOuts, byID)

	return res, nil
}

func project(bookings []bookingModel.Booking, rooms map[string]roomModel.Room) []bookingDto.BookingResponse {
	res := make([]bookingDto.BookingResponse, len(bookings))
	for i, booking := range bookings {
		res[i].FromModel(booking, bookingDto.RoomOf(rooms, booking.RoomID))
	}

	return res
}
