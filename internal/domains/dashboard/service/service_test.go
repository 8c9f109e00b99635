package service_test

import (
	"context"
	"testing"

	"hotel/infras/metrics"
	"hotel/infras/otel/mocks"
	bookingRepo "hotel/internal/domains/booking/repository"
	"hotel/internal/domains/dashboard/service"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	staffRepo "hotel/internal/domains/staff/repository"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_Get(t *testing.T) {
	otl := mocks.NewOtel()

	rooms := roomRepo.NewMemory(otl, roomRepo.Seed()...)
	svc := service.New(rooms, bookingRepo.NewMemory(otl, bookingRepo.Seed()...), staffRepo.NewMemory(otl, staffRepo.Seed()...), otl)

	res, err := svc.Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, res.TotalRooms)
	assert.Equal(t, 1, res.BookedRooms)
	assert.Equal(t, 25, res.OccupancyRate)
	assert.InDelta(t, 1393, res.Revenue, 0.001)
	assert.Equal(t, 3, res.StaffCount)
	assert.InDelta(t, 25, testutil.ToFloat64(metrics.OccupancyRate), 0.001)

	require.Len(t, res.UpcomingBookings, 2)
	assert.Equal(t, "John Doe", res.UpcomingBookings[0].CustomerName)
	assert.Equal(t, "102", res.UpcomingBookings[0].RoomNumber)
	assert.Equal(t, "Michael Johnson", res.UpcomingBookings[1].CustomerName)

	t.Run("deleted room degrades to placeholder", func(t *testing.T) {
		otl := mocks.NewOtel()
		seed := roomRepo.Seed()

		// room 102 is the one John Doe booked
		svc := service.New(roomRepo.NewMemory(otl, seed[0], seed[2], seed[3]), bookingRepo.NewMemory(otl, bookingRepo.Seed()...), staffRepo.NewMemory(otl), otl)

		res, err := svc.Get(context.Background())
		require.NoError(t, err)

		assert.Equal(t, 0, res.OccupancyRate)
		assert.Equal(t, roomModel.NotFoundLabel, res.UpcomingBookings[0].RoomNumber)
		assert.Equal(t, 0, res.StaffCount)
	})
}
