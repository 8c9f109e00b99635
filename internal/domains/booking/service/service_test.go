package service_test

import (
	"bytes"
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"hotel/config"
	"hotel/infras/otel/mocks"
	"hotel/internal/domains/booking/event"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/repository"
	"hotel/internal/domains/booking/service"
	roomModel "hotel/internal/domains/room/model"
	roomRepo "hotel/internal/domains/room/repository"
	"hotel/shared"
	"hotel/shared/cache"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	"hotel/shared/lock"
	gRepo "hotel/shared/repository"
	"hotel/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc      service.Booking
	rooms    roomRepo.Room
	bookings repository.Booking
}

func newFixture(t *testing.T, rooms []roomModel.Room, bookings []model.Booking) fixture {
	t.Helper()

	cfg := &config.Config{}
	cfg.Booking.MaxNights = 30

	otl := mocks.NewOtel()
	roomStore := roomRepo.NewMemory(otl, rooms...)
	bookingStore := repository.NewMemory(otl, bookings...)

	svc := service.New(
		bookingStore,
		roomStore,
		gRepo.NewMemoryTransactor(),
		lock.NewLocal(2*time.Second, otl),
		event.NewPublisher(nil, cfg, otl),
		cfg,
		cache.New(nil, otl),
		otl,
	)

	return fixture{svc: svc, rooms: roomStore, bookings: bookingStore}
}

func seeded(t *testing.T) fixture {
	return newFixture(t, roomRepo.Seed(), repository.Seed())
}

func date(offset int) string {
	return timezone.Today().AddDate(0, 0, offset).Format(time.DateOnly)
}

func request(roomID string, in, out int) dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		RoomID:        roomID,
		CustomerName:  "Ada Lovelace",
		CustomerEmail: "ada@example.com",
		CustomerPhone: "555-000-1111",
		CheckInDate:   date(in),
		CheckOutDate:  date(out),
	}
}

func roomStatus(t *testing.T, f fixture, id string) string {
	t.Helper()

	room, err := f.rooms.Get(context.Background(), shared.FilterByID(id, roomModel.FieldID, roomModel.TableName))
	require.NoError(t, err)

	return room.Status
}

func TestBookingService_Create(t *testing.T) {
	t.Run("books an available room and marks it booked", func(t *testing.T) {
		f := seeded(t)

		res, err := f.svc.Create(context.Background(), request(roomRepo.SeedRoom101ID, 1, 3))
		require.NoError(t, err)

		assert.Equal(t, model.StatusPending, res.Status)
		assert.Equal(t, 198.0, res.TotalPrice)
		assert.Equal(t, 2, res.Nights)
		assert.Equal(t, "101", res.RoomNumber)
		assert.Equal(t, roomModel.StatusBooked, roomStatus(t, f, roomRepo.SeedRoom101ID))
	})

	tests := []struct {
		name    string
		req     dto.CreateBookingRequest
		code    int
		message string
	}{
		{
			name:    "overlaps an active booking",
			req:     request(roomRepo.SeedRoom101ID, 11, 13),
			code:    http.StatusConflict,
			message: "Room is already booked for the selected dates",
		},
		{
			name:    "room already booked",
			req:     request(roomRepo.SeedRoom102ID, 20, 22),
			code:    http.StatusConflict,
			message: "Room is not available",
		},
		{
			name:    "room under maintenance",
			req:     request(roomRepo.SeedRoom202ID, 1, 2),
			code:    http.StatusConflict,
			message: "Room is not available",
		},
		{
			name:    "check-out equals check-in",
			req:     request(roomRepo.SeedRoom101ID, 1, 1),
			code:    http.StatusBadRequest,
			message: "Check-out must be after check-in",
		},
		{
			name:    "stay too long",
			req:     request(roomRepo.SeedRoom101ID, 20, 60),
			code:    http.StatusBadRequest,
			message: "Stay cannot exceed 30 nights",
		},
		{
			name:    "unknown room",
			req:     request("00000000-0000-0000-0000-000000000000", 1, 2),
			code:    http.StatusNotFound,
			message: roomModel.NotFoundLabel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := seeded(t)

			_, err := f.svc.Create(context.Background(), tt.req)
			require.Error(t, err)

			assert.Equal(t, tt.code, failure.GetCode(err))
			assert.Equal(t, tt.message, err.Error())
		})
	}

	t.Run("invalid range reports the field", func(t *testing.T) {
		f := seeded(t)

		_, err := f.svc.Create(context.Background(), request(roomRepo.SeedRoom101ID, 3, 1))
		require.Error(t, err)

		assert.Equal(t, map[string]string{"check_out_date": "Check-out must be after check-in"}, failure.GetFields(err))
	})
}

func TestBookingService_CreateConcurrent(t *testing.T) {
	room := roomModel.Room{ID: "room-1", Number: "301", Type: roomModel.TypeDouble, Price: 120, Capacity: 2, Status: roomModel.StatusAvailable}
	f := newFixture(t, []roomModel.Room{room}, nil)

	const attempts = 8

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)

	for range attempts {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := f.svc.Create(context.Background(), request(room.ID, 2, 5))

			mu.Lock()
			defer mu.Unlock()

			if err == nil {
				successes++
			} else if failure.GetCode(err) == http.StatusConflict {
				conflicts++
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)

	count, err := f.bookings.Count(context.Background(), gDto.FilterGroup{})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestBookingService_UpdateStatus(t *testing.T) {
	t.Run("cancelling the only pending booking releases the room", func(t *testing.T) {
		room := roomModel.Room{ID: "room-1", Number: "301", Type: roomModel.TypeDouble, Price: 149, Capacity: 2, Status: roomModel.StatusAvailable}
		f := newFixture(t, []roomModel.Room{room}, nil)

		created, err := f.svc.Create(context.Background(), request(room.ID, 1, 3))
		require.NoError(t, err)
		assert.Equal(t, roomModel.StatusBooked, roomStatus(t, f, room.ID))

		res, err := f.svc.UpdateStatus(context.Background(), dto.UpdateBookingStatusRequest{Status: model.StatusCancelled}, created.ID)
		require.NoError(t, err)

		assert.Equal(t, model.StatusCancelled, res.Status)
		assert.Equal(t, roomModel.StatusAvailable, roomStatus(t, f, room.ID))
	})

	t.Run("seeded confirmed booking keeps room 101 booked after a cancel", func(t *testing.T) {
		f := seeded(t)

		created, err := f.svc.Create(context.Background(), request(roomRepo.SeedRoom101ID, 1, 3))
		require.NoError(t, err)

		_, err = f.svc.UpdateStatus(context.Background(), dto.UpdateBookingStatusRequest{Status: model.StatusCancelled}, created.ID)
		require.NoError(t, err)

		assert.Equal(t, roomModel.StatusBooked, roomStatus(t, f, roomRepo.SeedRoom101ID))
	})

	t.Run("confirming keeps the room booked", func(t *testing.T) {
		f := seeded(t)

		created, err := f.svc.Create(context.Background(), request(roomRepo.SeedRoom101ID, 1, 3))
		require.NoError(t, err)

		_, err = f.svc.UpdateStatus(context.Background(), dto.UpdateBookingStatusRequest{Status: model.StatusConfirmed}, created.ID)
		require.NoError(t, err)

		assert.Equal(t, roomModel.StatusBooked, roomStatus(t, f, roomRepo.SeedRoom101ID))
	})

	t.Run("room stays booked while another active booking holds it", func(t *testing.T) {
		today := timezone.Today()
		room := roomModel.Room{ID: "room-1", Number: "301", Price: 100, Status: roomModel.StatusBooked}
		bookings := []model.Booking{
			{ID: "b1", RoomID: room.ID, CheckInDate: today, CheckOutDate: today.AddDate(0, 0, 2), Status: model.StatusConfirmed},
			{ID: "b2", RoomID: room.ID, CheckInDate: today.AddDate(0, 0, 4), CheckOutDate: today.AddDate(0, 0, 6), Status: model.StatusPending},
		}
		f := newFixture(t, []roomModel.Room{room}, bookings)

		_, err := f.svc.UpdateStatus(context.Background(), dto.UpdateBookingStatusRequest{Status: model.StatusCancelled}, "b1")
		require.NoError(t, err)
		assert.Equal(t, roomModel.StatusBooked, roomStatus(t, f, room.ID))

		_, err = f.svc.UpdateStatus(context.Background(), dto.UpdateBookingStatusRequest{Status: model.StatusCancelled}, "b2")
		require.NoError(t, err)
		assert.Equal(t, roomModel.StatusAvailable, roomStatus(t, f, room.ID))
	})

	t.Run("maintenance room is not flipped", func(t *testing.T) {
		today := timezone.Today()
		room := roomModel.Room{ID: "room-1", Number: "301", Price: 100, Status: roomModel.StatusMaintenance}
		bookings := []model.Booking{
			{ID: "b1", RoomID: room.ID, CheckInDate: today, CheckOutDate: today.AddDate(0, 0, 2), Status: model.StatusPending},
		}
		f := newFixture(t, []roomModel.Room{room}, bookings)

		_, err := f.svc.UpdateStatus(context.Background(), dto.UpdateBookingStatusRequest{Status: model.StatusCancelled}, "b1")
		require.NoError(t, err)
		assert.Equal(t, roomModel.StatusMaintenance, roomStatus(t, f, room.ID))
	})

	tests := []struct {
		name string
		from string
		to   string
	}{
		{name: "confirmed to pending", from: model.StatusConfirmed, to: model.StatusPending},
		{name: "cancelled is terminal", from: model.StatusCancelled, to: model.StatusConfirmed},
		{name: "completed is terminal", from: model.StatusCompleted, to: model.StatusCancelled},
		{name: "pending to completed", from: model.StatusPending, to: model.StatusCompleted},
		{name: "self transition", from: model.StatusPending, to: model.StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			today := timezone.Today()
			room := roomModel.Room{ID: "room-1", Status: roomModel.StatusBooked}
			bookings := []model.Booking{
				{ID: "b1", RoomID: room.ID, CheckInDate: today, CheckOutDate: today.AddDate(0, 0, 1), Status: tt.from},
			}
			f := newFixture(t, []roomModel.Room{room}, bookings)

			_, err := f.svc.UpdateStatus(context.Background(), dto.UpdateBookingStatusRequest{Status: tt.to}, "b1")
			require.Error(t, err)
			assert.Equal(t, http.StatusConflict, failure.GetCode(err))

			booking, err := f.bookings.Get(context.Background(), shared.FilterByID("b1", model.FieldID, model.TableName))
			require.NoError(t, err)
			assert.Equal(t, tt.from, booking.Status)
		})
	}

	t.Run("unknown booking", func(t *testing.T) {
		f := seeded(t)

		_, err := f.svc.UpdateStatus(context.Background(), dto.UpdateBookingStatusRequest{Status: model.StatusConfirmed}, "missing")
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingService_GetAll(t *testing.T) {
	f := seeded(t)
	params := gDto.QueryParams{Page: 1, Limit: 10, SortBy: model.FieldCheckInDate, SortDir: gDto.SortDirAsc}

	res, err := f.svc.GetAll(context.Background(), params, dto.BookingFilter{Status: model.StatusConfirmed})
	require.NoError(t, err)

	require.Len(t, res.Bookings, 2)
	assert.Equal(t, 2, res.TotalData)
	assert.Equal(t, "John Doe", res.Bookings[0].CustomerName)
	assert.Equal(t, "102", res.Bookings[0].RoomNumber)
	assert.Equal(t, "Michael Johnson", res.Bookings[1].CustomerName)

	upcoming, err := f.svc.GetAll(context.Background(), params, dto.BookingFilter{Date: "upcoming"})
	require.NoError(t, err)
	assert.Equal(t, 3, upcoming.TotalData)

	past, err := f.svc.GetAll(context.Background(), params, dto.BookingFilter{Date: "past"})
	require.NoError(t, err)
	assert.Equal(t, 0, past.TotalData)
}

func TestBookingService_GetDeletedRoom(t *testing.T) {
	f := seeded(t)

	err := f.rooms.Delete(context.Background(), shared.FilterByID(roomRepo.SeedRoom201ID, roomModel.FieldID, roomModel.TableName))
	require.NoError(t, err)

	res, err := f.svc.Get(context.Background(), repository.Seed()[1].ID)
	require.NoError(t, err)

	assert.Equal(t, roomModel.NotFoundLabel, res.RoomNumber)
	assert.Equal(t, roomModel.NotFoundLabel, res.RoomType)
	assert.Equal(t, "Jane Smith", res.CustomerName)
}

func TestBookingService_Delete(t *testing.T) {
	f := seeded(t)

	err := f.svc.Delete(context.Background(), repository.Seed()[0].ID)
	require.NoError(t, err)

	assert.Equal(t, roomModel.StatusAvailable, roomStatus(t, f, roomRepo.SeedRoom102ID))

	_, err = f.svc.Get(context.Background(), repository.Seed()[0].ID)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	err = f.svc.Delete(context.Background(), "missing")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestBookingService_Export(t *testing.T) {
	f := seeded(t)

	content, err := f.svc.Export(context.Background(), dto.BookingFilter{})
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(content, []byte("PK")), "xlsx is a zip archive")
}
