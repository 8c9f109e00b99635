package policy_test

import (
	"testing"
	"time"

	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/policy"
	roomModel "hotel/internal/domains/room/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(offset int) time.Time {
	return time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func TestPrice(t *testing.T) {
	tests := []struct {
		name      string
		nightly   float64
		in, out   time.Time
		maxNights int
		want      policy.Quote
		wantErr   error
	}{
		{name: "two nights", nightly: 149, in: day(0), out: day(2), want: policy.Quote{Nights: 2, TotalPrice: 298}},
		{name: "partial day rounds up", nightly: 100, in: day(0), out: day(1).Add(time.Hour), want: policy.Quote{Nights: 2, TotalPrice: 200}},
		{name: "same day", nightly: 99, in: day(0), out: day(0), wantErr: policy.ErrInvalidRange},
		{name: "reversed", nightly: 99, in: day(3), out: day(1), wantErr: policy.ErrInvalidRange},
		{name: "too long", nightly: 99, in: day(0), out: day(31), maxNights: 30, wantErr: policy.ErrStayTooLong},
		{name: "limit disabled", nightly: 10, in: day(0), out: day(40), want: policy.Quote{Nights: 40, TotalPrice: 400}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := policy.Price(tt.nightly, tt.in, tt.out, tt.maxNights)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOverlaps(t *testing.T) {
	assert.True(t, policy.Overlaps(day(0), day(3), day(2), day(5)))
	assert.True(t, policy.Overlaps(day(1), day(2), day(0), day(5)))
	assert.False(t, policy.Overlaps(day(0), day(3), day(3), day(5)), "adjacent ranges do not overlap")
	assert.False(t, policy.Overlaps(day(5), day(6), day(0), day(5)))
}

func TestCheck(t *testing.T) {
	room := roomModel.Room{ID: "r1", Price: 149, Status: roomModel.StatusAvailable}
	existing := []model.Booking{
		{ID: "b1", RoomID: "r1", CheckInDate: day(2), CheckOutDate: day(4), Status: model.StatusConfirmed},
		{ID: "b2", RoomID: "r1", CheckInDate: day(6), CheckOutDate: day(8), Status: model.StatusCancelled},
		{ID: "b3", RoomID: "r2", CheckInDate: day(0), CheckOutDate: day(9), Status: model.StatusPending},
	}

	t.Run("free range", func(t *testing.T) {
		quote, err := policy.Check(room, day(0), day(2), existing, 30)
		require.NoError(t, err)
		assert.Equal(t, 298.0, quote.TotalPrice)
	})

	t.Run("overlapping active booking", func(t *testing.T) {
		_, err := policy.Check(room, day(3), day(5), existing, 30)
		assert.ErrorIs(t, err, policy.ErrOverlap)
	})

	t.Run("cancelled booking ignored", func(t *testing.T) {
		_, err := policy.Check(room, day(6), day(8), existing, 30)
		assert.NoError(t, err)
	})

	t.Run("room not available", func(t *testing.T) {
		maintenance := room
		maintenance.Status = roomModel.StatusMaintenance

		_, err := policy.Check(maintenance, day(10), day(11), nil, 30)
		assert.ErrorIs(t, err, policy.ErrRoomUnavailable)
	})

	t.Run("invalid range wins", func(t *testing.T) {
		_, err := policy.Check(room, day(1), day(1), existing, 30)
		assert.ErrorIs(t, err, policy.ErrInvalidRange)
	})
}

func TestCanTransition(t *testing.T) {
	statuses := []string{model.StatusPending, model.StatusConfirmed, model.StatusCancelled, model.StatusCompleted}
	allowed := map[[2]string]bool{
		{model.StatusPending, model.StatusConfirmed}:   true,
		{model.StatusPending, model.StatusCancelled}:   true,
		{model.StatusConfirmed, model.StatusCancelled}: true,
		{model.StatusConfirmed, model.StatusCompleted}: true,
	}

	for _, from := range statuses {
		for _, to := range statuses {
			assert.Equal(t, allowed[[2]string{from, to}], policy.CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestReleasesRoom(t *testing.T) {
	assert.True(t, policy.ReleasesRoom(model.StatusPending, model.StatusCancelled))
	assert.True(t, policy.ReleasesRoom(model.StatusConfirmed, model.StatusCompleted))
	assert.False(t, policy.ReleasesRoom(model.StatusPending, model.StatusConfirmed))
}

func TestHoldsRoom(t *testing.T) {
	bookings := []model.Booking{
		{ID: "b1", RoomID: "r1", CheckOutDate: day(3), Status: model.StatusPending},
		{ID: "b2", RoomID: "r1", CheckOutDate: day(-2), Status: model.StatusConfirmed},
		{ID: "b3", RoomID: "r1", CheckOutDate: day(5), Status: model.StatusCancelled},
	}

	assert.False(t, policy.HoldsRoom("r1", "b1", bookings, day(0)))
	assert.True(t, policy.HoldsRoom("r1", "b9", bookings, day(0)))
	assert.False(t, policy.HoldsRoom("r2", "b9", bookings, day(0)))
}

func TestDateFilter(t *testing.T) {
	today := day(0)
	bookings := map[string]model.Booking{
		"future":  {CheckInDate: day(2), CheckOutDate: day(4)},
		"past":    {CheckInDate: day(-5), CheckOutDate: day(-1)},
		"current": {CheckInDate: day(-1), CheckOutDate: day(1)},
		"leaving": {CheckInDate: day(-2), CheckOutDate: day(0)},
	}

	tests := map[string][]string{
		policy.DateUpcoming: {"future"},
		policy.DatePast:     {"past"},
		policy.DateToday:    {"current", "leaving"},
	}

	for date, want := range tests {
		t.Run(date, func(t *testing.T) {
			group, ok := policy.DateFilter(date, today)
			require.True(t, ok)

			var got []string

			for name, booking := range bookings {
				if group.Match(booking) {
					got = append(got, name)
				}
			}

			assert.ElementsMatch(t, want, got)
		})
	}

	_, ok := policy.DateFilter("all", today)
	assert.False(t, ok)
}

func TestStatusFilter(t *testing.T) {
	_, ok := policy.StatusFilter("")
	assert.False(t, ok)

	_, ok = policy.StatusFilter("all")
	assert.False(t, ok)

	filter, ok := policy.StatusFilter(model.StatusPending)
	require.True(t, ok)
	assert.True(t, filter.Match(model.Booking{Status: model.StatusPending}))
	assert.False(t, filter.Match(model.Booking{Status: model.StatusConfirmed}))
}

func TestActiveOnRoom(t *testing.T) {
	group := policy.ActiveOnRoom("r1")

	assert.True(t, group.Match(model.Booking{RoomID: "r1", Status: model.StatusConfirmed}))
	assert.False(t, group.Match(model.Booking{RoomID: "r1", Status: model.StatusCompleted}))
	assert.False(t, group.Match(model.Booking{RoomID: "r2", Status: model.StatusPending}))
}
