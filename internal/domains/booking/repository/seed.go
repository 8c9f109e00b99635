package repository

import (
	"hotel/internal/domains/booking/model"
	roomRepo "hotel/internal/domains/room/repository"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"
)

const seedUser = "system"

// Seed returns the demo bookings, dated relative to today.
func Seed() []model.Booking {
	now := timezone.Now()
	today := timezone.Today()
	meta := gModel.Metadata{CreatedAt: now, ModifiedAt: now, CreatedBy: seedUser, ModifiedBy: seedUser}

	return []model.Booking{
		{
			ID:            "9b2e4c7a-1f3d-4e8b-a5c6-7d8e9f0a0001",
			RoomID:        roomRepo.SeedRoom102ID,
			CustomerName:  "John Doe",
			CustomerEmail: "john@example.com",
			CustomerPhone: "123-456-7890",
			CheckInDate:   today.AddDate(0, 0, 1),
			CheckOutDate:  today.AddDate(0, 0, 3),
			TotalPrice:    298,
			Status:        model.StatusConfirmed,
			Metadata:      meta,
		},
		{
			ID:            "9b2e4c7a-1f3d-4e8b-a5c6-7d8e9f0a0002",
			RoomID:        roomRepo.SeedRoom201ID,
			CustomerName:  "Jane Smith",
			CustomerEmail: "jane@example.com",
			CustomerPhone: "987-654-3210",
			CheckInDate:   today.AddDate(0, 0, 5),
			CheckOutDate:  today.AddDate(0, 0, 8),
			TotalPrice:    897,
			Status:        model.StatusPending,
			Metadata:      meta,
		},
		{
			ID:            "9b2e4c7a-1f3d-4e8b-a5c6-7d8e9f0a0003",
			RoomID:        roomRepo.SeedRoom101ID,
			CustomerName:  "Michael Johnson",
			CustomerEmail: "michael@example.com",
			CustomerPhone: "555-123-4567",
			CheckInDate:   today.AddDate(0, 0, 10),
			CheckOutDate:  today.AddDate(0, 0, 12),
			TotalPrice:    198,
			Status:        model.StatusConfirmed,
			Metadata:      meta,
		},
	}
}
