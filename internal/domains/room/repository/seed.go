package repository

import (
	"hotel/internal/domains/room/model"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/lib/pq"
)

// Fixed ids of the demo rooms; migrations/postgres seeds the same rows.
const (
	SeedRoom101ID = "6f1c1a52-3d0e-4b8a-9c61-0d3a5b2f1001"
	SeedRoom102ID = "6f1c1a52-3d0e-4b8a-9c61-0d3a5b2f1002"
	SeedRoom201ID = "6f1c1a52-3d0e-4b8a-9c61-0d3a5b2f2001"
	SeedRoom202ID = "6f1c1a52-3d0e-4b8a-9c61-0d3a5b2f2002"
)

const seedUser = "system"

func Seed() []model.Room {
	now := timezone.Now()
	meta := gModel.Metadata{CreatedAt: now, ModifiedAt: now, CreatedBy: seedUser, ModifiedBy: seedUser}

	return []model.Room{
		{
			ID:        SeedRoom101ID,
			Number:    "101",
			Type:      model.TypeSingle,
			Price:     99,
			Capacity:  1,
			Amenities: pq.StringArray{"WiFi", "TV", "Air Conditioning"},
			Status:    model.StatusAvailable,
			Image:     "https://images.pexels.com/photos/271624/pexels-photo-271624.jpeg",
			Metadata:  meta,
		},
		{
			ID:        SeedRoom102ID,
			Number:    "102",
			Type:      model.TypeDouble,
			Price:     149,
			Capacity:  2,
			Amenities: pq.StringArray{"WiFi", "TV", "Air Conditioning", "Mini Bar"},
			Status:    model.StatusBooked,
			Image:     "https://images.pexels.com/photos/164595/pexels-photo-164595.jpeg",
			Metadata:  meta,
		},
		{
			ID:        SeedRoom201ID,
			Number:    "201",
			Type:      model.TypeSuite,
			Price:     299,
			Capacity:  4,
			Amenities: pq.StringArray{"WiFi", "TV", "Air Conditioning", "Mini Bar", "Jacuzzi"},
			Status:    model.StatusAvailable,
			Image:     "https://images.pexels.com/photos/1579253/pexels-photo-1579253.jpeg",
			Metadata:  meta,
		},
		{
			ID:        SeedRoom202ID,
			Number:    "202",
			Type:      model.TypeDeluxe,
			Price:     399,
			Capacity:  2,
			Amenities: pq.StringArray{"WiFi", "TV", "Air Conditioning", "Mini Bar", "Ocean View"},
			Status:    model.StatusMaintenance,
			Image:     "https://images.pexels.com/photos/1457847/pexels-photo-1457847.jpeg",
			Metadata:  meta,
		},
	}
}
