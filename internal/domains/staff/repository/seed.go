package repository

import (
	"hotel/internal/domains/staff/model"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"
)

const (
	SeedSarahID = "3c5d7e9f-2a4b-4c6d-8e0f-1a2b3c4d0001"
	SeedJamesID = "3c5d7e9f-2a4b-4c6d-8e0f-1a2b3c4d0002"
	SeedEmilyID = "3c5d7e9f-2a4b-4c6d-8e0f-1a2b3c4d0003"
)

func Seed() []model.Staff {
	now := timezone.Now()
	meta := gModel.Metadata{CreatedAt: now, ModifiedAt: now, CreatedBy: "system", ModifiedBy: "system"}

	return []model.Staff{
		{ID: SeedSarahID, Name: "Sarah Williams", Role: model.RoleManager, Phone: "111-222-3333", Email: "sarah@hotel.com", Metadata: meta},
		{ID: SeedJamesID, Name: "James Brown", Role: model.RoleReceptionist, Phone: "444-555-6666", Email: "james@hotel.com", Metadata: meta},
		{ID: SeedEmilyID, Name: "Emily Davis", Role: model.RoleHousekeeper, Phone: "777-888-9999", Email: "emily@hotel.com", Metadata: meta},
	}
}
