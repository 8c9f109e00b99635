package dto

import (
	"hotel/internal/domains/user/model"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

// SeedUser is an account created at startup when its email is not registered yet.
type SeedUser struct {
	Name  string
	Email string
	Role  string
}

func (s SeedUser) ToModel(username, hashedPassword string) model.User {
	return model.User{
		ID:       uuid.NewString(),
		Name:     s.Name,
		Email:    s.Email,
		Password: hashedPassword,
		Role:     s.Role,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  username,
			ModifiedBy: username,
		},
	}
}

type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
	r.Role = model.Role
}
