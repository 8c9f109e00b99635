package model

import "hotel/shared/model"

const (
	TableName  = "staff"
	EntityName = "staff"

	FieldID    = "id"
	FieldName  = "name"
	FieldRole  = "role"
	FieldPhone = "phone"
	FieldEmail = "email"
)

const (
	RoleManager      = "manager"
	RoleReceptionist = "receptionist"
	RoleHousekeeper  = "housekeeper"
	RoleMaintenance  = "maintenance"
)

// NotFoundLabel is returned when a staff member does not exist.
const NotFoundLabel = "Staff member not found"

type Staff struct {
	ID    string `db:"id"`
	Name  string `db:"name"`
	Role  string `db:"role"`
	Phone string `db:"phone"`
	Email string `db:"email"`
	model.Metadata
}
