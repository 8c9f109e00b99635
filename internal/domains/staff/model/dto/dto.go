package dto

import (
	"hotel/internal/domains/staff/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
)

type CreateStaffRequest struct {
	Name  string `json:"name"  validate:"notblank,max=100"`
	Role  string `json:"role"  validate:"required,oneof=manager receptionist housekeeper maintenance"`
	Phone string `json:"phone" validate:"notblank,max=30"`
	Email string `json:"email" validate:"required,email"`
}

func (c *CreateStaffRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"name.notblank":  "Name is required",
		"role.required":  "Role is required",
		"phone.notblank": "Phone is required",
		"email.required": "Email is required",
		"email.email":    "Please enter a valid email",
	}
}

func (c *CreateStaffRequest) ToModel(user string) model.Staff {
	return model.Staff{
		ID:    uuid.NewString(),
		Name:  c.Name,
		Role:  c.Role,
		Phone: c.Phone,
		Email: c.Email,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateStaffRequest struct {
	Name  string `db:"name"  json:"name"  validate:"omitempty,notblank,max=100"`
	Role  string `db:"role"  json:"role"  validate:"omitempty,oneof=manager receptionist housekeeper maintenance"`
	Phone string `db:"phone" json:"phone" validate:"omitempty,notblank,max=30"`
	Email string `db:"email" json:"email" validate:"omitempty,email"`
}

func (u *UpdateStaffRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"email.email": "Please enter a valid email",
	}
}

func (u *UpdateStaffRequest) IsEmpty() bool {
	return u.Name == constant.Empty && u.Role == constant.Empty && u.Phone == constant.Empty && u.Email == constant.Empty
}

// StaffFilter searches name or email, case-insensitively.
type StaffFilter struct {
	Search string `json:"search"`
	Role   string `json:"role"   validate:"omitempty,oneof=all manager receptionist housekeeper maintenance"`
}

func (f *StaffFilter) ToFilterGroup() gDto.FilterGroup {
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd, Filters: []any{}}

	if f.Search != constant.Empty {
		group.Filters = append(group.Filters, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{ArgName: "search_name", Field: model.FieldName, Value: f.Search, Operator: gDto.FilterOperatorLike, Table: model.TableName},
				gDto.Filter{ArgName: "search_email", Field: model.FieldEmail, Value: f.Search, Operator: gDto.FilterOperatorLike, Table: model.TableName},
			},
		})
	}

	if f.Role != constant.Empty && f.Role != constant.All {
		group.Filters = append(group.Filters, gDto.Filter{
			Field: model.FieldRole, Value: f.Role, Operator: gDto.FilterOperatorEq, Table: model.TableName,
		})
	}

	return group
}

type StaffResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	gDto.Metadata
}

func (r *StaffResponse) FromModel(model model.Staff) {
	r.ID = model.ID
	r.Name = model.Name
	r.Role = model.Role
	r.Phone = model.Phone
	r.Email = model.Email
	r.Metadata.FromModel(model.Metadata)
}

type GetStaffResponse struct {
	Staff     []StaffResponse `json:"staff"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetStaffResponse) FromModels(models []model.Staff, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Staff = make([]StaffResponse, len(models))
	for i, mod := range models {
		r.Staff[i].FromModel(mod)
	}
}
