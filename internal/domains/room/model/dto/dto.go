package dto

import (
	"time"

	"hotel/internal/domains/room/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"
	gModel "hotel/shared/model"
	"hotel/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CreateRoomRequest struct {
	Number    string   `json:"number"    validate:"notblank,max=10"`
	Type      string   `json:"type"      validate:"omitempty,oneof=single double suite deluxe"`
	Price     *float64 `json:"price"     validate:"omitempty,gt=0"`
	Capacity  *int     `json:"capacity"  validate:"omitempty,gt=0,lte=20"`
	Amenities []string `json:"amenities" validate:"omitempty,max=20,dive,notblank,max=50"`
	Status    string   `json:"status"    validate:"omitempty,oneof=available booked maintenance"`
	Image     string   `json:"image"     validate:"omitempty,imageref"`
}

func (c *CreateRoomRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"number.notblank": "Room number is required",
		"price.gt":        "Price must be greater than 0",
		"capacity.gt":     "Capacity must be at least 1",
	}
}

// ToModel fills unset fields with the admin form defaults.
func (c *CreateRoomRequest) ToModel(user string) model.Room {
	room := model.Room{
		ID:        uuid.NewString(),
		Number:    c.Number,
		Type:      model.DefaultType,
		Price:     model.DefaultPrice,
		Capacity:  model.DefaultCapacity,
		Amenities: pq.StringArray{},
		Status:    model.DefaultStatus,
		Image:     c.Image,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	if c.Type != constant.Empty {
		room.Type = c.Type
	}

	if c.Price != nil {
		room.Price = *c.Price
	}

	if c.Capacity != nil {
		room.Capacity = *c.Capacity
	}

	if c.Amenities != nil {
		room.Amenities = c.Amenities
	}

	if c.Status != constant.Empty {
		room.Status = c.Status
	}

	return room
}

type UpdateRoomRequest struct {
	Number    string         `db:"number"    json:"number"    validate:"omitempty,notblank,max=10"`
	Type      string         `db:"type"      json:"type"      validate:"omitempty,oneof=single double suite deluxe"`
	Price     *float64       `db:"price"     json:"price"     validate:"omitempty,gt=0"`
	Capacity  *int           `db:"capacity"  json:"capacity"  validate:"omitempty,gt=0,lte=20"`
	Amenities pq.StringArray `db:"amenities" json:"amenities" validate:"omitempty,max=20,dive,notblank,max=50"`
	Status    string         `db:"status"    json:"status"    validate:"omitempty,oneof=available booked maintenance"`
	Image     string         `db:"image"     json:"image"     validate:"omitempty,imageref"`
}

func (u *UpdateRoomRequest) IsEmpty() bool {
	return u.Number == constant.Empty && u.Type == constant.Empty && u.Price == nil && u.Capacity == nil &&
		u.Amenities == nil && u.Status == constant.Empty && u.Image == constant.Empty
}

type UpdateRoomStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=available booked maintenance"`
}

// RoomFilter holds the listing query. Search matches number or type, case-insensitively.
type RoomFilter struct {
	Search string `json:"search"`
	Status string `json:"status" validate:"omitempty,oneof=all available booked maintenance"`
	Type   string `json:"type"   validate:"omitempty,oneof=all single double suite deluxe"`
}

func (f *RoomFilter) ToFilterGroup() gDto.FilterGroup {
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd, Filters: []any{}}

	if f.Search != constant.Empty {
		group.Filters = append(group.Filters, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{ArgName: "search_number", Field: model.FieldNumber, Value: f.Search, Operator: gDto.FilterOperatorLike, Table: model.TableName},
				gDto.Filter{ArgName: "search_type", Field: model.FieldType, Value: f.Search, Operator: gDto.FilterOperatorLike, Table: model.TableName},
			},
		})
	}

	if f.Status != constant.Empty && f.Status != constant.All {
		group.Filters = append(group.Filters, gDto.Filter{
			Field: model.FieldStatus, Value: f.Status, Operator: gDto.FilterOperatorEq, Table: model.TableName,
		})
	}

	if f.Type != constant.Empty && f.Type != constant.All {
		group.Filters = append(group.Filters, gDto.Filter{
			Field: model.FieldType, Value: f.Type, Operator: gDto.FilterOperatorEq, Table: model.TableName,
		})
	}

	return group
}

type AvailabilityRequest struct {
	CheckIn  string `json:"check_in"  validate:"required,datetime=2006-01-02"`
	CheckOut string `json:"check_out" validate:"required,datetime=2006-01-02"`
}

func (a *AvailabilityRequest) ValidationMessages() map[string]string {
	return map[string]string{
		"check_in.required":  "Check-in date is required",
		"check_out.required": "Check-out date is required",
	}
}

// Dates parses the requested range. The check-out must fall after the check-in.
func (a *AvailabilityRequest) Dates() (checkIn, checkOut time.Time, err error) {
	checkIn, err = timezone.ParseDate(a.CheckIn)
	if err != nil {
		return checkIn, checkOut, failure.Validation("check_in", "Check-in date is invalid")
	}

	checkOut, err = timezone.ParseDate(a.CheckOut)
	if err != nil {
		return checkIn, checkOut, failure.Validation("check_out", "Check-out date is invalid")
	}

	if !checkOut.After(checkIn) {
		return checkIn, checkOut, failure.Validation("check_out", "Check-out must be after check-in")
	}

	return checkIn, checkOut, nil
}

type AvailabilityResponse struct {
	RoomID     string  `json:"room_id"`
	Available  bool    `json:"available"`
	Nights     int     `json:"nights"`
	TotalPrice float64 `json:"total_price"`
	Reason     string  `json:"reason,omitempty"`
}

type RoomResponse struct {
	ID        string   `json:"id"`
	Number    string   `json:"number"`
	Type      string   `json:"type"`
	Price     float64  `json:"price"`
	Capacity  int      `json:"capacity"`
	Amenities []string `json:"amenities"`
	Status    string   `json:"status"`
	Image     string   `json:"image"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Number = model.Number
	r.Type = model.Type
	r.Price = model.Price
	r.Capacity = model.Capacity
	r.Amenities = append([]string{}, model.Amenities...)
	r.Status = model.Status
	r.Image = model.Image
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
