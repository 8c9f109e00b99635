package service

import (
	"context"
	"fmt"

	"hotel/internal/domains/booking/model/dto"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/timezone"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Bookings"

var exportHeaders = []string{
	"Booking ID", "Room", "Room Type", "Customer", "Email", "Phone",
	"Check-in", "Check-out", "Nights", "Total Price", "Status", "Created At",
}

// Export renders every booking matching filter into an xlsx workbook.
func (s *serviceImpl) Export(ctx context.Context, filter dto.BookingFilter) (content []byte, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Booking.Export")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	params := gDto.QueryParams{SortBy: constant.DefaultValueSortBy, SortDir: constant.DefaultValueSortDir}
	group := filter.ToFilterGroup(timezone.Today())

	models, err := s.repo.GetAll(ctx, params, group)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings for export")

		return nil, fmt.Errorf("failed to get bookings: %w", err)
	}

	rooms, err := s.rooms(ctx, models)
	if err != nil {
		return nil, err
	}

	var res dto.GetBookingsResponse
	res.FromModels(models, rooms, len(models), len(models))

	return writeWorkbook(res.Bookings)
}

func writeWorkbook(bookings []dto.BookingResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, fmt.Errorf("error creating sheet: %w", err)
	}

	f.SetActiveSheet(index)

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("error removing default sheet: %w", err)
	}

	header, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})

	if err := f.SetSheetRow(exportSheet, "A1", &exportHeaders); err != nil {
		return nil, fmt.Errorf("error writing header: %w", err)
	}

	lastCol, _ := excelize.ColumnNumberToName(len(exportHeaders))
	_ = f.SetCellStyle(exportSheet, "A1", lastCol+"1", header)

	for i, booking := range bookings {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []any{
			booking.ID, booking.RoomNumber, booking.RoomType, booking.CustomerName,
			booking.CustomerEmail, booking.CustomerPhone, booking.CheckInDate, booking.CheckOutDate,
			booking.Nights, booking.TotalPrice, booking.Status, booking.CreatedAt,
		}

		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("error writing row %d: %w", i+2, err)
		}
	}

	_ = f.SetColWidth(exportSheet, "A", "A", 38)
	_ = f.SetColWidth(exportSheet, "B", lastCol, 18)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("error writing workbook: %w", err)
	}

	return buf.Bytes(), nil
}
