package dto

import (
	bookingDto "hotel/internal/domains/booking/model/dto"
)

type RoomTypeShare struct {
	Type       string `json:"type"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

type DashboardResponse struct {
	TotalRooms       int                          `json:"total_rooms"`
	AvailableRooms   int                          `json:"available_rooms"`
	BookedRooms      int                          `json:"booked_rooms"`
	MaintenanceRooms int                          `json:"maintenance_rooms"`
	OccupancyRate    int                          `json:"occupancy_rate"`
	Revenue          float64                      `json:"revenue"`
	TotalBookings    int                          `json:"total_bookings"`
	StaffCount       int                          `json:"staff_count"`
	RoomTypes        []RoomTypeShare              `json:"room_types"`
	UpcomingBookings []bookingDto.BookingResponse `json:"upcoming_bookings"`
	TodayCheckIns    []bookingDto.BookingResponse `json:"today_check_ins"`
	TodayCheckOuts   []bookingDto.BookingResponse `json:"today_check_outs"`
}
