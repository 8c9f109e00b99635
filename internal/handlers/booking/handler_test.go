package booking_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hotel/infras/otel/mocks"
	"hotel/internal/domains/booking/model"
	"hotel/internal/domains/booking/model/dto"
	bookingMocks "hotel/internal/domains/booking/mocks"
	"hotel/internal/handlers/booking"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const validBooking = `{
	"room_id": "6f1c1a52-3d0e-4b8a-9c61-0d3a5b2f1001",
	"customer_name": "Ada Lovelace",
	"customer_email": "ada@example.com",
	"customer_phone": "555-0100",
	"check_in_date": "2030-05-01",
	"check_out_date": "2030-05-04"
}`

func newRouter(t *testing.T) (*bookingMocks.MockBooking, http.Handler) {
	t.Helper()

	ctrl := gomock.NewController(t)
	svc := bookingMocks.NewMockBooking(ctrl)
	handler := booking.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return svc, router
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	return body
}

func TestHandler_CreateBooking(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(svc *bookingMocks.MockBooking)
		wantStatus int
		wantError  string
		wantField  string
	}{
		{
			name: "created",
			body: validBooking,
			setup: func(svc *bookingMocks.MockBooking) {
				svc.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ any, req dto.CreateBookingRequest) (dto.BookingResponse, error) {
						assert.Equal(t, "2030-05-01", req.CheckInDate)

						return dto.BookingResponse{ID: "b-1", RoomID: req.RoomID, Nights: 3, TotalPrice: 297, Status: model.StatusPending}, nil
					})
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "invalid email",
			body:       strings.Replace(validBooking, "ada@example.com", "not-an-email", 1),
			setup:      func(*bookingMocks.MockBooking) {},
			wantStatus: http.StatusBadRequest,
			wantError:  "Please enter a valid email",
			wantField:  "customer_email",
		},
		{
			name:       "missing room",
			body:       strings.Replace(validBooking, "6f1c1a52-3d0e-4b8a-9c61-0d3a5b2f1001", "", 1),
			setup:      func(*bookingMocks.MockBooking) {},
			wantStatus: http.StatusBadRequest,
			wantError:  "Please select a room",
			wantField:  "room_id",
		},
		{
			name:       "room id is not a uuid",
			body:       strings.Replace(validBooking, "6f1c1a52-3d0e-4b8a-9c61-0d3a5b2f1001", "room-101", 1),
			setup:      func(*bookingMocks.MockBooking) {},
			wantStatus: http.StatusBadRequest,
			wantError:  "Please select a room",
			wantField:  "room_id",
		},
		{
			name: "room taken",
			body: validBooking,
			setup: func(svc *bookingMocks.MockBooking) {
				svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(dto.BookingResponse{}, failure.Conflict("Room is not available for the selected dates"))
			},
			wantStatus: http.StatusConflict,
			wantError:  "Room is not available for the selected dates",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, router := newRouter(t)
			tt.setup(svc)

			rec := serve(router, http.MethodPost, "/bookings/", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantError == "" {
				return
			}

			body := decode(t, rec)
			assert.Equal(t, tt.wantError, body["error"])

			if tt.wantField != "" {
				assert.Contains(t, body["fields"], tt.wantField)
			}
		})
	}
}

func TestHandler_GetBookings(t *testing.T) {
	t.Run("filter from query", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), dto.BookingFilter{Status: model.StatusConfirmed, Date: "upcoming"}).
			DoAndReturn(func(_ any, params gDto.QueryParams, _ dto.BookingFilter) (dto.GetBookingsResponse, error) {
				assert.Equal(t, model.FieldCheckInDate, params.SortBy)

				return dto.GetBookingsResponse{Bookings: []dto.BookingResponse{{ID: "b-1"}}, TotalPage: 1, TotalData: 1}, nil
			})

		rec := serve(router, http.MethodGet, "/bookings/?status=confirmed&date=upcoming&sort_by=check_in_date", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("room id must be a uuid", func(t *testing.T) {
		_, router := newRouter(t)

		rec := serve(router, http.MethodGet, "/bookings/?room_id=101", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown date window", func(t *testing.T) {
		_, router := newRouter(t)

		rec := serve(router, http.MethodGet, "/bookings/?date=tomorrow", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_ExportBookings(t *testing.T) {
	t.Run("attachment", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().Export(gomock.Any(), dto.BookingFilter{Status: model.StatusPending}).Return([]byte("PK\x03\x04"), nil)

		rec := serve(router, http.MethodGet, "/bookings/export?status=pending", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Header().Get("Content-Disposition"), `attachment; filename="bookings-`)
		assert.Equal(t, "PK\x03\x04", rec.Body.String())
	})

	t.Run("service failure is masked", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().Export(gomock.Any(), dto.BookingFilter{}).Return(nil, failure.InternalError(assert.AnError))

		rec := serve(router, http.MethodGet, "/bookings/export", "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Internal Server Error", decode(t, rec)["error"])
	})
}

func TestHandler_UpdateBookingStatus(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(svc *bookingMocks.MockBooking)
		wantStatus int
	}{
		{
			name: "confirmed",
			body: `{"status":"confirmed"}`,
			setup: func(svc *bookingMocks.MockBooking) {
				svc.EXPECT().
					UpdateStatus(gomock.Any(), dto.UpdateBookingStatusRequest{Status: model.StatusConfirmed}, "b-1").
					Return(dto.BookingResponse{ID: "b-1", Status: model.StatusConfirmed}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "unknown status",
			body:       `{"status":"archived"}`,
			setup:      func(*bookingMocks.MockBooking) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "illegal transition",
			body: `{"status":"pending"}`,
			setup: func(svc *bookingMocks.MockBooking) {
				svc.EXPECT().
					UpdateStatus(gomock.Any(), gomock.Any(), "b-1").
					Return(dto.BookingResponse{}, failure.Conflict("Cannot change a cancelled booking"))
			},
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, router := newRouter(t)
			tt.setup(svc)

			rec := serve(router, http.MethodPatch, "/bookings/b-1/status", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandler_GetAndDeleteBooking(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().Get(gomock.Any(), "b-1").Return(dto.BookingResponse{ID: "b-1", RoomNumber: "101"}, nil)
	svc.EXPECT().Delete(gomock.Any(), "b-1").Return(nil)

	rec := serve(router, http.MethodGet, "/bookings/b-1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "101", decode(t, rec)["data"].(map[string]any)["room_number"])

	rec = serve(router, http.MethodDelete, "/bookings/b-1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Booking deleted successfully", decode(t, rec)["message"])
}
