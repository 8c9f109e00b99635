package staff_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hotel/infras/otel/mocks"
	"hotel/internal/domains/staff/model"
	"hotel/internal/domains/staff/model/dto"
	staffMocks "hotel/internal/domains/staff/mocks"
	"hotel/internal/handlers/staff"
	gDto "hotel/shared/dto"
	"hotel/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newRouter(t *testing.T) (*staffMocks.MockStaff, http.Handler) {
	t.Helper()

	svc := staffMocks.NewMockStaff(gomock.NewController(t))
	handler := staff.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return svc, router
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))

	return rec
}

func TestHandler_CreateStaff(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		mock       bool
		wantStatus int
		wantError  string
	}{
		{
			name:       "created",
			body:       `{"name":"Tom Green","role":"maintenance","phone":"123","email":"tom@hotel.com"}`,
			mock:       true,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing name",
			body:       `{"name":"","role":"maintenance","phone":"123","email":"tom@hotel.com"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Name is required",
		},
		{
			name:       "unknown role",
			body:       `{"name":"Tom","role":"chef","phone":"123","email":"tom@hotel.com"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "bad email",
			body:       `{"name":"Tom","role":"manager","phone":"123","email":"tom"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Please enter a valid email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, router := newRouter(t)

			if tt.mock {
				svc.EXPECT().
					Create(gomock.Any(), dto.CreateStaffRequest{Name: "Tom Green", Role: model.RoleMaintenance, Phone: "123", Email: "tom@hotel.com"}).
					Return(dto.StaffResponse{ID: "s-1", Name: "Tom Green"}, nil)
			}

			rec := serve(router, http.MethodPost, "/staff/", tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantError != "" {
				var body map[string]any
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, tt.wantError, body["error"])
			}
		})
	}
}

func TestHandler_GetStaff(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), dto.StaffFilter{Search: "sarah", Role: model.RoleManager}).
		DoAndReturn(func(_ any, params gDto.QueryParams, _ dto.StaffFilter) (dto.GetStaffResponse, error) {
			assert.Equal(t, model.FieldName, params.SortBy)
			assert.Equal(t, 10, params.Limit)

			return dto.GetStaffResponse{Staff: []dto.StaffResponse{{Name: "Sarah Williams"}}, TotalPage: 1, TotalData: 1}, nil
		})

	rec := serve(router, http.MethodGet, "/staff/?search=sarah&role=manager&sort_by=name", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(router, http.MethodGet, "/staff/?role=chef", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_UpdateAndDeleteStaff(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().
		Update(gomock.Any(), dto.UpdateStaffRequest{Phone: "999"}, "s-1").
		Return(dto.StaffResponse{ID: "s-1", Phone: "999"}, nil)
	svc.EXPECT().Get(gomock.Any(), "gone").Return(dto.StaffResponse{}, failure.NotFound(model.NotFoundLabel))
	svc.EXPECT().Delete(gomock.Any(), "s-1").Return(nil)

	rec := serve(router, http.MethodPatch, "/staff/s-1", `{"phone":"999"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(router, http.MethodGet, "/staff/gone", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(router, http.MethodDelete, "/staff/s-1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
