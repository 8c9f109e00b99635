package dashboard_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"hotel/infras/otel/mocks"
	"hotel/internal/domains/dashboard/model/dto"
	dashboardMocks "hotel/internal/domains/dashboard/mocks"
	"hotel/internal/handlers/dashboard"
	"hotel/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestHandler_GetDashboard(t *testing.T) {
	tests := []struct {
		name       string
		res        dto.DashboardResponse
		err        error
		wantStatus int
	}{
		{
			name:       "summary",
			res:        dto.DashboardResponse{TotalRooms: 4, AvailableRooms: 2, OccupancyRate: 25, Revenue: 1393, StaffCount: 3},
			wantStatus: http.StatusOK,
		},
		{
			name:       "store failure",
			err:        failure.InternalError(assert.AnError),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := dashboardMocks.NewMockDashboard(gomock.NewController(t))
			svc.EXPECT().Get(gomock.Any()).Return(tt.res, tt.err)

			handler := dashboard.New(svc, mocks.NewOtel())
			router := chi.NewRouter()
			handler.Router(router)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

			require.Equal(t, tt.wantStatus, rec.Code)

			if tt.err != nil {
				return
			}

			var body struct {
				Data dto.DashboardResponse `json:"data"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.res.TotalRooms, body.Data.TotalRooms)
			assert.InDelta(t, 25, body.Data.OccupancyRate, 0)
			assert.InDelta(t, 1393, body.Data.Revenue, 0)
		})
	}
}
