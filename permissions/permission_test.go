package permissions_test

import (
	"testing"

	"hotel/permissions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	tests := []struct {
		name      string
		path      string
		method    string
		wantSkip  bool
		wantRoles []string
	}{
		{name: "public login", path: "/v1/auth/login", method: "POST", wantSkip: true},
		{name: "public listing with trailing slash", path: "/v1/rooms/", method: "GET", wantSkip: true},
		{name: "public booking form", path: "/v1/bookings/", method: "POST", wantSkip: true},
		{name: "admin only room creation", path: "/v1/rooms/", method: "POST", wantRoles: []string{"admin"}},
		{name: "staff may change status", path: "/v1/bookings/{id}/status", method: "PATCH", wantRoles: []string{"admin", "staff"}},
		{name: "lowercase method", path: "/v1/dashboard", method: "get", wantRoles: []string{"admin", "staff"}},
		{name: "unknown route", path: "/v1/unknown", method: "GET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			permission := data.FindPermissions(tt.path, tt.method)

			assert.Equal(t, tt.wantSkip, permission.Skip)
			assert.Equal(t, tt.wantRoles, permission.Permissions)
		})
	}
}
