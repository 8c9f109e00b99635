package service_test

import (
	"context"
	"testing"

	"hotel/config"
	"hotel/infras/otel/mocks"
	"hotel/internal/domains/user/repository"
	"hotel/internal/domains/user/service"
	"hotel/shared/constant"
	"hotel/shared/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_Seed(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.SeedPassword = "secret-pass"

	repo := repository.NewMemory(mocks.NewOtel())
	svc := service.New(repo, cfg, mocks.NewOtel())

	require.NoError(t, svc.Seed(context.Background()))

	admin, err := repo.Get(context.Background(), repository.ByEmail("admin@hotel.com"))
	require.NoError(t, err)

	assert.Equal(t, "Admin User", admin.Name)
	assert.Equal(t, constant.RoleAdmin, admin.Role)
	assert.NoError(t, password.Verify("secret-pass", admin.Password))

	staff, err := repo.Get(context.Background(), repository.ByEmail("staff@hotel.com"))
	require.NoError(t, err)
	assert.Equal(t, constant.RoleStaff, staff.Role)

	t.Run("idempotent", func(t *testing.T) {
		cfg.App.SeedPassword = "changed"

		require.NoError(t, svc.Seed(context.Background()))

		again, err := repo.Get(context.Background(), repository.ByEmail("admin@hotel.com"))
		require.NoError(t, err)
		assert.Equal(t, admin.ID, again.ID)
		assert.NoError(t, password.Verify("secret-pass", again.Password))
	})
}
