package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"hotel/config"
	"hotel/infras/jwt"
	jwtMocks "hotel/infras/jwt/mocks"
	"hotel/infras/otel/mocks"
	"hotel/internal/domains/auth/model/dto"
	"hotel/internal/domains/auth/service"
	userModel "hotel/internal/domains/user/model"
	userRepo "hotel/internal/domains/user/repository"
	"hotel/shared/cache"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	svc   service.Auth
	jwt   *jwtMocks.MockJWT
	cache cache.Cache
	user  userModel.User
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	otl := mocks.NewOtel()

	hashed, err := password.Hash("password")
	require.NoError(t, err)

	user := userModel.User{
		ID:       "user-id-123",
		Name:     "Admin User",
		Email:    "admin@hotel.com",
		Password: hashed,
		Role:     constant.RoleAdmin,
	}

	cfg := &config.Config{}
	cfg.JWT.AccessExpireMin = 60
	cfg.JWT.RefreshExpireMin = 1440

	store := cache.New(nil, otl)
	jwtMock := jwtMocks.NewMockJWT(ctrl)

	return fixture{
		svc:   service.New(userRepo.NewMemory(otl, user), cfg, store, otl, jwtMock),
		jwt:   jwtMock,
		cache: store,
		user:  user,
	}
}

func tokenPair(id string) *jwt.TokenPair {
	return &jwt.TokenPair{
		AccessToken:    "access-" + id,
		RefreshToken:   "refresh-" + id,
		TokenType:      "Bearer",
		ExpiresIn:      3600,
		AccessTokenID:  id,
		RefreshTokenID: "r-" + id,
	}
}

func TestAuthService_Login(t *testing.T) {
	t.Run("success stores the session", func(t *testing.T) {
		f := newFixture(t)

		f.jwt.EXPECT().
			GenerateTokenPair(f.user.ID, f.user.Email, f.user.Role).
			Return(tokenPair("jti-1"), nil)

		res, err := f.svc.Login(context.Background(), dto.LoginRequest{Email: "admin@hotel.com", Password: "password"})
		require.NoError(t, err)

		assert.Equal(t, "access-jti-1", res.AccessToken)
		assert.Equal(t, "refresh-jti-1", res.RefreshToken)
		assert.Equal(t, "Admin User", res.User.Name)
		assert.Equal(t, constant.RoleAdmin, res.User.Role)

		var session dto.SessionUser
		require.NoError(t, f.cache.Get(context.Background(), service.SessionKey("jti-1"), &session))
		assert.Equal(t, res.User, session)
		assert.Equal(t, "hotel_user:jti-1", service.SessionKey("jti-1"))

		var pairedAccess string
		require.NoError(t, f.cache.Get(context.Background(), service.RefreshKey("r-jti-1"), &pairedAccess))
		assert.Equal(t, "jti-1", pairedAccess)
		assert.Equal(t, "hotel_user:refresh:r-jti-1", service.RefreshKey("r-jti-1"))
	})

	tests := []struct {
		name string
		req  dto.LoginRequest
	}{
		{name: "unknown email", req: dto.LoginRequest{Email: "nobody@hotel.com", Password: "password"}},
		{name: "wrong password", req: dto.LoginRequest{Email: "admin@hotel.com", Password: "wrong-password"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.svc.Login(context.Background(), tt.req)
			require.Error(t, err)

			assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
			assert.Equal(t, "Invalid email or password", err.Error())
		})
	}

	t.Run("token generation fails", func(t *testing.T) {
		f := newFixture(t)

		f.jwt.EXPECT().
			GenerateTokenPair(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("signing failed"))

		_, err := f.svc.Login(context.Background(), dto.LoginRequest{Email: "admin@hotel.com", Password: "password"})
		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	t.Run("success rotates the session", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()

		gomock.InOrder(
			f.jwt.EXPECT().
				GenerateTokenPair(f.user.ID, f.user.Email, f.user.Role).
				Return(tokenPair("jti-1"), nil),
			f.jwt.EXPECT().
				GenerateTokenPair(f.user.ID, f.user.Email, f.user.Role).
				Return(tokenPair("jti-2"), nil),
		)
		f.jwt.EXPECT().
			ValidateToken("refresh-jti-1", jwt.RefreshToken).
			Return(&jwt.Claims{UserID: f.user.ID, Email: f.user.Email, Role: f.user.Role, TokenID: "r-jti-1"}, nil).
			Times(2)

		_, err := f.svc.Login(ctx, dto.LoginRequest{Email: "admin@hotel.com", Password: "password"})
		require.NoError(t, err)

		res, err := f.svc.RefreshToken(ctx, dto.RefreshTokenRequest{RefreshToken: "refresh-jti-1"})
		require.NoError(t, err)
		assert.Equal(t, "access-jti-2", res.AccessToken)

		session, err := f.svc.Session(ctx, "jti-2")
		require.NoError(t, err)
		assert.Equal(t, f.user.Email, session.Email)

		_, err = f.svc.Session(ctx, "jti-1")
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))

		_, err = f.svc.RefreshToken(ctx, dto.RefreshTokenRequest{RefreshToken: "refresh-jti-1"})
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
		assert.Equal(t, "Invalid refresh token", err.Error())
	})

	t.Run("refresh token never issued by this server", func(t *testing.T) {
		f := newFixture(t)

		f.jwt.EXPECT().
			ValidateToken("refresh-forged", jwt.RefreshToken).
			Return(&jwt.Claims{UserID: f.user.ID, TokenID: "unknown"}, nil)

		_, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh-forged"})
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("invalid token", func(t *testing.T) {
		f := newFixture(t)

		f.jwt.EXPECT().
			ValidateToken(gomock.Any(), jwt.RefreshToken).
			Return(nil, jwt.ErrInvalidToken)

		_, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "bogus"})
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})

	t.Run("user no longer exists", func(t *testing.T) {
		f := newFixture(t)

		f.jwt.EXPECT().
			ValidateToken(gomock.Any(), jwt.RefreshToken).
			Return(&jwt.Claims{UserID: "deleted-user"}, nil)

		_, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh"})
		require.Error(t, err)
		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestAuthService_LogoutEndsSession(t *testing.T) {
	f := newFixture(t)

	f.jwt.EXPECT().
		GenerateTokenPair(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(tokenPair("jti-3"), nil)

	_, err := f.svc.Login(context.Background(), dto.LoginRequest{Email: "admin@hotel.com", Password: "password"})
	require.NoError(t, err)

	_, err = f.svc.Session(context.Background(), "jti-3")
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(context.Background(), "jti-3"))

	_, err = f.svc.Session(context.Background(), "jti-3")
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
}

func TestAuthService_RefreshAfterLogoutIsRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.jwt.EXPECT().
		GenerateTokenPair(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(tokenPair("jti-4"), nil)
	f.jwt.EXPECT().
		ValidateToken("refresh-jti-4", jwt.RefreshToken).
		Return(&jwt.Claims{UserID: f.user.ID, TokenID: "r-jti-4"}, nil)

	_, err := f.svc.Login(ctx, dto.LoginRequest{Email: "admin@hotel.com", Password: "password"})
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, "jti-4"))

	var pairedAccess string
	assert.ErrorIs(t, f.cache.Get(ctx, service.RefreshKey("r-jti-4"), &pairedAccess), cache.Nil)

	_, err = f.svc.RefreshToken(ctx, dto.RefreshTokenRequest{RefreshToken: "refresh-jti-4"})
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))

	_, err = f.svc.Session(ctx, "jti-4")
	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
}
