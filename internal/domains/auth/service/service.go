package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"hotel/config"
	"hotel/infras/jwt"
	"hotel/infras/otel"
	"hotel/internal/domains/auth/model/dto"
	userModel "hotel/internal/domains/user/model"
	userRepo "hotel/internal/domains/user/repository"
	"hotel/shared"
	"hotel/shared/cache"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/shared/password"

	"github.com/rs/zerolog/log"
)

const (
	msgInvalidCredentials  = "Invalid email or password"
	msgInvalidRefreshToken = "Invalid refresh token"
	msgSessionExpired      = "Session expired, please log in again"
)

type Auth interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.LoginResponse, error)
	Logout(ctx context.Context, tokenID string) error
	Session(ctx context.Context, tokenID string) (dto.SessionUser, error)
}

type serviceImpl struct {
	userRepo   userRepo.User
	cfg        *config.Config
	cache      cache.Cache
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(userRepo userRepo.User, cfg *config.Config, cache cache.Cache, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
		jwtService: jwt,
	}
}

const refreshKeySegment = "refresh"

// session is the cached record behind an access token.
type session struct {
	dto.SessionUser
	RefreshTokenID string `json:"refresh_token_id"`
}

// SessionKey is the cache key of the session bound to an access token id.
func SessionKey(tokenID string) string {
	return shared.BuildCacheKey(constant.SessionKeyPrefix, tokenID)
}

// RefreshKey is the cache key marking a refresh token id as still usable. It holds
// the access token id issued alongside it.
func RefreshKey(tokenID string) string {
	return shared.BuildCacheKey(constant.SessionKeyPrefix, refreshKeySegment, tokenID)
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.userRepo.Get(ctx, userRepo.ByEmail(req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		log.Warn().Str("email", req.Email).Msg("login attempt with non-existent email")

		return res, failure.Unauthorized(msgInvalidCredentials)
	}

	if err = password.Verify(req.Password, user.Password); err != nil {
		log.Warn().Str("email", req.Email).Msg("login attempt with wrong password")

		return res, failure.Unauthorized(msgInvalidCredentials)
	}

	return s.issue(ctx, user)
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	claims, err := s.jwtService.ValidateToken(req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to validate refresh token")

		return res, failure.Unauthorized(msgInvalidRefreshToken)
	}

	user, err := s.userRepo.Get(ctx, shared.FilterByID(claims.UserID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return res, failure.Unauthorized(msgInvalidRefreshToken)
	}

	var accessTokenID string

	err = s.cache.Get(ctx, RefreshKey(claims.TokenID), &accessTokenID)
	if errors.Is(err, cache.Nil) {
		log.Warn().Str("user_id", claims.UserID).Msg("refresh token was revoked")

		return res, failure.Unauthorized(msgInvalidRefreshToken)
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to get refresh token")

		return res, fmt.Errorf("failed to get refresh token: %w", err)
	}

	if err = s.revoke(ctx, accessTokenID, claims.TokenID); err != nil {
		return res, err
	}

	return s.issue(ctx, user)
}

func (s *serviceImpl) Logout(ctx context.Context, tokenID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Logout")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var current session

	err = s.cache.Get(ctx, SessionKey(tokenID), &current)
	if err != nil && !errors.Is(err, cache.Nil) {
		log.Error().Err(err).Msg("failed to get session")

		return fmt.Errorf("failed to get session: %w", err)
	}

	return s.revoke(ctx, tokenID, current.RefreshTokenID)
}

// Session returns the user bound to an access token. A missing record means the
// token was logged out or outlived its session.
func (s *serviceImpl) Session(ctx context.Context, tokenID string) (res dto.SessionUser, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Session")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var current session

	err = s.cache.Get(ctx, SessionKey(tokenID), &current)
	if errors.Is(err, cache.Nil) {
		return res, failure.Unauthorized(msgSessionExpired)
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to get session")

		return res, fmt.Errorf("failed to get session: %w", err)
	}

	return current.SessionUser, nil
}

func (s *serviceImpl) issue(ctx context.Context, user userModel.User) (res dto.LoginResponse, err error) {
	tokenPair, err := s.jwtService.GenerateTokenPair(user.ID, user.Email, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, fmt.Errorf("failed to generate tokens: %w", err)
	}

	current := session{RefreshTokenID: tokenPair.RefreshTokenID}
	current.FromModel(user)

	ttl := s.cfg.JWT.AccessExpireMin * constant.MinutesToSeconds
	if err = s.cache.Save(ctx, SessionKey(tokenPair.AccessTokenID), current, ttl); err != nil {
		log.Error().Err(err).Msg("failed to save session")

		return res, fmt.Errorf("failed to save session: %w", err)
	}

	refreshTTL := s.cfg.JWT.RefreshExpireMin * constant.MinutesToSeconds
	if err = s.cache.Save(ctx, RefreshKey(tokenPair.RefreshTokenID), tokenPair.AccessTokenID, refreshTTL); err != nil {
		log.Error().Err(err).Msg("failed to save refresh token")

		return res, fmt.Errorf("failed to save refresh token: %w", err)
	}

	res.FromTokenPair(tokenPair, current.SessionUser)

	return res, nil
}

// revoke drops the session of an access token and the refresh token paired with it.
func (s *serviceImpl) revoke(ctx context.Context, accessTokenID, refreshTokenID string) error {
	if err := s.cache.Delete(ctx, SessionKey(accessTokenID)); err != nil {
		log.Error().Err(err).Msg("failed to delete session")

		return fmt.Errorf("failed to delete session: %w", err)
	}

	if refreshTokenID == constant.Empty {
		return nil
	}

	if err := s.cache.Delete(ctx, RefreshKey(refreshTokenID)); err != nil {
		log.Error().Err(err).Msg("failed to delete refresh token")

		return fmt.Errorf("failed to delete refresh token: %w", err)
	}

	return nil
}
