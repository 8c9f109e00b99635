package service

import (
	"context"
	"fmt"

	"hotel/config"
	"hotel/infras/otel"
	"hotel/internal/domains/user/model/dto"
	"hotel/internal/domains/user/repository"
	"hotel/shared/constant"
	"hotel/shared/password"

	"github.com/rs/zerolog/log"
)

// Accounts of the demo console. All share the configured seed password.
var SeedUsers = []dto.SeedUser{
	{Name: "Admin User", Email: "admin@hotel.com", Role: constant.RoleAdmin},
	{Name: "Staff Member", Email: "staff@hotel.com", Role: constant.RoleStaff},
}

type User interface {
	Seed(ctx context.Context) error
}

type serviceImpl struct {
	repo repository.User
	cfg  *config.Config
	otel otel.Otel
}

func New(repo repository.User, cfg *config.Config, otel otel.Otel) User {
	return &serviceImpl{
		repo: repo,
		cfg:  cfg,
		otel: otel,
	}
}

// Seed creates the demo accounts that do not exist yet. Existing accounts keep their password.
func (s *serviceImpl) Seed(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".User.Seed")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var hashed string

	for _, seed := range SeedUsers {
		exists, err := s.repo.Exist(ctx, repository.ByEmail(seed.Email))
		if err != nil {
			log.Error().Err(err).Msg("failed to check if user exists")

			return fmt.Errorf("failed to check if user exists: %w", err)
		}

		if exists {
			continue
		}

		if hashed == constant.Empty {
			if hashed, err = password.Hash(s.cfg.App.SeedPassword); err != nil {
				return fmt.Errorf("failed to hash seed password: %w", err)
			}
		}

		if err = s.repo.Insert(ctx, seed.ToModel(constant.ContextSystem, hashed)); err != nil {
			log.Error().Err(err).Str("email", seed.Email).Msg("failed to seed user")

			return fmt.Errorf("failed to seed user: %w", err)
		}

		log.Info().Str("email", seed.Email).Str("role", seed.Role).Msg("seeded user")
	}

	return nil
}
