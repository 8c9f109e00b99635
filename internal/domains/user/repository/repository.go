package repository

import (
	"context"

	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/user/model"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"
)

type User interface {
	Insert(ctx context.Context, model model.User) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.User, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.User]
}

// New returns the Postgres repository, or an empty in-memory one when db is nil.
func New(db *postgres.Connection, otel otel.Otel) User {
	if db == nil {
		return NewMemory(otel)
	}

	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.User](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func NewMemory(otel otel.Otel, users ...model.User) User {
	return gRepo.NewMemoryRepository(model.EntityName, model.FieldID, otel, users...)
}

// ByEmail matches the account registered with email.
func ByEmail(email string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldEmail, Operator: gDto.FilterOperatorEq, Value: email, Table: model.TableName},
		},
	}
}
