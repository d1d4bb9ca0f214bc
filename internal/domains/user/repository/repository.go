package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"time"

	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/user/model"
	"hotel/shared"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"
)

type User interface {
	Insert(ctx context.Context, model model.User) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.User, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.User, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	// Taken reports whether a user other than exceptID already has value in column.
	Taken(ctx context.Context, column, value, exceptID string) (bool, error)
	TouchLogin(ctx context.Context, id string, at time.Time) error
}

type repositoryImpl struct {
	gRepo.Repository[model.User]
}

func New(db *postgres.Connection, otel otel.Otel) User {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.User](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func (r *repositoryImpl) Taken(ctx context.Context, column, value, exceptID string) (bool, error) {
	filter := shared.FilterByValue(column, value, model.TableName)

	if exceptID != constant.Empty {
		filter.Add(gDto.Filter{
			ArgName:  "except_id",
			Field:    model.FieldID,
			Value:    exceptID,
			Operator: gDto.FilterOperatorNotEq,
			Table:    model.TableName,
		})
	}

	return r.Exist(ctx, filter)
}

// TouchLogin stamps last_login without touching the modification metadata.
func (r *repositoryImpl) TouchLogin(ctx context.Context, id string, at time.Time) error {
	return r.Update(ctx, map[string]any{model.FieldLastLogin: at}, shared.FilterByID(id, model.FieldID, model.TableName))
}
