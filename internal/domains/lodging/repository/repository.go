package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"lodging/infras/otel"
	"lodging/infras/postgres"
	"lodging/internal/domains/lodging/model"
	gDto "lodging/shared/dto"
	gRepo "lodging/shared/repository"
)

type Lodging interface {
	Insert(ctx context.Context, model model.Lodging) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Lodging, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Lodging, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Lodging]
}

func New(db *postgres.Connection, otel otel.Otel) Lodging {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Lodging](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
