package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"stay/infras/otel"
	"stay/infras/postgres"
	"stay/internal/domains/listing/model"
	gDto "stay/shared/dto"
	gRepo "stay/shared/repository"
)

type Listing interface {
	Insert(ctx context.Context, mod model.Listing) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Listing, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Listing, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, mod map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Listing]
}

func New(db *postgres.Connection, otel otel.Otel) Listing {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Listing](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
