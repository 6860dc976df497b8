package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"stay/infras/otel"
	"stay/infras/postgres"
	"stay/internal/domains/review/model"
	"stay/shared"
	gDto "stay/shared/dto"
	gRepo "stay/shared/repository"
)

type Review interface {
	Insert(ctx context.Context, mod model.Review) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Review, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Review, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, mod map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) (int64, error)
	GetDetail(ctx context.Context, id string) (model.ReviewDetail, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Review]
	detail gRepo.Repository[model.ReviewDetail]
}

func New(db *postgres.Connection, otel otel.Otel) Review {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Review](model.EntityName, model.TableName, model.FieldID, db, otel),
		detail:     gRepo.NewRepository[model.ReviewDetail](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// GetDetail returns the zero value when any joined row is missing.
func (r *repositoryImpl) GetDetail(ctx context.Context, id string) (model.ReviewDetail, error) {
	return r.detail.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
}
